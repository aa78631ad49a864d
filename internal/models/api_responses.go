package models

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ListETFsResponse lists every registered ETF
type ListETFsResponse struct {
	ETFs []ETFConfig `json:"etfs"`
}

// HoldingView is a holding as returned by the API. Weight is omitted for
// ticker-only tables and always present otherwise, zero included.
type HoldingView struct {
	Ticker string   `json:"ticker"`
	Name   string   `json:"name,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

// NewHoldingViews converts rows of a table with the given variant
func NewHoldingViews(variant Variant, rows []Holding) []HoldingView {
	views := make([]HoldingView, len(rows))
	for i, h := range rows {
		views[i] = HoldingView{Ticker: h.Ticker, Name: h.Name}
		if variant != VariantTickers {
			w := h.Weight
			views[i].Weight = &w
		}
	}
	return views
}

// HoldingsResponse represents the normalized holdings for one ETF
type HoldingsResponse struct {
	Symbol   string        `json:"symbol"`
	Provider Provider      `json:"provider"`
	Variant  Variant       `json:"variant"`
	AsOf     string        `json:"as_of"`
	Count    int           `json:"count"`
	Holdings []HoldingView `json:"holdings"`
	Warnings []Warning     `json:"warnings,omitempty"`
}

// RefreshResponse reports the outcome of a batch run over all ETFs
type RefreshResponse struct {
	Symbols  []string       `json:"symbols"`
	Counts   map[string]int `json:"counts"`
	Warnings []Warning      `json:"warnings,omitempty"`
}

// SnapshotResponse represents holdings read back from the snapshot store
type SnapshotResponse struct {
	Symbol   string        `json:"symbol"`
	Variant  Variant       `json:"variant"`
	AsOf     string        `json:"as_of"`
	Count    int           `json:"count"`
	Holdings []HoldingView `json:"holdings"`
}
