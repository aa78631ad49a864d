package models

// Holding is one canonical row of an ETF's holdings.
// Weight is in percentage points (7.5 = 7.5% of net assets).
type Holding struct {
	Ticker string  `json:"ticker"`
	Name   string  `json:"name,omitempty"`
	Weight float64 `json:"weight"`
}

// HoldingsTable is an ordered set of holdings in canonical form.
// Full tables are sorted by weight descending, ticker tables by ticker ascending.
type HoldingsTable struct {
	Variant Variant   `json:"variant"`
	Rows    []Holding `json:"rows"`
}

// Columns returns the canonical column names for the table's variant.
// The schema is the same whether or not the table has rows.
func (t *HoldingsTable) Columns() []string {
	if t.Variant == VariantTickers {
		return []string{"Ticker"}
	}
	return []string{"Ticker", "Name", "Weight"}
}

// Len returns the number of rows
func (t *HoldingsTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Tickers returns the ticker column in table order
func (t *HoldingsTable) Tickers() []string {
	tickers := make([]string, len(t.Rows))
	for i, h := range t.Rows {
		tickers[i] = h.Ticker
	}
	return tickers
}
