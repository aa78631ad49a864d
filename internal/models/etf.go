package models

import "fmt"

// Provider identifies the data vendor whose export format a holdings file uses
type Provider string

const (
	ProviderSSGA     Provider = "ssga"
	ProviderIShares  Provider = "ishares"
	ProviderDirexion Provider = "direxion"
)

// CurrencyColumn returns the column holding each row's trading currency.
// Direxion exports carry no currency column and return "".
func (p Provider) CurrencyColumn() string {
	switch p {
	case ProviderSSGA:
		return "Local Currency"
	case ProviderIShares:
		return "Market Currency"
	default:
		return ""
	}
}

// ETFConfig describes where an ETF's holdings file lives and how to read it
type ETFConfig struct {
	Symbol   string   `json:"symbol"`
	URL      string   `json:"url"`
	Provider Provider `json:"provider"`
}

// Variant selects the shape of normalized output
type Variant string

const (
	// VariantFull keeps Ticker, Name and Weight, ranked by weight
	VariantFull Variant = "full"
	// VariantTickers keeps only tickers, sorted alphabetically
	VariantTickers Variant = "tickers"
)

// ParseVariant converts a config or flag value into a Variant
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantFull, VariantTickers:
		return Variant(s), nil
	case "":
		return VariantFull, nil
	default:
		return "", fmt.Errorf("invalid holdings variant %q: must be %q or %q", s, VariantFull, VariantTickers)
	}
}
