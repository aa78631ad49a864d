package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/epeers/indexetfs/internal/models"
)

// ErrUnknownSymbol is returned when a symbol has no registered holdings source
var ErrUnknownSymbol = errors.New("unknown ETF symbol")

const ssgaHoldingsURL = "https://www.ssga.com/us/en/individual/library-content/products/fund-data/etfs/us/holdings-daily-us-en-%s.xlsx"

// Registry maps lowercase ETF symbols to their holdings source.
// It is built once and never mutated.
type Registry struct {
	configs map[string]models.ETFConfig
	order   []string
}

// New builds a registry from the given configs, keyed by lowercased symbol.
// Symbols keep the order they are given in; a repeated symbol keeps its
// first position and its last config.
func New(configs ...models.ETFConfig) *Registry {
	r := &Registry{configs: make(map[string]models.ETFConfig, len(configs))}
	for _, c := range configs {
		c.Symbol = strings.ToLower(c.Symbol)
		if _, seen := r.configs[c.Symbol]; !seen {
			r.order = append(r.order, c.Symbol)
		}
		r.configs[c.Symbol] = c
	}
	return r
}

// Default returns the registry of supported index ETFs, in batch order
func Default() *Registry {
	return New(
		models.ETFConfig{Symbol: "spy", URL: fmt.Sprintf(ssgaHoldingsURL, "spy"), Provider: models.ProviderSSGA},
		models.ETFConfig{Symbol: "mdy", URL: fmt.Sprintf(ssgaHoldingsURL, "mdy"), Provider: models.ProviderSSGA},
		models.ETFConfig{Symbol: "spsm", URL: fmt.Sprintf(ssgaHoldingsURL, "spsm"), Provider: models.ProviderSSGA},
		models.ETFConfig{
			Symbol:   "qqq",
			URL:      "https://www.direxion.com/holdings/QQQE.csv",
			Provider: models.ProviderDirexion,
		},
		models.ETFConfig{
			Symbol:   "iwm",
			URL:      "https://www.ishares.com/us/products/239710/ishares-russell-2000-etf/1467271812596.ajax?fileType=csv&fileName=IWM_holdings&dataType=fund",
			Provider: models.ProviderIShares,
		},
	)
}

// Resolve looks up a symbol case-insensitively
func (r *Registry) Resolve(symbol string) (models.ETFConfig, error) {
	cfg, ok := r.configs[strings.ToLower(strings.TrimSpace(symbol))]
	if !ok {
		return models.ETFConfig{}, fmt.Errorf("%w %q, valid symbols: %s", ErrUnknownSymbol, symbol, strings.Join(r.Symbols(), ", "))
	}
	return cfg, nil
}

// Symbols returns all registered symbols in registration order
func (r *Registry) Symbols() []string {
	return append([]string(nil), r.order...)
}

// All returns every registered config in registration order
func (r *Registry) All() []models.ETFConfig {
	symbols := r.Symbols()
	configs := make([]models.ETFConfig, len(symbols))
	for i, s := range symbols {
		configs[i] = r.configs[s]
	}
	return configs
}
