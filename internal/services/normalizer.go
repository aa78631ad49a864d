package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/epeers/indexetfs/internal/models"
	"github.com/epeers/indexetfs/internal/provider"
	"github.com/shopspring/decimal"
)

// Currency kept by providers that report one per row
const usd = "USD"

var (
	fullWeight       = decimal.NewFromInt(100)
	sourceSumMaxDiff = decimal.NewFromInt(1)
)

// FilterAndClean projects a provider's raw table onto the canonical schema.
//
// For providers that report a currency (SSGA, iShares) only USD rows are
// kept. For every provider, rows whose ticker is empty or "-" (cash, futures,
// footnotes) are dropped. Full tables are then sorted by weight descending,
// ticker tables by ticker ascending; both sorts are stable. Duplicate tickers
// are passed through unchanged.
func FilterAndClean(table *provider.Table, p models.Provider, variant models.Variant) (*models.HoldingsTable, error) {
	tickerIdx, err := requireColumn(table, "Ticker")
	if err != nil {
		return nil, err
	}

	currencyIdx := -1
	if col := p.CurrencyColumn(); col != "" {
		if currencyIdx, err = requireColumn(table, col); err != nil {
			return nil, err
		}
	}

	nameIdx, weightIdx := -1, -1
	if variant == models.VariantFull {
		if nameIdx, err = requireColumn(table, "Name"); err != nil {
			return nil, err
		}
		if weightIdx, err = requireColumn(table, "Weight"); err != nil {
			return nil, err
		}
	}

	result := &models.HoldingsTable{
		Variant: variant,
		Rows:    []models.Holding{},
	}

	for i, row := range table.Rows {
		if currencyIdx >= 0 && strings.TrimSpace(row[currencyIdx]) != usd {
			continue
		}

		ticker := strings.TrimSpace(row[tickerIdx])
		if ticker == "" || ticker == "-" {
			continue
		}

		h := models.Holding{Ticker: ticker}
		if variant == models.VariantFull {
			weight, err := parseWeight(row[weightIdx])
			if err != nil {
				return nil, fmt.Errorf("row %d (%s): %w", i+1, ticker, err)
			}
			h.Name = strings.TrimSpace(row[nameIdx])
			h.Weight = weight.InexactFloat64()
		}
		result.Rows = append(result.Rows, h)
	}

	if variant == models.VariantFull {
		sort.SliceStable(result.Rows, func(i, j int) bool {
			return result.Rows[i].Weight > result.Rows[j].Weight
		})
	} else {
		sort.SliceStable(result.Rows, func(i, j int) bool {
			return result.Rows[i].Ticker < result.Rows[j].Ticker
		})
	}

	return result, nil
}

// parseWeight reads a percentage cell such as "7.53", "7.53%" or "1,002.5".
// Blank and "-" cells count as zero.
func parseWeight(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" || s == "-" {
		return decimal.Zero, nil
	}

	w, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid weight %q", raw)
	}
	return w, nil
}

// CheckSourceSum emits W1003 if the kept weights of a full table are more
// than one percentage point away from 100%.
func CheckSourceSum(ctx context.Context, table *models.HoldingsTable, etfSymbol string) {
	if table.Variant != models.VariantFull || table.Len() == 0 {
		return
	}

	sum := decimal.Zero
	for _, h := range table.Rows {
		sum = sum.Add(decimal.NewFromFloat(h.Weight))
	}

	if sum.Sub(fullWeight).Abs().GreaterThan(sourceSumMaxDiff) {
		AddWarning(ctx, models.Warning{
			Code:    models.WarnSourceWeightSum,
			Message: fmt.Sprintf("ETF %s: kept holdings sum to %s%%, expected 100%%", etfSymbol, sum.StringFixed(2)),
		})
	}
}

func requireColumn(table *provider.Table, col string) (int, error) {
	idx := table.Index(col)
	if idx < 0 {
		return -1, fmt.Errorf("%w: %s", provider.ErrMissingColumn, col)
	}
	return idx, nil
}
