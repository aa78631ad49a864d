package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/epeers/indexetfs/internal/models"
	"github.com/epeers/indexetfs/internal/provider"
	"github.com/epeers/indexetfs/internal/registry"
	"github.com/epeers/indexetfs/internal/util"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// HoldingsWriter persists a normalized table for one ETF
type HoldingsWriter interface {
	SaveHoldings(table *models.HoldingsTable, symbol, outputDir string) error
}

// SnapshotStore records normalized holdings for a trading day
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, symbol string, asOf time.Time, table *models.HoldingsTable) error
}

// HoldingsService fetches, normalizes and writes ETF holdings
type HoldingsService struct {
	registry *registry.Registry
	loaders  map[models.Provider]provider.Loader
	writer   HoldingsWriter
	variant  models.Variant
	store    SnapshotStore
	now      func() time.Time
}

// NewHoldingsService creates a new HoldingsService
func NewHoldingsService(
	reg *registry.Registry,
	loaders map[models.Provider]provider.Loader,
	writer HoldingsWriter,
	variant models.Variant,
) *HoldingsService {
	return &HoldingsService{
		registry: reg,
		loaders:  loaders,
		writer:   writer,
		variant:  variant,
		now:      time.Now,
	}
}

// WithSnapshotStore makes every successful run also record a snapshot in store
func (s *HoldingsService) WithSnapshotStore(store SnapshotStore) *HoldingsService {
	s.store = store
	return s
}

// Registry returns the registry the service resolves symbols against
func (s *HoldingsService) Registry() *registry.Registry {
	return s.registry
}

// Variant returns the output variant the service produces
func (s *HoldingsService) Variant() models.Variant {
	return s.variant
}

// AsOf returns the trading day the service's current downloads describe
func (s *HoldingsService) AsOf() time.Time {
	return util.HoldingsDate(s.now())
}

// GetETFHoldings fetches symbol's holdings from its provider, normalizes them,
// writes them to outputDir ("" for the current directory) and returns the
// normalized table. Symbols are case-insensitive.
func (s *HoldingsService) GetETFHoldings(ctx context.Context, symbol, outputDir string) (*models.HoldingsTable, error) {
	symbol = strings.ToLower(symbol)
	defer TrackTime("GetETFHoldings "+symbol, time.Now())

	cfg, err := s.registry.Resolve(symbol)
	if err != nil {
		return nil, err
	}

	loader, ok := s.loaders[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("no loader configured for provider %q", cfg.Provider)
	}

	raw, err := loader.Load(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s holdings: %w", cfg.Symbol, err)
	}

	table, err := FilterAndClean(raw, cfg.Provider, s.variant)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize %s holdings: %w", cfg.Symbol, err)
	}
	CheckSourceSum(ctx, table, cfg.Symbol)

	if err := s.writer.SaveHoldings(table, cfg.Symbol, outputDir); err != nil {
		return nil, fmt.Errorf("failed to save %s holdings: %w", cfg.Symbol, err)
	}

	if s.store != nil {
		if err := s.store.SaveSnapshot(ctx, cfg.Symbol, s.AsOf(), table); err != nil {
			return nil, fmt.Errorf("failed to store %s snapshot: %w", cfg.Symbol, err)
		}
	}

	log.Infof("%s: %d holdings from %s (raw rows: %d)", cfg.Symbol, table.Len(), cfg.Provider, raw.Len())
	return table, nil
}

// GetSPYHoldings writes SPY holdings to the current directory
func (s *HoldingsService) GetSPYHoldings(ctx context.Context) (*models.HoldingsTable, error) {
	return s.GetETFHoldings(ctx, "spy", "")
}

// GetMDYHoldings writes MDY holdings to the current directory
func (s *HoldingsService) GetMDYHoldings(ctx context.Context) (*models.HoldingsTable, error) {
	return s.GetETFHoldings(ctx, "mdy", "")
}

// GetSPSMHoldings writes SPSM holdings to the current directory
func (s *HoldingsService) GetSPSMHoldings(ctx context.Context) (*models.HoldingsTable, error) {
	return s.GetETFHoldings(ctx, "spsm", "")
}

// GetQQQHoldings writes QQQ holdings to the current directory
func (s *HoldingsService) GetQQQHoldings(ctx context.Context) (*models.HoldingsTable, error) {
	return s.GetETFHoldings(ctx, "qqq", "")
}

// GetIWMHoldings writes IWM holdings to the current directory
func (s *HoldingsService) GetIWMHoldings(ctx context.Context) (*models.HoldingsTable, error) {
	return s.GetETFHoldings(ctx, "iwm", "")
}

// RunAll processes every registered ETF in registration order, one at a
// time. The first failure stops the batch and is returned; ETFs already
// written stay on disk.
func (s *HoldingsService) RunAll(ctx context.Context, outputDir string) (map[string]*models.HoldingsTable, error) {
	defer TrackTime("RunAll", time.Now())

	results := make(map[string]*models.HoldingsTable)
	for _, symbol := range s.registry.Symbols() {
		table, err := s.GetETFHoldings(ctx, symbol, outputDir)
		if err != nil {
			return nil, err
		}
		results[symbol] = table
	}
	return results, nil
}

// RunAllConcurrent is RunAll with up to limit ETFs in flight. Each ETF writes
// only its own files. The first failure cancels the remaining downloads.
// A limit of 1 or less runs sequentially.
func (s *HoldingsService) RunAllConcurrent(ctx context.Context, outputDir string, limit int) (map[string]*models.HoldingsTable, error) {
	if limit <= 1 {
		return s.RunAll(ctx, outputDir)
	}
	defer TrackTime("RunAllConcurrent", time.Now())

	symbols := s.registry.Symbols()
	tables := make([]*models.HoldingsTable, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			table, err := s.GetETFHoldings(gctx, symbol, outputDir)
			if err != nil {
				return err
			}
			tables[i] = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make(map[string]*models.HoldingsTable, len(symbols))
	for i, symbol := range symbols {
		results[symbol] = tables[i]
	}
	return results, nil
}
