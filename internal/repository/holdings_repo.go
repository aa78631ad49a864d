package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/epeers/indexetfs/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSnapshotNotFound is returned when no snapshot exists for a symbol
var ErrSnapshotNotFound = errors.New("holdings snapshot not found")

const schema = `
	CREATE TABLE IF NOT EXISTS fact_etf_holding (
		etf_symbol TEXT             NOT NULL,
		as_of      DATE             NOT NULL,
		rank       INTEGER          NOT NULL,
		ticker     TEXT             NOT NULL,
		name       TEXT             NOT NULL DEFAULT '',
		weight     DOUBLE PRECISION,
		PRIMARY KEY (etf_symbol, as_of, rank)
	)
`

// Snapshot is the stored holdings of one ETF on one trading day
type Snapshot struct {
	Symbol   string
	AsOf     time.Time
	Variant  models.Variant // tickers when every stored weight is NULL
	Holdings []models.Holding
}

// HoldingsRepository stores normalized holdings snapshots
type HoldingsRepository struct {
	pool *pgxpool.Pool
}

// NewHoldingsRepository creates a new HoldingsRepository
func NewHoldingsRepository(pool *pgxpool.Pool) *HoldingsRepository {
	return &HoldingsRepository{pool: pool}
}

// EnsureSchema creates the snapshot table if it does not exist
func (r *HoldingsRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create fact_etf_holding: %w", err)
	}
	return nil
}

// SaveSnapshot replaces the stored holdings of symbol for asOf with table.
// Rows keep the table's order as their rank. Ticker tables store a NULL weight.
func (r *HoldingsRepository) SaveSnapshot(ctx context.Context, symbol string, asOf time.Time, table *models.HoldingsTable) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM fact_etf_holding WHERE etf_symbol = $1 AND as_of = $2`, symbol, asOf); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	batch := &pgx.Batch{}
	for rank, h := range table.Rows {
		var weight *float64
		if table.Variant == models.VariantFull {
			w := h.Weight
			weight = &w
		}
		batch.Queue(`
			INSERT INTO fact_etf_holding (etf_symbol, as_of, rank, ticker, name, weight)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, symbol, asOf, rank, h.Ticker, h.Name, weight)
	}

	br := tx.SendBatch(ctx, batch)
	for range table.Rows {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert holding: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// GetLatestSnapshot returns the most recent snapshot stored for symbol
func (r *HoldingsRepository) GetLatestSnapshot(ctx context.Context, symbol string) (*Snapshot, error) {
	// MAX over no rows yields NULL
	var asOf *time.Time
	err := r.pool.QueryRow(ctx, `SELECT MAX(as_of) FROM fact_etf_holding WHERE etf_symbol = $1`, symbol).Scan(&asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot date: %w", err)
	}
	if asOf == nil {
		return nil, ErrSnapshotNotFound
	}

	rows, err := r.pool.Query(ctx, `
		SELECT ticker, name, weight
		FROM fact_etf_holding
		WHERE etf_symbol = $1 AND as_of = $2
		ORDER BY rank ASC
	`, symbol, *asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer rows.Close()

	snapshot := &Snapshot{Symbol: symbol, AsOf: *asOf, Variant: models.VariantTickers}
	for rows.Next() {
		var h models.Holding
		var weight *float64
		if err := rows.Scan(&h.Ticker, &h.Name, &weight); err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		if weight != nil {
			h.Weight = *weight
			snapshot.Variant = models.VariantFull
		}
		snapshot.Holdings = append(snapshot.Holdings, h)
	}
	return snapshot, rows.Err()
}
