package main

import (
	"context"
	"fmt"

	"github.com/epeers/indexetfs/config"
	"github.com/epeers/indexetfs/internal/database"
	"github.com/epeers/indexetfs/internal/fetcher"
	"github.com/epeers/indexetfs/internal/models"
	"github.com/epeers/indexetfs/internal/provider"
	"github.com/epeers/indexetfs/internal/registry"
	"github.com/epeers/indexetfs/internal/repository"
	"github.com/epeers/indexetfs/internal/services"
	"github.com/epeers/indexetfs/internal/writer"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	outputDir   string
	variant     string
	logLevel    string
	concurrency int
}

// app bundles the wired services for one command invocation
type app struct {
	cfg  *config.Config
	svc  *services.HoldingsService
	repo *repository.HoldingsRepository
	db   *database.DB
}

// loadConfig reads the environment and applies any flags the user set
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("variant") {
		if cfg.Variant, err = models.ParseVariant(opts.variant); err != nil {
			return nil, err
		}
	}
	if flags.Changed("log-level") {
		if cfg.LogLevel, err = log.ParseLevel(opts.logLevel); err != nil {
			return nil, err
		}
	}
	if flags.Changed("concurrency") {
		if opts.concurrency < 1 {
			return nil, fmt.Errorf("--concurrency must be at least 1, got %d", opts.concurrency)
		}
		cfg.Concurrency = opts.concurrency
	}

	log.SetLevel(cfg.LogLevel)
	return cfg, nil
}

// newApp wires the holdings service. When PG_URL is set it also connects to
// the database and records every run as a snapshot.
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	client := fetcher.NewClient(cfg.HTTPTimeout)
	svc := services.NewHoldingsService(registry.Default(), provider.Loaders(client), writer.NewFileWriter(), cfg.Variant)

	a := &app{cfg: cfg, svc: svc}
	if cfg.PGURL == "" {
		log.Debug("PG_URL not set, snapshots disabled")
		return a, nil
	}

	db, err := database.New(ctx, cfg.PGURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	repo := repository.NewHoldingsRepository(db.Pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare snapshot schema: %w", err)
	}

	a.db = db
	a.repo = repo
	svc.WithSnapshotStore(repo)
	return a, nil
}

// Close releases the database pool, if any
func (a *app) Close() {
	if a.db != nil {
		a.db.Close()
	}
}

// logWarnings summarizes the warnings raised during a run
func logWarnings(warnings []models.Warning) {
	if len(warnings) == 0 {
		return
	}
	log.Warnf("%d warning(s) raised during the run", len(warnings))
}
