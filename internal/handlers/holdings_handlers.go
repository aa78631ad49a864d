package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/epeers/indexetfs/internal/models"
	"github.com/epeers/indexetfs/internal/provider"
	"github.com/epeers/indexetfs/internal/registry"
	"github.com/epeers/indexetfs/internal/repository"
	"github.com/epeers/indexetfs/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// SnapshotReader reads previously stored holdings snapshots
type SnapshotReader interface {
	GetLatestSnapshot(ctx context.Context, symbol string) (*repository.Snapshot, error)
}

// HoldingsHandler handles ETF holdings endpoints
type HoldingsHandler struct {
	svc         *services.HoldingsService
	snapshots   SnapshotReader
	outputDir   string
	concurrency int
}

// NewHoldingsHandler creates a new HoldingsHandler. snapshots may be nil when
// no database is configured.
func NewHoldingsHandler(svc *services.HoldingsService, snapshots SnapshotReader, outputDir string, concurrency int) *HoldingsHandler {
	return &HoldingsHandler{
		svc:         svc,
		snapshots:   snapshots,
		outputDir:   outputDir,
		concurrency: concurrency,
	}
}

// List handles GET /etfs
// @Summary List supported ETFs
// @Description Get every registered ETF symbol with its provider and source URL
// @Tags etfs
// @Produce json
// @Success 200 {object} models.ListETFsResponse
// @Router /etfs [get]
func (h *HoldingsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, models.ListETFsResponse{ETFs: h.svc.Registry().All()})
}

// Get handles GET /etfs/:symbol/holdings
// @Summary Fetch holdings for an ETF
// @Description Download the provider file, normalize it, write the output files and return the holdings
// @Tags etfs
// @Produce json
// @Param symbol path string true "ETF symbol (case-insensitive)"
// @Success 200 {object} models.HoldingsResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /etfs/{symbol}/holdings [get]
func (h *HoldingsHandler) Get(c *gin.Context) {
	symbol := strings.ToLower(c.Param("symbol"))

	ctx, wc := services.NewWarningContext(c.Request.Context())
	table, err := h.svc.GetETFHoldings(ctx, symbol, h.outputDir)
	if err != nil {
		respondError(c, err)
		return
	}

	cfg, err := h.svc.Registry().Resolve(symbol)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.HoldingsResponse{
		Symbol:   cfg.Symbol,
		Provider: cfg.Provider,
		Variant:  table.Variant,
		AsOf:     h.svc.AsOf().Format(dateLayout),
		Count:    table.Len(),
		Holdings: models.NewHoldingViews(table.Variant, table.Rows),
		Warnings: wc.GetWarnings(),
	})
}

// Refresh handles POST /etfs/refresh
// @Summary Refresh every ETF
// @Description Run the batch over all registered ETFs; the first failure aborts the batch
// @Tags etfs
// @Produce json
// @Success 200 {object} models.RefreshResponse
// @Failure 502 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /etfs/refresh [post]
func (h *HoldingsHandler) Refresh(c *gin.Context) {
	ctx, wc := services.NewWarningContext(c.Request.Context())
	results, err := h.svc.RunAllConcurrent(ctx, h.outputDir, h.concurrency)
	if err != nil {
		respondError(c, err)
		return
	}

	symbols := h.svc.Registry().Symbols()
	counts := make(map[string]int, len(results))
	for symbol, table := range results {
		counts[symbol] = table.Len()
	}

	c.JSON(http.StatusOK, models.RefreshResponse{
		Symbols:  symbols,
		Counts:   counts,
		Warnings: wc.GetWarnings(),
	})
}

// GetSnapshot handles GET /etfs/:symbol/snapshot
// @Summary Get the latest stored snapshot
// @Description Read the most recent holdings snapshot from the database without downloading
// @Tags etfs
// @Produce json
// @Param symbol path string true "ETF symbol (case-insensitive)"
// @Success 200 {object} models.SnapshotResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /etfs/{symbol}/snapshot [get]
func (h *HoldingsHandler) GetSnapshot(c *gin.Context) {
	if h.snapshots == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error:   "unavailable",
			Message: "snapshot storage is not configured",
		})
		return
	}

	cfg, err := h.svc.Registry().Resolve(c.Param("symbol"))
	if err != nil {
		respondError(c, err)
		return
	}

	snapshot, err := h.snapshots.GetLatestSnapshot(c.Request.Context(), cfg.Symbol)
	if err != nil {
		if errors.Is(err, repository.ErrSnapshotNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: "no snapshot stored for " + cfg.Symbol,
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SnapshotResponse{
		Symbol:   snapshot.Symbol,
		Variant:  snapshot.Variant,
		AsOf:     snapshot.AsOf.Format(dateLayout),
		Count:    len(snapshot.Holdings),
		Holdings: models.NewHoldingViews(snapshot.Variant, snapshot.Holdings),
	})
}

// respondError maps service errors onto HTTP status codes
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, registry.ErrUnknownSymbol):
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "unknown_symbol",
			Message: err.Error(),
		})
	case errors.Is(err, provider.ErrMissingColumn):
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "bad_source_format",
			Message: err.Error(),
		})
	default:
		log.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}
