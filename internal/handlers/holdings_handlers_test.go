package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/epeers/indexetfs/internal/handlers"
	"github.com/epeers/indexetfs/internal/models"
	"github.com/epeers/indexetfs/internal/provider"
	"github.com/epeers/indexetfs/internal/registry"
	"github.com/epeers/indexetfs/internal/repository"
	"github.com/epeers/indexetfs/internal/services"
	"github.com/epeers/indexetfs/internal/writer"
	"github.com/gin-gonic/gin"
)

type stubLoader struct {
	table *provider.Table
	err   error
}

func (l stubLoader) Load(ctx context.Context, url string) (*provider.Table, error) {
	return l.table, l.err
}

type stubSnapshots struct {
	snapshot *repository.Snapshot
	err      error
}

func (s stubSnapshots) GetLatestSnapshot(ctx context.Context, symbol string) (*repository.Snapshot, error) {
	return s.snapshot, s.err
}

func usdTable(currencyCol string) *provider.Table {
	return provider.NewTable(
		[]string{"Ticker", "Name", "Weight", currencyCol},
		[][]string{
			{"MSFT", "Microsoft", "6.2", "USD"},
			{"AAPL", "Apple Inc", "7.5", "USD"},
			{"-", "Cash", "0.5", "USD"},
		},
	)
}

func defaultLoaders() map[models.Provider]provider.Loader {
	return map[models.Provider]provider.Loader{
		models.ProviderSSGA:     stubLoader{table: usdTable("Local Currency")},
		models.ProviderIShares:  stubLoader{table: usdTable("Market Currency")},
		models.ProviderDirexion: stubLoader{table: usdTable("Unused")},
	}
}

func setupRouter(t *testing.T, loaders map[models.Provider]provider.Loader, snapshots handlers.SnapshotReader) (*gin.Engine, string) {
	t.Helper()
	return setupRouterWithVariant(t, loaders, snapshots, models.VariantFull)
}

func setupRouterWithVariant(t *testing.T, loaders map[models.Provider]provider.Loader, snapshots handlers.SnapshotReader, variant models.Variant) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	outputDir := t.TempDir()
	svc := services.NewHoldingsService(registry.Default(), loaders, writer.NewFileWriter(), variant)
	h := handlers.NewHoldingsHandler(svc, snapshots, outputDir, 2)
	return handlers.NewRouter(h), outputDir
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router, _ := setupRouter(t, defaultLoaders(), nil)

	w := doRequest(router, http.MethodGet, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestListETFs(t *testing.T) {
	router, _ := setupRouter(t, defaultLoaders(), nil)

	w := doRequest(router, http.MethodGet, "/etfs")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.ListETFsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.ETFs) != 5 {
		t.Fatalf("expected 5 ETFs, got %d", len(resp.ETFs))
	}
	if resp.ETFs[0].Symbol != "spy" || resp.ETFs[4].Symbol != "iwm" {
		t.Errorf("expected ETFs in registration order, got %q first and %q last", resp.ETFs[0].Symbol, resp.ETFs[4].Symbol)
	}
}

func TestGetHoldings_Success(t *testing.T) {
	router, outputDir := setupRouter(t, defaultLoaders(), nil)

	w := doRequest(router, http.MethodGet, "/etfs/SPY/holdings")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.HoldingsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Symbol != "spy" || resp.Provider != models.ProviderSSGA {
		t.Errorf("unexpected symbol/provider: %q/%q", resp.Symbol, resp.Provider)
	}
	if resp.Count != 2 || len(resp.Holdings) != 2 {
		t.Fatalf("expected 2 holdings, got count=%d len=%d", resp.Count, len(resp.Holdings))
	}
	if resp.Holdings[0].Ticker != "AAPL" {
		t.Errorf("expected heaviest holding first, got %q", resp.Holdings[0].Ticker)
	}
	if _, err := time.Parse("2006-01-02", resp.AsOf); err != nil {
		t.Errorf("expected as_of as a date, got %q", resp.AsOf)
	}

	// The sample weights are nowhere near 100%, so the sum check fires
	if len(resp.Warnings) != 1 || resp.Warnings[0].Code != models.WarnSourceWeightSum {
		t.Errorf("expected a single %s warning, got %+v", models.WarnSourceWeightSum, resp.Warnings)
	}

	for _, name := range []string{"spy.csv", "spy.md"} {
		if _, err := os.Stat(filepath.Join(outputDir, name)); err != nil {
			t.Errorf("expected %s to be written: %v", name, err)
		}
	}
}

func TestGetHoldings_UnknownSymbol(t *testing.T) {
	router, _ := setupRouter(t, defaultLoaders(), nil)

	w := doRequest(router, http.MethodGet, "/etfs/zzzz/holdings")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}

	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "unknown_symbol" {
		t.Errorf("expected unknown_symbol, got %q", resp.Error)
	}
}

func TestGetHoldings_BadSourceFormat(t *testing.T) {
	loaders := defaultLoaders()
	loaders[models.ProviderDirexion] = stubLoader{err: fmt.Errorf("%w: Weight", provider.ErrMissingColumn)}
	router, _ := setupRouter(t, loaders, nil)

	w := doRequest(router, http.MethodGet, "/etfs/qqq/holdings")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestGetHoldings_FetchFailure(t *testing.T) {
	loaders := defaultLoaders()
	loaders[models.ProviderIShares] = stubLoader{err: fmt.Errorf("connection refused")}
	router, _ := setupRouter(t, loaders, nil)

	w := doRequest(router, http.MethodGet, "/etfs/iwm/holdings")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestRefresh(t *testing.T) {
	router, outputDir := setupRouter(t, defaultLoaders(), nil)

	w := doRequest(router, http.MethodPost, "/etfs/refresh")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.RefreshResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Symbols) != 5 || len(resp.Counts) != 5 {
		t.Fatalf("expected 5 symbols and counts, got %v / %v", resp.Symbols, resp.Counts)
	}
	for _, symbol := range resp.Symbols {
		if _, err := os.Stat(filepath.Join(outputDir, symbol+".csv")); err != nil {
			t.Errorf("expected %s.csv to be written: %v", symbol, err)
		}
	}
}

func TestGetSnapshot_NoDatabase(t *testing.T) {
	router, _ := setupRouter(t, defaultLoaders(), nil)

	w := doRequest(router, http.MethodGet, "/etfs/spy/snapshot")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestGetSnapshot_NotFound(t *testing.T) {
	router, _ := setupRouter(t, defaultLoaders(), stubSnapshots{err: repository.ErrSnapshotNotFound})

	w := doRequest(router, http.MethodGet, "/etfs/spy/snapshot")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetSnapshot_Success(t *testing.T) {
	snapshot := &repository.Snapshot{
		Symbol:   "spy",
		AsOf:     time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		Variant:  models.VariantFull,
		Holdings: []models.Holding{{Ticker: "AAPL", Name: "Apple Inc", Weight: 7.5}},
	}
	router, _ := setupRouter(t, defaultLoaders(), stubSnapshots{snapshot: snapshot})

	w := doRequest(router, http.MethodGet, "/etfs/SPY/snapshot")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.SnapshotResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AsOf != "2025-10-15" || resp.Count != 1 || resp.Holdings[0].Ticker != "AAPL" {
		t.Errorf("unexpected snapshot response: %+v", resp)
	}
}

// decodeHoldings returns the raw holdings objects so absent keys can be told
// apart from zero values
func decodeHoldings(t *testing.T, body []byte) []map[string]any {
	t.Helper()
	var resp struct {
		Holdings []map[string]any `json:"holdings"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.Holdings
}

func TestGetHoldings_ZeroWeightIsReported(t *testing.T) {
	loaders := defaultLoaders()
	loaders[models.ProviderSSGA] = stubLoader{table: provider.NewTable(
		[]string{"Ticker", "Name", "Weight", "Local Currency"},
		[][]string{
			{"AAPL", "Apple Inc", "7.5", "USD"},
			{"BRKB", "Berkshire Hathaway", "-", "USD"},
		},
	)}
	router, _ := setupRouter(t, loaders, nil)

	w := doRequest(router, http.MethodGet, "/etfs/spy/holdings")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	holdings := decodeHoldings(t, w.Body.Bytes())
	if len(holdings) != 2 {
		t.Fatalf("expected 2 holdings, got %d", len(holdings))
	}
	weight, ok := holdings[1]["weight"]
	if !ok {
		t.Fatalf("expected weight key for a zero-weight holding, got %v", holdings[1])
	}
	if weight != float64(0) {
		t.Errorf("expected weight 0, got %v", weight)
	}
}

func TestGetHoldings_TickersVariantOmitsWeight(t *testing.T) {
	router, _ := setupRouterWithVariant(t, defaultLoaders(), nil, models.VariantTickers)

	w := doRequest(router, http.MethodGet, "/etfs/spy/holdings")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	holdings := decodeHoldings(t, w.Body.Bytes())
	if len(holdings) != 2 {
		t.Fatalf("expected 2 holdings, got %d", len(holdings))
	}
	for _, h := range holdings {
		if _, ok := h["weight"]; ok {
			t.Errorf("expected no weight key in ticker-only output, got %v", h)
		}
		if _, ok := h["name"]; ok {
			t.Errorf("expected no name key in ticker-only output, got %v", h)
		}
	}
	if holdings[0]["ticker"] != "AAPL" {
		t.Errorf("expected tickers in ascending order, got %v", holdings[0]["ticker"])
	}
}
