package writer_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/epeers/indexetfs/internal/models"
	"github.com/epeers/indexetfs/internal/writer"
)

func sampleFullTable() *models.HoldingsTable {
	return &models.HoldingsTable{
		Variant: models.VariantFull,
		Rows: []models.Holding{
			{Ticker: "AAPL", Name: "Apple Inc", Weight: 7.5},
			{Ticker: "MSFT", Name: "Microsoft", Weight: 6.2},
			{Ticker: "GOOGL", Name: "Alphabet", Weight: 4.1},
		},
	}
}

func TestSaveHoldings_CreatesCSVAndMarkdown(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "holdings_output")

	if err := writer.NewFileWriter().SaveHoldings(sampleFullTable(), "test", dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"test.csv", "test.md"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "test.txt")); !os.IsNotExist(err) {
		t.Error("expected no ticker list for the full variant")
	}
}

func TestSaveHoldings_RankRoundTrip(t *testing.T) {
	dir := t.TempDir()
	table := sampleFullTable()

	if err := writer.NewFileWriter().SaveHoldings(table, "spy", dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "spy.csv"))
	if err != nil {
		t.Fatalf("failed to read CSV: %v", err)
	}
	if !strings.HasPrefix(string(data), "Rank,Ticker,Name,Weight\n") {
		t.Errorf("unexpected CSV header: %q", strings.SplitN(string(data), "\n", 2)[0])
	}

	rows, err := writer.ReadRankedCSV(filepath.Join(dir, "spy.csv"))
	if err != nil {
		t.Fatalf("failed to read back CSV: %v", err)
	}
	if len(rows) != len(table.Rows) {
		t.Fatalf("expected %d rows, got %d", len(table.Rows), len(rows))
	}
	for i, row := range rows {
		if row.Rank != i {
			t.Errorf("row %d: expected rank %d, got %d", i, i, row.Rank)
		}
		if row.Holding != table.Rows[i] {
			t.Errorf("row %d: expected %+v, got %+v", i, table.Rows[i], row.Holding)
		}
	}
}

func TestSaveHoldings_MarkdownIsUnranked(t *testing.T) {
	dir := t.TempDir()
	table := sampleFullTable()
	table.Rows[1].Name = "Pipe | Co"

	if err := writer.NewFileWriter().SaveHoldings(table, "spy", dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "spy.md"))
	if err != nil {
		t.Fatalf("failed to read Markdown: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2+len(table.Rows) {
		t.Fatalf("expected %d lines, got %d:\n%s", 2+len(table.Rows), len(lines), data)
	}
	if lines[0] != "| Ticker | Name | Weight |" {
		t.Errorf("unexpected header line: %q", lines[0])
	}
	if lines[2] != "| AAPL | Apple Inc | 7.5 |" {
		t.Errorf("unexpected first row: %q", lines[2])
	}
	if !strings.Contains(lines[3], `Pipe \| Co`) {
		t.Errorf("expected pipe to be escaped, got %q", lines[3])
	}
	if strings.Contains(string(data), "Rank") {
		t.Error("expected Markdown output without a Rank column")
	}
}

func TestSaveHoldings_MarkdownFlattensNewlines(t *testing.T) {
	dir := t.TempDir()
	table := sampleFullTable()
	table.Rows[0].Name = "Apple\nInc"
	table.Rows[1].Name = "Micro\r\nsoft"
	table.Rows[2].Name = "Alpha\rbet"

	if err := writer.NewFileWriter().SaveHoldings(table, "spy", dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "spy.md"))
	if err != nil {
		t.Fatalf("failed to read Markdown: %v", err)
	}
	if strings.Contains(string(data), "\r") {
		t.Error("expected carriage returns to be removed")
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2+len(table.Rows) {
		t.Fatalf("expected one line per row, got %d lines:\n%s", len(lines), data)
	}
	expected := []string{
		"| AAPL | Apple Inc | 7.5 |",
		"| MSFT | Micro soft | 6.2 |",
		"| GOOGL | Alpha bet | 4.1 |",
	}
	for i, want := range expected {
		if lines[2+i] != want {
			t.Errorf("row %d: expected %q, got %q", i, want, lines[2+i])
		}
	}
}

func TestSaveHoldings_DefaultsToCurrentDirectory(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}

	if err := writer.NewFileWriter().SaveHoldings(sampleFullTable(), "test", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"test.csv", "test.md"} {
		if _, err := os.Stat(filepath.Join(tmpDir, name)); err != nil {
			t.Errorf("expected %s in the current directory: %v", name, err)
		}
	}
}

func TestSaveHoldings_CreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "output", "dir")

	if err := writer.NewFileWriter().SaveHoldings(sampleFullTable(), "test", dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "test.csv")); err != nil {
		t.Errorf("expected test.csv in nested directory: %v", err)
	}
}

func TestSaveHoldings_TickerList(t *testing.T) {
	dir := t.TempDir()
	table := &models.HoldingsTable{
		Variant: models.VariantTickers,
		Rows:    []models.Holding{{Ticker: "AAPL"}, {Ticker: "GOOGL"}, {Ticker: "MSFT"}},
	}

	if err := writer.NewFileWriter().SaveHoldings(table, "qqq", dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "qqq.txt"))
	if err != nil {
		t.Fatalf("failed to read ticker list: %v", err)
	}
	if string(data) != "AAPL\nGOOGL\nMSFT\n" {
		t.Errorf("unexpected ticker list: %q", string(data))
	}
	if _, err := os.Stat(filepath.Join(dir, "qqq.csv")); !os.IsNotExist(err) {
		t.Error("expected no CSV for the ticker variant")
	}
}

func TestSaveHoldings_EmptyTable(t *testing.T) {
	dir := t.TempDir()
	table := &models.HoldingsTable{Variant: models.VariantFull}

	if err := writer.NewFileWriter().SaveHoldings(table, "empty", dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := writer.ReadRankedCSV(filepath.Join(dir, "empty.csv"))
	if err != nil {
		t.Fatalf("failed to read back CSV: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected 0 rows, got %d", len(rows))
	}
}

func TestSaveHoldings_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("failed to create blocker file: %v", err)
	}

	err := writer.NewFileWriter().SaveHoldings(sampleFullTable(), "test", filepath.Join(blocker, "out"))
	if err == nil {
		t.Fatal("expected error when the output directory cannot be created")
	}
}

func TestParseRankedCSV_MissingColumn(t *testing.T) {
	_, err := writer.ParseRankedCSV(strings.NewReader("Ticker,Name,Weight\nAAPL,Apple,7.5\n"))
	if err == nil {
		t.Fatal("expected error for missing Rank column")
	}
	if !strings.Contains(err.Error(), "Rank") {
		t.Errorf("expected error to mention Rank, got: %s", err.Error())
	}
}
