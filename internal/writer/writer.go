package writer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/epeers/indexetfs/internal/models"
	log "github.com/sirupsen/logrus"
)

// FileWriter persists normalized holdings as files in an output directory
type FileWriter struct{}

// NewFileWriter creates a new FileWriter
func NewFileWriter() *FileWriter {
	return &FileWriter{}
}

// SaveHoldings writes table for symbol into outputDir, creating the directory
// tree if needed. An empty outputDir means the current directory.
//
// Full tables produce {symbol}.csv (with a zero-based Rank column in table
// order) and {symbol}.md (unranked Markdown table). Ticker tables produce
// {symbol}.txt with one ticker per line.
func (w *FileWriter) SaveHoldings(table *models.HoldingsTable, symbol, outputDir string) error {
	if outputDir == "" {
		outputDir = "."
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	if table.Variant == models.VariantTickers {
		return writeFile(filepath.Join(outputDir, symbol+".txt"), renderTickers(table))
	}

	csvBytes, err := renderRankedCSV(table)
	if err != nil {
		return err
	}
	if err := writeFile(filepath.Join(outputDir, symbol+".csv"), csvBytes); err != nil {
		return err
	}
	return writeFile(filepath.Join(outputDir, symbol+".md"), renderMarkdown(table))
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	log.Debugf("wrote %s (%d bytes)", path, len(data))
	return nil
}

func renderRankedCSV(table *models.HoldingsTable) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := append([]string{"Rank"}, table.Columns()...)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for rank, h := range table.Rows {
		record := []string{strconv.Itoa(rank), h.Ticker, h.Name, formatWeight(h.Weight)}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func renderMarkdown(table *models.HoldingsTable) []byte {
	var b strings.Builder
	b.WriteString("| Ticker | Name | Weight |\n")
	b.WriteString("|:-------|:-----|-------:|\n")
	for _, h := range table.Rows {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", escapeCell(h.Ticker), escapeCell(h.Name), formatWeight(h.Weight))
	}
	return []byte(b.String())
}

func renderTickers(table *models.HoldingsTable) []byte {
	if table.Len() == 0 {
		return nil
	}
	return []byte(strings.Join(table.Tickers(), "\n") + "\n")
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

var cellReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "|", `\|`)

// escapeCell keeps a value on one Markdown table row
func escapeCell(s string) string {
	return cellReplacer.Replace(s)
}
