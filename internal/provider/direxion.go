package provider

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Legacy Direxion exports put five metadata lines above the header
const direxionLegacySkipRows = 5

var (
	direxionTickerColumns = []string{"Ticker", "StockTicker"}
	direxionNameColumns   = []string{"Name", "Description", "SecurityDescription"}
	direxionWeightColumns = []string{"Weight", "% of Net Assets", "HoldingsPercent"}
)

// ParseDirexionCSV reads a Direxion holdings CSV in either export layout and
// renames its columns to Ticker, Name and Weight.
//
// Current exports have the header on the first row:
//
//	Ticker,Description,% of Net Assets,...
//
// Legacy exports have five metadata lines (blank ones included), then:
//
//	StockTicker,SecurityDescription,HoldingsPercent,...
func ParseDirexionCSV(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read Direxion CSV: %w", err)
	}

	var body io.Reader = bytes.NewReader(data)
	skipped := 0
	if !isDirexionHeader(data) {
		skipped = direxionLegacySkipRows
		if body, err = skipLines(body, skipped); err != nil {
			return nil, err
		}
	}

	records, err := readRecords(body)
	if err != nil {
		return nil, err
	}

	t, err := tableFromRecords(records, 0)
	if err != nil {
		return nil, err
	}

	if err := renameFirst(t, "Ticker", direxionTickerColumns...); err != nil {
		return nil, err
	}
	if err := renameFirst(t, "Name", direxionNameColumns...); err != nil {
		return nil, err
	}
	if err := renameFirst(t, "Weight", direxionWeightColumns...); err != nil {
		return nil, err
	}

	log.Debugf("ParseDirexionCSV: skipped %d lines, %d rows", skipped, t.Len())
	return t, nil
}

// isDirexionHeader reports whether the first line of data is a header row
func isDirexionHeader(data []byte) bool {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	records, err := readRecords(bytes.NewReader(line))
	if err != nil || len(records) == 0 {
		return false
	}
	return hasAnyCell(records[0], direxionTickerColumns)
}

func hasAnyCell(record []string, names []string) bool {
	for _, cell := range record {
		cell = strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff"))
		for _, name := range names {
			if cell == name {
				return true
			}
		}
	}
	return false
}
