package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/epeers/indexetfs/internal/models"
)

// RankedHolding is a row read back from a ranked holdings CSV
type RankedHolding struct {
	Rank int
	models.Holding
}

// ReadRankedCSV reads a {symbol}.csv file written by SaveHoldings
func ReadRankedCSV(path string) ([]RankedHolding, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return ParseRankedCSV(f)
}

// ParseRankedCSV parses ranked holdings with columns Rank,Ticker,Name,Weight
func ParseRankedCSV(r io.Reader) ([]RankedHolding, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIdx := make(map[string]int)
	for i, col := range header {
		colIdx[strings.TrimSpace(col)] = i
	}
	for _, col := range []string{"Rank", "Ticker", "Name", "Weight"} {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var holdings []RankedHolding
	rowNum := 1 // header is row 1, data starts at row 2
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		rank, err := strconv.Atoi(record[colIdx["Rank"]])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid rank %q", rowNum, record[colIdx["Rank"]])
		}
		weight, err := strconv.ParseFloat(record[colIdx["Weight"]], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid weight %q", rowNum, record[colIdx["Weight"]])
		}

		holdings = append(holdings, RankedHolding{
			Rank: rank,
			Holding: models.Holding{
				Ticker: record[colIdx["Ticker"]],
				Name:   record[colIdx["Name"]],
				Weight: weight,
			},
		})
	}

	return holdings, nil
}
