package provider

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/epeers/indexetfs/internal/models"
	log "github.com/sirupsen/logrus"
)

// Fetcher downloads a raw holdings file
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Loader turns a provider's holdings URL into a raw Table
type Loader interface {
	Load(ctx context.Context, url string) (*Table, error)
}

// parseFunc parses one provider's raw file format
type parseFunc func(r io.Reader) (*Table, error)

// fileLoader fetches a file and hands its body to a provider parser
type fileLoader struct {
	fetcher Fetcher
	parse   parseFunc
}

func (l *fileLoader) Load(ctx context.Context, url string) (*Table, error) {
	body, err := l.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return l.parse(bytes.NewReader(body))
}

// NewSSGALoader returns a Loader for SSGA daily holdings workbooks
func NewSSGALoader(f Fetcher) Loader {
	return &fileLoader{fetcher: f, parse: ParseSSGAWorkbook}
}

// NewISharesLoader returns a Loader for iShares holdings CSVs
func NewISharesLoader(f Fetcher) Loader {
	return &fileLoader{fetcher: f, parse: ParseISharesCSV}
}

// NewDirexionLoader returns a Loader for Direxion holdings CSVs
func NewDirexionLoader(f Fetcher) Loader {
	return &fileLoader{fetcher: f, parse: ParseDirexionCSV}
}

// Loaders returns one Loader per supported provider, all sharing f
func Loaders(f Fetcher) map[models.Provider]Loader {
	return map[models.Provider]Loader{
		models.ProviderSSGA:     NewSSGALoader(f),
		models.ProviderIShares:  NewISharesLoader(f),
		models.ProviderDirexion: NewDirexionLoader(f),
	}
}

// skipLines discards the first n physical lines of r. Blank lines count,
// whereas csv.Reader drops them without producing a record.
func skipLines(r io.Reader, n int) (io.Reader, error) {
	br := bufio.NewReader(r)
	for i := 0; i < n; i++ {
		if _, err := br.ReadString('\n'); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("header line %d not found: source ends after %d lines", n+1, i)
			}
			return nil, fmt.Errorf("failed to skip metadata lines: %w", err)
		}
	}
	return br, nil
}

// readRecords reads every CSV record from r. Record widths may vary.
// A malformed record after the first one ends the read and the records
// collected so far are returned.
func readRecords(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) && len(records) > 0 {
				log.Warnf("readRecords: truncating CSV at line %d: %v", parseErr.Line, parseErr.Err)
				break
			}
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}

// tableFromRecords uses records[headerRow] as the header and everything
// after it as data
func tableFromRecords(records [][]string, headerRow int) (*Table, error) {
	if len(records) <= headerRow {
		return nil, fmt.Errorf("header row %d not found: source has %d rows", headerRow, len(records))
	}
	return NewTable(records[headerRow], records[headerRow+1:]), nil
}
