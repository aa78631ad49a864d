package provider

import (
	"io"

	log "github.com/sirupsen/logrus"
)

// iShares CSVs open with nine lines of fund metadata, some of them blank
const isharesSkipRows = 9

var isharesColumns = []string{"Ticker", "Name", "Weight (%)", "Market Currency"}

// ParseISharesCSV reads an iShares holdings CSV, keeping only the ticker,
// name, weight and currency columns. "Weight (%)" is renamed to "Weight".
func ParseISharesCSV(r io.Reader) (*Table, error) {
	body, err := skipLines(r, isharesSkipRows)
	if err != nil {
		return nil, err
	}

	records, err := readRecords(body)
	if err != nil {
		return nil, err
	}

	t, err := tableFromRecords(records, 0)
	if err != nil {
		return nil, err
	}

	t, err = t.Select(isharesColumns...)
	if err != nil {
		return nil, err
	}
	t.Rename("Weight (%)", "Weight")

	log.Debugf("ParseISharesCSV: %d rows", t.Len())
	return t, nil
}
