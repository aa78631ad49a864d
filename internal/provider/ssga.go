package provider

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// SSGA workbooks carry four rows of fund metadata above the header
const ssgaHeaderRow = 4

// ParseSSGAWorkbook reads the first sheet of an SSGA holdings workbook.
// Expected columns include Ticker, Name, Weight and Local Currency.
// Workbooks with several sheets always yield the first sheet's table.
func ParseSSGAWorkbook(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	t, err := tableFromRecords(rows, ssgaHeaderRow)
	if err != nil {
		return nil, err
	}

	log.Debugf("ParseSSGAWorkbook: sheet %q, %d rows", sheets[0], t.Len())
	return t, nil
}
