// Package decoder turns uploaded spreadsheet bytes into a Dataset. CSV is
// handled with encoding/csv, XLSX with excelize. The first row's cells
// define the column set; every following row becomes an ordered mapping of
// column name to cell text.
package decoder

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/excel-analyzer-api/internal/models"
)

// Errors reported to the caller as generic decode failures.
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyFile         = errors.New("file contains no rows")
)

// Decode picks a decoder from the file extension (.csv, .xlsx, .xlsm) and
// returns the decoded dataset.
func Decode(r io.Reader, fileName string) (*models.Dataset, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return DecodeCSV(r)
	case ".xlsx", ".xlsm":
		return DecodeXLSX(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// DecodeCSV reads a CSV stream. The header row defines the columns; short
// rows leave the trailing cells empty, long rows drop the overflow.
func DecodeCSV(r io.Reader) (*models.Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	ds := &models.Dataset{Columns: columns}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		ds.Rows = append(ds.Rows, rowFromCells(columns, record))
	}

	return ds, nil
}

// DecodeXLSX reads the first sheet of an XLSX workbook.
func DecodeXLSX(r io.Reader) (*models.Dataset, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	columns := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		columns[i] = strings.TrimSpace(h)
	}

	ds := &models.Dataset{Columns: columns}
	for _, cells := range rows[1:] {
		ds.Rows = append(ds.Rows, rowFromCells(columns, cells))
	}

	return ds, nil
}

func rowFromCells(columns, cells []string) models.Row {
	row := make(models.Row, len(columns))
	for i, col := range columns {
		if i < len(cells) {
			row[col] = cells[i]
		} else {
			row[col] = ""
		}
	}
	return row
}
