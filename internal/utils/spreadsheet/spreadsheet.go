// Package spreadsheet reads uploaded tables from csv or xlsx and writes xlsx exports.
package spreadsheet

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format is the encoding of an uploaded table.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for anything other than .csv or .xlsx.
var ErrUnsupportedFormat = errors.New("unsupported file type: only .csv and .xlsx files are allowed")

// FormatFromFilename picks the format from the file extension.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", ErrUnsupportedFormat
	}
}

// Table is a header row plus data rows. Rows may be shorter than the header.
type Table struct {
	Header []string
	Rows   [][]string
}

// Column returns the index of the first header matching any of names, ignoring case and
// surrounding spaces, or -1.
func (t Table) Column(names ...string) int {
	for i, h := range t.Header {
		h = strings.TrimSpace(h)
		for _, n := range names {
			if strings.EqualFold(h, n) {
				return i
			}
		}
	}
	return -1
}

// Cell returns the trimmed value at col, or "" when the row is short or col is -1.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// Read loads a table. For xlsx the first sheet is used. Blank rows are dropped.
func Read(r io.Reader, format Format) (Table, error) {
	var rows [][]string
	switch format {
	case FormatCSV:
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		reader.TrimLeadingSpace = true
		records, err := reader.ReadAll()
		if err != nil {
			return Table{}, fmt.Errorf("failed to read csv: %w", err)
		}
		rows = records
	case FormatXLSX:
		f, err := excelize.OpenReader(r)
		if err != nil {
			return Table{}, fmt.Errorf("failed to open Excel file: %w", err)
		}
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return Table{}, errors.New("workbook has no sheets")
		}
		rows, err = f.GetRows(sheets[0])
		if err != nil {
			return Table{}, fmt.Errorf("unable to read sheet: %w", err)
		}
	default:
		return Table{}, ErrUnsupportedFormat
	}

	rows = dropBlank(rows)
	if len(rows) == 0 {
		return Table{}, errors.New("file has no header row")
	}
	return Table{Header: rows[0], Rows: rows[1:]}, nil
}

func dropBlank(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		for _, v := range row {
			if strings.TrimSpace(v) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// WriteXLSX writes a single-sheet workbook with a header row followed by rows.
func WriteXLSX(w io.Writer, sheet string, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}
