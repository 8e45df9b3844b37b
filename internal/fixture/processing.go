package fixture

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"chartweb/internal/dataset"
)

// Load reads a table file, choosing the loader by extension.
func Load(path string) (dataset.Table, error) {
	format := formatOf(path)
	if format == "" {
		return dataset.Table{}, &LoadError{Path: path, Format: strings.TrimPrefix(filepath.Ext(path), "."), Err: ErrUnsupportedFormat}
	}

	file, err := os.Open(path)
	if err != nil {
		return dataset.Table{}, &LoadError{Path: path, Format: format, Err: err}
	}
	defer file.Close()

	var t dataset.Table
	switch format {
	case "csv":
		t, err = LoadCSV(file)
	case "xlsx":
		t, err = LoadExcel(file)
	case "json":
		t, err = LoadJSON(file)
	case "yaml":
		t, err = LoadYAML(file)
	}
	if err != nil {
		return dataset.Table{}, &LoadError{Path: path, Format: format, Err: err}
	}
	return t, nil
}

func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv"
	case ".xlsx":
		return "xlsx"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}

// LoadCSV reads a table whose first row holds the headers.
func LoadCSV(r io.Reader) (dataset.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return dataset.Table{}, err
	}
	return tableFromRows(rows)
}

// LoadExcel reads the first sheet of an xlsx workbook.
func LoadExcel(r io.Reader) (dataset.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return dataset.Table{}, err
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	if sheet == "" {
		return dataset.Table{}, fmt.Errorf("no sheets")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return dataset.Table{}, err
	}
	return tableFromRows(rows)
}

// tableFromRows names blank headers Column_N and pads short rows, since both
// csv and excelize drop trailing empty cells.
func tableFromRows(rows [][]string) (dataset.Table, error) {
	if len(rows) == 0 {
		return dataset.Table{}, ErrEmpty
	}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Column_%d", i+1)
		}
		headers[i] = h
	}

	body := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		if len(row) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, row)
			row = padded
		}
		body = append(body, row)
	}
	return dataset.NewTable(headers, body)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// WriteExcel writes t to w as a single-sheet workbook. Numeric columns are
// stored as numbers.
func WriteExcel(w io.Writer, t dataset.Table, sheet string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, len(t.Headers))
	for i, h := range t.Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	numeric := make(map[int]bool, len(t.NumericCols))
	for _, c := range t.NumericCols {
		numeric[c] = true
	}
	for r, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for c, val := range row {
			cells[c] = val
			if numeric[c] {
				if n, ok := parseNumber(val); ok {
					cells[c] = n
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", r+1, err)
		}
	}

	return f.Write(w)
}
