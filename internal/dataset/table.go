package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Table is an in-memory record table. Every row holds one cell per header.
type Table struct {
	Headers     []string
	Rows        [][]string
	NumericCols []int
}

// NewTable validates headers and rows and detects numeric columns.
func NewTable(headers []string, rows [][]string) (Table, error) {
	if len(headers) == 0 {
		return Table{}, fmt.Errorf("%w: no headers", ErrInvalidTable)
	}
	seen := make(map[string]bool, len(headers))
	for i, h := range headers {
		if h == "" {
			return Table{}, fmt.Errorf("%w: empty header at column %d", ErrInvalidTable, i+1)
		}
		if seen[h] {
			return Table{}, fmt.Errorf("%w: duplicate header %q", ErrInvalidTable, h)
		}
		seen[h] = true
	}
	for i, row := range rows {
		if len(row) != len(headers) {
			return Table{}, fmt.Errorf("%w: row %d has %d fields, want %d", ErrInvalidTable, i+1, len(row), len(headers))
		}
	}

	t := Table{Headers: headers, Rows: rows}
	t.NumericCols = detectNumericColumns(t)
	return t, nil
}

// Len returns the number of records.
func (t Table) Len() int {
	return len(t.Rows)
}

// ColumnIndex returns the index of the named header, or -1.
func (t Table) ColumnIndex(field string) int {
	for i, h := range t.Headers {
		if h == field {
			return i
		}
	}
	return -1
}

// Column returns the raw cells of the named field in record order.
func (t Table) Column(field string) ([]string, error) {
	idx := t.ColumnIndex(field)
	if idx == -1 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Numbers returns the named field parsed as float64 in record order. Cells
// that are not finite numbers become 0 so the result stays aligned with
// Column.
func (t Table) Numbers(field string) ([]float64, error) {
	cells, err := t.Column(field)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(cells))
	for i, c := range cells {
		out[i], _ = parseCell(c)
	}
	return out, nil
}

// IsNumeric reports whether the named field was detected as numeric.
func (t Table) IsNumeric(field string) bool {
	idx := t.ColumnIndex(field)
	for _, c := range t.NumericCols {
		if c == idx {
			return true
		}
	}
	return false
}

// parseCell parses a trimmed cell. NaN and infinities are rejected since
// they cannot be summed or encoded as JSON.
func parseCell(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// detectNumericColumns keeps the columns where at least 80% of the
// non-blank cells parse.
func detectNumericColumns(t Table) []int {
	var cols []int
	for c := range t.Headers {
		var filled, parsed int
		for _, row := range t.Rows {
			if strings.TrimSpace(row[c]) == "" {
				continue
			}
			filled++
			if _, ok := parseCell(row[c]); ok {
				parsed++
			}
		}
		if filled > 0 && parsed*5 >= filled*4 {
			cols = append(cols, c)
		}
	}
	return cols
}
