package dataset

import (
	"fmt"
	"math"
	"sort"
)

// Operation names accepted by Calculate.
const (
	OpSum     = "sum"
	OpAverage = "average"
	OpMedian  = "median"
	OpMin     = "min"
	OpMax     = "max"
	OpCount   = "count"
	OpStd     = "std"
)

// Operations lists every supported operation in display order.
var Operations = []string{OpSum, OpAverage, OpMedian, OpMin, OpMax, OpCount, OpStd}

// Aggregate returns the arithmetic sum of field across all records. Cells
// that are not finite numbers contribute nothing, and an empty table sums
// to 0.
func Aggregate(t Table, field string) (float64, error) {
	values, err := numericValues(t, field)
	if err != nil {
		return 0, err
	}
	return total(values), nil
}

// Calculate applies op to the numeric cells of field.
func Calculate(t Table, field, op string) (float64, error) {
	values, err := numericValues(t, field)
	if err != nil {
		return 0, err
	}
	n := len(values)
	if n == 0 {
		return 0, fmt.Errorf("%w in %q", ErrNoNumericValues, field)
	}
	switch op {
	case OpSum:
		return total(values), nil
	case OpAverage:
		return total(values) / float64(n), nil
	case OpMedian:
		return (values[(n-1)/2] + values[n/2]) / 2, nil
	case OpMin:
		return values[0], nil
	case OpMax:
		return values[n-1], nil
	case OpCount:
		return float64(n), nil
	case OpStd:
		return sampleStdDev(values), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedOperation, op)
	}
}

// numericValues returns the finite cells of field in ascending order.
func numericValues(t Table, field string) ([]float64, error) {
	idx := t.ColumnIndex(field)
	if idx == -1 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	var values []float64
	for _, row := range t.Rows {
		if v, ok := parseCell(row[idx]); ok {
			values = append(values, v)
		}
	}
	sort.Float64s(values)
	return values, nil
}

// total sums in ascending order so the result does not depend on record
// order.
func total(sorted []float64) float64 {
	var s float64
	for _, v := range sorted {
		s += v
	}
	return s
}

func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := total(values) / float64(len(values))
	var ss float64
	for _, v := range values {
		ss += (v - mean) * (v - mean)
	}
	return math.Sqrt(ss / float64(len(values)-1))
}
