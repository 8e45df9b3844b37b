package dataset

import "errors"

// ErrMalformedEditBuffer indicates an edit buffer that does not decode into a
// CategoryDataset. It is an expected input condition, not a failure.
var ErrMalformedEditBuffer = errors.New("malformed edit buffer")

// ErrInvalidTable indicates rows or headers that break the table invariants.
var ErrInvalidTable = errors.New("invalid table")

// ErrUnknownField indicates a field name that is not a table header.
var ErrUnknownField = errors.New("unknown field")

// ErrNoNumericValues indicates a column without a single numeric cell.
var ErrNoNumericValues = errors.New("no numeric values")

// ErrUnsupportedOperation indicates an aggregate operation name that Calculate
// does not know.
var ErrUnsupportedOperation = errors.New("unsupported operation")
