package fixture

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates a file extension with no loader.
var ErrUnsupportedFormat = errors.New("unsupported fixture format")

// ErrEmpty indicates a fixture file without a header row or records.
var ErrEmpty = errors.New("empty fixture")

// LoadError reports a fixture file that could not be turned into a table.
type LoadError struct {
	Path   string
	Format string // "csv", "xlsx", "json", "yaml"
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s fixture %s: %v", e.Format, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
