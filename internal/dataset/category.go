package dataset

import (
	"encoding/json"
	"fmt"
)

// CategoryDataset pairs category labels with one value each.
type CategoryDataset struct {
	Labels []string  `json:"Category"`
	Values []float64 `json:"Values"`
}

// Validate checks that every label has exactly one value.
func (d CategoryDataset) Validate() error {
	if len(d.Labels) != len(d.Values) {
		return fmt.Errorf("%w: %d categories but %d values", ErrMalformedEditBuffer, len(d.Labels), len(d.Values))
	}
	return nil
}

// Clone returns a deep copy so callers can never alias a shared default.
func (d CategoryDataset) Clone() CategoryDataset {
	return CategoryDataset{
		Labels: append([]string(nil), d.Labels...),
		Values: append([]float64(nil), d.Values...),
	}
}

// JSON returns the dataset in edit buffer form.
func (d CategoryDataset) JSON() string {
	b, err := json.Marshal(d)
	if err != nil {
		// []string and finite []float64 always marshal.
		return "{}"
	}
	return string(b)
}

// ParseCategoryDataset decodes an edit buffer of the form
// {"Category": [...], "Values": [...]}. Keys are matched exactly. Extra keys
// are ignored. Every failure wraps ErrMalformedEditBuffer.
func ParseCategoryDataset(buf string) (CategoryDataset, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(buf), &raw); err != nil {
		return CategoryDataset{}, fmt.Errorf("%w: %v", ErrMalformedEditBuffer, err)
	}
	if raw == nil {
		return CategoryDataset{}, fmt.Errorf("%w: not an object", ErrMalformedEditBuffer)
	}

	var d CategoryDataset
	if err := decodeField(raw, "Category", &d.Labels); err != nil {
		return CategoryDataset{}, err
	}
	if err := decodeField(raw, "Values", &d.Values); err != nil {
		return CategoryDataset{}, err
	}
	if err := d.Validate(); err != nil {
		return CategoryDataset{}, err
	}
	return d, nil
}

func decodeField[T any](raw map[string]json.RawMessage, key string, dst *[]T) error {
	msg, ok := raw[key]
	if !ok {
		return fmt.Errorf("%w: missing %q", ErrMalformedEditBuffer, key)
	}
	if err := json.Unmarshal(msg, dst); err != nil {
		return fmt.Errorf("%w: field %q: %v", ErrMalformedEditBuffer, key, err)
	}
	if *dst == nil {
		return fmt.Errorf("%w: field %q is null", ErrMalformedEditBuffer, key)
	}
	return nil
}
