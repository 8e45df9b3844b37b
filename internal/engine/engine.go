// Package engine keeps the category editor's pie chart in sync with its
// inputs. Handlers are pure functions; the Dispatcher decides which of them
// run for a given input change, and the SessionStore keeps each browser
// session's input values apart.
package engine

import (
	"chartweb/internal/chart"
	"chartweb/internal/dataset"
)

// PieTitle is the title of the editor's pie chart.
const PieTitle = "Pie Chart Example"

// State reports which dataset backs the current chart.
type State int

const (
	// StateValid means the edit buffer parsed and is the active dataset.
	StateValid State = iota
	// StateFallback means the edit buffer did not parse and the default
	// dataset is active.
	StateFallback
)

func (s State) String() string {
	switch s {
	case StateValid:
		return "valid"
	case StateFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Engine derives chart figures from edit buffers.
type Engine struct {
	fallback dataset.CategoryDataset
}

// New returns an Engine that falls back to the given dataset. The dataset is
// copied.
func New(fallback dataset.CategoryDataset) *Engine {
	return &Engine{fallback: fallback.Clone()}
}

// Fallback returns a copy of the fallback dataset.
func (e *Engine) Fallback() dataset.CategoryDataset {
	return e.fallback.Clone()
}

// Resolve returns the active dataset for buf and the state it implies.
func (e *Engine) Resolve(buf string) (dataset.CategoryDataset, State) {
	d, err := dataset.ParseCategoryDataset(buf)
	if err != nil {
		return e.fallback.Clone(), StateFallback
	}
	return d, StateValid
}

// UpdateChart builds the pie figure for the current inputs. The selected
// category is accepted but does not filter the chart: the whole active
// dataset is always shown.
func (e *Engine) UpdateChart(selectedCategory, buf string) chart.Figure {
	d, _ := e.Resolve(buf)
	return PieFigure(d)
}

// EchoBuffer returns the edit buffer unchanged for display.
func EchoBuffer(buf string) string {
	return buf
}

// PieFigure renders a category dataset as the editor's pie chart.
func PieFigure(d dataset.CategoryDataset) chart.Figure {
	return chart.New(chart.Layout{Title: PieTitle}, chart.Pie(d.Labels, d.Values, 0))
}
