package server

import (
	"chartweb/internal/chart"
	"chartweb/internal/engine"
	"chartweb/internal/view"
)

// Page is the data handed to a page template.
type Page struct {
	Title   string
	Root    *view.Node
	Session string
}

// CalculationResult is one aggregate over a demographics column.
type CalculationResult struct {
	Field     string  `json:"field"`
	Operation string  `json:"operation"`
	Value     float64 `json:"value"`
}

// FigureResponse is a static figure as served by the API.
type FigureResponse struct {
	ID     string       `json:"id"`
	Figure chart.Figure `json:"figure"`
}

// EventRequest is an editor input change posted over HTTP.
type EventRequest struct {
	Session string `json:"session"`
	engine.Event
}

// APIResponse is the envelope of every /api response.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
