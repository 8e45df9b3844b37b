// Package chart holds the render-ready chart model shared by both dashboards
// and renders it to SVG.
package chart

// TraceType names the primitive a trace is drawn with.
type TraceType string

const (
	TraceBar TraceType = "bar"
	TracePie TraceType = "pie"
)

// BarMode controls how several bar traces share an axis.
type BarMode string

const (
	BarModeGroup BarMode = "group"
	BarModeStack BarMode = "stack"
)

// Trace is one data series.
type Trace struct {
	// Type selects bar or pie drawing.
	Type TraceType `json:"type"`
	// Name is the legend name of the series.
	Name string `json:"name,omitempty"`
	// X holds the bar categories.
	X []string `json:"x,omitempty"`
	// Y holds one bar height per category.
	Y []float64 `json:"y,omitempty"`
	// Labels holds the pie slice names.
	Labels []string `json:"labels,omitempty"`
	// Values holds one pie slice size per label.
	Values []float64 `json:"values,omitempty"`
	// Hole is the donut hole as a fraction of the radius (0 for a full pie).
	Hole float64 `json:"hole,omitempty"`
}

// Axis describes one chart axis.
type Axis struct {
	Title string `json:"title,omitempty"`
}

// Layout holds figure-wide presentation settings.
type Layout struct {
	Title   string  `json:"title,omitempty"`
	BarMode BarMode `json:"barmode,omitempty"`
	XAxis   Axis    `json:"xaxis"`
	YAxis   Axis    `json:"yaxis"`
}

// Figure is a render-ready chart. Figures are built fresh from data and never
// modified afterwards.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// New assembles a figure from a layout and traces.
func New(layout Layout, traces ...Trace) Figure {
	data := make([]Trace, len(traces))
	copy(data, traces)
	return Figure{Data: data, Layout: layout}
}

// Bar returns a bar trace. The slices are copied.
func Bar(name string, x []string, y []float64) Trace {
	return Trace{
		Type: TraceBar,
		Name: name,
		X:    append([]string(nil), x...),
		Y:    append([]float64(nil), y...),
	}
}

// Pie returns a pie trace with the given hole fraction. The slices are copied.
func Pie(labels []string, values []float64, hole float64) Trace {
	return Trace{
		Type:   TracePie,
		Labels: append([]string(nil), labels...),
		Values: append([]float64(nil), values...),
		Hole:   hole,
	}
}
