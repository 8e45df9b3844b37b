package chart

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"math"

	"github.com/dustin/go-humanize"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNothingToDraw indicates a figure without any drawable value.
var ErrNothingToDraw = errors.New("nothing to draw")

// ErrMixedTraces indicates a figure combining pie and bar traces.
var ErrMixedTraces = errors.New("cannot mix pie and bar traces")

// palette follows the familiar ten-color categorical cycle.
var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
}

func seriesColor(i int) drawing.Color {
	return palette[i%len(palette)]
}

// Renderer draws figures as SVG at a fixed size.
type Renderer struct {
	Width  int
	Height int
}

// Render writes f to w as SVG.
func (r Renderer) Render(w io.Writer, f Figure) error {
	if len(f.Data) == 0 {
		return ErrNothingToDraw
	}
	pies := 0
	for _, t := range f.Data {
		if t.Type == TracePie {
			pies++
		}
	}
	switch {
	case pies == 0:
		return r.renderBars(w, f)
	case pies == 1 && len(f.Data) == 1:
		return r.renderPie(w, f)
	default:
		return ErrMixedTraces
	}
}

// SVG renders f into memory. When rendering fails it still returns a
// placeholder SVG naming the chart, together with the error.
func (r Renderer) SVG(f Figure) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, f); err != nil {
		return Placeholder(r.Width, r.Height, f.Layout.Title), fmt.Errorf("rendering %q: %w", f.Layout.Title, err)
	}
	return buf.Bytes(), nil
}

// Placeholder returns a bordered SVG box with a centered caption.
func Placeholder(width, height int, caption string) []byte {
	if caption == "" {
		caption = "Chart unavailable"
	}
	return []byte(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<rect x="0.5" y="0.5" width="%d" height="%d" fill="none" stroke="#ccc"/>`+
			`<text x="50%%" y="50%%" text-anchor="middle" fill="#888" font-family="sans-serif">%s</text></svg>`,
		width, height, width, height, width-1, height-1, html.EscapeString(caption)))
}

// renderPie drops slices that are not positive, matching how pie charts
// treat them elsewhere.
func (r Renderer) renderPie(w io.Writer, f Figure) error {
	t := f.Data[0]
	if len(t.Labels) != len(t.Values) {
		return fmt.Errorf("pie has %d labels but %d values", len(t.Labels), len(t.Values))
	}
	var values []gochart.Value
	for i, v := range t.Values {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		values = append(values, gochart.Value{
			Label: svgText(t.Labels[i]),
			Value: v,
			Style: gochart.Style{FillColor: seriesColor(i), StrokeColor: drawing.ColorWhite, StrokeWidth: 2},
		})
	}
	if len(values) == 0 {
		return ErrNothingToDraw
	}

	pie := gochart.PieChart{
		Title:  svgText(f.Layout.Title),
		Width:  r.Width,
		Height: r.Height,
		Values: values,
	}
	return pie.Render(gochart.SVG, w)
}

func (r Renderer) renderBars(w io.Writer, f Figure) error {
	for _, t := range f.Data {
		if len(t.X) != len(t.Y) {
			return fmt.Errorf("bar trace %q has %d categories but %d values", t.Name, len(t.X), len(t.Y))
		}
	}
	if len(f.Data) > 1 && f.Layout.BarMode == BarModeStack {
		return r.renderStacked(w, f)
	}

	// Grouped traces are interleaved per category and told apart by color.
	var bars []gochart.Value
	categories := f.Data[0].X
	for c := range categories {
		for s, t := range f.Data {
			if c >= len(t.Y) {
				continue
			}
			bars = append(bars, gochart.Value{
				Label: svgText(barLabel(categories[c], t.Name, len(f.Data))),
				Value: t.Y[c],
				Style: gochart.Style{FillColor: seriesColor(s), StrokeColor: seriesColor(s)},
			})
		}
	}
	if len(bars) == 0 {
		return ErrNothingToDraw
	}

	bc := gochart.BarChart{
		Title:    svgText(f.Layout.Title),
		Width:    r.Width,
		Height:   r.Height,
		BarWidth: barWidth(r.Width, len(bars)),
		YAxis: gochart.YAxis{
			Name:           svgText(f.Layout.YAxis.Title),
			ValueFormatter: formatTick,
		},
		Bars: bars,
	}
	return bc.Render(gochart.SVG, w)
}

func (r Renderer) renderStacked(w io.Writer, f Figure) error {
	categories := f.Data[0].X
	if len(categories) == 0 {
		return ErrNothingToDraw
	}
	stacks := make([]gochart.StackedBar, len(categories))
	for c, name := range categories {
		stack := gochart.StackedBar{Name: svgText(name)}
		for s, t := range f.Data {
			if c >= len(t.Y) {
				continue
			}
			stack.Values = append(stack.Values, gochart.Value{
				Label: svgText(t.Name),
				Value: t.Y[c],
				Style: gochart.Style{FillColor: seriesColor(s), StrokeColor: seriesColor(s)},
			})
		}
		stacks[c] = stack
	}

	sbc := gochart.StackedBarChart{
		Title:  svgText(f.Layout.Title),
		Width:  r.Width,
		Height: r.Height,
		Bars:   stacks,
	}
	return sbc.Render(gochart.SVG, w)
}

// svgText escapes s for an SVG text node. go-chart writes label and title
// text into the markup verbatim.
func svgText(s string) string {
	return html.EscapeString(s)
}

func barLabel(category, series string, traces int) string {
	if traces == 1 || series == "" {
		return category
	}
	return category + " " + series
}

func barWidth(width, bars int) int {
	if bars == 0 {
		return 0
	}
	bw := width / (bars * 2)
	if bw < 8 {
		return 8
	}
	if bw > 80 {
		return 80
	}
	return bw
}

func formatTick(v interface{}) string {
	if f, ok := v.(float64); ok {
		return humanize.Comma(int64(math.Round(f)))
	}
	return fmt.Sprintf("%v", v)
}
