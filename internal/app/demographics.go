package app

import (
	"fmt"

	"chartweb/internal/chart"
	"chartweb/internal/dataset"
	"chartweb/internal/fixture"
	"chartweb/internal/view"
)

// Static figure ids, in page order.
const (
	FigTotalPopulation      = "total-population"
	FigHispanicNonHispanic  = "hispanic-non-hispanic"
	FigWhiteBlackPopulation = "white-black-population"
	FigTwoOrMoreRaces       = "two-or-more-races"
	FigPopulationBreakdown  = "population-breakdown"
	FigOtherRaces           = "other-races"
)

const donutHole = .3

// FieldTotal is the sum of one numeric field over all records.
type FieldTotal struct {
	Field string
	Total float64
}

// DemographicFigures builds the six demographics charts from t. It needs the
// State column and the population fields of fixture.DemographicFields.
func DemographicFigures(t dataset.Table) ([]StaticFigure, error) {
	states, err := t.Column(fixture.FieldState)
	if err != nil {
		return nil, err
	}
	col := make(map[string][]float64)
	for _, f := range fixture.DemographicFields[1:] {
		if col[f], err = t.Numbers(f); err != nil {
			return nil, err
		}
	}
	hispanic, err := dataset.Aggregate(t, fixture.FieldHispanic)
	if err != nil {
		return nil, err
	}
	nonHispanic, err := dataset.Aggregate(t, fixture.FieldNonHispanic)
	if err != nil {
		return nil, err
	}

	byState := func(title string, mode chart.BarMode) chart.Layout {
		return chart.Layout{
			Title:   title,
			BarMode: mode,
			XAxis:   chart.Axis{Title: "State"},
			YAxis:   chart.Axis{Title: "Population"},
		}
	}

	return []StaticFigure{
		{
			ID: FigTotalPopulation,
			Figure: chart.New(byState("Total Population per State", ""),
				chart.Bar("Total Population", states, col[fixture.FieldTotal])),
		},
		{
			ID: FigHispanicNonHispanic,
			Figure: chart.New(chart.Layout{Title: "Hispanic vs Non-Hispanic Population"},
				chart.Pie([]string{"Hispanic", "Non-Hispanic"}, []float64{hispanic, nonHispanic}, donutHole)),
		},
		{
			ID: FigWhiteBlackPopulation,
			Figure: chart.New(byState("White and Black Population Comparison", chart.BarModeGroup),
				chart.Bar("White Population", states, col[fixture.FieldWhiteTotal]),
				chart.Bar("Black Population", states, col[fixture.FieldBlackTotal])),
		},
		{
			ID: FigTwoOrMoreRaces,
			Figure: chart.New(chart.Layout{Title: "Two or More Races Population Distribution"},
				chart.Pie(states, col[fixture.FieldTwoOrMoreTotal], donutHole)),
		},
		{
			ID: FigPopulationBreakdown,
			Figure: chart.New(byState("Population Breakdown by Race", chart.BarModeStack),
				chart.Bar("White Population", states, col[fixture.FieldWhiteTotal]),
				chart.Bar("Black Population", states, col[fixture.FieldBlackTotal]),
				chart.Bar("Other Population", states, col[fixture.FieldOtherTotal]),
				chart.Bar("Two or More Races", states, col[fixture.FieldTwoOrMoreTotal])),
		},
		{
			ID: FigOtherRaces,
			Figure: chart.New(byState("Other Races Population", ""),
				chart.Bar("Other Population", states, col[fixture.FieldOtherTotal])),
		},
	}, nil
}

// Summary sums every numeric field of t.
func Summary(t dataset.Table) ([]FieldTotal, error) {
	totals := make([]FieldTotal, 0, len(t.NumericCols))
	for _, c := range t.NumericCols {
		field := t.Headers[c]
		v, err := dataset.Aggregate(t, field)
		if err != nil {
			return nil, fmt.Errorf("summing %s: %w", field, err)
		}
		totals = append(totals, FieldTotal{Field: field, Total: v})
	}
	return totals, nil
}

// DashboardLayout composes the demographics page.
func (a *App) DashboardLayout() *view.Node {
	stats := make([]view.Stat, len(a.summary))
	for i, t := range a.summary {
		stats[i] = view.Stat{Label: t.Field, Value: t.Total}
	}

	root := view.Div("dashboard",
		view.Header("Demographic Dashboard"),
		view.Stats("totals", stats),
	)
	for _, f := range a.figures {
		root.Children = append(root.Children, view.Graph(f.ID, f.SVG))
	}
	return root
}
