package engine_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"chartweb/internal/chart"
	"chartweb/internal/dataset"
	"chartweb/internal/engine"
	"chartweb/internal/fixture"
)

func newEngine() *engine.Engine {
	return engine.New(fixture.DefaultCategories())
}

func defaultFigure() chart.Figure {
	return chart.New(chart.Layout{Title: engine.PieTitle},
		chart.Pie([]string{"A", "B", "C", "D"}, []float64{10, 20, 30, 40}, 0))
}

func TestUpdateChart_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		buf  string
		want chart.Figure
	}{
		{
			name: "valid buffer",
			buf:  `{"Category":["A","B"],"Values":[1,2]}`,
			want: chart.New(chart.Layout{Title: engine.PieTitle}, chart.Pie([]string{"A", "B"}, []float64{1, 2}, 0)),
		},
		{name: "not json", buf: `not json`, want: defaultFigure()},
		{name: "missing values", buf: `{"Category":["A"]}`, want: defaultFigure()},
		{name: "length mismatch", buf: `{"Category":["A","B"],"Values":[1]}`, want: defaultFigure()},
		{name: "wrong shape", buf: `{"Category":"A","Values":1}`, want: defaultFigure()},
		{name: "empty", buf: ``, want: defaultFigure()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newEngine().UpdateChart("A", tt.buf)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("UpdateChart() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUpdateChart_SelectionDoesNotFilter(t *testing.T) {
	e := newEngine()
	buf := `{"Category":["A","B","C"],"Values":[1,2,3]}`
	want := e.UpdateChart("A", buf)
	for _, sel := range []string{"B", "C", "", "not-a-label"} {
		if diff := cmp.Diff(want, e.UpdateChart(sel, buf)); diff != "" {
			t.Errorf("selection %q changed the chart (-want +got):\n%s", sel, diff)
		}
	}
}

func TestUpdateChart_RoundTripsWellFormedBuffers(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	e := newEngine()
	for i := 0; i < 50; i++ {
		n := rng.Intn(8)
		d := dataset.CategoryDataset{Labels: make([]string, n), Values: make([]float64, n)}
		for j := 0; j < n; j++ {
			d.Labels[j] = fmt.Sprintf("cat-%d-%d", i, j)
			d.Values[j] = float64(rng.Intn(1000)) / 4
		}
		buf, err := json.Marshal(d)
		if err != nil {
			t.Fatal(err)
		}

		got := e.UpdateChart("", string(buf))
		if len(got.Data) != 1 {
			t.Fatalf("expected one trace, got %d", len(got.Data))
		}
		assert.Equal(t, d.Labels, got.Data[0].Labels)
		assert.Equal(t, d.Values, got.Data[0].Values)
	}
}

func TestUpdateChart_MalformedAlwaysFallsBack(t *testing.T) {
	e := newEngine()
	bad := []string{
		`{`, `}`, `[]`, `{}`, `"text"`, `42`, `true`, `null`,
		`{"Category":null,"Values":null}`,
		`{"Category":["A"],"Values":[1,2]}`,
		`{"Category":[["A"]],"Values":[1]}`,
		`{"Category":["A"],"Values":[{"v":1}]}`,
		`{'Category':['A'],'Values':[1]}`,
	}
	for _, buf := range bad {
		if diff := cmp.Diff(defaultFigure(), e.UpdateChart("A", buf)); diff != "" {
			t.Errorf("buffer %q did not fall back (-want +got):\n%s", buf, diff)
		}
	}
}

func TestResolve_States(t *testing.T) {
	e := newEngine()

	d, st := e.Resolve(`{"Category":["x"],"Values":[5]}`)
	assert.Equal(t, engine.StateValid, st)
	assert.Equal(t, []string{"x"}, d.Labels)

	d, st = e.Resolve(`oops`)
	assert.Equal(t, engine.StateFallback, st)
	assert.Equal(t, fixture.DefaultCategories(), d)

	assert.Equal(t, "valid", engine.StateValid.String())
	assert.Equal(t, "fallback", engine.StateFallback.String())
}

func TestEngine_FallbackIsNotShared(t *testing.T) {
	e := newEngine()
	d, _ := e.Resolve(`bad`)
	d.Labels[0] = "mutated"

	again, _ := e.Resolve(`bad`)
	assert.Equal(t, "A", again.Labels[0])
	assert.Equal(t, "A", e.Fallback().Labels[0])
}

func TestEchoBuffer(t *testing.T) {
	for _, s := range []string{"", "not json", `{"Category":["A"]}`, "multi\nline\ttext", "ünïcødé"} {
		assert.Equal(t, s, engine.EchoBuffer(s))
	}
}
