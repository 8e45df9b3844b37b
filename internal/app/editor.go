package app

import (
	"go.uber.org/zap"

	"chartweb/internal/chart"
	"chartweb/internal/engine"
	"chartweb/internal/fixture"
	"chartweb/internal/view"
)

// Category editor component ids.
const (
	CategoryDropdown = "category-dropdown"
	PieChart         = "pie-chart"
	JSONInput        = "json-input"
	JSONOutput       = "json-output"
)

// Reactive properties of the editor components.
var (
	KeyCategory = engine.Key{Component: CategoryDropdown, Property: "value"}
	KeyBuffer   = engine.Key{Component: JSONInput, Property: "value"}
	KeyFigure   = engine.Key{Component: PieChart, Property: "figure"}
	KeyEcho     = engine.Key{Component: JSONOutput, Property: "children"}
)

// RenderedFigure is a figure together with its SVG, as sent to the page.
type RenderedFigure struct {
	Figure chart.Figure `json:"figure"`
	SVG    string       `json:"svg"`
}

// EventResult carries the outputs produced by one input event, keyed
// "component.property".
type EventResult struct {
	Session string         `json:"session"`
	Outputs map[string]any `json:"outputs"`
}

// EditorDefaults returns the editor's initial input values: the first
// default category and the default dataset as JSON.
func EditorDefaults() map[engine.Key]string {
	d := fixture.DefaultCategories()
	return map[engine.Key]string{
		KeyCategory: d.Labels[0],
		KeyBuffer:   d.JSON(),
	}
}

func (a *App) editorDispatcher() (*engine.Dispatcher, error) {
	d := engine.NewDispatcher()
	err := d.Register(engine.Callback{
		Output: KeyFigure,
		Inputs: []engine.Key{KeyCategory, KeyBuffer},
		Handler: func(args []string) (any, error) {
			return a.renderFigure(a.Engine.UpdateChart(args[0], args[1])), nil
		},
	})
	if err != nil {
		return nil, err
	}
	err = d.Register(engine.Callback{
		Output: KeyEcho,
		Inputs: []engine.Key{KeyBuffer},
		Handler: func(args []string) (any, error) {
			return engine.EchoBuffer(args[0]), nil
		},
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (a *App) renderFigure(f chart.Figure) RenderedFigure {
	svg, err := a.Renderer.SVG(f)
	if err != nil {
		a.Logger.Debug("editor chart rendered as placeholder", zap.Error(err))
	}
	return RenderedFigure{Figure: f, SVG: string(svg)}
}

// ApplyEvent applies one input change to a session and returns the outputs
// to swap into the page.
func (a *App) ApplyEvent(sessionID string, ev engine.Event) (EventResult, error) {
	sess := a.Sessions.Get(sessionID)
	outputs, err := a.Sessions.Apply(sess, ev)
	return EventResult{Session: sess.ID, Outputs: keyed(outputs)}, err
}

// EditorLayout composes the category editor page for a session.
func (a *App) EditorLayout(sess *engine.Session) (*view.Node, error) {
	outputs, err := a.Sessions.Initial(sess)
	if err != nil {
		return nil, err
	}
	values := sess.Values()

	fallback := a.Engine.Fallback()
	options := make([]view.Option, len(fallback.Labels))
	for i, l := range fallback.Labels {
		options[i] = view.Option{Label: l, Value: l}
	}

	fig, _ := outputs[KeyFigure].(RenderedFigure)
	echo, _ := outputs[KeyEcho].(string)

	return view.Div("editor",
		view.Header("Category Pie Chart with JSON Input"),
		view.Label("Select Category to Display:", CategoryDropdown),
		view.Dropdown(CategoryDropdown, options, values[KeyCategory]),
		view.Graph(PieChart, []byte(fig.SVG)),
		view.Label("Modify Data (JSON Format):", JSONInput),
		view.Textarea(JSONInput, values[KeyBuffer], 10),
		view.Text(JSONOutput, echo),
	), nil
}

func keyed(outputs map[engine.Key]any) map[string]any {
	out := make(map[string]any, len(outputs))
	for k, v := range outputs {
		out[k.String()] = v
	}
	return out
}
