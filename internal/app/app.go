// Package app wires chartweb together: data, figures, the reactive engine and
// the page layouts. An App is built once at startup and handed to the server;
// nothing here is global.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"chartweb/internal/chart"
	"chartweb/internal/config"
	"chartweb/internal/dataset"
	"chartweb/internal/engine"
	"chartweb/internal/fixture"
)

// StaticFigure is one demographics chart, rendered once.
type StaticFigure struct {
	ID     string
	Figure chart.Figure
	SVG    []byte
}

// App is the application context.
type App struct {
	Config       *config.Config
	Logger       *zap.Logger
	Demographics dataset.Table
	Renderer     chart.Renderer
	Engine       *engine.Engine
	Sessions     *engine.SessionStore

	figures   []StaticFigure
	summary   []FieldTotal
	startedAt time.Time
}

// LoadDemographics returns the configured demographics table, or the built-in
// one when no fixture file is set.
func LoadDemographics(cfg *config.Config, logger *zap.Logger) (dataset.Table, error) {
	path := cfg.Fixtures.Demographics
	if path == "" {
		return fixture.DefaultDemographics(), nil
	}
	table, err := fixture.Load(path)
	if err != nil {
		return dataset.Table{}, err
	}
	logger.Info("loaded demographics fixture", zap.String("path", path), zap.Int("records", table.Len()))
	return table, nil
}

// New loads the fixtures, builds and renders the static figures and
// registers the editor callbacks.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	table, err := LoadDemographics(cfg, logger)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:       cfg,
		Logger:       logger,
		Demographics: table,
		Renderer:     chart.Renderer{Width: cfg.Charts.Width, Height: cfg.Charts.Height},
		Engine:       engine.New(fixture.DefaultCategories()),
		startedAt:    time.Now(),
	}

	figs, err := DemographicFigures(table)
	if err != nil {
		return nil, fmt.Errorf("building demographics figures: %w", err)
	}
	if a.summary, err = Summary(table); err != nil {
		return nil, fmt.Errorf("aggregating demographics: %w", err)
	}
	if a.figures, err = a.renderAll(ctx, figs); err != nil {
		return nil, err
	}

	d, err := a.editorDispatcher()
	if err != nil {
		return nil, err
	}
	a.Sessions = engine.NewSessionStore(d, EditorDefaults())
	return a, nil
}

// renderAll renders the figures concurrently. A chart that fails to render
// is replaced by a placeholder and logged.
func (a *App) renderAll(ctx context.Context, figs []StaticFigure) ([]StaticFigure, error) {
	out := make([]StaticFigure, len(figs))
	copy(out, figs)

	g, gctx := errgroup.WithContext(ctx)
	for i := range out {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			svg, err := a.Renderer.SVG(out[i].Figure)
			if err != nil {
				a.Logger.Warn("chart render failed", zap.String("chart", out[i].ID), zap.Error(err))
			}
			out[i].SVG = svg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("rendering charts: %w", err)
	}
	return out, nil
}

// Figures returns the static demographics figures in page order.
func (a *App) Figures() []StaticFigure {
	return a.figures
}

// Figure returns the static figure with the given id.
func (a *App) Figure(id string) (StaticFigure, bool) {
	for _, f := range a.figures {
		if f.ID == id {
			return f, true
		}
	}
	return StaticFigure{}, false
}

// Totals returns the load-time aggregates of the demographics table.
func (a *App) Totals() []FieldTotal {
	return a.summary
}

// Uptime reports how long the App has existed.
func (a *App) Uptime() time.Duration {
	return time.Since(a.startedAt)
}
