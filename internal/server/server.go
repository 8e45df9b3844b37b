// Package server exposes the dashboards over HTTP.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"chartweb/internal/app"
)

// Server serves both dashboards, their API and the editor websocket.
type Server struct {
	app     *app.App
	logger  *zap.Logger
	handler http.Handler
}

// New registers every route for a.
func New(a *app.App) *Server {
	s := &Server{app: a, logger: a.Logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.dashboardHandler)
	mux.HandleFunc("GET /editor", s.editorHandler)
	mux.HandleFunc("GET /ws", s.wsHandler)
	mux.HandleFunc("GET /charts/{file}", s.chartHandler)
	mux.HandleFunc("GET /export/demographics.xlsx", s.exportHandler)
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /api/figures", s.figuresHandler)
	mux.HandleFunc("GET /api/figures/{id}", s.figureHandler)
	mux.HandleFunc("GET /api/aggregate", s.aggregateHandler)
	mux.HandleFunc("POST /api/editor/events", s.eventsHandler)

	s.handler = s.logRequests(mux)
	return s
}

// Handler returns the root handler, including request logging.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe listens on the configured address and serves until ctx is
// done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := s.app.Config.Server.Addr
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln and prunes idle editor sessions until ctx is done, then
// shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	cfg := s.app.Config
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout.Duration,
		ErrorLog:          zap.NewStdLog(s.logger),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server running", zap.String("addr", "http://"+ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return s.app.Sessions.RunPruner(gctx, cfg.Session.PruneInterval.Duration, cfg.Session.IdleTTL.Duration, func(n int) {
			s.logger.Debug("pruned idle sessions", zap.Int("count", n))
		})
	})
	return g.Wait()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack lets the websocket upgrade reach the underlying connection.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
