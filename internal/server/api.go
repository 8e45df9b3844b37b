package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"chartweb/internal/dataset"
	"chartweb/internal/engine"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

const maxEventBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   Version,
		"uptime":    s.app.Uptime().Round(time.Second).String(),
		"sessions":  s.app.Sessions.Len(),
	})
}

func (s *Server) figuresHandler(w http.ResponseWriter, r *http.Request) {
	figs := s.app.Figures()
	out := make([]FigureResponse, len(figs))
	for i, f := range figs {
		out[i] = FigureResponse{ID: f.ID, Figure: f.Figure}
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: out})
}

func (s *Server) figureHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	f, ok := s.app.Figure(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, APIResponse{Error: "unknown figure " + id})
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: FigureResponse{ID: f.ID, Figure: f.Figure}})
}

func (s *Server) aggregateHandler(w http.ResponseWriter, r *http.Request) {
	field := r.URL.Query().Get("field")
	op := r.URL.Query().Get("op")
	if op == "" {
		op = dataset.OpSum
	}
	if field == "" {
		writeJSON(w, http.StatusBadRequest, APIResponse{Error: "field is required"})
		return
	}

	v, err := dataset.Calculate(s.app.Demographics, field, op)
	switch {
	case errors.Is(err, dataset.ErrUnknownField):
		writeJSON(w, http.StatusNotFound, APIResponse{Error: err.Error()})
		return
	case err != nil:
		writeJSON(w, http.StatusBadRequest, APIResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: CalculationResult{Field: field, Operation: op, Value: v}})
}

func (s *Server) eventsHandler(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Error: "invalid event: " + err.Error()})
		return
	}
	if req.Session == "" {
		if c, err := r.Cookie(sessionCookie); err == nil {
			req.Session = c.Value
		}
	}

	res, err := s.app.ApplyEvent(req.Session, req.Event)
	switch {
	case errors.Is(err, engine.ErrUnknownInput):
		writeJSON(w, http.StatusBadRequest, APIResponse{Data: res, Error: err.Error()})
		return
	case err != nil:
		s.logger.Error("editor callback failed", zap.String("session", res.Session), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, APIResponse{Data: res, Error: "callback failed"})
		return
	}
	writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: res})
}
