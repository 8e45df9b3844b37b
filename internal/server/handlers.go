package server

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"chartweb/internal/fixture"
)

const sessionCookie = "chartweb_session"

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, dashboardTemplate, Page{
		Title: "Demographic Dashboard",
		Root:  s.app.DashboardLayout(),
	})
}

func (s *Server) editorHandler(w http.ResponseWriter, r *http.Request) {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}
	sess := s.app.Sessions.Get(id)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	root, err := s.app.EditorLayout(sess)
	if err != nil {
		s.logger.Error("editor layout failed", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	s.render(w, editorTemplate, Page{
		Title:   "Category Editor",
		Root:    root,
		Session: sess.ID,
	})
}

func (s *Server) chartHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := strings.CutSuffix(r.PathValue("file"), ".svg")
	if !ok {
		http.NotFound(w, r)
		return
	}
	fig, ok := s.app.Figure(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(fig.SVG)
}

func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := fixture.WriteExcel(&buf, s.app.Demographics, "Demographics"); err != nil {
		s.logger.Error("excel export failed", zap.Error(err))
		http.Error(w, "Failed to export data", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="demographics.xlsx"`)
	w.Write(buf.Bytes())
}

// render executes tmpl into memory first so a template error never leaves a
// half-written page.
func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, page Page) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, page); err != nil {
		s.logger.Error("template error", zap.String("template", tmpl.Name()), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(buf.Bytes())
}
