package server

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/digest-agent/internal/rendering"
)

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleIndex renders the digest page from the current latest result.
// Store errors become the page's error panel, as with render-html.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	env, readErr := s.latest.Read()
	if readErr != nil {
		s.logger.Debug("latest result unavailable", zap.Error(readErr))
	}

	html, err := rendering.RenderHTML(rendering.BuildPage(env, readErr, s.title))
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write([]byte(html))
}

// handleLatest returns the stored latest envelope
func (s *Server) handleLatest(w http.ResponseWriter, _ *http.Request) {
	env, err := s.latest.Read()
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, env)
}

// handleHistory returns the stored history, optionally only the last N runs
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	last := 0
	if raw := r.URL.Query().Get("last"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.errorResponse(w, &ErrValidation{Field: "last", Message: "must be a non-negative integer"})
			return
		}
		last = n
	}

	history, err := s.history.Load()
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if last > 0 && len(history) > last {
		history = history[len(history)-last:]
	}
	s.jsonResponse(w, http.StatusOK, history)
}
