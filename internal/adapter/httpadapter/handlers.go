package httpadapter

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-wheel/internal/wheel"
	"github.com/goccy/go-json"
)

type errorResponse struct {
	Error string `json:"error"`
}

type monthHoverResponse struct {
	Summary wheel.Summary `json:"summary"`
	Focus   time.Time     `json:"focus"`
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.svc.Frame())
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, s.svc.Summary())
}

func (s *Server) handleToggleYear(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.ToggleYear(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleSelectMonth(w http.ResponseWriter, r *http.Request) {
	m, err := pathInt(r, "month")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	summary, err := s.svc.SelectMonth(r.Context(), m)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleHoverMonth(w http.ResponseWriter, r *http.Request) {
	m, err := pathInt(r, "month")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	summary, focus, err := s.svc.HoverMonth(r.Context(), m)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, monthHoverResponse{Summary: summary, Focus: focus})
}

func (s *Server) handleHoverDay(w http.ResponseWriter, r *http.Request) {
	i, err := pathInt(r, "index")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	info, err := s.svc.HoverDay(r.Context(), i)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, info)
}

func (s *Server) handleEndHover(w http.ResponseWriter, r *http.Request) {
	s.svc.EndHover(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

var errBadPathValue = errors.New("path value is not an integer")

func pathInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", name, r.PathValue(name), errBadPathValue)
	}
	return v, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errBadPathValue), errors.Is(err, wheel.ErrInvalidMonth):
		status = http.StatusBadRequest
	case errors.Is(err, wheel.ErrDayOutOfRange):
		status = http.StatusNotFound
	default:
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

// writeJSON encodes v before touching the response, so an unencodable value
// turns into a 500 instead of a truncated body.
func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode response", "method", r.Method, "path", r.URL.Path, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"response encoding failed"}` + "\n")) //nolint:errcheck // best-effort response
		return
	}
	w.WriteHeader(status)
	w.Write(append(data, '\n')) //nolint:errcheck // best-effort response
}
