package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/weather-wheel/internal/wheel"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WheelService applies interaction events to a chart and exposes its frames.
// *pipeline.Pipeline implements it.
type WheelService interface {
	Frame() wheel.Frame
	Summary() wheel.Summary
	SelectMonth(ctx context.Context, m int) (wheel.Summary, error)
	ToggleYear(ctx context.Context) (wheel.Summary, error)
	HoverMonth(ctx context.Context, m int) (wheel.Summary, time.Time, error)
	HoverDay(ctx context.Context, i int) (wheel.DayInfo, error)
	EndHover(ctx context.Context)
}

// Server exposes health, readiness, metrics, and the wheel API.
type Server struct {
	httpServer *http.Server
	svc        WheelService
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and /api/v1 routes.
func NewServer(addr string, ready sharedobs.ReadinessChecker, svc WheelService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:    svc,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/wheel", s.handleFrame)
	mux.HandleFunc("GET /api/v1/summary", s.handleSummary)
	mux.HandleFunc("POST /api/v1/scope/year", s.handleToggleYear)
	mux.HandleFunc("POST /api/v1/scope/month/{month}", s.handleSelectMonth)
	mux.HandleFunc("POST /api/v1/hover/month/{month}", s.handleHoverMonth)
	mux.HandleFunc("POST /api/v1/hover/day/{index}", s.handleHoverDay)
	mux.HandleFunc("DELETE /api/v1/hover", s.handleEndHover)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
