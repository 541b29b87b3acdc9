// Package httpapi serves the attendance services as a JSON API.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexanderramin/punchclock/internal/auth"
	"github.com/alexanderramin/punchclock/internal/export"
	"github.com/alexanderramin/punchclock/internal/service"
	"github.com/go-chi/chi/v5"
)

// Deps collects everything the API needs. Metrics and MetricsHandler are
// optional.
type Deps struct {
	Users      service.UserService
	Attendance service.AttendanceService
	Summary    service.SummaryService
	Export     service.ExportService

	Gate      auth.Gate
	GateLimit GateLimitConfig

	Clock        service.Clock
	ExportPrefix string
	Logger       *slog.Logger

	Metrics        Metrics
	MetricsHandler http.Handler
}

// Metrics is the telemetry the API reports to.
type Metrics interface {
	StatusRecorder
	GateDeniedRecorder
}

type Server struct {
	deps   Deps
	logger *slog.Logger
	now    func() time.Time
	guard  *gateGuard
	router chi.Router
}

func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	if deps.ExportPrefix == "" {
		deps.ExportPrefix = export.DefaultPrefix
	}

	var gateMetrics GateDeniedRecorder
	var statusMetrics StatusRecorder
	if deps.Metrics != nil {
		gateMetrics = deps.Metrics
		statusMetrics = deps.Metrics
	}

	s := &Server{
		deps:   deps,
		logger: logger,
		now:    now,
		guard:  newGateGuard(deps.Gate, deps.GateLimit, logger, gateMetrics),
	}
	s.router = s.routes(statusMetrics)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes(metrics StatusRecorder) chi.Router {
	r := chi.NewRouter()
	r.Use(newLoggingMiddleware(s.logger, metrics))
	r.Use(newRecoveryMiddleware(s.logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", s.deps.MetricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.listUsers)
			r.Post("/", s.registerUser)
			r.Route("/{userID}", func(r chi.Router) {
				r.With(s.guard.middleware).Delete("/", s.deleteUser)
				r.Post("/punch-in", s.punchIn)
				r.Post("/punch-out", s.punchOutOpen)
				r.Get("/logs/today", s.listToday)
			})
		})
		r.Route("/logs", func(r chi.Router) {
			r.Get("/", s.listLogs)
			r.Route("/{logID}", func(r chi.Router) {
				r.Post("/punch-out", s.punchOut)
				r.Put("/break", s.setBreak)
				r.With(s.guard.middleware).Patch("/", s.editLog)
				r.With(s.guard.middleware).Delete("/", s.deleteLog)
			})
		})
		r.Get("/summary", s.summary)
		r.Get("/export.csv", s.exportCSV)
	})
	return r
}

// ListenAndServe runs the API on addr until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("API server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listening on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("API server stopped")
	return nil
}
