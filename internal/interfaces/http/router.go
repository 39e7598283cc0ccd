package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"

	"github.com/turtacn/FragSAR/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FragSAR/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/FragSAR/internal/interfaces/http/handlers"
	"github.com/turtacn/FragSAR/internal/interfaces/http/middleware"
	"github.com/turtacn/FragSAR/pkg/errors"
)

// RouterConfig aggregates all handler and middleware dependencies required
// to construct the complete HTTP route tree.
type RouterConfig struct {
	// Handlers
	MoleculeHandler *handlers.MoleculeHandler
	HealthHandler   *handlers.HealthHandler

	// Middleware
	CORSMiddleware *middleware.CORSMiddleware
	Logging        middleware.LoggingConfig

	// Infrastructure
	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
	MetricsPath      string

	// RequestTimeout bounds the enumeration routes; 0 disables it.
	RequestTimeout time.Duration
	EnableGzip     bool
	// EnableProfiler mounts net/http/pprof under /debug.
	EnableProfiler bool
}

// NewRouter constructs the complete HTTP route tree from the given configuration.
func NewRouter(cfg RouterConfig) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}

	r := chi.NewRouter()

	// --- Global middleware (applied to every request) ---
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogging(cfg.Logger, cfg.Logging))
	r.Use(middleware.Metrics(cfg.Metrics))
	r.Use(middleware.Recovery(cfg.Logger))
	if cfg.CORSMiddleware != nil {
		r.Use(cfg.CORSMiddleware.Handler)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteCode(w, errors.ErrCodeNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteCode(w, errors.ErrCodeMethodNotAllowed)
	})

	// --- Health ---
	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}

	if cfg.MetricsCollector != nil {
		r.Method(http.MethodGet, cfg.MetricsPath, cfg.MetricsCollector.Handler())
	}

	// --- Enumeration API ---
	r.Group(func(api chi.Router) {
		if cfg.RequestTimeout > 0 {
			api.Use(middleware.Timeout(cfg.RequestTimeout))
		}
		registerMoleculeRoutes(api, cfg.MoleculeHandler)
	})

	if cfg.EnableProfiler {
		r.Mount("/debug", chimw.Profiler())
	}

	if cfg.EnableGzip {
		return gzhttp.GzipHandler(r)
	}
	return r
}

// registerMoleculeRoutes mounts the enumeration endpoints at the root.
func registerMoleculeRoutes(r chi.Router, h *handlers.MoleculeHandler) {
	if h == nil {
		return
	}
	r.Post("/enumerate", h.Enumerate)
	r.Post("/describe", h.Describe)
	r.Get("/groups", h.Groups)
}

//Personal.AI order the ending
