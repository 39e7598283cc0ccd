package http

import (
	"context"
	"fmt"

	appmol "github.com/turtacn/FragSAR/internal/application/molecule"
	"github.com/turtacn/FragSAR/internal/config"
	domainMol "github.com/turtacn/FragSAR/internal/domain/molecule"
	"github.com/turtacn/FragSAR/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FragSAR/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/FragSAR/internal/interfaces/http/handlers"
	"github.com/turtacn/FragSAR/internal/interfaces/http/middleware"
	"github.com/turtacn/FragSAR/pkg/chem"
)

// App holds the wired HTTP stack of the enumeration service.
type App struct {
	Server    *Server
	Service   appmol.Service
	Collector prometheus.MetricsCollector
	Metrics   *prometheus.AppMetrics
}

// NewApp builds the toolkit, fragment table, service, handlers and router
// described by cfg.
func NewApp(cfg *config.Config, version string, logger logging.Logger) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	tk := chem.NewToolkit()
	table, err := domainMol.NewFragmentTable(tk)
	if err != nil {
		return nil, fmt.Errorf("build fragment table: %w", err)
	}

	var (
		collector prometheus.MetricsCollector
		metrics   *prometheus.AppMetrics
	)
	if cfg.Metrics.Enabled {
		collector, err = prometheus.NewMetricsCollector(prometheus.CollectorConfig{
			Namespace:            cfg.Metrics.Namespace,
			EnableGoMetrics:      cfg.Metrics.EnableGoMetrics,
			EnableProcessMetrics: cfg.Metrics.EnableProcessMetrics,
		}, logger.Named("metrics"))
		if err != nil {
			return nil, fmt.Errorf("create metrics collector: %w", err)
		}
		metrics = prometheus.NewAppMetrics(collector)
		metrics.SetBuildInfo(version)
	}

	svc := appmol.NewService(appmol.Config{
		DefaultLimit:    cfg.Enumeration.DefaultLimit,
		MaxLimit:        cfg.Enumeration.MaxLimit,
		DescribeWorkers: cfg.Enumeration.DescribeWorkers,
	}, tk, table, metrics, logger.Named("enumeration"))

	health := handlers.NewHealthHandler(version, handlers.CheckFunc{
		CheckName: "fragment_table",
		Fn: func(context.Context) error {
			if table.Len() == 0 {
				return fmt.Errorf("fragment table is empty")
			}
			return nil
		},
	})

	router := NewRouter(RouterConfig{
		MoleculeHandler: handlers.NewMoleculeHandler(svc, logger.Named("handler"), cfg.Server.MaxBodySize),
		HealthHandler:   health,
		CORSMiddleware: middleware.NewCORSMiddleware(middleware.CORSConfig{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   cfg.CORS.AllowedMethods,
			AllowedHeaders:   cfg.CORS.AllowedHeaders,
			ExposedHeaders:   cfg.CORS.ExposedHeaders,
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           cfg.CORS.MaxAge,
			AllowWildcard:    cfg.CORS.AllowWildcard,
		}),
		Logging:          middleware.DefaultLoggingConfig(),
		Logger:           logger.Named("http"),
		Metrics:          metrics,
		MetricsCollector: collector,
		MetricsPath:      cfg.Metrics.Path,
		RequestTimeout:   cfg.Server.RequestTimeout,
		EnableGzip:       cfg.Server.EnableGzip,
		EnableProfiler:   cfg.Server.Mode == "debug",
	})

	server := NewServer(cfg.Server.Addr(), router,
		WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.IdleTimeout),
		WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		WithLogger(logger.Named("server")),
	)

	return &App{Server: server, Service: svc, Collector: collector, Metrics: metrics}, nil
}

//Personal.AI order the ending
