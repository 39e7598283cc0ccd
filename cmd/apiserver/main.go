// Command apiserver runs the FragSAR HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/turtacn/FragSAR/internal/config"
	"github.com/turtacn/FragSAR/internal/infrastructure/monitoring/logging"
	httpserver "github.com/turtacn/FragSAR/internal/interfaces/http"
)

// Injected via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := pflag.NewFlagSet("apiserver", pflag.ExitOnError)
	configPath := fs.StringP("config", "c", "", "path to configuration file (default: environment only)")
	port := fs.IntP("port", "p", 0, "HTTP port (overrides config)")
	watch := fs.Bool("watch", true, "reload the log level when the config file changes")
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *port > 0 {
		cfg.Server.Port = *port
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:       logging.Level(cfg.Log.Level),
		Format:      cfg.Log.Format,
		OutputPaths: cfg.Log.OutputPaths,
		Service:     "fragsar",
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logging.SetDefault(logger)

	if *watch && *configPath != "" {
		watchLogLevel(*configPath, logger)
	}

	app, err := httpserver.NewApp(cfg, version, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting FragSAR API server",
		logging.String("version", version),
		logging.String("addr", app.Server.Addr()),
		logging.String("mode", cfg.Server.Mode),
		logging.Bool("metrics", cfg.Metrics.Enabled),
	)
	if err := app.Server.Run(ctx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// watchLogLevel applies log.level from the config file on every change.
// Other settings need a restart.
func watchLogLevel(path string, logger logging.Logger) {
	setter, ok := logger.(logging.LevelSetter)
	if !ok {
		return
	}
	err := config.Watch(path,
		func(cfg *config.Config) {
			level, err := logging.ParseLevel(cfg.Log.Level)
			if err != nil {
				logger.Warn("ignoring invalid log level", logging.String("level", cfg.Log.Level))
				return
			}
			if level != setter.Level() {
				setter.SetLevel(level)
				logger.Info("log level changed", logging.String("level", level.String()))
			}
		},
		func(err error) {
			logger.Warn("config reload failed", logging.Err(err))
		},
	)
	if err != nil {
		logger.Warn("config watch disabled", logging.Err(err))
	}
}

//Personal.AI order the ending
