package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turtacn/FragSAR/internal/infrastructure/monitoring/logging"
	httpapi "github.com/turtacn/FragSAR/internal/interfaces/http"
)

// NewServeCmd builds "fragsar serve", which runs the HTTP API in the
// foreground until interrupted.
func NewServeCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
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

			app, err := httpapi.NewApp(cfg, Version, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("starting FragSAR API", logging.String("addr", app.Server.Addr()), logging.String("version", Version))
			return app.Server.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (overrides config)")
	return cmd
}

//Personal.AI order the ending
