// Package cli implements the fragsar command line. Commands run the
// enumeration in-process by default or against a server given by --server.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	appmol "github.com/turtacn/FragSAR/internal/application/molecule"
	"github.com/turtacn/FragSAR/internal/config"
	domainMol "github.com/turtacn/FragSAR/internal/domain/molecule"
	"github.com/turtacn/FragSAR/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FragSAR/pkg/chem"
	"github.com/turtacn/FragSAR/pkg/client"
	"github.com/turtacn/FragSAR/pkg/errors"
	moltypes "github.com/turtacn/FragSAR/pkg/types/molecule"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// BuildInfo holds version information injected at build time.
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
}

// cliContextKey is the context key for CLIContext.
type cliContextKey struct{}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
	NoColor      bool
	Timeout      time.Duration
	ServerAddr   string
}

// CLIContext carries initialized dependencies through the command tree.
type CLIContext struct {
	Config       *config.Config
	Logger       logging.Logger
	Backend      Backend
	OutputFormat string
	NoColor      bool
}

// Backend is what enumerate, describe and groups run against: the local
// engine or a remote server.
type Backend interface {
	Enumerate(ctx context.Context, req *moltypes.EnumerateRequest) ([]moltypes.DescriptorRow, error)
	Describe(ctx context.Context, smiles string) (*moltypes.DescriptorRow, error)
	Groups(ctx context.Context) ([]moltypes.Group, error)
}

var _ Backend = (*client.Client)(nil)

// NewRootCommand creates the root cobra command with all global flags and subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "fragsar",
		Short: "FragSAR enumerates single-point fragment substitutions of a molecule",
		Long: "FragSAR replaces each hydrogen-bearing heavy atom of a parent molecule with\n" +
			"fragments from a fixed medicinal-chemistry table and reports molecular\n" +
			"weight, cLogP, H-bond donors and acceptors, QED and Lipinski violations\n" +
			"for every unique product.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return persistentPreRun(cmd, opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./fragsar.yaml if present)")
	pf.StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", FormatTable, "output format (table, json, yaml, csv)")
	pf.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	pf.DurationVar(&opts.Timeout, "timeout", 60*time.Second, "overall operation timeout")
	pf.StringVar(&opts.ServerAddr, "server", "", "run against a FragSAR server (e.g. http://localhost:8080) instead of in-process")

	cmd.AddCommand(
		NewEnumerateCmd(),
		NewDescribeCmd(),
		NewGroupsCmd(),
		NewServeCmd(),
		NewVersionCmd(),
	)
	return cmd
}

// persistentPreRun initializes config, logger and backend, then stores CLIContext.
func persistentPreRun(cmd *cobra.Command, opts *RootOptions) error {
	if !isValidFormat(opts.OutputFormat) {
		return errors.Validation(fmt.Sprintf("unknown output format %q", opts.OutputFormat))
	}

	cfg, err := initConfig(opts)
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger, err := initLogger(opts)
	if err != nil {
		return fmt.Errorf("logger initialization failed: %w", err)
	}

	backend, err := initBackend(cfg, opts, logger)
	if err != nil {
		return err
	}

	cliCtx := &CLIContext{
		Config:       cfg,
		Logger:       logger,
		Backend:      backend,
		OutputFormat: strings.ToLower(opts.OutputFormat),
		NoColor:      opts.NoColor,
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, cliContextKey{}, cliCtx))
	return nil
}

// initConfig loads an explicit --config, else the first config file found on
// the search path, else environment variables and defaults.
func initConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(opts.ConfigPath)
	}

	searchPaths := []string{"./fragsar.yaml"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths, filepath.Join(homeDir, ".fragsar", "config.yaml"))
	}
	for _, p := range searchPaths {
		if _, statErr := os.Stat(p); statErr == nil {
			return config.Load(p)
		}
	}
	return config.LoadFromEnv()
}

// initLogger creates a console logger writing to stderr so stdout stays
// machine-readable.
func initLogger(opts *RootOptions) (logging.Logger, error) {
	level, err := logging.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewLogger(logging.LogConfig{
		Level:            level,
		Format:           "console",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	})
}

// initBackend returns an API client when --server is set and the in-process
// engine otherwise.
func initBackend(cfg *config.Config, opts *RootOptions, logger logging.Logger) (Backend, error) {
	if opts.ServerAddr != "" {
		return client.NewClient(opts.ServerAddr,
			client.WithTimeout(opts.Timeout),
			client.WithLogger(clientLogger{logger.Named("client")}),
			client.WithUserAgent("fragsar-cli/"+Version),
		)
	}
	return newLocalBackend(cfg, logger)
}

// GetCLIContext extracts CLIContext from a cobra command's context.
func GetCLIContext(cmd *cobra.Command) (*CLIContext, error) {
	ctx := cmd.Context()
	if ctx == nil {
		return nil, errors.Validation("command context is nil")
	}
	cliCtx, ok := ctx.Value(cliContextKey{}).(*CLIContext)
	if !ok || cliCtx == nil {
		return nil, errors.Validation("CLIContext not found in command context")
	}
	return cliCtx, nil
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", errorText(err))
}

// errorText prefers the API detail or the AppError message over the full
// wrapped chain.
func errorText(err error) string {
	var apiErr *client.APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Detail
	}
	if appErr, ok := errors.AsAppError(err); ok && errors.IsClientError(appErr.Code) {
		return appErr.Message
	}
	return err.Error()
}

// ─── In-process backend ────────────────────────────────────────────────────

type localBackend struct {
	svc appmol.Service
}

func newLocalBackend(cfg *config.Config, logger logging.Logger) (*localBackend, error) {
	tk := chem.NewToolkit()
	table, err := domainMol.NewFragmentTable(tk)
	if err != nil {
		return nil, fmt.Errorf("build fragment table: %w", err)
	}
	svc := appmol.NewService(appmol.Config{
		DefaultLimit:    cfg.Enumeration.DefaultLimit,
		MaxLimit:        cfg.Enumeration.MaxLimit,
		DescribeWorkers: cfg.Enumeration.DescribeWorkers,
	}, tk, table, nil, logger.Named("enumeration"))
	return &localBackend{svc: svc}, nil
}

func (b *localBackend) Enumerate(ctx context.Context, req *moltypes.EnumerateRequest) ([]moltypes.DescriptorRow, error) {
	in := &appmol.EnumerateInput{SMILES: req.SMILES, Groups: req.Groups}
	if req.Limit != 0 {
		limit := req.Limit
		in.Limit = &limit
	}
	res, err := b.svc.Enumerate(ctx, in)
	if err != nil {
		return nil, err
	}
	return res.Rows, nil
}

func (b *localBackend) Describe(ctx context.Context, smiles string) (*moltypes.DescriptorRow, error) {
	return b.svc.Describe(ctx, smiles)
}

func (b *localBackend) Groups(ctx context.Context) ([]moltypes.Group, error) {
	return b.svc.ListGroups(ctx), nil
}

// clientLogger adapts logging.Logger to the SDK's printf-style Logger.
type clientLogger struct{ l logging.Logger }

func (c clientLogger) Debugf(format string, args ...interface{}) { c.l.Debug(fmt.Sprintf(format, args...)) }
func (c clientLogger) Infof(format string, args ...interface{})  { c.l.Info(fmt.Sprintf(format, args...)) }
func (c clientLogger) Errorf(format string, args ...interface{}) { c.l.Error(fmt.Sprintf(format, args...)) }

//Personal.AI order the ending
