package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCmd builds "fragsar version".
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// version needs no config, logger or backend.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			info := BuildInfo{Version: Version, Commit: GitCommit, BuildDate: BuildDate}
			format, _ := cmd.Flags().GetString("output")
			switch format {
			case FormatJSON:
				return writeJSON(cmd.OutOrStdout(), info)
			case FormatYAML:
				return writeYAML(cmd.OutOrStdout(), info)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "fragsar %s (commit: %s, built: %s, %s)\n",
				info.Version, info.Commit, info.BuildDate, runtime.Version())
			return err
		},
	}
}

//Personal.AI order the ending
