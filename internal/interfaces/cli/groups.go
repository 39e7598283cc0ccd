package cli

import "github.com/spf13/cobra"

// NewGroupsCmd builds "fragsar groups".
func NewGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List the fragment table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			groups, err := cliCtx.Backend.Groups(ctx)
			if err != nil {
				return err
			}
			return writeGroups(cmd.OutOrStdout(), groups, cliCtx.OutputFormat)
		},
	}
}

//Personal.AI order the ending
