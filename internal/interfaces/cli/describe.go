package cli

import (
	"github.com/spf13/cobra"

	moltypes "github.com/turtacn/FragSAR/pkg/types/molecule"
)

// NewDescribeCmd builds "fragsar describe".
func NewDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "describe SMILES...",
		Short:   "Compute the descriptor row of one or more molecules",
		Example: "  fragsar describe c1ccccc1 CC(=O)Nc1ccc(O)cc1",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			rows := make([]moltypes.DescriptorRow, 0, len(args))
			for _, s := range args {
				row, err := cliCtx.Backend.Describe(ctx, s)
				if err != nil {
					return err
				}
				rows = append(rows, *row)
			}
			return writeRows(cmd.OutOrStdout(), rows, cliCtx.OutputFormat, cliCtx.NoColor)
		},
	}
}

//Personal.AI order the ending
