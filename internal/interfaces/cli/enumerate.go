package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/FragSAR/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/FragSAR/pkg/errors"
	moltypes "github.com/turtacn/FragSAR/pkg/types/molecule"
)

type enumerateOptions struct {
	smiles   string
	groups   []string
	noGroups bool
	limit    int
}

// NewEnumerateCmd builds "fragsar enumerate".
func NewEnumerateCmd() *cobra.Command {
	opts := &enumerateOptions{}

	cmd := &cobra.Command{
		Use:   "enumerate [SMILES]",
		Short: "Enumerate single-point fragment substitutions of a molecule",
		Long: "Replace one hydrogen at a time with each selected fragment and print the\n" +
			"unique products with their descriptors, in generation order.\n\n" +
			"Without --group every fragment of the table is used.",
		Example: "  fragsar enumerate c1ccccc1\n" +
			"  fragsar enumerate --smiles Cc1ccccc1 -g F -g Cl --limit 10 -o json\n" +
			"  fragsar enumerate c1ccncc1 --server http://localhost:8080",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if opts.smiles != "" && opts.smiles != args[0] {
					return errors.Validation("give the SMILES either as an argument or with --smiles")
				}
				opts.smiles = args[0]
			}
			return runEnumerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.smiles, "smiles", "s", "", "parent molecule SMILES")
	f.StringSliceVarP(&opts.groups, "group", "g", nil, "fragment tag to use (repeatable or comma separated)")
	f.BoolVar(&opts.noGroups, "no-groups", false, "select no fragments (prints an empty result)")
	f.IntVarP(&opts.limit, "limit", "n", 0, fmt.Sprintf("maximum number of products (default %d)", moltypes.DefaultLimit))
	cmd.MarkFlagsMutuallyExclusive("group", "no-groups")

	return cmd
}

func runEnumerate(cmd *cobra.Command, opts *enumerateOptions) error {
	cliCtx, err := GetCLIContext(cmd)
	if err != nil {
		return err
	}
	if opts.smiles == "" {
		return errors.Validation("field required: smiles")
	}

	req := &moltypes.EnumerateRequest{SMILES: opts.smiles, Limit: opts.limit}
	switch {
	case opts.noGroups:
		req.Groups = []string{}
	case len(opts.groups) > 0:
		req.Groups = opts.groups
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	cliCtx.Logger.Debug("enumerating",
		logging.String("smiles", req.SMILES),
		logging.Strings("groups", req.Groups),
		logging.Int("limit", req.Limit))

	rows, err := cliCtx.Backend.Enumerate(ctx, req)
	if err != nil {
		return err
	}
	return writeRows(cmd.OutOrStdout(), rows, cliCtx.OutputFormat, cliCtx.NoColor)
}

// commandContext bounds the command by --timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if d, err := cmd.Flags().GetDuration("timeout"); err == nil && d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

//Personal.AI order the ending
