package cli

import (
	"github.com/spf13/cobra"

	"github.com/curvyfi/curvy/internal/acct"
	"github.com/curvyfi/curvy/internal/curvedef"
	"github.com/curvyfi/curvy/internal/processor"
)

// CreateOptions holds flags for the create command.
type CreateOptions struct {
	*RootOptions
	File     string
	CSV      string
	Name     string
	Formula  string
	Decimals uint8
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a curve from a definition file",
		Long: `Create a curve at a freshly generated address.

The definition comes either from a YAML file carrying name, formula,
decimals and points, or from a CSV of x,y rows combined with --name,
--formula and --decimals. Rent for the slot is debited from the
keypair's wallet.

Example:
  curvy create --file ./prices.yaml
  curvy create --csv ./prices.csv --name spot --decimals 2`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.File, "file", "", "YAML definition file")
	cmd.Flags().StringVar(&opts.CSV, "csv", "", "CSV points file (x,y rows)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "curve name (with --csv)")
	cmd.Flags().StringVar(&opts.Formula, "formula", "", "formula label (with --csv)")
	cmd.Flags().Uint8Var(&opts.Decimals, "decimals", 0, "x fixed-point scale (with --csv)")
	cmd.MarkFlagsOneRequired("file", "csv")
	cmd.MarkFlagsMutuallyExclusive("file", "csv")

	return cmd
}

func runCreate(opts *CreateOptions, cmd *cobra.Command) error {
	out := newFormatter(cmd, opts.RootOptions)
	ctx := cmd.Context()

	def, err := loadDefinition(opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load curve definition", err)
	}
	params, err := def.Params()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid curve definition", err)
	}

	owner, err := loadKeypair(opts.RootOptions)
	if err != nil {
		return err
	}
	curveAddr, err := acct.NewAddress()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to generate curve address", err)
	}

	proc, st, err := openProcessor(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	req := processor.CreateCurve{
		Curve:   curveAddr,
		Owner:   owner,
		Params:  params,
		Signers: acct.Signers(curveAddr, owner),
	}
	if err := proc.CreateCurve(ctx, req); err != nil {
		return out.Failure(err)
	}

	return out.Success(OpView{Op: "created", Curve: curveAddr.String()})
}

// loadDefinition resolves the --file / --csv inputs into one definition.
func loadDefinition(opts *CreateOptions) (*curvedef.Definition, error) {
	if opts.File != "" {
		return curvedef.LoadYAML(opts.File)
	}
	points, err := curvedef.LoadCSV(opts.CSV)
	if err != nil {
		return nil, err
	}
	return &curvedef.Definition{
		Name:     opts.Name,
		Formula:  opts.Formula,
		Decimals: opts.Decimals,
		Points:   points,
	}, nil
}
