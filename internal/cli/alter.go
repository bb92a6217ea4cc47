package cli

import (
	"github.com/spf13/cobra"

	"github.com/curvyfi/curvy/internal/acct"
	"github.com/curvyfi/curvy/internal/curve"
	"github.com/curvyfi/curvy/internal/curvedef"
	"github.com/curvyfi/curvy/internal/processor"
)

// AlterOptions holds flags for the alter command.
type AlterOptions struct {
	*RootOptions
	Curve    string
	Name     string
	Formula  string
	Decimals uint8
	Points   string
}

// NewAlterCommand creates the alter command.
func NewAlterCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AlterOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "alter",
		Short: "Alter fields of an existing curve",
		Long: `Alter an existing curve owned by the keypair.

Only the given flags change; everything else keeps its stored value.
The merged result is validated as a whole before anything is written.
--points replaces the full geometry (x0, x_step and samples) from a
YAML or CSV file.

Example:
  curvy alter --curve <address> --name spot-v2
  curvy alter --curve <address> --points ./prices.csv --decimals 3`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAlter(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Curve, "curve", "", "curve address (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "new curve name")
	cmd.Flags().StringVar(&opts.Formula, "formula", "", "new formula label")
	cmd.Flags().Uint8Var(&opts.Decimals, "decimals", 0, "new x fixed-point scale")
	cmd.Flags().StringVar(&opts.Points, "points", "", "YAML or CSV file with replacement points")
	_ = cmd.MarkFlagRequired("curve")

	return cmd
}

func runAlter(opts *AlterOptions, cmd *cobra.Command) error {
	out := newFormatter(cmd, opts.RootOptions)
	ctx := cmd.Context()

	curveAddr, err := parseCurveFlag(opts.Curve)
	if err != nil {
		return err
	}
	owner, err := loadKeypair(opts.RootOptions)
	if err != nil {
		return err
	}

	patch, err := buildPatch(cmd, opts)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return NewExitError(ExitCommandError, "nothing to alter: give at least one of --name, --formula, --decimals, --points")
	}

	proc, st, err := openProcessor(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	record, err := proc.Curve(ctx, curveAddr)
	if err != nil {
		return out.Failure(err)
	}

	req := processor.AlterCurve{
		Curve:   curveAddr,
		Owner:   owner,
		Params:  patch.Apply(record),
		Signers: acct.Signers(owner),
	}
	if err := proc.AlterCurve(ctx, req); err != nil {
		return out.Failure(err)
	}

	return out.Success(OpView{Op: "altered", Curve: curveAddr.String()})
}

// buildPatch turns the changed flags into a field patch. A points file
// contributes the full derived geometry.
func buildPatch(cmd *cobra.Command, opts *AlterOptions) (curve.Patch, error) {
	var patch curve.Patch

	if cmd.Flags().Changed("name") {
		patch.Name = &opts.Name
	}
	if cmd.Flags().Changed("formula") {
		patch.Formula = &opts.Formula
	}
	if cmd.Flags().Changed("decimals") {
		patch.Decimals = &opts.Decimals
	}
	if opts.Points != "" {
		def, err := curvedef.Load(opts.Points)
		if err != nil {
			return curve.Patch{}, WrapExitError(ExitCommandError, "failed to load points file", err)
		}
		derived, err := def.Params()
		if err != nil {
			return curve.Patch{}, WrapExitError(ExitCommandError, "invalid points file", err)
		}
		patch.X0 = &derived.X0
		patch.XStep = &derived.XStep
		patch.YCount = &derived.YCount
		patch.Y = &derived.Y
	}

	return patch, nil
}
