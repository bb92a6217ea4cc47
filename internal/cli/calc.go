package cli

import (
	"github.com/spf13/cobra"

	"github.com/curvyfi/curvy/internal/decimal"
)

// CalcOptions holds flags for the calc command.
type CalcOptions struct {
	*RootOptions
	Curve string
	X     string
}

// NewCalcCommand creates the calc command.
func NewCalcCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CalcOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Evaluate a curve at x",
		Long: `Interpolate a curve's value at the given x coordinate.

x is a decimal in human units; it must fall inside the curve's domain.
Values on the sample grid come back exactly as stored; values between
grid points are linearly interpolated.

Example:
  curvy calc --curve <address> --x 0.07`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Curve, "curve", "", "curve address (required)")
	cmd.Flags().StringVar(&opts.X, "x", "", "x coordinate (required)")
	_ = cmd.MarkFlagRequired("curve")
	_ = cmd.MarkFlagRequired("x")

	return cmd
}

func runCalc(opts *CalcOptions, cmd *cobra.Command) error {
	out := newFormatter(cmd, opts.RootOptions)
	ctx := cmd.Context()

	curveAddr, err := parseCurveFlag(opts.Curve)
	if err != nil {
		return err
	}
	x, err := decimal.Parse(opts.X)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid x coordinate", err)
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
	y, err := record.Lookup(x)
	if err != nil {
		return out.Failure(err)
	}

	return out.Success(CalcView{Curve: curveAddr.String(), X: opts.X, Y: y.String()})
}
