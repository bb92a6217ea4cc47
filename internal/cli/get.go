package cli

import (
	"github.com/spf13/cobra"
)

// GetOptions holds flags for the get command.
type GetOptions struct {
	*RootOptions
	Curve string
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show one curve",
		Long: `Fetch a curve by address and render its record.

Example:
  curvy get --curve <address>`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Curve, "curve", "", "curve address (required)")
	_ = cmd.MarkFlagRequired("curve")

	return cmd
}

func runGet(opts *GetOptions, cmd *cobra.Command) error {
	out := newFormatter(cmd, opts.RootOptions)
	ctx := cmd.Context()

	curveAddr, err := parseCurveFlag(opts.Curve)
	if err != nil {
		return err
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

	return out.Success(NewCurveView(curveAddr, record))
}
