package cli

import (
	"github.com/spf13/cobra"

	"github.com/curvyfi/curvy/internal/acct"
	"github.com/curvyfi/curvy/internal/processor"
)

// DeleteOptions holds flags for the delete command.
type DeleteOptions struct {
	*RootOptions
	Curve string
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeleteOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a curve and reclaim its rent",
		Long: `Delete a curve owned by the keypair.

The slot's full balance is returned to the owner's wallet and the slot
is released for reuse.

Example:
  curvy delete --curve <address>`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Curve, "curve", "", "curve address (required)")
	_ = cmd.MarkFlagRequired("curve")

	return cmd
}

func runDelete(opts *DeleteOptions, cmd *cobra.Command) error {
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

	proc, st, err := openProcessor(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	req := processor.DeleteCurve{
		Curve:   curveAddr,
		Owner:   owner,
		Signers: acct.Signers(owner),
	}
	if err := proc.DeleteCurve(ctx, req); err != nil {
		return out.Failure(err)
	}

	return out.Success(OpView{Op: "deleted", Curve: curveAddr.String()})
}
