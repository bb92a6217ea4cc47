package cli

import (
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all curves",
		Long: `Enumerate every curve in the ledger, in address order.

Example:
  curvy list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(rootOpts, cmd)
		},
	}

	return cmd
}

func runList(opts *RootOptions, cmd *cobra.Command) error {
	out := newFormatter(cmd, opts)
	ctx := cmd.Context()

	proc, st, err := openProcessor(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	entries, err := proc.Curves(ctx)
	if err != nil {
		return out.Failure(err)
	}

	view := CurvesView{Curves: make([]CurveView, 0, len(entries))}
	for _, e := range entries {
		view.Curves = append(view.Curves, NewCurveView(e.Address, e.Record))
	}

	return out.Success(view)
}
