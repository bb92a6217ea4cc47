package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/curvyfi/curvy/internal/curvedef"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Curve string
	Out   string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a curve as a definition file",
		Long: `Write a stored curve back out as a YAML definition.

The exported file is accepted by create, so a curve can be backed up
before altering or deleting it.

Example:
  curvy export --curve <address> --out ./backup.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Curve, "curve", "", "curve address (required)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("curve")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
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
	data, err := curvedef.FromRecord(record).Marshal()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to render definition", err)
	}

	if opts.Out == "" {
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	}
	if err := os.WriteFile(opts.Out, data, 0o644); err != nil {
		return WrapExitError(ExitCommandError, "failed to write definition file", err)
	}
	return out.Success(OpView{Op: "exported", Curve: curveAddr.String()})
}
