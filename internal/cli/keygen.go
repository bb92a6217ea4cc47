package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/curvyfi/curvy/internal/acct"
)

// KeygenOptions holds flags for the keygen command.
type KeygenOptions struct {
	*RootOptions
	Force bool
}

// NewKeygenCommand creates the keygen command.
func NewKeygenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &KeygenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a signing keypair",
		Long: `Generate a fresh identity and write it to the keypair file.

The file location comes from the global --keypair flag. An existing file
is never overwritten unless --force is given.

Example:
  curvy keygen --keypair ./owner.key`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeygen(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Force, "force", false, "overwrite an existing keypair file")

	return cmd
}

func runKeygen(opts *KeygenOptions, cmd *cobra.Command) error {
	out := newFormatter(cmd, opts.RootOptions)

	if !opts.Force {
		if _, err := os.Stat(opts.KeypairPath); err == nil {
			return NewExitError(ExitCommandError,
				fmt.Sprintf("keypair file %s already exists (use --force to overwrite)", opts.KeypairPath))
		}
	}

	addr, err := acct.NewAddress()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to generate keypair", err)
	}
	if err := acct.WriteKeyFile(opts.KeypairPath, addr); err != nil {
		return WrapExitError(ExitCommandError, "failed to write keypair file", err)
	}

	return out.Success(KeygenView{Address: addr.String(), Path: opts.KeypairPath})
}
