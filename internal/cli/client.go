package cli

import (
	"github.com/spf13/cobra"

	"github.com/curvyfi/curvy/internal/acct"
	"github.com/curvyfi/curvy/internal/ledger"
	"github.com/curvyfi/curvy/internal/processor"
)

// newFormatter builds the output formatter for a command invocation.
func newFormatter(cmd *cobra.Command, opts *RootOptions) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// openStore opens the ledger database named by the global --store flag.
func openStore(opts *RootOptions) (*ledger.Store, error) {
	st, err := ledger.Open(opts.StorePath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open ledger database", err)
	}
	return st, nil
}

// openProcessor opens the store and wraps it in an instruction processor.
// The caller closes the returned store.
func openProcessor(opts *RootOptions) (*processor.Processor, *ledger.Store, error) {
	st, err := openStore(opts)
	if err != nil {
		return nil, nil, err
	}
	return processor.New(st, nil), st, nil
}

// loadKeypair reads the signing identity named by the global --keypair flag.
func loadKeypair(opts *RootOptions) (acct.Address, error) {
	addr, err := acct.ReadKeyFile(opts.KeypairPath)
	if err != nil {
		return acct.Address{}, WrapExitError(ExitCommandError, "failed to load keypair", err)
	}
	return addr, nil
}

// parseCurveFlag decodes a --curve flag value.
func parseCurveFlag(s string) (acct.Address, error) {
	addr, err := acct.ParseAddress(s)
	if err != nil {
		return acct.Address{}, WrapExitError(ExitCommandError, "invalid curve address", err)
	}
	return addr, nil
}
