package cli

import (
	"github.com/spf13/cobra"
)

// FundOptions holds flags for the fund command.
type FundOptions struct {
	*RootOptions
	Amount int64
}

// NewFundCommand creates the fund command.
func NewFundCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FundOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "fund",
		Short: "Credit the keypair's wallet",
		Long: `Create the keypair's wallet if needed and credit it.

Rent for a curve slot is debited from this wallet at creation time and
returned when the curve is deleted.

Example:
  curvy fund --amount 10000000`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFund(opts, cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.Amount, "amount", 0, "amount to credit (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runFund(opts *FundOptions, cmd *cobra.Command) error {
	out := newFormatter(cmd, opts.RootOptions)
	ctx := cmd.Context()

	wallet, err := loadKeypair(opts.RootOptions)
	if err != nil {
		return err
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.CreateWallet(ctx, wallet); err != nil {
		return WrapExitError(ExitCommandError, "failed to create wallet", err)
	}
	if err := st.Airdrop(ctx, wallet, opts.Amount); err != nil {
		return out.Failure(err)
	}

	balance, err := st.WalletBalance(ctx, wallet)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read wallet balance", err)
	}

	return out.Success(FundView{Wallet: wallet.String(), Balance: balance})
}
