package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/curvyfi/curvy/internal/acct"
)

// CreateWallet ensures a wallet row exists for addr. Safe to call for an
// existing wallet; the balance is untouched.
func (s *Store) CreateWallet(ctx context.Context, addr acct.Address) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO wallets (address, balance) VALUES (?, 0)
		ON CONFLICT(address) DO NOTHING
	`, addr[:]); err != nil {
		return fmt.Errorf("create wallet %s: %w", addr, err)
	}
	return nil
}

// Airdrop credits amount to the wallet, creating it if needed. This stands
// in for the host environment's external funding path.
func (s *Store) Airdrop(ctx context.Context, addr acct.Address, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("airdrop amount %d must be non-negative", amount)
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO wallets (address, balance) VALUES (?, ?)
		ON CONFLICT(address) DO UPDATE SET balance = balance + excluded.balance
	`, addr[:], amount); err != nil {
		return fmt.Errorf("airdrop to wallet %s: %w", addr, err)
	}
	return nil
}

// WalletBalance returns the wallet's balance, or ErrWalletAbsent.
func (s *Store) WalletBalance(ctx context.Context, addr acct.Address) (int64, error) {
	var balance int64
	err := s.db.QueryRowContext(ctx,
		`SELECT balance FROM wallets WHERE address = ?`, addr[:]).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrWalletAbsent
	}
	if err != nil {
		return 0, fmt.Errorf("query wallet %s: %w", addr, err)
	}
	return balance, nil
}
