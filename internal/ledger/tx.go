package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/curvyfi/curvy/internal/acct"
)

// Tx is the transactional view handed to Atomic callbacks. All mutations of
// slots and balances go through it so a failed instruction leaves nothing
// behind.
type Tx struct {
	ctx context.Context
	tx  *sql.Tx
}

// SlotData returns the slot's current bytes, or ErrSlotAbsent.
func (t *Tx) SlotData(addr acct.Address) ([]byte, error) {
	var data []byte
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT data FROM slots WHERE address = ?`, addr[:]).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("query slot %s: %w", addr, err)
	}
	return data, nil
}

// SlotBalance returns the slot's recorded balance, or ErrSlotAbsent.
func (t *Tx) SlotBalance(addr acct.Address) (int64, error) {
	var balance int64
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT balance FROM slots WHERE address = ?`, addr[:]).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrSlotAbsent
	}
	if err != nil {
		return 0, fmt.Errorf("query slot balance %s: %w", addr, err)
	}
	return balance, nil
}

// AllocateSlot creates an empty slot of exactly size bytes at addr, funded
// by debiting RentFor(size) from the funder wallet. The address must be
// unoccupied and the funder must cover the rent.
func (t *Tx) AllocateSlot(addr acct.Address, size int, funder acct.Address) error {
	var exists int
	err := t.tx.QueryRowContext(t.ctx,
		`SELECT 1 FROM slots WHERE address = ?`, addr[:]).Scan(&exists)
	if err == nil {
		return ErrSlotExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("query slot %s: %w", addr, err)
	}

	rent := RentFor(size)

	var balance int64
	err = t.tx.QueryRowContext(t.ctx,
		`SELECT balance FROM wallets WHERE address = ?`, funder[:]).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrWalletAbsent
	}
	if err != nil {
		return fmt.Errorf("query wallet %s: %w", funder, err)
	}
	if balance < rent {
		return fmt.Errorf("%w: wallet %s holds %d, rent is %d", ErrInsufficientFunds, funder, balance, rent)
	}

	if _, err := t.tx.ExecContext(t.ctx,
		`UPDATE wallets SET balance = balance - ? WHERE address = ?`, rent, funder[:]); err != nil {
		return fmt.Errorf("debit wallet %s: %w", funder, err)
	}

	if _, err := t.tx.ExecContext(t.ctx,
		`INSERT INTO slots (address, data, balance) VALUES (?, ?, ?)`,
		addr[:], make([]byte, size), rent); err != nil {
		return fmt.Errorf("insert slot %s: %w", addr, err)
	}

	return nil
}

// WriteSlot replaces the slot's bytes wholesale. The slot must exist.
func (t *Tx) WriteSlot(addr acct.Address, data []byte) error {
	res, err := t.tx.ExecContext(t.ctx,
		`UPDATE slots SET data = ? WHERE address = ?`, data, addr[:])
	if err != nil {
		return fmt.Errorf("write slot %s: %w", addr, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write slot %s: %w", addr, err)
	}
	if n == 0 {
		return ErrSlotAbsent
	}
	return nil
}

// TransferFromSlot moves amount from the slot's balance into the recipient
// wallet, creating the wallet if needed. Transferring more than the slot
// holds fails with ErrInsufficientFunds and changes nothing.
func (t *Tx) TransferFromSlot(addr acct.Address, recipient acct.Address, amount int64) error {
	balance, err := t.SlotBalance(addr)
	if err != nil {
		return err
	}
	if balance < amount {
		return fmt.Errorf("%w: slot %s holds %d, transfer of %d requested",
			ErrInsufficientFunds, addr, balance, amount)
	}

	if _, err := t.tx.ExecContext(t.ctx,
		`UPDATE slots SET balance = balance - ? WHERE address = ?`, amount, addr[:]); err != nil {
		return fmt.Errorf("debit slot %s: %w", addr, err)
	}

	if _, err := t.tx.ExecContext(t.ctx, `
		INSERT INTO wallets (address, balance) VALUES (?, ?)
		ON CONFLICT(address) DO UPDATE SET balance = balance + excluded.balance
	`, recipient[:], amount); err != nil {
		return fmt.Errorf("credit wallet %s: %w", recipient, err)
	}

	return nil
}

// DeleteSlot releases the slot row. The slot must exist.
func (t *Tx) DeleteSlot(addr acct.Address) error {
	res, err := t.tx.ExecContext(t.ctx,
		`DELETE FROM slots WHERE address = ?`, addr[:])
	if err != nil {
		return fmt.Errorf("delete slot %s: %w", addr, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete slot %s: %w", addr, err)
	}
	if n == 0 {
		return ErrSlotAbsent
	}
	return nil
}
