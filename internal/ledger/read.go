package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/curvyfi/curvy/internal/acct"
)

// Slot is one allocated storage slot.
type Slot struct {
	Address acct.Address
	Data    []byte
	Balance int64
}

// SlotData returns the current bytes of a slot outside any transaction, or
// ErrSlotAbsent.
func (s *Store) SlotData(ctx context.Context, addr acct.Address) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM slots WHERE address = ?`, addr[:]).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotAbsent
	}
	if err != nil {
		return nil, fmt.Errorf("query slot %s: %w", addr, err)
	}
	return data, nil
}

// SlotBalance returns a slot's recorded balance outside any transaction.
func (s *Store) SlotBalance(ctx context.Context, addr acct.Address) (int64, error) {
	var balance int64
	err := s.db.QueryRowContext(ctx,
		`SELECT balance FROM slots WHERE address = ?`, addr[:]).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrSlotAbsent
	}
	if err != nil {
		return 0, fmt.Errorf("query slot balance %s: %w", addr, err)
	}
	return balance, nil
}

// ListSlots returns every allocated slot in deterministic address order.
// Returns an empty slice (not nil) when no slots exist.
func (s *Store) ListSlots(ctx context.Context) ([]Slot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT address, data, balance
		FROM slots
		ORDER BY address ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query slots: %w", err)
	}
	defer rows.Close()

	slots := []Slot{}
	for rows.Next() {
		var (
			raw  []byte
			slot Slot
		)
		if err := rows.Scan(&raw, &slot.Data, &slot.Balance); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		if len(raw) != acct.AddressSize {
			return nil, fmt.Errorf("slot address has %d bytes, want %d", len(raw), acct.AddressSize)
		}
		copy(slot.Address[:], raw)
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slots: %w", err)
	}

	return slots, nil
}
