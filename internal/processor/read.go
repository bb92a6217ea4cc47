package processor

import (
	"context"

	"github.com/curvyfi/curvy/internal/acct"
	"github.com/curvyfi/curvy/internal/curve"
)

// Entry pairs a record with the slot address it lives at.
type Entry struct {
	Address acct.Address
	Record  *curve.Record
}

// Curve fetches and decodes a single record. Pure read, no authorization.
func (p *Processor) Curve(ctx context.Context, addr acct.Address) (*curve.Record, error) {
	data, err := p.store.SlotData(ctx, addr)
	if err != nil {
		return nil, mapLedgerError(err, addr)
	}
	return curve.DecodeRecord(data)
}

// Curves enumerates every curve record in deterministic address order.
// Slots holding other record types are skipped; a slot that carries the
// curve discriminator but fails to decode is an error, not silently dropped.
func (p *Processor) Curves(ctx context.Context) ([]Entry, error) {
	slots, err := p.store.ListSlots(ctx)
	if err != nil {
		return nil, err
	}

	entries := []Entry{}
	for _, slot := range slots {
		if !curve.IsRecordData(slot.Data) {
			continue
		}
		rec, err := curve.DecodeRecord(slot.Data)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Address: slot.Address, Record: rec})
	}

	return entries, nil
}
