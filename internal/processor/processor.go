package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/curvyfi/curvy/internal/acct"
	"github.com/curvyfi/curvy/internal/curve"
	"github.com/curvyfi/curvy/internal/ledger"
)

// Provider is the slice of the host storage environment the processor
// consumes: atomic transactions over slots plus pure reads.
type Provider interface {
	Atomic(ctx context.Context, fn func(tx *ledger.Tx) error) error
	SlotData(ctx context.Context, addr acct.Address) ([]byte, error)
	ListSlots(ctx context.Context) ([]ledger.Slot, error)
}

// TokenGenerator produces trace tokens for instruction logging.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 trace tokens.
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined trace tokens for testing.
type FixedGenerator struct {
	Tokens []string
	next   int
}

func (g *FixedGenerator) Generate() string {
	if g.next >= len(g.Tokens) {
		return fmt.Sprintf("fixed-token-%d", g.next)
	}
	t := g.Tokens[g.next]
	g.next++
	return t
}

// Processor executes curve lifecycle instructions against a Provider.
type Processor struct {
	store  Provider
	tokens TokenGenerator
}

// New returns a processor backed by the given provider. A nil tokens
// generator defaults to UUIDv7.
func New(store Provider, tokens TokenGenerator) *Processor {
	if tokens == nil {
		tokens = UUIDv7Generator{}
	}
	return &Processor{store: store, tokens: tokens}
}

// Process decodes and dispatches a wire-form request.
func (p *Processor) Process(ctx context.Context, req Request) error {
	tag, params, err := DecodeInstruction(req.Data)
	if err != nil {
		return err
	}

	switch tag {
	case TagCreateCurve:
		return p.CreateCurve(ctx, CreateCurve{
			Curve: req.Curve, Owner: req.Owner, Params: params, Signers: req.Signers,
		})
	case TagAlterCurve:
		return p.AlterCurve(ctx, AlterCurve{
			Curve: req.Curve, Owner: req.Owner, Params: params, Signers: req.Signers,
		})
	default:
		return p.DeleteCurve(ctx, DeleteCurve{
			Curve: req.Curve, Owner: req.Owner, Signers: req.Signers,
		})
	}
}

// CreateCurve allocates a slot of exactly the record size, funded by the
// owner, and initializes it with validated params. Both the curve identity
// and the owner must have co-signed. Fails with no state change if the slot
// is occupied, funding is short, or the params are invalid.
func (p *Processor) CreateCurve(ctx context.Context, req CreateCurve) error {
	token := p.tokens.Generate()
	slog.Info("create_curve",
		"trace", token,
		"curve", req.Curve,
		"owner", req.Owner)

	if !req.Signers.Signed(req.Curve) {
		return newAuthorizationError(req.Curve, "curve")
	}
	if !req.Signers.Signed(req.Owner) {
		return newAuthorizationError(req.Curve, "owner")
	}
	if err := checkSampleCount(req.Params, req.Curve); err != nil {
		return err
	}

	err := p.store.Atomic(ctx, func(tx *ledger.Tx) error {
		if err := tx.AllocateSlot(req.Curve, curve.RecordSize, req.Owner); err != nil {
			return mapLedgerError(err, req.Curve)
		}

		if err := curve.CheckParams(req.Params); err != nil {
			return err
		}

		rec, err := curve.NewRecord(req.Params, req.Owner)
		if err != nil {
			return err
		}
		data, err := rec.MarshalBinary()
		if err != nil {
			return err
		}
		return tx.WriteSlot(req.Curve, data)
	})
	if err != nil {
		slog.Warn("create_curve rejected", "trace", token, "error", err)
		return err
	}

	slog.Info("curve created", "trace", token, "curve", req.Curve)
	return nil
}

// AlterCurve re-validates the fully merged params and replaces the record's
// geometry/label fields wholesale, leaving the owner untouched. Fails with
// no mutation on ownership mismatch or invalid params.
func (p *Processor) AlterCurve(ctx context.Context, req AlterCurve) error {
	token := p.tokens.Generate()
	slog.Info("alter_curve",
		"trace", token,
		"curve", req.Curve,
		"owner", req.Owner)

	if !req.Signers.Signed(req.Owner) {
		return newAuthorizationError(req.Curve, "owner")
	}
	if err := checkSampleCount(req.Params, req.Curve); err != nil {
		return err
	}

	err := p.store.Atomic(ctx, func(tx *ledger.Tx) error {
		data, err := tx.SlotData(req.Curve)
		if err != nil {
			return mapLedgerError(err, req.Curve)
		}
		rec, err := curve.DecodeRecord(data)
		if err != nil {
			return err
		}
		if rec.Owner != req.Owner {
			return newOwnerMismatchError(req.Curve)
		}

		if err := curve.CheckParams(req.Params); err != nil {
			return err
		}
		if err := rec.SetParams(req.Params); err != nil {
			return err
		}

		out, err := rec.MarshalBinary()
		if err != nil {
			return err
		}
		return tx.WriteSlot(req.Curve, out)
	})
	if err != nil {
		slog.Warn("alter_curve rejected", "trace", token, "error", err)
		return err
	}

	slog.Info("curve altered", "trace", token, "curve", req.Curve)
	return nil
}

// DeleteCurve transfers the slot's entire residual balance to the owner and
// releases the slot. Fails with no state change on ownership mismatch or if
// the defensive balance check trips.
func (p *Processor) DeleteCurve(ctx context.Context, req DeleteCurve) error {
	token := p.tokens.Generate()
	slog.Info("delete_curve",
		"trace", token,
		"curve", req.Curve,
		"owner", req.Owner)

	if !req.Signers.Signed(req.Owner) {
		return newAuthorizationError(req.Curve, "owner")
	}

	err := p.store.Atomic(ctx, func(tx *ledger.Tx) error {
		data, err := tx.SlotData(req.Curve)
		if err != nil {
			return mapLedgerError(err, req.Curve)
		}
		rec, err := curve.DecodeRecord(data)
		if err != nil {
			return err
		}
		if rec.Owner != req.Owner {
			return newOwnerMismatchError(req.Curve)
		}

		balance, err := tx.SlotBalance(req.Curve)
		if err != nil {
			return mapLedgerError(err, req.Curve)
		}
		if err := tx.TransferFromSlot(req.Curve, req.Owner, balance); err != nil {
			return mapLedgerError(err, req.Curve)
		}
		return tx.DeleteSlot(req.Curve)
	})
	if err != nil {
		slog.Warn("delete_curve rejected", "trace", token, "error", err)
		return err
	}

	slog.Info("curve deleted", "trace", token, "curve", req.Curve)
	return nil
}

// checkSampleCount bounds y_count against the record's fixed sample array.
// The geometry validator leaves this bound to its callers; a count past
// MaxYCount would commit samples the record cannot hold, so lookups inside
// the validated domain would land beyond the stored array.
func checkSampleCount(params curve.Params, curveAddr acct.Address) error {
	if int(params.YCount) > curve.MaxYCount {
		return &InstructionError{
			Code:    ErrCodeInvalidInstruction,
			Message: fmt.Sprintf("y_count %d exceeds the maximum of %d samples", params.YCount, curve.MaxYCount),
			Curve:   curveAddr,
		}
	}
	return nil
}

// mapLedgerError translates provider sentinels into the instruction error
// taxonomy; anything else passes through wrapped.
func mapLedgerError(err error, curveAddr acct.Address) error {
	switch {
	case errors.Is(err, ledger.ErrSlotExists):
		return &InstructionError{
			Code:    ErrCodeSlotExists,
			Message: "slot is already allocated",
			Curve:   curveAddr,
		}
	case errors.Is(err, ledger.ErrSlotAbsent):
		return &InstructionError{
			Code:    ErrCodeSlotAbsent,
			Message: "slot is not allocated",
			Curve:   curveAddr,
		}
	case errors.Is(err, ledger.ErrWalletAbsent), errors.Is(err, ledger.ErrInsufficientFunds):
		return &InstructionError{
			Code:    ErrCodeInsufficientBalance,
			Message: err.Error(),
			Curve:   curveAddr,
		}
	default:
		return err
	}
}
