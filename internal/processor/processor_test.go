package processor

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curvyfi/curvy/internal/acct"
	"github.com/curvyfi/curvy/internal/curve"
	"github.com/curvyfi/curvy/internal/ledger"
)

// setupTestProcessor creates a processor over a real SQLite ledger.
func setupTestProcessor(t *testing.T) (*Processor, *ledger.Store) {
	t.Helper()
	s, err := ledger.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	p := New(s, &FixedGenerator{})
	return p, s
}

// testParams returns five samples on x = 0, 0.02 .. 0.08 at two decimals.
func testParams() curve.Params {
	p := curve.Params{
		Name:     "test curve",
		Formula:  "y=f(x)",
		X0:       0,
		XStep:    2,
		YCount:   5,
		Decimals: 2,
	}
	copy(p.Y[:], []uint32{200, 300, 400, 700, 1_000_000_000})
	return p
}

func newAddr(t *testing.T) acct.Address {
	t.Helper()
	a, err := acct.NewAddress()
	require.NoError(t, err)
	return a
}

// fundedOwner creates an owner wallet able to cover one record slot.
func fundedOwner(t *testing.T, s *ledger.Store) acct.Address {
	t.Helper()
	owner := newAddr(t)
	require.NoError(t, s.Airdrop(context.Background(), owner, 10*ledger.RentFor(curve.RecordSize)))
	return owner
}

func mustCreate(t *testing.T, p *Processor, s *ledger.Store) (curveAddr, owner acct.Address) {
	t.Helper()
	owner = fundedOwner(t, s)
	curveAddr = newAddr(t)
	require.NoError(t, p.CreateCurve(context.Background(), CreateCurve{
		Curve:   curveAddr,
		Owner:   owner,
		Params:  testParams(),
		Signers: acct.Signers(curveAddr, owner),
	}))
	return curveAddr, owner
}

func TestCreateCurve_InitializesRecord(t *testing.T) {
	ctx := context.Background()
	p, s := setupTestProcessor(t)
	curveAddr, owner := mustCreate(t, p, s)

	rec, err := p.Curve(ctx, curveAddr)
	require.NoError(t, err)

	assert.Equal(t, curve.Discriminator, rec.Discriminator)
	assert.Equal(t, uint8(curve.Version), rec.Version)
	assert.Equal(t, owner, rec.Owner)
	assert.Equal(t, testParams(), rec.Params())

	// The slot was funded with exactly the record's rent.
	balance, err := s.SlotBalance(ctx, curveAddr)
	require.NoError(t, err)
	assert.Equal(t, ledger.RentFor(curve.RecordSize), balance)
}

func TestCreateCurve_RequiresBothSignatures(t *testing.T) {
	ctx := context.Background()
	p, s := setupTestProcessor(t)
	owner := fundedOwner(t, s)
	curveAddr := newAddr(t)

	for _, signers := range []acct.SignerSet{
		acct.Signers(owner),     // curve identity missing
		acct.Signers(curveAddr), // owner missing
		nil,
	} {
		err := p.CreateCurve(ctx, CreateCurve{
			Curve:   curveAddr,
			Owner:   owner,
			Params:  testParams(),
			Signers: signers,
		})
		require.Error(t, err)
		assert.True(t, IsAuthorizationError(err), "signers %v: got %v", signers, err)
	}

	// No rejected attempt left a slot behind.
	_, err := p.Curve(ctx, curveAddr)
	assert.True(t, IsStateError(err))
}

func TestCreateCurve_RejectsOccupiedSlot(t *testing.T) {
	ctx := context.Background()
	p, s := setupTestProcessor(t)
	curveAddr, owner := mustCreate(t, p, s)

	before, err := p.Curve(ctx, curveAddr)
	require.NoError(t, err)

	err = p.CreateCurve(ctx, CreateCurve{
		Curve:   curveAddr,
		Owner:   owner,
		Params:  testParams(),
		Signers: acct.Signers(curveAddr, owner),
	})
	require.Error(t, err)

	var ie *InstructionError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, ErrCodeSlotExists, ie.Code)

	after, err := p.Curve(ctx, curveAddr)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestCreateCurve_InvalidParamsRollsBackAllocation(t *testing.T) {
	ctx := context.Background()
	p, s := setupTestProcessor(t)
	owner := fundedOwner(t, s)
	curveAddr := newAddr(t)

	funds, err := s.WalletBalance(ctx, owner)
	require.NoError(t, err)

	bad := testParams()
	bad.XStep = 0

	err = p.CreateCurve(ctx, CreateCurve{
		Curve:   curveAddr,
		Owner:   owner,
		Params:  bad,
		Signers: acct.Signers(curveAddr, owner),
	})
	require.Error(t, err)
	assert.True(t, curve.IsParamError(err))

	// The slot allocation and the wallet debit were both rolled back.
	_, err = s.SlotData(ctx, curveAddr)
	assert.ErrorIs(t, err, ledger.ErrSlotAbsent)
	after, err := s.WalletBalance(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, funds, after)
}

func TestCreateCurve_RejectsUnfundedOwner(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestProcessor(t)
	owner := newAddr(t)
	curveAddr := newAddr(t)

	err := p.CreateCurve(ctx, CreateCurve{
		Curve:   curveAddr,
		Owner:   owner,
		Params:  testParams(),
		Signers: acct.Signers(curveAddr, owner),
	})
	require.Error(t, err)

	var ie *InstructionError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, ErrCodeInsufficientBalance, ie.Code)
}

func TestAlterCurve_ReplacesGeometryWholesale(t *testing.T) {
	ctx := context.Background()
	p, s := setupTestProcessor(t)
	curveAddr, owner := mustCreate(t, p, s)

	next := testParams()
	next.Name = "altered"
	next.Decimals = 3
	next.XStep = 5
	copy(next.Y[:], []uint32{1000, 2000, 3000, 4000, 5000})

	require.NoError(t, p.AlterCurve(ctx, AlterCurve{
		Curve:   curveAddr,
		Owner:   owner,
		Params:  next,
		Signers: acct.Signers(owner),
	}))

	rec, err := p.Curve(ctx, curveAddr)
	require.NoError(t, err)
	assert.Equal(t, next, rec.Params())
	assert.Equal(t, owner, rec.Owner, "alter must leave the owner untouched")
}

func TestAlterCurve_Idempotent(t *testing.T) {
	ctx := context.Background()
	p, s := setupTestProcessor(t)
	curveAddr, owner := mustCreate(t, p, s)

	next := testParams()
	next.Formula = "y=2x"

	req := AlterCurve{
		Curve:   curveAddr,
		Owner:   owner,
		Params:  next,
		Signers: acct.Signers(owner),
	}
	require.NoError(t, p.AlterCurve(ctx, req))
	first, err := s.SlotData(ctx, curveAddr)
	require.NoError(t, err)

	require.NoError(t, p.AlterCurve(ctx, req))
	second, err := s.SlotData(ctx, curveAddr)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical params twice must yield an identical record")
}

func TestAlterCurve_RejectsNonOwner(t *testing.T) {
	ctx := context.Background()
	p, s := setupTestProcessor(t)
	curveAddr, _ := mustCreate(t, p, s)
	intruder := newAddr(t)

	before, err := p.Curve(ctx, curveAddr)
	require.NoError(t, err)

	next := testParams()
	next.Name = "hijacked"
	err = p.AlterCurve(ctx, AlterCurve{
		Curve:   curveAddr,
		Owner:   intruder,
		Params:  next,
		Signers: acct.Signers(intruder),
	})
	require.Error(t, err)

	var ie *InstructionError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, ErrCodeOwnerMismatch, ie.Code)

	after, err := p.Curve(ctx, curveAddr)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestAlterCurve_AbsentSlot(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestProcessor(t)
	owner := newAddr(t)

	err := p.AlterCurve(ctx, AlterCurve{
		Curve:   newAddr(t),
		Owner:   owner,
		Params:  testParams(),
		Signers: acct.Signers(owner),
	})
	require.Error(t, err)

	var ie *InstructionError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, ErrCodeSlotAbsent, ie.Code)
}

func TestAlterCurve_InvalidParamsLeaveRecordUntouched(t *testing.T) {
	ctx := context.Background()
	p, s := setupTestProcessor(t)
	curveAddr, owner := mustCreate(t, p, s)

	before, err := s.SlotData(ctx, curveAddr)
	require.NoError(t, err)

	bad := testParams()
	bad.Decimals = 10
	err = p.AlterCurve(ctx, AlterCurve{
		Curve:   curveAddr,
		Owner:   owner,
		Params:  bad,
		Signers: acct.Signers(owner),
	})
	require.Error(t, err)
	assert.True(t, curve.IsParamError(err))

	after, err := s.SlotData(ctx, curveAddr)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDeleteCurve_ReturnsBalanceAndReleasesSlot(t *testing.T) {
	ctx := context.Background()
	p, s := setupTestProcessor(t)
	curveAddr, owner := mustCreate(t, p, s)

	walletBefore, err := s.WalletBalance(ctx, owner)
	require.NoError(t, err)
	slotBalance, err := s.SlotBalance(ctx, curveAddr)
	require.NoError(t, err)

	require.NoError(t, p.DeleteCurve(ctx, DeleteCurve{
		Curve:   curveAddr,
		Owner:   owner,
		Signers: acct.Signers(owner),
	}))

	walletAfter, err := s.WalletBalance(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, walletBefore+slotBalance, walletAfter)

	_, err = p.Curve(ctx, curveAddr)
	require.Error(t, err)
	var ie *InstructionError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, ErrCodeSlotAbsent, ie.Code)
}

func TestDeleteCurve_AbsentSlot(t *testing.T) {
	ctx := context.Background()
	p, _ := setupTestProcessor(t)
	owner := newAddr(t)

	err := p.DeleteCurve(ctx, DeleteCurve{
		Curve:   newAddr(t),
		Owner:   owner,
		Signers: acct.Signers(owner),
	})
	require.Error(t, err)

	var ie *InstructionError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, ErrCodeSlotAbsent, ie.Code)
}

func TestDeleteCurve_RejectsNonOwner(t *testing.T) {
	ctx := context.Background()
	p, s := setupTestProcessor(t)
	curveAddr, _ := mustCreate(t, p, s)
	intruder := newAddr(t)

	before, err := p.Curve(ctx, curveAddr)
	require.NoError(t, err)

	err = p.DeleteCurve(ctx, DeleteCurve{
		Curve:   curveAddr,
		Owner:   intruder,
		Signers: acct.Signers(intruder),
	})
	require.Error(t, err)
	assert.True(t, IsAuthorizationError(err))

	// A subsequent read sees the record unchanged.
	after, err := p.Curve(ctx, curveAddr)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestDeleteCurve_RequiresOwnerSignature(t *testing.T) {
	ctx := context.Background()
	p, s := setupTestProcessor(t)
	curveAddr, owner := mustCreate(t, p, s)

	err := p.DeleteCurve(ctx, DeleteCurve{
		Curve:   curveAddr,
		Owner:   owner,
		Signers: nil,
	})
	require.Error(t, err)
	assert.True(t, IsAuthorizationError(err))

	_, err = p.Curve(ctx, curveAddr)
	assert.NoError(t, err)
}

func TestCurves_EnumeratesOnlyCurveSlots(t *testing.T) {
	ctx := context.Background()
	p, s := setupTestProcessor(t)

	a1, _ := mustCreate(t, p, s)
	a2, _ := mustCreate(t, p, s)

	// An unrelated slot with a different record tag must be skipped.
	other := newAddr(t)
	funder := fundedOwner(t, s)
	require.NoError(t, s.Atomic(ctx, func(tx *ledger.Tx) error {
		if err := tx.AllocateSlot(other, 16, funder); err != nil {
			return err
		}
		return tx.WriteSlot(other, []byte("WALLET__00000000"))
	}))

	entries, err := p.Curves(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	got := map[acct.Address]bool{}
	for _, e := range entries {
		got[e.Address] = true
		assert.Equal(t, testParams(), e.Record.Params())
	}
	assert.True(t, got[a1])
	assert.True(t, got[a2])

	// Deterministic address order.
	assert.True(t, entries[0].Address.String() < entries[1].Address.String())
}

func TestProcess_WireRoundTrip(t *testing.T) {
	ctx := context.Background()
	p, s := setupTestProcessor(t)
	owner := fundedOwner(t, s)
	curveAddr := newAddr(t)

	params := testParams()
	data, err := EncodeInstruction(TagCreateCurve, &params)
	require.NoError(t, err)

	require.NoError(t, p.Process(ctx, Request{
		Data:    data,
		Curve:   curveAddr,
		Owner:   owner,
		Signers: acct.Signers(curveAddr, owner),
	}))

	rec, err := p.Curve(ctx, curveAddr)
	require.NoError(t, err)
	assert.Equal(t, params, rec.Params())

	// Delete over the wire too.
	data, err = EncodeInstruction(TagDeleteCurve, nil)
	require.NoError(t, err)
	require.NoError(t, p.Process(ctx, Request{
		Data:    data,
		Curve:   curveAddr,
		Owner:   owner,
		Signers: acct.Signers(owner),
	}))

	_, err = p.Curve(ctx, curveAddr)
	assert.Error(t, err)
}

func TestCreateCurve_RejectsSampleCountPastRecordCapacity(t *testing.T) {
	ctx := context.Background()
	p, s := setupTestProcessor(t)
	owner := fundedOwner(t, s)
	curveAddr := newAddr(t)

	// The geometry validator accepts any non-zero count; the commit path
	// must still refuse counts the fixed sample array cannot hold, or
	// lookups inside the validated domain would land past the stored data.
	params := testParams()
	params.YCount = curve.MaxYCount + 70
	require.NoError(t, curve.CheckParams(params))

	err := p.CreateCurve(ctx, CreateCurve{
		Curve:   curveAddr,
		Owner:   owner,
		Params:  params,
		Signers: acct.Signers(curveAddr, owner),
	})
	require.Error(t, err)

	var ie *InstructionError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, ErrCodeInvalidInstruction, ie.Code)

	// Nothing was committed: no slot, wallet balance intact.
	_, err = s.SlotData(ctx, curveAddr)
	assert.ErrorIs(t, err, ledger.ErrSlotAbsent)
	balance, err := s.WalletBalance(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, 10*ledger.RentFor(curve.RecordSize), balance)
}

func TestAlterCurve_RejectsSampleCountPastRecordCapacity(t *testing.T) {
	ctx := context.Background()
	p, s := setupTestProcessor(t)
	curveAddr, owner := mustCreate(t, p, s)
	before, err := s.SlotData(ctx, curveAddr)
	require.NoError(t, err)

	params := testParams()
	params.YCount = curve.MaxYCount + 1

	err = p.AlterCurve(ctx, AlterCurve{
		Curve:   curveAddr,
		Owner:   owner,
		Params:  params,
		Signers: acct.Signers(owner),
	})
	require.Error(t, err)

	var ie *InstructionError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, ErrCodeInvalidInstruction, ie.Code)

	after, err := s.SlotData(ctx, curveAddr)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
