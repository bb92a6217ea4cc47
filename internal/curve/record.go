package curve

import (
	"bytes"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/curvyfi/curvy/internal/acct"
)

// Discriminator tags every persisted curve record.
var Discriminator = [8]byte{'C', 'U', 'R', 'V', 'E', '_', '_', '_'}

const (
	// Version is the current record layout version.
	Version = 1

	// LabelSize is the fixed byte length of the name and formula labels.
	LabelSize = 16

	// MaxYCount bounds the number of samples so a whole curve fits in one
	// fixed-size slot of statically known length.
	MaxYCount = 130

	// MaxDecimals bounds the fixed-point scale of x0, x_step and y.
	MaxDecimals = 9

	// RecordSize is the exact persisted size of a Record in bytes.
	// The layout is 8-byte aligned.
	RecordSize = 8 + 1 + 7 + LabelSize + LabelSize + acct.AddressSize + 4 + 4 + 1 + 1 + 6 + MaxYCount*4
)

// Record is one persisted curve. Field order mirrors the wire layout; see
// MarshalBinary for the byte-level encoding.
type Record struct {
	Discriminator [8]byte
	Version       uint8

	// Name is a human-readable label, zero-padded.
	Name [LabelSize]byte

	// Formula is a human-readable description of the sampled function.
	Formula [LabelSize]byte

	// Owner is the identity authorized to alter or delete this record.
	// It is an authorization back-reference only.
	Owner acct.Address

	// X0 is the scaled domain start.
	X0 uint32

	// XStep is the scaled spacing between samples. Never zero in a valid
	// record.
	XStep uint32

	// YCount is the number of meaningful entries in Y, 1..=MaxYCount.
	YCount uint8

	// Decimals is the fixed-point scale shared by X0, XStep and Y.
	Decimals uint8

	// Y holds the samples; only the first YCount entries are meaningful.
	Y [MaxYCount]uint32
}

// Params is the transient geometry/label payload used at creation and
// alteration. It carries everything a Record does except the
// discriminator/version tag and the owner.
type Params struct {
	Name     string
	Formula  string
	X0       uint32
	XStep    uint32
	YCount   uint8
	Decimals uint8
	Y        [MaxYCount]uint32
}

// NewRecord returns a fully initialized record for params owned by owner.
// Params must already have passed CheckParams.
func NewRecord(params Params, owner acct.Address) (*Record, error) {
	var r Record
	if err := r.SetParams(params); err != nil {
		return nil, err
	}
	r.Owner = owner
	return &r, nil
}

// SetParams replaces all geometry and label fields wholesale and stamps the
// discriminator and version. The owner is left untouched.
func (r *Record) SetParams(params Params) error {
	name, err := PackLabel(params.Name)
	if err != nil {
		return &ParamError{Reason: ReasonBadLabel, Message: fmt.Sprintf("name: %v", err)}
	}
	formula, err := PackLabel(params.Formula)
	if err != nil {
		return &ParamError{Reason: ReasonBadLabel, Message: fmt.Sprintf("formula: %v", err)}
	}

	r.Discriminator = Discriminator
	r.Version = Version
	r.Name = name
	r.Formula = formula
	r.X0 = params.X0
	r.XStep = params.XStep
	r.YCount = params.YCount
	r.Decimals = params.Decimals
	r.Y = params.Y
	return nil
}

// Params extracts the transient payload equivalent of the record.
func (r *Record) Params() Params {
	return Params{
		Name:     UnpackLabel(r.Name),
		Formula:  UnpackLabel(r.Formula),
		X0:       r.X0,
		XStep:    r.XStep,
		YCount:   r.YCount,
		Decimals: r.Decimals,
		Y:        r.Y,
	}
}

// Samples returns the meaningful prefix of Y.
func (r *Record) Samples() []uint32 {
	n := int(r.YCount)
	if n > MaxYCount {
		n = MaxYCount
	}
	return r.Y[:n]
}

// PackLabel normalizes s to NFC and zero-pads it into a fixed label.
// Labels longer than LabelSize bytes after normalization are rejected.
func PackLabel(s string) ([LabelSize]byte, error) {
	var label [LabelSize]byte
	normalized := norm.NFC.String(s)
	if len(normalized) > LabelSize {
		return label, fmt.Errorf("label %q exceeds %d bytes", s, LabelSize)
	}
	copy(label[:], normalized)
	return label, nil
}

// UnpackLabel strips the zero padding from a fixed label.
func UnpackLabel(label [LabelSize]byte) string {
	return string(bytes.TrimRight(label[:], "\x00"))
}
