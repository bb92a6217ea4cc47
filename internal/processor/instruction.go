package processor

import (
	"encoding/binary"
	"fmt"

	"github.com/curvyfi/curvy/internal/acct"
	"github.com/curvyfi/curvy/internal/curve"
)

// Tag discriminates instruction payloads on the wire.
type Tag uint8

const (
	TagCreateCurve Tag = iota
	TagAlterCurve
	TagDeleteCurve
)

// paramsSize is the encoded size of a curve.Params block:
// two labels, x0, x_step, y_count, decimals, and the full sample array.
const paramsSize = curve.LabelSize + curve.LabelSize + 4 + 4 + 1 + 1 + curve.MaxYCount*4

// CreateCurve asks for a new curve at an unoccupied slot. Both the curve
// identity and the owner must appear in Signers.
type CreateCurve struct {
	Curve   acct.Address
	Owner   acct.Address
	Params  curve.Params
	Signers acct.SignerSet
}

// AlterCurve replaces an existing record's geometry/label fields wholesale
// with the already fully-merged Params. The owner must appear in Signers and
// match the stored owner.
type AlterCurve struct {
	Curve   acct.Address
	Owner   acct.Address
	Params  curve.Params
	Signers acct.SignerSet
}

// DeleteCurve releases an existing record's slot, returning its residual
// balance to the owner. The owner must appear in Signers and match the
// stored owner.
type DeleteCurve struct {
	Curve   acct.Address
	Owner   acct.Address
	Signers acct.SignerSet
}

// Request is the wire form consumed by Process: encoded instruction bytes
// plus the identities the surrounding client attached.
type Request struct {
	Data    []byte
	Curve   acct.Address
	Owner   acct.Address
	Signers acct.SignerSet
}

// EncodeInstruction serializes a tag and, for create/alter, a params block.
func EncodeInstruction(tag Tag, params *curve.Params) ([]byte, error) {
	switch tag {
	case TagDeleteCurve:
		return []byte{byte(tag)}, nil
	case TagCreateCurve, TagAlterCurve:
		if params == nil {
			return nil, fmt.Errorf("instruction tag %d requires params", tag)
		}
	default:
		return nil, fmt.Errorf("unknown instruction tag %d", tag)
	}

	name, err := curve.PackLabel(params.Name)
	if err != nil {
		return nil, fmt.Errorf("encode instruction: %w", err)
	}
	formula, err := curve.PackLabel(params.Formula)
	if err != nil {
		return nil, fmt.Errorf("encode instruction: %w", err)
	}

	buf := make([]byte, 1+paramsSize)
	buf[0] = byte(tag)
	p := buf[1:]
	copy(p[0:], name[:])
	copy(p[curve.LabelSize:], formula[:])
	off := 2 * curve.LabelSize
	binary.LittleEndian.PutUint32(p[off:], params.X0)
	binary.LittleEndian.PutUint32(p[off+4:], params.XStep)
	p[off+8] = params.YCount
	p[off+9] = params.Decimals
	for i, v := range params.Y {
		binary.LittleEndian.PutUint32(p[off+10+i*4:], v)
	}

	return buf, nil
}

// DecodeInstruction parses instruction bytes produced by EncodeInstruction.
// Undecodable input fails with an INVALID_INSTRUCTION error.
func DecodeInstruction(data []byte) (Tag, curve.Params, error) {
	if len(data) == 0 {
		return 0, curve.Params{}, &InstructionError{
			Code:    ErrCodeInvalidInstruction,
			Message: "empty instruction data",
		}
	}

	tag := Tag(data[0])
	switch tag {
	case TagDeleteCurve:
		if len(data) != 1 {
			return 0, curve.Params{}, &InstructionError{
				Code:    ErrCodeInvalidInstruction,
				Message: fmt.Sprintf("delete instruction carries %d trailing bytes", len(data)-1),
			}
		}
		return tag, curve.Params{}, nil

	case TagCreateCurve, TagAlterCurve:
		if len(data) != 1+paramsSize {
			return 0, curve.Params{}, &InstructionError{
				Code:    ErrCodeInvalidInstruction,
				Message: fmt.Sprintf("got %d bytes, want %d", len(data), 1+paramsSize),
			}
		}
		p := data[1:]
		var name, formula [curve.LabelSize]byte
		copy(name[:], p[0:])
		copy(formula[:], p[curve.LabelSize:])
		off := 2 * curve.LabelSize

		params := curve.Params{
			Name:     curve.UnpackLabel(name),
			Formula:  curve.UnpackLabel(formula),
			X0:       binary.LittleEndian.Uint32(p[off:]),
			XStep:    binary.LittleEndian.Uint32(p[off+4:]),
			YCount:   p[off+8],
			Decimals: p[off+9],
		}
		for i := range params.Y {
			params.Y[i] = binary.LittleEndian.Uint32(p[off+10+i*4:])
		}
		return tag, params, nil

	default:
		return 0, curve.Params{}, &InstructionError{
			Code:    ErrCodeInvalidInstruction,
			Message: fmt.Sprintf("unknown instruction tag %d", data[0]),
		}
	}
}
