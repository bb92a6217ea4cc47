package curve

import (
	"encoding/binary"
	"fmt"
)

// Byte offsets of the persisted layout. All multi-byte integers are
// little-endian; padding bytes are zero.
const (
	offDiscriminator = 0
	offVersion       = 8
	offPadding       = 9 // 7 bytes
	offName          = 16
	offFormula       = 32
	offOwner         = 48
	offX0            = 80
	offXStep         = 84
	offYCount        = 88
	offDecimals      = 89
	offPadding1      = 90 // 6 bytes
	offY             = 96
)

// MarshalBinary encodes the record into its fixed RecordSize-byte layout.
func (r *Record) MarshalBinary() ([]byte, error) {
	buf := make([]byte, RecordSize)

	copy(buf[offDiscriminator:], r.Discriminator[:])
	buf[offVersion] = r.Version
	copy(buf[offName:], r.Name[:])
	copy(buf[offFormula:], r.Formula[:])
	copy(buf[offOwner:], r.Owner[:])
	binary.LittleEndian.PutUint32(buf[offX0:], r.X0)
	binary.LittleEndian.PutUint32(buf[offXStep:], r.XStep)
	buf[offYCount] = r.YCount
	buf[offDecimals] = r.Decimals
	for i, v := range r.Y {
		binary.LittleEndian.PutUint32(buf[offY+i*4:], v)
	}

	return buf, nil
}

// UnmarshalBinary decodes a record from its persisted bytes. The
// discriminator and version are verified before any other byte is trusted;
// mismatches fail with a LayoutError and leave r untouched.
func (r *Record) UnmarshalBinary(data []byte) error {
	if len(data) != RecordSize {
		return &LayoutError{
			Reason:  ReasonBadSize,
			Message: fmt.Sprintf("got %d bytes, want %d", len(data), RecordSize),
		}
	}

	var disc [8]byte
	copy(disc[:], data[offDiscriminator:])
	if disc != Discriminator {
		return &LayoutError{
			Reason:  ReasonBadDiscriminator,
			Message: fmt.Sprintf("got %q, want %q", disc[:], Discriminator[:]),
		}
	}
	if v := data[offVersion]; v != Version {
		return &LayoutError{
			Reason:  ReasonBadVersion,
			Message: fmt.Sprintf("got %d, want %d", v, Version),
		}
	}

	r.Discriminator = disc
	r.Version = data[offVersion]
	copy(r.Name[:], data[offName:])
	copy(r.Formula[:], data[offFormula:])
	copy(r.Owner[:], data[offOwner:])
	r.X0 = binary.LittleEndian.Uint32(data[offX0:])
	r.XStep = binary.LittleEndian.Uint32(data[offXStep:])
	r.YCount = data[offYCount]
	r.Decimals = data[offDecimals]
	for i := range r.Y {
		r.Y[i] = binary.LittleEndian.Uint32(data[offY+i*4:])
	}

	return nil
}

// DecodeRecord is a convenience wrapper around UnmarshalBinary.
func DecodeRecord(data []byte) (*Record, error) {
	var r Record
	if err := r.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return &r, nil
}

// IsRecordData reports whether data carries the curve discriminator. It is
// a cheap filter for bulk enumeration and does not validate the rest of the
// layout.
func IsRecordData(data []byte) bool {
	if len(data) < len(Discriminator) {
		return false
	}
	var disc [8]byte
	copy(disc[:], data)
	return disc == Discriminator
}
