// Package acct provides the 32-byte identities used to address slots and
// authorize curve mutations, plus the signer sets mutating requests carry.
package acct

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
)

// AddressSize is the byte length of every identity.
const AddressSize = 32

// Address identifies a slot, wallet, or authorizing party. The text form is
// lowercase hex, 64 characters.
type Address [AddressSize]byte

// NewAddress returns a fresh random address.
func NewAddress() (Address, error) {
	var a Address
	if _, err := rand.Read(a[:]); err != nil {
		return Address{}, fmt.Errorf("generate address: %w", err)
	}
	return a, nil
}

// ParseAddress decodes the 64-character hex text form.
func ParseAddress(s string) (Address, error) {
	raw, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return Address{}, fmt.Errorf("parse address: %w", err)
	}
	if len(raw) != AddressSize {
		return Address{}, fmt.Errorf("parse address: got %d bytes, want %d", len(raw), AddressSize)
	}
	var a Address
	copy(a[:], raw)
	return a, nil
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether a is the all-zero address.
func (a Address) IsZero() bool {
	return a == Address{}
}

// WriteKeyFile persists the address text form with owner-only permissions.
func WriteKeyFile(path string, a Address) error {
	if err := os.WriteFile(path, []byte(a.String()+"\n"), 0o600); err != nil {
		return fmt.Errorf("write key file: %w", err)
	}
	return nil
}

// ReadKeyFile loads an address previously written by WriteKeyFile.
func ReadKeyFile(path string) (Address, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Address{}, fmt.Errorf("read key file: %w", err)
	}
	return ParseAddress(string(bytes.TrimSpace(raw)))
}
