package types

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// URefPrefix is the textual prefix of an unforgeable reference.
const URefPrefix = "uref-"

// AccessRights is the bitmask controlling read/write/add permissions on a
// URef.
type AccessRights uint8

// The eight valid access-rights values.
const (
	AccessNone AccessRights = iota
	AccessRead
	AccessWrite
	AccessReadWrite
	AccessAdd
	AccessReadAdd
	AccessAddWrite
	AccessReadAddWrite
)

// IsValid reports whether a is within the known access-rights range.
func (a AccessRights) IsValid() bool { return a <= AccessReadAddWrite }

// A URef is an unforgeable reference: a 32-byte address into global state
// plus the access rights the holder has on it.
type URef struct {
	Addr   [32]byte
	Access AccessRights
}

// NewURef constructs a URef from a 32-byte address and an access-rights value.
func NewURef(addr []byte, access AccessRights) (u URef, err error) {
	if len(addr) != len(u.Addr) {
		return URef{}, fmt.Errorf("uref address must be %v bytes, got %v: %w", len(u.Addr), len(addr), ErrInvalidLength)
	} else if !access.IsValid() {
		return URef{}, fmt.Errorf("access rights %v: %w", uint8(access), ErrUnknownTag)
	}
	copy(u.Addr[:], addr)
	u.Access = access
	return
}

// ParseURef parses a URef from its "uref-<hex32>-<access>" form, where the
// access suffix is a 3-digit octal value.
func ParseURef(s string) (u URef, err error) {
	rest, ok := strings.CutPrefix(s, URefPrefix)
	if !ok {
		return URef{}, fmt.Errorf("%q: %w", s, ErrUnknownPrefix)
	}
	hexPart, accessPart, ok := strings.Cut(rest, "-")
	if !ok {
		return URef{}, fmt.Errorf("uref %q is missing the access suffix: %w", s, ErrInvalidLength)
	}
	if len(hexPart) != len(u.Addr)*2 {
		return URef{}, fmt.Errorf("uref address must be %v hex chars, got %v: %w", len(u.Addr)*2, len(hexPart), ErrInvalidLength)
	} else if _, err := hex.Decode(u.Addr[:], []byte(hexPart)); err != nil {
		return URef{}, fmt.Errorf("decoding uref hex failed: %w", err)
	}
	if len(accessPart) != 3 {
		return URef{}, fmt.Errorf("uref access suffix must be 3 digits, got %q: %w", accessPart, ErrInvalidLength)
	}
	access, err := strconv.ParseUint(accessPart, 8, 8)
	if err != nil {
		return URef{}, fmt.Errorf("uref access suffix %q: %w", accessPart, ErrMalformedNumeric)
	} else if !AccessRights(access).IsValid() {
		return URef{}, fmt.Errorf("access rights %v: %w", access, ErrUnknownTag)
	}
	u.Access = AccessRights(access)
	return
}

// String implements fmt.Stringer.
func (u URef) String() string {
	return fmt.Sprintf("%s%x-%03o", URefPrefix, u.Addr, uint8(u.Access))
}

// PrefixedString returns the "uref-<hex32>-<access>" form.
func (u URef) PrefixedString() string { return u.String() }

// MarshalText implements encoding.TextMarshaler.
func (u URef) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *URef) UnmarshalText(b []byte) (err error) {
	*u, err = ParseURef(string(b))
	return
}

// EncodeTo implements types.EncoderTo.
func (u URef) EncodeTo(e *Encoder) {
	e.Write(u.Addr[:])
	e.WriteUint8(uint8(u.Access))
}

// DecodeFrom implements types.DecoderFrom.
func (u *URef) DecodeFrom(d *Decoder) {
	d.Read(u.Addr[:])
	access := d.ReadUint8()
	if !AccessRights(access).IsValid() {
		d.SetErr(fmt.Errorf("access rights %v: %w", access, ErrUnknownTag))
		return
	}
	u.Access = AccessRights(access)
}
