package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// NamedKeyPrefix is the textual prefix of a named-key address.
const NamedKeyPrefix = "named-key-"

// A NamedKeyAddr addresses one named key of an addressable entity. The name
// is stored as the 32-byte blake2b digest of the name string, not the string
// itself.
type NamedKeyAddr struct {
	Entity    EntityAddr
	NameBytes Hash
}

// NewNamedKeyAddr returns the address of the named key with the given name
// digest.
func NewNamedKeyAddr(entity EntityAddr, nameBytes Hash) NamedKeyAddr {
	return NamedKeyAddr{Entity: entity, NameBytes: nameBytes}
}

// NamedKeyAddrFor returns the address of the named key with the given name.
func NamedKeyAddrFor(entity EntityAddr, name string) NamedKeyAddr {
	return NamedKeyAddr{Entity: entity, NameBytes: HashBytes([]byte(name))}
}

// ParseNamedKeyAddr parses a named-key address from its
// "named-key-<entity>-<name hex>" form.
func ParseNamedKeyAddr(s string) (n NamedKeyAddr, err error) {
	rest, ok := strings.CutPrefix(s, NamedKeyPrefix)
	if !ok {
		return NamedKeyAddr{}, fmt.Errorf("%q: %w", s, ErrUnknownPrefix)
	}
	if n.Entity, rest, err = cutEntityAddr(rest); err != nil {
		return NamedKeyAddr{}, err
	}
	n.NameBytes, err = ParseHash(rest)
	return
}

// PrefixedString returns the "named-key-<entity>-<name hex>" form.
func (n NamedKeyAddr) PrefixedString() string {
	return NamedKeyPrefix + n.Entity.PrefixedString() + "-" + hex.EncodeToString(n.NameBytes[:])
}

// String implements fmt.Stringer.
func (n NamedKeyAddr) String() string { return n.PrefixedString() }

// MarshalText implements encoding.TextMarshaler.
func (n NamedKeyAddr) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *NamedKeyAddr) UnmarshalText(b []byte) (err error) {
	*n, err = ParseNamedKeyAddr(string(b))
	return
}

// EncodeTo implements types.EncoderTo.
func (n NamedKeyAddr) EncodeTo(e *Encoder) {
	n.Entity.EncodeTo(e)
	e.Write(n.NameBytes[:])
}

// DecodeFrom implements types.DecoderFrom.
func (n *NamedKeyAddr) DecodeFrom(d *Decoder) {
	n.Entity.DecodeFrom(d)
	d.Read(n.NameBytes[:])
}
