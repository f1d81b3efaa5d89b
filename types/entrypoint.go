package types

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Textual prefixes of entry-point addresses.
const (
	EntryPointPrefix  = "entry-point-"
	entryPointV1Infix = "v1-"
	entryPointV2Infix = "v2-"
)

// EntryPointAddr tags.
const (
	EntryPointV1 uint8 = iota
	EntryPointV2
)

// An EntryPointAddr addresses an entry point of an addressable entity. V1
// entry points are named, addressed by the 32-byte digest of the name; V2
// entry points are addressed by a numeric selector.
type EntryPointAddr struct {
	Tag    uint8
	Entity EntityAddr
	// NameBytes is set for V1 entry points only.
	NameBytes *Hash
	// Selector is set for V2 entry points only.
	Selector *uint32
}

// NewEntryPointAddrV1 returns the address of the V1 entry point with the
// given name digest.
func NewEntryPointAddrV1(entity EntityAddr, nameBytes Hash) EntryPointAddr {
	return EntryPointAddr{Tag: EntryPointV1, Entity: entity, NameBytes: &nameBytes}
}

// NewEntryPointAddrV2 returns the address of the V2 entry point with the
// given selector.
func NewEntryPointAddrV2(entity EntityAddr, selector uint32) EntryPointAddr {
	return EntryPointAddr{Tag: EntryPointV2, Entity: entity, Selector: &selector}
}

// ParseEntryPointAddr parses an entry-point address from its
// "entry-point-v1-<entity>-<name hex>" or "entry-point-v2-<entity>-<selector>"
// form.
func ParseEntryPointAddr(s string) (ep EntryPointAddr, err error) {
	rest, ok := strings.CutPrefix(s, EntryPointPrefix)
	if !ok {
		return EntryPointAddr{}, fmt.Errorf("%q: %w", s, ErrUnknownPrefix)
	}
	switch {
	case strings.HasPrefix(rest, entryPointV1Infix):
		ep.Tag, rest = EntryPointV1, rest[len(entryPointV1Infix):]
	case strings.HasPrefix(rest, entryPointV2Infix):
		ep.Tag, rest = EntryPointV2, rest[len(entryPointV2Infix):]
	default:
		return EntryPointAddr{}, fmt.Errorf("entry point version in %q: %w", s, ErrUnknownPrefix)
	}
	if ep.Entity, rest, err = cutEntityAddr(rest); err != nil {
		return EntryPointAddr{}, err
	}
	if ep.Tag == EntryPointV1 {
		name, err := ParseHash(rest)
		if err != nil {
			return EntryPointAddr{}, err
		}
		ep.NameBytes = &name
		return ep, nil
	}
	sel, err := strconv.ParseUint(rest, 10, 32)
	if err != nil {
		return EntryPointAddr{}, fmt.Errorf("entry point selector %q: %w", rest, ErrMalformedNumeric)
	}
	selector := uint32(sel)
	ep.Selector = &selector
	return ep, nil
}

// PrefixedString returns the "entry-point-<version>-<entity>-<suffix>" form.
func (ep EntryPointAddr) PrefixedString() string {
	if ep.Tag == EntryPointV1 {
		name := derefHash(ep.NameBytes)
		return EntryPointPrefix + entryPointV1Infix + ep.Entity.PrefixedString() + "-" + hex.EncodeToString(name[:])
	}
	var sel uint32
	if ep.Selector != nil {
		sel = *ep.Selector
	}
	return EntryPointPrefix + entryPointV2Infix + ep.Entity.PrefixedString() + "-" + strconv.FormatUint(uint64(sel), 10)
}

// String implements fmt.Stringer.
func (ep EntryPointAddr) String() string { return ep.PrefixedString() }

// MarshalText implements encoding.TextMarshaler.
func (ep EntryPointAddr) MarshalText() ([]byte, error) { return []byte(ep.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (ep *EntryPointAddr) UnmarshalText(b []byte) (err error) {
	*ep, err = ParseEntryPointAddr(string(b))
	return
}

// EncodeTo implements types.EncoderTo.
func (ep EntryPointAddr) EncodeTo(e *Encoder) {
	e.WriteUint8(ep.Tag)
	ep.Entity.EncodeTo(e)
	if ep.Tag == EntryPointV1 {
		name := derefHash(ep.NameBytes)
		e.Write(name[:])
	} else {
		var sel uint32
		if ep.Selector != nil {
			sel = *ep.Selector
		}
		e.WriteUint32(sel)
	}
}

// DecodeFrom implements types.DecoderFrom.
func (ep *EntryPointAddr) DecodeFrom(d *Decoder) {
	*ep = EntryPointAddr{Tag: d.ReadUint8()}
	switch ep.Tag {
	case EntryPointV1:
		ep.Entity.DecodeFrom(d)
		var name Hash
		d.Read(name[:])
		ep.NameBytes = &name
	case EntryPointV2:
		ep.Entity.DecodeFrom(d)
		sel := d.ReadUint32()
		ep.Selector = &sel
	default:
		d.SetErr(fmt.Errorf("entry point tag %v: %w", ep.Tag, ErrUnknownTag))
	}
	if d.Err() != nil {
		*ep = EntryPointAddr{}
	}
}
