package types

import (
	"fmt"
	"strings"
)

// Textual prefixes of byte-code addresses.
const (
	ByteCodePrefix       = "byte-code-"
	byteCodeEmptyInfix   = "empty"
	byteCodeV1WasmInfix  = "v1-wasm-"
	ByteCodeEmptyAddress = ByteCodePrefix + byteCodeEmptyInfix
)

// ByteCodeAddr kind tags.
const (
	ByteCodeEmpty uint8 = iota
	ByteCodeV1Wasm
)

// A ByteCodeAddr addresses a stored contract body: either the empty body
// (used by system contracts, which have no wasm) or a V1 wasm blob by its
// hash.
type ByteCodeAddr struct {
	Kind uint8
	Hash Hash
}

// NewByteCodeAddr returns the address of a V1 wasm body.
func NewByteCodeAddr(h Hash) ByteCodeAddr {
	return ByteCodeAddr{Kind: ByteCodeV1Wasm, Hash: h}
}

// EmptyByteCodeAddr returns the address of the empty body.
func EmptyByteCodeAddr() ByteCodeAddr {
	return ByteCodeAddr{Kind: ByteCodeEmpty}
}

// ParseByteCodeAddr parses a byte-code address from its "byte-code-empty" or
// "byte-code-v1-wasm-<hex>" form.
func ParseByteCodeAddr(s string) (b ByteCodeAddr, err error) {
	rest, ok := strings.CutPrefix(s, ByteCodePrefix)
	if !ok {
		return ByteCodeAddr{}, fmt.Errorf("%q: %w", s, ErrUnknownPrefix)
	}
	switch {
	case rest == byteCodeEmptyInfix:
		b.Kind = ByteCodeEmpty
	case strings.HasPrefix(rest, byteCodeV1WasmInfix):
		b.Kind = ByteCodeV1Wasm
		b.Hash, err = ParseHash(rest[len(byteCodeV1WasmInfix):])
	default:
		err = fmt.Errorf("byte code kind in %q: %w", s, ErrUnknownPrefix)
	}
	if err != nil {
		return ByteCodeAddr{}, err
	}
	return
}

// PrefixedString returns the "byte-code-<kind>" form.
func (b ByteCodeAddr) PrefixedString() string {
	if b.Kind == ByteCodeEmpty {
		return ByteCodeEmptyAddress
	}
	return ByteCodePrefix + byteCodeV1WasmInfix + b.Hash.String()
}

// String implements fmt.Stringer.
func (b ByteCodeAddr) String() string { return b.PrefixedString() }

// MarshalText implements encoding.TextMarshaler.
func (b ByteCodeAddr) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *ByteCodeAddr) UnmarshalText(text []byte) (err error) {
	*b, err = ParseByteCodeAddr(string(text))
	return
}

// EncodeTo implements types.EncoderTo.
func (b ByteCodeAddr) EncodeTo(e *Encoder) {
	e.WriteUint8(b.Kind)
	if b.Kind != ByteCodeEmpty {
		e.Write(b.Hash[:])
	}
}

// DecodeFrom implements types.DecoderFrom.
func (b *ByteCodeAddr) DecodeFrom(d *Decoder) {
	*b = ByteCodeAddr{Kind: d.ReadUint8()}
	switch b.Kind {
	case ByteCodeEmpty:
	case ByteCodeV1Wasm:
		d.Read(b.Hash[:])
	default:
		d.SetErr(fmt.Errorf("byte code kind %v: %w", b.Kind, ErrUnknownTag))
	}
}
