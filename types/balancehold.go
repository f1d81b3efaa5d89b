package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// BalanceHoldPrefix is the textual prefix of a balance-hold address.
const BalanceHoldPrefix = "balance-hold-"

// BalanceHoldAddr tags.
const (
	BalanceHoldGas uint8 = iota
	BalanceHoldProcessing
)

// A BalanceHoldAddr addresses a temporary hold placed on a purse balance,
// either for gas or for processing, at a given block time.
type BalanceHoldAddr struct {
	Tag       uint8
	PurseAddr Hash
	// BlockTime is the hold's block timestamp in milliseconds since the
	// Unix epoch.
	BlockTime uint64
}

// NewBalanceHoldAddr constructs a BalanceHoldAddr, validating the tag.
func NewBalanceHoldAddr(tag uint8, purseAddr Hash, blockTime uint64) (BalanceHoldAddr, error) {
	if tag > BalanceHoldProcessing {
		return BalanceHoldAddr{}, fmt.Errorf("balance hold tag %v: %w", tag, ErrUnknownTag)
	}
	return BalanceHoldAddr{Tag: tag, PurseAddr: purseAddr, BlockTime: blockTime}, nil
}

// ParseBalanceHoldAddr parses a balance-hold address from its
// "balance-hold-<hex>" form, where the hex encodes the tag byte, the purse
// address, and the block time.
func ParseBalanceHoldAddr(s string) (BalanceHoldAddr, error) {
	rest, ok := strings.CutPrefix(s, BalanceHoldPrefix)
	if !ok {
		return BalanceHoldAddr{}, fmt.Errorf("%q: %w", s, ErrUnknownPrefix)
	}
	buf, err := hex.DecodeString(rest)
	if err != nil {
		return BalanceHoldAddr{}, fmt.Errorf("decoding balance hold hex failed: %w", err)
	}
	d := NewBufDecoder(buf)
	var b BalanceHoldAddr
	b.DecodeFrom(d)
	if err := d.Err(); err != nil {
		return BalanceHoldAddr{}, err
	} else if d.Remaining() != 0 {
		return BalanceHoldAddr{}, fmt.Errorf("%v trailing bytes after balance hold: %w", d.Remaining(), ErrInvalidLength)
	}
	return b, nil
}

// PrefixedString returns the "balance-hold-<hex>" form.
func (b BalanceHoldAddr) PrefixedString() string {
	return BalanceHoldPrefix + hex.EncodeToString(encodedBytes(b))
}

// String implements fmt.Stringer.
func (b BalanceHoldAddr) String() string { return b.PrefixedString() }

// MarshalText implements encoding.TextMarshaler.
func (b BalanceHoldAddr) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BalanceHoldAddr) UnmarshalText(text []byte) (err error) {
	*b, err = ParseBalanceHoldAddr(string(text))
	return
}

// EncodeTo implements types.EncoderTo.
func (b BalanceHoldAddr) EncodeTo(e *Encoder) {
	e.WriteUint8(b.Tag)
	e.Write(b.PurseAddr[:])
	e.WriteUint64(b.BlockTime)
}

// DecodeFrom implements types.DecoderFrom.
func (b *BalanceHoldAddr) DecodeFrom(d *Decoder) {
	b.Tag = d.ReadUint8()
	if b.Tag > BalanceHoldProcessing {
		d.SetErr(fmt.Errorf("balance hold tag %v: %w", b.Tag, ErrUnknownTag))
		return
	}
	d.Read(b.PurseAddr[:])
	b.BlockTime = d.ReadUint64()
}
