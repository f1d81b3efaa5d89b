package types

import (
	"fmt"
	"strings"
)

// Textual prefixes of the block-global addresses. The payload is always the
// 64-character zero string; only the tag distinguishes the two records.
const (
	BlockGlobalPrefix       = "block-"
	blockTimeInfix          = "time-"
	blockMessageCountInfix  = "message-count-"
	blockGlobalZeroesSuffix = "0000000000000000000000000000000000000000000000000000000000000000"
)

// BlockGlobalAddr tags.
const (
	BlockGlobalBlockTime uint8 = iota
	BlockGlobalMessageCount
)

// A BlockGlobalAddr addresses one of the per-block global records: the
// current block time or the running message count.
type BlockGlobalAddr struct {
	Tag uint8
}

// NewBlockGlobalAddr constructs a BlockGlobalAddr, validating the tag.
func NewBlockGlobalAddr(tag uint8) (BlockGlobalAddr, error) {
	if tag > BlockGlobalMessageCount {
		return BlockGlobalAddr{}, fmt.Errorf("block global tag %v: %w", tag, ErrUnknownTag)
	}
	return BlockGlobalAddr{Tag: tag}, nil
}

// ParseBlockGlobalAddr parses a block-global address from its
// "block-time-<64 zeros>" or "block-message-count-<64 zeros>" form.
func ParseBlockGlobalAddr(s string) (b BlockGlobalAddr, err error) {
	rest, ok := strings.CutPrefix(s, BlockGlobalPrefix)
	if !ok {
		return BlockGlobalAddr{}, fmt.Errorf("%q: %w", s, ErrUnknownPrefix)
	}
	switch {
	case strings.HasPrefix(rest, blockTimeInfix):
		b.Tag, rest = BlockGlobalBlockTime, rest[len(blockTimeInfix):]
	case strings.HasPrefix(rest, blockMessageCountInfix):
		b.Tag, rest = BlockGlobalMessageCount, rest[len(blockMessageCountInfix):]
	default:
		return BlockGlobalAddr{}, fmt.Errorf("block global record in %q: %w", s, ErrUnknownPrefix)
	}
	if rest != blockGlobalZeroesSuffix {
		return BlockGlobalAddr{}, fmt.Errorf("block global payload in %q must be %v zeros: %w", s, len(blockGlobalZeroesSuffix), ErrInvalidLength)
	}
	return
}

// PrefixedString returns the "block-<record>-<64 zeros>" form.
func (b BlockGlobalAddr) PrefixedString() string {
	if b.Tag == BlockGlobalBlockTime {
		return BlockGlobalPrefix + blockTimeInfix + blockGlobalZeroesSuffix
	}
	return BlockGlobalPrefix + blockMessageCountInfix + blockGlobalZeroesSuffix
}

// String implements fmt.Stringer.
func (b BlockGlobalAddr) String() string { return b.PrefixedString() }

// MarshalText implements encoding.TextMarshaler.
func (b BlockGlobalAddr) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BlockGlobalAddr) UnmarshalText(text []byte) (err error) {
	*b, err = ParseBlockGlobalAddr(string(text))
	return
}

// EncodeTo implements types.EncoderTo.
func (b BlockGlobalAddr) EncodeTo(e *Encoder) { e.WriteUint8(b.Tag) }

// DecodeFrom implements types.DecoderFrom.
func (b *BlockGlobalAddr) DecodeFrom(d *Decoder) {
	b.Tag = d.ReadUint8()
	if b.Tag > BlockGlobalMessageCount {
		d.SetErr(fmt.Errorf("block global tag %v: %w", b.Tag, ErrUnknownTag))
	}
}
