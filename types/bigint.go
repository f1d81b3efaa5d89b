package types

import (
	"fmt"
	"math/big"
)

// Widths of the unsigned big-integer types, in bytes.
const (
	maxU128Bytes = 16
	maxU256Bytes = 32
	maxU512Bytes = 64
)

// bigPayloadBytes returns the wire payload for an unsigned big integer: a
// length byte followed by the minimal little-endian magnitude bytes.
func bigPayloadBytes(i *big.Int, maxBytes int) ([]byte, error) {
	if i == nil {
		i = new(big.Int)
	}
	if i.Sign() < 0 {
		return nil, fmt.Errorf("big integers are unsigned, got %v: %w", i, ErrMalformedNumeric)
	}
	be := i.Bytes()
	if len(be) > maxBytes {
		return nil, fmt.Errorf("value needs %v bytes, type holds at most %v: %w", len(be), maxBytes, ErrMalformedNumeric)
	}
	buf := make([]byte, 1+len(be))
	buf[0] = byte(len(be))
	for j, b := range be {
		buf[1+len(be)-1-j] = b
	}
	return buf, nil
}

// readBigPayload consumes a big-integer payload from the stream, returning
// its raw bytes (length byte included).
func readBigPayload(d *Decoder, maxBytes int) []byte {
	n := d.ReadUint8()
	if d.Err() != nil {
		return nil
	} else if int(n) > maxBytes {
		d.SetErr(fmt.Errorf("big integer length %v exceeds type width %v: %w", n, maxBytes, ErrMalformedNumeric))
		return nil
	}
	buf := make([]byte, 1+int(n))
	buf[0] = n
	d.Read(buf[1:])
	return buf
}

// bigFromPayload reconstructs the magnitude from a big-integer payload
// produced by readBigPayload.
func bigFromPayload(buf []byte) *big.Int {
	le := buf[1:]
	be := make([]byte, len(le))
	for i, b := range le {
		be[len(le)-1-i] = b
	}
	return new(big.Int).SetBytes(be)
}
