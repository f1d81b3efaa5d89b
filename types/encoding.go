package types

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Codec errors. All decoding failures wrap one of these sentinels; they
// indicate corrupt input or a version mismatch with the chain's encoding,
// so retrying a decode cannot change the outcome.
var (
	// ErrInvalidLength is returned when a buffer or hex string has the wrong
	// length for a fixed-width field.
	ErrInvalidLength = errors.New("invalid length")

	// ErrUnknownTag is returned when a discriminant byte or enum value is
	// outside the known variant set.
	ErrUnknownTag = errors.New("unknown tag")

	// ErrUnknownPrefix is returned when no registered string prefix matches a
	// key textual input.
	ErrUnknownPrefix = errors.New("unknown key prefix")

	// ErrMalformedNumeric is returned when an era id, selector, or big-integer
	// field fails to parse as the declared numeric type.
	ErrMalformedNumeric = errors.New("malformed numeric field")

	// ErrIncompleteStructure is returned when a composite value runs out of
	// bytes before all declared sub-fields have been consumed.
	ErrIncompleteStructure = errors.New("incomplete structure")
)

// An Encoder writes Casper objects to an underlying stream.
type Encoder struct {
	w   io.Writer
	buf [1024]byte
	n   int
	err error
}

// Flush writes any pending data to the underlying stream. It returns the first
// error encountered by the Encoder.
func (e *Encoder) Flush() error {
	if e.err == nil && e.n > 0 {
		_, e.err = e.w.Write(e.buf[:e.n])
		e.n = 0
	}
	return e.err
}

// Write implements io.Writer.
func (e *Encoder) Write(p []byte) (int, error) {
	lenp := len(p)
	for e.err == nil && len(p) > 0 {
		if e.n == len(e.buf) {
			e.Flush()
		}
		c := copy(e.buf[e.n:], p)
		e.n += c
		p = p[c:]
	}
	return lenp, e.err
}

// WriteBool writes a bool value to the underlying stream.
func (e *Encoder) WriteBool(b bool) {
	var buf [1]byte
	if b {
		buf[0] = 1
	}
	e.Write(buf[:])
}

// WriteUint8 writes a uint8 value to the underlying stream.
func (e *Encoder) WriteUint8(u uint8) {
	e.Write([]byte{u})
}

// WriteUint32 writes a uint32 value to the underlying stream.
func (e *Encoder) WriteUint32(u uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], u)
	e.Write(buf[:])
}

// WriteUint64 writes a uint64 value to the underlying stream.
func (e *Encoder) WriteUint64(u uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], u)
	e.Write(buf[:])
}

// WriteBytes writes a length-prefixed []byte to the underlying stream. The
// chain's wire format uses a little-endian uint32 count for all variable-width
// fields.
func (e *Encoder) WriteBytes(b []byte) {
	e.WriteUint32(uint32(len(b)))
	e.Write(b)
}

// WriteString writes a length-prefixed string to the underlying stream.
func (e *Encoder) WriteString(s string) {
	e.WriteBytes([]byte(s))
}

// Reset resets the Encoder to write to w. Any unflushed data, along with any
// error previously encountered, is discarded.
func (e *Encoder) Reset(w io.Writer) {
	e.w = w
	e.n = 0
	e.err = nil
}

// NewEncoder returns an Encoder that wraps the provided stream.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w: w,
	}
}

// An EncoderTo can encode itself to a stream via an Encoder.
type EncoderTo interface {
	EncodeTo(e *Encoder)
}

// encodedBytes returns the binary encoding of v as a fresh byte slice.
func encodedBytes(v EncoderTo) []byte {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	v.EncodeTo(e)
	e.Flush()
	return buf.Bytes()
}

// A Decoder reads values from an underlying stream. Callers MUST check
// (*Decoder).Err before using any decoded values.
type Decoder struct {
	lr  io.LimitedReader
	buf [64]byte
	err error
}

// SetErr sets the Decoder's error if it has not already been set. SetErr should
// only be called from DecodeFrom methods.
func (d *Decoder) SetErr(err error) {
	if err != nil && d.err == nil {
		d.err = err
		// clear d.buf so that future reads always return zero
		d.buf = [len(d.buf)]byte{}
	}
}

// Err returns the first error encountered during decoding.
func (d *Decoder) Err() error { return d.err }

// Remaining returns the number of unconsumed bytes in the stream. Sub-parsers
// consume exactly the bytes their type requires, so after a successful decode
// the caller can slice off the unconsumed tail of the original buffer.
func (d *Decoder) Remaining() int { return int(d.lr.N) }

// Read implements the io.Reader interface. It always returns an error if fewer
// than len(p) bytes were read.
func (d *Decoder) Read(p []byte) (int, error) {
	n := 0
	for len(p[n:]) > 0 && d.err == nil {
		read, err := io.ReadFull(&d.lr, d.buf[:min(len(p[n:]), len(d.buf))])
		n += copy(p[n:], d.buf[:read])
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = fmt.Errorf("expected %v more bytes: %w", len(p)-n, ErrIncompleteStructure)
		}
		d.SetErr(err)
	}
	return n, d.err
}

// ReadBool reads a bool value from the underlying stream.
func (d *Decoder) ReadBool() bool {
	d.Read(d.buf[:1])
	switch d.buf[0] {
	case 0:
		return false
	case 1:
		return true
	default:
		d.SetErr(fmt.Errorf("invalid bool value (%v): %w", d.buf[0], ErrUnknownTag))
		return false
	}
}

// ReadUint8 reads a uint8 value from the underlying stream.
func (d *Decoder) ReadUint8() uint8 {
	d.Read(d.buf[:1])
	return d.buf[0]
}

// ReadUint32 reads a uint32 value from the underlying stream.
func (d *Decoder) ReadUint32() uint32 {
	d.Read(d.buf[:4])
	return binary.LittleEndian.Uint32(d.buf[:4])
}

// ReadUint64 reads a uint64 value from the underlying stream.
func (d *Decoder) ReadUint64() uint64 {
	d.Read(d.buf[:8])
	return binary.LittleEndian.Uint64(d.buf[:8])
}

// ReadBytes reads a length-prefixed []byte from the underlying stream.
func (d *Decoder) ReadBytes() []byte {
	n := d.ReadUint32()
	if int64(n) > d.lr.N {
		d.SetErr(fmt.Errorf("length prefix (%v bytes) exceeds %v bytes left in stream: %w", n, d.lr.N, ErrIncompleteStructure))
		return nil
	}
	b := make([]byte, n)
	d.Read(b)
	return b
}

// ReadString reads a length-prefixed string from the underlying stream.
func (d *Decoder) ReadString() string {
	return string(d.ReadBytes())
}

// ReadRemaining reads all unconsumed bytes from the underlying stream.
func (d *Decoder) ReadRemaining() []byte {
	if d.err != nil || d.lr.N == 0 {
		return nil
	}
	b := make([]byte, d.lr.N)
	d.Read(b)
	return b
}

// NewDecoder returns a Decoder that wraps the provided stream.
func NewDecoder(lr io.LimitedReader) *Decoder {
	return &Decoder{
		lr: lr,
	}
}

// A DecoderFrom can decode itself from a stream via a Decoder.
type DecoderFrom interface {
	DecodeFrom(d *Decoder)
}

// NewBufDecoder returns a Decoder for the provided byte slice.
func NewBufDecoder(buf []byte) *Decoder {
	return NewDecoder(io.LimitedReader{
		R: bytes.NewReader(buf),
		N: int64(len(buf)),
	})
}
