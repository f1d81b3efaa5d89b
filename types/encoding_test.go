package types

import (
	"bytes"
	"errors"
	"testing"

	"lukechampine.com/frand"
)

func TestEncoderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	e.WriteBool(true)
	e.WriteUint8(0x2a)
	e.WriteUint32(0xdeadbeef)
	e.WriteUint64(0xfeedfacecafef00d)
	randBytes := frand.Bytes(100)
	e.WriteBytes(randBytes)
	e.WriteString("hello")
	if err := e.Flush(); err != nil {
		t.Fatal(err)
	}

	d := NewBufDecoder(buf.Bytes())
	if !d.ReadBool() {
		t.Error("expected true")
	}
	if v := d.ReadUint8(); v != 0x2a {
		t.Errorf("expected 0x2a, got %#x", v)
	}
	if v := d.ReadUint32(); v != 0xdeadbeef {
		t.Errorf("expected 0xdeadbeef, got %#x", v)
	}
	if v := d.ReadUint64(); v != 0xfeedfacecafef00d {
		t.Errorf("expected 0xfeedfacecafef00d, got %#x", v)
	}
	if v := d.ReadBytes(); !bytes.Equal(v, randBytes) {
		t.Error("bytes mismatch")
	}
	if v := d.ReadString(); v != "hello" {
		t.Errorf("expected hello, got %q", v)
	}
	if err := d.Err(); err != nil {
		t.Fatal(err)
	}
	if d.Remaining() != 0 {
		t.Errorf("expected empty remainder, got %v bytes", d.Remaining())
	}
}

func TestDecoderLittleEndian(t *testing.T) {
	d := NewBufDecoder([]byte{0x7f, 0, 0, 0})
	if v := d.ReadUint32(); v != 127 {
		t.Errorf("expected 127, got %v", v)
	}
}

func TestDecoderTruncated(t *testing.T) {
	d := NewBufDecoder([]byte{1, 2, 3})
	d.ReadUint64()
	if !errors.Is(d.Err(), ErrIncompleteStructure) {
		t.Errorf("expected ErrIncompleteStructure, got %v", d.Err())
	}

	// length prefix exceeding the buffer must not allocate or read
	d = NewBufDecoder([]byte{0xff, 0xff, 0xff, 0xff})
	d.ReadBytes()
	if !errors.Is(d.Err(), ErrIncompleteStructure) {
		t.Errorf("expected ErrIncompleteStructure, got %v", d.Err())
	}
}

func TestDecoderInvalidBool(t *testing.T) {
	d := NewBufDecoder([]byte{2})
	d.ReadBool()
	if !errors.Is(d.Err(), ErrUnknownTag) {
		t.Errorf("expected ErrUnknownTag, got %v", d.Err())
	}
}

func TestDecoderStickyError(t *testing.T) {
	d := NewBufDecoder([]byte{2, 1})
	d.ReadBool()
	first := d.Err()
	if first == nil {
		t.Fatal("expected error")
	}
	// subsequent reads return zero values and keep the first error
	if v := d.ReadUint8(); v != 0 {
		t.Errorf("expected zero read after error, got %v", v)
	}
	if d.Err() != first {
		t.Error("first error was overwritten")
	}
}

func TestDecoderRemaining(t *testing.T) {
	buf := frand.Bytes(40)
	d := NewBufDecoder(buf)
	d.ReadUint64()
	if d.Remaining() != 32 {
		t.Errorf("expected 32 bytes remaining, got %v", d.Remaining())
	}
	rest := d.ReadRemaining()
	if !bytes.Equal(rest, buf[8:]) {
		t.Error("remainder mismatch")
	}
	if d.Remaining() != 0 {
		t.Errorf("expected 0 bytes remaining, got %v", d.Remaining())
	}
}
