package types

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"lukechampine.com/frand"
)

func TestURefString(t *testing.T) {
	u, err := NewURef(bytes.Repeat([]byte{0x2a}, 32), AccessReadAddWrite)
	if err != nil {
		t.Fatal(err)
	}
	want := URefPrefix + strings.Repeat("2a", 32) + "-007"
	if u.String() != want {
		t.Errorf("expected %q, got %q", want, u.String())
	}
	parsed, err := ParseURef(want)
	if err != nil {
		t.Fatal(err)
	}
	if parsed != u {
		t.Error("parsed value differs from constructed value")
	}
}

func TestURefRejection(t *testing.T) {
	if _, err := NewURef(frand.Bytes(31), AccessRead); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength for 31 bytes, got %v", err)
	}
	if _, err := NewURef(frand.Bytes(33), AccessRead); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength for 33 bytes, got %v", err)
	}
	if _, err := NewURef(frand.Bytes(32), AccessRights(8)); !errors.Is(err, ErrUnknownTag) {
		t.Errorf("expected ErrUnknownTag for access 8, got %v", err)
	}

	hex64 := strings.Repeat("2a", 32)
	for _, tc := range []struct {
		s    string
		want error
	}{
		{"hash-" + hex64 + "-007", ErrUnknownPrefix},
		{URefPrefix + hex64, ErrInvalidLength},
		{URefPrefix + hex64[:62] + "-007", ErrInvalidLength},
		{URefPrefix + hex64 + "-07", ErrInvalidLength},
		{URefPrefix + hex64 + "-0x7", ErrMalformedNumeric},
		{URefPrefix + hex64 + "-010", ErrUnknownTag},
	} {
		if _, err := ParseURef(tc.s); !errors.Is(err, tc.want) {
			t.Errorf("%q: expected %v, got %v", tc.s, tc.want, err)
		}
	}
}

func TestURefBinaryRoundTrip(t *testing.T) {
	u, err := NewURef(frand.Bytes(32), AccessRights(frand.Intn(8)))
	if err != nil {
		t.Fatal(err)
	}
	b := encodedBytes(u)
	if len(b) != 33 {
		t.Fatalf("expected 33 bytes, got %v", len(b))
	}
	d := NewBufDecoder(b)
	var u2 URef
	u2.DecodeFrom(d)
	if err := d.Err(); err != nil {
		t.Fatal(err)
	}
	if u2 != u {
		t.Error("binary round trip mismatch")
	}

	b[32] = 8
	d = NewBufDecoder(b)
	u2.DecodeFrom(d)
	if !errors.Is(d.Err(), ErrUnknownTag) {
		t.Errorf("expected ErrUnknownTag, got %v", d.Err())
	}
}
