package types

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"lukechampine.com/frand"
)

func TestBidAddrCredit(t *testing.T) {
	validator := Hash(frand.Entropy256())
	s := BidAddrPrefix + "04" + validator.String() + "7f00000000000000"
	b, err := ParseBidAddr(s)
	if err != nil {
		t.Fatal(err)
	}
	if b.Tag != BidAddrCredit {
		t.Fatalf("expected Credit tag, got %v", b.Tag)
	}
	if b.Validator == nil || *b.Validator != validator {
		t.Error("validator not populated")
	}
	if b.EraID == nil || *b.EraID != 127 {
		t.Errorf("expected era 127, got %v", b.EraID)
	}
	if b.Unified != nil || b.Delegator != nil || b.DelegatorPurse != nil {
		t.Error("unrelated fields populated")
	}
	if b.PrefixedString() != s {
		t.Errorf("expected %q, got %q", s, b.PrefixedString())
	}
}

func TestBidAddrFieldPresence(t *testing.T) {
	v := Hash(frand.Entropy256())
	d := Hash(frand.Entropy256())
	for _, tc := range []struct {
		addr      BidAddr
		wantLen   int
		delegator bool
		purse     bool
	}{
		{NewUnifiedBidAddr(v), 33, false, false},
		{NewValidatorBidAddr(v), 33, false, false},
		{NewDelegatorBidAddr(v, d), 65, true, false},
		{NewDelegatorPurseBidAddr(v, d), 65, false, true},
		{NewCreditBidAddr(v, 9), 41, false, false},
		{NewReservedBidAddr(v, d, false), 65, true, false},
		{NewReservedBidAddr(v, d, true), 65, false, true},
		{NewUnbondBidAddr(v, d, false), 65, true, false},
		{NewUnbondBidAddr(v, d, true), 65, false, true},
	} {
		enc := encodedBytes(tc.addr)
		if len(enc) != tc.wantLen {
			t.Errorf("tag %v: expected %v bytes, got %v", tc.addr.Tag, tc.wantLen, len(enc))
		}
		if (tc.addr.Delegator != nil) != tc.delegator {
			t.Errorf("tag %v: unexpected Delegator presence", tc.addr.Tag)
		}
		if (tc.addr.DelegatorPurse != nil) != tc.purse {
			t.Errorf("tag %v: unexpected DelegatorPurse presence", tc.addr.Tag)
		}

		parsed, rest, err := ParseBidAddrBytes(enc)
		if err != nil {
			t.Fatalf("tag %v: %v", tc.addr.Tag, err)
		}
		if len(rest) != 0 {
			t.Fatalf("tag %v: %v trailing bytes", tc.addr.Tag, len(rest))
		}
		if !bytes.Equal(encodedBytes(parsed), enc) {
			t.Errorf("tag %v: binary round trip mismatch", tc.addr.Tag)
		}

		reparsed, err := ParseBidAddr(tc.addr.PrefixedString())
		if err != nil {
			t.Fatalf("tag %v: %v", tc.addr.Tag, err)
		}
		if reparsed.PrefixedString() != tc.addr.PrefixedString() {
			t.Errorf("tag %v: text round trip mismatch", tc.addr.Tag)
		}
	}
}

func TestBidAddrTruncated(t *testing.T) {
	if _, _, err := ParseBidAddrBytes(frand.Bytes(10)); err == nil {
		t.Fatal("expected error for 10-byte buffer")
	} else if !errors.Is(err, ErrIncompleteStructure) && !errors.Is(err, ErrUnknownTag) {
		t.Errorf("expected ErrIncompleteStructure or ErrUnknownTag, got %v", err)
	}

	buf := append([]byte{BidAddrValidator}, frand.Bytes(9)...)
	if _, _, err := ParseBidAddrBytes(buf); !errors.Is(err, ErrIncompleteStructure) {
		t.Errorf("expected ErrIncompleteStructure, got %v", err)
	}
}

func TestBidAddrRejection(t *testing.T) {
	if _, err := ParseBidAddr("bid-" + Hash(frand.Entropy256()).String()); !errors.Is(err, ErrUnknownPrefix) {
		t.Errorf("expected ErrUnknownPrefix, got %v", err)
	}
	if _, err := ParseBidAddr(BidAddrPrefix + "zz"); err == nil {
		t.Error("expected error for non-hex payload")
	}

	// unknown variant tag
	payload := append([]byte{9}, frand.Bytes(32)...)
	if _, err := ParseBidAddr(BidAddrPrefix + hex.EncodeToString(payload)); !errors.Is(err, ErrUnknownTag) {
		t.Errorf("expected ErrUnknownTag, got %v", err)
	}

	// trailing bytes after a complete variant
	payload = append([]byte{BidAddrValidator}, frand.Bytes(33)...)
	if _, err := ParseBidAddr(BidAddrPrefix + hex.EncodeToString(payload)); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
}
