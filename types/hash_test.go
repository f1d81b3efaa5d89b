package types

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"lukechampine.com/frand"
)

func TestHashHexRoundTrip(t *testing.T) {
	s := "55d4a6915291da12afded37fa5bc01f0803a2f0faf6acb7ec4c7ca6ab76f3330"
	h, err := ParseHash(s)
	if err != nil {
		t.Fatal(err)
	}
	if h.String() != s {
		t.Errorf("expected %q, got %q", s, h.String())
	}

	for _, bad := range []string{
		"",
		"55d4",
		s[:63],
		s + "00",
	} {
		if _, err := ParseHash(bad); !errors.Is(err, ErrInvalidLength) {
			t.Errorf("%q: expected ErrInvalidLength, got %v", bad, err)
		}
	}
	if _, err := ParseHash(strings.Repeat("zz", 32)); err == nil {
		t.Error("expected error for non-hex input")
	}
}

func TestHashFromBytes(t *testing.T) {
	b := frand.Bytes(32)
	h, err := HashFromBytes(b)
	if err != nil {
		t.Fatal(err)
	}
	if h.String() != hex.EncodeToString(b) {
		t.Errorf("expected %x, got %v", b, h)
	}
	for _, n := range []int{0, 31, 33} {
		if _, err := HashFromBytes(frand.Bytes(n)); !errors.Is(err, ErrInvalidLength) {
			t.Errorf("%v bytes: expected ErrInvalidLength, got %v", n, err)
		}
	}
}

func TestAccountHashOriginPrefix(t *testing.T) {
	h := Hash(frand.Entropy256())
	canonical := AccountHashPrefix + h.String()
	shorthand := "00" + h.String()

	a, err := ParseAccountHash(canonical)
	if err != nil {
		t.Fatal(err)
	}
	if a.String() != canonical {
		t.Errorf("expected %q, got %q", canonical, a.String())
	}
	if a != NewAccountHash(h) {
		t.Error("parsed value differs from constructed value")
	}

	// the legacy shorthand requires exactly 66 chars starting with "00"
	a, err = ParseAccountHash(shorthand)
	if err != nil {
		t.Fatal(err)
	}
	if a.String() != shorthand {
		t.Errorf("expected %q, got %q", shorthand, a.String())
	}
	if a.PrefixedString() != AccountHashPrefix+a.Hash.String() {
		t.Error("canonical form lost the prefix")
	}

	// bare hex parses with no remembered prefix
	a, err = ParseAccountHash(h.String())
	if err != nil {
		t.Fatal(err)
	}
	if a.String() != h.String() {
		t.Errorf("expected %q, got %q", h.String(), a.String())
	}
}

func TestContractHashPrefixes(t *testing.T) {
	h := Hash(frand.Entropy256())
	for _, s := range []string{
		HashAddrPrefix + h.String(),
		ContractHashPrefix + h.String(),
		h.String(),
	} {
		c, err := ParseContractHash(s)
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if c.String() != s {
			t.Errorf("expected %q, got %q", s, c.String())
		}
		if c.PrefixedString() != HashAddrPrefix+h.String() {
			t.Errorf("unexpected canonical form %q", c.PrefixedString())
		}
	}
	if _, err := ParseContractHash(ContractPackagePrefix + h.String()); !errors.Is(err, ErrUnknownPrefix) {
		t.Errorf("expected ErrUnknownPrefix for package input, got %v", err)
	}
}

func TestContractPackageHashPrefixes(t *testing.T) {
	h := Hash(frand.Entropy256())
	for _, s := range []string{
		ContractPackagePrefix + h.String(),
		PackagePrefix + h.String(),
		HashAddrPrefix + h.String(),
		h.String(),
	} {
		c, err := ParseContractPackageHash(s)
		if err != nil {
			t.Fatalf("%q: %v", s, err)
		}
		if c.String() != s {
			t.Errorf("expected %q, got %q", s, c.String())
		}
	}
}

func TestTransferHashRoundTrip(t *testing.T) {
	h := Hash(frand.Entropy256())
	tr, err := ParseTransferHash(TransferPrefix + h.String())
	if err != nil {
		t.Fatal(err)
	}
	if tr != NewTransferHash(h) {
		t.Error("parsed value differs from constructed value")
	}
	if tr.String() != TransferPrefix+h.String() {
		t.Errorf("unexpected string %q", tr.String())
	}
}

func TestPublicKeyRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		alg uint8
		len int
	}{
		{AlgorithmSystem, 0},
		{AlgorithmEd25519, 32},
		{AlgorithmSecp256k1, 33},
	} {
		pk, err := NewPublicKey(tc.alg, frand.Bytes(tc.len))
		if err != nil {
			t.Fatal(err)
		}
		parsed, err := ParsePublicKey(pk.String())
		if err != nil {
			t.Fatal(err)
		}
		if parsed.String() != pk.String() {
			t.Errorf("expected %q, got %q", pk.String(), parsed.String())
		}

		b := encodedBytes(pk)
		d := NewBufDecoder(b)
		var pk2 PublicKey
		pk2.DecodeFrom(d)
		if err := d.Err(); err != nil {
			t.Fatal(err)
		}
		if pk2.String() != pk.String() {
			t.Error("binary round trip mismatch")
		}
	}

	if _, err := NewPublicKey(3, frand.Bytes(32)); !errors.Is(err, ErrUnknownTag) {
		t.Errorf("expected ErrUnknownTag, got %v", err)
	}
	if _, err := NewPublicKey(AlgorithmEd25519, frand.Bytes(31)); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
}

func TestPublicKeyAccountHash(t *testing.T) {
	pk, err := NewPublicKey(AlgorithmEd25519, frand.Bytes(32))
	if err != nil {
		t.Fatal(err)
	}
	a := pk.AccountHash()
	if a != pk.AccountHash() {
		t.Error("account hash derivation is not deterministic")
	}
	if !strings.HasPrefix(a.String(), AccountHashPrefix) {
		t.Errorf("unexpected account hash form %q", a.String())
	}

	// different algorithms over the same key bytes must hash differently
	key := frand.Bytes(32)
	ed, _ := NewPublicKey(AlgorithmEd25519, key)
	sec, _ := NewPublicKey(AlgorithmSecp256k1, append(key, 0))
	if ed.AccountHash() == sec.AccountHash() {
		t.Error("algorithm name is not part of the digest")
	}
}
