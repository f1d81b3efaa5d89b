package types

import (
	"encoding/hex"
	"fmt"
)

// Public key algorithm tags, as they appear on the wire and as the leading
// byte of the hex form.
const (
	AlgorithmSystem    uint8 = 0
	AlgorithmEd25519   uint8 = 1
	AlgorithmSecp256k1 uint8 = 2
)

// publicKeyLen returns the key length for an algorithm tag, or -1 if the tag
// is unknown.
func publicKeyLen(alg uint8) int {
	switch alg {
	case AlgorithmSystem:
		return 0
	case AlgorithmEd25519:
		return 32
	case AlgorithmSecp256k1:
		return 33
	default:
		return -1
	}
}

// A PublicKey is an account public key: an algorithm tag followed by the raw
// key bytes. The signature math itself lives elsewhere; this type only
// encodes already-produced key bytes.
type PublicKey struct {
	Algorithm uint8
	Key       []byte
}

// NewPublicKey constructs a PublicKey, validating the algorithm tag and the
// key length it implies.
func NewPublicKey(alg uint8, key []byte) (PublicKey, error) {
	n := publicKeyLen(alg)
	if n < 0 {
		return PublicKey{}, fmt.Errorf("public key algorithm %v: %w", alg, ErrUnknownTag)
	} else if len(key) != n {
		return PublicKey{}, fmt.Errorf("%v public key must be %v bytes, got %v: %w", algorithmName(alg), n, len(key), ErrInvalidLength)
	}
	return PublicKey{Algorithm: alg, Key: append([]byte(nil), key...)}, nil
}

// ParsePublicKey parses a public key from its hex form: a two-character
// algorithm tag followed by the hex-encoded key bytes.
func ParsePublicKey(s string) (PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("decoding public key hex failed: %w", err)
	} else if len(b) == 0 {
		return PublicKey{}, fmt.Errorf("empty public key: %w", ErrInvalidLength)
	}
	return NewPublicKey(b[0], b[1:])
}

func algorithmName(alg uint8) string {
	switch alg {
	case AlgorithmSystem:
		return "system"
	case AlgorithmEd25519:
		return "ed25519"
	case AlgorithmSecp256k1:
		return "secp256k1"
	default:
		return "unknown"
	}
}

// AccountHash derives the account hash identifying this key on-chain: the
// blake2b-256 digest of the lowercase algorithm name, a zero byte, and the raw
// key bytes.
func (pk PublicKey) AccountHash() AccountHash {
	name := algorithmName(pk.Algorithm)
	buf := make([]byte, 0, len(name)+1+len(pk.Key))
	buf = append(buf, name...)
	buf = append(buf, 0)
	buf = append(buf, pk.Key...)
	return NewAccountHash(HashBytes(buf))
}

// String implements fmt.Stringer.
func (pk PublicKey) String() string {
	return hex.EncodeToString(append([]byte{pk.Algorithm}, pk.Key...))
}

// MarshalText implements encoding.TextMarshaler.
func (pk PublicKey) MarshalText() ([]byte, error) { return []byte(pk.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (pk *PublicKey) UnmarshalText(b []byte) (err error) {
	*pk, err = ParsePublicKey(string(b))
	return
}

// EncodeTo implements types.EncoderTo.
func (pk PublicKey) EncodeTo(e *Encoder) {
	e.WriteUint8(pk.Algorithm)
	e.Write(pk.Key)
}

// DecodeFrom implements types.DecoderFrom.
func (pk *PublicKey) DecodeFrom(d *Decoder) {
	pk.Algorithm = d.ReadUint8()
	n := publicKeyLen(pk.Algorithm)
	if n < 0 {
		d.SetErr(fmt.Errorf("public key algorithm %v: %w", pk.Algorithm, ErrUnknownTag))
		return
	}
	pk.Key = make([]byte, n)
	d.Read(pk.Key)
}
