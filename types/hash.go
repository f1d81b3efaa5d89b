package types

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// A Hash is a generic 32-byte identifier: the address of a stored value, a
// contract, a deploy, a transfer, or any other blake2b-256 digest used by the
// chain.
type Hash [32]byte

// HashBytes computes the blake2b-256 digest of b.
func HashBytes(b []byte) Hash {
	return blake2b.Sum256(b)
}

// HashFromBytes converts b to a Hash. It returns ErrInvalidLength unless b is
// exactly 32 bytes.
func HashFromBytes(b []byte) (h Hash, err error) {
	if len(b) != len(h) {
		return Hash{}, fmt.Errorf("hash must be %v bytes, got %v: %w", len(h), len(b), ErrInvalidLength)
	}
	copy(h[:], b)
	return
}

// ParseHash parses a hash from a 64-character hex string.
func ParseHash(s string) (h Hash, err error) {
	if len(s) != len(h)*2 {
		return Hash{}, fmt.Errorf("hash must be %v hex chars, got %v: %w", len(h)*2, len(s), ErrInvalidLength)
	}
	if _, err := hex.Decode(h[:], []byte(s)); err != nil {
		return Hash{}, fmt.Errorf("decoding hash hex failed: %w", err)
	}
	return
}

// String implements fmt.Stringer.
func (h Hash) String() string { return hex.EncodeToString(h[:]) }

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(b []byte) (err error) {
	*h, err = ParseHash(string(b))
	return
}

// EncodeTo implements types.EncoderTo.
func (h Hash) EncodeTo(e *Encoder) { e.Write(h[:]) }

// DecodeFrom implements types.DecoderFrom.
func (h *Hash) DecodeFrom(d *Decoder) { d.Read(h[:]) }

// Textual prefixes remembered by the hash wrapper types. A wrapper parsed from
// one of these reproduces the exact prefix seen on input; this is a
// compatibility requirement for values round-tripped through older tooling.
const (
	AccountHashPrefix     = "account-hash-"
	HashAddrPrefix        = "hash-"
	ContractHashPrefix    = "contract-"
	ContractPackagePrefix = "contract-package-"
	PackagePrefix         = "package-"
	TransferPrefix        = "transfer-"

	accountHashLegacyShorthand = "00"
)

// An AccountHash is the 32-byte identifier of a user account: the blake2b-256
// digest of the account's public key. It remembers the textual prefix it was
// parsed with, so re-serializing reproduces the input exactly.
type AccountHash struct {
	Hash

	originPrefix string
}

// NewAccountHash returns the AccountHash wrapping h.
func NewAccountHash(h Hash) AccountHash {
	return AccountHash{Hash: h, originPrefix: AccountHashPrefix}
}

// ParseAccountHash parses an account hash from its prefixed form
// ("account-hash-<hex>"), the legacy "00<hex>" shorthand, or bare hex.
func ParseAccountHash(s string) (a AccountHash, err error) {
	switch {
	case strings.HasPrefix(s, AccountHashPrefix):
		a.originPrefix = AccountHashPrefix
		s = s[len(AccountHashPrefix):]
	case len(s) == 66 && strings.HasPrefix(s, accountHashLegacyShorthand):
		a.originPrefix = accountHashLegacyShorthand
		s = s[len(accountHashLegacyShorthand):]
	}
	a.Hash, err = ParseHash(s)
	return
}

// PrefixedString returns the canonical "account-hash-<hex>" form.
func (a AccountHash) PrefixedString() string { return AccountHashPrefix + a.Hash.String() }

// String implements fmt.Stringer. It reproduces the prefix the hash was parsed
// with, which may differ from the canonical form.
func (a AccountHash) String() string { return a.originPrefix + a.Hash.String() }

// MarshalText implements encoding.TextMarshaler.
func (a AccountHash) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *AccountHash) UnmarshalText(b []byte) (err error) {
	*a, err = ParseAccountHash(string(b))
	return
}

// A ContractHash is the 32-byte identifier of a deployed contract.
type ContractHash struct {
	Hash

	originPrefix string
}

// NewContractHash returns the ContractHash wrapping h.
func NewContractHash(h Hash) ContractHash {
	return ContractHash{Hash: h, originPrefix: HashAddrPrefix}
}

// ParseContractHash parses a contract hash from "hash-<hex>", the legacy
// "contract-<hex>" form, or bare hex.
func ParseContractHash(s string) (c ContractHash, err error) {
	switch {
	case strings.HasPrefix(s, ContractPackagePrefix):
		return ContractHash{}, fmt.Errorf("%q is a contract package hash: %w", s, ErrUnknownPrefix)
	case strings.HasPrefix(s, HashAddrPrefix):
		c.originPrefix = HashAddrPrefix
		s = s[len(HashAddrPrefix):]
	case strings.HasPrefix(s, ContractHashPrefix):
		c.originPrefix = ContractHashPrefix
		s = s[len(ContractHashPrefix):]
	}
	c.Hash, err = ParseHash(s)
	return
}

// PrefixedString returns the canonical "hash-<hex>" form.
func (c ContractHash) PrefixedString() string { return HashAddrPrefix + c.Hash.String() }

// String implements fmt.Stringer.
func (c ContractHash) String() string { return c.originPrefix + c.Hash.String() }

// MarshalText implements encoding.TextMarshaler.
func (c ContractHash) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ContractHash) UnmarshalText(b []byte) (err error) {
	*c, err = ParseContractHash(string(b))
	return
}

// A ContractPackageHash is the 32-byte identifier of a contract package.
type ContractPackageHash struct {
	Hash

	originPrefix string
}

// NewContractPackageHash returns the ContractPackageHash wrapping h.
func NewContractPackageHash(h Hash) ContractPackageHash {
	return ContractPackageHash{Hash: h, originPrefix: ContractPackagePrefix}
}

// ParseContractPackageHash parses a contract package hash from
// "contract-package-<hex>", "package-<hex>", "hash-<hex>", or bare hex.
func ParseContractPackageHash(s string) (c ContractPackageHash, err error) {
	for _, p := range []string{ContractPackagePrefix, PackagePrefix, HashAddrPrefix} {
		if strings.HasPrefix(s, p) {
			c.originPrefix = p
			s = s[len(p):]
			break
		}
	}
	c.Hash, err = ParseHash(s)
	return
}

// PrefixedString returns the canonical "contract-package-<hex>" form.
func (c ContractPackageHash) PrefixedString() string { return ContractPackagePrefix + c.Hash.String() }

// String implements fmt.Stringer.
func (c ContractPackageHash) String() string { return c.originPrefix + c.Hash.String() }

// MarshalText implements encoding.TextMarshaler.
func (c ContractPackageHash) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *ContractPackageHash) UnmarshalText(b []byte) (err error) {
	*c, err = ParseContractPackageHash(string(b))
	return
}

// A TransferHash is the 32-byte identifier of a completed transfer.
type TransferHash struct {
	Hash

	originPrefix string
}

// NewTransferHash returns the TransferHash wrapping h.
func NewTransferHash(h Hash) TransferHash {
	return TransferHash{Hash: h, originPrefix: TransferPrefix}
}

// ParseTransferHash parses a transfer hash from "transfer-<hex>" or bare hex.
func ParseTransferHash(s string) (t TransferHash, err error) {
	if strings.HasPrefix(s, TransferPrefix) {
		t.originPrefix = TransferPrefix
		s = s[len(TransferPrefix):]
	}
	t.Hash, err = ParseHash(s)
	return
}

// PrefixedString returns the canonical "transfer-<hex>" form.
func (t TransferHash) PrefixedString() string { return TransferPrefix + t.Hash.String() }

// String implements fmt.Stringer.
func (t TransferHash) String() string { return t.originPrefix + t.Hash.String() }

// MarshalText implements encoding.TextMarshaler.
func (t TransferHash) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TransferHash) UnmarshalText(b []byte) (err error) {
	*t, err = ParseTransferHash(string(b))
	return
}
