package types

import (
	"fmt"
	"strings"
)

// EntityAddr kind tags.
const (
	EntityKindSystem uint8 = iota
	EntityKindAccount
	EntityKindSmartContract
)

// Textual prefixes of the EntityAddr kinds.
const (
	EntityAddrPrefix         = "entity-"
	entitySystemInfix        = "system-"
	entityAccountInfix       = "account-"
	entitySmartContractInfix = "contract-"
)

// An EntityAddr is the address of an addressable entity: a system contract, a
// migrated account, or a smart contract.
type EntityAddr struct {
	Kind uint8
	Hash Hash
}

// NewEntityAddr constructs an EntityAddr, validating the kind tag.
func NewEntityAddr(kind uint8, h Hash) (EntityAddr, error) {
	if kind > EntityKindSmartContract {
		return EntityAddr{}, fmt.Errorf("entity kind %v: %w", kind, ErrUnknownTag)
	}
	return EntityAddr{Kind: kind, Hash: h}, nil
}

// ParseEntityAddr parses an entity address from its "entity-system-<hex>",
// "entity-account-<hex>", or "entity-contract-<hex>" form.
func ParseEntityAddr(s string) (a EntityAddr, err error) {
	rest, ok := strings.CutPrefix(s, EntityAddrPrefix)
	if !ok {
		return EntityAddr{}, fmt.Errorf("%q: %w", s, ErrUnknownPrefix)
	}
	switch {
	case strings.HasPrefix(rest, entitySystemInfix):
		a.Kind, rest = EntityKindSystem, rest[len(entitySystemInfix):]
	case strings.HasPrefix(rest, entityAccountInfix):
		a.Kind, rest = EntityKindAccount, rest[len(entityAccountInfix):]
	case strings.HasPrefix(rest, entitySmartContractInfix):
		a.Kind, rest = EntityKindSmartContract, rest[len(entitySmartContractInfix):]
	default:
		return EntityAddr{}, fmt.Errorf("entity kind in %q: %w", s, ErrUnknownPrefix)
	}
	a.Hash, err = ParseHash(rest)
	return
}

// cutEntityAddr parses an entity address at the front of s, returning the
// remainder after the separating dash.
func cutEntityAddr(s string) (EntityAddr, string, error) {
	rest, ok := strings.CutPrefix(s, EntityAddrPrefix)
	if !ok {
		return EntityAddr{}, "", fmt.Errorf("%q: %w", s, ErrUnknownPrefix)
	}
	var infix string
	switch {
	case strings.HasPrefix(rest, entitySystemInfix):
		infix = entitySystemInfix
	case strings.HasPrefix(rest, entityAccountInfix):
		infix = entityAccountInfix
	case strings.HasPrefix(rest, entitySmartContractInfix):
		infix = entitySmartContractInfix
	default:
		return EntityAddr{}, "", fmt.Errorf("entity kind in %q: %w", s, ErrUnknownPrefix)
	}
	n := len(EntityAddrPrefix) + len(infix) + 64
	if len(s) < n+1 || s[n] != '-' {
		return EntityAddr{}, "", fmt.Errorf("entity address in %q is missing its suffix: %w", s, ErrInvalidLength)
	}
	a, err := ParseEntityAddr(s[:n])
	return a, s[n+1:], err
}

// PrefixedString returns the "entity-<kind>-<hex>" form.
func (a EntityAddr) PrefixedString() string {
	switch a.Kind {
	case EntityKindSystem:
		return EntityAddrPrefix + entitySystemInfix + a.Hash.String()
	case EntityKindAccount:
		return EntityAddrPrefix + entityAccountInfix + a.Hash.String()
	default:
		return EntityAddrPrefix + entitySmartContractInfix + a.Hash.String()
	}
}

// String implements fmt.Stringer.
func (a EntityAddr) String() string { return a.PrefixedString() }

// MarshalText implements encoding.TextMarshaler.
func (a EntityAddr) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *EntityAddr) UnmarshalText(b []byte) (err error) {
	*a, err = ParseEntityAddr(string(b))
	return
}

// EncodeTo implements types.EncoderTo.
func (a EntityAddr) EncodeTo(e *Encoder) {
	e.WriteUint8(a.Kind)
	e.Write(a.Hash[:])
}

// DecodeFrom implements types.DecoderFrom.
func (a *EntityAddr) DecodeFrom(d *Decoder) {
	a.Kind = d.ReadUint8()
	if a.Kind > EntityKindSmartContract {
		d.SetErr(fmt.Errorf("entity kind %v: %w", a.Kind, ErrUnknownTag))
		return
	}
	d.Read(a.Hash[:])
}
