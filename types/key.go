// Package types defines the value and address representations of the Casper
// chain, along with their binary, textual, and JSON encodings.
package types

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Key variant discriminants, as they appear on the wire.
const (
	keyTagAccount uint8 = iota
	keyTagHash
	keyTagURef
	keyTagTransfer
	keyTagDeployInfo
	keyTagEraInfo
	keyTagBalance
	keyTagBid
	keyTagWithdraw
	keyTagDictionary
	keyTagSystemEntityRegistry
	keyTagEraSummary
	keyTagUnbond
	keyTagChainspecRegistry
	keyTagChecksumRegistry
	keyTagBidAddr
	keyTagPackage
	keyTagAddressableEntity
	keyTagByteCode
	keyTagMessage
	keyTagNamedKey
	keyTagBlockGlobal
	keyTagBalanceHold
	keyTagEntryPoint
)

// Textual prefixes of the hash-shaped and numeric Key variants. Prefixes of
// the structured variants live next to their codecs.
const (
	DeployInfoPrefix           = "deploy-"
	EraInfoPrefix              = "era-"
	BalancePrefix              = "balance-"
	BidPrefix                  = "bid-"
	WithdrawPrefix             = "withdraw-"
	DictionaryPrefix           = "dictionary-"
	SystemEntityRegistryPrefix = "system-entity-registry-"
	EraSummaryPrefix           = "era-summary-"
	UnbondPrefix               = "unbond-"
	ChainspecRegistryPrefix    = "chainspec-registry-"
	ChecksumRegistryPrefix     = "checksum-registry-"

	// Pre-2.0 networks emitted the registry key under its old name.
	systemContractRegistryPrefix = "system-contract-registry-"
)

// A KeyValue is one variant of the Key union. The set of implementations is
// closed; a type switch over them is exhaustive.
type KeyValue interface {
	isKeyValue()
	PrefixedString() string
	EncodeTo(e *Encoder)
}

func (Hash) isKeyValue()            {}
func (AccountHash) isKeyValue()     {}
func (URef) isKeyValue()            {}
func (TransferHash) isKeyValue()    {}
func (EraID) isKeyValue()           {}
func (BidAddr) isKeyValue()         {}
func (EntityAddr) isKeyValue()      {}
func (ByteCodeAddr) isKeyValue()    {}
func (MessageAddr) isKeyValue()     {}
func (NamedKeyAddr) isKeyValue()    {}
func (BlockGlobalAddr) isKeyValue() {}
func (BalanceHoldAddr) isKeyValue() {}
func (EntryPointAddr) isKeyValue()  {}

// PrefixedString returns the "hash-<hex>" form.
func (h Hash) PrefixedString() string { return HashAddrPrefix + h.String() }

// An EraID is a consensus era number, stored under the "era-<decimal>" key.
type EraID uint32

// PrefixedString returns the "era-<decimal>" form.
func (id EraID) PrefixedString() string { return EraInfoPrefix + strconv.FormatUint(uint64(id), 10) }

// String implements fmt.Stringer.
func (id EraID) String() string { return id.PrefixedString() }

// EncodeTo implements types.EncoderTo.
func (id EraID) EncodeTo(e *Encoder) { e.WriteUint32(uint32(id)) }

// DecodeFrom implements types.DecoderFrom.
func (id *EraID) DecodeFrom(d *Decoder) { *id = EraID(d.ReadUint32()) }

// ParseEraID parses an era number from "era-<decimal>" or a bare decimal.
func ParseEraID(s string) (EraID, error) {
	s, _ = strings.CutPrefix(s, EraInfoPrefix)
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("era id %q: %w", s, ErrMalformedNumeric)
	}
	return EraID(n), nil
}

// The hash-shaped Key variants: each is a 32-byte address distinguished only
// by its discriminant and textual prefix.
type (
	// A DeployInfoHash addresses the execution record of a deploy.
	DeployInfoHash Hash
	// A BalanceAddr addresses the balance of a purse.
	BalanceAddr Hash
	// A BidHash addresses a legacy auction bid.
	BidHash Hash
	// A WithdrawHash addresses a legacy unbonding withdraw record.
	WithdrawHash Hash
	// A DictionaryHash addresses an entry in a contract dictionary.
	DictionaryHash Hash
	// A SystemEntityRegistryHash addresses the registry of system contracts.
	SystemEntityRegistryHash Hash
	// An EraSummaryHash addresses the summary record of the current era.
	EraSummaryHash Hash
	// An UnbondHash addresses an unbonding record.
	UnbondHash Hash
	// A ChainspecRegistryHash addresses the registry of chainspec hashes.
	ChainspecRegistryHash Hash
	// A ChecksumRegistryHash addresses the registry of block checksums.
	ChecksumRegistryHash Hash
	// A PackageHash addresses a package record.
	PackageHash Hash
)

func (DeployInfoHash) isKeyValue()           {}
func (BalanceAddr) isKeyValue()              {}
func (BidHash) isKeyValue()                  {}
func (WithdrawHash) isKeyValue()             {}
func (DictionaryHash) isKeyValue()           {}
func (SystemEntityRegistryHash) isKeyValue() {}
func (EraSummaryHash) isKeyValue()           {}
func (UnbondHash) isKeyValue()               {}
func (ChainspecRegistryHash) isKeyValue()    {}
func (ChecksumRegistryHash) isKeyValue()     {}
func (PackageHash) isKeyValue()              {}

// PrefixedString returns the "deploy-<hex>" form.
func (h DeployInfoHash) PrefixedString() string { return DeployInfoPrefix + Hash(h).String() }

// PrefixedString returns the "balance-<hex>" form.
func (h BalanceAddr) PrefixedString() string { return BalancePrefix + Hash(h).String() }

// PrefixedString returns the "bid-<hex>" form.
func (h BidHash) PrefixedString() string { return BidPrefix + Hash(h).String() }

// PrefixedString returns the "withdraw-<hex>" form.
func (h WithdrawHash) PrefixedString() string { return WithdrawPrefix + Hash(h).String() }

// PrefixedString returns the "dictionary-<hex>" form.
func (h DictionaryHash) PrefixedString() string { return DictionaryPrefix + Hash(h).String() }

// PrefixedString returns the "system-entity-registry-<hex>" form.
func (h SystemEntityRegistryHash) PrefixedString() string {
	return SystemEntityRegistryPrefix + Hash(h).String()
}

// PrefixedString returns the "era-summary-<hex>" form.
func (h EraSummaryHash) PrefixedString() string { return EraSummaryPrefix + Hash(h).String() }

// PrefixedString returns the "unbond-<hex>" form.
func (h UnbondHash) PrefixedString() string { return UnbondPrefix + Hash(h).String() }

// PrefixedString returns the "chainspec-registry-<hex>" form.
func (h ChainspecRegistryHash) PrefixedString() string {
	return ChainspecRegistryPrefix + Hash(h).String()
}

// PrefixedString returns the "checksum-registry-<hex>" form.
func (h ChecksumRegistryHash) PrefixedString() string {
	return ChecksumRegistryPrefix + Hash(h).String()
}

// PrefixedString returns the "package-<hex>" form.
func (h PackageHash) PrefixedString() string { return PackagePrefix + Hash(h).String() }

func (h DeployInfoHash) String() string           { return h.PrefixedString() }
func (h BalanceAddr) String() string              { return h.PrefixedString() }
func (h BidHash) String() string                  { return h.PrefixedString() }
func (h WithdrawHash) String() string             { return h.PrefixedString() }
func (h DictionaryHash) String() string           { return h.PrefixedString() }
func (h SystemEntityRegistryHash) String() string { return h.PrefixedString() }
func (h EraSummaryHash) String() string           { return h.PrefixedString() }
func (h UnbondHash) String() string               { return h.PrefixedString() }
func (h ChainspecRegistryHash) String() string    { return h.PrefixedString() }
func (h ChecksumRegistryHash) String() string     { return h.PrefixedString() }
func (h PackageHash) String() string              { return h.PrefixedString() }

func (h DeployInfoHash) EncodeTo(e *Encoder)           { e.Write(h[:]) }
func (h BalanceAddr) EncodeTo(e *Encoder)              { e.Write(h[:]) }
func (h BidHash) EncodeTo(e *Encoder)                  { e.Write(h[:]) }
func (h WithdrawHash) EncodeTo(e *Encoder)             { e.Write(h[:]) }
func (h DictionaryHash) EncodeTo(e *Encoder)           { e.Write(h[:]) }
func (h SystemEntityRegistryHash) EncodeTo(e *Encoder) { e.Write(h[:]) }
func (h EraSummaryHash) EncodeTo(e *Encoder)           { e.Write(h[:]) }
func (h UnbondHash) EncodeTo(e *Encoder)               { e.Write(h[:]) }
func (h ChainspecRegistryHash) EncodeTo(e *Encoder)    { e.Write(h[:]) }
func (h ChecksumRegistryHash) EncodeTo(e *Encoder)     { e.Write(h[:]) }
func (h PackageHash) EncodeTo(e *Encoder)              { e.Write(h[:]) }

func (h *DeployInfoHash) DecodeFrom(d *Decoder)           { d.Read(h[:]) }
func (h *BalanceAddr) DecodeFrom(d *Decoder)              { d.Read(h[:]) }
func (h *BidHash) DecodeFrom(d *Decoder)                  { d.Read(h[:]) }
func (h *WithdrawHash) DecodeFrom(d *Decoder)             { d.Read(h[:]) }
func (h *DictionaryHash) DecodeFrom(d *Decoder)           { d.Read(h[:]) }
func (h *SystemEntityRegistryHash) DecodeFrom(d *Decoder) { d.Read(h[:]) }
func (h *EraSummaryHash) DecodeFrom(d *Decoder)           { d.Read(h[:]) }
func (h *UnbondHash) DecodeFrom(d *Decoder)               { d.Read(h[:]) }
func (h *ChainspecRegistryHash) DecodeFrom(d *Decoder)    { d.Read(h[:]) }
func (h *ChecksumRegistryHash) DecodeFrom(d *Decoder)     { d.Read(h[:]) }
func (h *PackageHash) DecodeFrom(d *Decoder)              { d.Read(h[:]) }

// A Key addresses a stored value on-chain. Exactly one variant is populated;
// the discriminant follows from the variant's dynamic type.
type Key struct {
	Value KeyValue
}

// Tag returns the Key's wire discriminant.
func (k Key) Tag() uint8 {
	switch k.Value.(type) {
	case AccountHash:
		return keyTagAccount
	case Hash:
		return keyTagHash
	case URef:
		return keyTagURef
	case TransferHash:
		return keyTagTransfer
	case DeployInfoHash:
		return keyTagDeployInfo
	case EraID:
		return keyTagEraInfo
	case BalanceAddr:
		return keyTagBalance
	case BidHash:
		return keyTagBid
	case WithdrawHash:
		return keyTagWithdraw
	case DictionaryHash:
		return keyTagDictionary
	case SystemEntityRegistryHash:
		return keyTagSystemEntityRegistry
	case EraSummaryHash:
		return keyTagEraSummary
	case UnbondHash:
		return keyTagUnbond
	case ChainspecRegistryHash:
		return keyTagChainspecRegistry
	case ChecksumRegistryHash:
		return keyTagChecksumRegistry
	case BidAddr:
		return keyTagBidAddr
	case PackageHash:
		return keyTagPackage
	case EntityAddr:
		return keyTagAddressableEntity
	case ByteCodeAddr:
		return keyTagByteCode
	case MessageAddr:
		return keyTagMessage
	case NamedKeyAddr:
		return keyTagNamedKey
	case BlockGlobalAddr:
		return keyTagBlockGlobal
	case BalanceHoldAddr:
		return keyTagBalanceHold
	case EntryPointAddr:
		return keyTagEntryPoint
	default:
		panic(fmt.Sprintf("unhandled key variant %T", k.Value))
	}
}

// String implements fmt.Stringer, returning the variant's prefixed form.
func (k Key) String() string { return k.Value.PrefixedString() }

// PrefixedString returns the variant's prefixed form.
func (k Key) PrefixedString() string { return k.Value.PrefixedString() }

// Bytes returns the Key's binary encoding.
func (k Key) Bytes() []byte { return encodedBytes(k) }

// MarshalText implements encoding.TextMarshaler.
func (k Key) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Key) UnmarshalText(b []byte) (err error) {
	*k, err = ParseKey(string(b))
	return
}

// EncodeTo implements types.EncoderTo.
func (k Key) EncodeTo(e *Encoder) {
	e.WriteUint8(k.Tag())
	k.Value.EncodeTo(e)
}

// DecodeFrom implements types.DecoderFrom.
func (k *Key) DecodeFrom(d *Decoder) {
	switch tag := d.ReadUint8(); tag {
	case keyTagAccount:
		var h Hash
		h.DecodeFrom(d)
		k.Value = NewAccountHash(h)
	case keyTagHash:
		var h Hash
		h.DecodeFrom(d)
		k.Value = h
	case keyTagURef:
		var u URef
		u.DecodeFrom(d)
		k.Value = u
	case keyTagTransfer:
		var h Hash
		h.DecodeFrom(d)
		k.Value = NewTransferHash(h)
	case keyTagDeployInfo:
		var h DeployInfoHash
		h.DecodeFrom(d)
		k.Value = h
	case keyTagEraInfo:
		var id EraID
		id.DecodeFrom(d)
		k.Value = id
	case keyTagBalance:
		var h BalanceAddr
		h.DecodeFrom(d)
		k.Value = h
	case keyTagBid:
		var h BidHash
		h.DecodeFrom(d)
		k.Value = h
	case keyTagWithdraw:
		var h WithdrawHash
		h.DecodeFrom(d)
		k.Value = h
	case keyTagDictionary:
		var h DictionaryHash
		h.DecodeFrom(d)
		k.Value = h
	case keyTagSystemEntityRegistry:
		var h SystemEntityRegistryHash
		h.DecodeFrom(d)
		k.Value = h
	case keyTagEraSummary:
		var h EraSummaryHash
		h.DecodeFrom(d)
		k.Value = h
	case keyTagUnbond:
		var h UnbondHash
		h.DecodeFrom(d)
		k.Value = h
	case keyTagChainspecRegistry:
		var h ChainspecRegistryHash
		h.DecodeFrom(d)
		k.Value = h
	case keyTagChecksumRegistry:
		var h ChecksumRegistryHash
		h.DecodeFrom(d)
		k.Value = h
	case keyTagBidAddr:
		var b BidAddr
		b.DecodeFrom(d)
		k.Value = b
	case keyTagPackage:
		var h PackageHash
		h.DecodeFrom(d)
		k.Value = h
	case keyTagAddressableEntity:
		var a EntityAddr
		a.DecodeFrom(d)
		k.Value = a
	case keyTagByteCode:
		var b ByteCodeAddr
		b.DecodeFrom(d)
		k.Value = b
	case keyTagMessage:
		var m MessageAddr
		m.DecodeFrom(d)
		k.Value = m
	case keyTagNamedKey:
		var n NamedKeyAddr
		n.DecodeFrom(d)
		k.Value = n
	case keyTagBlockGlobal:
		var b BlockGlobalAddr
		b.DecodeFrom(d)
		k.Value = b
	case keyTagBalanceHold:
		var b BalanceHoldAddr
		b.DecodeFrom(d)
		k.Value = b
	case keyTagEntryPoint:
		var ep EntryPointAddr
		ep.DecodeFrom(d)
		k.Value = ep
	default:
		d.SetErr(fmt.Errorf("key tag %v: %w", tag, ErrUnknownTag))
	}
}

// ParseKeyBytes decodes a Key from the front of buf, returning the Key and
// the unconsumed remainder of buf.
func ParseKeyBytes(buf []byte) (Key, []byte, error) {
	d := NewBufDecoder(buf)
	var k Key
	k.DecodeFrom(d)
	if err := d.Err(); err != nil {
		return Key{}, nil, err
	}
	return k, buf[len(buf)-d.Remaining():], nil
}

// keyPrefixParsers dispatches textual keys by their longest matching prefix.
// Sorted by descending prefix length at init, so "bid-addr-" wins over "bid-",
// "balance-hold-" over "balance-", and "era-summary-" over "era-".
var keyPrefixParsers = []struct {
	prefix string
	parse  func(s string) (KeyValue, error)
}{
	{AccountHashPrefix, func(s string) (KeyValue, error) { return ParseAccountHash(s) }},
	{HashAddrPrefix, func(s string) (KeyValue, error) { return ParseHash(s[len(HashAddrPrefix):]) }},
	{URefPrefix, func(s string) (KeyValue, error) { return ParseURef(s) }},
	{TransferPrefix, func(s string) (KeyValue, error) { return ParseTransferHash(s) }},
	{DeployInfoPrefix, hashAliasParser(DeployInfoPrefix, func(h Hash) KeyValue { return DeployInfoHash(h) })},
	{EraInfoPrefix, func(s string) (KeyValue, error) { return ParseEraID(s) }},
	{BalancePrefix, hashAliasParser(BalancePrefix, func(h Hash) KeyValue { return BalanceAddr(h) })},
	{BidPrefix, hashAliasParser(BidPrefix, func(h Hash) KeyValue { return BidHash(h) })},
	{WithdrawPrefix, hashAliasParser(WithdrawPrefix, func(h Hash) KeyValue { return WithdrawHash(h) })},
	{DictionaryPrefix, hashAliasParser(DictionaryPrefix, func(h Hash) KeyValue { return DictionaryHash(h) })},
	{SystemEntityRegistryPrefix, hashAliasParser(SystemEntityRegistryPrefix, func(h Hash) KeyValue { return SystemEntityRegistryHash(h) })},
	{systemContractRegistryPrefix, hashAliasParser(systemContractRegistryPrefix, func(h Hash) KeyValue { return SystemEntityRegistryHash(h) })},
	{EraSummaryPrefix, hashAliasParser(EraSummaryPrefix, func(h Hash) KeyValue { return EraSummaryHash(h) })},
	{UnbondPrefix, hashAliasParser(UnbondPrefix, func(h Hash) KeyValue { return UnbondHash(h) })},
	{ChainspecRegistryPrefix, hashAliasParser(ChainspecRegistryPrefix, func(h Hash) KeyValue { return ChainspecRegistryHash(h) })},
	{ChecksumRegistryPrefix, hashAliasParser(ChecksumRegistryPrefix, func(h Hash) KeyValue { return ChecksumRegistryHash(h) })},
	{BidAddrPrefix, func(s string) (KeyValue, error) { return ParseBidAddr(s) }},
	{PackagePrefix, hashAliasParser(PackagePrefix, func(h Hash) KeyValue { return PackageHash(h) })},
	{EntityAddrPrefix, func(s string) (KeyValue, error) { return ParseEntityAddr(s) }},
	{ByteCodePrefix, func(s string) (KeyValue, error) { return ParseByteCodeAddr(s) }},
	{MessageAddrPrefix, func(s string) (KeyValue, error) { return ParseMessageAddr(s) }},
	{NamedKeyPrefix, func(s string) (KeyValue, error) { return ParseNamedKeyAddr(s) }},
	{BlockGlobalPrefix, func(s string) (KeyValue, error) { return ParseBlockGlobalAddr(s) }},
	{BalanceHoldPrefix, func(s string) (KeyValue, error) { return ParseBalanceHoldAddr(s) }},
	{EntryPointPrefix, func(s string) (KeyValue, error) { return ParseEntryPointAddr(s) }},
}

func init() {
	sort.SliceStable(keyPrefixParsers, func(i, j int) bool {
		return len(keyPrefixParsers[i].prefix) > len(keyPrefixParsers[j].prefix)
	})
}

func hashAliasParser(prefix string, wrap func(Hash) KeyValue) func(string) (KeyValue, error) {
	return func(s string) (KeyValue, error) {
		h, err := ParseHash(s[len(prefix):])
		if err != nil {
			return nil, err
		}
		return wrap(h), nil
	}
}

// ParseKey parses a Key from any of its textual forms: a variant's prefixed
// string, a bare 64-char hex string (Hash variant), the legacy
// "Key::Variant(...)" wrapper syntax, or the legacy "00"+hex account
// shorthand.
func ParseKey(s string) (Key, error) {
	if rest, ok := strings.CutPrefix(s, "Key::"); ok {
		return parseLegacyKey(rest)
	}
	if len(s) == 66 && strings.HasPrefix(s, accountHashLegacyShorthand) {
		if _, err := hex.DecodeString(s); err == nil {
			a, err := ParseAccountHash(s)
			if err != nil {
				return Key{}, err
			}
			return Key{Value: a}, nil
		}
	}
	if len(s) == 64 {
		if h, err := ParseHash(s); err == nil {
			return Key{Value: h}, nil
		}
	}
	for _, p := range keyPrefixParsers {
		if strings.HasPrefix(s, p.prefix) {
			v, err := p.parse(s)
			if err != nil {
				return Key{}, err
			}
			return Key{Value: v}, nil
		}
	}
	return Key{}, fmt.Errorf("key %q: %w", s, ErrUnknownPrefix)
}

// parseLegacyKey handles the "Key::Variant(inner)" wrapper syntax emitted by
// older tooling. The inner text is the variant's own form, prefixed or bare.
func parseLegacyKey(s string) (Key, error) {
	name, rest, ok := strings.Cut(s, "(")
	if !ok || !strings.HasSuffix(rest, ")") {
		return Key{}, fmt.Errorf("legacy key %q is missing the variant parens: %w", s, ErrUnknownPrefix)
	}
	inner := rest[:len(rest)-1]
	switch name {
	case "Account":
		a, err := ParseAccountHash(inner)
		if err != nil {
			return Key{}, err
		}
		return Key{Value: a}, nil
	case "Hash":
		h, err := ParseHash(strings.TrimPrefix(inner, HashAddrPrefix))
		if err != nil {
			return Key{}, err
		}
		return Key{Value: h}, nil
	case "URef":
		u, err := ParseURef(inner)
		if err != nil {
			return Key{}, err
		}
		return Key{Value: u}, nil
	case "Transfer":
		t, err := ParseTransferHash(inner)
		if err != nil {
			return Key{}, err
		}
		return Key{Value: t}, nil
	case "DeployInfo":
		return legacyHashKey(inner, DeployInfoPrefix, func(h Hash) KeyValue { return DeployInfoHash(h) })
	case "Era", "EraInfo":
		id, err := ParseEraID(inner)
		if err != nil {
			return Key{}, err
		}
		return Key{Value: id}, nil
	case "Balance":
		return legacyHashKey(inner, BalancePrefix, func(h Hash) KeyValue { return BalanceAddr(h) })
	case "Bid":
		return legacyHashKey(inner, BidPrefix, func(h Hash) KeyValue { return BidHash(h) })
	case "Withdraw":
		return legacyHashKey(inner, WithdrawPrefix, func(h Hash) KeyValue { return WithdrawHash(h) })
	case "Dictionary":
		return legacyHashKey(inner, DictionaryPrefix, func(h Hash) KeyValue { return DictionaryHash(h) })
	case "SystemEntityRegistry", "SystemContractRegistry":
		return legacyHashKey(inner, SystemEntityRegistryPrefix, func(h Hash) KeyValue { return SystemEntityRegistryHash(h) })
	case "EraSummary":
		return legacyHashKey(inner, EraSummaryPrefix, func(h Hash) KeyValue { return EraSummaryHash(h) })
	case "Unbond":
		return legacyHashKey(inner, UnbondPrefix, func(h Hash) KeyValue { return UnbondHash(h) })
	case "ChainspecRegistry":
		return legacyHashKey(inner, ChainspecRegistryPrefix, func(h Hash) KeyValue { return ChainspecRegistryHash(h) })
	case "ChecksumRegistry":
		return legacyHashKey(inner, ChecksumRegistryPrefix, func(h Hash) KeyValue { return ChecksumRegistryHash(h) })
	case "Package":
		return legacyHashKey(inner, PackagePrefix, func(h Hash) KeyValue { return PackageHash(h) })
	case "BidAddr", "AddressableEntity", "ByteCode", "Message", "NamedKey",
		"BlockGlobal", "BalanceHold", "EntryPoint":
		return ParseKey(inner)
	default:
		return Key{}, fmt.Errorf("legacy key variant %q: %w", name, ErrUnknownPrefix)
	}
}

func legacyHashKey(inner, prefix string, wrap func(Hash) KeyValue) (Key, error) {
	h, err := ParseHash(strings.TrimPrefix(inner, prefix))
	if err != nil {
		return Key{}, err
	}
	return Key{Value: wrap(h)}, nil
}

// MarshalJSON implements json.Marshaler. Keys serialize as their prefixed
// string.
func (k Key) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(k.String())), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (k *Key) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}
	*k, err = ParseKey(s)
	return err
}
