package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// BidAddrPrefix is the textual prefix of an auction bid address.
const BidAddrPrefix = "bid-addr-"

// BidAddr variant tags, as they appear on the wire and as the leading hex
// byte of the textual form.
const (
	BidAddrUnified uint8 = iota
	BidAddrValidator
	BidAddrDelegatedAccount
	BidAddrDelegatedPurse
	BidAddrCredit
	BidAddrReservedDelegationAccount
	BidAddrReservedDelegationPurse
	BidAddrUnbondAccount
	BidAddrUnbondPurse
)

// A BidAddr addresses a record in the auction subsystem. The tag selects the
// field layout; consumers inspect which fields are populated to decide what
// kind of bid record the address names, so each variant populates a fixed set
// of fields and leaves the rest nil.
type BidAddr struct {
	Tag uint8

	// Unified is set for Unified bids only.
	Unified *Hash
	// Validator is set for every variant except Unified.
	Validator *Hash
	// Delegator is set for the account-delegated variants
	// (DelegatedAccount, ReservedDelegationAccount, UnbondAccount).
	Delegator *Hash
	// DelegatorPurse is set for the purse-delegated variants
	// (DelegatedPurse, ReservedDelegationPurse, UnbondPurse).
	DelegatorPurse *Hash
	// EraID is set for Credit only.
	EraID *uint64
}

// NewUnifiedBidAddr returns the BidAddr of a pre-2.0 unified bid record.
func NewUnifiedBidAddr(h Hash) BidAddr {
	return BidAddr{Tag: BidAddrUnified, Unified: &h}
}

// NewValidatorBidAddr returns the BidAddr of a validator's own bid.
func NewValidatorBidAddr(validator Hash) BidAddr {
	return BidAddr{Tag: BidAddrValidator, Validator: &validator}
}

// NewDelegatorBidAddr returns the BidAddr of a delegation from an account.
func NewDelegatorBidAddr(validator, delegator Hash) BidAddr {
	return BidAddr{Tag: BidAddrDelegatedAccount, Validator: &validator, Delegator: &delegator}
}

// NewDelegatorPurseBidAddr returns the BidAddr of a delegation from a purse.
func NewDelegatorPurseBidAddr(validator, purse Hash) BidAddr {
	return BidAddr{Tag: BidAddrDelegatedPurse, Validator: &validator, DelegatorPurse: &purse}
}

// NewCreditBidAddr returns the BidAddr of a validator's credit record for an
// era.
func NewCreditBidAddr(validator Hash, era uint64) BidAddr {
	return BidAddr{Tag: BidAddrCredit, Validator: &validator, EraID: &era}
}

// NewReservedBidAddr returns the BidAddr of a reserved delegation slot. The
// purse form is selected by passing fromPurse.
func NewReservedBidAddr(validator, delegator Hash, fromPurse bool) BidAddr {
	if fromPurse {
		return BidAddr{Tag: BidAddrReservedDelegationPurse, Validator: &validator, DelegatorPurse: &delegator}
	}
	return BidAddr{Tag: BidAddrReservedDelegationAccount, Validator: &validator, Delegator: &delegator}
}

// NewUnbondBidAddr returns the BidAddr of an unbonding record. The purse form
// is selected by passing fromPurse.
func NewUnbondBidAddr(validator, delegator Hash, fromPurse bool) BidAddr {
	if fromPurse {
		return BidAddr{Tag: BidAddrUnbondPurse, Validator: &validator, DelegatorPurse: &delegator}
	}
	return BidAddr{Tag: BidAddrUnbondAccount, Validator: &validator, Delegator: &delegator}
}

// ParseBidAddr parses a bid address from its "bid-addr-<hex>" form, where the
// hex encodes the tag byte followed by the variant's payload.
func ParseBidAddr(s string) (BidAddr, error) {
	rest, ok := strings.CutPrefix(s, BidAddrPrefix)
	if !ok {
		return BidAddr{}, fmt.Errorf("%q: %w", s, ErrUnknownPrefix)
	}
	buf, err := hex.DecodeString(rest)
	if err != nil {
		return BidAddr{}, fmt.Errorf("decoding bid address hex failed: %w", err)
	}
	b, rem, err := ParseBidAddrBytes(buf)
	if err != nil {
		return BidAddr{}, err
	} else if len(rem) != 0 {
		return BidAddr{}, fmt.Errorf("%v trailing bytes after bid address: %w", len(rem), ErrInvalidLength)
	}
	return b, nil
}

// ParseBidAddrBytes decodes a bid address from the front of buf, returning
// the address and the unconsumed remainder of buf.
func ParseBidAddrBytes(buf []byte) (BidAddr, []byte, error) {
	d := NewBufDecoder(buf)
	var b BidAddr
	b.DecodeFrom(d)
	if err := d.Err(); err != nil {
		return BidAddr{}, nil, err
	}
	return b, buf[len(buf)-d.Remaining():], nil
}

// PrefixedString returns the "bid-addr-<hex>" form.
func (b BidAddr) PrefixedString() string {
	return BidAddrPrefix + hex.EncodeToString(encodedBytes(b))
}

// String implements fmt.Stringer.
func (b BidAddr) String() string { return b.PrefixedString() }

// MarshalText implements encoding.TextMarshaler.
func (b BidAddr) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BidAddr) UnmarshalText(text []byte) (err error) {
	*b, err = ParseBidAddr(string(text))
	return
}

func derefHash(p *Hash) (h Hash) {
	if p != nil {
		h = *p
	}
	return
}

// EncodeTo implements types.EncoderTo.
func (b BidAddr) EncodeTo(e *Encoder) {
	e.WriteUint8(b.Tag)
	switch b.Tag {
	case BidAddrUnified:
		h := derefHash(b.Unified)
		e.Write(h[:])
	case BidAddrValidator:
		h := derefHash(b.Validator)
		e.Write(h[:])
	case BidAddrDelegatedAccount, BidAddrReservedDelegationAccount, BidAddrUnbondAccount:
		v, d := derefHash(b.Validator), derefHash(b.Delegator)
		e.Write(v[:])
		e.Write(d[:])
	case BidAddrDelegatedPurse, BidAddrReservedDelegationPurse, BidAddrUnbondPurse:
		v, p := derefHash(b.Validator), derefHash(b.DelegatorPurse)
		e.Write(v[:])
		e.Write(p[:])
	case BidAddrCredit:
		v := derefHash(b.Validator)
		e.Write(v[:])
		var era uint64
		if b.EraID != nil {
			era = *b.EraID
		}
		e.WriteUint64(era)
	}
}

// DecodeFrom implements types.DecoderFrom.
func (b *BidAddr) DecodeFrom(d *Decoder) {
	*b = BidAddr{Tag: d.ReadUint8()}
	switch b.Tag {
	case BidAddrUnified:
		var h Hash
		d.Read(h[:])
		b.Unified = &h
	case BidAddrValidator:
		var h Hash
		d.Read(h[:])
		b.Validator = &h
	case BidAddrDelegatedAccount, BidAddrReservedDelegationAccount, BidAddrUnbondAccount:
		var v, del Hash
		d.Read(v[:])
		d.Read(del[:])
		b.Validator, b.Delegator = &v, &del
	case BidAddrDelegatedPurse, BidAddrReservedDelegationPurse, BidAddrUnbondPurse:
		var v, p Hash
		d.Read(v[:])
		d.Read(p[:])
		b.Validator, b.DelegatorPurse = &v, &p
	case BidAddrCredit:
		var v Hash
		d.Read(v[:])
		era := d.ReadUint64()
		b.Validator, b.EraID = &v, &era
	default:
		d.SetErr(fmt.Errorf("bid address tag %v: %w", b.Tag, ErrUnknownTag))
	}
	if d.Err() != nil {
		*b = BidAddr{}
	}
}
