package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Textual prefixes of message addresses.
const (
	MessageAddrPrefix     = "message-"
	messageTopicInfix     = "topic-"
	messageEntityHexChars = 64
)

// A MessageAddr addresses either a message topic (no index) or a single
// message under a topic (index present). Older networks keyed topics by a
// bare contract hash rather than an entity address; a MessageAddr parsed from
// that form reproduces it when re-serialized.
type MessageAddr struct {
	Entity EntityAddr
	Topic  Hash
	Index  *uint32

	legacyHashAddr bool
}

// NewMessageTopicAddr returns the address of a message topic.
func NewMessageTopicAddr(entity EntityAddr, topic Hash) MessageAddr {
	return MessageAddr{Entity: entity, Topic: topic}
}

// NewMessageAddr returns the address of the index-th message under a topic.
func NewMessageAddr(entity EntityAddr, topic Hash, index uint32) MessageAddr {
	return MessageAddr{Entity: entity, Topic: topic, Index: &index}
}

// cutMessageEntity parses the entity portion at the front of s, returning the
// remainder after the separating dash.
func cutMessageEntity(s string) (EntityAddr, string, bool, error) {
	if strings.HasPrefix(s, EntityAddrPrefix) {
		a, rest, err := cutEntityAddr(s)
		return a, rest, false, err
	}
	// legacy bare contract hash
	if len(s) < messageEntityHexChars+1 || s[messageEntityHexChars] != '-' {
		return EntityAddr{}, "", false, fmt.Errorf("message address %q is missing the topic: %w", s, ErrInvalidLength)
	}
	h, err := ParseHash(s[:messageEntityHexChars])
	if err != nil {
		return EntityAddr{}, "", false, err
	}
	return EntityAddr{Kind: EntityKindSmartContract, Hash: h}, s[messageEntityHexChars+1:], true, nil
}

// ParseMessageAddr parses a message address from its
// "message-topic-<entity>-<topic hex>" or "message-<entity>-<topic hex>-<index hex>"
// form.
func ParseMessageAddr(s string) (m MessageAddr, err error) {
	rest, ok := strings.CutPrefix(s, MessageAddrPrefix)
	if !ok {
		return MessageAddr{}, fmt.Errorf("%q: %w", s, ErrUnknownPrefix)
	}
	rest, topicForm := strings.CutPrefix(rest, messageTopicInfix)
	m.Entity, rest, m.legacyHashAddr, err = cutMessageEntity(rest)
	if err != nil {
		return MessageAddr{}, err
	}
	if topicForm {
		m.Topic, err = ParseHash(rest)
		return
	}
	topicPart, indexPart, ok := strings.Cut(rest, "-")
	if !ok {
		return MessageAddr{}, fmt.Errorf("message address %q is missing the index: %w", s, ErrInvalidLength)
	}
	if m.Topic, err = ParseHash(topicPart); err != nil {
		return MessageAddr{}, err
	}
	idx, err := strconv.ParseUint(indexPart, 16, 32)
	if err != nil {
		return MessageAddr{}, fmt.Errorf("message index %q: %w", indexPart, ErrMalformedNumeric)
	}
	index := uint32(idx)
	m.Index = &index
	return
}

// PrefixedString returns the textual form, reproducing the legacy bare-hash
// entity form when the address was parsed from one.
func (m MessageAddr) PrefixedString() string {
	entity := m.Entity.PrefixedString()
	if m.legacyHashAddr {
		entity = m.Entity.Hash.String()
	}
	if m.Index == nil {
		return MessageAddrPrefix + messageTopicInfix + entity + "-" + m.Topic.String()
	}
	return MessageAddrPrefix + entity + "-" + m.Topic.String() + "-" + strconv.FormatUint(uint64(*m.Index), 16)
}

// String implements fmt.Stringer.
func (m MessageAddr) String() string { return m.PrefixedString() }

// MarshalText implements encoding.TextMarshaler.
func (m MessageAddr) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MessageAddr) UnmarshalText(b []byte) (err error) {
	*m, err = ParseMessageAddr(string(b))
	return
}

// EncodeTo implements types.EncoderTo.
func (m MessageAddr) EncodeTo(e *Encoder) {
	m.Entity.EncodeTo(e)
	e.Write(m.Topic[:])
	e.WriteBool(m.Index != nil)
	if m.Index != nil {
		e.WriteUint32(*m.Index)
	}
}

// DecodeFrom implements types.DecoderFrom.
func (m *MessageAddr) DecodeFrom(d *Decoder) {
	*m = MessageAddr{}
	m.Entity.DecodeFrom(d)
	d.Read(m.Topic[:])
	if d.ReadBool() {
		index := d.ReadUint32()
		m.Index = &index
	}
	if d.Err() != nil {
		*m = MessageAddr{}
	}
}
