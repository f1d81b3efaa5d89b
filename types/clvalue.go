package types

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
)

// A CLValue is the canonical unit exchanged with the chain: a type descriptor
// paired with the value's raw payload bytes. The payload always matches the
// type's layout; the decoded view is derived on demand via Parsed and never
// stored.
type CLValue struct {
	Type  CLType
	Bytes []byte
}

// NewBoolValue returns a Bool CLValue.
func NewBoolValue(b bool) CLValue {
	payload := []byte{0}
	if b {
		payload[0] = 1
	}
	return CLValue{Type: BoolType, Bytes: payload}
}

// NewI32Value returns an I32 CLValue.
func NewI32Value(i int32) CLValue {
	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, uint32(i))
	return CLValue{Type: I32Type, Bytes: payload}
}

// NewI64Value returns an I64 CLValue.
func NewI64Value(i int64) CLValue {
	payload := make([]byte, 8)
	binary.LittleEndian.PutUint64(payload, uint64(i))
	return CLValue{Type: I64Type, Bytes: payload}
}

// NewU8Value returns a U8 CLValue.
func NewU8Value(u uint8) CLValue {
	return CLValue{Type: U8Type, Bytes: []byte{u}}
}

// NewU32Value returns a U32 CLValue.
func NewU32Value(u uint32) CLValue {
	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, u)
	return CLValue{Type: U32Type, Bytes: payload}
}

// NewU64Value returns a U64 CLValue.
func NewU64Value(u uint64) CLValue {
	payload := make([]byte, 8)
	binary.LittleEndian.PutUint64(payload, u)
	return CLValue{Type: U64Type, Bytes: payload}
}

// NewU128Value returns a U128 CLValue.
func NewU128Value(i *big.Int) (CLValue, error) {
	payload, err := bigPayloadBytes(i, maxU128Bytes)
	if err != nil {
		return CLValue{}, err
	}
	return CLValue{Type: U128Type, Bytes: payload}, nil
}

// NewU256Value returns a U256 CLValue.
func NewU256Value(i *big.Int) (CLValue, error) {
	payload, err := bigPayloadBytes(i, maxU256Bytes)
	if err != nil {
		return CLValue{}, err
	}
	return CLValue{Type: U256Type, Bytes: payload}, nil
}

// NewU512Value returns a U512 CLValue.
func NewU512Value(i *big.Int) (CLValue, error) {
	payload, err := bigPayloadBytes(i, maxU512Bytes)
	if err != nil {
		return CLValue{}, err
	}
	return CLValue{Type: U512Type, Bytes: payload}, nil
}

// NewUnitValue returns the Unit CLValue, whose payload is empty.
func NewUnitValue() CLValue {
	return CLValue{Type: UnitType}
}

// NewStringValue returns a String CLValue.
func NewStringValue(s string) CLValue {
	payload := make([]byte, 4+len(s))
	binary.LittleEndian.PutUint32(payload, uint32(len(s)))
	copy(payload[4:], s)
	return CLValue{Type: StringType, Bytes: payload}
}

// NewKeyValue returns a Key CLValue.
func NewKeyValue(k Key) CLValue {
	return CLValue{Type: KeyType, Bytes: encodedBytes(k)}
}

// NewURefValue returns a URef CLValue.
func NewURefValue(u URef) CLValue {
	return CLValue{Type: URefType, Bytes: encodedBytes(u)}
}

// NewPublicKeyValue returns a PublicKey CLValue.
func NewPublicKeyValue(pk PublicKey) CLValue {
	return CLValue{Type: PublicKeyType, Bytes: encodedBytes(pk)}
}

// NewOptionValue returns an Option CLValue holding inner, or None if inner is
// nil.
func NewOptionValue(elem CLType, inner *CLValue) (CLValue, error) {
	t := OptionType{Inner: elem}
	if inner == nil {
		return CLValue{Type: t, Bytes: []byte{0}}, nil
	} else if !typeEqual(inner.Type, elem) {
		return CLValue{}, fmt.Errorf("option declares %v, inner value is %v", elem, inner.Type)
	}
	return CLValue{Type: t, Bytes: append([]byte{1}, inner.Bytes...)}, nil
}

// NewListValue returns a List CLValue over the given elements, all of which
// must have the declared element type.
func NewListValue(elem CLType, vals []CLValue) (CLValue, error) {
	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, uint32(len(vals)))
	for i := range vals {
		if !typeEqual(vals[i].Type, elem) {
			return CLValue{}, fmt.Errorf("list declares %v, element %v is %v", elem, i, vals[i].Type)
		}
		payload = append(payload, vals[i].Bytes...)
	}
	return CLValue{Type: ListType{Elem: elem}, Bytes: payload}, nil
}

// NewByteArrayValue returns a ByteArray CLValue whose declared width is
// len(b).
func NewByteArrayValue(b []byte) CLValue {
	return CLValue{
		Type:  ByteArrayType{Size: uint32(len(b))},
		Bytes: append([]byte(nil), b...),
	}
}

// NewResultValue returns a Result CLValue holding inner as its Ok or Err
// payload.
func NewResultValue(okType, errType CLType, ok bool, inner CLValue) (CLValue, error) {
	want, tag := errType, byte(0)
	if ok {
		want, tag = okType, 1
	}
	if !typeEqual(inner.Type, want) {
		return CLValue{}, fmt.Errorf("result declares %v, inner value is %v", want, inner.Type)
	}
	return CLValue{
		Type:  ResultType{Ok: okType, Err: errType},
		Bytes: append([]byte{tag}, inner.Bytes...),
	}, nil
}

// A MapEntry is one key/value pair of a Map CLValue.
type MapEntry struct {
	Key   CLValue
	Value CLValue
}

// NewMapValue returns a Map CLValue over the given entries, preserving entry
// order.
func NewMapValue(keyType, valType CLType, entries []MapEntry) (CLValue, error) {
	payload := make([]byte, 4)
	binary.LittleEndian.PutUint32(payload, uint32(len(entries)))
	for i := range entries {
		if !typeEqual(entries[i].Key.Type, keyType) {
			return CLValue{}, fmt.Errorf("map declares key %v, entry %v key is %v", keyType, i, entries[i].Key.Type)
		} else if !typeEqual(entries[i].Value.Type, valType) {
			return CLValue{}, fmt.Errorf("map declares value %v, entry %v value is %v", valType, i, entries[i].Value.Type)
		}
		payload = append(payload, entries[i].Key.Bytes...)
		payload = append(payload, entries[i].Value.Bytes...)
	}
	return CLValue{Type: MapType{Key: keyType, Value: valType}, Bytes: payload}, nil
}

// NewTuple1Value returns a Tuple1 CLValue.
func NewTuple1Value(a CLValue) CLValue {
	return CLValue{
		Type:  Tuple1Type{A: a.Type},
		Bytes: append([]byte(nil), a.Bytes...),
	}
}

// NewTuple2Value returns a Tuple2 CLValue.
func NewTuple2Value(a, b CLValue) CLValue {
	payload := append([]byte(nil), a.Bytes...)
	return CLValue{
		Type:  Tuple2Type{A: a.Type, B: b.Type},
		Bytes: append(payload, b.Bytes...),
	}
}

// NewTuple3Value returns a Tuple3 CLValue.
func NewTuple3Value(a, b, c CLValue) CLValue {
	payload := append([]byte(nil), a.Bytes...)
	payload = append(payload, b.Bytes...)
	return CLValue{
		Type:  Tuple3Type{A: a.Type, B: b.Type, C: c.Type},
		Bytes: append(payload, c.Bytes...),
	}
}

// NewAnyValue returns an Any CLValue wrapping opaque payload bytes.
func NewAnyValue(b []byte) CLValue {
	return CLValue{Type: AnyType, Bytes: append([]byte(nil), b...)}
}

// typeEqual reports whether two type descriptors describe the same shape,
// ignoring DynamicType wrappers.
func typeEqual(a, b CLType) bool {
	return resolveType(a) == resolveType(b)
}

// minEncodedLength returns the smallest possible payload width of a value of
// type t, used to bound count prefixes before allocating.
func minEncodedLength(t CLType) int {
	switch t := resolveType(t).(type) {
	case simpleType:
		switch t.tag {
		case tagUnit, tagAny:
			return 0
		case tagBool, tagU8, tagU128, tagU256, tagU512, tagKey, tagPublicKey:
			return 1
		case tagI32, tagU32, tagString:
			return 4
		case tagI64, tagU64:
			return 8
		case tagURef:
			return 33
		}
	case OptionType, ResultType:
		return 1
	case ListType, MapType:
		return 4
	case ByteArrayType:
		return int(t.Size)
	case Tuple1Type:
		return minEncodedLength(t.A)
	case Tuple2Type:
		return minEncodedLength(t.A) + minEncodedLength(t.B)
	case Tuple3Type:
		return minEncodedLength(t.A) + minEncodedLength(t.B) + minEncodedLength(t.C)
	}
	return 0
}

// checkCount validates a decoded element count against the bytes left in the
// stream. Zero-width element types (Unit, Any, ByteArray(0)) are bounded as
// if one byte wide, so a hostile count can never exceed the input length.
func checkCount(d *Decoder, n uint32, elem CLType) bool {
	min := minEncodedLength(elem)
	if min == 0 {
		min = 1
	}
	if int64(n)*int64(min) > int64(d.Remaining()) {
		d.SetErr(fmt.Errorf("count prefix (%v elems) exceeds %v bytes left in stream: %w", n, d.Remaining(), ErrIncompleteStructure))
		return false
	}
	return true
}

// DecodeValue reads a value of type t from the stream, consuming exactly the
// bytes the type's layout requires.
func DecodeValue(d *Decoder, t CLType) (v CLValue) {
	v.Type = t
	v.Bytes = readPayload(d, t)
	return
}

// ParseValue decodes a value of type t from the front of buf, returning the
// value and the unconsumed remainder of buf.
func ParseValue(buf []byte, t CLType) (CLValue, []byte, error) {
	d := NewBufDecoder(buf)
	v := DecodeValue(d, t)
	if err := d.Err(); err != nil {
		return CLValue{}, nil, err
	}
	return v, buf[len(buf)-d.Remaining():], nil
}

func readPayload(d *Decoder, t CLType) []byte {
	if d.Err() != nil {
		return nil
	}
	switch t := resolveType(t).(type) {
	case simpleType:
		return readSimplePayload(d, t.tag)
	case OptionType:
		switch tag := d.ReadUint8(); {
		case d.Err() != nil:
			return nil
		case tag == 0:
			return []byte{0}
		case tag == 1:
			return append([]byte{1}, readPayload(d, t.Inner)...)
		default:
			d.SetErr(fmt.Errorf("option tag %v: %w", tag, ErrUnknownTag))
			return nil
		}
	case ListType:
		n := d.ReadUint32()
		if !checkCount(d, n, t.Elem) {
			return nil
		}
		payload := make([]byte, 4)
		binary.LittleEndian.PutUint32(payload, n)
		for i := uint32(0); i < n && d.Err() == nil; i++ {
			payload = append(payload, readPayload(d, t.Elem)...)
		}
		return payload
	case ByteArrayType:
		if int64(t.Size) > int64(d.Remaining()) {
			d.SetErr(fmt.Errorf("byte array declares %v bytes, %v left in stream: %w", t.Size, d.Remaining(), ErrIncompleteStructure))
			return nil
		}
		payload := make([]byte, t.Size)
		d.Read(payload)
		return payload
	case ResultType:
		switch tag := d.ReadUint8(); {
		case d.Err() != nil:
			return nil
		case tag == 1:
			return append([]byte{1}, readPayload(d, t.Ok)...)
		case tag == 0:
			return append([]byte{0}, readPayload(d, t.Err)...)
		default:
			d.SetErr(fmt.Errorf("result tag %v: %w", tag, ErrUnknownTag))
			return nil
		}
	case MapType:
		n := d.ReadUint32()
		if !checkCount(d, n, t.Key) {
			return nil
		}
		payload := make([]byte, 4)
		binary.LittleEndian.PutUint32(payload, n)
		for i := uint32(0); i < n && d.Err() == nil; i++ {
			payload = append(payload, readPayload(d, t.Key)...)
			payload = append(payload, readPayload(d, t.Value)...)
		}
		return payload
	case Tuple1Type:
		return readPayload(d, t.A)
	case Tuple2Type:
		return append(readPayload(d, t.A), readPayload(d, t.B)...)
	case Tuple3Type:
		payload := append(readPayload(d, t.A), readPayload(d, t.B)...)
		return append(payload, readPayload(d, t.C)...)
	default:
		d.SetErr(fmt.Errorf("cl type %T: %w", t, ErrUnknownTag))
		return nil
	}
}

func readSimplePayload(d *Decoder, tag uint8) []byte {
	switch tag {
	case tagBool:
		b := d.ReadUint8()
		if b > 1 {
			d.SetErr(fmt.Errorf("invalid bool value (%v): %w", b, ErrUnknownTag))
			return nil
		}
		return []byte{b}
	case tagU8:
		return []byte{d.ReadUint8()}
	case tagI32, tagU32:
		payload := make([]byte, 4)
		d.Read(payload)
		return payload
	case tagI64, tagU64:
		payload := make([]byte, 8)
		d.Read(payload)
		return payload
	case tagU128:
		return readBigPayload(d, maxU128Bytes)
	case tagU256:
		return readBigPayload(d, maxU256Bytes)
	case tagU512:
		return readBigPayload(d, maxU512Bytes)
	case tagUnit:
		return nil
	case tagString:
		s := d.ReadBytes()
		if d.Err() != nil {
			return nil
		}
		payload := make([]byte, 4+len(s))
		binary.LittleEndian.PutUint32(payload, uint32(len(s)))
		copy(payload[4:], s)
		return payload
	case tagKey:
		var k Key
		k.DecodeFrom(d)
		if d.Err() != nil {
			return nil
		}
		return encodedBytes(k)
	case tagURef:
		var u URef
		u.DecodeFrom(d)
		if d.Err() != nil {
			return nil
		}
		return encodedBytes(u)
	case tagPublicKey:
		var pk PublicKey
		pk.DecodeFrom(d)
		if d.Err() != nil {
			return nil
		}
		return encodedBytes(pk)
	case tagAny:
		return d.ReadRemaining()
	default:
		d.SetErr(fmt.Errorf("cl type tag %v: %w", tag, ErrUnknownTag))
		return nil
	}
}

// A Result is the parsed view of a Result CLValue.
type Result struct {
	Ok    bool
	Value any
}

// A MapPair is one parsed key/value pair of a Map CLValue.
type MapPair struct {
	Key   any
	Value any
}

// Parsed decodes the payload into its Go view: bool, int32, int64, uint8,
// uint32, uint64, *big.Int, string, Key, URef, PublicKey, []byte, or nested
// []any / []MapPair / Result values. Option None and Unit decode as nil.
func (v CLValue) Parsed() (any, error) {
	d := NewBufDecoder(v.Bytes)
	p := parsedValue(d, v.Type)
	if err := d.Err(); err != nil {
		return nil, err
	} else if d.Remaining() != 0 {
		return nil, fmt.Errorf("%v trailing bytes after %v value: %w", d.Remaining(), v.Type, ErrInvalidLength)
	}
	return p, nil
}

func parsedValue(d *Decoder, t CLType) any {
	if d.Err() != nil {
		return nil
	}
	switch t := resolveType(t).(type) {
	case simpleType:
		return parsedSimpleValue(d, t.tag)
	case OptionType:
		if !d.ReadBool() {
			return nil
		}
		return parsedValue(d, t.Inner)
	case ListType:
		n := d.ReadUint32()
		if !checkCount(d, n, t.Elem) {
			return nil
		}
		out := make([]any, 0, n)
		for i := uint32(0); i < n && d.Err() == nil; i++ {
			out = append(out, parsedValue(d, t.Elem))
		}
		return out
	case ByteArrayType:
		if int64(t.Size) > int64(d.Remaining()) {
			d.SetErr(fmt.Errorf("byte array declares %v bytes, %v left in stream: %w", t.Size, d.Remaining(), ErrIncompleteStructure))
			return nil
		}
		b := make([]byte, t.Size)
		d.Read(b)
		return b
	case ResultType:
		switch tag := d.ReadUint8(); {
		case d.Err() != nil:
			return nil
		case tag == 1:
			return Result{Ok: true, Value: parsedValue(d, t.Ok)}
		case tag == 0:
			return Result{Ok: false, Value: parsedValue(d, t.Err)}
		default:
			d.SetErr(fmt.Errorf("result tag %v: %w", tag, ErrUnknownTag))
			return nil
		}
	case MapType:
		n := d.ReadUint32()
		if !checkCount(d, n, t.Key) {
			return nil
		}
		out := make([]MapPair, 0, n)
		for i := uint32(0); i < n && d.Err() == nil; i++ {
			k := parsedValue(d, t.Key)
			out = append(out, MapPair{Key: k, Value: parsedValue(d, t.Value)})
		}
		return out
	case Tuple1Type:
		return []any{parsedValue(d, t.A)}
	case Tuple2Type:
		a := parsedValue(d, t.A)
		return []any{a, parsedValue(d, t.B)}
	case Tuple3Type:
		a := parsedValue(d, t.A)
		b := parsedValue(d, t.B)
		return []any{a, b, parsedValue(d, t.C)}
	default:
		d.SetErr(fmt.Errorf("cl type %T: %w", t, ErrUnknownTag))
		return nil
	}
}

func parsedSimpleValue(d *Decoder, tag uint8) any {
	switch tag {
	case tagBool:
		return d.ReadBool()
	case tagI32:
		return int32(d.ReadUint32())
	case tagI64:
		return int64(d.ReadUint64())
	case tagU8:
		return d.ReadUint8()
	case tagU32:
		return d.ReadUint32()
	case tagU64:
		return d.ReadUint64()
	case tagU128:
		return parsedBig(d, maxU128Bytes)
	case tagU256:
		return parsedBig(d, maxU256Bytes)
	case tagU512:
		return parsedBig(d, maxU512Bytes)
	case tagUnit:
		return nil
	case tagString:
		return d.ReadString()
	case tagKey:
		var k Key
		k.DecodeFrom(d)
		return k
	case tagURef:
		var u URef
		u.DecodeFrom(d)
		return u
	case tagPublicKey:
		var pk PublicKey
		pk.DecodeFrom(d)
		return pk
	case tagAny:
		return d.ReadRemaining()
	default:
		d.SetErr(fmt.Errorf("cl type tag %v: %w", tag, ErrUnknownTag))
		return nil
	}
}

func parsedBig(d *Decoder, maxBytes int) *big.Int {
	buf := readBigPayload(d, maxBytes)
	if d.Err() != nil {
		return nil
	}
	return bigFromPayload(buf)
}

// String implements fmt.Stringer.
func (v CLValue) String() string {
	return fmt.Sprintf("%v(%x)", v.Type, v.Bytes)
}

// EncodeTo implements types.EncoderTo. Only the raw payload is written; use
// EncodeWithTypeTo for the self-describing form.
func (v CLValue) EncodeTo(e *Encoder) { e.Write(v.Bytes) }

// EncodeWithTypeTo writes the self-describing form: the length-prefixed
// payload followed by the type descriptor.
func (v CLValue) EncodeWithTypeTo(e *Encoder) {
	e.WriteBytes(v.Bytes)
	v.Type.EncodeTo(e)
}

// DecodeValueWithType reads the self-describing form written by
// EncodeWithTypeTo, validating the payload against the declared type.
func DecodeValueWithType(d *Decoder) CLValue {
	payload := d.ReadBytes()
	t := DecodeCLType(d)
	if d.Err() != nil {
		return CLValue{}
	}
	v, rest, err := ParseValue(payload, t)
	if err != nil {
		d.SetErr(err)
		return CLValue{}
	} else if len(rest) != 0 {
		d.SetErr(fmt.Errorf("%v trailing bytes after %v value: %w", len(rest), t, ErrInvalidLength))
		return CLValue{}
	}
	return v
}

// MarshalJSON implements json.Marshaler.
func (v CLValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Bytes  string `json:"bytes"`
		CLType CLType `json:"cl_type"`
	}{hex.EncodeToString(v.Bytes), v.Type})
}

// UnmarshalJSON implements json.Unmarshaler. It accepts the legacy "clType"
// field name emitted by older node versions and ignores any derived "parsed"
// field; the payload is validated against the declared type.
func (v *CLValue) UnmarshalJSON(b []byte) error {
	var p struct {
		Bytes      string          `json:"bytes"`
		CLType     json.RawMessage `json:"cl_type"`
		LegacyType json.RawMessage `json:"clType"`
	}
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	raw := p.CLType
	if raw == nil {
		raw = p.LegacyType
	}
	if raw == nil {
		return fmt.Errorf("cl value JSON is missing cl_type: %w", ErrIncompleteStructure)
	}
	t, err := ParseCLTypeJSON(raw)
	if err != nil {
		return err
	}
	payload, err := hex.DecodeString(p.Bytes)
	if err != nil {
		return fmt.Errorf("decoding cl value hex failed: %w", err)
	}
	parsed, rest, err := ParseValue(payload, t)
	if err != nil {
		return err
	} else if len(rest) != 0 {
		return fmt.Errorf("%v trailing bytes after %v value: %w", len(rest), t, ErrInvalidLength)
	}
	*v = parsed
	return nil
}
