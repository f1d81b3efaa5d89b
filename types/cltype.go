package types

import (
	"encoding/json"
	"fmt"
)

// CLType binary discriminants, dictated by the chain's wire format.
const (
	tagBool uint8 = iota
	tagI32
	tagI64
	tagU8
	tagU32
	tagU64
	tagU128
	tagU256
	tagU512
	tagUnit
	tagString
	tagKey
	tagURef
	tagOption
	tagList
	tagByteArray
	tagResult
	tagMap
	tagTuple1
	tagTuple2
	tagTuple3
	tagAny
	tagPublicKey
)

// A CLType describes, recursively, the shape of a value without carrying
// data. The set of implementations is closed: a type id uniquely determines
// byte layout given the embedded element types (or the declared length, for
// ByteArrayType).
type CLType interface {
	isCLType()
	Tag() uint8
	String() string
	EncodeTo(e *Encoder)
	MarshalJSON() ([]byte, error)
}

type simpleType struct {
	tag  uint8
	name string
}

func (simpleType) isCLType() {}

// Tag returns the type's binary discriminant.
func (t simpleType) Tag() uint8 { return t.tag }

// String implements fmt.Stringer.
func (t simpleType) String() string { return t.name }

// EncodeTo implements types.EncoderTo.
func (t simpleType) EncodeTo(e *Encoder) { e.WriteUint8(t.tag) }

// MarshalJSON implements json.Marshaler.
func (t simpleType) MarshalJSON() ([]byte, error) { return json.Marshal(t.name) }

// The non-composite types.
var (
	BoolType      CLType = simpleType{tagBool, "Bool"}
	I32Type       CLType = simpleType{tagI32, "I32"}
	I64Type       CLType = simpleType{tagI64, "I64"}
	U8Type        CLType = simpleType{tagU8, "U8"}
	U32Type       CLType = simpleType{tagU32, "U32"}
	U64Type       CLType = simpleType{tagU64, "U64"}
	U128Type      CLType = simpleType{tagU128, "U128"}
	U256Type      CLType = simpleType{tagU256, "U256"}
	U512Type      CLType = simpleType{tagU512, "U512"}
	UnitType      CLType = simpleType{tagUnit, "Unit"}
	StringType    CLType = simpleType{tagString, "String"}
	KeyType       CLType = simpleType{tagKey, "Key"}
	URefType      CLType = simpleType{tagURef, "URef"}
	AnyType       CLType = simpleType{tagAny, "Any"}
	PublicKeyType CLType = simpleType{tagPublicKey, "PublicKey"}
)

// Read-only lookup tables, built once at package initialization. The tag and
// name mappings must stay bijective with the variant set above.
var (
	simpleTypeByTag  = map[uint8]simpleType{}
	simpleTypeByName = map[string]simpleType{}
)

func init() {
	for _, t := range []CLType{
		BoolType, I32Type, I64Type, U8Type, U32Type, U64Type,
		U128Type, U256Type, U512Type, UnitType, StringType,
		KeyType, URefType, AnyType, PublicKeyType,
	} {
		st := t.(simpleType)
		simpleTypeByTag[st.tag] = st
		simpleTypeByName[st.name] = st
	}
}

// An OptionType describes an optional value of the inner type.
type OptionType struct {
	Inner CLType
}

func (OptionType) isCLType() {}

// Tag returns the type's binary discriminant.
func (OptionType) Tag() uint8 { return tagOption }

// String implements fmt.Stringer.
func (t OptionType) String() string { return "Option<" + t.Inner.String() + ">" }

// EncodeTo implements types.EncoderTo.
func (t OptionType) EncodeTo(e *Encoder) {
	e.WriteUint8(tagOption)
	t.Inner.EncodeTo(e)
}

// MarshalJSON implements json.Marshaler.
func (t OptionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]CLType{"Option": t.Inner})
}

// A ListType describes a variable-length sequence of the element type.
type ListType struct {
	Elem CLType
}

func (ListType) isCLType() {}

// Tag returns the type's binary discriminant.
func (ListType) Tag() uint8 { return tagList }

// String implements fmt.Stringer.
func (t ListType) String() string { return "List<" + t.Elem.String() + ">" }

// EncodeTo implements types.EncoderTo.
func (t ListType) EncodeTo(e *Encoder) {
	e.WriteUint8(tagList)
	t.Elem.EncodeTo(e)
}

// MarshalJSON implements json.Marshaler.
func (t ListType) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]CLType{"List": t.Elem})
}

// A ByteArrayType describes a fixed-width byte array.
type ByteArrayType struct {
	Size uint32
}

func (ByteArrayType) isCLType() {}

// Tag returns the type's binary discriminant.
func (ByteArrayType) Tag() uint8 { return tagByteArray }

// String implements fmt.Stringer.
func (t ByteArrayType) String() string { return fmt.Sprintf("ByteArray<%d>", t.Size) }

// EncodeTo implements types.EncoderTo.
func (t ByteArrayType) EncodeTo(e *Encoder) {
	e.WriteUint8(tagByteArray)
	e.WriteUint32(t.Size)
}

// MarshalJSON implements json.Marshaler.
func (t ByteArrayType) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]uint32{"ByteArray": t.Size})
}

// A ResultType describes a value that is either an Ok or an Err payload.
type ResultType struct {
	Ok  CLType
	Err CLType
}

func (ResultType) isCLType() {}

// Tag returns the type's binary discriminant.
func (ResultType) Tag() uint8 { return tagResult }

// String implements fmt.Stringer.
func (t ResultType) String() string {
	return "Result<" + t.Ok.String() + "," + t.Err.String() + ">"
}

// EncodeTo implements types.EncoderTo.
func (t ResultType) EncodeTo(e *Encoder) {
	e.WriteUint8(tagResult)
	t.Ok.EncodeTo(e)
	t.Err.EncodeTo(e)
}

type resultTypeJSON struct {
	Ok  CLType `json:"ok"`
	Err CLType `json:"err"`
}

// MarshalJSON implements json.Marshaler.
func (t ResultType) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]resultTypeJSON{"Result": {t.Ok, t.Err}})
}

// A MapType describes a sequence of key/value pairs.
type MapType struct {
	Key   CLType
	Value CLType
}

func (MapType) isCLType() {}

// Tag returns the type's binary discriminant.
func (MapType) Tag() uint8 { return tagMap }

// String implements fmt.Stringer.
func (t MapType) String() string {
	return "Map<" + t.Key.String() + "," + t.Value.String() + ">"
}

// EncodeTo implements types.EncoderTo.
func (t MapType) EncodeTo(e *Encoder) {
	e.WriteUint8(tagMap)
	t.Key.EncodeTo(e)
	t.Value.EncodeTo(e)
}

type mapTypeJSON struct {
	Key   CLType `json:"key"`
	Value CLType `json:"value"`
}

// MarshalJSON implements json.Marshaler.
func (t MapType) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]mapTypeJSON{"Map": {t.Key, t.Value}})
}

// A Tuple1Type describes a single-element tuple.
type Tuple1Type struct {
	A CLType
}

func (Tuple1Type) isCLType() {}

// Tag returns the type's binary discriminant.
func (Tuple1Type) Tag() uint8 { return tagTuple1 }

// String implements fmt.Stringer.
func (t Tuple1Type) String() string { return "Tuple1<" + t.A.String() + ">" }

// EncodeTo implements types.EncoderTo.
func (t Tuple1Type) EncodeTo(e *Encoder) {
	e.WriteUint8(tagTuple1)
	t.A.EncodeTo(e)
}

// MarshalJSON implements json.Marshaler.
func (t Tuple1Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]CLType{"Tuple1": {t.A}})
}

// A Tuple2Type describes a two-element tuple.
type Tuple2Type struct {
	A CLType
	B CLType
}

func (Tuple2Type) isCLType() {}

// Tag returns the type's binary discriminant.
func (Tuple2Type) Tag() uint8 { return tagTuple2 }

// String implements fmt.Stringer.
func (t Tuple2Type) String() string {
	return "Tuple2<" + t.A.String() + "," + t.B.String() + ">"
}

// EncodeTo implements types.EncoderTo.
func (t Tuple2Type) EncodeTo(e *Encoder) {
	e.WriteUint8(tagTuple2)
	t.A.EncodeTo(e)
	t.B.EncodeTo(e)
}

// MarshalJSON implements json.Marshaler.
func (t Tuple2Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]CLType{"Tuple2": {t.A, t.B}})
}

// A Tuple3Type describes a three-element tuple.
type Tuple3Type struct {
	A CLType
	B CLType
	C CLType
}

func (Tuple3Type) isCLType() {}

// Tag returns the type's binary discriminant.
func (Tuple3Type) Tag() uint8 { return tagTuple3 }

// String implements fmt.Stringer.
func (t Tuple3Type) String() string {
	return "Tuple3<" + t.A.String() + "," + t.B.String() + "," + t.C.String() + ">"
}

// EncodeTo implements types.EncoderTo.
func (t Tuple3Type) EncodeTo(e *Encoder) {
	e.WriteUint8(tagTuple3)
	t.A.EncodeTo(e)
	t.B.EncodeTo(e)
	t.C.EncodeTo(e)
}

// MarshalJSON implements json.Marshaler.
func (t Tuple3Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string][]CLType{"Tuple3": {t.A, t.B, t.C}})
}

// A DynamicType carries a runtime-resolved inner type. It lets a caller bind
// a type lazily while the codec still uses the resolved shape: every format
// operation delegates to the inner type, so a DynamicType is indistinguishable
// from its inner type on the wire, in strings, and in JSON.
type DynamicType struct {
	Inner CLType
}

func (DynamicType) isCLType() {}

// Tag returns the inner type's binary discriminant.
func (t DynamicType) Tag() uint8 { return t.Inner.Tag() }

// String implements fmt.Stringer.
func (t DynamicType) String() string { return t.Inner.String() }

// EncodeTo implements types.EncoderTo.
func (t DynamicType) EncodeTo(e *Encoder) { t.Inner.EncodeTo(e) }

// MarshalJSON implements json.Marshaler.
func (t DynamicType) MarshalJSON() ([]byte, error) { return t.Inner.MarshalJSON() }

// resolveType unwraps any DynamicType layers.
func resolveType(t CLType) CLType {
	for {
		dt, ok := t.(DynamicType)
		if !ok {
			return t
		}
		t = dt.Inner
	}
}

// maxTypeNesting bounds descriptor recursion during decoding. The closed
// variant set gives no legitimate use for deeper nesting; without the bound a
// hostile descriptor (megabytes of Option tags) could exhaust the stack.
const maxTypeNesting = 64

// DecodeCLType reads a CLType from the stream. On failure it sets the
// Decoder's error and returns nil.
func DecodeCLType(d *Decoder) CLType {
	return decodeCLType(d, 0)
}

func decodeCLType(d *Decoder, depth int) CLType {
	if depth > maxTypeNesting {
		d.SetErr(fmt.Errorf("cl type nesting exceeds %v levels: %w", maxTypeNesting, ErrInvalidLength))
		return nil
	}
	tag := d.ReadUint8()
	if d.Err() != nil {
		return nil
	}
	if st, ok := simpleTypeByTag[tag]; ok {
		return st
	}
	switch tag {
	case tagOption:
		return OptionType{Inner: decodeCLType(d, depth+1)}
	case tagList:
		return ListType{Elem: decodeCLType(d, depth+1)}
	case tagByteArray:
		return ByteArrayType{Size: d.ReadUint32()}
	case tagResult:
		ok := decodeCLType(d, depth+1)
		return ResultType{Ok: ok, Err: decodeCLType(d, depth+1)}
	case tagMap:
		k := decodeCLType(d, depth+1)
		return MapType{Key: k, Value: decodeCLType(d, depth+1)}
	case tagTuple1:
		return Tuple1Type{A: decodeCLType(d, depth+1)}
	case tagTuple2:
		a := decodeCLType(d, depth+1)
		return Tuple2Type{A: a, B: decodeCLType(d, depth+1)}
	case tagTuple3:
		a := decodeCLType(d, depth+1)
		b := decodeCLType(d, depth+1)
		return Tuple3Type{A: a, B: b, C: decodeCLType(d, depth+1)}
	default:
		d.SetErr(fmt.Errorf("cl type tag %v: %w", tag, ErrUnknownTag))
		return nil
	}
}

// ParseCLTypeBytes decodes a CLType from the front of buf, returning the
// unconsumed remainder.
func ParseCLTypeBytes(buf []byte) (CLType, []byte, error) {
	d := NewBufDecoder(buf)
	t := DecodeCLType(d)
	if err := d.Err(); err != nil {
		return nil, nil, err
	}
	return t, buf[len(buf)-d.Remaining():], nil
}

// ParseCLTypeJSON parses the JSON form of a CLType: a plain string for the
// non-composite types, or a single-key object for the composites.
func ParseCLTypeJSON(b []byte) (CLType, error) {
	return parseCLTypeJSON(b, 0)
}

func parseCLTypeJSON(b []byte, depth int) (CLType, error) {
	if depth > maxTypeNesting {
		return nil, fmt.Errorf("cl type nesting exceeds %v levels: %w", maxTypeNesting, ErrInvalidLength)
	}
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		if st, ok := simpleTypeByName[name]; ok {
			return st, nil
		}
		return nil, fmt.Errorf("cl type %q: %w", name, ErrUnknownTag)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return nil, fmt.Errorf("decoding cl type JSON failed: %w", err)
	} else if len(obj) != 1 {
		return nil, fmt.Errorf("cl type JSON object must have exactly one key, got %v: %w", len(obj), ErrUnknownTag)
	}
	parseTuple := func(raw json.RawMessage, n int) ([]CLType, error) {
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil, fmt.Errorf("decoding tuple type failed: %w", err)
		} else if len(elems) != n {
			return nil, fmt.Errorf("tuple type has %v elements, want %v: %w", len(elems), n, ErrInvalidLength)
		}
		ts := make([]CLType, n)
		for i := range elems {
			var err error
			if ts[i], err = parseCLTypeJSON(elems[i], depth+1); err != nil {
				return nil, err
			}
		}
		return ts, nil
	}
	for name, raw := range obj {
		switch name {
		case "Option":
			inner, err := parseCLTypeJSON(raw, depth+1)
			if err != nil {
				return nil, err
			}
			return OptionType{Inner: inner}, nil
		case "List":
			elem, err := parseCLTypeJSON(raw, depth+1)
			if err != nil {
				return nil, err
			}
			return ListType{Elem: elem}, nil
		case "ByteArray":
			var size uint32
			if err := json.Unmarshal(raw, &size); err != nil {
				return nil, fmt.Errorf("decoding byte array size failed: %w", ErrMalformedNumeric)
			}
			return ByteArrayType{Size: size}, nil
		case "Result":
			var inner struct {
				Ok  json.RawMessage `json:"ok"`
				Err json.RawMessage `json:"err"`
			}
			if err := json.Unmarshal(raw, &inner); err != nil {
				return nil, fmt.Errorf("decoding result type failed: %w", err)
			}
			okT, err := parseCLTypeJSON(inner.Ok, depth+1)
			if err != nil {
				return nil, err
			}
			errT, err := parseCLTypeJSON(inner.Err, depth+1)
			if err != nil {
				return nil, err
			}
			return ResultType{Ok: okT, Err: errT}, nil
		case "Map":
			var inner struct {
				Key   json.RawMessage `json:"key"`
				Value json.RawMessage `json:"value"`
			}
			if err := json.Unmarshal(raw, &inner); err != nil {
				return nil, fmt.Errorf("decoding map type failed: %w", err)
			}
			keyT, err := parseCLTypeJSON(inner.Key, depth+1)
			if err != nil {
				return nil, err
			}
			valT, err := parseCLTypeJSON(inner.Value, depth+1)
			if err != nil {
				return nil, err
			}
			return MapType{Key: keyT, Value: valT}, nil
		case "Tuple1":
			ts, err := parseTuple(raw, 1)
			if err != nil {
				return nil, err
			}
			return Tuple1Type{A: ts[0]}, nil
		case "Tuple2":
			ts, err := parseTuple(raw, 2)
			if err != nil {
				return nil, err
			}
			return Tuple2Type{A: ts[0], B: ts[1]}, nil
		case "Tuple3":
			ts, err := parseTuple(raw, 3)
			if err != nil {
				return nil, err
			}
			return Tuple3Type{A: ts[0], B: ts[1], C: ts[2]}, nil
		default:
			return nil, fmt.Errorf("cl type %q: %w", name, ErrUnknownTag)
		}
	}
	return nil, fmt.Errorf("empty cl type JSON object: %w", ErrUnknownTag)
}
