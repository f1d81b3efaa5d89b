package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"math/big"
	"reflect"
	"strings"
	"testing"

	"lukechampine.com/frand"
)

func mustValue(t *testing.T) func(CLValue, error) CLValue {
	return func(v CLValue, err error) CLValue {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
		return v
	}
}

func TestCLValueRoundTrip(t *testing.T) {
	must := mustValue(t)
	u, err := NewURef(frand.Bytes(32), AccessReadWrite)
	if err != nil {
		t.Fatal(err)
	}
	pk, err := NewPublicKey(AlgorithmEd25519, frand.Bytes(32))
	if err != nil {
		t.Fatal(err)
	}
	inner := NewU64Value(frand.Uint64n(1 << 62))
	vals := []CLValue{
		NewBoolValue(true),
		NewI32Value(-123456),
		NewI64Value(-1234567890123),
		NewU8Value(0xff),
		NewU32Value(uint32(frand.Uint64n(1 << 32))),
		NewU64Value(frand.Uint64n(1 << 62)),
		must(NewU128Value(new(big.Int).SetBytes(frand.Bytes(16)))),
		must(NewU256Value(new(big.Int).SetBytes(frand.Bytes(32)))),
		must(NewU512Value(new(big.Int).SetBytes(frand.Bytes(64)))),
		NewUnitValue(),
		NewStringValue("the quick brown fox"),
		NewStringValue(""),
		NewKeyValue(Key{Value: Hash(frand.Entropy256())}),
		NewURefValue(u),
		NewPublicKeyValue(pk),
		must(NewOptionValue(U64Type, nil)),
		must(NewOptionValue(U64Type, &inner)),
		must(NewListValue(U8Type, []CLValue{NewU8Value(1), NewU8Value(2), NewU8Value(3)})),
		must(NewListValue(StringType, nil)),
		NewByteArrayValue(frand.Bytes(32)),
		must(NewResultValue(U64Type, StringType, true, inner)),
		must(NewResultValue(U64Type, StringType, false, NewStringValue("boom"))),
		must(NewMapValue(StringType, U32Type, []MapEntry{
			{NewStringValue("a"), NewU32Value(1)},
			{NewStringValue("b"), NewU32Value(2)},
		})),
		NewTuple1Value(NewBoolValue(false)),
		NewTuple2Value(NewU32Value(7), NewStringValue("seven")),
		NewTuple3Value(NewU8Value(1), NewU8Value(2), NewU8Value(3)),
		NewAnyValue(frand.Bytes(20)),
	}
	for _, v := range vals {
		parsed, rest, err := ParseValue(v.Bytes, v.Type)
		if err != nil {
			t.Fatalf("%v: %v", v.Type, err)
		}
		if len(rest) != 0 {
			t.Fatalf("%v: %v trailing bytes", v.Type, len(rest))
		}
		if !bytes.Equal(parsed.Bytes, v.Bytes) {
			t.Errorf("%v: payload mismatch", v.Type)
		}
		if _, err := parsed.Parsed(); err != nil {
			t.Errorf("%v: %v", v.Type, err)
		}
	}
}

func TestCLValueWithTypeRoundTrip(t *testing.T) {
	must := mustValue(t)
	v := must(NewMapValue(StringType, OptionType{Inner: U512Type}, []MapEntry{
		{NewStringValue("balance"), must(NewOptionValue(U512Type, nil))},
	}))
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	v.EncodeWithTypeTo(e)
	if err := e.Flush(); err != nil {
		t.Fatal(err)
	}
	d := NewBufDecoder(buf.Bytes())
	v2 := DecodeValueWithType(d)
	if err := d.Err(); err != nil {
		t.Fatal(err)
	}
	if v2.Type != v.Type || !bytes.Equal(v2.Bytes, v.Bytes) {
		t.Error("with-type round trip mismatch")
	}
}

func TestCLValueParsed(t *testing.T) {
	must := mustValue(t)
	big127 := big.NewInt(127)
	u512 := must(NewU512Value(big127))
	p, err := u512.Parsed()
	if err != nil {
		t.Fatal(err)
	}
	if p.(*big.Int).Cmp(big127) != 0 {
		t.Errorf("expected 127, got %v", p)
	}

	opt := must(NewOptionValue(StringType, nil))
	if p, err := opt.Parsed(); err != nil || p != nil {
		t.Errorf("expected nil None, got %v (%v)", p, err)
	}

	list := must(NewListValue(U32Type, []CLValue{NewU32Value(1), NewU32Value(2)}))
	p, err = list.Parsed()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p, []any{uint32(1), uint32(2)}) {
		t.Errorf("unexpected list view %v", p)
	}

	res := must(NewResultValue(U64Type, StringType, false, NewStringValue("boom")))
	p, err = res.Parsed()
	if err != nil {
		t.Fatal(err)
	}
	if r := p.(Result); r.Ok || r.Value.(string) != "boom" {
		t.Errorf("unexpected result view %v", p)
	}

	m := must(NewMapValue(StringType, U8Type, []MapEntry{{NewStringValue("k"), NewU8Value(9)}}))
	p, err = m.Parsed()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(p, []MapPair{{Key: "k", Value: uint8(9)}}) {
		t.Errorf("unexpected map view %v", p)
	}
}

func TestCLValueByteArrayJSON(t *testing.T) {
	v := NewByteArrayValue(bytes.Repeat([]byte{0x2a}, 32))
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"bytes":"` + strings.Repeat("2a", 32) + `","cl_type":{"ByteArray":32}}`
	if string(b) != want {
		t.Errorf("expected %s, got %s", want, b)
	}

	var v2 CLValue
	if err := json.Unmarshal(b, &v2); err != nil {
		t.Fatal(err)
	}
	if v2.Type != v.Type || !bytes.Equal(v2.Bytes, v.Bytes) {
		t.Error("JSON round trip mismatch")
	}
}

func TestCLValueJSONRoundTrip(t *testing.T) {
	must := mustValue(t)
	inner := NewU32Value(42)
	vals := []CLValue{
		NewStringValue("hello"),
		must(NewU512Value(new(big.Int).SetBytes(frand.Bytes(48)))),
		must(NewOptionValue(U32Type, &inner)),
		NewKeyValue(Key{Value: EraID(7)}),
		NewTuple2Value(NewBoolValue(true), NewStringValue("x")),
		{Type: DynamicType{Inner: U32Type}, Bytes: inner.Bytes},
	}
	for _, v := range vals {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatal(err)
		}
		var v2 CLValue
		if err := json.Unmarshal(b, &v2); err != nil {
			t.Fatalf("%s: %v", b, err)
		}
		if !bytes.Equal(v2.Bytes, v.Bytes) {
			t.Errorf("%v: payload mismatch", v.Type)
		}
	}
}

func TestCLValueLegacyJSONField(t *testing.T) {
	var v CLValue
	if err := json.Unmarshal([]byte(`{"bytes":"07000000","clType":"U32","parsed":7}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.Type != U32Type {
		t.Errorf("unexpected type %v", v.Type)
	}
	p, err := v.Parsed()
	if err != nil {
		t.Fatal(err)
	}
	if p.(uint32) != 7 {
		t.Errorf("expected 7, got %v", p)
	}

	if err := json.Unmarshal([]byte(`{"bytes":"07000000"}`), &v); !errors.Is(err, ErrIncompleteStructure) {
		t.Errorf("expected ErrIncompleteStructure, got %v", err)
	}
}

func TestCLValueMalformed(t *testing.T) {
	// truncated string
	if _, _, err := ParseValue([]byte{10, 0, 0, 0, 'h', 'i'}, StringType); !errors.Is(err, ErrIncompleteStructure) {
		t.Errorf("expected ErrIncompleteStructure, got %v", err)
	}
	// list count prefix exceeding the buffer
	if _, _, err := ParseValue([]byte{0xff, 0xff, 0xff, 0xff}, ListType{Elem: U64Type}); !errors.Is(err, ErrIncompleteStructure) {
		t.Errorf("expected ErrIncompleteStructure, got %v", err)
	}
	// huge count with a zero-width element type must reject, not spin
	if _, _, err := ParseValue([]byte{0xff, 0xff, 0xff, 0xff}, ListType{Elem: UnitType}); !errors.Is(err, ErrIncompleteStructure) {
		t.Errorf("expected ErrIncompleteStructure, got %v", err)
	}
	if _, _, err := ParseValue([]byte{0xff, 0xff, 0xff, 0xff}, MapType{Key: UnitType, Value: UnitType}); !errors.Is(err, ErrIncompleteStructure) {
		t.Errorf("expected ErrIncompleteStructure, got %v", err)
	}
	// bool payload outside {0,1}
	if _, _, err := ParseValue([]byte{2}, BoolType); !errors.Is(err, ErrUnknownTag) {
		t.Errorf("expected ErrUnknownTag, got %v", err)
	}
	// option tag outside {0,1}
	if _, _, err := ParseValue([]byte{9, 1}, OptionType{Inner: U8Type}); !errors.Is(err, ErrUnknownTag) {
		t.Errorf("expected ErrUnknownTag, got %v", err)
	}
	// oversized big-int length byte
	if _, _, err := ParseValue([]byte{17}, U128Type); !errors.Is(err, ErrMalformedNumeric) {
		t.Errorf("expected ErrMalformedNumeric, got %v", err)
	}
	// negative big int
	if _, err := NewU128Value(big.NewInt(-1)); !errors.Is(err, ErrMalformedNumeric) {
		t.Errorf("expected ErrMalformedNumeric, got %v", err)
	}
	// oversized magnitude
	if _, err := NewU128Value(new(big.Int).Lsh(big.NewInt(1), 128)); !errors.Is(err, ErrMalformedNumeric) {
		t.Errorf("expected ErrMalformedNumeric, got %v", err)
	}
	// element type mismatch
	if _, err := NewListValue(U8Type, []CLValue{NewU32Value(1)}); err == nil {
		t.Error("expected element type mismatch error")
	}
}

func TestCLValueRemainder(t *testing.T) {
	buf := append(append([]byte(nil), NewU32Value(1).Bytes...), 0xde, 0xad)
	v, rest, err := ParseValue(buf, U32Type)
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Bytes) != 4 || len(rest) != 2 || rest[0] != 0xde {
		t.Errorf("unexpected split %x / %x", v.Bytes, rest)
	}
}
