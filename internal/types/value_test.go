package types

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Value Tests
// =============================================================================

func TestFromGo_Kinds(t *testing.T) {
	n := 7
	var nilPtr *int
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		want Kind
	}{
		{"nil", nil, KindNull},
		{"bool", true, KindBool},
		{"int", 1, KindInt},
		{"int8", int8(1), KindInt},
		{"int64", int64(1), KindInt},
		{"uint", uint(1), KindUint},
		{"uint64", uint64(1), KindUint},
		{"float32", float32(1.5), KindFloat},
		{"float64", 1.5, KindFloat},
		{"string", "x", KindString},
		{"bytes", []byte("x"), KindBytes},
		{"nil bytes", []byte(nil), KindNull},
		{"raw json", json.RawMessage(`{"a":1}`), KindJSON},
		{"time", ts, KindTimestampTZ},
		{"uuid", id, KindUUID},
		{"pointer", &n, KindInt},
		{"nil pointer", nilPtr, KindNull},
		{"int slice", []int{1, 2}, KindArray},
		{"string slice", []string{"a"}, KindArray},
		{"byte array", [4]byte{1, 2, 3, 4}, KindBytes},
		{"value", StringValue("x"), KindString},
		{"struct", struct{}{}, KindInvalid},
		{"map", map[string]int{}, KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromGo(tt.in).Kind(); got != tt.want {
				t.Errorf("FromGo(%T).Kind() = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromGo_InvalidCarriesError(t *testing.T) {
	v := FromGo(make(chan int))
	if v.Kind() != KindInvalid {
		t.Fatalf("Kind() = %s, want invalid", v.Kind())
	}
	if v.Err() == nil {
		t.Error("Err() = nil, want conversion error")
	}
}

type failingValuer struct{}

func (failingValuer) Value() (any, error) { return nil, errors.New("boom") }

type stringValuer string

func (s stringValuer) Value() (any, error) { return string(s), nil }

func TestFromGo_DriverValuer(t *testing.T) {
	v := FromGo(stringValuer("hello"))
	if v.Kind() != KindString || v.String() != "hello" {
		t.Errorf("FromGo(Valuer) = %s %q, want string %q", v.Kind(), v.String(), "hello")
	}

	bad := FromGo(failingValuer{})
	if bad.Kind() != KindInvalid {
		t.Errorf("FromGo(failing Valuer).Kind() = %s, want invalid", bad.Kind())
	}
}

func TestBytesValue_Copies(t *testing.T) {
	b := []byte("abc")
	v := BytesValue(b)
	b[0] = 'z'
	if got := string(v.Bytes()); got != "abc" {
		t.Errorf("Bytes() = %q, want %q", got, "abc")
	}
}

func TestJSONValue_Canonical(t *testing.T) {
	v := JSONValue([]byte(`{"b": 2, "a": [1, 2]}`))
	if v.Kind() != KindJSON {
		t.Fatalf("Kind() = %s, want json", v.Kind())
	}
	want := `{"a":[1,2],"b":2}`
	if v.String() != want {
		t.Errorf("String() = %q, want %q", v.String(), want)
	}

	bad := JSONValue([]byte(`{"a":`))
	if bad.Kind() != KindInvalid {
		t.Errorf("JSONValue(invalid).Kind() = %s, want invalid", bad.Kind())
	}
}

func TestArrayValue(t *testing.T) {
	t.Run("homogeneous", func(t *testing.T) {
		v := ArrayValue(KindInt, []Value{IntValue(1), NullValue(), IntValue(3)})
		if v.Kind() != KindArray || v.ElemKind() != KindInt {
			t.Fatalf("got %s of %s, want array of int", v.Kind(), v.ElemKind())
		}
		if len(v.Elems()) != 3 {
			t.Errorf("len(Elems()) = %d, want 3", len(v.Elems()))
		}
	})

	t.Run("mixed kinds", func(t *testing.T) {
		v := ArrayValue(KindInt, []Value{IntValue(1), StringValue("x")})
		if v.Kind() != KindInvalid {
			t.Errorf("Kind() = %s, want invalid", v.Kind())
		}
	})

	t.Run("nested arrays", func(t *testing.T) {
		v := ArrayValue(KindArray, nil)
		if v.Kind() != KindInvalid {
			t.Errorf("Kind() = %s, want invalid", v.Kind())
		}
	})

	t.Run("from pointer slice", func(t *testing.T) {
		a, b := "a", "b"
		v := FromGo([]*string{&a, nil, &b})
		if v.Kind() != KindArray || v.ElemKind() != KindString {
			t.Fatalf("got %s of %s, want array of string", v.Kind(), v.ElemKind())
		}
		if !v.Elems()[1].IsNull() {
			t.Error("nil element should convert to NULL")
		}
	})
}

func TestTemporalText(t *testing.T) {
	loc := time.FixedZone("", 2*60*60)
	ts := time.Date(2024, 3, 1, 12, 30, 15, 250000000, loc)

	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"date", DateValue(ts), "2024-03-01"},
		{"time", TimeValue(ts), "12:30:15.25"},
		{"datetime", DateTimeValue(ts), "2024-03-01 12:30:15.25"},
		{"timestamptz", TimestampTZValue(ts), "2024-03-01 12:30:15.25+02:00"},
		{"not temporal", IntValue(1), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.TemporalText(); got != tt.want {
				t.Errorf("TemporalText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	if got := KindTimestampTZ.String(); got != "timestamptz" {
		t.Errorf("String() = %q, want %q", got, "timestamptz")
	}
	if got := Kind(200).String(); got != "kind(200)" {
		t.Errorf("String() = %q, want %q", got, "kind(200)")
	}
}
