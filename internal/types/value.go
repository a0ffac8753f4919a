package types

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindBytes
	KindDate
	KindTime
	KindDateTime
	KindTimestampTZ
	KindUUID
	KindJSON
	KindArray
)

var kindNames = [...]string{
	KindInvalid:     "invalid",
	KindNull:        "null",
	KindBool:        "bool",
	KindInt:         "int",
	KindUint:        "uint",
	KindFloat:       "float",
	KindString:      "string",
	KindBytes:       "bytes",
	KindDate:        "date",
	KindTime:        "time",
	KindDateTime:    "datetime",
	KindTimestampTZ: "timestamptz",
	KindUUID:        "uuid",
	KindJSON:        "json",
	KindArray:       "array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Text layouts shared by every dialect that binds temporal values as text.
const (
	DateLayout        = "2006-01-02"
	TimeLayout        = "15:04:05.999999"
	DateTimeLayout    = "2006-01-02 15:04:05.999999"
	TimestampTZLayout = "2006-01-02 15:04:05.999999-07:00"
)

// Value is a literal carried by a statement. It is a closed sum type:
// the Kind decides which accessor is meaningful. Values are always bound
// through placeholders unless an expression explicitly asks for inline
// rendering, and only numeric, boolean and null values may be inlined.
type Value struct {
	t     time.Time
	err   error
	s     string
	raw   []byte
	elems []Value
	i     int64
	u     uint64
	f     float64
	id    uuid.UUID
	kind  Kind
	elem  Kind
	b     bool
}

// NullValue returns SQL NULL.
func NullValue() Value { return Value{kind: KindNull} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// IntValue wraps a signed integer.
func IntValue(i int64) Value { return Value{kind: KindInt, i: i} }

// UintValue wraps an unsigned integer.
func UintValue(u uint64) Value { return Value{kind: KindUint, u: u} }

// FloatValue wraps a floating point number.
func FloatValue(f float64) Value { return Value{kind: KindFloat, f: f} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// BytesValue wraps a byte slice. The slice is copied.
func BytesValue(b []byte) Value {
	return Value{kind: KindBytes, raw: bytes.Clone(b)}
}

// DateValue wraps the calendar date part of t.
func DateValue(t time.Time) Value { return Value{kind: KindDate, t: t} }

// TimeValue wraps the time-of-day part of t.
func TimeValue(t time.Time) Value { return Value{kind: KindTime, t: t} }

// DateTimeValue wraps a date and time without zone.
func DateTimeValue(t time.Time) Value { return Value{kind: KindDateTime, t: t} }

// TimestampTZValue wraps an instant with its zone offset.
func TimestampTZValue(t time.Time) Value { return Value{kind: KindTimestampTZ, t: t} }

// UUIDValue wraps a UUID.
func UUIDValue(id uuid.UUID) Value { return Value{kind: KindUUID, id: id} }

// JSONValue wraps an encoded JSON document. The document is re-encoded
// through encoding/json so object keys come out sorted and the bound text
// is canonical.
func JSONValue(doc []byte) Value {
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		return InvalidValue(fmt.Errorf("invalid JSON document: %w", err))
	}
	canonical, err := json.Marshal(v)
	if err != nil {
		return InvalidValue(fmt.Errorf("invalid JSON document: %w", err))
	}
	return Value{kind: KindJSON, s: string(canonical)}
}

// ArrayValue wraps a homogeneous array. Every element must be of the
// element kind or null.
func ArrayValue(elem Kind, elems []Value) Value {
	if elem == KindArray || elem == KindInvalid || elem == KindNull {
		return InvalidValue(fmt.Errorf("unsupported array element kind %s", elem))
	}
	for i, e := range elems {
		if e.kind != elem && e.kind != KindNull {
			return InvalidValue(fmt.Errorf("array element %d is %s, expected %s", i, e.kind, elem))
		}
	}
	return Value{kind: KindArray, elem: elem, elems: append([]Value(nil), elems...)}
}

// InvalidValue records a conversion failure. It is reported when the
// statement holding it is rendered.
func InvalidValue(err error) Value { return Value{kind: KindInvalid, err: err} }

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is SQL NULL.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Err returns the conversion error of an invalid value.
func (v Value) Err() error { return v.err }

// Bool returns the boolean payload.
func (v Value) Bool() bool { return v.b }

// Int returns the signed integer payload.
func (v Value) Int() int64 { return v.i }

// Uint returns the unsigned integer payload.
func (v Value) Uint() uint64 { return v.u }

// Float returns the floating point payload.
func (v Value) Float() float64 { return v.f }

// String returns the string payload of string and JSON values.
func (v Value) String() string { return v.s }

// Bytes returns the byte payload.
func (v Value) Bytes() []byte { return v.raw }

// Time returns the temporal payload.
func (v Value) Time() time.Time { return v.t }

// UUID returns the UUID payload.
func (v Value) UUID() uuid.UUID { return v.id }

// ElemKind returns the element kind of an array.
func (v Value) ElemKind() Kind { return v.elem }

// Elems returns the elements of an array.
func (v Value) Elems() []Value { return v.elems }

// TemporalText formats date, time, datetime and timestamp values with the
// shared layouts. Other kinds return an empty string.
func (v Value) TemporalText() string {
	switch v.kind {
	case KindDate:
		return v.t.Format(DateLayout)
	case KindTime:
		return v.t.Format(TimeLayout)
	case KindDateTime:
		return v.t.Format(DateTimeLayout)
	case KindTimestampTZ:
		return v.t.Format(TimestampTZLayout)
	default:
		return ""
	}
}

var (
	timeType  = reflect.TypeOf(time.Time{})
	uuidType  = reflect.TypeOf(uuid.UUID{})
	valueType = reflect.TypeOf(Value{})
)

// FromGo converts a Go value into a Value. Unsupported types produce an
// invalid value rather than an error so builders never fail.
func FromGo(in any) Value {
	switch x := in.(type) {
	case nil:
		return NullValue()
	case Value:
		return x
	case bool:
		return BoolValue(x)
	case int:
		return IntValue(int64(x))
	case int8:
		return IntValue(int64(x))
	case int16:
		return IntValue(int64(x))
	case int32:
		return IntValue(int64(x))
	case int64:
		return IntValue(x)
	case uint:
		return UintValue(uint64(x))
	case uint8:
		return UintValue(uint64(x))
	case uint16:
		return UintValue(uint64(x))
	case uint32:
		return UintValue(uint64(x))
	case uint64:
		return UintValue(x)
	case float32:
		return FloatValue(float64(x))
	case float64:
		return FloatValue(x)
	case string:
		return StringValue(x)
	case []byte:
		if x == nil {
			return NullValue()
		}
		return BytesValue(x)
	case json.RawMessage:
		if x == nil {
			return NullValue()
		}
		return JSONValue(x)
	case time.Time:
		return TimestampTZValue(x)
	case uuid.UUID:
		return UUIDValue(x)
	case driver.Valuer:
		rv := reflect.ValueOf(x)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return NullValue()
		}
		dv, err := x.Value()
		if err != nil {
			return InvalidValue(fmt.Errorf("driver value of %T: %w", in, err))
		}
		return FromGo(dv)
	}
	return fromReflect(reflect.ValueOf(in))
}

func fromReflect(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return NullValue()
		}
		return FromGo(rv.Elem().Interface())
	case reflect.Bool:
		return BoolValue(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IntValue(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return UintValue(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return FloatValue(rv.Float())
	case reflect.String:
		return StringValue(rv.String())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return NullValue()
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 && rv.Type() != uuidType {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return BytesValue(b)
		}
		return arrayFromReflect(rv)
	}
	return InvalidValue(fmt.Errorf("unsupported Go type %s", rv.Type()))
}

func arrayFromReflect(rv reflect.Value) Value {
	elem := kindOfType(rv.Type().Elem())
	elems := make([]Value, rv.Len())
	for i := range elems {
		elems[i] = FromGo(rv.Index(i).Interface())
	}
	if elem == KindInvalid {
		for _, e := range elems {
			if e.kind != KindNull {
				elem = e.kind
				break
			}
		}
	}
	return ArrayValue(elem, elems)
}

// kindOfType maps a Go element type to the Value kind it converts to.
func kindOfType(t reflect.Type) Kind {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t {
	case timeType:
		return KindTimestampTZ
	case uuidType:
		return KindUUID
	case valueType:
		return KindInvalid
	}
	if t.Kind() == reflect.Interface {
		return KindInvalid
	}
	k := FromGo(reflect.Zero(t).Interface()).kind
	if k == KindNull {
		// nil slices and Valuers say nothing about the element kind
		return KindInvalid
	}
	return k
}
