package sqlkit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/zoobzio/sqlkit/internal/types"
)

// Val binds a Go value as a parameter. Supported types are nil, bool,
// integers, floats, string, []byte, time.Time (as a zoned timestamp),
// uuid.UUID, json.RawMessage, Value, pointers to these, slices of these
// (as arrays) and driver.Valuer implementations. Anything else is
// reported as a BuildError when the statement is rendered.
func Val(v any) E {
	return E{expr: types.ValueExpr{Value: types.FromGo(v)}}
}

// Lit renders a null, boolean or numeric value inline instead of binding
// it. Any other value is reported as a BuildError at render time.
func Lit(v any) E {
	return E{expr: types.ValueExpr{Value: types.FromGo(v), Inline: true}}
}

// Date binds the calendar date of t.
func Date(t time.Time) Value { return types.DateValue(t) }

// TimeOfDay binds the time of day of t.
func TimeOfDay(t time.Time) Value { return types.TimeValue(t) }

// DateTime binds the date and time of t without zone.
func DateTime(t time.Time) Value { return types.DateTimeValue(t) }

// Timestamp binds t as an instant with zone.
func Timestamp(t time.Time) Value { return types.TimestampTZValue(t) }

// JSON binds v encoded as a JSON document. Object keys are sorted.
func JSON(v any) Value {
	if raw, ok := v.(json.RawMessage); ok {
		return types.JSONValue(raw)
	}
	doc, err := json.Marshal(v)
	if err != nil {
		return types.InvalidValue(fmt.Errorf("encode JSON: %w", err))
	}
	return types.JSONValue(doc)
}

// Array binds a homogeneous array. Elements are converted like Val and
// must share one kind; NULL elements are allowed.
func Array(elems ...any) Value {
	values := make([]types.Value, len(elems))
	elem := types.KindInvalid
	for i, e := range elems {
		values[i] = types.FromGo(e)
		if values[i].Kind() == types.KindInvalid {
			return values[i]
		}
		if elem == types.KindInvalid && !values[i].IsNull() {
			elem = values[i].Kind()
		}
	}
	if elem == types.KindInvalid {
		return types.InvalidValue(fmt.Errorf("array element kind cannot be inferred from %d NULL elements", len(elems)))
	}
	return types.ArrayValue(elem, values)
}

// Raw inserts an unescaped SQL fragment. Each '?' in sql is replaced by a
// placeholder bound to the matching value; the counts must agree.
func Raw(sql string, values ...any) E {
	vals := make([]types.Value, len(values))
	for i, v := range values {
		vals[i] = types.FromGo(v)
	}
	return E{expr: types.RawExpr{SQL: sql, Values: vals}}
}
