package render

import (
	"math"
	"strings"

	"github.com/zoobzio/sqlkit/internal/types"
)

// Dialect is the strategy the engine delegates every dialect-specific
// decision to. Implementations are immutable and safe for concurrent use.
type Dialect interface {
	// Descriptor returns the constant syntax and capability profile.
	Descriptor() Descriptor
	// QuoteIdentifier wraps a validated, non-empty name in quotes,
	// escaping embedded quote characters.
	QuoteIdentifier(name string) string
	// BindValue materializes v as a driver argument. Values the dialect
	// cannot carry yield UnsupportedFeatureError.
	BindValue(v types.Value) (any, error)
	// FunctionName spells a built-in function. An empty result means the
	// dialect has no equivalent.
	FunctionName(f types.Function) string
}

// QuoteWith wraps name in open and close, doubling every occurrence of
// close inside it.
func QuoteWith(open, closing, name string) string {
	return open + strings.ReplaceAll(name, closing, closing+closing) + closing
}

// BindDefault materializes v the way database/sql drivers commonly accept
// it. Dialects call it for every kind they do not override.
func BindDefault(dialect string, v types.Value) (any, error) {
	switch v.Kind() {
	case types.KindNull:
		return nil, nil
	case types.KindBool:
		return v.Bool(), nil
	case types.KindInt:
		return v.Int(), nil
	case types.KindUint:
		if v.Uint() > math.MaxInt64 {
			return nil, NewUnsupportedFeatureError(dialect, "unsigned integers above 9223372036854775807")
		}
		return int64(v.Uint()), nil
	case types.KindFloat:
		return v.Float(), nil
	case types.KindString, types.KindJSON:
		return v.String(), nil
	case types.KindBytes:
		return v.Bytes(), nil
	case types.KindDate, types.KindTime, types.KindDateTime:
		return v.TemporalText(), nil
	case types.KindTimestampTZ:
		return v.Time(), nil
	case types.KindUUID:
		return v.UUID().String(), nil
	case types.KindArray:
		return nil, NewUnsupportedFeatureError(dialect, "array values")
	case types.KindInvalid:
		if v.Err() == nil {
			return nil, NewBuildError("", "uninitialized value")
		}
		return nil, WrapBuildError("", v.Err())
	default:
		return nil, NewUnsupportedFeatureError(dialect, v.Kind().String()+" values")
	}
}

// StandardFunctionName spells f by its standard SQL name.
func StandardFunctionName(f types.Function) string {
	return f.String()
}
