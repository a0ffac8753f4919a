package render

import (
	"strconv"
	"strings"

	"github.com/zoobzio/sqlkit/internal/types"
)

// Writer accumulates SQL text and the parameters bound to it. The i-th
// placeholder written always binds the i-th parameter.
type Writer struct {
	sql    strings.Builder
	params []types.Value
	args   []any
	style  PlaceholderStyle
}

// NewWriter creates a writer emitting placeholders in the given style.
func NewWriter(style PlaceholderStyle) *Writer {
	return &Writer{style: style}
}

// WriteString appends SQL text.
func (w *Writer) WriteString(s string) {
	w.sql.WriteString(s)
}

// Bind appends a placeholder for v and records v with its driver argument.
func (w *Writer) Bind(v types.Value, arg any) {
	w.params = append(w.params, v)
	w.args = append(w.args, arg)
	w.sql.WriteString(Placeholder(w.style, len(w.params)))
}

// Len returns the number of bound parameters.
func (w *Writer) Len() int {
	return len(w.params)
}

// Result returns the accumulated text and parameters.
func (w *Writer) Result() *types.QueryResult {
	return &types.QueryResult{
		SQL:    w.sql.String(),
		Params: w.params,
		Args:   w.args,
	}
}

// Placeholder spells the n-th (1-based) placeholder in the given style.
func Placeholder(style PlaceholderStyle, n int) string {
	switch style {
	case PlaceholderDollar:
		return "$" + strconv.Itoa(n)
	case PlaceholderColon:
		return ":" + strconv.Itoa(n)
	case PlaceholderAtP:
		return "@p" + strconv.Itoa(n)
	default:
		return "?"
	}
}
