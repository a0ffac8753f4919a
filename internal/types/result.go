package types

// QueryResult contains the rendered SQL and its bound parameters.
// Params holds the logical values in placeholder order; Args holds the
// same values materialized for the target driver. Both always have one
// entry per placeholder.
type QueryResult struct {
	SQL    string
	Params []Value
	Args   []any
}
