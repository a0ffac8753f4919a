package sqlkit

import (
	"errors"
	"log/slog"

	"github.com/zoobzio/sqlkit/internal/render"
	"github.com/zoobzio/sqlkit/internal/types"
)

type renderOptions struct {
	logger *slog.Logger
}

// Option configures a single Render call.
type Option func(*renderOptions)

// WithLogger reports each render to l: a Debug record with the SQL text
// on success, a Warn record with the error on failure. Parameter values
// are never logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *renderOptions) {
		o.logger = l
	}
}

// Render builds stmt and renders it for d. Builder-time problems are
// reported as BuildError.
func Render(stmt Statement, d Dialect, opts ...Option) (*QueryResult, error) {
	var o renderOptions
	for _, opt := range opts {
		opt(&o)
	}

	result, kind, err := renderStatement(stmt, d)
	if o.logger == nil {
		return result, err
	}

	name := ""
	if d != nil {
		name = d.Descriptor().Name
	}
	if err != nil {
		o.logger.Warn("sqlkit: render failed", "dialect", name, "statement", kind, "error", err)
		return nil, err
	}
	o.logger.Debug("sqlkit: rendered statement",
		"dialect", name,
		"statement", kind,
		"sql", result.SQL,
		"params", len(result.Params))
	return result, nil
}

func renderStatement(stmt Statement, d Dialect) (*QueryResult, string, error) {
	if stmt == nil {
		return nil, "", render.NewBuildError("", "statement is nil")
	}
	tree, err := stmt.Build()
	if err != nil {
		return nil, "", classify(err)
	}
	if tree == nil {
		return nil, "", render.NewBuildError("", "statement is nil")
	}
	result, err := render.Render(tree, d)
	return result, tree.Kind(), err
}

// classify keeps typed errors as they are and wraps everything else
// recorded by a builder as BuildError.
func classify(err error) error {
	if errors.Is(err, render.ErrBuild) ||
		errors.Is(err, render.ErrUnsupportedFeature) ||
		errors.Is(err, render.ErrInvalidIdentifier) {
		return err
	}
	return render.WrapBuildError("", err)
}

// Build returns the syntax tree of stmt. It is mostly useful for
// inspecting what a builder produced.
func Build(stmt Statement) (types.Statement, error) {
	if stmt == nil {
		return nil, render.NewBuildError("", "statement is nil")
	}
	tree, err := stmt.Build()
	if err != nil {
		return nil, classify(err)
	}
	return tree, nil
}
