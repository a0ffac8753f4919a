package sqlkit

import "github.com/zoobzio/sqlkit/internal/render"

// BuildError indicates a statement missing a required clause or with
// mismatched clause cardinality.
type BuildError = render.BuildError

// UnsupportedFeatureError indicates a feature not supported by the dialect.
type UnsupportedFeatureError = render.UnsupportedFeatureError

// InvalidIdentifierError indicates an identifier that cannot be rendered.
type InvalidIdentifierError = render.InvalidIdentifierError

// Sentinels for errors.Is.
var (
	ErrBuild              = render.ErrBuild
	ErrUnsupportedFeature = render.ErrUnsupportedFeature
	ErrInvalidIdentifier  = render.ErrInvalidIdentifier
)
