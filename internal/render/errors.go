package render

import (
	"errors"
	"fmt"
)

// Sentinels matched by errors.Is against the typed errors below.
var (
	ErrBuild              = errors.New("build error")
	ErrUnsupportedFeature = errors.New("unsupported feature")
	ErrInvalidIdentifier  = errors.New("invalid identifier")
)

// BuildError indicates a statement missing a required clause or with
// mismatched clause cardinality.
type BuildError struct {
	Err       error
	Statement string
	Reason    string
}

func (e BuildError) Error() string {
	if e.Statement != "" {
		return fmt.Sprintf("%s: %s", e.Statement, e.Reason)
	}
	return e.Reason
}

// Is matches ErrBuild.
func (e BuildError) Is(target error) bool {
	return target == ErrBuild
}

// Unwrap returns the underlying cause, if any.
func (e BuildError) Unwrap() error {
	return e.Err
}

// NewBuildError creates a new build error.
func NewBuildError(statement, reason string) error {
	return BuildError{Statement: statement, Reason: reason}
}

// WrapBuildError wraps err as a build error of the given statement.
func WrapBuildError(statement string, err error) error {
	return BuildError{Statement: statement, Reason: err.Error(), Err: err}
}

// UnsupportedFeatureError indicates a feature not supported by the dialect.
type UnsupportedFeatureError struct {
	Feature string
	Dialect string
	Hint    string
}

func (e UnsupportedFeatureError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("%s: %s is not supported: %s", e.Dialect, e.Feature, e.Hint)
	}
	return fmt.Sprintf("%s: %s is not supported", e.Dialect, e.Feature)
}

// Is matches ErrUnsupportedFeature.
func (e UnsupportedFeatureError) Is(target error) bool {
	return target == ErrUnsupportedFeature
}

// NewUnsupportedFeatureError creates a new unsupported feature error.
func NewUnsupportedFeatureError(dialect, feature string, hint ...string) error {
	err := UnsupportedFeatureError{Feature: feature, Dialect: dialect}
	if len(hint) > 0 {
		err.Hint = hint[0]
	}
	return err
}

// InvalidIdentifierError indicates an identifier that cannot be rendered.
type InvalidIdentifierError struct {
	Name   string
	Reason string
}

func (e InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Name, e.Reason)
}

// Is matches ErrInvalidIdentifier.
func (e InvalidIdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}

// NewInvalidIdentifierError creates a new invalid identifier error.
func NewInvalidIdentifierError(name, reason string) error {
	return InvalidIdentifierError{Name: name, Reason: reason}
}
