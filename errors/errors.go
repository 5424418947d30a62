// Package errors provides error handling for bindgen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Marking errors with a category that survives wrapping
//   - Assertion failures for broken internal invariants
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Categorize a recoverable rejection
//	return errors.Reject(errors.Newf("arity mismatch: %d != %d", a, b))
//
//	// Check errors
//	if errors.IsCandidateRejection(err) {
//	    // skip this candidate, keep going
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
	Mark           = crdb.Mark
	Join           = crdb.Join
)

// Assertions and panics
var (
	AssertionFailedf                 = crdb.AssertionFailedf
	NewAssertionErrorWithWrappedErrf = crdb.NewAssertionErrorWithWrappedErrf
	HasAssertionFailure              = crdb.HasAssertionFailure
)

// Sentinel errors for the error taxonomy of the generator.
// Use these with errors.Is() for type-safe error checking.
var (
	// ErrCandidateRejected marks a template instantiation candidate that was
	// dropped (arity mismatch, leftover template parameters, unavailable type).
	// Always recoverable.
	ErrCandidateRejected = New("candidate rejected")

	// ErrNaming indicates that no exported name can be synthesized for one item.
	ErrNaming = New("naming error")

	// ErrUnsupportedType indicates a type that cannot cross the FFI boundary.
	ErrUnsupportedType = New("unsupported type")

	// ErrPipelineConfig indicates an unregistered, duplicate or cyclic
	// processing step. Fatal: reported before any step runs.
	ErrPipelineConfig = New("pipeline configuration error")

	// ErrNotFound indicates the requested library or item does not exist
	ErrNotFound = New("not found")

	// ErrInvalidInput indicates a malformed fixture, manifest or config value
	ErrInvalidInput = New("invalid input")
)

// Reject marks err as a candidate rejection.
func Reject(err error) error {
	return Mark(err, ErrCandidateRejected)
}

// Rejectf creates a candidate rejection with a formatted message.
func Rejectf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrCandidateRejected)
}

// IsCandidateRejection checks if an error is or wraps ErrCandidateRejected
func IsCandidateRejection(err error) bool {
	return err != nil && Is(err, ErrCandidateRejected)
}

// IsNamingError checks if an error is or wraps ErrNaming
func IsNamingError(err error) bool {
	return err != nil && Is(err, ErrNaming)
}

// IsPipelineConfigError checks if an error is or wraps ErrPipelineConfig
func IsPipelineConfigError(err error) bool {
	return err != nil && Is(err, ErrPipelineConfig)
}

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsFatal reports whether err must abort processing: assertion failures and
// pipeline configuration errors. Everything else is attributable to a single
// item and can be skipped.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return HasAssertionFailure(err) || IsPipelineConfigError(err)
}

// NewNamingError creates a naming error with a formatted message
func NewNamingError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrNaming)
}

// NewUnsupportedTypeError creates an unsupported-type error with a formatted message
func NewUnsupportedTypeError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrUnsupportedType)
}

// NewPipelineConfigError creates a pipeline configuration error with a formatted message
func NewPipelineConfigError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrPipelineConfig)
}

// NewInvalidInputError creates an invalid-input error with a formatted message
func NewInvalidInputError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidInput)
}

// WrapNotFound wraps an error as a not-found error with context
func WrapNotFound(err error, context string) error {
	return Mark(Wrap(err, context), ErrNotFound)
}
