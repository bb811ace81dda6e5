// Package errors provides error handling for schemagen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints that the CLI prints under a failed command
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := render(msg); err != nil {
//	    return errors.Wrapf(err, "render %s", msg.Name)
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "declare the enum before building the registry")
//
//	// Check errors
//	if errors.Is(err, errors.ErrCycle) {
//	    // break the cycle in the schema catalog
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
	Join         = crdb.Join
	Mark         = crdb.Mark
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
)

// Assertions
var (
	AssertionFailedf                 = crdb.AssertionFailedf
	NewAssertionErrorWithWrappedErrf = crdb.NewAssertionErrorWithWrappedErrf
)

// Sentinel errors for schema validation and generation.
// Use these with errors.Is(); the registry marks every validation failure
// with one of them so callers can branch without matching strings.
var (
	// ErrUnresolvedReference indicates a nested or enum reference names no registered schema
	ErrUnresolvedReference = New("unresolved reference")

	// ErrDuplicateFieldID indicates two fields of one message share an id
	ErrDuplicateFieldID = New("duplicate field id")

	// ErrDuplicateEnumValue indicates two values of one enum share a numeric code
	ErrDuplicateEnumValue = New("duplicate enum value")

	// ErrDuplicateSchema indicates two schemas share a name
	ErrDuplicateSchema = New("duplicate schema name")

	// ErrCycle indicates a message transitively contains itself
	ErrCycle = New("cyclic nesting")

	// ErrInvalidSchema indicates a schema definition that no backend can render
	ErrInvalidSchema = New("invalid schema")

	// ErrUnsupported indicates a construct the target format cannot express
	ErrUnsupported = New("unsupported by target format")

	// ErrOutOfDate indicates generated files differ from a fresh generation
	ErrOutOfDate = New("generated files are out of date")
)

// IsValidationError reports whether err is one of the registry validation failures.
func IsValidationError(err error) bool {
	return err != nil && IsAny(err,
		ErrUnresolvedReference,
		ErrDuplicateFieldID,
		ErrDuplicateEnumValue,
		ErrDuplicateSchema,
		ErrCycle,
		ErrInvalidSchema,
	)
}

// IsUnsupportedError checks if an error is or wraps ErrUnsupported
func IsUnsupportedError(err error) bool {
	return err != nil && Is(err, ErrUnsupported)
}

// IsOutOfDateError checks if an error is or wraps ErrOutOfDate
func IsOutOfDateError(err error) bool {
	return err != nil && Is(err, ErrOutOfDate)
}

// Markf creates a formatted error that matches sentinel under errors.Is
// while keeping its own message free of the sentinel text.
func Markf(sentinel error, format string, args ...interface{}) error {
	return Mark(Newf(format, args...), sentinel)
}
