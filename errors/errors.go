// Package errors provides error handling for gpxport.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - User-facing hints and details
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
//	// Check errors
//	if errors.Is(err, errors.ErrManifestSchema) {
//	    // handle unsupported manifest layout
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
)

// Common sentinel errors for use across gpxport.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrManifestSchema indicates the manifest column layout does not
	// match the supported export version. This is fatal for the run:
	// positional field access would read garbage.
	ErrManifestSchema = New("unsupported manifest layout")

	// ErrUnrecognizedFormat indicates a track file whose suffix is
	// outside the dispatch table. The activity is skipped, not failed.
	ErrUnrecognizedFormat = New("unrecognized track file format")

	// ErrTransform indicates the structural rebuild of a track failed,
	// e.g. a source file without a session message.
	ErrTransform = New("track transform failed")

	// ErrNoTrackFile indicates a manifest row without an uploaded track
	// file (manually entered activities have none).
	ErrNoTrackFile = New("activity has no track file")
)

// IsManifestSchemaError checks if an error is or wraps ErrManifestSchema
func IsManifestSchemaError(err error) bool {
	return err != nil && Is(err, ErrManifestSchema)
}

// IsUnrecognizedFormatError checks if an error is or wraps ErrUnrecognizedFormat
func IsUnrecognizedFormatError(err error) bool {
	return err != nil && Is(err, ErrUnrecognizedFormat)
}

// IsTransformError checks if an error is or wraps ErrTransform
func IsTransformError(err error) bool {
	return err != nil && Is(err, ErrTransform)
}

// IsNoTrackFileError checks if an error is or wraps ErrNoTrackFile
func IsNoTrackFileError(err error) bool {
	return err != nil && Is(err, ErrNoTrackFile)
}

// NewTransformError creates a transform error with a formatted message
func NewTransformError(format string, args ...interface{}) error {
	return Wrap(ErrTransform, Newf(format, args...).Error())
}
