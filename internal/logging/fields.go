// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError = "error"
	FieldPath  = "path"
	FieldInput = "input"

	// Scan fields.
	FieldFormat    = "format"
	FieldStrict    = "strict"
	FieldTokens    = "tokens"
	FieldErrors    = "errors"
	FieldLines     = "lines"
	FieldBytes     = "bytes"
	FieldTruncated = "truncated"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
