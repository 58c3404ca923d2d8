package cli

import (
	"errors"

	"github.com/yaklabco/mdlex/pkg/fsutil"
	"github.com/yaklabco/mdlex/pkg/scan"
)

// ErrInvalidUsage marks command-line usage errors (bad flags, wrong
// argument count, unknown formats) for exit-code mapping.
var ErrInvalidUsage = errors.New("invalid usage")

// Exit codes for mdlex.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitLexErrors indicates the scan completed but found Error tokens
	// (strict mode only).
	ExitLexErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ExitCodeForError maps a command error to the process exit code.
func ExitCodeForError(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrLexIssuesFound):
		return ExitLexErrors
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	case errors.Is(err, fsutil.ErrNotFound),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *scan.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}
	if strict && result.Stats.ErrorCount > 0 {
		return ExitLexErrors
	}
	return ExitSuccess
}
