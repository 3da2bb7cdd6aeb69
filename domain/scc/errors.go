package scc

import (
	"errors"
)

// Domain errors - centralized error definitions
var (
	// Validation errors reject an export before the pipeline runs
	ErrEmptyFile     = errors.New("the uploaded file is empty")
	ErrTooFewColumns = errors.New("the file has too few columns, expected an export with multiple columns")

	// ErrNoMatchingColumns aborts a conversion outright: no reference column
	// and no project-name fallback was found, so no output is produced
	ErrNoMatchingColumns = errors.New("no matching columns found in export")
)

// IsValidationError reports whether the error is a pre-pipeline rejection
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrTooFewColumns)
}
