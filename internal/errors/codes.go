// Package errors provides structured error handling for vibe-search.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (snapshot read/write)
//   - 4XX: Validation errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates snapshot and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryValidation indicates document or query validation errors.
	CategoryValidation Category = "VALIDATION"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	// IO errors (200-299)
	ErrCodeSnapshotRead    = "ERR_201_SNAPSHOT_READ"
	ErrCodeSnapshotWrite   = "ERR_202_SNAPSHOT_WRITE"
	ErrCodeSnapshotCorrupt = "ERR_203_SNAPSHOT_CORRUPT"
	ErrCodeSnapshotLock    = "ERR_204_SNAPSHOT_LOCK"

	// Validation errors (400-499)
	ErrCodeInvalidDocument = "ERR_401_INVALID_DOCUMENT"
	ErrCodeInvalidQuery    = "ERR_402_INVALID_QUERY"
	ErrCodeInvalidFilter   = "ERR_403_INVALID_FILTER"

	// Internal errors (500-599)
	ErrCodeInternal       = "ERR_501_INTERNAL"
	ErrCodeNotInitialized = "ERR_510_NOT_INITIALIZED"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// severityFromCode derives the default severity for a code.
// Snapshot write failures are warnings: the in-memory mutation stands and
// the next successful save catches disk back up.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeSnapshotWrite:
		return SeverityWarning
	case ErrCodeInternal:
		return SeverityFatal
	default:
		return SeverityError
	}
}

// isRetryableCode reports whether operations failing with this code may be retried.
func isRetryableCode(code string) bool {
	switch code {
	case ErrCodeSnapshotWrite, ErrCodeSnapshotLock:
		return true
	default:
		return false
	}
}
