package errors

import (
	"fmt"
)

// VibeError is the structured error type for vibe-search.
// It provides rich context for error handling, logging, and user presentation.
type VibeError struct {
	// Code is the unique error code (e.g., "ERR_203_SNAPSHOT_CORRUPT").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Validation, Internal).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *VibeError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *VibeError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with VibeError.
func (e *VibeError) Is(target error) bool {
	if t, ok := target.(*VibeError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *VibeError) WithDetail(key, value string) *VibeError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *VibeError) WithSuggestion(suggestion string) *VibeError {
	e.Suggestion = suggestion
	return e
}

// New creates a new VibeError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *VibeError {
	return &VibeError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates a VibeError from an existing error.
// The error's message becomes the VibeError message.
func Wrap(code string, err error) *VibeError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *VibeError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// ValidationError creates a document/query validation error.
func ValidationError(message string, cause error) *VibeError {
	return New(ErrCodeInvalidDocument, message, cause)
}

// NotInitializedError creates the error returned when a project has no
// registry entry, no loadable snapshot, and no explicit init.
func NotInitializedError(projectPath string) *VibeError {
	return New(ErrCodeNotInitialized,
		fmt.Sprintf("no search index initialized for project %s", projectPath), nil).
		WithDetail("project_path", projectPath).
		WithSuggestion("run 'vibesearch insert' or call Registry.GetOrInit first")
}

// IsRetryable checks if an error is retryable.
// Returns true if the error is a VibeError with Retryable flag set.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if ve, ok := err.(*VibeError); ok {
		return ve.Retryable
	}
	return false
}

// GetCode extracts the error code from a VibeError.
// Returns empty string if not a VibeError.
func GetCode(err error) string {
	if ve, ok := err.(*VibeError); ok {
		return ve.Code
	}
	return ""
}

// GetCategory extracts the category from a VibeError.
// Returns empty string if not a VibeError.
func GetCategory(err error) Category {
	if ve, ok := err.(*VibeError); ok {
		return ve.Category
	}
	return ""
}
