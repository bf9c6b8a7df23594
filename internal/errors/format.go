package errors

import (
	"fmt"
	"strings"
)

// FormatForCLI formats an error for CLI output.
// Uses a concise format suitable for terminal display.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	ve, ok := err.(*VibeError)
	if !ok {
		// Wrap standard error
		ve = Wrap(ErrCodeInternal, err)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error: %s\n", ve.Message))

	if ve.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", ve.Suggestion))
	}

	sb.WriteString(fmt.Sprintf("  Code: %s\n", ve.Code))

	return sb.String()
}
