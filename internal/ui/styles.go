// Package ui renders search results and stats for the terminal.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Color palette - single lime accent over grays.
const (
	ColorLime     = "154" // Primary accent, scores and matches
	ColorWhite    = "255" // Headers, document ids
	ColorGray     = "245" // Secondary text, metadata
	ColorDarkGray = "238" // Separators
	ColorRed      = "196" // Errors
	ColorYellow   = "220" // Warnings
)

// Styles holds the render styles for result output.
type Styles struct {
	Header    lipgloss.Style
	ID        lipgloss.Style
	Score     lipgloss.Style
	Highlight lipgloss.Style
	Meta      lipgloss.Style
	Dim       lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
}

// DefaultStyles returns the colored styles for TTY output.
func DefaultStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		ID:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Score:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime)),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Meta:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Warning:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
	}
}

// NoColorStyles returns unstyled output for pipes and dumb terminals.
func NoColorStyles() Styles {
	return Styles{
		Header:    lipgloss.NewStyle(),
		ID:        lipgloss.NewStyle(),
		Score:     lipgloss.NewStyle(),
		Highlight: lipgloss.NewStyle(),
		Meta:      lipgloss.NewStyle(),
		Dim:       lipgloss.NewStyle(),
		Error:     lipgloss.NewStyle(),
		Warning:   lipgloss.NewStyle(),
	}
}

// StylesFor picks styles based on whether stdout is a terminal.
// NO_COLOR is honored.
func StylesFor() Styles {
	if os.Getenv("NO_COLOR") != "" {
		return NoColorStyles()
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return NoColorStyles()
	}
	return DefaultStyles()
}
