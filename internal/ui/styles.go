package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pthm/ideadensity/internal/proposition"
)

// Styles contains all lipgloss styles for terminal output
type Styles struct {
	enabled bool

	// Proposition kind styles
	Predication  lipgloss.Style
	Modification lipgloss.Style
	Connective   lipgloss.Style
	Apposition   lipgloss.Style
	What         lipgloss.Style

	// Status styles
	Warning lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style

	// Structural styles
	Header    lipgloss.Style
	Subheader lipgloss.Style
	Path      lipgloss.Style
	Label     lipgloss.Style
	Separator lipgloss.Style

	// Icons (degraded to ASCII when not interactive)
	IconWarning string
	IconSuccess string
	IconError   string
	IconRef     string
}

// NewStyles creates a new Styles instance
// When enabled is false, styles return text unchanged (for non-TTY output)
func NewStyles(enabled bool) *Styles {
	s := &Styles{enabled: enabled}

	if enabled {
		s.Predication = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Green
		s.Modification = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // Cyan
		s.Connective = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))   // Magenta
		s.Apposition = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))   // Blue
		s.What = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))         // Yellow

		s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
		s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

		s.Header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")) // White bold
		s.Subheader = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))          // Gray
		s.Path = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		s.Label = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
		s.Separator = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

		s.IconWarning = "⚠"
		s.IconSuccess = "✓"
		s.IconError = "✗"
		s.IconRef = "→"
	} else {
		// No-op styles for non-TTY (plain text output)
		plain := lipgloss.NewStyle()
		s.Predication = plain
		s.Modification = plain
		s.Connective = plain
		s.Apposition = plain
		s.What = plain

		s.Warning = plain
		s.Success = plain
		s.Error = plain

		s.Header = plain
		s.Subheader = plain
		s.Path = plain
		s.Label = plain
		s.Separator = plain

		// ASCII fallback icons
		s.IconWarning = "WARN:"
		s.IconSuccess = "OK:"
		s.IconError = "ERROR:"
		s.IconRef = "->"
	}

	return s
}

// Enabled returns whether styling is enabled
func (s *Styles) Enabled() bool {
	return s.enabled
}

// Kind returns the style for a proposition kind
func (s *Styles) Kind(k proposition.Kind) lipgloss.Style {
	switch k {
	case proposition.Predication:
		return s.Predication
	case proposition.Modification:
		return s.Modification
	case proposition.Connective:
		return s.Connective
	case proposition.Apposition:
		return s.Apposition
	case proposition.What:
		return s.What
	default:
		return s.Subheader
	}
}
