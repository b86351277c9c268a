package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color definitions using AdaptiveColor for automatic light/dark mode switching
var (
	ErrorColor = lipgloss.AdaptiveColor{
		Light: "#DC3545", // Red
		Dark:  "#FF6B7D",
	}

	WarningColor = lipgloss.AdaptiveColor{
		Light: "#FFC107", // Amber
		Dark:  "#FFD54F",
	}

	InfoColor = lipgloss.AdaptiveColor{
		Light: "#17A2B8", // Cyan
		Dark:  "#4DD0E1",
	}

	HeadingColor = lipgloss.AdaptiveColor{
		Light: "#212529",
		Dark:  "#F8F9FA",
	}

	PathColor = lipgloss.AdaptiveColor{
		Light: "#6C757D",
		Dark:  "#A0A8B0",
	}
)

// Styles groups the lipgloss styles bound to one output renderer
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Heading lipgloss.Style
	Path    lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles builds styles for w. Plain formats get the ASCII profile so no
// escape sequences are emitted.
func NewStyles(w io.Writer, format Format) Styles {
	renderer := lipgloss.NewRenderer(w)
	if format != FormatTerminal {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return Styles{
		Error:   renderer.NewStyle().Foreground(ErrorColor).Bold(true),
		Warning: renderer.NewStyle().Foreground(WarningColor).Bold(true),
		Info:    renderer.NewStyle().Foreground(InfoColor),
		Heading: renderer.NewStyle().Foreground(HeadingColor).Bold(true),
		Path:    renderer.NewStyle().Foreground(PathColor).Italic(true),
		Muted:   renderer.NewStyle().Faint(true),
	}
}
