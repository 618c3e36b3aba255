// Package style defines lipgloss styles for the TUI.
package style

import "github.com/charmbracelet/lipgloss"

// Palette shared by the styles below.
var (
	accent = lipgloss.Color("205")
	frame  = lipgloss.Color("62")
	dim    = lipgloss.Color("241")
)

// Styles are package-level values; lipgloss styles are safe for concurrent use.
// Names omit a "Style" suffix since they are read as style.Title, style.Key.
var (
	// Title is used for the screen header.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(accent)

	// Status is the rotating message shown while a request is in flight.
	Status = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("63"))

	// Detail is used for the automatic attempt indicator.
	Detail = lipgloss.NewStyle().
		Foreground(dim).
		Italic(true)

	// Failure renders classified error messages.
	Failure = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	// Pending marks an automatic retry waiting on its delay.
	Pending = lipgloss.NewStyle().
		Foreground(lipgloss.Color("214"))

	// Output frames the reformulated text.
	Output = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(frame).
		Padding(0, 1)

	// Help is used for keyboard shortcut hints.
	Help = lipgloss.NewStyle().
		Foreground(dim)

	// Key highlights keyboard keys inside help text.
	Key = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	// Label is used for inline labels (e.g., "Tone:", "Source:").
	Label = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255"))

	// Muted is used for de-emphasized text such as file paths.
	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))
)
