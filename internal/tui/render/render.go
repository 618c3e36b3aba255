// Package render turns reformulated Markdown into terminal output.
package render

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// Styles accepted by New besides glamour's standard style names.
const (
	StyleAuto  = "auto"
	StylePlain = "notty"
)

// defaultWidth is used when the terminal width is unknown.
const defaultWidth = 80

// Markdown renders Markdown with a fixed glamour style.
type Markdown struct {
	style string
}

// New returns a renderer for the named style; empty means StyleAuto.
func New(style string) *Markdown {
	if style == "" {
		style = StyleAuto
	}
	return &Markdown{style: style}
}

// Render word-wraps text at width columns.
func (m *Markdown) Render(text string, width int) (string, error) {
	if width <= 0 {
		width = defaultWidth
	}

	styleOpt := glamour.WithStandardStyle(m.style)
	if m.style == StyleAuto {
		styleOpt = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := r.Render(text)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return out, nil
}
