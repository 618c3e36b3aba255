// Package labeledspinner provides a spinner with a status line, an optional
// detail line and help text.
package labeledspinner

import (
	"strings"

	"github.com/alkime/jailu/internal/tui/style"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model displays a spinner next to a status line that callers may change
// while it spins.
type Model struct {
	Spinner spinner.Model
	Status  string
	Detail  string
	Help    string
}

// New creates a new labeled spinner with the given configuration.
func New(s spinner.Spinner, status, help string) Model {
	sp := spinner.New()
	sp.Spinner = s

	return Model{
		Spinner: sp,
		Status:  status,
		Help:    help,
	}
}

// Init returns the initial command for the spinner.
func (ls Model) Init() tea.Cmd {
	return ls.Spinner.Tick
}

// Update handles spinner tick messages.
func (ls Model) Update(teaMsg tea.Msg) (Model, tea.Cmd) {
	if tickMsg, ok := teaMsg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		ls.Spinner, cmd = ls.Spinner.Update(tickMsg)

		return ls, cmd
	}

	return ls, nil
}

// WithStatus returns a copy showing status and detail. An empty detail hides
// the detail line.
func (ls Model) WithStatus(status, detail string) Model {
	ls.Status = status
	ls.Detail = detail

	return ls
}

// View renders the labeled spinner.
func (ls Model) View() string {
	var sb strings.Builder

	sb.WriteString(ls.Spinner.View())
	sb.WriteString(" ")
	sb.WriteString(style.Status.Render(ls.Status))
	sb.WriteString("\n\n")

	if ls.Detail != "" {
		sb.WriteString(style.Detail.Render(ls.Detail))
		sb.WriteString("\n\n")
	}

	if ls.Help != "" {
		sb.WriteString(style.Help.Render(ls.Help))
	}

	return sb.String()
}
