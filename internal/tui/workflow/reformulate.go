// Package workflow implements the interactive reformulation screen: it
// drives a reformulate.Controller and renders its snapshots.
package workflow

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alkime/jailu/internal/editor"
	"github.com/alkime/jailu/internal/locale"
	"github.com/alkime/jailu/internal/reformulate"
	"github.com/alkime/jailu/internal/tui/components/labeledspinner"
	"github.com/alkime/jailu/internal/tui/style"
	"github.com/alkime/jailu/pkg/collections"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Renderer formats reformulated Markdown for the terminal.
type Renderer interface {
	Render(markdown string, width int) (string, error)
}

// EditorLauncher opens a file in an external editor. The returned command
// must produce an EditorClosedMsg for path.
type EditorLauncher interface {
	Launch(path string) tea.Cmd
}

// EditorClosedMsg reports that the external editor exited.
type EditorClosedMsg struct {
	Path string
	Err  error
}

// execLauncher suspends the program and runs $EDITOR.
type execLauncher struct{}

func (execLauncher) Launch(path string) tea.Cmd {
	return tea.ExecProcess(editor.Command(path), func(err error) tea.Msg {
		return EditorClosedMsg{Path: path, Err: err}
	})
}

// Config configures the reformulation screen.
type Config struct {
	// Controller is owned by the caller, who closes it once the program exits.
	Controller *reformulate.Controller
	Renderer   Renderer
	// Source names where the input came from (file path or "stdin").
	Source string
	// Editor defaults to $EDITOR.
	Editor EditorLauncher
}

// maxViewportHeight keeps long outputs scrollable on tall terminals.
const maxViewportHeight = 60

// snapshotMsg carries a controller update; ok is false once the
// subscription is closed.
type snapshotMsg struct {
	snap reformulate.Snapshot
	ok   bool
}

type retryRejectedMsg struct {
	err error
}

type reformulatePhase struct {
	ctx         context.Context
	cancel      context.CancelFunc
	ctrl        *reformulate.Controller
	updates     <-chan reformulate.Snapshot
	unsubscribe func()
	renderer    Renderer
	editor      EditorLauncher
	source      string

	keys     KeyMap
	spinner  labeledspinner.Model
	viewport viewport.Model

	snap   reformulate.Snapshot
	width  int
	height int
}

// NewReformulatePhase creates the screen and submits the controller's
// current input as soon as the program starts.
func NewReformulatePhase(cfg Config) tea.Model {
	ctx, cancel := context.WithCancel(context.Background())
	updates, unsubscribe := cfg.Controller.Subscribe(8)
	snap := cfg.Controller.Snapshot()

	var launcher EditorLauncher = execLauncher{}
	if cfg.Editor != nil {
		launcher = cfg.Editor
	}

	return &reformulatePhase{
		ctx:         ctx,
		cancel:      cancel,
		ctrl:        cfg.Controller,
		updates:     updates,
		unsubscribe: unsubscribe,
		renderer:    cfg.Renderer,
		editor:      launcher,
		source:      cfg.Source,
		keys:        DefaultKeyMap(),
		spinner:     labeledspinner.New(spinner.Pulse, "", ""),
		viewport:    viewport.New(76, 16),
		snap:        snap,
		width:       80,
		height:      24,
	}
}

func (rp *reformulatePhase) Init() tea.Cmd {
	return tea.Batch(
		rp.spinner.Init(),
		rp.listenCmd(),
		rp.submitCmd(),
	)
}

func (rp *reformulatePhase) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case tea.WindowSizeMsg:
		rp.width = msg.Width
		rp.height = msg.Height
		rp.resizeViewport()
		rp.renderOutput()

		return rp, nil

	case snapshotMsg:
		if !msg.ok {
			return rp, nil
		}
		return rp, tea.Batch(rp.applySnapshot(msg.snap), rp.listenCmd())

	case EditorClosedMsg:
		return rp, rp.handleEditorClosed(msg)

	case retryRejectedMsg:
		slog.Debug("Retry rejected", "error", msg.err)
		return rp, nil

	case tea.KeyMsg:
		return rp.handleKeyMsg(msg)
	}

	var cmd tea.Cmd
	if rp.snap.Loading {
		rp.spinner, cmd = rp.spinner.Update(teaMsg)
		return rp, cmd
	}

	rp.viewport, cmd = rp.viewport.Update(teaMsg)

	return rp, cmd
}

func (rp *reformulatePhase) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, rp.keys.Quit), key.Matches(msg, rp.keys.ForceQuit):
		rp.cancel()
		rp.unsubscribe()

		return rp, tea.Quit

	case key.Matches(msg, rp.keys.Retry):
		if rp.snap.Error != nil && rp.snap.CanRetry {
			return rp, rp.retryCmd()
		}

	case key.Matches(msg, rp.keys.Dismiss):
		if rp.snap.Error != nil {
			rp.ctrl.DismissError()
		}

	case key.Matches(msg, rp.keys.Submit):
		if !rp.snap.Loading {
			return rp, rp.submitCmd()
		}

	case key.Matches(msg, rp.keys.Edit):
		if !rp.snap.Loading {
			return rp, rp.editCmd()
		}
	}

	if rp.snap.State == reformulate.StateSucceeded {
		var cmd tea.Cmd
		rp.viewport, cmd = rp.viewport.Update(msg)

		return rp, cmd
	}

	return rp, nil
}

// applySnapshot stores snap and restarts the spinner when loading begins.
func (rp *reformulatePhase) applySnapshot(snap reformulate.Snapshot) tea.Cmd {
	outputChanged := snap.Output != rp.snap.Output
	startedLoading := snap.Loading && !rp.snap.Loading

	rp.snap = snap
	rp.spinner = rp.spinner.WithStatus(snap.StatusMessage, snap.AttemptLabel)

	if outputChanged {
		rp.renderOutput()
	}
	if startedLoading {
		return rp.spinner.Spinner.Tick
	}

	return nil
}

func (rp *reformulatePhase) View() string {
	var sb strings.Builder

	sb.WriteString(rp.headerView())
	sb.WriteString("\n\n")

	switch {
	case rp.snap.Loading:
		sb.WriteString(rp.spinner.View())
		sb.WriteString("\n")
		sb.WriteString(renderGlobalKeyHelp(rp.keys))

	case rp.snap.Error != nil:
		sb.WriteString(rp.errorView())

	case rp.snap.State == reformulate.StateSucceeded:
		sb.WriteString(style.Output.Render(rp.viewport.View()))
		sb.WriteString("\n\n")
		sb.WriteString(renderKeyHelp(rp.keys.Submit, " "))
		sb.WriteString(renderKeyHelp(rp.keys.Edit, "\n"))
		sb.WriteString(renderGlobalKeyHelp(rp.keys))

	default:
		sb.WriteString(style.Muted.Render("Nothing to reformulate yet."))
		sb.WriteString("\n\n")
		sb.WriteString(renderKeyHelp(rp.keys.Submit, " "))
		sb.WriteString(renderKeyHelp(rp.keys.Edit, "\n"))
		sb.WriteString(renderGlobalKeyHelp(rp.keys))
	}

	return sb.String()
}

func (rp *reformulatePhase) headerView() string {
	lang := locale.LookupOrDefault(string(rp.snap.Language))
	selected := rp.ctrl.Tone()

	var sb strings.Builder
	sb.WriteString(style.Title.Render("=== J'ai lu les CGU ==="))
	sb.WriteString("\n")
	sb.WriteString(style.Label.Render("Tone: "))
	sb.WriteString(selected.DisplayName(lang.Code))
	sb.WriteString("  ")
	sb.WriteString(style.Label.Render("Language: "))
	sb.WriteString(lang.Label)
	if rp.source != "" {
		sb.WriteString("  ")
		sb.WriteString(style.Label.Render("Source: "))
		sb.WriteString(style.Muted.Render(rp.source))
	}

	return sb.String()
}

func (rp *reformulatePhase) errorView() string {
	var sb strings.Builder

	sb.WriteString(style.Failure.Render("✗ " + rp.snap.Error.Message))
	sb.WriteString("\n\n")

	if rp.snap.RetryScheduled {
		msgs := locale.LookupOrDefault(string(rp.snap.Language)).Messages()
		sb.WriteString(style.Pending.Render(msgs.AutomaticAttempt(rp.snap.RetryCount+2, reformulate.MaxAttempts)))
		sb.WriteString("\n\n")
	}

	if rp.snap.CanRetry {
		retry := rp.keys.Retry
		retry.SetHelp(retry.Help().Key, rp.snap.RetryLabel)
		sb.WriteString(renderKeyHelp(retry, " "))
	}
	sb.WriteString(renderKeyHelp(rp.keys.Dismiss, " "))
	sb.WriteString(renderKeyHelp(rp.keys.Edit, "\n"))
	sb.WriteString(renderGlobalKeyHelp(rp.keys))

	return sb.String()
}

func (rp *reformulatePhase) resizeViewport() {
	headerHeight := 4
	footerHeight := 4

	rp.viewport.Width = max(rp.width-4, 10)
	rp.viewport.Height = collections.Clamp(rp.height-headerHeight-footerHeight, 5, maxViewportHeight)
}

// renderOutput formats the latest output into the viewport, falling back
// to the raw Markdown when rendering fails.
func (rp *reformulatePhase) renderOutput() {
	if rp.snap.Output == "" {
		rp.viewport.SetContent("")
		return
	}

	rendered := rp.snap.Output
	if rp.renderer != nil {
		out, err := rp.renderer.Render(rp.snap.Output, rp.viewport.Width)
		if err != nil {
			slog.Warn("Markdown rendering failed, showing raw output", "error", err)
		} else {
			rendered = out
		}
	}

	rp.viewport.SetContent(rendered)
	rp.viewport.GotoTop()
}

// editCmd opens the current input in the editor.
func (rp *reformulatePhase) editCmd() tea.Cmd {
	path, err := editor.WriteDraft(rp.snap.Input)
	if err != nil {
		slog.Error("Failed to prepare draft for editing", "error", err)
		return nil
	}

	return rp.editor.Launch(path)
}

// handleEditorClosed loads the edited draft and submits it when it changed.
func (rp *reformulatePhase) handleEditorClosed(msg EditorClosedMsg) tea.Cmd {
	text, err := editor.ReadDraft(msg.Path)
	if msg.Err != nil || err != nil {
		slog.Error("Editing input failed", "editor_error", msg.Err, "error", err)
		return nil
	}

	if text == rp.snap.Input {
		return nil
	}

	rp.ctrl.SetInput(text)

	return rp.submitCmd()
}

func (rp *reformulatePhase) listenCmd() tea.Cmd {
	updates := rp.updates
	return func() tea.Msg {
		snap, ok := <-updates
		return snapshotMsg{snap: snap, ok: ok}
	}
}

func (rp *reformulatePhase) submitCmd() tea.Cmd {
	ctx, ctrl := rp.ctx, rp.ctrl
	return func() tea.Msg {
		ctrl.Submit(ctx)
		return nil
	}
}

func (rp *reformulatePhase) retryCmd() tea.Cmd {
	ctx, ctrl := rp.ctx, rp.ctrl
	return func() tea.Msg {
		if _, err := ctrl.Retry(ctx); err != nil {
			return retryRejectedMsg{err: err}
		}
		return nil
	}
}
