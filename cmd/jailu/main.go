package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/alkime/jailu/internal/keyring"
	"github.com/alkime/jailu/internal/llm"
	"github.com/alkime/jailu/internal/locale"
	"github.com/alkime/jailu/internal/logger"
	"github.com/alkime/jailu/internal/prompt"
	"github.com/alkime/jailu/internal/reformulate"
	"github.com/alkime/jailu/internal/tone"
	"github.com/alkime/jailu/internal/tui/render"
	"github.com/alkime/jailu/internal/tui/workflow"
	tea "github.com/charmbracelet/bubbletea"
)

// CLI defines the jailu command structure.
type CLI struct {
	Debug bool `flag:"" help:"Enable debug logging"`

	// Default TUI command (runs when no subcommand given)
	TUI TUICmd `cmd:"" default:"withargs" help:"Reformulate a document in the terminal UI"`

	// Subcommands
	Reformulate ReformulateCmd `cmd:"" help:"Reformulate a document and print the result"`
	Tones       TonesCmd       `cmd:"" help:"Manage custom tones"`
	Config      ConfigCmd      `cmd:"" help:"Manage configuration"`
}

// TUICmd is the default command that runs the TUI.
type TUICmd struct {
	File  string `arg:"" optional:"" type:"existingfile" help:"Document to reformulate (PDF, DOC, DOCX, TXT, MD, CSV); stdin when omitted"`
	Style string `flag:"" default:"auto" help:"Markdown style (auto, dark, light, notty)"`

	LLMFlags     `embed:""`
	StoreFlags   `embed:""`
	SessionFlags `embed:""`
}

// Run executes the TUI command.
func (c *TUICmd) Run(cli *CLI) error {
	logFile, err := openLogFile(c.StoreFlags)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger.SetupCLI(logFile, cli.level())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	text, source, err := readInput(ctx, c.File, c.language())
	if err != nil {
		return err
	}

	ctrl, err := newController(c.LLMFlags, c.StoreFlags, c.SessionFlags)
	if err != nil {
		return err
	}
	defer ctrl.Close()
	ctrl.SetInput(text)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if c.File == "" {
		// stdin carried the document; read keys from the terminal instead
		opts = append(opts, tea.WithInputTTY())
	}

	p := tea.NewProgram(workflow.NewReformulatePhase(workflow.Config{
		Controller: ctrl,
		Renderer:   render.New(c.Style),
		Source:     source,
	}), opts...)

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if final != nil {
		if snap := ctrl.Snapshot(); snap.State == reformulate.StateSucceeded {
			fmt.Println(snap.Output)
		}
	}

	return nil
}

// ReformulateCmd reformulates a document without the interactive UI.
type ReformulateCmd struct {
	File  string `arg:"" optional:"" type:"existingfile" help:"Document to reformulate; stdin when omitted"`
	Raw   bool   `flag:"" help:"Print Markdown as returned, without terminal rendering"`
	Style string `flag:"" default:"auto" help:"Markdown style (auto, dark, light, notty)"`
	Width int    `flag:"" default:"80" help:"Word-wrap width for rendered output"`

	LLMFlags     `embed:""`
	StoreFlags   `embed:""`
	SessionFlags `embed:""`
}

// Run executes the reformulate command.
func (c *ReformulateCmd) Run(cli *CLI) error {
	logger.SetupCLI(os.Stderr, cli.level())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	text, _, err := readInput(ctx, c.File, c.language())
	if err != nil {
		return err
	}

	ctrl, err := newController(c.LLMFlags, c.StoreFlags, c.SessionFlags)
	if err != nil {
		return err
	}
	defer ctrl.Close()
	ctrl.SetInput(text)

	snap := awaitSettled(ctx, ctrl)
	if snap.Error != nil {
		return snap.Error
	}
	if snap.State != reformulate.StateSucceeded {
		return ctx.Err()
	}

	out := snap.Output
	if !c.Raw {
		rendered, err := render.New(c.Style).Render(snap.Output, c.Width)
		if err != nil {
			slog.Warn("Markdown rendering failed, printing raw output", "error", err)
		} else {
			out = rendered
		}
	}

	fmt.Println(out)

	return nil
}

// TonesCmd groups custom tone subcommands.
type TonesCmd struct {
	List   TonesListCmd   `cmd:"" help:"List predefined and custom tones"`
	Add    TonesAddCmd    `cmd:"" help:"Create a custom tone"`
	Delete TonesDeleteCmd `cmd:"" help:"Delete a custom tone"`
}

// TonesListCmd lists tones.
type TonesListCmd struct {
	Lang string `flag:"" short:"l" default:"fr" enum:"fr,en" help:"Display language"`

	StoreFlags `embed:""`
}

// Run executes the tones list command.
func (c *TonesListCmd) Run(cli *CLI) error {
	logger.SetupCLI(os.Stderr, cli.level())

	store, err := c.open()
	if err != nil {
		return err
	}

	lang := locale.LookupOrDefault(c.Lang)
	defaultID := tone.Default().ID()

	for _, p := range tone.Presets() {
		marker := " "
		if string(p.ID) == defaultID {
			marker = "*"
		}
		fmt.Printf("%s %-18s %s\n", marker, p.ID, p.DisplayName(lang.Code))
	}

	custom := store.List()
	if len(custom) == 0 {
		fmt.Println("\nNo custom tones. Run 'jailu tones add <name>' to create one.")
		return nil
	}

	fmt.Println()
	for _, ct := range custom {
		fmt.Printf("  %-18s %s\n", ct.ID, ct.Name)
	}

	return nil
}

// TonesAddCmd creates a custom tone with a generated description.
type TonesAddCmd struct {
	Name string `arg:"" help:"Tone name (3 to 50 characters)"`
	Lang string `flag:"" short:"l" default:"fr" enum:"fr,en" help:"Language for validation messages"`

	LLMFlags   `embed:""`
	StoreFlags `embed:""`
}

// Run executes the tones add command.
func (c *TonesAddCmd) Run(cli *CLI) error {
	logger.SetupCLI(os.Stderr, cli.level())

	msgs := locale.LookupOrDefault(c.Lang).Messages()
	name, err := tone.ValidateName(c.Name)
	if err != nil {
		return errors.New(tone.ValidationMessage(err, msgs))
	}

	settings, err := c.settings()
	if err != nil {
		return err
	}

	store, err := c.open()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	description := prompt.DescribeTone(ctx, llm.NewClient(settings, slog.Default()), name)
	custom, err := tone.NewCustom(name, description, time.Now())
	if err != nil {
		return errors.New(tone.ValidationMessage(err, msgs))
	}
	store.Add(custom)

	fmt.Printf("Created tone %q (%s)\n", custom.Name, custom.ID)

	return nil
}

// TonesDeleteCmd removes a custom tone.
type TonesDeleteCmd struct {
	ID string `arg:"" help:"Custom tone id (see 'jailu tones list')"`

	StoreFlags `embed:""`
}

// Run executes the tones delete command.
func (c *TonesDeleteCmd) Run(cli *CLI) error {
	logger.SetupCLI(os.Stderr, cli.level())

	store, err := c.open()
	if err != nil {
		return err
	}

	if _, ok := store.Find(c.ID); !ok {
		return fmt.Errorf("no custom tone with id %q", c.ID)
	}
	store.Remove(c.ID)

	fmt.Printf("Deleted tone %s\n", c.ID)

	return nil
}

// ConfigCmd groups configuration-related subcommands.
type ConfigCmd struct {
	SetKey    SetKeyCmd    `cmd:"" help:"Store an API key in system keychain"`
	DeleteKey DeleteKeyCmd `cmd:"" help:"Remove an API key from system keychain"`
	ListKeys  ListKeysCmd  `cmd:"" name:"list-keys" help:"Show which API keys are configured"`
}

// SetKeyCmd stores an API key in the system keychain.
type SetKeyCmd struct {
	Provider string `arg:"" enum:"gemini,anthropic,openai" help:"Provider name (gemini, anthropic or openai)"`
	Secret   string `arg:"" help:"API key value"`
}

// Run executes the set-key command.
func (c *SetKeyCmd) Run() error {
	if strings.TrimSpace(c.Secret) == "" {
		return errors.New("API key cannot be empty")
	}

	provider, err := llm.ParseProvider(c.Provider)
	if err != nil {
		return fmt.Errorf("invalid provider: %w", err)
	}

	if err := keyring.Set(provider, strings.TrimSpace(c.Secret)); err != nil {
		return fmt.Errorf("failed to store API key: %w", err)
	}

	fmt.Printf("%s API key stored in keychain\n", provider)

	return nil
}

// DeleteKeyCmd removes an API key from the system keychain.
type DeleteKeyCmd struct {
	Provider string `arg:"" enum:"gemini,anthropic,openai" help:"Provider name (gemini, anthropic or openai)"`
}

// Run executes the delete-key command.
func (c *DeleteKeyCmd) Run() error {
	provider, err := llm.ParseProvider(c.Provider)
	if err != nil {
		return fmt.Errorf("invalid provider: %w", err)
	}

	if err := keyring.Delete(provider); err != nil {
		return fmt.Errorf("failed to delete API key: %w", err)
	}

	fmt.Printf("%s API key removed from keychain\n", provider)

	return nil
}

// ListKeysCmd shows which API keys are configured.
type ListKeysCmd struct{}

// Run executes the list-keys command.
//
//nolint:unparam // error return required by Kong interface
func (c *ListKeysCmd) Run() error {
	anySet := false

	for _, provider := range llm.Providers() {
		if keyring.IsSet(provider) {
			fmt.Printf("%s: configured\n", provider)
			anySet = true
		} else {
			fmt.Printf("%s: not set\n", provider)
		}
	}

	if !anySet {
		fmt.Println("\nRun 'jailu config set-key <provider> <key>' to configure.")
	}

	return nil
}

func (cli *CLI) level() slog.Level {
	if cli.Debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// openLogFile opens the log file used while the TUI owns the terminal.
func openLogFile(f StoreFlags) (*os.File, error) {
	dir, err := f.dataDir()
	if err != nil {
		return nil, err
	}

	//nolint:gosec // Log file path is derived from the data directory
	file, err := os.OpenFile(filepath.Join(dir, "jailu.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return file, nil
}

func main() {
	// Set up text-based logger for CLI output
	logger.SetupCLI(os.Stderr, slog.LevelInfo)

	cli := &CLI{} //nolint:exhaustruct // Kong fills in command fields
	ctx := kong.Parse(cli,
		kong.Name("jailu"),
		kong.Description("Turn terms of service and contracts into plain language."),
		kong.UsageOnError(),
	)
	err := ctx.Run(cli)
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}
