package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alkime/jailu/internal/config"
	"github.com/alkime/jailu/internal/ingest"
	"github.com/alkime/jailu/internal/keyring"
	"github.com/alkime/jailu/internal/llm"
	"github.com/alkime/jailu/internal/locale"
	"github.com/alkime/jailu/internal/reformulate"
	"github.com/alkime/jailu/internal/tone"
	"github.com/alkime/jailu/internal/workdir"
)

var errNoInput = errors.New("no input: pass a file or pipe text on stdin")

// LLMFlags select and configure the generation provider. Empty values fall
// back to the environment, then to the system keychain for the key.
type LLMFlags struct {
	Provider string `flag:"" optional:"" help:"Generation provider (gemini, anthropic or openai)"`
	Model    string `flag:"" optional:"" help:"Model name (provider default when empty)"`
}

// settings resolves the generation client settings.
func (f LLMFlags) settings() (llm.Settings, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return llm.Settings{}, err
	}
	if f.Provider != "" {
		cfg.LLMProvider = f.Provider
	}
	if f.Model != "" {
		cfg.LLMModel = f.Model
	}

	settings, err := cfg.LLMSettings()
	if err != nil {
		return llm.Settings{}, err
	}

	if !settings.Configured() {
		settings = keyring.Resolve(settings)
		slog.Debug("API key resolved from keychain", "provider", settings.Provider, "found", settings.Configured())
	}

	return settings, nil
}

// StoreFlags locate the custom tone store.
type StoreFlags struct {
	DataDir string `flag:"" optional:"" env:"DATA_DIR" help:"Directory holding custom tones (default: user config dir)"`
}

func (f StoreFlags) dataDir() (string, error) {
	dir, err := workdir.Prep(f.DataDir)
	if err != nil {
		return "", fmt.Errorf("failed to prepare data directory: %w", err)
	}
	return dir, nil
}

func (f StoreFlags) open() (*tone.Store, error) {
	dir, err := f.dataDir()
	if err != nil {
		return nil, err
	}

	store := tone.NewStore(dir, slog.Default())
	store.Load()

	return store, nil
}

// SessionFlags select the tone and response language.
type SessionFlags struct {
	Tone string `flag:"" short:"t" default:"sarcastic" help:"Tone id: simple, sarcastic, developer, essentials-risks or a custom tone id"`
	Lang string `flag:"" short:"l" default:"fr" enum:"fr,en" help:"Response language (fr or en)"`
}

func (f SessionFlags) language() locale.Language {
	return locale.LookupOrDefault(f.Lang)
}

func (f SessionFlags) tone(store *tone.Store) (tone.Tone, error) {
	if p, ok := tone.LookupPreset(f.Tone); ok {
		return tone.Predefined(p), nil
	}
	if custom, ok := store.Find(f.Tone); ok {
		return tone.FromCustom(custom), nil
	}
	return tone.Tone{}, fmt.Errorf("unknown tone %q: run 'jailu tones list'", f.Tone)
}

// readInput loads the text to reformulate from path, or from stdin when
// path is empty. It returns the text and a label for its source.
func readInput(ctx context.Context, path string, lang locale.Language) (string, string, error) {
	if path != "" {
		f, err := ingest.FromPath(path)
		if err != nil {
			return "", "", fmt.Errorf("failed to open %s: %w", path, err)
		}

		result := ingest.NewFunnel(lang, slog.Default()).Ingest(ctx, f)
		if !result.Success {
			return "", "", errors.New(result.Error)
		}

		return result.Text, path, nil
	}

	info, err := os.Stdin.Stat()
	if err != nil {
		return "", "", fmt.Errorf("failed to inspect stdin: %w", err)
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		return "", "", errNoInput
	}

	data, err := io.ReadAll(io.LimitReader(os.Stdin, ingest.MaxFileSize+1))
	if err != nil {
		return "", "", fmt.Errorf("failed to read stdin: %w", err)
	}
	result := ingest.NewFunnel(lang, slog.Default()).Ingest(ctx, ingest.FromBytes("stdin", "text/plain", data))
	if !result.Success {
		return "", "", errors.New(result.Error)
	}

	return strings.TrimSpace(result.Text), "stdin", nil
}

// newController wires a controller for one reformulation session.
func newController(llmFlags LLMFlags, storeFlags StoreFlags, sessionFlags SessionFlags) (*reformulate.Controller, error) {
	settings, err := llmFlags.settings()
	if err != nil {
		return nil, err
	}

	store, err := storeFlags.open()
	if err != nil {
		return nil, err
	}

	selected, err := sessionFlags.tone(store)
	if err != nil {
		return nil, err
	}

	return reformulate.NewController(llm.NewClient(settings, slog.Default()),
		reformulate.WithTone(selected),
		reformulate.WithLanguage(sessionFlags.language()),
		reformulate.WithLogger(slog.Default()),
	), nil
}

// awaitSettled blocks until the controller's chain ends: a success, or a
// failure with no automatic retry pending.
func awaitSettled(ctx context.Context, ctrl *reformulate.Controller) reformulate.Snapshot {
	updates, unsubscribe := ctrl.Subscribe(8)
	defer unsubscribe()

	go ctrl.Submit(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctrl.Snapshot()
		case snap, ok := <-updates:
			if !ok {
				return ctrl.Snapshot()
			}
			if settled(snap) {
				return snap
			}
		}
	}
}

func settled(snap reformulate.Snapshot) bool {
	switch snap.State {
	case reformulate.StateSucceeded:
		return true
	case reformulate.StateFailed:
		return !snap.RetryScheduled
	default:
		return false
	}
}
