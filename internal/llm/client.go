// Package llm sends one reformulation request to a hosted text generation
// provider and reports the outcome as text, a configuration error, an empty
// response error or an opaque generation failure.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Provider names a supported generation backend.
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// Providers lists the supported backends, default first.
func Providers() []Provider {
	return []Provider{ProviderGemini, ProviderAnthropic, ProviderOpenAI}
}

// ParseProvider resolves a provider name; an empty name selects Gemini.
func ParseProvider(name string) (Provider, error) {
	switch Provider(strings.ToLower(strings.TrimSpace(name))) {
	case "", ProviderGemini:
		return ProviderGemini, nil
	case ProviderAnthropic:
		return ProviderAnthropic, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

// Fixed sampling configuration shared by every provider.
const (
	temperature    = 0.7
	topP           = 0.95
	topK           = 64
	thinkingBudget = 0
	maxTokens      = 4096
)

// Settings is the explicitly injected configuration of a Client.
type Settings struct {
	Provider Provider
	APIKey   string
	// Model overrides the provider's default model when set.
	Model string
	// BaseURL overrides the provider endpoint when set.
	BaseURL string
}

// Configured reports whether an API key is present.
func (s Settings) Configured() bool {
	return strings.TrimSpace(s.APIKey) != ""
}

type provider interface {
	generate(ctx context.Context, systemInstruction, userPrompt string) (string, error)
}

// Client performs single generation calls. It never retries.
type Client struct {
	settings Settings
	logger   *slog.Logger
}

// NewClient creates a new generation client. A nil logger uses slog.Default().
func NewClient(settings Settings, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if settings.Provider == "" {
		settings.Provider = ProviderGemini
	}

	return &Client{
		settings: settings,
		logger:   logger,
	}
}

// Settings returns the client's configuration.
func (c *Client) Settings() Settings {
	return c.settings
}

// Generate sends systemInstruction and userPrompt to the provider and returns
// the first non-empty text verbatim.
func (c *Client) Generate(ctx context.Context, systemInstruction, userPrompt string) (string, error) {
	if !c.settings.Configured() {
		return "", ErrNotConfigured
	}

	p, err := c.newProvider(ctx)
	if err != nil {
		c.logger.Error("Failed to create generation client",
			"provider", c.settings.Provider,
			"error", err,
		)
		return "", &GenerationError{Hint: HintNone}
	}

	text, err := p.generate(ctx, systemInstruction, userPrompt)
	switch {
	case errors.Is(err, ErrEmptyResponse):
		c.logger.Warn("Generation provider returned no text", "provider", c.settings.Provider)
		return "", ErrEmptyResponse
	case err != nil && ctx.Err() != nil:
		c.logger.Debug("Generation request cancelled", "provider", c.settings.Provider)
		return "", ctx.Err()
	case err != nil:
		hint := hintFor(err)
		c.logger.Error("Generation request failed",
			"provider", c.settings.Provider,
			"hint", hint,
			"error", err,
		)
		return "", &GenerationError{Hint: hint}
	}

	c.logger.Debug("Generation request succeeded",
		"provider", c.settings.Provider,
		"length", len(text),
	)

	return text, nil
}

func (c *Client) newProvider(ctx context.Context) (provider, error) {
	switch c.settings.Provider {
	case ProviderGemini:
		return newGemini(ctx, c.settings)
	case ProviderAnthropic:
		return newAnthropic(c.settings), nil
	case ProviderOpenAI:
		return newOpenAI(c.settings), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, c.settings.Provider)
	}
}

// DefaultModel returns the model used by a provider when Settings.Model is empty.
func DefaultModel(p Provider) string {
	switch p {
	case ProviderAnthropic:
		return defaultAnthropicModel
	case ProviderOpenAI:
		return defaultOpenAIModel
	default:
		return defaultGeminiModel
	}
}

func modelOrDefault(s Settings) string {
	if s.Model != "" {
		return s.Model
	}
	return DefaultModel(s.Provider)
}
