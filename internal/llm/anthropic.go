package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

var defaultAnthropicModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

// anthropicProvider sets temperature and top-k; extended thinking stays off.
type anthropicProvider struct {
	client anthropic.Client
	model  anthropic.Model
}

func newAnthropic(s Settings) *anthropicProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(s.APIKey),
		option.WithMaxRetries(0),
	}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}

	return &anthropicProvider{
		client: anthropic.NewClient(opts...),
		model:  anthropic.Model(modelOrDefault(s)),
	}
}

func (a *anthropicProvider) generate(ctx context.Context, systemInstruction, userPrompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
		Temperature: anthropic.Float(temperature),
		TopK:        anthropic.Int(topK),
	}
	if systemInstruction != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemInstruction},
		}
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to generate via Anthropic API: %w", err)
	}

	for _, block := range resp.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok && strings.TrimSpace(textBlock.Text) != "" {
			return textBlock.Text, nil
		}
	}

	return "", ErrEmptyResponse
}
