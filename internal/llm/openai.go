package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

var defaultOpenAIModel = string(openai.ChatModelGPT4oMini)

// openaiProvider sets temperature and top-p; the chat API has no top-k.
type openaiProvider struct {
	client openai.Client
	model  openai.ChatModel
}

func newOpenAI(s Settings) *openaiProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(s.APIKey),
		option.WithMaxRetries(0),
	}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}

	return &openaiProvider{
		client: openai.NewClient(opts...),
		model:  openai.ChatModel(modelOrDefault(s)),
	}
}

func (o *openaiProvider) generate(ctx context.Context, systemInstruction, userPrompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if systemInstruction != "" {
		messages = append(messages, openai.SystemMessage(systemInstruction))
	}
	messages = append(messages, openai.UserMessage(userPrompt))

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       o.model,
		Messages:    messages,
		Temperature: openai.Float(temperature),
		TopP:        openai.Float(topP),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate via OpenAI API: %w", err)
	}

	for _, choice := range resp.Choices {
		if strings.TrimSpace(choice.Message.Content) != "" {
			return choice.Message.Content, nil
		}
	}

	return "", ErrEmptyResponse
}
