package llm //nolint:testpackage // Needs access to unexported hint mapping

import (
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestHintFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Hint
	}{
		{
			name: "transport error",
			err: fmt.Errorf("wrapped: %w", &url.Error{
				Op:  "Post",
				URL: "https://example.invalid",
				Err: errors.New("dial tcp: connection refused"),
			}),
			want: HintNetwork,
		},
		{name: "gemini quota", err: fmt.Errorf("wrapped: %w", genai.APIError{Code: 429}), want: HintRateLimited},
		{name: "gemini unavailable", err: genai.APIError{Code: 503}, want: HintNetwork},
		{name: "gemini bad request", err: genai.APIError{Code: 400}, want: HintNone},
		{name: "anthropic rate limit", err: fmt.Errorf("wrapped: %w", &anthropic.Error{StatusCode: 429}), want: HintRateLimited},
		{name: "anthropic gateway timeout", err: &anthropic.Error{StatusCode: 504}, want: HintNetwork},
		{name: "openai rate limit", err: &openai.Error{StatusCode: 429}, want: HintRateLimited},
		{name: "openai server error", err: &openai.Error{StatusCode: 500}, want: HintNone},
		{name: "plain error", err: errors.New("boom"), want: HintNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, hintFor(tt.err))
		})
	}
}

func TestGenerationError_Message(t *testing.T) {
	assert.Equal(t, "generation failed", (&GenerationError{}).Error())
	assert.Equal(t, "generation failed: rate limited", (&GenerationError{Hint: HintRateLimited}).Error())
	assert.Equal(t, "generation failed: network unavailable", (&GenerationError{Hint: HintNetwork}).Error())
}
