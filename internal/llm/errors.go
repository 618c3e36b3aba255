package llm

import (
	"errors"
	"net"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
	"google.golang.org/genai"
)

var (
	// ErrNotConfigured is returned before any request is built when no API key is set.
	ErrNotConfigured = errors.New("API key required: set API_KEY or run 'jailu config set-key'")

	// ErrEmptyResponse is returned when the provider answered without any text.
	ErrEmptyResponse = errors.New("empty response from generation provider")

	// ErrUnknownProvider is returned for a provider name outside the supported set.
	ErrUnknownProvider = errors.New("unknown generation provider")
)

// Hint is a coarse description of a transport failure. It is the only part of
// a provider failure that reaches callers.
type Hint string

const (
	HintNone        Hint = ""
	HintRateLimited Hint = "rate limited"
	HintNetwork     Hint = "network unavailable"
)

// GenerationError reports a failed provider call without exposing its cause.
type GenerationError struct {
	Hint Hint
}

func (e *GenerationError) Error() string {
	if e.Hint == HintNone {
		return "generation failed"
	}
	return "generation failed: " + string(e.Hint)
}

// hintFor maps a provider or transport error to a Hint.
func hintFor(err error) Hint {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return HintNetwork
	}

	switch statusCode(err) {
	case http.StatusTooManyRequests:
		return HintRateLimited
	case http.StatusRequestTimeout,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return HintNetwork
	default:
		return HintNone
	}
}

// statusCode extracts the HTTP status of a provider API error, or 0.
func statusCode(err error) int {
	var geminiErr genai.APIError
	if errors.As(err, &geminiErr) {
		return geminiErr.Code
	}
	var geminiErrPtr *genai.APIError
	if errors.As(err, &geminiErrPtr) && geminiErrPtr != nil {
		return geminiErrPtr.Code
	}

	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return anthropicErr.StatusCode
	}

	var openaiErr *openai.Error
	if errors.As(err, &openaiErr) {
		return openaiErr.StatusCode
	}

	return 0
}
