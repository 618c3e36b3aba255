package reformulate //nolint:testpackage // Tests drive unexported state

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alkime/jailu/internal/llm"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		attempt int
		want    Kind
	}{
		{name: "not configured", err: llm.ErrNotConfigured, want: KindConfiguration},
		{name: "wrapped not configured", err: fmt.Errorf("client: %w", llm.ErrNotConfigured), attempt: 3, want: KindConfiguration},
		{name: "empty response before keyword", err: llm.ErrEmptyResponse, want: KindEmptyResponse},
		{name: "rate limited", err: &llm.GenerationError{Hint: llm.HintRateLimited}, want: KindQuota},
		{name: "quota keyword", err: errors.New("Quota exceeded"), want: KindQuota},
		{name: "quota before network", err: errors.New("network rate limit"), want: KindQuota},
		{name: "network hint", err: &llm.GenerationError{Hint: llm.HintNetwork}, want: KindNetwork},
		{name: "fetch keyword", err: errors.New("Failed to FETCH"), attempt: 2, want: KindNetwork},
		{name: "network before repeated", err: errors.New("network down"), attempt: 3, want: KindNetwork},
		{name: "vide keyword", err: errors.New("texte vide"), want: KindEmptyInput},
		{name: "empty keyword", err: errors.New("input is empty"), want: KindEmptyInput},
		{name: "repeated failure", err: &llm.GenerationError{}, attempt: 3, want: KindRepeatedFailure},
		{name: "generic", err: &llm.GenerationError{}, attempt: 2, want: KindGeneric},
		{name: "cancelled", err: fmt.Errorf("stop: %w", errors.New("context canceled")), want: KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err, tt.attempt))
		})
	}
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, RetryDelay(0))
	assert.Equal(t, 2500*time.Millisecond, RetryDelay(1))
	assert.Equal(t, 3500*time.Millisecond, RetryDelay(2))
}

func TestFailure_Retryable(t *testing.T) {
	network := &Failure{Kind: KindNetwork}
	quota := &Failure{Kind: KindQuota}

	assert.True(t, network.Retryable(0))
	assert.True(t, network.Retryable(1))
	assert.False(t, network.Retryable(2))
	for attempt := 0; attempt < 5; attempt++ {
		assert.False(t, quota.Retryable(attempt))
	}
}

func TestCanRetry(t *testing.T) {
	assert.True(t, canRetry(false, true, 0))
	assert.True(t, canRetry(false, true, 2))
	assert.False(t, canRetry(false, true, 3))
	assert.False(t, canRetry(false, false, 0))
	assert.False(t, canRetry(true, true, 0))
}
