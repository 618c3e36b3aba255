package reformulate

import (
	"errors"
	"strings"
	"time"

	"github.com/alkime/jailu/internal/llm"
	"github.com/alkime/jailu/internal/locale"
)

// Kind classifies a failed attempt.
type Kind string

const (
	KindEmptyInput      Kind = "empty_input"
	KindConfiguration   Kind = "configuration"
	KindEmptyResponse   Kind = "empty_response"
	KindNetwork         Kind = "network"
	KindQuota           Kind = "quota"
	KindRepeatedFailure Kind = "repeated_failure"
	KindGeneric         Kind = "generic"
)

const (
	// MaxAttempts caps the retry counter; manual retry is offered below it.
	MaxAttempts = 3

	// maxAutoRetryAttempt is the first attempt number that no longer
	// schedules an automatic retry.
	maxAutoRetryAttempt = 2

	retryBaseDelay = 1500 * time.Millisecond
	retryStepDelay = 1000 * time.Millisecond
)

// RetryDelay is the wait before the automatic retry that follows attempt.
func RetryDelay(attempt int) time.Duration {
	return retryBaseDelay + time.Duration(attempt)*retryStepDelay
}

// Failure is a classified attempt failure carrying a localized message.
type Failure struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Cause
}

// Retryable reports whether the failure of attempt schedules an automatic retry.
func (f *Failure) Retryable(attempt int) bool {
	return f.Kind == KindNetwork && attempt < maxAutoRetryAttempt
}

func newFailure(kind Kind, cause error, msgs locale.Messages) *Failure {
	return &Failure{
		Kind:    kind,
		Message: message(kind, msgs),
		Cause:   cause,
	}
}

func message(kind Kind, msgs locale.Messages) string {
	switch kind {
	case KindEmptyInput:
		return msgs.EmptyInput
	case KindConfiguration:
		return msgs.Configuration
	case KindEmptyResponse:
		return msgs.EmptyResponse
	case KindNetwork:
		return msgs.Network
	case KindQuota:
		return msgs.Quota
	case KindRepeatedFailure:
		return msgs.RepeatedFailure
	default:
		return msgs.Generic
	}
}

// rule maps a failed attempt to a Kind when match holds.
type rule struct {
	kind  Kind
	match func(err error, msg string, attempt int) bool
}

// rules are evaluated top to bottom; the first match wins.
var rules = []rule{
	{kind: KindConfiguration, match: is(llm.ErrNotConfigured)},
	{kind: KindEmptyResponse, match: is(llm.ErrEmptyResponse)},
	{kind: KindQuota, match: containsAny("quota", "rate")},
	{kind: KindNetwork, match: containsAny("network", "fetch")},
	{kind: KindEmptyInput, match: containsAny("vide", "empty")},
	{kind: KindRepeatedFailure, match: func(_ error, _ string, attempt int) bool { return attempt >= MaxAttempts }},
	{kind: KindGeneric, match: func(error, string, int) bool { return true }},
}

func is(target error) func(error, string, int) bool {
	return func(err error, _ string, _ int) bool {
		return errors.Is(err, target)
	}
}

func containsAny(keywords ...string) func(error, string, int) bool {
	return func(_ error, msg string, _ int) bool {
		for _, kw := range keywords {
			if strings.Contains(msg, kw) {
				return true
			}
		}
		return false
	}
}

// Classify maps the error of attempt to a Kind.
func Classify(err error, attempt int) Kind {
	msg := strings.ToLower(err.Error())
	for _, r := range rules {
		if r.match(err, msg, attempt) {
			return r.kind
		}
	}
	return KindGeneric
}
