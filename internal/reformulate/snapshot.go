package reformulate

import "github.com/alkime/jailu/internal/locale"

// State is the controller's lifecycle state.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// Snapshot is the observable state of a Controller.
type Snapshot struct {
	State      State    `json:"state"`
	Loading    bool     `json:"loading"`
	Output     string   `json:"output"`
	Error      *Failure `json:"error,omitempty"`
	RetryCount int      `json:"retryCount"`

	// StatusMessage rotates while Loading.
	StatusMessage string `json:"statusMessage,omitempty"`
	// AttemptLabel is set while an automatic retry runs.
	AttemptLabel   string `json:"attemptLabel,omitempty"`
	RetryScheduled bool   `json:"retryScheduled"`

	CanRetry   bool   `json:"canRetry"`
	RetryLabel string `json:"retryLabel,omitempty"`

	Input    string      `json:"input"`
	ToneID   string      `json:"toneId"`
	Language locale.Code `json:"language"`
}

// canRetry reports whether the manual retry affordance is offered.
func canRetry(loading, hasError bool, retryCount int) bool {
	return !loading && hasError && retryCount < MaxAttempts
}
