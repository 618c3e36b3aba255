// Package reformulate drives one reformulation session: it validates the
// input, calls the generator, classifies failures and schedules automatic
// retries. Observers read Snapshots and trigger actions; they never mutate
// the session state directly.
package reformulate

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alkime/jailu/internal/llm"
	"github.com/alkime/jailu/internal/locale"
	"github.com/alkime/jailu/internal/prompt"
	"github.com/alkime/jailu/internal/tone"
	"github.com/alkime/jailu/pkg/channels"
)

// RotationInterval is how often the status message changes while loading.
const RotationInterval = 2 * time.Second

// ErrRetryUnavailable is returned by Retry when no manual retry is offered.
var ErrRetryUnavailable = errors.New("retry unavailable")

// Request is one dispatched submission. It is never modified once sent.
type Request struct {
	Text     string
	Tone     tone.Tone
	Language locale.Language
}

// Controller is the state machine of one reformulation session.
//
// Submit and Retry block until their attempt settles. Automatic retries run
// later on the Clock, reusing the dispatched Request.
type Controller struct {
	mu sync.Mutex

	gen         prompt.Generator
	clock       Clock
	logger      *slog.Logger
	broadcaster *channels.Broadcaster[Snapshot]

	// Inputs.
	input string
	tone  tone.Tone
	lang  locale.Language

	// Session state.
	state       State
	output      string
	failure     *Failure
	retryCount  int
	statusIndex int

	// epoch identifies the current attempt; results of older attempts are dropped.
	epoch      uint64
	cancel     context.CancelFunc
	retryTimer Timer
	rotation   Timer
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the system clock.
func WithClock(clock Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithTone sets the initially selected tone.
func WithTone(t tone.Tone) Option {
	return func(c *Controller) {
		c.tone = t
	}
}

// WithLanguage sets the initially selected language.
func WithLanguage(lang locale.Language) Option {
	return func(c *Controller) {
		c.lang = lang
	}
}

// NewController creates an idle controller calling gen.
func NewController(gen prompt.Generator, opts ...Option) *Controller {
	c := &Controller{
		gen:         gen,
		clock:       SystemClock(),
		logger:      slog.Default(),
		broadcaster: channels.NewBroadcaster[Snapshot](),
		tone:        tone.Default(),
		lang:        locale.Default(),
		state:       StateIdle,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SetInput replaces the input text and clears any displayed error.
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.input = text
	c.dismissLocked()
	c.publishLocked()
}

// SelectTone changes the tone used by the next submission.
func (c *Controller) SelectTone(t tone.Tone) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tone = t
	c.publishLocked()
}

// Tone returns the selected tone.
func (c *Controller) Tone() tone.Tone {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.tone
}

// SelectLanguage changes the response language of the next submission.
func (c *Controller) SelectLanguage(lang locale.Language) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lang = lang
	c.publishLocked()
}

// Submit starts a new chain at attempt 0 from the current inputs.
func (c *Controller) Submit(ctx context.Context) Snapshot {
	return c.run(ctx, 0, c.request())
}

// Retry re-submits the current inputs at the current attempt count. It is
// only available while an error is shown and fewer than MaxAttempts
// attempts were made.
func (c *Controller) Retry(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if !canRetry(c.state == StateSubmitting, c.failure != nil, c.retryCount) {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, ErrRetryUnavailable
	}
	attempt := c.retryCount
	c.mu.Unlock()

	return c.run(ctx, attempt, c.request()), nil
}

// DismissError clears the displayed error and any pending automatic retry.
func (c *Controller) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dismissLocked()
	c.publishLocked()
}

// Clear abandons the session and resets input, output and counters.
func (c *Controller) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.supersedeLocked()
	c.input = ""
	c.output = ""
	c.failure = nil
	c.retryCount = 0
	c.state = StateIdle
	c.publishLocked()
}

// Snapshot returns the current observable state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

// Subscribe returns a channel receiving a Snapshot after every transition,
// and a function to unsubscribe. Slow subscribers only miss older snapshots.
func (c *Controller) Subscribe(buffer int) (<-chan Snapshot, func()) {
	return c.broadcaster.Subscribe(buffer)
}

// Close stops pending work and closes every subscription.
func (c *Controller) Close() {
	c.mu.Lock()
	c.supersedeLocked()
	c.mu.Unlock()

	c.broadcaster.Close()
}

func (c *Controller) request() Request {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Request{Text: c.input, Tone: c.tone, Language: c.lang}
}

// run performs one attempt of req and folds its outcome into the state.
func (c *Controller) run(ctx context.Context, attempt int, req Request) Snapshot {
	c.mu.Lock()

	c.supersedeLocked()
	epoch := c.epoch
	logger := c.logger.With("attempt", attempt, "tone", req.Tone.ID(), "language", req.Language.Code)

	if strings.TrimSpace(req.Text) == "" {
		c.state = StateFailed
		c.failure = newFailure(KindEmptyInput, nil, req.Language.Messages())
		logger.Debug("Submission rejected: empty input")
		c.publishLocked()
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	attemptCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = StateSubmitting
	c.failure = nil
	c.output = ""
	c.retryCount = attempt
	c.statusIndex = 0
	c.startRotationLocked(epoch)
	c.publishLocked()
	c.mu.Unlock()

	logger.Info("Submitting reformulation", "length", len(req.Text))

	p := prompt.Assemble(req.Text, req.Tone, req.Language)
	text, err := c.gen.Generate(attemptCtx, p.SystemInstruction, p.UserPrompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = llm.ErrEmptyResponse
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch {
		logger.Debug("Discarding result of superseded attempt")
		return c.snapshotLocked()
	}

	cancel()
	c.cancel = nil
	c.stopRotationLocked()

	if err == nil {
		c.state = StateSucceeded
		c.output = text
		c.failure = nil
		logger.Info("Reformulation succeeded", "output_length", len(text))
		c.publishLocked()
		return c.snapshotLocked()
	}

	kind := Classify(err, attempt)
	c.state = StateFailed
	c.failure = newFailure(kind, err, req.Language.Messages())
	logger.Warn("Reformulation failed", "kind", kind, "error", err)

	if c.failure.Retryable(attempt) {
		delay := RetryDelay(attempt)
		next := attempt + 1
		logger.Info("Scheduling automatic retry", "delay", delay, "next_attempt", next)
		c.retryTimer = c.clock.AfterFunc(delay, func() {
			c.autoRetry(ctx, epoch, next, req)
		})
	}

	c.publishLocked()
	return c.snapshotLocked()
}

// autoRetry runs the scheduled attempt unless the chain was superseded.
func (c *Controller) autoRetry(ctx context.Context, epoch uint64, attempt int, req Request) {
	c.mu.Lock()
	if c.epoch != epoch || c.retryTimer == nil {
		c.mu.Unlock()
		return
	}
	c.retryTimer = nil
	c.mu.Unlock()

	if ctx.Err() != nil {
		c.logger.Debug("Automatic retry dropped: context done", "attempt", attempt)
		return
	}

	c.run(ctx, attempt, req)
}

// supersedeLocked invalidates the current attempt and its scheduled work.
func (c *Controller) supersedeLocked() {
	c.epoch++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.stopRetryLocked()
	c.stopRotationLocked()
	if c.state == StateSubmitting {
		c.state = StateIdle
	}
}

func (c *Controller) dismissLocked() {
	if c.failure == nil {
		return
	}
	c.failure = nil
	c.stopRetryLocked()
	if c.state == StateFailed {
		c.state = StateIdle
	}
}

func (c *Controller) stopRetryLocked() {
	if c.retryTimer != nil {
		c.retryTimer.Stop()
		c.retryTimer = nil
	}
}

func (c *Controller) startRotationLocked(epoch uint64) {
	c.rotation = c.clock.AfterFunc(RotationInterval, func() {
		c.rotate(epoch)
	})
}

func (c *Controller) stopRotationLocked() {
	if c.rotation != nil {
		c.rotation.Stop()
		c.rotation = nil
	}
	c.statusIndex = 0
}

func (c *Controller) rotate(epoch uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.epoch != epoch || c.state != StateSubmitting {
		return
	}

	c.statusIndex++
	c.startRotationLocked(epoch)
	c.publishLocked()
}

func (c *Controller) publishLocked() {
	c.broadcaster.Publish(c.snapshotLocked())
}

func (c *Controller) snapshotLocked() Snapshot {
	msgs := c.lang.Messages()
	loading := c.state == StateSubmitting

	snap := Snapshot{
		State:          c.state,
		Loading:        loading,
		Output:         c.output,
		RetryCount:     c.retryCount,
		RetryScheduled: c.retryTimer != nil,
		CanRetry:       canRetry(loading, c.failure != nil, c.retryCount),
		Input:          c.input,
		ToneID:         c.tone.ID(),
		Language:       c.lang.Code,
	}

	if c.failure != nil {
		f := *c.failure
		snap.Error = &f
	}
	if loading && len(msgs.Loading) > 0 {
		snap.StatusMessage = msgs.Loading[c.statusIndex%len(msgs.Loading)]
	}
	if loading && c.retryCount > 0 {
		snap.AttemptLabel = msgs.AutomaticAttempt(c.retryCount+1, MaxAttempts)
	}
	if snap.CanRetry {
		snap.RetryLabel = msgs.RetryAction(MaxAttempts - c.retryCount)
	}

	return snap
}
