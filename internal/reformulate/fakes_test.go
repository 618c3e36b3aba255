package reformulate //nolint:testpackage // Tests drive unexported state

import (
	"context"
	"sync"
	"time"
)

// fakeClock records scheduled callbacks and fires them on demand.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	delay   time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := &fakeTimer{clock: c, delay: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// fire runs the oldest active timer scheduled with delay d.
func (c *fakeClock) fire(d time.Duration) bool {
	c.mu.Lock()
	var target *fakeTimer
	for _, t := range c.timers {
		if t.delay == d && !t.stopped && !t.fired {
			target = t
			break
		}
	}
	if target != nil {
		target.fired = true
	}
	c.mu.Unlock()

	if target == nil {
		return false
	}
	target.f()
	return true
}

// retryDelays lists every retry delay ever scheduled, in order.
func (c *fakeClock) retryDelays() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []time.Duration
	for _, t := range c.timers {
		if t.delay != RotationInterval {
			out = append(out, t.delay)
		}
	}
	return out
}

// active counts timers scheduled with delay d that have neither fired nor stopped.
func (c *fakeClock) active(d time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, t := range c.timers {
		if t.delay == d && !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type genResult struct {
	text string
	err  error
}

// scriptedGenerator returns one scripted result per call; the last one repeats.
type scriptedGenerator struct {
	mu      sync.Mutex
	results []genResult
	calls   int
	systems []string
	users   []string
}

func (g *scriptedGenerator) Generate(_ context.Context, systemInstruction, userPrompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	i := g.calls
	if i >= len(g.results) {
		i = len(g.results) - 1
	}
	g.calls++
	g.systems = append(g.systems, systemInstruction)
	g.users = append(g.users, userPrompt)

	return g.results[i].text, g.results[i].err
}

func (g *scriptedGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// pendingCall is one blocked Generate call.
type pendingCall struct {
	ctx     context.Context
	release chan genResult
}

// blockingGenerator blocks each call until its release delivers a result.
type blockingGenerator struct {
	calls chan *pendingCall
}

func newBlockingGenerator() *blockingGenerator {
	return &blockingGenerator{calls: make(chan *pendingCall, 4)}
}

func (g *blockingGenerator) Generate(ctx context.Context, _, _ string) (string, error) {
	call := &pendingCall{ctx: ctx, release: make(chan genResult, 1)}
	g.calls <- call
	r := <-call.release
	return r.text, r.err
}
