package server

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopGenerator struct{}

func (nopGenerator) Generate(context.Context, string, string) (string, error) {
	return "ok", nil
}

type manualNow struct {
	mu sync.Mutex
	t  time.Time
}

func (m *manualNow) now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.t
}

func (m *manualNow) advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.t = m.t.Add(d)
}

func newTestSessions(t *testing.T, ttl time.Duration) (*sessions, *manualNow) {
	t.Helper()

	clock := &manualNow{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	ss := newSessions(nopGenerator{}, ttl, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ss.now = clock.now
	t.Cleanup(ss.closeAll)

	return ss, clock
}

func TestSessions_EvictsLeastRecentlyUsedAtCap(t *testing.T) {
	ss, clock := newTestSessions(t, time.Hour)

	ids := make([]string, 0, maxSessions)
	for range maxSessions {
		sess, err := ss.create()
		require.NoError(t, err)
		ids = append(ids, sess.id)
		clock.advance(time.Millisecond)
	}

	// The first session is used again, so the second becomes the oldest.
	_, ok := ss.get(ids[0])
	require.True(t, ok)

	sess, err := ss.create()
	require.NoError(t, err)

	assert.Equal(t, maxSessions, ss.count())
	_, ok = ss.get(ids[1])
	assert.False(t, ok)
	_, ok = ss.get(ids[0])
	assert.True(t, ok)
	assert.NoError(t, sess.ctx.Err())
}

func TestSessions_EvictedSessionIsClosed(t *testing.T) {
	ss, clock := newTestSessions(t, time.Hour)

	first, err := ss.create()
	require.NoError(t, err)
	for range maxSessions - 1 {
		clock.advance(time.Millisecond)
		_, err := ss.create()
		require.NoError(t, err)
	}

	_, err = ss.create()
	require.NoError(t, err)

	assert.ErrorIs(t, first.ctx.Err(), context.Canceled)
}

func TestSessions_StreamingSessionsAreNotEvicted(t *testing.T) {
	ss, _ := newTestSessions(t, time.Hour)

	for range maxSessions {
		sess, err := ss.create()
		require.NoError(t, err)
		release := ss.openStream(sess)
		t.Cleanup(release)
	}

	_, err := ss.create()
	assert.ErrorIs(t, err, errTooManySessions)
	assert.Equal(t, maxSessions, ss.count())
}

func TestSessions_ReapIdle(t *testing.T) {
	ss, clock := newTestSessions(t, 30*time.Minute)

	idle, err := ss.create()
	require.NoError(t, err)
	used, err := ss.create()
	require.NoError(t, err)
	streaming, err := ss.create()
	require.NoError(t, err)
	release := ss.openStream(streaming)

	clock.advance(20 * time.Minute)
	_, ok := ss.get(used.id)
	require.True(t, ok)

	clock.advance(10 * time.Minute)
	assert.Equal(t, 1, ss.reap())

	_, ok = ss.get(idle.id)
	assert.False(t, ok)
	assert.ErrorIs(t, idle.ctx.Err(), context.Canceled)

	// Closing the stream counts as a use.
	clock.advance(time.Hour)
	release()
	assert.Equal(t, 1, ss.reap())
	_, ok = ss.get(streaming.id)
	assert.True(t, ok)
	_, ok = ss.get(used.id)
	assert.False(t, ok)
}

func TestNewSessions_DefaultTTL(t *testing.T) {
	ss := newSessions(nopGenerator{}, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer ss.closeAll()

	assert.Equal(t, defaultSessionIdleTTL, ss.idleTTL)
}
