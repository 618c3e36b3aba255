package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/alkime/jailu/internal/locale"
	"github.com/alkime/jailu/internal/prompt"
	"github.com/alkime/jailu/internal/reformulate"
	"github.com/alkime/jailu/internal/tone"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxSessions caps concurrently open reformulation sessions.
const maxSessions = 1024

// defaultSessionIdleTTL applies when no idle TTL is configured.
const defaultSessionIdleTTL = 30 * time.Minute

var errTooManySessions = errors.New("too many open sessions")

// session is one browser tab's reformulation state. Its context outlives
// individual requests so that automatic retries keep running.
type session struct {
	id     string
	ctrl   *reformulate.Controller
	ctx    context.Context
	cancel context.CancelFunc

	// Guarded by sessions.mu.
	lastSeen time.Time
	streams  int
}

type sessions struct {
	mu      sync.Mutex
	byID    map[string]*session
	gen     prompt.Generator
	clock   reformulate.Clock
	now     func() time.Time
	idleTTL time.Duration
	logger  *slog.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

func newSessions(gen prompt.Generator, idleTTL time.Duration, logger *slog.Logger) *sessions {
	if idleTTL <= 0 {
		idleTTL = defaultSessionIdleTTL
	}

	return &sessions{
		byID:    make(map[string]*session),
		gen:     gen,
		clock:   reformulate.SystemClock(),
		now:     time.Now,
		idleTTL: idleTTL,
		logger:  logger,
		stop:    make(chan struct{}),
	}
}

// create opens a session. Expired sessions are dropped first; at the cap
// the least recently used idle session is evicted.
func (ss *sessions) create() (*session, error) {
	ss.mu.Lock()

	now := ss.now()
	evicted := ss.expireLocked(now)
	if len(ss.byID) >= maxSessions {
		if oldest := ss.oldestIdleLocked(); oldest != nil {
			delete(ss.byID, oldest.id)
			evicted = append(evicted, oldest)
		}
	}
	if len(ss.byID) >= maxSessions {
		ss.mu.Unlock()
		ss.closeEvicted(evicted)
		return nil, errTooManySessions
	}

	id := uuid.NewString()
	ctx, cancel := context.WithCancel(context.Background())
	sess := &session{
		id: id,
		ctrl: reformulate.NewController(ss.gen,
			reformulate.WithClock(ss.clock),
			reformulate.WithLogger(ss.logger.With("session", id)),
		),
		ctx:      ctx,
		cancel:   cancel,
		lastSeen: now,
	}
	ss.byID[id] = sess
	ss.mu.Unlock()

	ss.closeEvicted(evicted)

	return sess, nil
}

// get returns the session and marks it as used.
func (ss *sessions) get(id string) (*session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	sess, ok := ss.byID[id]
	if ok {
		sess.lastSeen = ss.now()
	}
	return sess, ok
}

// openStream keeps sess alive until the returned func is called.
func (ss *sessions) openStream(sess *session) func() {
	ss.mu.Lock()
	sess.streams++
	ss.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			ss.mu.Lock()
			sess.streams--
			sess.lastSeen = ss.now()
			ss.mu.Unlock()
		})
	}
}

func (ss *sessions) remove(id string) bool {
	ss.mu.Lock()
	sess, ok := ss.byID[id]
	delete(ss.byID, id)
	ss.mu.Unlock()

	if ok {
		sess.close()
	}
	return ok
}

func (ss *sessions) count() int {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	return len(ss.byID)
}

func (ss *sessions) all() []*session {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	out := make([]*session, 0, len(ss.byID))
	for _, sess := range ss.byID {
		out = append(out, sess)
	}
	return out
}

// busyLocked reports whether sess has a listener or an attempt in progress.
func busyLocked(sess *session) bool {
	if sess.streams > 0 {
		return true
	}
	snap := sess.ctrl.Snapshot()
	return snap.State == reformulate.StateSubmitting || snap.RetryScheduled
}

func (ss *sessions) expireLocked(now time.Time) []*session {
	var expired []*session
	for id, sess := range ss.byID {
		if now.Sub(sess.lastSeen) < ss.idleTTL || busyLocked(sess) {
			continue
		}
		delete(ss.byID, id)
		expired = append(expired, sess)
	}
	return expired
}

func (ss *sessions) oldestIdleLocked() *session {
	var oldest *session
	for _, sess := range ss.byID {
		if busyLocked(sess) {
			continue
		}
		if oldest == nil || sess.lastSeen.Before(oldest.lastSeen) {
			oldest = sess
		}
	}
	return oldest
}

func (ss *sessions) closeEvicted(evicted []*session) {
	for _, sess := range evicted {
		ss.logger.Info("Session evicted", "session", sess.id)
		sess.close()
	}
}

// reap closes sessions idle for longer than the TTL.
func (ss *sessions) reap() int {
	ss.mu.Lock()
	expired := ss.expireLocked(ss.now())
	ss.mu.Unlock()

	ss.closeEvicted(expired)
	return len(expired)
}

func (ss *sessions) reapEvery(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ss.stop:
			return
		case <-ticker.C:
			ss.reap()
		}
	}
}

// toneDeleted moves sessions off a deleted custom tone.
func (ss *sessions) toneDeleted(id string) {
	for _, sess := range ss.all() {
		current := sess.ctrl.Tone()
		if next := tone.AfterDelete(current, id); !tone.Equal(current, next) {
			sess.ctrl.SelectTone(next)
		}
	}
}

func (ss *sessions) closeAll() {
	ss.stopOnce.Do(func() { close(ss.stop) })

	ss.mu.Lock()
	all := ss.byID
	ss.byID = make(map[string]*session)
	ss.mu.Unlock()

	for _, sess := range all {
		sess.close()
	}
}

func (s *session) close() {
	s.cancel()
	s.ctrl.Close()
}

type updateSessionRequest struct {
	Text     *string `json:"text"`
	ToneID   *string `json:"toneId"`
	Language *string `json:"language"`
}

type sessionResponse struct {
	ID       string               `json:"id"`
	Snapshot reformulate.Snapshot `json:"snapshot"`
}

// withSession resolves the :id parameter or aborts with 404.
func (s *Server) withSession(c *gin.Context) (*session, bool) {
	sess, ok := s.sessions.get(c.Param("id"))
	if !ok {
		errorResponse(c, http.StatusNotFound, "session not found")
		return nil, false
	}
	return sess, true
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req updateSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	sess, err := s.sessions.create()
	if err != nil {
		errorResponse(c, http.StatusServiceUnavailable, err.Error())
		return
	}

	if msg, ok := s.applyUpdate(sess.ctrl, req); !ok {
		s.sessions.remove(sess.id)
		errorResponse(c, http.StatusBadRequest, msg)
		return
	}

	s.logger.Info("Session created", "session", sess.id)
	c.JSON(http.StatusCreated, sessionResponse{ID: sess.id, Snapshot: sess.ctrl.Snapshot()})
}

func (s *Server) handleGetSession(c *gin.Context) {
	sess, ok := s.withSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, sessionResponse{ID: sess.id, Snapshot: sess.ctrl.Snapshot()})
}

func (s *Server) handleUpdateSession(c *gin.Context) {
	sess, ok := s.withSession(c)
	if !ok {
		return
	}

	var req updateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg, ok := s.applyUpdate(sess.ctrl, req); !ok {
		errorResponse(c, http.StatusBadRequest, msg)
		return
	}

	c.JSON(http.StatusOK, sessionResponse{ID: sess.id, Snapshot: sess.ctrl.Snapshot()})
}

// applyUpdate validates every field before changing any.
func (s *Server) applyUpdate(ctrl *reformulate.Controller, req updateSessionRequest) (string, bool) {
	var (
		selected tone.Tone
		lang     locale.Language
	)
	if req.ToneID != nil {
		t, ok := s.resolveTone(*req.ToneID)
		if !ok {
			return "unknown tone: " + *req.ToneID, false
		}
		selected = t
	}
	if req.Language != nil {
		l, ok := locale.Lookup(*req.Language)
		if !ok {
			return "unsupported language: " + *req.Language, false
		}
		lang = l
	}

	if req.ToneID != nil {
		ctrl.SelectTone(selected)
	}
	if req.Language != nil {
		ctrl.SelectLanguage(lang)
	}
	if req.Text != nil {
		ctrl.SetInput(*req.Text)
	}

	return "", true
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	if !s.sessions.remove(c.Param("id")) {
		errorResponse(c, http.StatusNotFound, "session not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// handleSubmit starts a new chain; progress is observed through the
// snapshot and events endpoints.
func (s *Server) handleSubmit(c *gin.Context) {
	sess, ok := s.withSession(c)
	if !ok {
		return
	}

	go sess.ctrl.Submit(sess.ctx)

	c.JSON(http.StatusAccepted, sessionResponse{ID: sess.id, Snapshot: sess.ctrl.Snapshot()})
}

func (s *Server) handleRetry(c *gin.Context) {
	sess, ok := s.withSession(c)
	if !ok {
		return
	}

	snap := sess.ctrl.Snapshot()
	if !snap.CanRetry {
		c.JSON(http.StatusConflict, gin.H{
			"error":    reformulate.ErrRetryUnavailable.Error(),
			"snapshot": snap,
		})
		return
	}

	go func() {
		if _, err := sess.ctrl.Retry(sess.ctx); err != nil {
			s.logger.Debug("Retry not started", "session", sess.id, "error", err)
		}
	}()

	c.JSON(http.StatusAccepted, sessionResponse{ID: sess.id, Snapshot: snap})
}

func (s *Server) handleDismiss(c *gin.Context) {
	sess, ok := s.withSession(c)
	if !ok {
		return
	}

	sess.ctrl.DismissError()

	c.JSON(http.StatusOK, sessionResponse{ID: sess.id, Snapshot: sess.ctrl.Snapshot()})
}

// handleEvents streams snapshots as server-sent events until the client
// disconnects or the session is closed.
func (s *Server) handleEvents(c *gin.Context) {
	sess, ok := s.withSession(c)
	if !ok {
		return
	}

	updates, unsubscribe := sess.ctrl.Subscribe(16)
	defer unsubscribe()
	defer s.sessions.openStream(sess)()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("snapshot", sess.ctrl.Snapshot())
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case snap, open := <-updates:
			if !open {
				return false
			}
			c.SSEvent("snapshot", snap)
			return true
		}
	})
}
