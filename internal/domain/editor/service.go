package editor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/folio/internal/domain/activity"
	"github.com/rpggio/folio/internal/domain/content"
)

// retainedClosed bounds how many closed sessions stay resolvable.
const retainedClosed = 16

// Service manages the editing session lifecycle. At most one session is
// open at a time.
type Service struct {
	store    ContentStore
	verifier PINVerifier
	recorder ActivityRecorder
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
	closed   []string
	open     *Session
}

// NewService creates a new editor service. A nil verifier accepts every
// open request and a nil recorder skips activity logging.
func NewService(store ContentStore, verifier PINVerifier, recorder ActivityRecorder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		store:    store,
		verifier: verifier,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// SetClock overrides the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Open starts a session over a private copy of the live document.
func (s *Service) Open(ctx context.Context, req OpenRequest) (*Session, error) {
	if s.verifier != nil {
		if err := s.verifier.Verify(req.PIN); err != nil {
			s.record(ctx, "", activity.TypeLoginFailed, "pin rejected", err.Error())
			return nil, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open != nil && s.open.Status() == StatusOpen {
		if !req.Takeover {
			return nil, ErrSessionActive
		}
		prev := s.open
		prev.mu.Lock()
		if prev.status == StatusOpen {
			prev.closeLocked()
		}
		prev.mu.Unlock()
		s.retireLocked(prev.id)
		s.record(ctx, prev.id, activity.TypeSessionDiscarded, "session taken over", "")
		s.logger.Info("editor session taken over", "session_id", prev.id)
	}

	sess := newSession(uuid.New().String(), s.store.Current(), s.now)
	s.sessions[sess.id] = sess
	s.open = sess

	s.record(ctx, sess.id, activity.TypeSessionOpened, "session opened", "")
	s.logger.Info("editor session opened", "session_id", sess.id)
	return sess, nil
}

// Get returns a session by ID, including recently closed sessions.
func (s *Service) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Active returns the open session, if any.
func (s *Service) Active() (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open == nil || s.open.Status() != StatusOpen {
		return nil, false
	}
	return s.open, true
}

// Commit hands the working copy to the content store. On success the
// session closes. On failure it stays open with its edits and the store's
// error is returned.
func (s *Service) Commit(ctx context.Context, id string) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	if sess.status != StatusOpen {
		sess.mu.Unlock()
		return ErrSessionClosed
	}
	doc := content.Clone(sess.working)
	if err := s.store.Commit(ctx, doc); err != nil {
		sess.mu.Unlock()
		s.record(ctx, id, activity.TypeCommitFailed, "commit failed", err.Error())
		s.logger.Warn("editor commit failed", "session_id", id, "error", err)
		return fmt.Errorf("committing session: %w", err)
	}
	sess.closeLocked()
	sess.mu.Unlock()

	s.finish(id)
	s.record(ctx, id, activity.TypeSessionCommitted, "session committed",
		fmt.Sprintf("projects=%d experiments=%d", len(doc.Projects), len(doc.Experiments)))
	s.logger.Info("editor session committed", "session_id", id)
	return nil
}

// Discard closes the session without touching storage.
func (s *Service) Discard(ctx context.Context, id string) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	if sess.status != StatusOpen {
		sess.mu.Unlock()
		return ErrSessionClosed
	}
	sess.closeLocked()
	sess.mu.Unlock()

	s.finish(id)
	s.record(ctx, id, activity.TypeSessionDiscarded, "session discarded", "")
	s.logger.Info("editor session discarded", "session_id", id)
	return nil
}

// Reset clears persisted content and reinstates the defaults. It requires
// an open session and closes it on success, so its stale working copy can
// not be committed over the defaults.
func (s *Service) Reset(ctx context.Context, id string) error {
	sess, err := s.Get(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	if sess.status != StatusOpen {
		sess.mu.Unlock()
		return ErrSessionClosed
	}
	if err := s.store.Reset(ctx); err != nil {
		sess.mu.Unlock()
		return fmt.Errorf("resetting content: %w", err)
	}
	sess.closeLocked()
	sess.mu.Unlock()

	s.finish(id)
	s.record(ctx, id, activity.TypeContentReset, "content reset to defaults", "")
	s.record(ctx, id, activity.TypeSessionDiscarded, "session closed by reset", "")
	s.logger.Warn("content reset to defaults", "session_id", id)
	return nil
}

// Export renders the session's working copy as a defaults file.
func (s *Service) Export(id string) ([]byte, error) {
	sess, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	doc, err := sess.Document()
	if err != nil {
		return nil, err
	}
	return content.ExportYAML(doc)
}

func (s *Service) finish(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open != nil && s.open.id == id {
		s.open = nil
	}
	s.retireLocked(id)
}

// retireLocked remembers id as closed and forgets the oldest closed sessions.
func (s *Service) retireLocked(id string) {
	s.closed = append(s.closed, id)
	for len(s.closed) > retainedClosed {
		delete(s.sessions, s.closed[0])
		s.closed = s.closed[1:]
	}
}

func (s *Service) record(ctx context.Context, sessionID string, typ activity.ActivityType, summary, details string) {
	if s.recorder == nil {
		return
	}
	entry := &activity.ActivityEntry{
		ActivityType: typ,
		Summary:      summary,
		Details:      details,
	}
	if sessionID != "" {
		entry.SessionID = &sessionID
	}
	s.recorder.Record(ctx, entry)
}
