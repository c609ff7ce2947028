package convo

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/domain"
)

// DefaultSessionTimeout is how long a dialogue may sit idle before it is
// discarded and restarted from the beginning.
const DefaultSessionTimeout = 30 * time.Minute

// SessionUpdate carries the fields to merge into a session. Nil fields are
// left untouched; the whole update lands in one assignment under the store
// lock, never partially.
type SessionUpdate struct {
	Step        *domain.Step
	ProductName *string
	UserName    *string
}

// SessionStore keeps in-progress dialogue sessions in memory, one per
// contact. It is not durable: a process restart drops every open session.
// Completed reviews are persisted elsewhere.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	timeout  time.Duration
	now      func() time.Time
}

// NewSessionStore creates a session store with the given staleness timeout.
func NewSessionStore(timeout time.Duration) *SessionStore {
	if timeout <= 0 {
		timeout = DefaultSessionTimeout
	}
	return &SessionStore{
		sessions: make(map[string]*domain.Session),
		timeout:  timeout,
		now:      time.Now,
	}
}

// GetOrCreate returns a copy of the contact's session, discarding it first
// if it has gone stale. A fresh session starts at the product step.
func (s *SessionStore) GetOrCreate(contactID string) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[contactID]
	if ok && sess.Stale(s.now(), s.timeout) {
		delete(s.sessions, contactID)
		slog.Info("Stale session discarded", "contact_id", contactID, "idle_since", sess.LastUpdatedAt)
		ok = false
	}
	if !ok {
		sess = s.newSession(contactID)
		s.sessions[contactID] = sess
	}
	return *sess
}

// Start unconditionally replaces any existing session with a fresh one.
func (s *SessionStore) Start(contactID string) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.newSession(contactID)
	s.sessions[contactID] = sess
	return *sess
}

// Reset discards the contact's session. It is a no-op when none exists.
func (s *SessionStore) Reset(contactID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, contactID)
}

// Update merges upd into the contact's session, creating one first if
// absent, and refreshes LastUpdatedAt.
func (s *SessionStore) Update(contactID string, upd SessionUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[contactID]
	if !ok {
		sess = s.newSession(contactID)
		s.sessions[contactID] = sess
	}
	if upd.Step != nil {
		sess.Step = *upd.Step
	}
	if upd.ProductName != nil {
		sess.ProductName = *upd.ProductName
	}
	if upd.UserName != nil {
		sess.UserName = *upd.UserName
	}
	sess.LastUpdatedAt = s.now()
}

// Len returns the number of open sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) newSession(contactID string) *domain.Session {
	now := s.now()
	return &domain.Session{
		ContactID:     contactID,
		Step:          domain.StepAwaitingProduct,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
}

// StartSweeper runs a background goroutine that periodically evicts stale
// sessions. Staleness is also checked lazily on access, so the sweep only
// reclaims memory for contacts that never come back; observable behavior is
// unchanged.
func (s *SessionStore) StartSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		slog.Info("Session sweeper started", "interval", interval, "timeout", s.timeout)

		for {
			select {
			case <-ticker.C:
				if evicted := s.sweep(); evicted > 0 {
					slog.Info("Session sweeper evicted stale sessions", "count", evicted)
				}
			case <-ctx.Done():
				slog.Info("Session sweeper shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}

func (s *SessionStore) sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	evicted := 0
	for id, sess := range s.sessions {
		if sess.Stale(now, s.timeout) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}
