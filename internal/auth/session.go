package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one authenticated operator session.
type Session struct {
	ID         string
	UserID     uint
	UserName   string
	LastActive time.Time
}

// SessionStore tracks live sessions and ends them after the configured
// inactivity window. The timeout is read per check so a settings change
// applies without restarting the server. Expiry and explicit logout are
// the only ways back to anonymous.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	timeout  func() time.Duration
	onExpire func(Session)
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewSessionStore builds a store. timeout supplies the current
// inactivity window; onExpire runs once per session that times out
// (nil to skip), outside the store's lock.
func NewSessionStore(timeout func() time.Duration, onExpire func(Session)) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]Session),
		timeout:  timeout,
		onExpire: onExpire,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
}

// Create registers a fresh session for a user.
func (s *SessionStore) Create(userID uint, userName string) Session {
	sess := Session{
		ID:         uuid.New().String(),
		UserID:     userID,
		UserName:   userName,
		LastActive: s.now(),
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return sess
}

// Touch resets the inactivity clock for a session and returns it. It
// reports false when the session is unknown or has already sat idle past
// the timeout; an idle session found here is expired on the spot, since
// the janitor may not have swept it yet.
func (s *SessionStore) Touch(id string) (Session, bool) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return Session{}, false
	}
	now := s.now()
	if now.Sub(sess.LastActive) > s.timeout() {
		delete(s.sessions, id)
		s.mu.Unlock()
		if s.onExpire != nil {
			s.onExpire(sess)
		}
		return Session{}, false
	}
	sess.LastActive = now
	s.sessions[id] = sess
	s.mu.Unlock()
	return sess, true
}

// Delete removes a session on explicit logout.
func (s *SessionStore) Delete(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	return sess, ok
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// StartJanitor sweeps idle sessions in the background until Stop.
func (s *SessionStore) StartJanitor(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case now := <-ticker.C:
				s.sweep(now)
			}
		}
	}()
}

// Stop shuts down the janitor. Safe to call more than once.
func (s *SessionStore) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *SessionStore) sweep(now time.Time) {
	var expired []Session
	s.mu.Lock()
	window := s.timeout()
	for id, sess := range s.sessions {
		if now.Sub(sess.LastActive) > window {
			delete(s.sessions, id)
			expired = append(expired, sess)
		}
	}
	s.mu.Unlock()
	for _, sess := range expired {
		if s.onExpire != nil {
			s.onExpire(sess)
		}
	}
}
