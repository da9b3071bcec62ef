package web

import (
	"sync"
	"time"

	"github.com/Adda-Baaj/khobor/internal/metrics"
	"github.com/Adda-Baaj/khobor/internal/ui"
	"github.com/google/uuid"
)

// SessionCookie names the cookie carrying the session id.
const SessionCookie = "khobor_session"

// Session is one browser's UI state.
type Session struct {
	ID  string
	App *ui.App

	lastSeen time.Time
}

// Sessions is an in-memory registry. Sessions idle longer than the idle
// window are dropped on the next lookup.
type Sessions struct {
	mu     sync.Mutex
	idle   time.Duration
	now    func() time.Time
	newApp func() *ui.App
	byID   map[string]*Session
}

func NewSessions(idle time.Duration, newApp func() *ui.App) *Sessions {
	return &Sessions{
		idle:   idle,
		now:    time.Now,
		newApp: newApp,
		byID:   make(map[string]*Session),
	}
}

// Resolve returns the live session for id, creating one when id is unknown or expired.
func (s *Sessions) Resolve(id string) (sess *Session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	if sess, ok := s.byID[id]; ok {
		sess.lastSeen = now
		return sess, false
	}

	sess = &Session{ID: uuid.NewString(), App: s.newApp(), lastSeen: now}
	s.byID[sess.ID] = sess
	metrics.UISessionsActive.Set(float64(len(s.byID)))
	return sess, true
}

func (s *Sessions) sweep(now time.Time) {
	removed := false
	for id, sess := range s.byID {
		if now.Sub(sess.lastSeen) > s.idle {
			sess.App.Close()
			delete(s.byID, id)
			removed = true
		}
	}
	if removed {
		metrics.UISessionsActive.Set(float64(len(s.byID)))
	}
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Close drops every session.
func (s *Sessions) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.byID {
		sess.App.Close()
		delete(s.byID, id)
	}
	metrics.UISessionsActive.Set(0)
}
