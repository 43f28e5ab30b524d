package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shyamraj/portfolio/internal/refiner"
)

// browserClipboard hands copied text to the next rendered fragment; the
// page script performs the actual clipboard write.
type browserClipboard struct {
	mu      sync.Mutex
	pending string
}

func (b *browserClipboard) WriteAll(text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = text
	return nil
}

// Take returns and clears the text awaiting a clipboard write.
func (b *browserClipboard) Take() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := b.pending
	b.pending = ""
	return t
}

type visitorSession struct {
	refiner  *refiner.Session
	clip     *browserClipboard
	lastSeen time.Time
}

// SessionFactory builds a refiner session writing to clip.
type SessionFactory func(clip refiner.Clipboard) (*refiner.Session, error)

// MaxSessions bounds the live sessions; the longest idle one is evicted to
// make room for a new visitor.
const MaxSessions = 10000

// SessionStore keeps one refiner session per visitor cookie.
type SessionStore struct {
	mu      sync.Mutex
	entries map[string]*visitorSession
	factory SessionFactory
	ttl     time.Duration
	max     int
	now     func() time.Time
}

// NewSessionStore creates a store whose sessions expire after ttl idle.
func NewSessionStore(factory SessionFactory, ttl time.Duration) *SessionStore {
	return &SessionStore{
		entries: make(map[string]*visitorSession),
		factory: factory,
		ttl:     ttl,
		max:     MaxSessions,
		now:     time.Now,
	}
}

// Lookup returns the existing session for id without creating one.
func (s *SessionStore) Lookup(id string) (*visitorSession, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if ok {
		e.lastSeen = s.now()
	}
	return e, ok
}

// Get returns the session for id, creating a new one under a fresh id when
// id is empty or unknown. The returned id is the one to store in the cookie.
func (s *SessionStore) Get(id string) (*visitorSession, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[id]; ok && id != "" {
		e.lastSeen = s.now()
		return e, id, nil
	}

	clip := &browserClipboard{}
	sess, err := s.factory(clip)
	if err != nil {
		return nil, "", err
	}
	if s.max > 0 && len(s.entries) >= s.max {
		s.evictOldest()
	}
	id = uuid.NewString()
	e := &visitorSession{refiner: sess, clip: clip, lastSeen: s.now()}
	s.entries[id] = e
	return e, id, nil
}

// evictOldest drops the longest idle session that is not mid-refinement.
// Callers hold s.mu.
func (s *SessionStore) evictOldest() {
	var (
		oldestID string
		oldest   *visitorSession
	)
	for id, e := range s.entries {
		if e.refiner.Refining() {
			continue
		}
		if oldest == nil || e.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, e
		}
	}
	if oldest != nil {
		oldest.refiner.Close()
		delete(s.entries, oldestID)
	}
}

// Sweep closes and forgets sessions idle longer than the ttl.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	removed := 0
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) && !e.refiner.Refining() {
			e.refiner.Close()
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close tears down every session.
func (s *SessionStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		e.refiner.Close()
		delete(s.entries, id)
	}
}
