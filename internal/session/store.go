// Package session tracks the transient OTP state of each phone number.
// It is advisory only; the verification provider remains authoritative.
package session

import (
	"sync"
	"time"
)

type State string

const (
	StateNone     State = "NONE"
	StatePending  State = "PENDING"
	StateVerified State = "VERIFIED"
)

type Session struct {
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	State     State     `json:"state"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s Session) Verified() bool {
	return s.State == StateVerified
}

// MemoryStore keeps sessions in memory, keyed by normalized phone. Entries
// expire ttl after their last write.
type MemoryStore struct {
	mu   sync.RWMutex
	m    map[string]Session
	ttl  time.Duration
	nowF func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		m:    make(map[string]Session),
		ttl:  ttl,
		nowF: func() time.Time { return time.Now().UTC() },
	}
}

// Begin records a PENDING session for phone, replacing any previous one.
func (s *MemoryStore) Begin(name, phone string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := Session{Name: name, Phone: phone, State: StatePending, UpdatedAt: s.nowF()}
	s.m[phone] = sess
	return sess
}

// MarkVerified moves an existing session to VERIFIED. It reports false when
// there is no live session for phone.
func (s *MemoryStore) MarkVerified(phone string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.m[phone]
	if !ok {
		return false
	}
	now := s.nowF()
	if s.expired(sess, now) {
		delete(s.m, phone)
		return false
	}
	sess.State = StateVerified
	sess.UpdatedAt = now
	s.m[phone] = sess
	return true
}

// Get returns the live session for phone.
func (s *MemoryStore) Get(phone string) (Session, bool) {
	s.mu.RLock()
	sess, ok := s.m[phone]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if s.expired(sess, s.nowF()) {
		s.mu.Lock()
		delete(s.m, phone)
		s.mu.Unlock()
		return Session{}, false
	}
	return sess, true
}

// Sweep drops expired sessions and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowF()
	n := 0
	for phone, sess := range s.m {
		if s.expired(sess, now) {
			delete(s.m, phone)
			n++
		}
	}
	return n
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}

func (s *MemoryStore) expired(sess Session, now time.Time) bool {
	return s.ttl > 0 && !sess.UpdatedAt.Add(s.ttl).After(now)
}
