package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the session backend used when no Redis address is
// configured, and by tests. Expired entries are dropped lazily on access.
type MemoryStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryEntry
}

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryEntry),
	}
}

// SetClock overrides the time source. Tests use it to simulate idle timeouts.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStore) Create(ctx context.Context, data Data) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purgeLocked()
	s.sessions[token] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	return token, nil
}

func (s *MemoryStore) Get(ctx context.Context, token string) (Data, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[token]
	if !ok {
		return Data{}, false, nil
	}
	if !entry.expiresAt.After(s.now()) {
		delete(s.sessions, token)
		return Data{}, false, nil
	}
	return entry.data, true, nil
}

func (s *MemoryStore) Touch(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[token]
	if !ok || !entry.expiresAt.After(s.now()) {
		return nil
	}
	entry.expiresAt = s.now().Add(s.ttl)
	s.sessions[token] = entry
	return nil
}

func (s *MemoryStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) purgeLocked() {
	now := s.now()
	for token, entry := range s.sessions {
		if !entry.expiresAt.After(now) {
			delete(s.sessions, token)
		}
	}
}
