package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process memory, keyed by session ID.
// Concurrent clients only ever touch their own key, so a single RWMutex
// over the map is enough.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	m := &MemoryStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
	}

	go m.sweep()
	return m
}

func (m *MemoryStore) sweep() {
	ticker := time.NewTicker(m.ttl)
	defer ticker.Stop()
	for range ticker.C {
		m.mu.Lock()
		for id, s := range m.sessions {
			if time.Since(s.CreatedAt) > m.ttl {
				delete(m.sessions, id)
			}
		}
		m.mu.Unlock()
	}
}

func (m *MemoryStore) Create(_ context.Context) (Session, error) {
	s := Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || time.Since(s.CreatedAt) > m.ttl {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (m *MemoryStore) Put(_ context.Context, s Session) error {
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}
