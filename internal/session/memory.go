package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryStore struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[uuid.UUID]entry
}

type entry struct {
	sess      Session
	expiresAt time.Time
}

// NewMemoryStore returns an in-process session store. Used when no Redis URL
// is configured (local development) and by tests; sessions do not survive a
// restart.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		ttl:  ttl,
		data: make(map[uuid.UUID]entry),
	}
}

func (s *memoryStore) Create(ctx context.Context, sess *Session) error {
	return s.Save(ctx, sess)
}

func (s *memoryStore) Get(_ context.Context, id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	e, ok := s.data[id]
	s.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, ErrNotFound
	}

	sess := e.sess
	return &sess, nil
}

func (s *memoryStore) Save(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sess.ID] = entry{sess: *sess, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}
