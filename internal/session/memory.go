package session

import (
	"context"
	"sync"
	"time"
)

// memoryStore keeps sessions in a mutex-guarded map. Default driver; fine
// for a single process and for tests.
type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Data
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[string]*Data)}
}

func (s *memoryStore) Get(ctx context.Context, id string) (*Data, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *data
	return &copied, nil
}

func (s *memoryStore) Save(ctx context.Context, data *Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if data.CreatedAt.IsZero() {
		data.CreatedAt = now
	}
	data.UpdatedAt = now

	copied := *data
	s.sessions[data.ID] = &copied
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	return nil
}
