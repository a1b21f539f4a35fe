package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore 开发/测试用的进程内实现
type MemoryStore struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]memEntry
}

type memEntry struct {
	p       Principal
	expires time.Time
}

func NewMemory(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttlOrDefault(ttl), data: make(map[string]memEntry)}
}

func (s *MemoryStore) Create(_ context.Context, p Principal) (string, error) {
	id := newID()
	s.mu.Lock()
	s.data[id] = memEntry{p: p, expires: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Principal, error) {
	s.mu.RLock()
	e, ok := s.data[id]
	s.mu.RUnlock()
	if !ok || time.Now().After(e.expires) {
		return nil, ErrNotFound
	}
	p := e.p
	return &p, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.data, id)
	s.mu.Unlock()
	return nil
}
