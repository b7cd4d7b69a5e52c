package verification

import (
	"context"
	"sync"

	"github.com/HasbiyallahuJafaru/E-KYC/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]Verification
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]Verification)}
}

func (s *InMemoryStore) Create(_ context.Context, v Verification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[v.ID]; exists {
		return sentinel.ErrConflict
	}
	s.records[v.ID] = v
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, v Verification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[v.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.records[v.ID] = v
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (Verification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[id]
	if !ok {
		return Verification{}, sentinel.ErrNotFound
	}
	return v, nil
}
