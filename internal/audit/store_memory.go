package audit

import (
	"context"
	"sync"
)

// MemoryStore keeps audit events in process. Suitable for tests and
// single-node deployments.
type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *MemoryStore) ListByVerification(_ context.Context, verificationID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, ev := range s.events {
		if ev.VerificationID == verificationID {
			out = append(out, ev)
		}
	}
	return out, nil
}
