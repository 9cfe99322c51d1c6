package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/nextgen-care/clinic-service/internal/core/domain"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
)

// MemoryStore keeps sessions in-process. It backs tests and single-node
// development runs; restart wipes every session, which the contract allows.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Principal
}

var _ ports.SessionStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]domain.Principal)}
}

func (s *MemoryStore) Save(ctx context.Context, id string, p domain.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = p
	return nil
}

func (s *MemoryStore) Find(ctx context.Context, id string) (domain.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.sessions[id]
	if !ok {
		return domain.Principal{}, fmt.Errorf("session %q: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
