// Package memory implements the record store over in-process maps. Data
// lives for the process lifetime only; it is the development and test
// backend, and the contract it honors is identical to the DynamoDB adapter.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/nextgen-care/clinic-service/internal/core/domain"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
)

type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string]ports.Item
}

var _ ports.RecordStore = (*Store)(nil)

func New() *Store {
	return &Store{collections: make(map[string]map[string]ports.Item)}
}

func (s *Store) Get(ctx context.Context, col ports.Collection, key string) (ports.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.collections[col.Name][key]
	if !ok {
		return nil, fmt.Errorf("%s %q: %w", col.Name, key, domain.ErrNotFound)
	}
	return copyItem(it), nil
}

func (s *Store) Put(ctx context.Context, col ports.Collection, item ports.Item) error {
	key, ok := item[col.KeyAttr].(string)
	if !ok || key == "" {
		return fmt.Errorf("%s: missing key attribute %q", col.Name, col.KeyAttr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[col.Name] == nil {
		s.collections[col.Name] = make(map[string]ports.Item)
	}
	s.collections[col.Name][key] = copyItem(item)
	return nil
}

// ScanAll returns a snapshot copy; concurrent writers may already have made
// it stale by the time the caller filters it.
func (s *Store) ScanAll(ctx context.Context, col ports.Collection) ([]ports.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Item, 0, len(s.collections[col.Name]))
	for _, it := range s.collections[col.Name] {
		items = append(items, copyItem(it))
	}
	return items, nil
}

func (s *Store) UpdateField(ctx context.Context, col ports.Collection, key, field string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.collections[col.Name][key]
	if !ok {
		return fmt.Errorf("%s %q: %w", col.Name, key, domain.ErrNotFound)
	}
	it[field] = value
	return nil
}

func (s *Store) Delete(ctx context.Context, col ports.Collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[col.Name][key]; !ok {
		return fmt.Errorf("%s %q: %w", col.Name, key, domain.ErrNotFound)
	}
	delete(s.collections[col.Name], key)
	return nil
}

// copyItem keeps callers from mutating stored state through a returned or
// retained map. Attribute values are scalars, so a shallow copy is enough.
func copyItem(it ports.Item) ports.Item {
	dup := make(ports.Item, len(it))
	for k, v := range it {
		dup[k] = v
	}
	return dup
}
