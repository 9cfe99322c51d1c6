package services_test

import (
	"context"
	"sync"

	"github.com/nextgen-care/clinic-service/internal/core/ports"
)

// MockSink implements ports.NotificationSink for testing. It records every
// delivery and can inject an error to prove the fire-and-forget contract:
// the triggering operation must succeed even when the sink fails.
type MockSink struct {
	mu sync.Mutex

	Subjects     []string
	PublishError error
}

var _ ports.NotificationSink = (*MockSink)(nil)

func NewMockSink() *MockSink {
	return &MockSink{}
}

func (m *MockSink) Notify(ctx context.Context, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.PublishError != nil {
		return m.PublishError
	}
	m.Subjects = append(m.Subjects, subject)
	return nil
}

func (m *MockSink) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Subjects)
}

// FailingStore implements ports.RecordStore with per-operation error
// injection, for exercising store-failure paths.
type FailingStore struct {
	Inner ports.RecordStore

	GetError    error
	PutError    error
	ScanError   error
	UpdateError error
	DeleteError error
}

var _ ports.RecordStore = (*FailingStore)(nil)

func (f *FailingStore) Get(ctx context.Context, col ports.Collection, key string) (ports.Item, error) {
	if f.GetError != nil {
		return nil, f.GetError
	}
	return f.Inner.Get(ctx, col, key)
}

func (f *FailingStore) Put(ctx context.Context, col ports.Collection, item ports.Item) error {
	if f.PutError != nil {
		return f.PutError
	}
	return f.Inner.Put(ctx, col, item)
}

func (f *FailingStore) ScanAll(ctx context.Context, col ports.Collection) ([]ports.Item, error) {
	if f.ScanError != nil {
		return nil, f.ScanError
	}
	return f.Inner.ScanAll(ctx, col)
}

func (f *FailingStore) UpdateField(ctx context.Context, col ports.Collection, key, field string, value any) error {
	if f.UpdateError != nil {
		return f.UpdateError
	}
	return f.Inner.UpdateField(ctx, col, key, field, value)
}

func (f *FailingStore) Delete(ctx context.Context, col ports.Collection, key string) error {
	if f.DeleteError != nil {
		return f.DeleteError
	}
	return f.Inner.Delete(ctx, col, key)
}
