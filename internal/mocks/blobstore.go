package mocks

import (
	"context"
	"sync"

	"github.com/excel-analyzer-api/internal/storage"
)

// MockBlobStore is an in-memory implementation of storage.BlobStore with
// optional failure injection.
type MockBlobStore struct {
	mu    sync.Mutex
	Blobs map[string][]byte

	GetError    error
	SetError    error
	DeleteError error
	SetCalls    int
}

// NewMockBlobStore creates an empty MockBlobStore.
func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{
		Blobs: make(map[string][]byte),
	}
}

func (m *MockBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetError != nil {
		return nil, m.GetError
	}
	data, ok := m.Blobs[key]
	if !ok {
		return nil, storage.ErrBlobNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MockBlobStore) Set(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetCalls++
	if m.SetError != nil {
		return m.SetError
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	m.Blobs[key] = stored
	return nil
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteError != nil {
		return m.DeleteError
	}
	delete(m.Blobs, key)
	return nil
}

func (m *MockBlobStore) Close() error {
	return nil
}
