package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryObjectStore keeps objects in-process. It backs tests and exposes the
// same deterministic URL derivation as MinioStore.
type MemoryObjectStore struct {
	mu      sync.RWMutex
	bucket  string
	objects map[string][]byte
	putErr  error
}

// NewMemoryObjectStore initializes an empty in-memory object store.
func NewMemoryObjectStore(bucket string) *MemoryObjectStore {
	return &MemoryObjectStore{bucket: bucket, objects: make(map[string][]byte)}
}

// FailPuts makes subsequent Put calls return err. Pass nil to restore.
func (m *MemoryObjectStore) FailPuts(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putErr = err
}

// Put stores the object bytes under key.
func (m *MemoryObjectStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.putErr != nil {
		return m.putErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = data
	return nil
}

// PublicURL derives a URL in the same shape MinioStore produces.
func (m *MemoryObjectStore) PublicURL(key string) string {
	return fmt.Sprintf("http://objects.local/%s/%s", m.bucket, key)
}

// Delete removes an object; deleting a missing key is not an error.
func (m *MemoryObjectStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

// Has reports whether an object exists under key.
func (m *MemoryObjectStore) Has(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok
}

// Count returns the number of stored objects.
func (m *MemoryObjectStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
