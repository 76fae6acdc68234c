package objectstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryStore is an in-memory Store implementation for testing.
// Thread-safe for concurrent reads and writes.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data     []byte
	metadata map[string]string
}

// NewMemoryStore creates a new in-memory object store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]memoryObject),
	}
}

// Put stores an object with optional user metadata.
func (m *MemoryStore) Put(bucket, key string, data []byte, metadata map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]byte, len(data))
	copy(copied, data)

	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[strings.ToLower(k)] = v
	}

	m.objects[bucket+"/"+key] = memoryObject{data: copied, metadata: meta}
}

// Get reads the full object content.
func (m *MemoryStore) Get(_ context.Context, bucket, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[bucket+"/"+key]
	if !ok {
		return nil, ErrNotFound
	}

	copied := make([]byte, len(obj.data))
	copy(copied, obj.data)
	return copied, nil
}

// UserMetadata returns the object's user metadata with lower-cased keys.
func (m *MemoryStore) UserMetadata(_ context.Context, bucket, key string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[bucket+"/"+key]
	if !ok {
		return nil, ErrNotFound
	}

	meta := make(map[string]string, len(obj.metadata))
	for k, v := range obj.metadata {
		meta[k] = v
	}
	return meta, nil
}

// PublicURL returns a memory:// URL for the object.
func (m *MemoryStore) PublicURL(bucket, key string) string {
	return fmt.Sprintf("memory://%s/%s", bucket, key)
}
