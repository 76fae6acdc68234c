package searchstore

import (
	"context"
	"sort"
	"sync"

	"github.com/hupe1980/photosearch/model"
)

// MemoryStore is an in-memory Store implementation for testing.
// Thread-safe for concurrent upserts and searches.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]model.PhotoDocument
}

// NewMemoryStore creates a new in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]model.PhotoDocument),
	}
}

// Upsert stores doc keyed by its ObjectKey, replacing any prior document
// wholesale.
func (m *MemoryStore) Upsert(_ context.Context, doc model.PhotoDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Copy labels to prevent external mutation.
	labels := make([]string, len(doc.Labels))
	copy(labels, doc.Labels)
	doc.Labels = labels

	m.docs[doc.ObjectKey] = doc
	return nil
}

// Search returns documents whose q.Field intersects q.AnyOf.
// Only the labels field is queryable; results are ordered by ObjectKey for
// determinism.
func (m *MemoryStore) Search(_ context.Context, q Query) ([]model.PhotoDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if q.Field != FieldLabels || len(q.AnyOf) == 0 {
		return []model.PhotoDocument{}, nil
	}

	want := make(map[string]struct{}, len(q.AnyOf))
	for _, v := range q.AnyOf {
		want[v] = struct{}{}
	}

	var out []model.PhotoDocument
	for _, doc := range m.docs {
		if intersects(doc.Labels, want) {
			out = append(out, doc)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ObjectKey < out[j].ObjectKey })

	if out == nil {
		out = []model.PhotoDocument{}
	}
	return out, nil
}

// Get returns the stored document for key, if any. Intended for tests.
func (m *MemoryStore) Get(key string) (model.PhotoDocument, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[key]
	return doc, ok
}

// Len returns the number of stored documents.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.docs)
}

func intersects(labels []string, want map[string]struct{}) bool {
	for _, l := range labels {
		if _, ok := want[l]; ok {
			return true
		}
	}
	return false
}
