package catalog

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// InMemoryStore is a volatile Store implementation keeping documents in a
// process-local map. It is safe for concurrent access and best suited for
// tests. Documents are round-tripped through JSON on load and save so
// callers can never mutate internal state through a retained pointer.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[Category][]byte
}

// NewInMemoryStore constructs an empty in-memory catalog store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{docs: make(map[Category][]byte)}
}

// Load implements Store.
func (s *InMemoryStore) Load(category Category) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[category]
	if !ok {
		return nil, ErrNotFound
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", category, err)
	}
	return &doc, nil
}

// Save implements Store.
func (s *InMemoryStore) Save(doc *Document) error {
	doc.Recount()
	doc.LastUpdated = time.Now().UTC()
	if doc.SchemaVersion == "" {
		doc.SchemaVersion = SchemaVersion
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode catalog %s: %w", doc.Category, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.Category] = data
	return nil
}

// Serialized returns the raw stored bytes for a category (nil if absent).
// Tests use it to assert a document was not mutated.
func (s *InMemoryStore) Serialized(category Category) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[category]
	if !ok {
		return nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out
}
