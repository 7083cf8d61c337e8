package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hupe1980/catalogmesh/internal/util"
)

// FileStore persists one JSON document per category under a data directory.
// Writes go through a temp-file-plus-rename so a crash mid-write never
// corrupts the document; readers observe either the old or the new content.
// The store serializes its own writes and expects a single writer per
// category.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the data directory if needed and returns a store
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create catalog dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(category Category) string {
	return filepath.Join(s.dir, string(category)+".json")
}

// Load implements Store.
func (s *FileStore) Load(category Category) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path(category))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read catalog %s: %w", category, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", category, err)
	}
	return &doc, nil
}

// Save implements Store.
func (s *FileStore) Save(doc *Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc.Recount()
	doc.LastUpdated = time.Now().UTC()
	if doc.SchemaVersion == "" {
		doc.SchemaVersion = SchemaVersion
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog %s: %w", doc.Category, err)
	}
	return util.AtomicWriteFile(s.path(doc.Category), data)
}
