package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/hupe1980/catalogmesh/catalog"
	"github.com/hupe1980/catalogmesh/internal/util"
)

// FileStore persists one state document per category as
// <dir>/<category>-state.json. Every mutation loads, changes, and atomically
// rewrites the document, so the file always reflects a consistent state.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the state directory if needed and returns a store
// rooted there.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(category catalog.Category) string {
	return filepath.Join(s.dir, string(category)+"-state.json")
}

func (s *FileStore) load(category catalog.Category) (*document, error) {
	data, err := os.ReadFile(s.path(category))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoExecution
		}
		return nil, fmt.Errorf("read state %s: %w", category, err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode state %s: %w", category, err)
	}
	return &doc, nil
}

func (s *FileStore) save(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state %s: %w", doc.Execution.Category, err)
	}
	return util.AtomicWriteFile(s.path(doc.Execution.Category), data)
}

// mutate runs fn against the category's document and persists the result if
// fn succeeds.
func (s *FileStore) mutate(category catalog.Category, fn func(*document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(category)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

// CreateExecution implements Store.
func (s *FileStore) CreateExecution(exec Execution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(&document{Execution: exec, Tasks: []Task{}})
}

// LoadExecution implements Store.
func (s *FileStore) LoadExecution(category catalog.Category) (*Execution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(category)
	if err != nil {
		return nil, err
	}
	exec := doc.Execution
	return &exec, nil
}

// SetPhase implements Store.
func (s *FileStore) SetPhase(category catalog.Category, phase Phase) error {
	return s.mutate(category, func(doc *document) error {
		doc.Execution.Phase = phase
		doc.touch()
		return nil
	})
}

// InitializeTasks implements Store.
func (s *FileStore) InitializeTasks(category catalog.Category, tasks []Task) error {
	return s.mutate(category, func(doc *document) error {
		if len(doc.Tasks) > 0 {
			return ErrTasksExist
		}
		doc.Tasks = append([]Task(nil), tasks...)
		doc.touch()
		return nil
	})
}

// Tasks implements Store.
func (s *FileStore) Tasks(category catalog.Category) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(category)
	if err != nil {
		return nil, err
	}
	return append([]Task(nil), doc.Tasks...), nil
}

// StartTask implements Store.
func (s *FileStore) StartTask(category catalog.Category, taskID string) error {
	return s.mutate(category, func(doc *document) error {
		return doc.startTask(taskID)
	})
}

// CompleteTask implements Store.
func (s *FileStore) CompleteTask(category catalog.Category, taskID string, result TaskResult) error {
	return s.mutate(category, func(doc *document) error {
		return doc.completeTask(taskID, result)
	})
}

// FailTask implements Store.
func (s *FileStore) FailTask(category catalog.Category, taskID string, taskErr error) error {
	return s.mutate(category, func(doc *document) error {
		return doc.failTask(taskID, taskErr)
	})
}

// NextPending implements Store.
func (s *FileStore) NextPending(category catalog.Category, limit int) ([]Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(category)
	if err != nil {
		return nil, err
	}
	return doc.nextPending(limit), nil
}

// ResetFailed implements Store.
func (s *FileStore) ResetFailed(category catalog.Category) (int, error) {
	n := 0
	err := s.mutate(category, func(doc *document) error {
		n = doc.resetFailed()
		return nil
	})
	return n, err
}

// ResetStale implements Store.
func (s *FileStore) ResetStale(category catalog.Category, maxAge time.Duration) (int, error) {
	n := 0
	err := s.mutate(category, func(doc *document) error {
		n = doc.resetStale(maxAge)
		return nil
	})
	return n, err
}

// Progress implements Store.
func (s *FileStore) Progress(category catalog.Category) (Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(category)
	if err != nil {
		return Progress{}, err
	}
	return doc.progress(), nil
}

// Summary implements Store.
func (s *FileStore) Summary(category catalog.Category) (*Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(category)
	if err != nil {
		return nil, err
	}
	return doc.summary(), nil
}

// CanResume implements Store.
func (s *FileStore) CanResume(category catalog.Category) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(category)
	if err != nil {
		if err == ErrNoExecution {
			return false, nil
		}
		return false, err
	}
	return doc.canResume(), nil
}

// Clear implements Store.
func (s *FileStore) Clear(category catalog.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(category))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear state %s: %w", category, err)
	}
	return nil
}
