package state

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/hupe1980/catalogmesh/catalog"
)

// InMemoryStore keeps state documents in a map. It shares the document
// lifecycle logic with FileStore and backs tests and dry runs.
type InMemoryStore struct {
	mu   sync.RWMutex
	docs map[catalog.Category]*document
}

// NewInMemoryStore creates an empty in-memory state store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{docs: make(map[catalog.Category]*document)}
}

func (s *InMemoryStore) doc(category catalog.Category) (*document, error) {
	doc, ok := s.docs[category]
	if !ok {
		return nil, ErrNoExecution
	}
	return doc, nil
}

// CreateExecution implements Store.
func (s *InMemoryStore) CreateExecution(exec Execution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[exec.Category] = &document{Execution: exec, Tasks: []Task{}}
	return nil
}

// LoadExecution implements Store.
func (s *InMemoryStore) LoadExecution(category catalog.Category) (*Execution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.doc(category)
	if err != nil {
		return nil, err
	}
	exec := doc.Execution
	return &exec, nil
}

// SetPhase implements Store.
func (s *InMemoryStore) SetPhase(category catalog.Category, phase Phase) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.doc(category)
	if err != nil {
		return err
	}
	doc.Execution.Phase = phase
	doc.touch()
	return nil
}

// InitializeTasks implements Store.
func (s *InMemoryStore) InitializeTasks(category catalog.Category, tasks []Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.doc(category)
	if err != nil {
		return err
	}
	if len(doc.Tasks) > 0 {
		return ErrTasksExist
	}
	doc.Tasks = append([]Task(nil), tasks...)
	doc.touch()
	return nil
}

// Tasks implements Store.
func (s *InMemoryStore) Tasks(category catalog.Category) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.doc(category)
	if err != nil {
		return nil, err
	}
	return append([]Task(nil), doc.Tasks...), nil
}

// StartTask implements Store.
func (s *InMemoryStore) StartTask(category catalog.Category, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.doc(category)
	if err != nil {
		return err
	}
	return doc.startTask(taskID)
}

// CompleteTask implements Store.
func (s *InMemoryStore) CompleteTask(category catalog.Category, taskID string, result TaskResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.doc(category)
	if err != nil {
		return err
	}
	return doc.completeTask(taskID, result)
}

// FailTask implements Store.
func (s *InMemoryStore) FailTask(category catalog.Category, taskID string, taskErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.doc(category)
	if err != nil {
		return err
	}
	return doc.failTask(taskID, taskErr)
}

// NextPending implements Store.
func (s *InMemoryStore) NextPending(category catalog.Category, limit int) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.doc(category)
	if err != nil {
		return nil, err
	}
	return doc.nextPending(limit), nil
}

// ResetFailed implements Store.
func (s *InMemoryStore) ResetFailed(category catalog.Category) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.doc(category)
	if err != nil {
		return 0, err
	}
	return doc.resetFailed(), nil
}

// ResetStale implements Store.
func (s *InMemoryStore) ResetStale(category catalog.Category, maxAge time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.doc(category)
	if err != nil {
		return 0, err
	}
	return doc.resetStale(maxAge), nil
}

// Progress implements Store.
func (s *InMemoryStore) Progress(category catalog.Category) (Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.doc(category)
	if err != nil {
		return Progress{}, err
	}
	return doc.progress(), nil
}

// Summary implements Store.
func (s *InMemoryStore) Summary(category catalog.Category) (*Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.doc(category)
	if err != nil {
		return nil, err
	}
	return doc.summary(), nil
}

// CanResume implements Store.
func (s *InMemoryStore) CanResume(category catalog.Category) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := s.doc(category)
	if err != nil {
		if err == ErrNoExecution {
			return false, nil
		}
		return false, err
	}
	return doc.canResume(), nil
}

// Clear implements Store.
func (s *InMemoryStore) Clear(category catalog.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, category)
	return nil
}

// Serialized returns the category's document as JSON, or nil. Tests use it
// to assert a store's content did not change across an operation.
func (s *InMemoryStore) Serialized(category catalog.Category) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[category]
	if !ok {
		return nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil
	}
	return data
}

var _ Store = (*FileStore)(nil)
var _ Store = (*InMemoryStore)(nil)
