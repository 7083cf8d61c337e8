package catalog

import "errors"

// ErrNotFound is returned by Store.Load when no document exists for the
// requested category yet.
var ErrNotFound = errors.New("catalog document not found")

// Store is the persistence contract for catalog documents. Orchestrator and
// learner logic depend on this interface only, never on the storage medium.
//
// Save recomputes the document's aggregate counts and stamps LastUpdated
// before persisting. Implementations must never leave a partially-written
// document observable: a failed Save leaves the previous document intact.
type Store interface {
	// Load returns the document for category, or ErrNotFound.
	Load(category Category) (*Document, error)
	// Save persists the document, creating it on first write.
	Save(doc *Document) error
}
