package provider

import (
	"context"
	"strings"
	"sync"

	"github.com/hupe1980/catalogmesh/catalog"
)

// MockClient is an in-memory Client for tests. Responses are keyed by brand
// name (case-insensitive); brands without a scripted response or failure
// yield an empty result.
type MockClient struct {
	mu       sync.Mutex
	products map[string][]catalog.Product
	failures map[string]error
	calls    []Request
}

// NewMockClient creates an empty mock client.
func NewMockClient() *MockClient {
	return &MockClient{
		products: make(map[string][]catalog.Product),
		failures: make(map[string]error),
	}
}

// AddProducts scripts the products returned for a brand.
func (m *MockClient) AddProducts(brand string, products ...catalog.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(brand)
	m.products[key] = append(m.products[key], products...)
}

// FailBrand scripts an error for a brand. The error is returned on every
// call for that brand until replaced; a nil err clears the failure.
func (m *MockClient) FailBrand(brand string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(brand)
	if err == nil {
		delete(m.failures, key)
		return
	}
	m.failures[key] = err
}

// Collect implements Client.
func (m *MockClient) Collect(_ context.Context, req Request) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)

	key := strings.ToLower(req.Brand)
	if err, ok := m.failures[key]; ok {
		return nil, err
	}
	products := make([]catalog.Product, len(m.products[key]))
	copy(products, m.products[key])
	return &Result{Products: products, Model: "mock"}, nil
}

// Info implements Client.
func (m *MockClient) Info() Info {
	return Info{Name: "mock", Model: "mock"}
}

// Calls returns the requests received so far, in order.
func (m *MockClient) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]Request, len(m.calls))
	copy(calls, m.calls)
	return calls
}
