package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/catalogmesh/catalog"
)

// Request is a single collection unit handed to a provider backend: list the
// products of one brand in one category. Prompts are supplied by the
// orchestrator's per-category configuration so the client stays free of
// domain knowledge.
type Request struct {
	Category catalog.Category
	Brand    string
	System   string // system prompt
	Prompt   string // user prompt
}

// Result is a validated collection outcome.
type Result struct {
	Products   []catalog.Product
	Raw        string // raw model output, kept for diagnostics
	Model      string
	TokensUsed int
}

// VariantCount sums SKU-level variants across the collected products.
func (r *Result) VariantCount() int {
	n := 0
	for i := range r.Products {
		n += len(r.Products[i].Variants)
	}
	return n
}

// Info contains metadata about a provider client implementation.
type Info struct {
	Name  string // "anthropic", "openai", "mock"
	Model string
}

// Client is the pluggable wrapper around interchangeable language-model
// backends. Implementations own retry/backoff for transient failures and
// return only validated products.
type Client interface {
	Collect(ctx context.Context, req Request) (*Result, error)
	Info() Info
}

// ErrParse marks provider output that could not be decoded into products.
// Parse failures are never retried automatically: retrying would spend
// quota on input the model already got wrong once.
var ErrParse = errors.New("unparseable provider response")

// Error classifies a provider failure for the retry policy and the
// executor. Retryable errors are rate limits and transient network
// failures; Fatal errors are authentication or configuration problems that
// would fail every task in the run identically.
type Error struct {
	Op        string
	Err       error
	Retryable bool
	Fatal     bool
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes the wrapped cause.
func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether err is a transient provider failure worth
// another attempt. Used as the retry policy classifier.
func Retryable(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

// Fatal reports whether err should abort the whole run instead of failing a
// single task.
func Fatal(err error) bool {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Fatal
	}
	return false
}

// ClassifyStatus wraps an API error according to its HTTP status code.
// 401/403 are fatal (bad credentials burn every task), 429 and 5xx are
// retryable, anything else fails the task directly.
func ClassifyStatus(op string, status int, err error) *Error {
	switch {
	case status == 401 || status == 403:
		return &Error{Op: op, Err: err, Fatal: true}
	case status == 429 || status == 500 || status == 502 || status == 503 || status == 529:
		return &Error{Op: op, Err: err, Retryable: true}
	default:
		return &Error{Op: op, Err: err}
	}
}
