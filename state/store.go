package state

import (
	"time"

	"github.com/hupe1980/catalogmesh/catalog"
)

// Store persists execution and task records per category. Every mutation is
// durable before the call returns; a crash between calls never loses more
// than the in-flight operation.
type Store interface {
	// CreateExecution starts a fresh execution record, replacing any prior
	// state for the category.
	CreateExecution(exec Execution) error

	// LoadExecution returns the category's execution record or
	// ErrNoExecution.
	LoadExecution(category catalog.Category) (*Execution, error)

	// SetPhase updates the execution phase.
	SetPhase(category catalog.Category, phase Phase) error

	// InitializeTasks stores the planned task list exactly once per
	// execution; a second call returns ErrTasksExist.
	InitializeTasks(category catalog.Category, tasks []Task) error

	// Tasks returns the category's tasks in plan order.
	Tasks(category catalog.Category) ([]Task, error)

	// StartTask moves a pending task to running and stamps its start time.
	StartTask(category catalog.Category, taskID string) error

	// CompleteTask moves a running task to completed and records its
	// result counts.
	CompleteTask(category catalog.Category, taskID string, result TaskResult) error

	// FailTask moves a running task to failed, bumps its attempt counter,
	// and stores a truncated error message.
	FailTask(category catalog.Category, taskID string, taskErr error) error

	// NextPending returns up to limit pending tasks in plan order.
	NextPending(category catalog.Category, limit int) ([]Task, error)

	// ResetFailed moves every failed task back to pending and returns how
	// many were reset.
	ResetFailed(category catalog.Category) (int, error)

	// ResetStale moves running tasks older than maxAge back to pending.
	// An operator command, not an automatic repair: a task may legitimately
	// still be running in another process.
	ResetStale(category catalog.Category, maxAge time.Duration) (int, error)

	// Progress returns the per-status task counts.
	Progress(category catalog.Category) (Progress, error)

	// Summary aggregates the execution for status reporting.
	Summary(category catalog.Category) (*Summary, error)

	// CanResume reports whether persisted state exists with a non-terminal
	// phase and at least one pending or running task. Failed tasks are
	// terminal; resuming them requires ResetFailed first.
	CanResume(category catalog.Category) (bool, error)

	// Clear removes all persisted state for the category.
	Clear(category catalog.Category) error
}
