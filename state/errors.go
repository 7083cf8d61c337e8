package state

import (
	"errors"
	"fmt"
)

var (
	// ErrNoExecution marks a load for a category without persisted state.
	ErrNoExecution = errors.New("no execution state")
	// ErrTasksExist guards against re-initializing an execution's task list.
	ErrTasksExist = errors.New("tasks already initialized")
	// ErrInvalidTransition marks a task status change the lifecycle forbids.
	ErrInvalidTransition = errors.New("invalid task transition")
	// ErrTaskNotFound marks an operation on an unknown task id.
	ErrTaskNotFound = errors.New("task not found")
)

// TransitionError reports a rejected task status change.
type TransitionError struct {
	TaskID string
	From   Status
	To     Status
}

// Error implements the error interface.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("task %s: %s -> %s: %v", e.TaskID, e.From, e.To, ErrInvalidTransition)
}

// Unwrap exposes ErrInvalidTransition for errors.Is checks.
func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
