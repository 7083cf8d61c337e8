// Package state persists execution and task records for resumable
// collection runs. One document per category survives process restarts;
// tasks move through a validated lifecycle so a crashed run can be resumed
// exactly where it stopped.
package state

import (
	"time"

	"github.com/hupe1980/catalogmesh/catalog"
	"github.com/hupe1980/catalogmesh/internal/util"
)

// Status is the task lifecycle state. Transitions are validated: pending
// may start, running may complete or fail, failed may be reset to pending.
// Completed is terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether the status admits no further transitions except
// an explicit failed-task reset.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// canTransition is the task state machine's single source of truth.
func canTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusRunning
	case StatusRunning:
		return to == StatusCompleted || to == StatusFailed
	case StatusFailed:
		return to == StatusPending
	}
	return false
}

// Phase is the execution-level lifecycle.
type Phase string

const (
	// PhaseCollecting marks a run with work still outstanding.
	PhaseCollecting Phase = "collecting"
	// PhaseDone marks a run that finished with no failed tasks. Terminal.
	PhaseDone Phase = "done"
	// PhaseInterrupted marks a run that was aborted or ended with failed
	// tasks. Resumable.
	PhaseInterrupted Phase = "interrupted"
)

// Task is one unit of collection work: one brand within one category.
type Task struct {
	ID         string           `json:"id"`
	Category   catalog.Category `json:"category"`
	Brand      string           `json:"brand"`
	Status     Status           `json:"status"`
	Attempts   int              `json:"attempts"`
	Products   int              `json:"products"`
	Variants   int              `json:"variants"`
	Error      string           `json:"error,omitempty"`
	StartedAt  *time.Time       `json:"startedAt,omitempty"`
	FinishedAt *time.Time       `json:"finishedAt,omitempty"`
}

// NewTask creates a pending task. The id is deterministic so resumed runs
// address the same records: category plus the brand slug.
func NewTask(category catalog.Category, brand string) Task {
	return Task{
		ID:       string(category) + "-" + util.Slug(brand),
		Category: category,
		Brand:    brand,
		Status:   StatusPending,
	}
}

// Execution is the run-level record owning a category's tasks.
type Execution struct {
	ID          string           `json:"id"`
	Category    catalog.Category `json:"category"`
	Provider    string           `json:"provider"`
	Phase       Phase            `json:"phase"`
	Concurrency int              `json:"concurrency"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// NewExecution creates a collecting execution with a fresh id.
func NewExecution(category catalog.Category, provider string, concurrency int) Execution {
	now := time.Now().UTC()
	return Execution{
		ID:          util.NewID(),
		Category:    category,
		Provider:    provider,
		Phase:       PhaseCollecting,
		Concurrency: concurrency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// TaskResult carries the per-task outcome recorded on completion.
type TaskResult struct {
	Products int
	Variants int
}

// Progress is a point-in-time count of tasks per status.
type Progress struct {
	Pending   int `json:"pending"`
	Running   int `json:"running"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
	Total     int `json:"total"`
}

// Remaining reports work still outstanding (pending or running).
func (p Progress) Remaining() int { return p.Pending + p.Running }

// Summary aggregates an execution's state for status reporting.
type Summary struct {
	Execution Execution `json:"execution"`
	Progress  Progress  `json:"progress"`
	Products  int       `json:"products"`
	Variants  int       `json:"variants"`
	Failures  []Task    `json:"failures,omitempty"`
}
