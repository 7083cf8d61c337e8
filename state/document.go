package state

import (
	"time"
)

// maxErrorLen bounds persisted task error messages so one verbose API
// failure cannot bloat the state file.
const maxErrorLen = 500

// document is the persisted per-category state: one execution record plus
// its task list. Both store implementations share its mutation logic so the
// lifecycle rules live in exactly one place.
type document struct {
	Execution Execution `json:"execution"`
	Tasks     []Task    `json:"tasks"`
}

func (d *document) touch() {
	d.Execution.UpdatedAt = time.Now().UTC()
}

func (d *document) task(taskID string) (*Task, error) {
	for i := range d.Tasks {
		if d.Tasks[i].ID == taskID {
			return &d.Tasks[i], nil
		}
	}
	return nil, ErrTaskNotFound
}

func (d *document) transition(taskID string, to Status) (*Task, error) {
	t, err := d.task(taskID)
	if err != nil {
		return nil, err
	}
	if !canTransition(t.Status, to) {
		return nil, &TransitionError{TaskID: taskID, From: t.Status, To: to}
	}
	t.Status = to
	return t, nil
}

func (d *document) startTask(taskID string) error {
	t, err := d.transition(taskID, StatusRunning)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	t.StartedAt = &now
	t.Error = ""
	d.touch()
	return nil
}

func (d *document) completeTask(taskID string, result TaskResult) error {
	t, err := d.transition(taskID, StatusCompleted)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	t.FinishedAt = &now
	t.Products = result.Products
	t.Variants = result.Variants
	d.touch()
	return nil
}

func (d *document) failTask(taskID string, taskErr error) error {
	t, err := d.transition(taskID, StatusFailed)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	t.FinishedAt = &now
	t.Attempts++
	msg := ""
	if taskErr != nil {
		msg = taskErr.Error()
	}
	if len(msg) > maxErrorLen {
		msg = msg[:maxErrorLen]
	}
	t.Error = msg
	d.touch()
	return nil
}

func (d *document) nextPending(limit int) []Task {
	var out []Task
	for _, t := range d.Tasks {
		if t.Status != StatusPending {
			continue
		}
		out = append(out, t)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

func (d *document) resetFailed() int {
	n := 0
	for i := range d.Tasks {
		if d.Tasks[i].Status != StatusFailed {
			continue
		}
		d.Tasks[i].Status = StatusPending
		d.Tasks[i].Error = ""
		d.Tasks[i].StartedAt = nil
		d.Tasks[i].FinishedAt = nil
		n++
	}
	if n > 0 {
		d.touch()
	}
	return n
}

func (d *document) resetStale(maxAge time.Duration) int {
	cutoff := time.Now().UTC().Add(-maxAge)
	n := 0
	for i := range d.Tasks {
		t := &d.Tasks[i]
		if t.Status != StatusRunning {
			continue
		}
		if t.StartedAt != nil && t.StartedAt.After(cutoff) {
			continue
		}
		t.Status = StatusPending
		t.StartedAt = nil
		n++
	}
	if n > 0 {
		d.touch()
	}
	return n
}

func (d *document) progress() Progress {
	p := Progress{Total: len(d.Tasks)}
	for _, t := range d.Tasks {
		switch t.Status {
		case StatusPending:
			p.Pending++
		case StatusRunning:
			p.Running++
		case StatusCompleted:
			p.Completed++
		case StatusFailed:
			p.Failed++
		}
	}
	return p
}

func (d *document) summary() *Summary {
	s := &Summary{
		Execution: d.Execution,
		Progress:  d.progress(),
	}
	for _, t := range d.Tasks {
		if t.Status == StatusCompleted {
			s.Products += t.Products
			s.Variants += t.Variants
		}
		if t.Status == StatusFailed {
			s.Failures = append(s.Failures, t)
		}
	}
	return s
}

func (d *document) canResume() bool {
	if d.Execution.Phase == PhaseDone {
		return false
	}
	for _, t := range d.Tasks {
		switch t.Status {
		case StatusPending, StatusRunning:
			return true
		}
	}
	return false
}
