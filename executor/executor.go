// Package executor drives collection runs: it plans tasks through the
// orchestrator, fans them out to the provider with bounded concurrency, and
// records every outcome in the state store so an interrupted run resumes
// where it stopped.
package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hupe1980/catalogmesh/catalog"
	"github.com/hupe1980/catalogmesh/logging"
	"github.com/hupe1980/catalogmesh/orchestrator"
	"github.com/hupe1980/catalogmesh/provider"
	"github.com/hupe1980/catalogmesh/state"
)

// ErrNoResumableRun marks a resume request for a category without
// outstanding work.
var ErrNoResumableRun = errors.New("no resumable run")

// Options configures a collection run.
type Options struct {
	// Concurrency bounds the number of tasks in flight.
	Concurrency int
	// DryRun plans and walks tasks without calling the provider or
	// touching the catalog.
	DryRun bool
	// Resume continues the category's persisted run instead of starting
	// fresh. Only pending and running tasks are picked up; failed tasks
	// need an explicit reset first.
	Resume bool
	// MaxProviderCalls caps provider calls per run. Zero means unlimited.
	MaxProviderCalls int
	// CallTimeout bounds a single provider call.
	CallTimeout time.Duration
	Logger      logging.Logger
}

// Executor runs collection tasks against a provider backend.
type Executor struct {
	states state.Store
	orch   *orchestrator.Orchestrator
	client provider.Client
	opts   Options
}

// New creates an executor.
func New(states state.Store, orch *orchestrator.Orchestrator, client provider.Client, optFns ...func(o *Options)) *Executor {
	opts := Options{
		Concurrency: 3,
		CallTimeout: 120 * time.Second,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Executor{states: states, orch: orch, client: client, opts: opts}
}

// Result summarizes a finished (or interrupted) run.
type Result struct {
	ExecutionID string
	Category    catalog.Category
	Completed   int
	Failed      int
	Skipped     int
	Products    int
	Variants    int
	// Errors maps brand to the failure that sank its task.
	Errors   map[string]string
	Duration time.Duration
}

// Run executes the collection for one category. A fresh run clears prior
// state; with Resume set, the persisted run continues its outstanding
// tasks (failed tasks stay failed until the operator resets them). A fatal
// provider error or a persistence failure aborts the run and leaves the
// phase interrupted; per-task failures are isolated and recorded.
func (e *Executor) Run(ctx context.Context, category catalog.Category, brandFilter string) (*Result, error) {
	start := time.Now()

	exec, err := e.prepare(category, brandFilter)
	if err != nil {
		return nil, err
	}

	result := &Result{
		ExecutionID: exec.ID,
		Category:    category,
		Errors:      make(map[string]string),
	}

	limiter := NewCallLimiter(e.opts.MaxProviderCalls)
	runErr := e.loop(ctx, category, limiter, result)

	// done only when every task completed; failed or outstanding tasks
	// leave the run interrupted so it stays resumable.
	phase := state.PhaseDone
	if runErr != nil {
		phase = state.PhaseInterrupted
	} else if progress, perr := e.states.Progress(category); perr == nil && (progress.Remaining() > 0 || progress.Failed > 0) {
		phase = state.PhaseInterrupted
	}
	if err := e.states.SetPhase(category, phase); err != nil {
		e.opts.Logger.Error("set phase failed", "category", category, "error", err)
	}

	result.Duration = time.Since(start)
	e.opts.Logger.Info("run finished",
		"category", category, "phase", phase,
		"completed", result.Completed, "failed", result.Failed, "skipped", result.Skipped,
		"products", result.Products, "duration", result.Duration)

	if runErr != nil {
		return result, runErr
	}
	return result, nil
}

// prepare sets up the execution record and task list for the run.
func (e *Executor) prepare(category catalog.Category, brandFilter string) (*state.Execution, error) {
	if e.opts.Resume {
		ok, err := e.states.CanResume(category)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w for category %s", ErrNoResumableRun, category)
		}
		if err := e.states.SetPhase(category, state.PhaseCollecting); err != nil {
			return nil, err
		}
		return e.states.LoadExecution(category)
	}

	tasks, err := e.orch.PlanTasks(category, brandFilter)
	if err != nil {
		return nil, err
	}

	if err := e.states.Clear(category); err != nil {
		return nil, err
	}
	exec := state.NewExecution(category, e.client.Info().Name, e.opts.Concurrency)
	if err := e.states.CreateExecution(exec); err != nil {
		return nil, err
	}
	if err := e.states.InitializeTasks(category, tasks); err != nil {
		return nil, err
	}
	e.opts.Logger.Info("planned run",
		"category", category, "tasks", len(tasks),
		"provider", exec.Provider, "concurrency", e.opts.Concurrency, "dryRun", e.opts.DryRun)
	return &exec, nil
}

// loop processes pending tasks batch by batch until none remain or the run
// aborts.
func (e *Executor) loop(ctx context.Context, category catalog.Category, limiter *CallLimiter, result *Result) error {
	var (
		mu       sync.Mutex
		fatalErr error
	)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if fatalErr != nil {
			return fatalErr
		}

		batch, err := e.states.NextPending(category, e.opts.Concurrency)
		if err != nil {
			return err
		}
		if len(batch) == 0 {
			return nil
		}

		var wg sync.WaitGroup
		for _, task := range batch {
			wg.Add(1)
			go func(task state.Task) {
				defer wg.Done()

				// runTask returns nil for isolated task failures; anything
				// non-nil aborts the run.
				if err := e.runTask(ctx, task, limiter, result, &mu); err != nil {
					mu.Lock()
					if fatalErr == nil {
						fatalErr = err
					}
					mu.Unlock()
				}
			}(task)
		}
		wg.Wait()
	}
}

// runTask executes one brand task end to end. The returned error is nil for
// isolated task failures; only run-aborting errors propagate.
func (e *Executor) runTask(ctx context.Context, task state.Task, limiter *CallLimiter, result *Result, mu *sync.Mutex) error {
	if err := e.states.StartTask(task.Category, task.ID); err != nil {
		return err
	}

	if e.opts.DryRun {
		if err := e.states.CompleteTask(task.Category, task.ID, state.TaskResult{}); err != nil {
			return err
		}
		mu.Lock()
		result.Skipped++
		mu.Unlock()
		e.opts.Logger.Debug("dry run, task skipped", "task", task.ID)
		return nil
	}

	if err := limiter.Increment(); err != nil {
		// Budget exhausted: the task goes back to failed so a resume can
		// pick it up with a fresh budget.
		if ferr := e.states.FailTask(task.Category, task.ID, err); ferr != nil {
			return ferr
		}
		mu.Lock()
		result.Failed++
		result.Errors[task.Brand] = err.Error()
		mu.Unlock()
		return &provider.Error{Op: "call budget", Err: err, Fatal: true}
	}

	req, err := e.orch.CollectionRequest(task.Category, task.Brand)
	if err != nil {
		return err
	}

	callCtx := ctx
	if e.opts.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.opts.CallTimeout)
		defer cancel()
	}

	res, err := e.client.Collect(callCtx, req)
	if err != nil {
		if ferr := e.states.FailTask(task.Category, task.ID, err); ferr != nil {
			return ferr
		}
		mu.Lock()
		result.Failed++
		result.Errors[task.Brand] = err.Error()
		mu.Unlock()
		e.opts.Logger.Warn("task failed", "task", task.ID, "brand", task.Brand, "error", err)
		if provider.Fatal(err) {
			return err
		}
		return nil
	}

	merge, err := e.orch.MergeResult(task.Category, task.Brand, res.Products)
	if err != nil {
		// Catalog persistence failures abort the run: continuing would
		// burn provider quota on results we cannot keep.
		if ferr := e.states.FailTask(task.Category, task.ID, err); ferr != nil {
			return ferr
		}
		mu.Lock()
		result.Failed++
		result.Errors[task.Brand] = err.Error()
		mu.Unlock()
		return err
	}

	taskResult := state.TaskResult{Products: merge.Added, Variants: merge.Variants}
	if err := e.states.CompleteTask(task.Category, task.ID, taskResult); err != nil {
		return err
	}

	mu.Lock()
	result.Completed++
	result.Products += merge.Added
	result.Variants += merge.Variants
	mu.Unlock()

	e.opts.Logger.Info("task completed",
		"task", task.ID, "brand", task.Brand,
		"added", merge.Added, "skipped", merge.Skipped, "variants", merge.Variants,
		"tokens", res.TokensUsed)
	return nil
}
