package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/catalogmesh/catalog"
	"github.com/hupe1980/catalogmesh/orchestrator"
	"github.com/hupe1980/catalogmesh/provider"
	"github.com/hupe1980/catalogmesh/state"
)

type fixture struct {
	catalogs *catalog.InMemoryStore
	states   *state.InMemoryStore
	client   *provider.MockClient
	exec     *Executor
}

func newFixture(t *testing.T, optFns ...func(o *Options)) *fixture {
	t.Helper()
	f := &fixture{
		catalogs: catalog.NewInMemoryStore(),
		states:   state.NewInMemoryStore(),
		client:   provider.NewMockClient(),
	}
	orch := orchestrator.New(f.catalogs)
	f.exec = New(f.states, orch, f.client, optFns...)
	return f
}

func product(brand, name string) catalog.Product {
	return catalog.Product{
		ID:       catalog.ProductID(brand, name),
		Name:     name,
		Brand:    brand,
		Category: catalog.CategoryGolf,
		Source:   catalog.SourceProvider,
		Variants: []catalog.ProductVariant{
			{Name: name, Availability: catalog.AvailabilityCurrent},
		},
	}
}

func TestRun_SingleBrandHappyPath(t *testing.T) {
	f := newFixture(t)
	f.client.AddProducts("Titleist", product("Titleist", "TSR3 Driver"), product("Titleist", "Pro V1"))

	result, err := f.exec.Run(context.Background(), catalog.CategoryGolf, "Titleist")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Completed)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 2, result.Products)
	assert.Equal(t, 2, result.Variants)
	assert.NotEmpty(t, result.ExecutionID)

	exec, err := f.states.LoadExecution(catalog.CategoryGolf)
	require.NoError(t, err)
	assert.Equal(t, state.PhaseDone, exec.Phase)

	doc, err := f.catalogs.Load(catalog.CategoryGolf)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.ProductCount)
}

func TestRun_FullCategoryPlansEveryBrand(t *testing.T) {
	f := newFixture(t)

	result, err := f.exec.Run(context.Background(), catalog.CategoryGolf, "")
	require.NoError(t, err)

	cfg, _ := orchestrator.CategoryConfig(catalog.CategoryGolf)
	assert.Equal(t, len(cfg.PriorityBrands), result.Completed)
	assert.Len(t, f.client.Calls(), len(cfg.PriorityBrands))
}

func TestRun_FailureIsolated(t *testing.T) {
	f := newFixture(t)
	f.client.AddProducts("Titleist", product("Titleist", "TSR3 Driver"))
	f.client.FailBrand("Ping", &provider.Error{Op: "collect", Err: errors.New("rate limited"), Retryable: true})

	// run the whole category with one sabotaged brand
	result, err := f.exec.Run(context.Background(), catalog.CategoryGolf, "")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Errors, "Ping")

	// a failed task leaves the run interrupted, not done, so the operator
	// can reset and resume it
	exec, err := f.states.LoadExecution(catalog.CategoryGolf)
	require.NoError(t, err)
	assert.Equal(t, state.PhaseInterrupted, exec.Phase)

	// but with every task terminal there is nothing to resume yet
	ok, err := f.states.CanResume(catalog.CategoryGolf)
	require.NoError(t, err)
	assert.False(t, ok)

	tasks, err := f.states.Tasks(catalog.CategoryGolf)
	require.NoError(t, err)
	var failed int
	for _, task := range tasks {
		if task.Status == state.StatusFailed {
			failed++
			assert.Contains(t, task.Error, "rate limited")
		}
	}
	assert.Equal(t, 1, failed)
}

func TestRun_FatalAborts(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.Concurrency = 1 })
	f.client.FailBrand("TaylorMade", &provider.Error{Op: "collect", Err: errors.New("invalid api key"), Fatal: true})

	// TaylorMade is the first golf brand, so the run dies on task one
	result, err := f.exec.Run(context.Background(), catalog.CategoryGolf, "")
	require.Error(t, err)
	assert.True(t, provider.Fatal(err))
	assert.Equal(t, 0, result.Completed)
	assert.Equal(t, 1, result.Failed)

	exec, lerr := f.states.LoadExecution(catalog.CategoryGolf)
	require.NoError(t, lerr)
	assert.Equal(t, state.PhaseInterrupted, exec.Phase)

	// only one provider call was spent
	assert.Len(t, f.client.Calls(), 1)
}

func TestRun_DryRunTouchesNothing(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.DryRun = true })
	f.client.AddProducts("Titleist", product("Titleist", "TSR3 Driver"))

	result, err := f.exec.Run(context.Background(), catalog.CategoryGolf, "Titleist")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 0, result.Completed)
	assert.Empty(t, f.client.Calls())

	_, err = f.catalogs.Load(catalog.CategoryGolf)
	assert.True(t, errors.Is(err, catalog.ErrNotFound))

	// the walked plan is persisted, tasks are terminal
	exec, err := f.states.LoadExecution(catalog.CategoryGolf)
	require.NoError(t, err)
	assert.Equal(t, state.PhaseDone, exec.Phase)
}

func TestRun_ResumeWithoutStateFails(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.Resume = true })

	_, err := f.exec.Run(context.Background(), catalog.CategoryGolf, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoResumableRun))
}

func TestRun_ResumeAfterReset(t *testing.T) {
	f := newFixture(t)
	f.client.FailBrand("Titleist", &provider.Error{Op: "collect", Err: errors.New("rate limited"), Retryable: true})

	result, err := f.exec.Run(context.Background(), catalog.CategoryGolf, "Titleist")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)

	// provider recovers, but failed tasks are terminal: resuming without an
	// explicit reset finds nothing to do
	f.client.FailBrand("Titleist", nil)
	f.client.AddProducts("Titleist", product("Titleist", "TSR3 Driver"))

	resumed := newFixtureFrom(t, f, func(o *Options) { o.Resume = true })
	_, err = resumed.Run(context.Background(), catalog.CategoryGolf, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoResumableRun))

	// after the operator resets, the resumed run picks the task back up
	n, err := f.states.ResetFailed(catalog.CategoryGolf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	result, err = resumed.Run(context.Background(), catalog.CategoryGolf, "")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Completed)
	assert.Equal(t, 0, result.Failed)

	exec, err := f.states.LoadExecution(catalog.CategoryGolf)
	require.NoError(t, err)
	assert.Equal(t, state.PhaseDone, exec.Phase)
}

// newFixtureFrom builds a second executor over an existing fixture's stores.
func newFixtureFrom(t *testing.T, f *fixture, optFns ...func(o *Options)) *Executor {
	t.Helper()
	orch := orchestrator.New(f.catalogs)
	return New(f.states, orch, f.client, optFns...)
}

func TestRun_FreshRunReplacesPriorState(t *testing.T) {
	f := newFixture(t)

	first, err := f.exec.Run(context.Background(), catalog.CategoryGolf, "Titleist")
	require.NoError(t, err)

	second, err := f.exec.Run(context.Background(), catalog.CategoryGolf, "Ping")
	require.NoError(t, err)
	assert.NotEqual(t, first.ExecutionID, second.ExecutionID)

	tasks, err := f.states.Tasks(catalog.CategoryGolf)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Ping", tasks[0].Brand)
}

func TestRun_CallBudget(t *testing.T) {
	f := newFixture(t, func(o *Options) {
		o.Concurrency = 1
		o.MaxProviderCalls = 2
	})

	result, err := f.exec.Run(context.Background(), catalog.CategoryGolf, "")
	require.Error(t, err)
	assert.True(t, provider.Fatal(err))
	assert.Equal(t, 2, result.Completed)
	// only the budgeted calls reached the provider
	assert.Len(t, f.client.Calls(), 2)
}

func TestCallLimiter(t *testing.T) {
	cl := NewCallLimiter(2)
	assert.Equal(t, 2, cl.Remaining())
	require.NoError(t, cl.Increment())
	require.NoError(t, cl.Increment())
	assert.Equal(t, 0, cl.Remaining())
	assert.Error(t, cl.Increment())
	assert.Equal(t, 3, cl.Count())

	unlimited := NewCallLimiter(0)
	assert.Equal(t, -1, unlimited.Remaining())
	require.NoError(t, unlimited.Increment())
}
