// Package orchestrator plans collection work and merges validated results
// into the catalog. It owns the per-category collection profiles and the
// prompts sent to provider backends; merging is append-only and idempotent,
// keyed by the deterministic product id.
package orchestrator

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/catalogmesh/catalog"
	"github.com/hupe1980/catalogmesh/logging"
	"github.com/hupe1980/catalogmesh/provider"
	"github.com/hupe1980/catalogmesh/state"
)

// Options configures the orchestrator.
type Options struct {
	Logger logging.Logger
}

// Orchestrator turns category profiles into task plans and folds collection
// results into the catalog store.
type Orchestrator struct {
	store catalog.Store
	opts  Options

	// mergeMu serializes the load-modify-save cycle of MergeResult.
	// Concurrent brand tasks merge into the same category document, and the
	// store only serializes individual Load and Save calls.
	mergeMu sync.Mutex
}

// New creates an orchestrator over the given catalog store.
func New(store catalog.Store, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Orchestrator{store: store, opts: opts}
}

// Config returns the collection profile for a category.
func (o *Orchestrator) Config(category catalog.Category) (Config, error) {
	return CategoryConfig(category)
}

// PlanTasks builds the pending task list for a category: one task per
// priority brand, in profile order. A non-empty brandFilter narrows the
// plan to that single brand (matched case-insensitively against the
// profile; unknown brands still get a task so ad hoc collection works).
func (o *Orchestrator) PlanTasks(category catalog.Category, brandFilter string) ([]state.Task, error) {
	cfg, err := CategoryConfig(category)
	if err != nil {
		return nil, err
	}

	if brandFilter != "" {
		brand := brandFilter
		for _, b := range cfg.PriorityBrands {
			if strings.EqualFold(b, brandFilter) {
				brand = b
				break
			}
		}
		return []state.Task{state.NewTask(category, brand)}, nil
	}

	tasks := make([]state.Task, 0, len(cfg.PriorityBrands))
	for _, brand := range cfg.PriorityBrands {
		tasks = append(tasks, state.NewTask(category, brand))
	}
	return tasks, nil
}

// CollectionRequest builds the provider request for one brand task.
func (o *Orchestrator) CollectionRequest(category catalog.Category, brand string) (provider.Request, error) {
	cfg, err := CategoryConfig(category)
	if err != nil {
		return provider.Request{}, err
	}
	return provider.Request{
		Category: category,
		Brand:    brand,
		System:   systemPrompt(cfg),
		Prompt:   brandPrompt(cfg, brand),
	}, nil
}

// MergeSummary reports what a merge changed.
type MergeSummary struct {
	Added    int
	Skipped  int
	Variants int
}

// MergeResult folds validated products into the category document under the
// brand's catalog. Existing product ids are skipped, never overwritten, so
// re-running a task cannot mutate prior data. The document is persisted
// before the call returns. Safe for concurrent use: merges into the same
// store are serialized so no brand's write is lost.
func (o *Orchestrator) MergeResult(category catalog.Category, brand string, products []catalog.Product) (MergeSummary, error) {
	o.mergeMu.Lock()
	defer o.mergeMu.Unlock()

	doc, err := o.store.Load(category)
	if err != nil {
		if !errors.Is(err, catalog.ErrNotFound) {
			return MergeSummary{}, fmt.Errorf("load catalog %s: %w", category, err)
		}
		doc = catalog.NewDocument(category)
	}

	bc := doc.EnsureBrand(brand)

	var summary MergeSummary
	for _, p := range products {
		if bc.HasProduct(p.ID) {
			summary.Skipped++
			continue
		}
		bc.Products = append(bc.Products, p)
		summary.Added++
		summary.Variants += len(p.Variants)
	}

	if summary.Added == 0 {
		o.opts.Logger.Debug("merge added nothing", "category", category, "brand", brand, "skipped", summary.Skipped)
		return summary, nil
	}

	bc.LastUpdated = time.Now().UTC()
	if err := o.store.Save(doc); err != nil {
		return MergeSummary{}, fmt.Errorf("save catalog %s: %w", category, err)
	}

	o.opts.Logger.Info("merged collection result",
		"category", category, "brand", brand,
		"added", summary.Added, "skipped", summary.Skipped, "variants", summary.Variants)
	return summary, nil
}
