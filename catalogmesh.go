// Package catalogmesh provides a high-level façade over the collection
// engine: catalog and state stores, provider backends, the orchestrator,
// the executor, and the learner. Most applications interact with this
// package by:
//  1. Loading a config.Config (env, YAML file, or Default)
//  2. Calling Run() to collect a category, or NewLearner() to absorb
//     identification sightings
//
// The façade delegates the actual work to executor.Executor while keeping
// setup ergonomics concise. All defaults are safe for local development;
// production deployments typically supply API keys via the environment and
// a structured logger via Setup.
package catalogmesh

import (
	"context"
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/hupe1980/catalogmesh/catalog"
	"github.com/hupe1980/catalogmesh/config"
	"github.com/hupe1980/catalogmesh/executor"
	"github.com/hupe1980/catalogmesh/learner"
	"github.com/hupe1980/catalogmesh/logging"
	"github.com/hupe1980/catalogmesh/orchestrator"
	"github.com/hupe1980/catalogmesh/provider"
	"github.com/hupe1980/catalogmesh/provider/anthropic"
	"github.com/hupe1980/catalogmesh/provider/openai"
	"github.com/hupe1980/catalogmesh/state"
)

// NewProvider creates a provider client by name. Unknown names are a
// configuration error.
func NewProvider(cfg config.Config) (provider.Client, error) {
	switch cfg.Provider {
	case "anthropic":
		return anthropic.New(func(o *anthropic.Options) {
			if cfg.Model != "" {
				o.Model = anthropicsdk.Model(cfg.Model)
			}
			o.APIKey = cfg.APIKey
		}), nil
	case "openai":
		return openai.New(func(o *openai.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			o.APIKey = cfg.APIKey
		}), nil
	case "mock":
		return provider.NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// RunOptions are the per-invocation knobs of Run.
type RunOptions struct {
	// Brand narrows the run to a single brand.
	Brand string
	// DryRun plans and walks tasks without provider calls.
	DryRun bool
	// Resume continues the category's persisted run.
	Resume bool
	Logger logging.Logger
}

// Run wires stores, provider, orchestrator, and executor from the config
// and executes a collection run for one category.
func Run(ctx context.Context, cfg config.Config, category catalog.Category, opts RunOptions) (*executor.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	catalogs, err := catalog.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	states, err := state.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	client, err := NewProvider(cfg)
	if err != nil {
		return nil, err
	}

	orch := orchestrator.New(catalogs, func(o *orchestrator.Options) {
		o.Logger = logger
	})
	exec := executor.New(states, orch, client, func(o *executor.Options) {
		o.Concurrency = cfg.Concurrency
		o.DryRun = opts.DryRun
		o.Resume = opts.Resume
		o.MaxProviderCalls = cfg.MaxProviderCalls
		o.CallTimeout = cfg.CallTimeout
		o.Logger = logger
	})

	return exec.Run(ctx, category, opts.Brand)
}

// NewLearner creates a learner over the config's catalog store.
func NewLearner(cfg config.Config, logger logging.Logger) (*learner.Learner, error) {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	catalogs, err := catalog.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}
	return learner.New(catalogs, func(o *learner.Options) {
		o.Logger = logger
	}), nil
}
