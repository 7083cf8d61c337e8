package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	catalogmesh "github.com/hupe1980/catalogmesh"
	"github.com/hupe1980/catalogmesh/catalog"
	"github.com/hupe1980/catalogmesh/state"
)

var (
	collectCategory    string
	collectBrand       string
	collectProvider    string
	collectConcurrency int
	collectMaxCalls    int
	collectDryRun      bool
	collectResume      bool
	collectFull        bool
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Run a collection for one category",
	Long: `Collect products for every priority brand of a category, or a single
brand with --brand.

A fresh run replaces the category's prior run state. Use --resume to
continue an interrupted run's outstanding tasks; failed tasks need a
"reset" first. Use --full to explicitly discard prior state before
planning.

Examples:
  catalogmesh collect --category golf
  catalogmesh collect --category golf --brand Titleist
  catalogmesh collect --category tech --resume
  catalogmesh collect --category golf --dry-run`,
	RunE: runCollect,
}

func init() {
	collectCmd.Flags().StringVarP(&collectCategory, "category", "c", "", "category to collect (required)")
	collectCmd.Flags().StringVarP(&collectBrand, "brand", "b", "", "collect a single brand")
	collectCmd.Flags().StringVar(&collectProvider, "provider", "", "provider backend (anthropic, openai)")
	collectCmd.Flags().IntVar(&collectConcurrency, "concurrency", 0, "max tasks in flight")
	collectCmd.Flags().IntVar(&collectMaxCalls, "max-calls", 0, "cap provider calls for this run (0 = unlimited)")
	collectCmd.Flags().BoolVar(&collectDryRun, "dry-run", false, "plan and walk tasks without provider calls")
	collectCmd.Flags().BoolVar(&collectResume, "resume", false, "continue the persisted run")
	collectCmd.Flags().BoolVar(&collectFull, "full", false, "discard prior run state before planning")
	_ = collectCmd.MarkFlagRequired("category")
	collectCmd.MarkFlagsMutuallyExclusive("resume", "full")
}

func runCollect(cmd *cobra.Command, args []string) error {
	category, err := catalog.ParseCategory(collectCategory)
	if err != nil {
		return err
	}

	if collectProvider != "" {
		cfg.Provider = collectProvider
	}
	if collectConcurrency > 0 {
		cfg.Concurrency = collectConcurrency
	}
	if collectMaxCalls > 0 {
		cfg.MaxProviderCalls = collectMaxCalls
	}

	if collectFull {
		states, err := state.NewFileStore(cfg.DataDir)
		if err != nil {
			return err
		}
		if err := states.Clear(category); err != nil {
			return err
		}
		fmt.Printf("Cleared prior run state for %s\n", category)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := catalogmesh.Run(ctx, cfg, category, catalogmesh.RunOptions{
		Brand:  collectBrand,
		DryRun: collectDryRun,
		Resume: collectResume,
		Logger: logger,
	})
	if result != nil {
		fmt.Printf("Run %s: %d completed, %d failed, %d skipped, %d products (%d variants) in %s\n",
			result.ExecutionID, result.Completed, result.Failed, result.Skipped,
			result.Products, result.Variants, result.Duration.Round(time.Millisecond))
		for brand, msg := range result.Errors {
			fmt.Printf("  failed %s: %s\n", brand, msg)
		}
	}
	return err
}
