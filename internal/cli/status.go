package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/catalogmesh/catalog"
	"github.com/hupe1980/catalogmesh/state"
)

var statusCategory string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show run state and catalog counts",
	Long: `Show the persisted run state and catalog counts for one category, or a
one-line overview of every category without --category.

Examples:
  catalogmesh status
  catalogmesh status --category golf`,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusCategory, "category", "c", "", "category to inspect")
}

func runStatus(cmd *cobra.Command, args []string) error {
	catalogs, err := catalog.NewFileStore(cfg.DataDir)
	if err != nil {
		return err
	}
	states, err := state.NewFileStore(cfg.DataDir)
	if err != nil {
		return err
	}

	if statusCategory != "" {
		category, err := catalog.ParseCategory(statusCategory)
		if err != nil {
			return err
		}
		return printStatus(catalogs, states, category)
	}

	for _, category := range catalog.Categories() {
		if err := printStatusLine(catalogs, states, category); err != nil {
			return err
		}
	}
	return nil
}

func printStatus(catalogs catalog.Store, states state.Store, category catalog.Category) error {
	doc, err := catalogs.Load(category)
	if err != nil && !errors.Is(err, catalog.ErrNotFound) {
		return err
	}
	if doc != nil {
		fmt.Printf("Catalog %s: %d brands, %d products, %d variants (updated %s)\n",
			category, len(doc.Brands), doc.ProductCount, doc.VariantCount,
			doc.LastUpdated.Format("2006-01-02 15:04"))
	} else {
		fmt.Printf("Catalog %s: empty\n", category)
	}

	summary, err := states.Summary(category)
	if err != nil {
		if errors.Is(err, state.ErrNoExecution) {
			fmt.Println("No run state.")
			return nil
		}
		return err
	}

	p := summary.Progress
	fmt.Printf("Run %s (%s, provider %s): %d/%d completed, %d failed, %d pending, %d running\n",
		summary.Execution.ID, summary.Execution.Phase, summary.Execution.Provider,
		p.Completed, p.Total, p.Failed, p.Pending, p.Running)
	fmt.Printf("Collected this run: %d products, %d variants\n", summary.Products, summary.Variants)
	for _, t := range summary.Failures {
		fmt.Printf("  failed %s: %s\n", t.Brand, t.Error)
	}
	return nil
}

func printStatusLine(catalogs catalog.Store, states state.Store, category catalog.Category) error {
	products := 0
	if doc, err := catalogs.Load(category); err == nil {
		products = doc.ProductCount
	} else if !errors.Is(err, catalog.ErrNotFound) {
		return err
	}

	runInfo := "no run"
	if summary, err := states.Summary(category); err == nil {
		p := summary.Progress
		runInfo = fmt.Sprintf("%s %d/%d", summary.Execution.Phase, p.Completed, p.Total)
	} else if !errors.Is(err, state.ErrNoExecution) {
		return err
	}

	fmt.Printf("%-12s %6d products  %s\n", category, products, runInfo)
	return nil
}
