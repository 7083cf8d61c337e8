package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/catalogmesh/catalog"
	"github.com/hupe1980/catalogmesh/state"
)

var (
	resetCategory string
	resetStale    time.Duration
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset failed or stale tasks to pending",
	Long: `Reset the category's failed tasks to pending so a resumed run retries
them. With --stale, running tasks older than the given age are reset
instead; use this after a crash left tasks stuck in running.

Examples:
  catalogmesh reset --category golf
  catalogmesh reset --category golf --stale 30m`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().StringVarP(&resetCategory, "category", "c", "", "category to reset (required)")
	resetCmd.Flags().DurationVar(&resetStale, "stale", 0, "reset running tasks older than this age")
	_ = resetCmd.MarkFlagRequired("category")
}

func runReset(cmd *cobra.Command, args []string) error {
	category, err := catalog.ParseCategory(resetCategory)
	if err != nil {
		return err
	}

	states, err := state.NewFileStore(cfg.DataDir)
	if err != nil {
		return err
	}

	if resetStale > 0 {
		n, err := states.ResetStale(category, resetStale)
		if err != nil {
			return err
		}
		fmt.Printf("Reset %d stale running task(s) for %s\n", n, category)
		return nil
	}

	n, err := states.ResetFailed(category)
	if err != nil {
		return err
	}
	fmt.Printf("Reset %d failed task(s) for %s\n", n, category)
	return nil
}
