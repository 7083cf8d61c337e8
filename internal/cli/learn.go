package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	catalogmesh "github.com/hupe1980/catalogmesh"
	"github.com/hupe1980/catalogmesh/learner"
)

var learnFile string

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Absorb identification sightings into the catalog",
	Long: `Read a JSON array of candidate sightings from a file and fold the
high-confidence ones into the catalog. Candidates below the confidence
gate or already in the catalog are skipped, not errors.

Examples:
  catalogmesh learn --file sightings.json`,
	RunE: runLearn,
}

func init() {
	learnCmd.Flags().StringVarP(&learnFile, "file", "f", "", "JSON file with candidate sightings (required)")
	_ = learnCmd.MarkFlagRequired("file")
}

func runLearn(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(learnFile)
	if err != nil {
		return fmt.Errorf("read %s: %w", learnFile, err)
	}

	var candidates []learner.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return fmt.Errorf("parse %s: %w", learnFile, err)
	}

	l, err := catalogmesh.NewLearner(cfg, logger)
	if err != nil {
		return err
	}

	outcome, err := l.LearnProducts(candidates)
	if err != nil {
		return err
	}

	fmt.Printf("Learned %d, skipped %d of %d candidate(s)\n",
		outcome.Added, outcome.Skipped, len(candidates))
	for _, d := range outcome.Details {
		if !d.Added {
			fmt.Printf("  skipped %s: %s\n", d.Product, d.Reason)
		}
	}
	return nil
}
