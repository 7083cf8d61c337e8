// Package cli provides the command-line interface for catalogmesh.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/catalogmesh/config"
	"github.com/hupe1980/catalogmesh/logging"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	configFile string
	dataDir    string
	verbose    bool

	// Loaded in PersistentPreRunE
	cfg      config.Config
	logger   logging.Logger
	closeLog func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "catalogmesh",
	Short: "LLM-driven product catalog builder",
	Long: `Catalogmesh builds and maintains per-category product catalogs using
language-model collection agents.

Collection runs are resumable: task state is persisted after every step, so
an interrupted run continues where it stopped. The learner folds
high-confidence identification sightings back into the catalog.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		var err error
		if configFile != "" {
			cfg, err = config.LoadFile(configFile)
			if err != nil {
				return err
			}
		} else {
			cfg = config.Load()
		}
		if dataDir != "" {
			cfg.DataDir = dataDir
		}

		level := logging.ParseLevel(cfg.LogLevel)
		if verbose {
			level = logging.ParseLevel("DEBUG")
		}
		logger, closeLog = logging.Setup(cfg.LogFile, level)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeLog != nil {
			_ = closeLog()
		}
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override the data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(learnCmd)
}
