package cmd

import (
	"os"

	"github.com/mordilloSan/go-logger/logger"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagRoot    string
	flagStore   string
	flagVerbose bool
	flagRebuild bool
)

var rootCmd = &cobra.Command{
	Use:   "spyglass",
	Short: "Instant file and folder search for your home directory",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger(flagVerbose)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd)
	},
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initLogger keeps the terminal quiet unless --verbose is given.
func initLogger(verbose bool) {
	levels := []logger.Level{logger.WarnLevel, logger.ErrorLevel}
	if verbose {
		levels = logger.AllLevels()
	}
	logger.Init(logger.Config{Levels: levels})
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default <config dir>/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "directory to index (default home directory)")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "snapshot backend: json or sqlite")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log debug output")
	rootCmd.Flags().BoolVar(&flagRebuild, "rebuild", false, "rebuild the index even when a saved one loads")
}
