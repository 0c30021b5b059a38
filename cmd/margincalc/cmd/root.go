// Package cmd provides the CLI commands for margincalc.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aaparts/whatif-margin/internal/config"
	"github.com/aaparts/whatif-margin/internal/logging"
)

var (
	datasetPath  string
	datasetSheet string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "margincalc",
	Short: "Explore how discount, cost and region affect gross margin",
	Long: `margincalc runs the what-if margin calculator from the command line.

Examples:
  margincalc calc --region NORTHEAST --base-price 900 --selling-cost 620 --discount 5
  margincalc sweep --region WEST --png margin.png
  margincalc catalog --region CENTRAL`,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "path to the product/location workbook (default $DATASET_PATH or raw_data.xlsx)")
	rootCmd.PersistentFlags().StringVar(&datasetSheet, "sheet", "", "workbook sheet (default $DATASET_SHEET or the first sheet)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(catalogCmd)
}

// initConfig reads .env and the environment once a command is about to run,
// filling in dataset flags the user left unset.
func initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	flags := cmd.Flags()
	if !flags.Changed("dataset") {
		datasetPath = cfg.DatasetPath
	}
	if !flags.Changed("sheet") {
		datasetSheet = cfg.DatasetSheet
	}

	logCfg := cfg.Logging
	logCfg.Development = false
	if verbose {
		logCfg.Level = "debug"
	}
	if err := logging.Initialize(logCfg); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error initializing logging: %v\n", err)
	}
	return nil
}
