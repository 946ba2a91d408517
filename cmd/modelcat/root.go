package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "modelcat",
	Short: "Forecasting-model catalog extractor",
	Long: `modelcat builds normalized CSV catalogs for a forecasting library.

It loads model descriptors, scrapes the documentation model-family
taxonomy, and writes the catalog, parameter schema, per-model parameter
values, flattened default configs, and deduplicated object pool as CSV
files, plus a grouped directory tree of the catalog.

Quick start:
  modelcat build     # Run a full catalog build
  modelcat validate  # Validate configuration`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "modelcat.yaml", "config file path")
}
