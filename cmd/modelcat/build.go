package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/modelcat/modelcat/bootstrap"
	"github.com/modelcat/modelcat/config"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run a full catalog build",
	Long: `Build every catalog table and write the CSV outputs.

Fetches the documentation pages (reusing the on-disk cache unless
--force-refresh is set), loads the descriptor manifests, and writes the
flat CSVs plus the grouped catalog tree to the configured output
directory.

Examples:
  modelcat build
  modelcat build --config /etc/modelcat/modelcat.yaml --force-refresh`,
	RunE: runBuild,
}

var buildForceRefresh bool

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().BoolVar(&buildForceRefresh, "force-refresh", false, "refetch documentation pages even when cached")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadWithFallback(cfgFile)
	if err != nil {
		return err
	}
	if buildForceRefresh {
		cfg.Cache.Force = true
	}

	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}

	sum, err := app.Run(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Build %s complete in %s\n", sum.RunID, sum.Duration.Round(time.Millisecond))
	names := make([]string, 0, len(sum.Rows))
	for name := range sum.Rows {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-20s %d rows\n", name, sum.Rows[name])
	}
	fmt.Printf("  tree: %s\n", sum.TreeRoot)
	return nil
}
