package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/modelcat/modelcat/config"
)

const (
	checkMark = "✓"
	crossMark = "✗"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration before a build",
	Long: `Validate the modelcat configuration file.

Checks:
  - YAML syntax is valid
  - Required fields are present
  - Manifest directory exists
  - Documentation pages are reachable (optional)

Examples:
  modelcat validate
  modelcat validate --config /etc/modelcat/modelcat.yaml --check-docs`,
	RunE: runValidate,
}

var validateCheckDocs bool

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVar(&validateCheckDocs, "check-docs", false, "check if documentation pages are reachable")
}

func runValidate(cmd *cobra.Command, args []string) error {
	fmt.Printf("Validating %s...\n\n", cfgFile)

	// Check file exists
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		fmt.Printf("  %s Config file exists\n", crossMark)
		return fmt.Errorf("config file not found: %s", cfgFile)
	}
	fmt.Printf("  %s Config file exists\n", checkMark)

	// Load and validate config
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Printf("  %s Config syntax valid\n", crossMark)
		return fmt.Errorf("config error: %w", err)
	}
	fmt.Printf("  %s Config syntax valid\n", checkMark)

	// Show config summary
	fmt.Printf("  %s Library: %s\n", checkMark, cfg.Library)
	fmt.Printf("  %s Models page: %s\n", checkMark, cfg.Docs.ModelsURL)
	fmt.Printf("  %s Output: %s\n", checkMark, cfg.Output.Dir)

	// Check the manifest directory
	if info, err := os.Stat(cfg.Source.ManifestDir); err != nil || !info.IsDir() {
		fmt.Printf("  %s Manifest directory exists\n", crossMark)
		return fmt.Errorf("manifest directory not found: %s", cfg.Source.ManifestDir)
	}
	fmt.Printf("  %s Manifest directory exists\n", checkMark)

	// Optional: check docs pages
	if validateCheckDocs {
		for _, url := range []string{cfg.Docs.ModelsURL, cfg.Docs.LlmsURL} {
			if err := checkReachable(url, cfg.Docs.Timeout); err != nil {
				fmt.Printf("  %s Reachable: %s\n", crossMark, url)
				fmt.Printf("      Error: %v\n", err)
			} else {
				fmt.Printf("  %s Reachable: %s\n", checkMark, url)
			}
		}
	}

	fmt.Printf("\nConfiguration valid\n")
	return nil
}

func checkReachable(url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}
