package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gyeh/pricebench/internal/exitcode"
	"github.com/gyeh/pricebench/internal/flatten"
	"github.com/gyeh/pricebench/internal/ingest"
	"github.com/gyeh/pricebench/internal/logging"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Dry-run: classify raw files and report row counts (no writes)",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&cfg.InputDir, "input", "", "Directory of raw price files (required)")
	_ = planCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if cfg.InputDir == "" {
		log.Error().Msg("--input is required")
		os.Exit(exitcode.UsageError)
	}

	files, err := ingest.DiscoverFiles(cfg.InputDir)
	if err != nil {
		log.Error().Err(err).Msg("input discovery failed")
		os.Exit(exitcode.ValidationError)
	}

	fmt.Println("=== pricebench plan ===")
	fmt.Printf("Input:  %s\n", cfg.InputDir)
	fmt.Printf("Files:  %d\n\n", len(files))

	parsed, failed := 0, 0
	var totalRows int
	for _, path := range files {
		name := filepath.Base(path)
		table, err := flatten.LoadAny(path)
		if err != nil {
			failed++
			fmt.Printf("  %-55s FAILED  %s\n", name, flatten.ErrorType(err))
			continue
		}
		parsed++
		totalRows += len(table.Records)
		fmt.Printf("  %-55s %-10s %7d rows, %d columns\n",
			name, flatten.ClassifyColumns(table.Columns), len(table.Records), len(table.Columns))
	}

	fmt.Printf("\nParsed %d/%d files, %d raw rows total\n", parsed, len(files), totalRows)
	if failed > 0 {
		fmt.Printf("%d file(s) failed to parse; they would be audited as failed_parse\n", failed)
	}
	return nil
}
