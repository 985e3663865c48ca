package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/pricebench/internal/exitcode"
	"github.com/gyeh/pricebench/internal/ingest"
	"github.com/gyeh/pricebench/internal/logging"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full benchmark pipeline over a directory of raw files",
	RunE:  runRun,
}

func init() {
	f := runCmd.Flags()
	f.StringVar(&cfg.InputDir, "input", "", "Directory of raw price files (required)")
	f.StringVar(&cfg.HospitalsPath, "hospitals", "", "Hospital catalog CSV (required)")
	f.StringVar(&cfg.ProceduresPath, "procedures", "", "Procedure catalog CSV (required)")
	f.StringVar(&cfg.FocusHospital, "focus-hospital", "", "Hospital to rank against peers (required)")
	f.StringVar(&cfg.OutputDir, "output", "", "Directory for output tables (required)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)

	if err := mergeConfigFile(); err != nil {
		log.Error().Err(err).Msg("config file load failed")
		os.Exit(exitcode.UsageError)
	}
	if err := cfg.ValidateRun(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	manifest, err := ingest.Run(log, &cfg)
	if err != nil {
		if pe, ok := err.(*ingest.PipelineError); ok {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("pipeline failed")
		} else {
			log.Error().Err(err).Msg("pipeline failed")
		}
		os.Exit(exitcode.PipelineError)
	}

	fmt.Printf("Run complete: %d/%d files parsed, %d scoped rows (%.1fs)\n",
		manifest.Ingest.FilesParsed, manifest.Ingest.FilesAttempted,
		manifest.Outputs.NormalizedPricesRows, manifest.DurationSecs)
	return nil
}
