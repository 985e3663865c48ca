package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/pricebench/internal/db"
	"github.com/gyeh/pricebench/internal/exitcode"
	"github.com/gyeh/pricebench/internal/load"
	"github.com/gyeh/pricebench/internal/logging"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a normalized Parquet table into Postgres",
	RunE:  runLoad,
}

func init() {
	f := loadCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to normalized_prices.parquet (required)")
	f.BoolVar(&cfg.Force, "force", false, "Reload even if file SHA already exists")
	f.BoolVar(&cfg.Activate, "activate", false, "Delete rows from earlier loads of the same file")
	_ = loadCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateLoad(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := load.Run(ctx, pool, log, &cfg)
	if err != nil {
		if pe, ok := err.(*load.PipelineError); ok {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("load failed")
			if pe.Phase == "preflight" {
				os.Exit(exitcode.ValidationError)
			}
		} else {
			log.Error().Err(err).Msg("load failed")
		}
		os.Exit(exitcode.LoadError)
	}

	fmt.Printf("Load complete: %d rows loaded, %d rejected (%.1fs)\n",
		summary.RowsLoaded, summary.RowsRejected, summary.DurationTotal.Seconds())
	return nil
}
