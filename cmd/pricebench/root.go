package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/pricebench/internal/config"
)

var cfg config.Config

var configPath string

var rootCmd = &cobra.Command{
	Use:   "pricebench",
	Short: "Hospital price transparency benchmark pipeline",
	Long:  "Ingests hospital machine-readable price files, normalizes them into a common schema, and produces cross-hospital benchmark tables.",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("PRICEBENCH_DB_URL"), "Postgres connection string (or set PRICEBENCH_DB_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&configPath, "config", "", "Path to YAML config file")
}

// mergeConfigFile fills unset Config fields from --config when given.
func mergeConfigFile() error {
	if configPath == "" {
		return nil
	}
	return cfg.LoadFromFile(configPath)
}
