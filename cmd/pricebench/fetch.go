package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gyeh/pricebench/internal/exitcode"
	"github.com/gyeh/pricebench/internal/fetch"
	"github.com/gyeh/pricebench/internal/logging"
)

var (
	fetchList bool
	fetchOnly string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download published hospital price files",
	RunE:  runFetch,
}

func init() {
	f := fetchCmd.Flags()
	f.StringVar(&cfg.InputDir, "output-dir", "data/raw", "Directory to save downloaded files")
	f.BoolVar(&fetchList, "list", false, "List available sources without downloading")
	f.StringVar(&fetchOnly, "only", "", "Download only this hospital (short key, e.g. 'peacehealth')")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	sources := fetch.Sources
	if fetchOnly != "" {
		src := fetch.FindSource(fetchOnly)
		if src == nil {
			log.Error().
				Str("key", fetchOnly).
				Str("valid", strings.Join(fetch.SourceKeys(), ", ")).
				Msg("unknown hospital key")
			os.Exit(exitcode.UsageError)
		}
		sources = []fetch.Source{*src}
	}

	if fetchList {
		fmt.Println("Available hospital MRF sources:")
		fmt.Println()
		for _, s := range sources {
			fmt.Printf("  [%s]\n", s.Key)
			fmt.Printf("    Hospital: %s\n", s.Hospital)
			fmt.Printf("    URL:      %s\n", s.URL)
			fmt.Printf("    File:     %s\n", s.Filename)
			fmt.Println()
		}
		return nil
	}

	fetcher := fetch.NewFetcher(cfg.InputDir, log)
	res, err := fetcher.FetchAll(ctx, sources)
	if err != nil {
		log.Error().Err(err).Msg("fetch failed")
		os.Exit(exitcode.FetchError)
	}

	fmt.Printf("Done: %d succeeded, %d skipped, %d failed\n", res.Succeeded, res.Skipped, res.Failed)
	if res.Failed > 0 {
		fmt.Println("Some downloads failed. This is often WAF/Cloudflare protection;")
		fmt.Println("download those files in a browser and place them in the input directory.")
		os.Exit(exitcode.FetchError)
	}
	return nil
}
