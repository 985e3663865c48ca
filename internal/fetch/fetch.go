package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const userAgent = "pricebench/1.0 (open-source research)"

const maxRetries = 3

var backoff = []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}

// Result summarizes a fetch run.
type Result struct {
	Succeeded int
	Failed    int
	Skipped   int
}

// Fetcher downloads hospital machine-readable files into a local directory.
type Fetcher struct {
	Client    *http.Client
	OutputDir string
	Log       zerolog.Logger
}

// NewFetcher returns a Fetcher with a download-appropriate timeout.
func NewFetcher(outputDir string, log zerolog.Logger) *Fetcher {
	return &Fetcher{
		Client:    &http.Client{Timeout: 120 * time.Second},
		OutputDir: outputDir,
		Log:       log,
	}
}

// FetchAll downloads every source, skipping files that already exist.
// A failed download does not stop the run.
func (f *Fetcher) FetchAll(ctx context.Context, sources []Source) (*Result, error) {
	if err := os.MkdirAll(f.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	res := &Result{}
	for _, src := range sources {
		dest := filepath.Join(f.OutputDir, src.Filename)
		if stat, err := os.Stat(dest); err == nil {
			f.Log.Info().
				Str("key", src.Key).
				Str("file", src.Filename).
				Int64("bytes", stat.Size()).
				Msg("already exists, skipping")
			res.Skipped++
			continue
		}

		f.Log.Info().Str("key", src.Key).Str("hospital", src.Hospital).Msg("downloading")
		if err := f.fetchOne(ctx, src, dest); err != nil {
			f.Log.Error().Err(err).Str("key", src.Key).Msg("download failed")
			res.Failed++
			continue
		}
		res.Succeeded++
	}
	return res, nil
}

// fetchOne downloads a single source with retries, writing to a temp file
// and renaming on success so a partial download never looks complete.
func (f *Fetcher) fetchOne(ctx context.Context, src Source, dest string) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			wait := backoff[attempt-1]
			f.Log.Warn().
				Err(lastErr).
				Int("attempt", attempt+1).
				Str("wait", wait.String()).
				Msg("retrying download")
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if lastErr = f.download(ctx, src.URL, dest); lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("download %s after %d attempts: %w", src.Key, maxRetries, lastErr)
}

func (f *Fetcher) download(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write body: %w", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	f.Log.Info().
		Str("file", filepath.Base(dest)).
		Int64("bytes", n).
		Msg("saved")
	return nil
}
