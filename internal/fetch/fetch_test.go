package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testFetcher(t *testing.T) *Fetcher {
	t.Helper()
	f := NewFetcher(t.TempDir(), zerolog.Nop())
	f.Client = &http.Client{Timeout: 5 * time.Second}
	return f
}

func TestFetchAll_DownloadsAndSkipsExisting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("csv,content\n"))
	}))
	defer srv.Close()

	f := testFetcher(t)
	sources := []Source{
		{Key: "one", Hospital: "Hospital One", URL: srv.URL + "/one.csv", Filename: "one.csv"},
		{Key: "two", Hospital: "Hospital Two", URL: srv.URL + "/two.csv", Filename: "two.csv"},
	}
	// Pre-existing file is skipped, not re-downloaded.
	os.WriteFile(filepath.Join(f.OutputDir, "two.csv"), []byte("already here"), 0644)

	res, err := f.FetchAll(context.Background(), sources)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if res.Succeeded != 1 || res.Skipped != 1 || res.Failed != 0 {
		t.Errorf("result = %+v", res)
	}

	data, err := os.ReadFile(filepath.Join(f.OutputDir, "one.csv"))
	if err != nil {
		t.Fatalf("read download: %v", err)
	}
	if string(data) != "csv,content\n" {
		t.Errorf("content = %q", data)
	}

	kept, _ := os.ReadFile(filepath.Join(f.OutputDir, "two.csv"))
	if string(kept) != "already here" {
		t.Errorf("existing file overwritten: %q", kept)
	}
}

func TestFetchAll_FailureDoesNotStopRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/blocked.csv" {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		w.Write([]byte("ok\n"))
	}))
	defer srv.Close()

	f := testFetcher(t)
	// Avoid real backoff sleeps in the failing path.
	oldBackoff := backoff
	backoff = []time.Duration{0, 0, 0}
	defer func() { backoff = oldBackoff }()

	sources := []Source{
		{Key: "blocked", URL: srv.URL + "/blocked.csv", Filename: "blocked.csv"},
		{Key: "good", URL: srv.URL + "/good.csv", Filename: "good.csv"},
	}

	res, err := f.FetchAll(context.Background(), sources)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if res.Failed != 1 || res.Succeeded != 1 {
		t.Errorf("result = %+v", res)
	}

	if _, err := os.Stat(filepath.Join(f.OutputDir, "blocked.csv")); err == nil {
		t.Error("failed download must not leave a file behind")
	}
	if _, err := os.Stat(filepath.Join(f.OutputDir, "good.csv")); err != nil {
		t.Errorf("good download missing: %v", err)
	}
}

func TestFetchOne_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "flaky", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("finally\n"))
	}))
	defer srv.Close()

	f := testFetcher(t)
	oldBackoff := backoff
	backoff = []time.Duration{0, 0, 0}
	defer func() { backoff = oldBackoff }()

	src := Source{Key: "flaky", URL: srv.URL, Filename: "flaky.csv"}
	dest := filepath.Join(f.OutputDir, src.Filename)
	if err := f.fetchOne(context.Background(), src, dest); err != nil {
		t.Fatalf("fetchOne: %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestFindSource(t *testing.T) {
	if src := FindSource("peacehealth"); src == nil || src.Hospital != "PeaceHealth St Joseph Medical Center" {
		t.Errorf("FindSource(peacehealth) = %+v", src)
	}
	if src := FindSource("nope"); src != nil {
		t.Errorf("unknown key should return nil, got %+v", src)
	}
	if len(SourceKeys()) != len(Sources) {
		t.Errorf("SourceKeys length mismatch")
	}
}
