package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/pricebench/internal/config"
	"github.com/gyeh/pricebench/internal/model"
	"github.com/gyeh/pricebench/internal/normalize"
	"github.com/gyeh/pricebench/internal/output"
	"github.com/gyeh/pricebench/internal/scope"
	"github.com/gyeh/pricebench/internal/stats"
)

// Output file names within the output directory.
const (
	FileNormalizedCSV     = "normalized_prices.csv"
	FileNormalizedParquet = "normalized_prices.parquet"
	FileProcedureBench    = "procedure_benchmark.csv"
	FileHospitalBench     = "hospital_benchmark.csv"
	FileFocusRank         = "focus_hospital_rank.csv"
	FilePayerDispersion   = "payer_dispersion.csv"
	FileConfidence        = "procedure_confidence.csv"
	FileAuditTable        = "ingest_audit.csv"
	FileFailures          = "ingest_failures.csv"
	FileManifest          = "run_manifest.json"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full benchmark pipeline: ingest → scope → aggregate →
// write. Per-file parse failures are tolerated and audited; catalog and
// output I/O failures abort with the phase attached. A completed run always
// writes every declared output table, possibly empty.
func Run(log zerolog.Logger, cfg *config.Config) (*model.RunManifest, error) {
	totalStart := time.Now()

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, &PipelineError{Phase: "setup", Err: err}
	}

	// Phase 1: Ingest
	log.Info().Str("input", cfg.InputDir).Msg("starting ingest")
	records, audits, err := IngestDir(cfg.InputDir, log)
	if err != nil {
		return nil, &PipelineError{Phase: "ingest", Err: err}
	}

	parsed, failed := 0, 0
	for _, a := range audits {
		if a.Status == model.StatusParsed {
			parsed++
		} else {
			failed++
		}
	}
	log.Info().
		Int("files_attempted", len(audits)).
		Int("files_parsed", parsed).
		Int("files_failed", failed).
		Int("rows", len(records)).
		Msg("ingest complete")

	// Phase 2: Scope
	hospitals, err := scope.LoadHospitalCatalog(cfg.HospitalsPath)
	if err != nil {
		return nil, &PipelineError{Phase: "scope", Err: err}
	}
	procedures, err := scope.LoadProcedureCatalog(cfg.ProceduresPath)
	if err != nil {
		return nil, &PipelineError{Phase: "scope", Err: err}
	}
	scoped := scope.Filter(records, hospitals, procedures)
	normalize.AttachPayerColumns(scoped)
	log.Info().
		Int("rows_in", len(records)).
		Int("rows_scoped", len(scoped)).
		Int("hospitals_in_catalog", len(hospitals)).
		Int("procedures_in_catalog", len(procedures)).
		Msg("scope filter complete")

	// Phase 3: Aggregate
	procBench := stats.ProcedureBenchmark(scoped)
	hospBench := stats.HospitalBenchmark(scoped)
	focusRank := stats.WithHospitalRank(scoped, cfg.FocusHospital)
	dispersion := stats.PayerDispersion(scoped)
	confidence := stats.ProcedureConfidence(scoped)
	log.Info().
		Int("procedures", len(procBench)).
		Int("hospitals", len(hospBench)).
		Int("focus_rank_rows", len(focusRank)).
		Msg("aggregation complete")

	// Phase 4: Write outputs
	out := func(name string) string { return filepath.Join(cfg.OutputDir, name) }
	writes := []struct {
		name string
		fn   func() error
	}{
		{FileNormalizedCSV, func() error { return output.WriteNormalizedPrices(out(FileNormalizedCSV), scoped) }},
		{FileNormalizedParquet, func() error { return output.WriteNormalizedParquet(out(FileNormalizedParquet), scoped) }},
		{FileProcedureBench, func() error { return output.WriteProcedureBenchmark(out(FileProcedureBench), procBench) }},
		{FileHospitalBench, func() error { return output.WriteHospitalBenchmark(out(FileHospitalBench), hospBench) }},
		{FileFocusRank, func() error { return output.WriteHospitalRank(out(FileFocusRank), focusRank) }},
		{FilePayerDispersion, func() error { return output.WritePayerDispersion(out(FilePayerDispersion), dispersion) }},
		{FileConfidence, func() error { return output.WriteConfidence(out(FileConfidence), confidence) }},
		{FileAuditTable, func() error { return output.WriteAudit(out(FileAuditTable), audits) }},
		{FileFailures, func() error { return output.WriteFailures(out(FileFailures), audits) }},
	}
	for _, w := range writes {
		if err := w.fn(); err != nil {
			return nil, &PipelineError{Phase: "write", Err: err}
		}
	}

	manifest := &model.RunManifest{
		InputDir:      cfg.InputDir,
		OutputDir:     cfg.OutputDir,
		FocusHospital: cfg.FocusHospital,
		Ingest: model.IngestCounts{
			FilesAttempted: len(audits),
			FilesParsed:    parsed,
			FilesFailed:    failed,
			RowsIngested:   len(records),
		},
		Outputs: model.OutputCounts{
			NormalizedPricesRows:    len(scoped),
			ProcedureBenchmarkRows:  len(procBench),
			HospitalBenchmarkRows:   len(hospBench),
			FocusHospitalRankRows:   len(focusRank),
			PayerDispersionRows:     len(dispersion),
			ProcedureConfidenceRows: len(confidence),
		},
		DurationSecs: time.Since(totalStart).Seconds(),
	}
	if err := output.WriteManifest(out(FileManifest), manifest); err != nil {
		return nil, &PipelineError{Phase: "write", Err: err}
	}

	log.Info().
		Int("rows_scoped", len(scoped)).
		Str("output", cfg.OutputDir).
		Float64("duration_secs", manifest.DurationSecs).
		Msg("pipeline complete")
	return manifest, nil
}
