package model

// Audit statuses for attempted raw files.
const (
	StatusParsed      = "parsed"
	StatusFailedParse = "failed_parse"
)

// FileAudit records the outcome of one attempted raw file.
// Every file the orchestrator touches gets exactly one row, pass or fail.
type FileAudit struct {
	File      string
	Status    string
	ErrorType string
	SHA256    string
	Rows      int
}

// IngestCounts summarizes the ingest phase for the run manifest.
type IngestCounts struct {
	FilesAttempted int `json:"files_attempted"`
	FilesParsed    int `json:"files_parsed"`
	FilesFailed    int `json:"files_failed"`
	RowsIngested   int `json:"rows_ingested"`
}

// OutputCounts summarizes the rows written to each output table.
type OutputCounts struct {
	NormalizedPricesRows   int `json:"normalized_prices_rows"`
	ProcedureBenchmarkRows int `json:"procedure_benchmark_rows"`
	HospitalBenchmarkRows  int `json:"hospital_benchmark_rows"`
	FocusHospitalRankRows  int `json:"focus_hospital_rank_rows"`
	PayerDispersionRows    int `json:"payer_dispersion_rows"`
	ProcedureConfidenceRows int `json:"procedure_confidence_rows"`
}

// RunManifest is the structured summary of one pipeline execution,
// written as run_manifest.json alongside the output tables.
type RunManifest struct {
	InputDir      string       `json:"input_dir"`
	OutputDir     string       `json:"output_dir"`
	FocusHospital string       `json:"focus_hospital"`
	Ingest        IngestCounts `json:"ingest"`
	Outputs       OutputCounts `json:"outputs"`
	DurationSecs  float64      `json:"duration_secs"`
}
