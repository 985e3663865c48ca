package model

import "time"

// LoadSummary captures metrics from a single Parquet → Postgres load run.
type LoadSummary struct {
	FilePath      string
	FileSHA256    string
	LoadFileID    int64
	LoadBatchID   string
	RowsRead      int64
	RowsLoaded    int64
	RowsRejected  int64
	DurationRead  time.Duration
	DurationCopy  time.Duration
	DurationTotal time.Duration
}
