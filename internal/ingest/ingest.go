// Package ingest walks a raw input directory, flattens and normalizes each
// file, and concatenates the survivors into one unified price table. A file
// that cannot be parsed is recorded in the audit table and skipped; it never
// aborts the run.
package ingest

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/gyeh/pricebench/internal/flatten"
	"github.com/gyeh/pricebench/internal/model"
	"github.com/gyeh/pricebench/internal/normalize"
)

// IngestDir processes every discovered raw file under root. It returns the
// unified table plus one audit row per attempted file. Zero parseable files
// yield an empty table, not an error.
func IngestDir(root string, log zerolog.Logger) ([]model.PriceRecord, []model.FileAudit, error) {
	files, err := DiscoverFiles(root)
	if err != nil {
		return nil, nil, err
	}

	var records []model.PriceRecord
	audits := make([]model.FileAudit, 0, len(files))

	for _, path := range files {
		audit := model.FileAudit{File: path}
		// Hash first so even unreadable-content failures carry a checksum
		// for the audit trail.
		if sha, hashErr := normalize.FileHash(path); hashErr == nil {
			audit.SHA256 = sha
		}

		table, err := flatten.LoadAny(path)
		if err != nil {
			audit.Status = model.StatusFailedParse
			audit.ErrorType = flatten.ErrorType(err)
			audits = append(audits, audit)
			log.Warn().Err(err).Str("file", filepath.Base(path)).Msg("file failed to parse")
			continue
		}

		fileRecords := normalize.ApplyAliases(table)
		for i := range fileRecords {
			fileRecords[i].SourceFile = path
			fileRecords[i].HospitalName = normalize.InferHospitalName(path, fileRecords[i].HospitalName)
		}
		records = append(records, fileRecords...)

		audit.Status = model.StatusParsed
		audit.Rows = len(fileRecords)
		audits = append(audits, audit)
		log.Debug().
			Str("file", filepath.Base(path)).
			Int("rows", len(fileRecords)).
			Msg("file parsed")
	}

	return records, audits, nil
}
