package load

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/pricebench/internal/normalize"
	"github.com/gyeh/pricebench/internal/parquetread"
	embedsql "github.com/gyeh/pricebench/internal/sql"
)

// PreflightResult holds all context resolved during the preflight phase.
type PreflightResult struct {
	// FilePath is the original path passed to Preflight, stored as-is.
	FilePath string
	// FileSHA256 is the hex-encoded SHA-256 digest of the file.
	FileSHA256 string
	// FileSize is the file size in bytes from os.Stat.
	FileSize int64
	// LoadFileID is the DB primary key for this file record, inserted or
	// looked up via its sha256.
	LoadFileID int64
	// LoadBatchID is a freshly generated UUIDv4 identifying this load run,
	// used to tag serving rows for later cleanup.
	LoadBatchID uuid.UUID
	// NumRows is the total row count reported by the Parquet file metadata.
	NumRows int64
	// AlreadyLoaded is true when the file's sha256 already exists with status
	// "loaded" and force mode is off, signaling the pipeline can skip it.
	AlreadyLoaded bool
}

// Preflight computes the file hash, validates the Parquet schema, and
// registers the file in serving.load_files.
func Preflight(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, filePath string, force bool) (*PreflightResult, error) {
	start := time.Now()

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}

	reader, err := parquetread.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight open: %w", err)
	}
	defer reader.Close()

	if err := parquetread.ValidateSchema(reader.Schema()); err != nil {
		return nil, fmt.Errorf("preflight validate: %w", err)
	}

	numRows := reader.NumRows()

	log.Info().
		Str("file", filepath.Base(filePath)).
		Str("sha256", sha).
		Int64("rows", numRows).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	loadFileID, alreadyLoaded, err := registerLoadFile(ctx, pool, filePath, sha, stat.Size(), numRows, force)
	if err != nil {
		return nil, fmt.Errorf("preflight register file: %w", err)
	}

	return &PreflightResult{
		FilePath:      filePath,
		FileSHA256:    sha,
		FileSize:      stat.Size(),
		LoadFileID:    loadFileID,
		LoadBatchID:   uuid.New(),
		NumRows:       numRows,
		AlreadyLoaded: alreadyLoaded,
	}, nil
}

func registerLoadFile(ctx context.Context, pool *pgxpool.Pool, filePath, sha string, fileSize, numRows int64, force bool) (int64, bool, error) {
	var loadFileID int64
	err := pool.QueryRow(ctx, embedsql.RegisterLoadFile,
		filepath.Base(filePath), sha, fileSize, numRows,
	).Scan(&loadFileID)

	if errors.Is(err, pgx.ErrNoRows) {
		// Already exists (ON CONFLICT DO NOTHING returned no rows)
		var status string
		if err2 := pool.QueryRow(ctx, embedsql.LookupLoadFile, sha).Scan(&loadFileID, &status); err2 != nil {
			return 0, false, fmt.Errorf("lookup existing load_file: %w", err2)
		}

		if !force && status == "loaded" {
			return loadFileID, true, nil
		}

		// Reset status for re-import
		if _, err3 := pool.Exec(ctx, embedsql.UpdateLoadStatus, loadFileID, "pending"); err3 != nil {
			return 0, false, fmt.Errorf("reset load status: %w", err3)
		}
		return loadFileID, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("register load file: %w", err)
	}

	return loadFileID, false, nil
}
