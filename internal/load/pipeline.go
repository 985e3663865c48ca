package load

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/pricebench/internal/config"
	"github.com/gyeh/pricebench/internal/model"
	embedsql "github.com/gyeh/pricebench/internal/sql"
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

// Run executes the full load pipeline: preflight → copy → finalize.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config) (*model.LoadSummary, error) {
	totalStart := time.Now()

	// Phase 1: Preflight
	log.Info().Str("file", cfg.FilePath).Msg("starting preflight")
	pf, err := Preflight(ctx, pool, log, cfg.FilePath, cfg.Force)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}

	if pf.AlreadyLoaded {
		log.Info().
			Int64("load_file_id", pf.LoadFileID).
			Str("sha256", pf.FileSHA256).
			Msg("file already loaded, skipping (use --force to reload)")
		return &model.LoadSummary{
			FilePath:      pf.FilePath,
			FileSHA256:    pf.FileSHA256,
			LoadFileID:    pf.LoadFileID,
			LoadBatchID:   pf.LoadBatchID.String(),
			DurationTotal: time.Since(totalStart),
		}, nil
	}

	// Phase 2: COPY into serving
	log.Info().Msg("starting copy")
	if err := updateStatus(ctx, pool, pf.LoadFileID, "loading"); err != nil {
		return nil, &PipelineError{Phase: "copy", Err: err}
	}

	stageResult, err := Stage(ctx, pool, log, pf)
	if err != nil {
		if cleanupErr := CleanupBatch(ctx, pool, log, pf.LoadBatchID); cleanupErr != nil {
			log.Warn().Err(cleanupErr).Msg("batch cleanup failed (non-fatal)")
		}
		_ = updateStatus(ctx, pool, pf.LoadFileID, "failed")
		return nil, &PipelineError{Phase: "copy", Err: err}
	}

	// Phase 3: Finalize
	log.Info().Msg("finalizing")
	if cfg.Activate {
		if err := SupersedeOlderRows(ctx, pool, log, pf.LoadFileID, pf.LoadBatchID); err != nil {
			_ = updateStatus(ctx, pool, pf.LoadFileID, "failed")
			return nil, &PipelineError{Phase: "finalize", Err: err}
		}
	}

	if _, err := pool.Exec(ctx, embedsql.AnalyzeServing); err != nil {
		log.Warn().Err(err).Msg("analyze failed (non-fatal)")
	}

	if err := updateStatus(ctx, pool, pf.LoadFileID, "loaded"); err != nil {
		return nil, &PipelineError{Phase: "finalize", Err: err}
	}

	summary := &model.LoadSummary{
		FilePath:      pf.FilePath,
		FileSHA256:    pf.FileSHA256,
		LoadFileID:    pf.LoadFileID,
		LoadBatchID:   pf.LoadBatchID.String(),
		RowsRead:      stageResult.RowsRead,
		RowsLoaded:    stageResult.RowsLoaded,
		RowsRejected:  stageResult.RowsRejected,
		DurationRead:  stageResult.Duration,
		DurationCopy:  stageResult.Duration,
		DurationTotal: time.Since(totalStart),
	}

	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("rows_loaded", summary.RowsLoaded).
		Int64("rows_rejected", summary.RowsRejected).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("load pipeline complete")

	return summary, nil
}

func updateStatus(ctx context.Context, pool *pgxpool.Pool, loadFileID int64, status string) error {
	_, err := pool.Exec(ctx, embedsql.UpdateLoadStatus, loadFileID, status)
	return err
}
