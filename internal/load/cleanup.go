package load

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/gyeh/pricebench/internal/sql"
)

// CleanupBatch deletes serving rows for the given batch, used to roll back a
// failed load.
func CleanupBatch(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, batchID uuid.UUID) error {
	start := time.Now()

	tag, err := pool.Exec(ctx, embedsql.DeleteBatchRows, batchID)
	if err != nil {
		return err
	}

	log.Info().
		Int64("rows_deleted", tag.RowsAffected()).
		Dur("duration", time.Since(start)).
		Msg("batch cleanup complete")

	return nil
}

// SupersedeOlderRows deletes rows from earlier loads of the same file,
// leaving only the current batch visible.
func SupersedeOlderRows(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, loadFileID int64, batchID uuid.UUID) error {
	start := time.Now()

	tag, err := pool.Exec(ctx, embedsql.DeleteStaleFileRows, loadFileID, batchID)
	if err != nil {
		return err
	}

	log.Info().
		Int64("rows_deleted", tag.RowsAffected()).
		Dur("duration", time.Since(start)).
		Msg("superseded older rows")

	return nil
}
