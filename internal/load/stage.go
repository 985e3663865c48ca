package load

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/pricebench/internal/db"
	"github.com/gyeh/pricebench/internal/model"
	"github.com/gyeh/pricebench/internal/normalize"
	"github.com/gyeh/pricebench/internal/parquetread"
)

const readBatchSize = 1024

// StageResult holds metrics from the COPY phase.
type StageResult struct {
	RowsRead     int64
	RowsLoaded   int64
	RowsRejected int64
	Duration     time.Duration
}

// Stage streams rows from the Parquet file, converts them to serving form,
// and COPY-loads them into serving.price_rows via a channel-backed
// CopyFromSource.
func Stage(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult) (*StageResult, error) {
	start := time.Now()

	reader, err := parquetread.Open(pf.FilePath)
	if err != nil {
		return nil, fmt.Errorf("stage open: %w", err)
	}
	defer reader.Close()

	ch := make(chan *model.ServingRow, readBatchSize)
	errCh := make(chan error, 1)

	var rowsRead, rowsRejected int64

	// Producer goroutine: read Parquet → convert → push to channel
	go func() {
		defer close(ch)
		buf := make([]model.NormalizedPriceRow, readBatchSize)
		var rowNum int64

		for {
			n, readErr := reader.Read(buf)
			for i := 0; i < n; i++ {
				rowNum++
				rowsRead++

				serving, convErr := toServingRow(&buf[i], pf, rowNum)
				if convErr != nil {
					rowsRejected++
					log.Warn().Err(convErr).Int64("row", rowNum).Msg("row rejected")
					continue
				}

				select {
				case ch <- serving:
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				}
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				errCh <- fmt.Errorf("read parquet at row %d: %w", rowNum, readErr)
				return
			}
		}
		errCh <- nil
	}()

	// Consumer: COPY from channel into the serving table
	source := db.NewChannelSource(ch)
	rowsLoaded, err := pool.CopyFrom(ctx,
		pgx.Identifier{"serving", "price_rows"},
		model.ServingColumns(),
		source,
	)

	// Wait for producer to finish
	prodErr := <-errCh
	if prodErr != nil {
		return nil, fmt.Errorf("stage producer: %w", prodErr)
	}
	if err != nil {
		return nil, fmt.Errorf("stage copy: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Int64("rows_read", rowsRead).
		Int64("rows_loaded", rowsLoaded).
		Int64("rows_rejected", rowsRejected).
		Str("duration", dur.String()).
		Float64("rows_per_sec", float64(rowsLoaded)/dur.Seconds()).
		Msg("copy complete")

	return &StageResult{
		RowsRead:     rowsRead,
		RowsLoaded:   rowsLoaded,
		RowsRejected: rowsRejected,
		Duration:     dur,
	}, nil
}

// toServingRow converts a Parquet row to its DB form, rejecting rows that
// lack the identifying fields the serving table requires.
func toServingRow(row *model.NormalizedPriceRow, pf *PreflightResult, rowNum int64) (*model.ServingRow, error) {
	if row.HospitalName == "" {
		return nil, fmt.Errorf("missing hospital_name")
	}
	if row.Code == "" || row.CodeType == "" {
		return nil, fmt.Errorf("missing code or code_type")
	}

	effective := normalize.DollarsToCents(&row.EffectivePrice)

	payer := ""
	if row.PayerName != nil {
		payer = *row.PayerName
	}

	return &model.ServingRow{
		LoadBatchID:         pf.LoadBatchID,
		LoadFileID:          pf.LoadFileID,
		SourceRowNumber:     rowNum,
		SourceRowHash:       normalize.RowHashFromValues(rowNum, row.HospitalName, payer, row.Code, row.CodeType),
		HospitalName:        row.HospitalName,
		PayerName:           row.PayerName,
		PayerGroup:          nilIfEmpty(row.PayerGroup),
		Code:                row.Code,
		CodeType:            row.CodeType,
		Description:         row.Description,
		NegotiatedRateCents: normalize.DollarsToCents(row.NegotiatedRate),
		CashPriceCents:      normalize.DollarsToCents(row.CashPrice),
		EffectivePriceCents: *effective,
		Setting:             row.Setting,
		GrossChargeCents:    normalize.DollarsToCents(row.GrossCharge),
		ChargeMinCents:      normalize.DollarsToCents(row.ChargeMin),
		ChargeMaxCents:      normalize.DollarsToCents(row.ChargeMax),
		SourceFile:          row.SourceFile,
		IsOutlier:           row.IsOutlier,
	}, nil
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
