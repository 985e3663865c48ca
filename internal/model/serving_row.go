package model

import (
	"github.com/google/uuid"
)

// ServingRow is the DB-ready representation of one normalized price row.
// Money values are stored as int64 cents to avoid float drift in SQL
// aggregates downstream.
type ServingRow struct {
	LoadBatchID uuid.UUID
	LoadFileID  int64

	SourceRowNumber int64
	SourceRowHash   []byte

	HospitalName string
	PayerName    *string
	PayerGroup   *string
	Code         string
	CodeType     string
	Description  *string

	NegotiatedRateCents  *int64
	CashPriceCents       *int64
	EffectivePriceCents  int64

	Setting          *string
	GrossChargeCents *int64
	ChargeMinCents   *int64
	ChargeMaxCents   *int64

	SourceFile string
	IsOutlier  bool
}

// ServingColumns returns the ordered column names for COPY into
// serving.price_rows.
func ServingColumns() []string {
	return []string{
		"load_batch_id",
		"load_file_id",
		"source_row_number",
		"source_row_hash",
		"hospital_name",
		"payer_name",
		"payer_group",
		"code",
		"code_type",
		"description",
		"negotiated_rate_cents",
		"cash_price_cents",
		"effective_price_cents",
		"setting",
		"gross_charge_cents",
		"charge_min_cents",
		"charge_max_cents",
		"source_file",
		"is_outlier",
	}
}

// CopyValues returns the row values in ServingColumns order, suitable for a
// pgx CopyFromSource.
func (r *ServingRow) CopyValues() []any {
	return []any{
		r.LoadBatchID,
		r.LoadFileID,
		r.SourceRowNumber,
		r.SourceRowHash,
		r.HospitalName,
		r.PayerName,
		r.PayerGroup,
		r.Code,
		r.CodeType,
		r.Description,
		r.NegotiatedRateCents,
		r.CashPriceCents,
		r.EffectivePriceCents,
		r.Setting,
		r.GrossChargeCents,
		r.ChargeMinCents,
		r.ChargeMaxCents,
		r.SourceFile,
		r.IsOutlier,
	}
}
