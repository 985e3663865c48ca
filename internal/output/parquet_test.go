package output

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/gyeh/pricebench/internal/model"
	"github.com/gyeh/pricebench/internal/parquetread"
)

func strp(s string) *string { return &s }
func fp(f float64) *float64 { return &f }

func TestWriteNormalizedParquet_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "normalized_prices.parquet")

	records := []model.PriceRecord{
		{
			HospitalName:   strp("Skagit Valley Hospital"),
			PayerName:      strp("Premera - PPO"),
			Code:           strp("27447"),
			CodeType:       strp("CPT"),
			Description:    strp("Total knee arthroplasty"),
			NegotiatedRate: fp(24500),
			EffectivePrice: fp(24500),
			Setting:        strp("outpatient"),
			SourceFile:     "data/raw/skagit.csv",
			PayerGroup:     "Premera Blue Cross",
			PayerCanonical: "Premera Blue Cross - PPO",
		},
		{
			HospitalName:   strp("Cascade Valley Hospital"),
			Code:           strp("470"),
			CodeType:       strp("DRG"),
			CashPrice:      fp(38000),
			EffectivePrice: fp(38000),
			SourceFile:     "data/raw/cascade.csv",
			IsOutlier:      true,
			PayerGroup:     "Unknown",
			PayerCanonical: "Unknown",
		},
	}

	if err := WriteNormalizedParquet(path, records); err != nil {
		t.Fatalf("WriteNormalizedParquet: %v", err)
	}

	reader, err := parquetread.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()

	if err := parquetread.ValidateSchema(reader.Schema()); err != nil {
		t.Fatalf("ValidateSchema: %v", err)
	}
	if reader.NumRows() != 2 {
		t.Fatalf("NumRows = %d, want 2", reader.NumRows())
	}

	rows := make([]model.NormalizedPriceRow, 4)
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		t.Fatalf("Read: %v", err)
	}
	if n != 2 {
		t.Fatalf("read %d rows, want 2", n)
	}

	first := rows[0]
	if first.HospitalName != "Skagit Valley Hospital" || first.Code != "27447" {
		t.Errorf("row 0 = %+v", first)
	}
	if first.PayerName == nil || *first.PayerName != "Premera - PPO" {
		t.Errorf("payer_name = %v", first.PayerName)
	}
	if first.NegotiatedRate == nil || *first.NegotiatedRate != 24500 {
		t.Errorf("negotiated_rate = %v", first.NegotiatedRate)
	}

	second := rows[1]
	if second.PayerName != nil {
		t.Errorf("absent payer must stay null, got %v", *second.PayerName)
	}
	if !second.IsOutlier {
		t.Error("outlier flag lost")
	}
	if second.EffectivePrice != 38000 {
		t.Errorf("effective_price = %v", second.EffectivePrice)
	}
}

func TestWriteNormalizedParquet_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	if err := WriteNormalizedParquet(path, nil); err != nil {
		t.Fatalf("WriteNormalizedParquet: %v", err)
	}

	reader, err := parquetread.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reader.Close()
	if reader.NumRows() != 0 {
		t.Errorf("NumRows = %d", reader.NumRows())
	}
}
