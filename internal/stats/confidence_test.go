package stats

import (
	"fmt"
	"testing"

	"github.com/gyeh/pricebench/internal/model"
)

func TestClassifyConfidence(t *testing.T) {
	tests := []struct {
		hospitals, rates, payers int
		want                     string
	}{
		{4, 30, 12, model.ConfidenceHigh},
		{10, 100, 20, model.ConfidenceHigh},
		// One count below the HIGH line drops a tier.
		{3, 30, 12, model.ConfidenceMedium},
		{4, 29, 12, model.ConfidenceMedium},
		{4, 30, 11, model.ConfidenceMedium},
		{2, 12, 5, model.ConfidenceMedium},
		{1, 100, 50, model.ConfidenceLow},
		{2, 11, 5, model.ConfidenceLow},
		{2, 12, 4, model.ConfidenceLow},
		{0, 0, 0, model.ConfidenceLow},
	}

	for _, tt := range tests {
		got, _ := classifyConfidence(tt.hospitals, tt.rates, tt.payers)
		if got != tt.want {
			t.Errorf("classify(%d, %d, %d) = %q, want %q",
				tt.hospitals, tt.rates, tt.payers, got, tt.want)
		}
	}
}

func TestClassifyConfidence_Reasons(t *testing.T) {
	_, high := classifyConfidence(4, 30, 12)
	if high != "Broad hospital + payer coverage" {
		t.Errorf("high reason = %q", high)
	}
	_, medium := classifyConfidence(2, 12, 5)
	if medium != "Some cross-hospital comparability" {
		t.Errorf("medium reason = %q", medium)
	}
	_, low := classifyConfidence(1, 1, 1)
	if low != "Insufficient cross-hospital and/or payer coverage" {
		t.Errorf("low reason = %q", low)
	}
}

func TestProcedureConfidence_SingleHospitalIsLow(t *testing.T) {
	var records []model.PriceRecord
	// Plenty of rates and payers, but only one hospital.
	for i := 0; i < 40; i++ {
		records = append(records,
			scopedRecord("Solo Hospital", "27447", "Knee", fmt.Sprintf("Payer%d", i), float64(20000+i)))
	}

	rows := ProcedureConfidence(records)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Confidence != model.ConfidenceLow {
		t.Errorf("confidence = %q, want LOW for a single hospital", rows[0].Confidence)
	}
	if rows[0].NHospitals != 1 || rows[0].NRates != 40 || rows[0].NUniquePayers != 40 {
		t.Errorf("counts = %+v", rows[0])
	}
}

func TestProcedureConfidence_SortsByTierPriority(t *testing.T) {
	var records []model.PriceRecord

	// "00001" earns MEDIUM: 2 hospitals, 12 rates, 6 payers.
	for i := 0; i < 6; i++ {
		records = append(records,
			scopedRecord("Hosp A", "00001", "Med proc", fmt.Sprintf("P%d", i), 1000),
			scopedRecord("Hosp B", "00001", "Med proc", fmt.Sprintf("P%d", i), 1100))
	}
	// "99999" is LOW but sorts first alphabetically: priority must win.
	records = append(records, scopedRecord("Hosp A", "99999", "Low proc", "P0", 500))

	rows := ProcedureConfidence(records)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Code != "00001" || rows[0].Confidence != model.ConfidenceMedium {
		t.Errorf("row 0 = %q (%s), want the MEDIUM procedure first", rows[0].Code, rows[0].Confidence)
	}
	if rows[1].Confidence != model.ConfidenceLow {
		t.Errorf("row 1 = %s, want LOW last", rows[1].Confidence)
	}
}

func TestProcedureConfidence_TieBreaksOnHospitalCount(t *testing.T) {
	var records []model.PriceRecord
	// Both procedures are LOW; the one seen at more hospitals leads.
	records = append(records,
		scopedRecord("A", "11111", "x", "P", 100),
		scopedRecord("B", "11111", "x", "P", 110),
		scopedRecord("A", "22222", "y", "P", 200))

	rows := ProcedureConfidence(records)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Code != "11111" {
		t.Errorf("row 0 = %q, want the 2-hospital procedure first", rows[0].Code)
	}
}
