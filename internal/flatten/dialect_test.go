package flatten

import "testing"

func TestClassifyColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    Dialect
	}{
		{
			name:    "narrow",
			columns: []string{"hospital_name", "payer_name", "code", "negotiated_rate"},
			want:    DialectNarrow,
		},
		{
			name: "cms flat has payer_name column",
			columns: []string{
				"description", "code|1", "code|1|type", "payer_name", "plan_name",
				"standard_charge|negotiated_dollar",
			},
			want: DialectCMSFlat,
		},
		{
			name: "wide pivot embeds payer in column names",
			columns: []string{
				"description", "code|1", "code|1|type",
				"standard_charge|Aetna|Commercial|negotiated_dollar",
				"standard_charge|discounted_cash",
			},
			want: DialectWidePivot,
		},
		{
			name:    "pivot columns without code|1 stay narrow",
			columns: []string{"description", "standard_charge|gross"},
			want:    DialectNarrow,
		},
		{
			name:    "code|1 without pivot columns stays narrow",
			columns: []string{"description", "code|1", "payer_name"},
			want:    DialectNarrow,
		},
		{
			name:    "empty header",
			columns: nil,
			want:    DialectNarrow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyColumns(tt.columns); got != tt.want {
				t.Errorf("ClassifyColumns(%v) = %v, want %v", tt.columns, got, tt.want)
			}
		})
	}
}

func TestDialectString(t *testing.T) {
	if DialectNarrow.String() != "narrow" {
		t.Errorf("narrow = %q", DialectNarrow.String())
	}
	if DialectCMSFlat.String() != "cms_flat" {
		t.Errorf("cms_flat = %q", DialectCMSFlat.String())
	}
	if DialectWidePivot.String() != "wide_pivot" {
		t.Errorf("wide_pivot = %q", DialectWidePivot.String())
	}
}
