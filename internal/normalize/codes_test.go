package normalize

import "testing"

func strp(s string) *string { return &s }

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in   *string
		want *string
	}{
		{nil, nil},
		{strp(""), nil},
		{strp("   "), nil},
		{strp("27447"), strp("27447")},
		{strp(" 27447 "), strp("27447")},
		{strp("27447.0"), strp("27447")},
		{strp("470.00"), strp("470")},
		{strp("MS-DRG 470"), strp("470")},
		{strp("MSDRG 470"), strp("470")},
		{strp("ms-drg-470"), strp("470")},
		{strp("DRG: 470"), strp("470")},
		{strp("APR-DRG 301"), strp("301")},
		{strp("CPT 27447"), strp("27447")},
		{strp("CPT: 27447"), strp("27447")},
		{strp("J1100"), strp("J1100")},
	}

	for _, tt := range tests {
		got := NormalizeCode(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("NormalizeCode(%v) = %q, want nil", deref(tt.in), *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("NormalizeCode(%q) = %v, want %q", deref(tt.in), got, *tt.want)
		}
	}
}

func TestNormalizeCodeType(t *testing.T) {
	tests := []struct {
		in   *string
		want *string
	}{
		{nil, nil},
		{strp(""), nil},
		{strp("CPT"), strp("CPT")},
		{strp("cpt"), strp("CPT")},
		{strp("HCPCS"), strp("CPT")},
		{strp("CPT/HCPCS"), strp("CPT")},
		{strp("HCPCS CPT"), strp("CPT")},
		{strp("DRG"), strp("DRG")},
		{strp("MS DRG"), strp("DRG")},
		{strp("ms-drg"), strp("DRG")},
		{strp("APR DRG"), strp("DRG")},
		{strp("NDC"), strp("NDC")},
		{strp("local"), strp("LOCAL")},
	}

	for _, tt := range tests {
		got := NormalizeCodeType(tt.in)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("NormalizeCodeType(%v) = %q, want nil", deref(tt.in), *got)
		case tt.want != nil && (got == nil || *got != *tt.want):
			t.Errorf("NormalizeCodeType(%q) = %v, want %q", deref(tt.in), got, *tt.want)
		}
	}
}

func deref(v *string) string {
	if v == nil {
		return "<nil>"
	}
	return *v
}
