package flatten

import "strings"

const (
	colNegotiatedDollar = "standard_charge|negotiated_dollar"
	colEstimatedAmount  = "estimated_amount"

	// UnknownPayer labels rows whose source carries no payer identity at all.
	UnknownPayer = "UNKNOWN"
)

var cmsFlatOutputColumns = []string{
	"description", "code", "code_type", "payer_name",
	"negotiated_rate", "cash_price",
	"setting", "gross_charge", "charge_min", "charge_max",
}

// flattenCMSFlat handles the CMS v3.0 flat CSV: payer identity is already a
// row value, so each input row maps to exactly one output row. The payer
// label joins payer_name and plan_name; the negotiated rate prefers the flat
// negotiated dollar column and falls back to estimated_amount only when the
// dollar cell is absent or blank; an explicit 0 is kept.
func flattenCMSFlat(t *Table) *Table {
	hasPlan := t.HasColumn("plan_name")
	hasNegotiated := t.HasColumn(colNegotiatedDollar)
	hasEstimated := t.HasColumn(colEstimatedAmount)
	hasCash := t.HasColumn(colDiscountedCash)

	out := &Table{Columns: cmsFlatOutputColumns}
	for _, rec := range t.Records {
		r := Record{
			"description": rec["description"],
			"code":        backfillString(rec, "code|1", "code|2", "code|3"),
			"code_type":   backfillString(rec, "code|1|type", "code|2|type", "code|3|type"),
			"payer_name":  joinPayerPlan(rec, hasPlan),
		}

		// Blank or unparseable negotiated dollar counts as absent and falls
		// back to the estimate. A parsed 0 does not fall through.
		if v, ok := parseNumeric(cell(rec, hasNegotiated, colNegotiatedDollar)); ok {
			r["negotiated_rate"] = v
		} else if v, ok := parseNumeric(cell(rec, hasEstimated, colEstimatedAmount)); ok {
			r["negotiated_rate"] = v
		}
		if hasCash && !blank(rec[colDiscountedCash]) {
			r["cash_price"] = rec[colDiscountedCash]
		}

		copyIfPresent(r, rec, "setting", colSetting)
		copyIfPresent(r, rec, "gross_charge", colGrossCharge)
		copyIfPresent(r, rec, "charge_min", colChargeMin)
		copyIfPresent(r, rec, "charge_max", colChargeMax)

		out.Records = append(out.Records, r)
	}
	return out
}

func joinPayerPlan(rec Record, hasPlan bool) string {
	payer := stringValue(rec["payer_name"])
	if !hasPlan {
		if payer == "" {
			return UnknownPayer
		}
		return payer
	}
	plan := stringValue(rec["plan_name"])
	label := strings.Trim(payer+" - "+plan, " -")
	if label == "" {
		return UnknownPayer
	}
	return label
}

func cell(rec Record, hasCol bool, col string) any {
	if !hasCol {
		return nil
	}
	return rec[col]
}

func stringValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
