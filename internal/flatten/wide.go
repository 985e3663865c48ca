package flatten

import "strings"

const (
	colDiscountedCash = "standard_charge|discounted_cash"
	colGrossCharge    = "standard_charge|gross"
	colChargeMin      = "standard_charge|min"
	colChargeMax      = "standard_charge|max"
	colSetting        = "setting"

	// DiscountedCashPayer is the synthetic payer label for self-pay rows
	// unpivoted from a discounted-cash column.
	DiscountedCashPayer = "DISCOUNTED_CASH"
)

var wideOutputColumns = []string{
	"description", "code", "code_type", "payer_name",
	"negotiated_rate", "cash_price",
	"setting", "gross_charge", "charge_min", "charge_max",
}

// flattenWidePivot unpivots the wide dialect where each payer/plan pair owns
// a "standard_charge|<payer>|<plan>|negotiated_dollar" column. One input row
// fans out into a DISCOUNTED_CASH row plus one row per non-blank payer cell.
// Payers that publish only an "estimated_amount|<payer>|<plan>" column (no
// flat negotiated dollar) get a fallback row from that estimate: it is the
// CMS-required dollar field for percentage and algorithm based rates.
func flattenWidePivot(t *Table) *Table {
	if !t.HasColumn("description") {
		return t
	}

	var payerCols, estCols []string
	for _, c := range t.Columns {
		if strings.HasPrefix(c, "standard_charge|") && strings.HasSuffix(c, "|negotiated_dollar") {
			payerCols = append(payerCols, c)
		}
		if strings.HasPrefix(c, "estimated_amount|") {
			estCols = append(estCols, c)
		}
	}
	hasCash := t.HasColumn(colDiscountedCash)

	out := &Table{Columns: wideOutputColumns}
	type payerCode struct{ payer, code string }
	seen := make(map[payerCode]bool)

	for _, rec := range t.Records {
		code := backfillString(rec, "code|1", "code|2", "code|3")

		if hasCash && !blank(rec[colDiscountedCash]) {
			r := wideBase(rec, code)
			r["payer_name"] = DiscountedCashPayer
			r["cash_price"] = rec[colDiscountedCash]
			out.Records = append(out.Records, r)
		}

		for _, col := range payerCols {
			if blank(rec[col]) {
				continue
			}
			payer := payerFromColumn(col, "standard_charge|", "|negotiated_dollar")
			r := wideBase(rec, code)
			r["payer_name"] = payer
			r["negotiated_rate"] = rec[col]
			out.Records = append(out.Records, r)
			seen[payerCode{payer, code}] = true
		}
	}

	// The estimate pass runs only after every negotiated dollar has been
	// collected: a payer/code pair that publishes a real dollar on any row
	// (say the inpatient one) must not also get an estimate row from
	// another (say the outpatient one).
	for _, rec := range t.Records {
		code := backfillString(rec, "code|1", "code|2", "code|3")

		for _, col := range estCols {
			if blank(rec[col]) {
				continue
			}
			payer := payerFromColumn(col, "estimated_amount|", "")
			if seen[payerCode{payer, code}] {
				continue
			}
			r := wideBase(rec, code)
			r["payer_name"] = payer
			r["negotiated_rate"] = rec[col]
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// wideBase builds the shared context fields for one unpivoted row.
func wideBase(rec Record, code string) Record {
	r := Record{
		"description": rec["description"],
		"code":        code,
		"code_type":   backfillString(rec, "code|1|type", "code|2|type", "code|3|type"),
	}
	copyIfPresent(r, rec, "gross_charge", colGrossCharge)
	copyIfPresent(r, rec, "charge_min", colChargeMin)
	copyIfPresent(r, rec, "charge_max", colChargeMax)
	copyIfPresent(r, rec, "setting", colSetting)
	return r
}

// payerFromColumn turns "standard_charge|Aetna|Commercial|negotiated_dollar"
// into "Aetna - Commercial".
func payerFromColumn(col, prefix, suffix string) string {
	s := strings.TrimPrefix(col, prefix)
	if suffix != "" {
		s = strings.TrimSuffix(s, suffix)
	}
	return strings.ReplaceAll(s, "|", " - ")
}

// backfillString returns the first non-blank string value among keys.
func backfillString(rec Record, keys ...string) string {
	for _, k := range keys {
		if v, ok := rec[k]; ok && !blank(v) {
			if s, ok := v.(string); ok {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

func copyIfPresent(dst Record, src Record, dstKey, srcKey string) {
	if v, ok := src[srcKey]; ok && !blank(v) {
		dst[dstKey] = v
	}
}
