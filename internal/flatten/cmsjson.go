package flatten

import "strings"

// UnknownPayerLabel labels nested-JSON payer entries with neither a payer
// nor a plan name.
const UnknownPayerLabel = "UNKNOWN_PAYER"

var jsonOutputColumns = []string{
	"hospital_name", "payer_name", "code", "code_type", "description",
	"negotiated_rate", "cash_price",
	"setting", "gross_charge", "charge_min", "charge_max",
}

// flattenChargeInformation handles the nested CMS JSON dialect: a payload
// whose standard_charge_information list crosses code_information entries
// with standard_charges contexts. Each charge context fans out into an
// optional DISCOUNTED_CASH row plus one row per payers_information entry.
//
// The negotiated rate is first-present-wins across the CMS field variants,
// where "present" means not null and not an empty string. An explicit 0 is
// a real rate and never falls through to a later field.
func flattenChargeInformation(payload map[string]any) *Table {
	out := &Table{Columns: jsonOutputColumns}
	hospitalName, _ := payload["hospital_name"].(string)

	items, _ := payload["standard_charge_information"].([]any)
	for _, rawItem := range items {
		item, ok := rawItem.(map[string]any)
		if !ok {
			continue
		}
		description := item["description"]
		codeInfos := objectList(item["code_information"])
		if len(codeInfos) == 0 {
			codeInfos = []map[string]any{{}}
		}
		charges := objectList(item["standard_charges"])
		if len(charges) == 0 {
			charges = []map[string]any{{}}
		}

		for _, codeInfo := range codeInfos {
			code := codeInfo["code"]
			codeType := codeInfo["type"]

			for _, charge := range charges {
				base := func() Record {
					r := Record{
						"hospital_name": hospitalName,
						"code":          code,
						"code_type":     codeType,
						"description":   description,
					}
					if v := firstPresent(charge, "gross_charge"); v != nil {
						r["gross_charge"] = v
					}
					if v := firstPresent(charge, "setting"); v != nil {
						r["setting"] = v
					}
					if v := firstPresent(charge, "minimum"); v != nil {
						r["charge_min"] = v
					}
					if v := firstPresent(charge, "maximum"); v != nil {
						r["charge_max"] = v
					}
					return r
				}

				if cash := firstPresent(charge, "discounted_cash"); cash != nil {
					r := base()
					r["payer_name"] = DiscountedCashPayer
					r["cash_price"] = cash
					out.Records = append(out.Records, r)
				}

				payers := objectList(charge["payers_information"])
				if len(payers) > 0 {
					for _, p := range payers {
						r := base()
						r["payer_name"] = payerLabel(p)
						if rate := firstPresent(p,
							"negotiated_dollar", "negotiated_rate",
							"estimated_amount", "standard_charge_dollar"); rate != nil {
							r["negotiated_rate"] = rate
						}
						out.Records = append(out.Records, r)
					}
				} else if payer := firstPresent(charge, "payer_name", "payer"); payer != nil {
					r := base()
					r["payer_name"] = payer
					if rate := firstPresent(charge,
						"negotiated_dollar", "negotiated_rate", "price"); rate != nil {
						r["negotiated_rate"] = rate
					}
					out.Records = append(out.Records, r)
				}
			}
		}
	}
	return out
}

// payerLabel joins payer_name and plan_name with " - ", omitting absent
// parts, or UNKNOWN_PAYER when both are missing.
func payerLabel(p map[string]any) string {
	var parts []string
	for _, key := range []string{"payer_name", "plan_name"} {
		if v := firstPresent(p, key); v != nil {
			if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
				parts = append(parts, strings.TrimSpace(s))
			}
		}
	}
	if len(parts) == 0 {
		return UnknownPayerLabel
	}
	return strings.Join(parts, " - ")
}

func objectList(v any) []map[string]any {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []map[string]any
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
