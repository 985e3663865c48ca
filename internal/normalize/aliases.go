package normalize

import (
	"strconv"
	"strings"

	"github.com/gyeh/pricebench/internal/flatten"
	"github.com/gyeh/pricebench/internal/model"
)

// columnAliases maps each canonical column to the source header names that
// may carry it, in preference order. Matching is case-insensitive and the
// first alias present in the header wins.
var columnAliases = []struct {
	canonical string
	aliases   []string
}{
	{"hospital_name", []string{"hospital_name", "hospital", "facility_name", "provider_name", "organization"}},
	{"payer_name", []string{"payer_name", "payer", "plan_name", "insurance", "insurance_plan"}},
	{"code", []string{"code", "billing_code", "procedure_code", "cpt", "drg", "service_code"}},
	{"code_type", []string{"code_type", "billing_code_type", "type", "code_system"}},
	{"description", []string{"description", "service_description", "item_description", "procedure_description"}},
	{"negotiated_rate", []string{"negotiated_rate", "price", "negotiated_price", "allowed_amount", "rate"}},
	{"cash_price", []string{"cash_price", "discounted_cash_price", "cash", "self_pay_price"}},
	{"setting", []string{"setting"}},
	{"gross_charge", []string{"gross_charge", "standard_charge|gross"}},
	{"charge_min", []string{"charge_min", "standard_charge|min"}},
	{"charge_max", []string{"charge_max", "standard_charge|max"}},
}

// ApplyAliases maps a flattened pre-canonical table onto PriceRecords:
// resolves each canonical column against the alias list, normalizes code and
// code_type, coerces money fields, and derives the effective price as
// negotiated-rate-or-cash-fallback. Canonical columns with no matching
// source column come out all-nil.
func ApplyAliases(t *flatten.Table) []model.PriceRecord {
	lookup := make(map[string]string, len(t.Columns))
	for _, c := range t.Columns {
		key := strings.ToLower(c)
		if _, ok := lookup[key]; !ok {
			lookup[key] = c
		}
	}

	source := make(map[string]string, len(columnAliases))
	for _, a := range columnAliases {
		for _, alias := range a.aliases {
			if col, ok := lookup[strings.ToLower(alias)]; ok {
				source[a.canonical] = col
				break
			}
		}
	}

	records := make([]model.PriceRecord, 0, len(t.Records))
	for _, raw := range t.Records {
		value := func(canonical string) any {
			col, ok := source[canonical]
			if !ok {
				return nil
			}
			return raw[col]
		}

		rec := model.PriceRecord{
			HospitalName:   optionalString(value("hospital_name")),
			PayerName:      optionalString(value("payer_name")),
			Code:           NormalizeCode(optionalString(value("code"))),
			CodeType:       NormalizeCodeType(optionalString(value("code_type"))),
			Description:    optionalString(value("description")),
			NegotiatedRate: ParseMoney(value("negotiated_rate")),
			CashPrice:      ParseMoney(value("cash_price")),
			GrossCharge:    ParseMoney(value("gross_charge")),
			ChargeMin:      ParseMoney(value("charge_min")),
			ChargeMax:      ParseMoney(value("charge_max")),
		}
		if s := optionalString(value("setting")); s != nil {
			lowered := strings.ToLower(strings.TrimSpace(*s))
			rec.Setting = &lowered
		}
		if rec.NegotiatedRate != nil {
			rec.EffectivePrice = rec.NegotiatedRate
		} else {
			rec.EffectivePrice = rec.CashPrice
		}
		records = append(records, rec)
	}
	return records
}

// optionalString coerces a raw cell to a nullable string. Numeric values
// format without an exponent so codes like 27447.0 stay readable.
func optionalString(v any) *string {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(x) == "" {
			return nil
		}
		return &x
	case float64:
		s := strconv.FormatFloat(x, 'f', -1, 64)
		return &s
	case bool:
		s := strconv.FormatBool(x)
		return &s
	default:
		return nil
	}
}
