package scope

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gyeh/pricebench/internal/model"
	"github.com/gyeh/pricebench/internal/normalize"
	"github.com/gyeh/pricebench/internal/stats"
)

// Loosely-labeled code types that code-type inference may overwrite.
var looseTypeLabel = regexp.MustCompile(`HCPCS|CPT|DRG`)

// familyDigits holds one digit-substring matcher per canonical code family.
var familyDigits = func() map[string]*regexp.Regexp {
	m := make(map[string]*regexp.Regexp, len(model.CodeFamilies))
	for _, f := range model.CodeFamilies {
		m[f.Name] = regexp.MustCompile(fmt.Sprintf(`[0-9]{%d}`, f.DigitLength))
	}
	return m
}()

// Filter returns the in-scope, priced, deduplicated rows of the unified
// table. An empty catalog on either side yields an empty result, never an
// error. The returned slice is annotated with outlier flags; input records
// are not mutated.
func Filter(records []model.PriceRecord, hospitals []model.HospitalCatalogEntry, procedures []model.ProcedureCatalogEntry) []model.PriceRecord {
	hospitalKeys := make(map[string]bool, len(hospitals))
	for _, h := range hospitals {
		if key := normalize.CanonicalName(h.HospitalName); key != "" {
			hospitalKeys[key] = true
		}
	}

	type pair struct{ code, codeType string }
	pairSet := make(map[pair]bool, len(procedures))
	familyCodes := make(map[string]map[string]bool, len(model.CodeFamilies))
	for _, f := range model.CodeFamilies {
		familyCodes[f.Name] = make(map[string]bool)
	}
	catalogDesc := make(map[pair]string, len(procedures))
	for _, p := range procedures {
		key := pair{p.Code, p.CodeType}
		pairSet[key] = true
		if p.Description != "" {
			catalogDesc[key] = p.Description
		}
		if codes, ok := familyCodes[p.CodeType]; ok {
			codes[p.Code] = true
		}
	}

	var scoped []model.PriceRecord
	for _, rec := range records {
		if rec.HospitalName == nil || !hospitalKeys[normalize.CanonicalName(*rec.HospitalName)] {
			continue
		}

		code := derefOr(rec.Code, "")
		codeType := derefOr(rec.CodeType, "")

		// Re-derive the code type for rows that are unlabeled or only loosely
		// labeled, by checking digit substrings against the catalog's code
		// sets. Rows already cleanly typed as a family are left alone. The
		// digit heuristic is best-effort: a code matching several families
		// resolves in CodeFamilies priority order.
		upper := strings.ToUpper(strings.TrimSpace(codeType))
		eligible := upper == "" || looseTypeLabel.MatchString(upper)
		if eligible && familyCodes[codeType] == nil {
			for _, f := range model.CodeFamilies {
				digits := familyDigits[f.Name].FindString(code)
				if digits != "" && familyCodes[f.Name][digits] {
					codeType = f.Name
					break
				}
			}
		}

		// Normalize the code to the extracted digit substring for the final
		// family, so "MS-DRG 470" and "470" land on the same catalog key.
		if pat, ok := familyDigits[codeType]; ok {
			if digits := pat.FindString(code); digits != "" {
				code = digits
			}
		}

		key := pair{code, codeType}
		if !pairSet[key] {
			continue
		}

		if rec.EffectivePrice == nil || *rec.EffectivePrice <= 0 {
			continue
		}

		out := rec
		out.Code = &code
		out.CodeType = &codeType
		if desc, ok := catalogDesc[key]; ok {
			d := desc
			out.Description = &d
		}
		scoped = append(scoped, out)
	}

	scoped = dedupe(scoped)
	flagOutliers(scoped)
	return scoped
}

// dedupe removes rows identical on (hospital, code, payer, effective_price,
// setting), keeping the first occurrence. Rows differing only in setting
// (inpatient vs outpatient) survive as distinct facts.
func dedupe(records []model.PriceRecord) []model.PriceRecord {
	seen := make(map[string]bool, len(records))
	out := records[:0]
	for _, rec := range records {
		key := strings.Join([]string{
			derefOr(rec.HospitalName, "\x00"),
			derefOr(rec.Code, "\x00"),
			derefOr(rec.PayerName, "\x00"),
			priceKey(rec.EffectivePrice),
			derefOr(rec.Setting, "\x00"),
		}, "\x1f")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rec)
	}
	return out
}

// flagOutliers marks rows outside a 3×IQR fence around the per-code 10th and
// 90th percentiles (floored at 0). Advisory metadata only, never a filter.
func flagOutliers(records []model.PriceRecord) {
	groups := make(map[string][]int)
	for i, rec := range records {
		groups[derefOr(rec.Code, "")] = append(groups[derefOr(rec.Code, "")], i)
	}
	for _, idxs := range groups {
		prices := make([]float64, len(idxs))
		for i, idx := range idxs {
			prices[i] = *records[idx].EffectivePrice
		}
		p10 := stats.Quantile(prices, 0.10)
		p90 := stats.Quantile(prices, 0.90)
		iqr := p90 - p10
		lower := p10 - 3*iqr
		if lower < 0 {
			lower = 0
		}
		upper := p90 + 3*iqr
		for _, idx := range idxs {
			p := *records[idx].EffectivePrice
			records[idx].IsOutlier = p < lower || p > upper
		}
	}
}

func derefOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func priceKey(v *float64) string {
	if v == nil {
		return "\x00"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}
