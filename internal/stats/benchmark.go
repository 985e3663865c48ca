package stats

import (
	"sort"

	"github.com/gyeh/pricebench/internal/model"
	"github.com/gyeh/pricebench/internal/normalize"
)

// UnknownPayer stands in for a null payer name when counting distinct payers.
const UnknownPayer = "UNKNOWN"

type procedureKey struct {
	code        string
	codeType    string
	description string
}

type hospitalCodeKey struct {
	hospital    string
	code        string
	description string
}

// ProcedureBenchmark summarizes effective prices per procedure across all
// hospitals and payers.
func ProcedureBenchmark(scoped []model.PriceRecord) []model.ProcedureBenchmarkRow {
	groups := make(map[procedureKey][]float64)
	for _, rec := range scoped {
		k := procedureKey{str(rec.Code), str(rec.CodeType), str(rec.Description)}
		groups[k] = append(groups[k], price(rec))
	}

	keys := sortedProcedureKeys(groups)
	rows := make([]model.ProcedureBenchmarkRow, 0, len(keys))
	for _, k := range keys {
		p := groups[k]
		p10 := Quantile(p, 0.10)
		p90 := Quantile(p, 0.90)
		rows = append(rows, model.ProcedureBenchmarkRow{
			Code:        k.code,
			CodeType:    k.codeType,
			Description: k.description,
			NRates:      len(p),
			MedianPrice: Median(p),
			MeanPrice:   Mean(p),
			MinPrice:    minOf(p),
			MaxPrice:    maxOf(p),
			P10:         p10,
			P90:         p90,
			IQR:         Quantile(p, 0.75) - Quantile(p, 0.25),
			P90P10Ratio: Ratio(p90, p10),
			CV:          CV(p),
		})
	}
	return rows
}

// HospitalBenchmark summarizes each hospital's overall price level.
func HospitalBenchmark(scoped []model.PriceRecord) []model.HospitalBenchmarkRow {
	groups := make(map[string][]float64)
	for _, rec := range scoped {
		groups[str(rec.HospitalName)] = append(groups[str(rec.HospitalName)], price(rec))
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]model.HospitalBenchmarkRow, 0, len(names))
	for _, name := range names {
		p := groups[name]
		rows = append(rows, model.HospitalBenchmarkRow{
			HospitalName: name,
			NRates:       len(p),
			MedianPrice:  Median(p),
			MeanPrice:    Mean(p),
			P10:          Quantile(p, 0.10),
			P90:          Quantile(p, 0.90),
			IQR:          Quantile(p, 0.75) - Quantile(p, 0.25),
			CV:           CV(p),
		})
	}
	return rows
}

// WithHospitalRank computes each hospital's median price per code, ranks
// hospitals ascending within the code with min-rank tie semantics, and
// returns only the rows for the focus hospital (matched canonically).
func WithHospitalRank(scoped []model.PriceRecord, focusHospital string) []model.HospitalRankRow {
	groups := make(map[hospitalCodeKey][]float64)
	for _, rec := range scoped {
		k := hospitalCodeKey{str(rec.HospitalName), str(rec.Code), str(rec.Description)}
		groups[k] = append(groups[k], price(rec))
	}

	type medianRow struct {
		key    hospitalCodeKey
		median float64
	}
	byCode := make(map[string][]medianRow)
	for k, p := range groups {
		byCode[k.code] = append(byCode[k.code], medianRow{k, Median(p)})
	}

	focusKey := normalize.CanonicalName(focusHospital)
	var rows []model.HospitalRankRow
	for code, medians := range byCode {
		hospitals := make(map[string]bool, len(medians))
		for _, m := range medians {
			hospitals[m.key.hospital] = true
		}
		for _, m := range medians {
			if normalize.CanonicalName(m.key.hospital) != focusKey {
				continue
			}
			rank := 1
			for _, other := range medians {
				if other.median < m.median {
					rank++
				}
			}
			rows = append(rows, model.HospitalRankRow{
				HospitalName:        m.key.hospital,
				Code:                code,
				Description:         m.key.description,
				HospitalMedianPrice: m.median,
				RankLowToHigh:       rank,
				NHospitals:          len(hospitals),
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Code != rows[j].Code {
			return rows[i].Code < rows[j].Code
		}
		return rows[i].RankLowToHigh < rows[j].RankLowToHigh
	})
	return rows
}

// RankWithinCode assigns min-rank positions (ties share the lowest rank) to
// every hospital median for one code, ascending by median. Exposed for the
// dashboard collaborators that render full peer tables, not just the focus
// hospital's rows.
func RankWithinCode(medians []float64) []int {
	ranks := make([]int, len(medians))
	for i, m := range medians {
		rank := 1
		for _, other := range medians {
			if other < m {
				rank++
			}
		}
		ranks[i] = rank
	}
	return ranks
}

// PayerDispersion measures rate spread across payers within one hospital
// and code.
func PayerDispersion(scoped []model.PriceRecord) []model.PayerDispersionRow {
	groups := make(map[hospitalCodeKey][]float64)
	payers := make(map[hospitalCodeKey]map[string]bool)
	for _, rec := range scoped {
		k := hospitalCodeKey{str(rec.HospitalName), str(rec.Code), str(rec.Description)}
		groups[k] = append(groups[k], price(rec))
		if payers[k] == nil {
			payers[k] = make(map[string]bool)
		}
		payer := UnknownPayer
		if rec.PayerName != nil {
			payer = *rec.PayerName
		}
		payers[k][payer] = true
	}

	keys := make([]hospitalCodeKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.hospital != b.hospital {
			return a.hospital < b.hospital
		}
		if a.code != b.code {
			return a.code < b.code
		}
		return a.description < b.description
	})

	rows := make([]model.PayerDispersionRow, 0, len(keys))
	for _, k := range keys {
		p := groups[k]
		p10 := Quantile(p, 0.10)
		p90 := Quantile(p, 0.90)
		rows = append(rows, model.PayerDispersionRow{
			HospitalName:  k.hospital,
			Code:          k.code,
			Description:   k.description,
			NRates:        len(p),
			NUniquePayers: len(payers[k]),
			MedianPrice:   Median(p),
			MinPrice:      minOf(p),
			MaxPrice:      maxOf(p),
			P10:           p10,
			P90:           p90,
			IQR:           Quantile(p, 0.75) - Quantile(p, 0.25),
			P90P10Ratio:   Ratio(p90, p10),
			CV:            CV(p),
		})
	}
	return rows
}

func sortedProcedureKeys(groups map[procedureKey][]float64) []procedureKey {
	keys := make([]procedureKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.code != b.code {
			return a.code < b.code
		}
		if a.codeType != b.codeType {
			return a.codeType < b.codeType
		}
		return a.description < b.description
	})
	return keys
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func price(rec model.PriceRecord) float64 {
	if rec.EffectivePrice == nil {
		return 0
	}
	return *rec.EffectivePrice
}
