package stats

import (
	"sort"

	"github.com/gyeh/pricebench/internal/model"
)

// Coverage thresholds for the confidence tiers. A procedure needs all three
// counts at or above a tier's line to earn that tier.
const (
	highMinHospitals = 4
	highMinRates     = 30
	highMinPayers    = 12

	mediumMinHospitals = 2
	mediumMinRates     = 12
	mediumMinPayers    = 5
)

// Fixed reason strings per tier.
const (
	reasonHigh   = "Broad hospital + payer coverage"
	reasonMedium = "Some cross-hospital comparability"
	reasonLow    = "Insufficient cross-hospital and/or payer coverage"
)

var tierPriority = map[string]int{
	model.ConfidenceHigh:   0,
	model.ConfidenceMedium: 1,
	model.ConfidenceLow:    2,
}

// classifyConfidence maps coverage counts to a tier and its reason.
func classifyConfidence(nHospitals, nRates, nPayers int) (string, string) {
	if nHospitals >= highMinHospitals && nRates >= highMinRates && nPayers >= highMinPayers {
		return model.ConfidenceHigh, reasonHigh
	}
	if nHospitals >= mediumMinHospitals && nRates >= mediumMinRates && nPayers >= mediumMinPayers {
		return model.ConfidenceMedium, reasonMedium
	}
	return model.ConfidenceLow, reasonLow
}

// ProcedureConfidence labels each procedure with a coverage-based confidence
// tier. Output is sorted by tier (HIGH first, as a priority rather than
// alphabetically), then descending hospital count, then descending rate
// count, so the most comparable procedures lead the table.
func ProcedureConfidence(scoped []model.PriceRecord) []model.ConfidenceRow {
	prices := make(map[procedureKey][]float64)
	hospitals := make(map[procedureKey]map[string]bool)
	payers := make(map[procedureKey]map[string]bool)
	for _, rec := range scoped {
		k := procedureKey{str(rec.Code), str(rec.CodeType), str(rec.Description)}
		prices[k] = append(prices[k], price(rec))
		if hospitals[k] == nil {
			hospitals[k] = make(map[string]bool)
			payers[k] = make(map[string]bool)
		}
		hospitals[k][str(rec.HospitalName)] = true
		payer := UnknownPayer
		if rec.PayerName != nil {
			payer = *rec.PayerName
		}
		payers[k][payer] = true
	}

	rows := make([]model.ConfidenceRow, 0, len(prices))
	for k, p := range prices {
		nHospitals := len(hospitals[k])
		nPayers := len(payers[k])
		tier, reason := classifyConfidence(nHospitals, len(p), nPayers)
		p10 := Quantile(p, 0.10)
		p90 := Quantile(p, 0.90)
		rows = append(rows, model.ConfidenceRow{
			Code:             k.code,
			CodeType:         k.codeType,
			Description:      k.description,
			NRates:           len(p),
			NHospitals:       nHospitals,
			NUniquePayers:    nPayers,
			MedianPrice:      Median(p),
			P90P10Ratio:      Ratio(p90, p10),
			Confidence:       tier,
			ConfidenceReason: reason,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if tierPriority[a.Confidence] != tierPriority[b.Confidence] {
			return tierPriority[a.Confidence] < tierPriority[b.Confidence]
		}
		if a.NHospitals != b.NHospitals {
			return a.NHospitals > b.NHospitals
		}
		if a.NRates != b.NRates {
			return a.NRates > b.NRates
		}
		return a.Code < b.Code
	})
	return rows
}
