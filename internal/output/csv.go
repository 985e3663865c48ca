// Package output persists the pipeline's tables. Every writer produces its
// file even for empty input (header only), so a run always yields the full
// declared output set.
package output

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/gyeh/pricebench/internal/model"
)

// WriteNormalizedPrices writes the scoped price table as CSV.
func WriteNormalizedPrices(path string, records []model.PriceRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			optStr(r.HospitalName),
			optStr(r.PayerName),
			optStr(r.Code),
			optStr(r.CodeType),
			optStr(r.Description),
			optNum(r.NegotiatedRate),
			optNum(r.CashPrice),
			optNum(r.EffectivePrice),
			optStr(r.Setting),
			optNum(r.GrossCharge),
			optNum(r.ChargeMin),
			optNum(r.ChargeMax),
			r.SourceFile,
			strconv.FormatBool(r.IsOutlier),
			r.PayerGroup,
			r.PayerCanonical,
		})
	}
	return writeCSV(path, model.CanonicalColumns, rows)
}

// WriteProcedureBenchmark writes the per-procedure aggregate table.
func WriteProcedureBenchmark(path string, rows []model.ProcedureBenchmarkRow) error {
	header := []string{"code", "code_type", "description", "n_rates", "median_price",
		"mean_price", "min_price", "max_price", "p10", "p90", "iqr", "p90_p10_ratio", "cv"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Code, r.CodeType, r.Description, strconv.Itoa(r.NRates),
			num(r.MedianPrice), num(r.MeanPrice), num(r.MinPrice), num(r.MaxPrice),
			num(r.P10), num(r.P90), num(r.IQR), num(r.P90P10Ratio), num(r.CV),
		})
	}
	return writeCSV(path, header, out)
}

// WriteHospitalBenchmark writes the per-hospital aggregate table.
func WriteHospitalBenchmark(path string, rows []model.HospitalBenchmarkRow) error {
	header := []string{"hospital_name", "n_rates", "median_price", "mean_price",
		"p10", "p90", "iqr", "cv"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.HospitalName, strconv.Itoa(r.NRates),
			num(r.MedianPrice), num(r.MeanPrice),
			num(r.P10), num(r.P90), num(r.IQR), num(r.CV),
		})
	}
	return writeCSV(path, header, out)
}

// WriteHospitalRank writes the focus-hospital rank table.
func WriteHospitalRank(path string, rows []model.HospitalRankRow) error {
	header := []string{"hospital_name", "code", "description",
		"hospital_median_price", "rank_low_to_high", "n_hospitals"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.HospitalName, r.Code, r.Description,
			num(r.HospitalMedianPrice), strconv.Itoa(r.RankLowToHigh), strconv.Itoa(r.NHospitals),
		})
	}
	return writeCSV(path, header, out)
}

// WritePayerDispersion writes the per-hospital per-code payer spread table.
func WritePayerDispersion(path string, rows []model.PayerDispersionRow) error {
	header := []string{"hospital_name", "code", "description", "n_rates",
		"n_unique_payers", "median_price", "min_price", "max_price",
		"p10", "p90", "iqr", "p90_p10_ratio", "cv"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.HospitalName, r.Code, r.Description, strconv.Itoa(r.NRates),
			strconv.Itoa(r.NUniquePayers), num(r.MedianPrice), num(r.MinPrice), num(r.MaxPrice),
			num(r.P10), num(r.P90), num(r.IQR), num(r.P90P10Ratio), num(r.CV),
		})
	}
	return writeCSV(path, header, out)
}

// WriteConfidence writes the procedure confidence table.
func WriteConfidence(path string, rows []model.ConfidenceRow) error {
	header := []string{"code", "code_type", "description", "n_rates",
		"n_hospitals", "n_unique_payers", "median_price", "p90_p10_ratio",
		"confidence", "confidence_reason"}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Code, r.CodeType, r.Description, strconv.Itoa(r.NRates),
			strconv.Itoa(r.NHospitals), strconv.Itoa(r.NUniquePayers),
			num(r.MedianPrice), num(r.P90P10Ratio),
			r.Confidence, r.ConfidenceReason,
		})
	}
	return writeCSV(path, header, out)
}

// WriteAudit writes one row per attempted raw file, both parsed and failed.
func WriteAudit(path string, audits []model.FileAudit) error {
	header := []string{"file", "status", "error_type", "sha256", "rows"}
	out := make([][]string, 0, len(audits))
	for _, a := range audits {
		out = append(out, []string{a.File, a.Status, a.ErrorType, a.SHA256, strconv.Itoa(a.Rows)})
	}
	return writeCSV(path, header, out)
}

// WriteFailures writes only the failed-parse subset of the audit table.
func WriteFailures(path string, audits []model.FileAudit) error {
	var failed []model.FileAudit
	for _, a := range audits {
		if a.Status == model.StatusFailedParse {
			failed = append(failed, a)
		}
	}
	return WriteAudit(path, failed)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write header %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write rows %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

// num formats a float for CSV, leaving NaN cells empty.
func num(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func optNum(v *float64) string {
	if v == nil {
		return ""
	}
	return num(*v)
}

func optStr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
