package model

// ProcedureBenchmarkRow is the per-procedure cross-hospital price summary.
// Ratio and dispersion fields are NaN when a denominator is zero or missing.
type ProcedureBenchmarkRow struct {
	Code        string
	CodeType    string
	Description string

	NRates      int
	MedianPrice float64
	MeanPrice   float64
	MinPrice    float64
	MaxPrice    float64
	P10         float64
	P90         float64
	IQR         float64
	P90P10Ratio float64
	CV          float64
}

// HospitalBenchmarkRow summarizes all scoped prices for one hospital.
type HospitalBenchmarkRow struct {
	HospitalName string

	NRates      int
	MedianPrice float64
	MeanPrice   float64
	P10         float64
	P90         float64
	IQR         float64
	CV          float64
}

// HospitalRankRow is one hospital's median price and rank for one code.
// Ranks are ascending by median with min-rank tie semantics.
type HospitalRankRow struct {
	HospitalName       string
	Code               string
	Description        string
	HospitalMedianPrice float64
	RankLowToHigh      int
	NHospitals         int
}

// PayerDispersionRow measures how much negotiated rates spread across payers
// within one hospital for one code.
type PayerDispersionRow struct {
	HospitalName string
	Code         string
	Description  string

	NRates        int
	NUniquePayers int
	MedianPrice   float64
	MinPrice      float64
	MaxPrice      float64
	P10           float64
	P90           float64
	IQR           float64
	P90P10Ratio   float64
	CV            float64
}

// Confidence tiers, in presentation priority order.
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

// ConfidenceRow labels one procedure with a coverage-based confidence tier.
type ConfidenceRow struct {
	Code        string
	CodeType    string
	Description string

	NRates        int
	NHospitals    int
	NUniquePayers int
	MedianPrice   float64
	P90P10Ratio   float64

	Confidence       string
	ConfidenceReason string
}
