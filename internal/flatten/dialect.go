package flatten

import "strings"

// Dialect identifies one of the recognized CSV schema shapes. Classification
// is a pure function of the column set so a file's handling is decided in one
// place instead of scattered column checks.
type Dialect int

const (
	// DialectNarrow is a plain one-row-per-fact CSV whose columns get mapped
	// by the aliaser downstream.
	DialectNarrow Dialect = iota
	// DialectCMSFlat is the CMS v3.0 "flat" CSV: pivoted charge columns plus
	// payer identity as a regular payer_name column.
	DialectCMSFlat
	// DialectWidePivot is the Craneware-style wide CSV where payer identity
	// is embedded in column names like
	// "standard_charge|Aetna|Commercial|negotiated_dollar".
	DialectWidePivot
)

func (d Dialect) String() string {
	switch d {
	case DialectCMSFlat:
		return "cms_flat"
	case DialectWidePivot:
		return "wide_pivot"
	default:
		return "narrow"
	}
}

// ClassifyColumns determines the CSV dialect from the header alone.
func ClassifyColumns(columns []string) Dialect {
	hasPivot := false
	hasCode1 := false
	hasPayer := false
	for _, c := range columns {
		if strings.HasPrefix(c, "standard_charge|") {
			hasPivot = true
		}
		switch c {
		case "code|1":
			hasCode1 = true
		case "payer_name":
			hasPayer = true
		}
	}
	if hasPivot && hasCode1 {
		if hasPayer {
			return DialectCMSFlat
		}
		return DialectWidePivot
	}
	return DialectNarrow
}
