package model

// PriceRecord is one row of the unified price table: the fact that a hospital
// and a payer have a price for a procedure code. Nullable fields are pointers;
// nil means the source file did not carry the value.
type PriceRecord struct {
	HospitalName *string
	PayerName    *string
	Code         *string
	CodeType     *string
	Description  *string

	NegotiatedRate *float64
	CashPrice      *float64
	// EffectivePrice is NegotiatedRate when present, else CashPrice.
	EffectivePrice *float64

	Setting     *string
	GrossCharge *float64
	ChargeMin   *float64
	ChargeMax   *float64

	// SourceFile is the path of the raw file this row came from.
	SourceFile string

	// IsOutlier flags rows outside the per-code 3×IQR fence. Advisory only.
	IsOutlier bool

	// Canonical payer columns, added after scope filtering. Empty until then.
	PayerGroup     string
	PayerCanonical string
}

// CanonicalColumns is the column order for the normalized price table output.
var CanonicalColumns = []string{
	"hospital_name",
	"payer_name",
	"code",
	"code_type",
	"description",
	"negotiated_rate",
	"cash_price",
	"effective_price",
	"setting",
	"gross_charge",
	"charge_min",
	"charge_max",
	"source_file",
	"is_outlier",
	"payer_group",
	"payer_canonical",
}

// HospitalCatalogEntry is one row of the external hospital catalog.
type HospitalCatalogEntry struct {
	HospitalName string
	City         string
}

// ProcedureCatalogEntry is one row of the external procedure catalog.
type ProcedureCatalogEntry struct {
	Code        string
	CodeType    string
	Description string
}
