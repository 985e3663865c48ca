package model

// NormalizedPriceRow mirrors the Parquet schema of the normalized price table.
// Money fields are float64 dollars matching Parquet representation; optional
// fields are pointers so absent source values stay null in the file.
type NormalizedPriceRow struct {
	HospitalName string  `parquet:"hospital_name"`
	PayerName    *string `parquet:"payer_name,optional"`
	Code         string  `parquet:"code"`
	CodeType     string  `parquet:"code_type"`
	Description  *string `parquet:"description,optional"`

	NegotiatedRate *float64 `parquet:"negotiated_rate,optional"`
	CashPrice      *float64 `parquet:"cash_price,optional"`
	EffectivePrice float64  `parquet:"effective_price"`

	Setting     *string  `parquet:"setting,optional"`
	GrossCharge *float64 `parquet:"gross_charge,optional"`
	ChargeMin   *float64 `parquet:"charge_min,optional"`
	ChargeMax   *float64 `parquet:"charge_max,optional"`

	SourceFile string `parquet:"source_file"`
	IsOutlier  bool   `parquet:"is_outlier"`

	PayerGroup     string `parquet:"payer_group"`
	PayerCanonical string `parquet:"payer_canonical"`
}

// ToParquetRow converts a scoped PriceRecord into its Parquet form.
// Callers must only pass scoped rows: hospital, code, code_type, and
// effective_price are guaranteed present after the scope filter.
func ToParquetRow(r *PriceRecord) NormalizedPriceRow {
	row := NormalizedPriceRow{
		PayerName:      r.PayerName,
		Description:    r.Description,
		NegotiatedRate: r.NegotiatedRate,
		CashPrice:      r.CashPrice,
		Setting:        r.Setting,
		GrossCharge:    r.GrossCharge,
		ChargeMin:      r.ChargeMin,
		ChargeMax:      r.ChargeMax,
		SourceFile:     r.SourceFile,
		IsOutlier:      r.IsOutlier,
		PayerGroup:     r.PayerGroup,
		PayerCanonical: r.PayerCanonical,
	}
	if r.HospitalName != nil {
		row.HospitalName = *r.HospitalName
	}
	if r.Code != nil {
		row.Code = *r.Code
	}
	if r.CodeType != nil {
		row.CodeType = *r.CodeType
	}
	if r.EffectivePrice != nil {
		row.EffectivePrice = *r.EffectivePrice
	}
	return row
}
