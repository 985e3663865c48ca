package model

// Canonical code families used for scope matching. Hospital files label codes
// with many variants (MS-DRG, APR-DRG, CPT/HCPCS, ...); normalization
// collapses them into these two families. Anything else passes through
// uppercased and is matched literally against the procedure catalog.
const (
	CodeTypeDRG = "DRG"
	CodeTypeCPT = "CPT"
)

// CodeFamily describes one canonical code family and the digit length its
// bare codes carry, used when re-deriving a missing code_type from the code
// string against the procedure catalog.
type CodeFamily struct {
	Name        string
	DigitLength int
}

// CodeFamilies lists the canonical families in inference priority order:
// the 5-digit CPT check runs before the 3-digit DRG check so that CPT codes
// (whose first three digits often collide with DRG codes) win.
var CodeFamilies = []CodeFamily{
	{Name: CodeTypeCPT, DigitLength: 5},
	{Name: CodeTypeDRG, DigitLength: 3},
}
