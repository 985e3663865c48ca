package normalize

import (
	"regexp"
	"strings"

	"github.com/gyeh/pricebench/internal/model"
)

var (
	// Common hospital encodings like "MS-DRG 470", "DRG-470", "CPT: 27447".
	drgPrefixed = regexp.MustCompile(`(?i)^(?:MS[- ]?DRG|APR[- ]?DRG|DRG)\s*[-: ]*([0-9]{3})$`)
	cptPrefixed = regexp.MustCompile(`(?i)^CPT\s*[-: ]*([0-9]{5})$`)
	// Spreadsheet exports turn codes into floats: "470.0".
	trailingFloatZero = regexp.MustCompile(`\.0+$`)

	drgToken       = regexp.MustCompile(`\bDRG\b`)
	cptHCPCSToken  = regexp.MustCompile(`\bCPT\b|\bHCPCS\b`)
	multiWhitespace = regexp.MustCompile(`\s+`)
)

// NormalizeCode strips whitespace, collapses prefixed encodings like
// "MS-DRG 470" or "CPT: 27447" to the bare numeric code, and removes
// trailing ".0" float artifacts. Returns nil for blank input.
func NormalizeCode(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.TrimSpace(*v)
	if s == "" {
		return nil
	}
	if m := drgPrefixed.FindStringSubmatch(s); m != nil {
		s = m[1]
	} else if m := cptPrefixed.FindStringSubmatch(s); m != nil {
		s = m[1]
	}
	s = trailingFloatZero.ReplaceAllString(s, "")
	return &s
}

// NormalizeCodeType uppercases and collapses the many source labelings into
// the canonical code families: anything carrying a DRG token becomes DRG,
// anything carrying CPT or HCPCS (in either order or combined) becomes CPT.
// Other labels pass through uppercased so the catalog can match them
// literally. Returns nil for blank input.
func NormalizeCodeType(v *string) *string {
	if v == nil {
		return nil
	}
	s := strings.ToUpper(strings.TrimSpace(*v))
	if s == "" {
		return nil
	}
	s = multiWhitespace.ReplaceAllString(s, " ")
	switch {
	case drgToken.MatchString(s):
		s = model.CodeTypeDRG
	case cptHCPCSToken.MatchString(s):
		s = model.CodeTypeCPT
	}
	return &s
}
