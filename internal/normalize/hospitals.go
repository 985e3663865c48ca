package normalize

import "strings"

// hospitalPathPatterns maps file-path substrings to canonical hospital
// names. Order matters: most-specific patterns come before generic ones
// (united_general before bare peacehealth), and the first match wins.
var hospitalPathPatterns = []struct {
	substrings []string
	name       string
}{
	// Swedish
	{[]string{"swedish-medical-center-cherry-hill"}, "Swedish Medical Center Cherry Hill"},
	{[]string{"swedish-medical-center-issaquah"}, "Swedish Medical Center Issaquah"},
	{[]string{"swedish-medical-center_standardcharges"}, "Swedish Medical Center"},
	{[]string{"swedish-edmonds"}, "Swedish Edmonds"},
	// Providence
	{[]string{"providence-regional-medical-center-everett", "providence_everett"}, "Providence Regional Medical Center Everett"},
	// UW Medicine
	{[]string{"university-of-washington-medical-center", "uw_medical_center"}, "UW Medical Center"},
	{[]string{"harborview-medical-center", "harborview_standardcharges"}, "Harborview Medical Center"},
	// PeaceHealth
	{[]string{"peacehealth_united_general", "united-general"}, "PeaceHealth United General Hospital"},
	{[]string{"peacehealth"}, "PeaceHealth St Joseph Medical Center"},
	// Skagit Regional
	{[]string{"skagit-valley-hospital", "skagit_valley"}, "Skagit Valley Hospital"},
	{[]string{"cascade-valley-hospital", "cascade_valley"}, "Cascade Valley Hospital"},
	// Eastside
	{[]string{"overlake"}, "Overlake Medical Center"},
	{[]string{"king-county-public-hospital-district", "evergreenhealth"}, "EvergreenHealth Medical Center"},
}

// InferHospitalName derives a canonical hospital name from the raw file's
// path when a known pattern matches, overriding whatever the file embedded.
// Unmatched paths pass the current value through unchanged (including nil);
// the function is pure and never fails.
func InferHospitalName(sourceFile string, current *string) *string {
	s := strings.ToLower(sourceFile)
	for _, p := range hospitalPathPatterns {
		for _, sub := range p.substrings {
			if strings.Contains(s, sub) {
				name := p.name
				return &name
			}
		}
	}
	return current
}
