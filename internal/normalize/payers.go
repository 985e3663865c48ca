package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gyeh/pricebench/internal/model"
)

// Hospital MRFs encode payer names inconsistently. These keyword patterns
// map raw payer strings to a canonical insurer and plan type so the same
// insurer can be compared across hospitals without maintaining an exhaustive
// lookup table. Order matters: more-specific patterns come first.
var insurerPatterns = []struct {
	pattern *regexp.Regexp
	insurer string
}{
	{regexp.MustCompile(`\bpremera\b`), "Premera Blue Cross"},
	{regexp.MustCompile(`\blifewise\b`), "Premera Blue Cross"},
	{regexp.MustCompile(`\bregence\b`), "Regence BlueShield"},
	{regexp.MustCompile(`\bbridgespan\b`), "Regence BlueShield"},
	{regexp.MustCompile(`\basuris\b`), "Regence BlueShield"},
	{regexp.MustCompile(`\bunitedhealth`), "UnitedHealthcare"},
	{regexp.MustCompile(`\buhc\b`), "UnitedHealthcare"},
	{regexp.MustCompile(`\bunited\s*healthcare\b`), "UnitedHealthcare"},
	{regexp.MustCompile(`\baetna\b`), "Aetna"},
	{regexp.MustCompile(`\bcigna\b`), "Cigna"},
	{regexp.MustCompile(`\bkaiser\b`), "Kaiser Permanente"},
	{regexp.MustCompile(`\bmolina\b`), "Molina Healthcare"},
	{regexp.MustCompile(`\bhumana\b`), "Humana"},
	{regexp.MustCompile(`\bamerigroup\b`), "Amerigroup"},
	{regexp.MustCompile(`\bcoordinated\s*care\b`), "Coordinated Care"},
	{regexp.MustCompile(`\bambetter\b`), "Coordinated Care"},
	{regexp.MustCompile(`\bfirst\s*choice\b`), "First Choice Health"},
	{regexp.MustCompile(`\bcommunity\s*health\s*plan\b`), "Community Health Plan of WA"},
	{regexp.MustCompile(`\bmultiplan\b`), "MultiPlan"},
	{regexp.MustCompile(`\btricare\b`), "TRICARE"},
	{regexp.MustCompile(`\bchampva\b`), "CHAMPVA"},
	{regexp.MustCompile(`\bworkers?\s*comp`), "Workers Comp"},
}

var planTypePatterns = []struct {
	pattern  *regexp.Regexp
	planType string
}{
	{regexp.MustCompile(`\bmedicaid\b`), "Medicaid"},
	{regexp.MustCompile(`\bmedicare\s*(?:managed\s*care|advantage|hmo|ppo)`), "Medicare Advantage"},
	{regexp.MustCompile(`\bmedicare\b`), "Medicare"},
	{regexp.MustCompile(`\bexchange\b`), "Exchange"},
	{regexp.MustCompile(`\bmarketplace\b`), "Exchange"},
	{regexp.MustCompile(`\bcommercial\b`), "Commercial"},
	{regexp.MustCompile(`\bhmo\b`), "HMO"},
	{regexp.MustCompile(`\bppo\b`), "PPO"},
	{regexp.MustCompile(`\bpos\b`), "POS"},
	{regexp.MustCompile(`\bepo\b`), "EPO"},
}

var payerSeparators = regexp.MustCompile(`\s*[-–—|/]\s*`)

var titleCaser = cases.Title(language.English)

// PayerGroup extracts the canonical insurer name from a raw payer string.
func PayerGroup(raw string) string {
	low := strings.ToLower(raw)
	for _, p := range insurerPatterns {
		if p.pattern.MatchString(low) {
			return p.insurer
		}
	}

	if strings.Contains(low, "discounted_cash") || strings.Contains(low, "self_pay") || strings.Contains(low, "self pay") {
		return "Self-Pay / Cash"
	}
	if strings.Contains(low, "blue cross") {
		return "Blue Cross"
	}
	if strings.Contains(low, "blue shield") {
		return "Blue Shield"
	}

	// Last resort: the first token before any separator.
	first := strings.TrimSpace(payerSeparators.Split(strings.TrimSpace(raw), 2)[0])
	if len(first) > 2 {
		return titleCaser.String(first)
	}
	return "Other"
}

// PayerPlanType extracts the canonical plan type from a raw payer string.
func PayerPlanType(raw string) string {
	low := strings.ToLower(raw)
	for _, p := range planTypePatterns {
		if p.pattern.MatchString(low) {
			return p.planType
		}
	}
	return "Other"
}

// AttachPayerColumns fills payer_group and payer_canonical on every record,
// leaving the original payer_name untouched. Records with no payer name get
// "Unknown" for both.
func AttachPayerColumns(records []model.PriceRecord) {
	for i := range records {
		if records[i].PayerName == nil {
			records[i].PayerGroup = "Unknown"
			records[i].PayerCanonical = "Unknown"
			continue
		}
		raw := *records[i].PayerName
		group := PayerGroup(raw)
		records[i].PayerGroup = group
		records[i].PayerCanonical = group + " - " + PayerPlanType(raw)
	}
}
