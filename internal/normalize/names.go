package normalize

import (
	"regexp"
	"strings"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// CanonicalName reduces a hospital name to its matching key: lowercased with
// every non-alphanumeric run removed, so "PeaceHealth St. Joseph Medical
// Center" and "peacehealth st joseph medical center" compare equal.
func CanonicalName(s string) string {
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(s), "")
}
