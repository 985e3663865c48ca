package normalize

import (
	"math"
	"strconv"
	"strings"
)

// ParseMoney coerces a raw cell value to a dollar amount. Strings may carry
// currency formatting ("$1,234.50"); blank, unparseable, and NaN values all
// become nil. An explicit 0 is a valid amount.
func ParseMoney(v any) *float64 {
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(x) {
			return nil
		}
		return &x
	case int:
		f := float64(x)
		return &f
	case string:
		s := strings.TrimSpace(x)
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return nil
		}
		return &f
	default:
		return nil
	}
}

// DollarsToCents converts a nullable dollar amount to nullable int64 cents.
// Uses math.Round to avoid truncation bias.
func DollarsToCents(v *float64) *int64 {
	if v == nil {
		return nil
	}
	c := int64(math.Round(*v * 100))
	return &c
}
