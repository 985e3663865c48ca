package flatten

import (
	"strconv"
	"strings"
)

// Record is one pre-canonical row keyed by source column name. Values are
// strings for CSV sources and decoded JSON values (string, float64, bool,
// nil) for JSON sources; the column aliaser coerces them later.
type Record map[string]any

// Table is the flat output of a dialect flattener. Columns preserves source
// order so the aliaser can resolve the first matching alias.
type Table struct {
	Columns []string
	Records []Record
}

// HasColumn reports whether the table carries the exact column name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// columnsFromRecords builds a column list from the union of record keys,
// keeping first-seen order. Used for JSON payloads that have no header.
func columnsFromRecords(records []Record) []string {
	var cols []string
	seen := make(map[string]bool)
	for _, rec := range records {
		for k := range rec {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	return cols
}

// blank reports whether a cell value is absent: nil or an empty /
// whitespace-only string. An explicit numeric zero is NOT blank.
func blank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// parseNumeric coerces a cell to a float64. Strings may carry currency
// formatting ("$1,234.50"); anything unparseable reports ok=false.
func parseNumeric(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, true
	case int:
		return float64(x), true
	case string:
		s := strings.TrimSpace(x)
		s = strings.TrimPrefix(s, "$")
		s = strings.ReplaceAll(s, ",", "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// firstPresent returns the first non-blank value among keys, or nil.
// A zero value counts as present; only nil and empty strings fall through.
func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && !blank(v) {
			return v
		}
	}
	return nil
}
