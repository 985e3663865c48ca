package parquetread

import (
	"fmt"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// requiredColumns are the columns a normalized price table must carry
// before its rows are eligible for the serving load.
var requiredColumns = []string{
	"hospital_name",
	"code",
	"code_type",
	"effective_price",
}

// ValidateSchema checks that the Parquet schema contains every column
// the serving load depends on. Extra columns are allowed.
func ValidateSchema(schema *parquet.Schema) error {
	present := make(map[string]bool)
	for _, field := range schema.Fields() {
		present[field.Name()] = true
	}

	var missing []string
	for _, col := range requiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("parquet schema missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
