package output

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/pricebench/internal/model"
)

// WriteNormalizedParquet writes the scoped price table as Parquet, the form
// the load command bulk-loads into Postgres.
func WriteNormalizedParquet(path string, records []model.PriceRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := parquet.NewGenericWriter[model.NormalizedPriceRow](f)
	rows := make([]model.NormalizedPriceRow, 0, len(records))
	for i := range records {
		rows = append(rows, model.ToParquetRow(&records[i]))
	}
	if len(rows) > 0 {
		if _, err := w.Write(rows); err != nil {
			w.Close()
			f.Close()
			return fmt.Errorf("write parquet rows %s: %w", path, err)
		}
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("close parquet writer %s: %w", path, err)
	}
	return f.Close()
}
