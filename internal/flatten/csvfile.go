package flatten

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// parseCSV decodes raw CSV bytes into a header plus row records, handling the
// two recoverable quirks hospital exports show: Latin-1 encoded content and a
// two-row metadata preamble before the real header.
func parseCSV(data []byte, path string) (*Table, error) {
	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, failure(KindDecodeError, path, err)
		}
		data = decoded
	}

	table, err := readCSVRows(data, 0)
	if err != nil {
		return nil, failure(KindParseError, path, err)
	}

	// Some standard charge CSVs carry 2 metadata rows before the real header,
	// which shows up as unnamed columns and no description column.
	if !table.HasColumn("description") && hasUnnamedColumn(table.Columns) {
		retried, retryErr := readCSVRows(data, 2)
		if retryErr == nil {
			return retried, nil
		}
	}
	return table, nil
}

func hasUnnamedColumn(columns []string) bool {
	for _, c := range columns {
		if strings.TrimSpace(c) == "" {
			return true
		}
	}
	return false
}

// readCSVRows parses CSV content into a Table, skipping skipRows physical
// records before treating the next one as the header. Rows shorter than the
// header leave trailing columns absent; longer rows drop the excess.
func readCSVRows(data []byte, skipRows int) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	for i := 0; i < skipRows; i++ {
		if _, err := r.Read(); err != nil {
			return nil, fmt.Errorf("skip preamble row %d: %w", i+1, err)
		}
	}

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return &Table{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	var records []Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		rec := make(Record, len(columns))
		for i, col := range columns {
			if col == "" || i >= len(row) {
				continue
			}
			if _, dup := rec[col]; dup {
				continue
			}
			rec[col] = row[i]
		}
		records = append(records, rec)
	}

	named := columns[:0]
	seen := make(map[string]bool)
	for _, c := range columns {
		if c != "" && !seen[c] {
			seen[c] = true
			named = append(named, c)
		}
	}
	return &Table{Columns: named, Records: records}, nil
}

// flattenCSVTable dispatches a parsed CSV to its dialect flattener.
func flattenCSVTable(table *Table) *Table {
	switch ClassifyColumns(table.Columns) {
	case DialectCMSFlat:
		return flattenCMSFlat(table)
	case DialectWidePivot:
		return flattenWidePivot(table)
	default:
		return table
	}
}
