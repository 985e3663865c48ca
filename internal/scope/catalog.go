// Package scope restricts the unified price table to the hospitals and
// procedure codes defined by the external catalogs, and annotates the
// surviving rows.
package scope

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gyeh/pricebench/internal/model"
	"github.com/gyeh/pricebench/internal/normalize"
)

// LoadHospitalCatalog reads the hospital scope catalog CSV. The file must
// carry a hospital_name column; city is optional.
func LoadHospitalCatalog(path string) ([]model.HospitalCatalogEntry, error) {
	rows, header, err := readCatalogCSV(path)
	if err != nil {
		return nil, err
	}
	nameIdx, ok := header["hospital_name"]
	if !ok {
		return nil, fmt.Errorf("hospital catalog %s: missing hospital_name column", path)
	}
	cityIdx, hasCity := header["city"]

	var entries []model.HospitalCatalogEntry
	for _, row := range rows {
		e := model.HospitalCatalogEntry{HospitalName: field(row, nameIdx)}
		if e.HospitalName == "" {
			continue
		}
		if hasCity {
			e.City = field(row, cityIdx)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// LoadProcedureCatalog reads the procedure scope catalog CSV. Codes and code
// types are normalized the same way source rows are, so catalog membership
// checks compare like with like. A missing description column is tolerated.
func LoadProcedureCatalog(path string) ([]model.ProcedureCatalogEntry, error) {
	rows, header, err := readCatalogCSV(path)
	if err != nil {
		return nil, err
	}
	codeIdx, ok := header["code"]
	if !ok {
		return nil, fmt.Errorf("procedure catalog %s: missing code column", path)
	}
	typeIdx, ok := header["code_type"]
	if !ok {
		return nil, fmt.Errorf("procedure catalog %s: missing code_type column", path)
	}
	descIdx, hasDesc := header["description"]

	var entries []model.ProcedureCatalogEntry
	for _, row := range rows {
		code := field(row, codeIdx)
		codeType := field(row, typeIdx)
		if normalized := normalize.NormalizeCode(&code); normalized != nil {
			code = *normalized
		}
		if normalized := normalize.NormalizeCodeType(&codeType); normalized != nil {
			codeType = *normalized
		}
		if code == "" {
			continue
		}
		e := model.ProcedureCatalogEntry{Code: code, CodeType: codeType}
		if hasDesc {
			e.Description = field(row, descIdx)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func readCatalogCSV(path string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	headerRow, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, map[string]int{}, nil
		}
		return nil, nil, fmt.Errorf("read catalog header: %w", err)
	}
	header := make(map[string]int, len(headerRow))
	for i, h := range headerRow {
		header[strings.ToLower(strings.TrimSpace(h))] = i
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read catalog row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
