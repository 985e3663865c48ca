package flatten

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadAny_NarrowCSV(t *testing.T) {
	path := writeFile(t, "prices.csv", []byte(
		"hospital_name,payer_name,code,code_type,negotiated_rate\n"+
			"Skagit Valley Hospital,Premera,27447,CPT,24500\n"))

	table, err := LoadAny(path)
	if err != nil {
		t.Fatalf("LoadAny: %v", err)
	}
	if len(table.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(table.Records))
	}
	if table.Records[0]["hospital_name"] != "Skagit Valley Hospital" {
		t.Errorf("hospital_name = %v", table.Records[0]["hospital_name"])
	}
}

func TestLoadAny_NonBreakingSpaceHeaders(t *testing.T) {
	// Spreadsheet exports sometimes pad headers with U+00A0 instead of a
	// plain space; header trimming must strip those too.
	path := writeFile(t, "nbsp.csv", []byte(
		" description ,code,negotiated_rate\n"+
			"Colonoscopy,45378,2600\n"))

	table, err := LoadAny(path)
	if err != nil {
		t.Fatalf("LoadAny: %v", err)
	}
	if !table.HasColumn("description") {
		t.Fatalf("padded header not trimmed, columns = %v", table.Columns)
	}
	if table.Records[0]["description"] != "Colonoscopy" {
		t.Errorf("description = %v", table.Records[0]["description"])
	}
}

func TestLoadAny_PreambleCSV(t *testing.T) {
	// Two metadata rows before the real header, as some exports publish.
	path := writeFile(t, "preamble.csv", []byte(
		"Hospital X,,\n"+
			"last_updated_on: 2026-01-01,,\n"+
			"description,code,negotiated_rate\n"+
			"Colonoscopy,45378,2600\n"))

	table, err := LoadAny(path)
	if err != nil {
		t.Fatalf("LoadAny: %v", err)
	}
	if !table.HasColumn("description") {
		t.Fatalf("preamble skip failed, columns = %v", table.Columns)
	}
	if len(table.Records) != 1 || table.Records[0]["code"] != "45378" {
		t.Errorf("records = %v", table.Records)
	}
}

func TestLoadAny_Latin1CSV(t *testing.T) {
	// 0xE9 is é in Latin-1 and invalid UTF-8 on its own.
	data := []byte("description,code,negotiated_rate\nCholecystectomy proc\xe9dure,47562,9800\n")
	path := writeFile(t, "latin1.csv", data)

	table, err := LoadAny(path)
	if err != nil {
		t.Fatalf("LoadAny: %v", err)
	}
	if got := table.Records[0]["description"]; got != "Cholecystectomy procédure" {
		t.Errorf("description = %q", got)
	}
}

func TestLoadAny_NestedJSON(t *testing.T) {
	path := writeFile(t, "charges.json", []byte(`{
		"hospital_name": "Test Hospital",
		"standard_charge_information": [
			{
				"description": "Colonoscopy",
				"code_information": [{"code": "45378", "type": "CPT"}],
				"standard_charges": [{
					"payers_information": [
						{"payer_name": "Aetna", "negotiated_dollar": 4200}
					]
				}]
			}
		]
	}`))

	table, err := LoadAny(path)
	if err != nil {
		t.Fatalf("LoadAny: %v", err)
	}
	if len(table.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(table.Records))
	}
	rec := table.Records[0]
	if rec["hospital_name"] != "Test Hospital" || rec["negotiated_rate"] != float64(4200) {
		t.Errorf("record = %v", rec)
	}
}

func TestLoadAny_JSONList(t *testing.T) {
	path := writeFile(t, "list.json", []byte(
		`[{"hospital_name": "A", "code": "1"}, {"hospital_name": "B", "code": "2"}]`))

	table, err := LoadAny(path)
	if err != nil {
		t.Fatalf("LoadAny: %v", err)
	}
	if len(table.Records) != 2 {
		t.Errorf("expected 2 records, got %d", len(table.Records))
	}
}

func TestLoadAny_JSONLines(t *testing.T) {
	path := writeFile(t, "rows.jsonl", []byte(
		"{\"code\": \"27447\", \"rate\": 100}\n\n{\"code\": \"45378\", \"rate\": 200}\n"))

	table, err := LoadAny(path)
	if err != nil {
		t.Fatalf("LoadAny: %v", err)
	}
	if len(table.Records) != 2 {
		t.Errorf("expected 2 records, got %d", len(table.Records))
	}
}

func TestLoadAny_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("hello"))

	_, err := LoadAny(path)
	if err == nil {
		t.Fatal("expected error for .txt")
	}
	if ErrorType(err) != string(KindUnsupportedFormat) {
		t.Errorf("ErrorType = %q", ErrorType(err))
	}
}

func TestLoadAny_MalformedJSON(t *testing.T) {
	path := writeFile(t, "bad.json", []byte("{not json"))

	_, err := LoadAny(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	var fe *Error
	if !errors.As(err, &fe) || fe.Kind != KindParseError {
		t.Errorf("err = %v", err)
	}
}

func makeZip(t *testing.T, members map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range members {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("zip create: %v", err)
		}
		if _, err := f.Write([]byte(content)); err != nil {
			t.Fatalf("zip write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return writeFile(t, "archive.zip", buf.Bytes())
}

func TestLoadAny_ZipPicksBestCSV(t *testing.T) {
	path := makeZip(t, map[string]string{
		// A readme-ish CSV with no price columns.
		"readme.csv": "note\nsome text\n",
		// The real standard charges member.
		"charges.csv": "description,code|1,code|1|type,standard_charge|Aetna|PPO|negotiated_dollar\n" +
			"Knee replacement,27447,CPT,28000\n",
		"ignored.txt": "not a csv",
	})

	table, err := LoadAny(path)
	if err != nil {
		t.Fatalf("LoadAny: %v", err)
	}
	// The wide member wins scoring and gets unpivoted.
	if len(table.Records) != 1 {
		t.Fatalf("expected 1 unpivoted record, got %d", len(table.Records))
	}
	if table.Records[0]["payer_name"] != "Aetna - PPO" {
		t.Errorf("payer_name = %v", table.Records[0]["payer_name"])
	}
}

func TestLoadAny_ZipWithoutCSV(t *testing.T) {
	path := makeZip(t, map[string]string{"data.txt": "nothing here"})

	_, err := LoadAny(path)
	if err == nil {
		t.Fatal("expected zip_no_csv error")
	}
	if ErrorType(err) != string(KindZipNoCSV) {
		t.Errorf("ErrorType = %q", ErrorType(err))
	}
}

func TestScoreZipCandidate_RowScoreSaturates(t *testing.T) {
	atRows := func(n int) int {
		tab := &Table{Columns: []string{"item"}}
		for i := 0; i < n; i++ {
			tab.Records = append(tab.Records, Record{"item": "x"})
		}
		return scoreZipCandidate(tab)
	}

	if atRows(20000) != zipRowScoreCap {
		t.Errorf("score at 20k rows = %d, want cap %d", atRows(20000), zipRowScoreCap)
	}
	if atRows(500000) != atRows(20000) {
		t.Errorf("row score must saturate: 500k=%d, 20k=%d", atRows(500000), atRows(20000))
	}

	chargeTable := &Table{
		Columns: []string{"description", "code|1", "payer_name",
			"standard_charge|Aetna|X|negotiated_dollar"},
		Records: make([]Record, 0),
	}
	for i := 0; i < 20000; i++ {
		chargeTable.Records = append(chargeTable.Records, Record{"description": "x"})
	}
	// With equal row counts, charge-shaped columns always win.
	if scoreZipCandidate(chargeTable) <= atRows(20000) {
		t.Errorf("charge table (%d) should outrank a plain table (%d) at equal size",
			scoreZipCandidate(chargeTable), atRows(20000))
	}
}
