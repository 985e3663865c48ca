package flatten

import (
	"archive/zip"
	"io"
	"strings"
)

// zip member scoring: pick the CSV inside the archive that most looks like a
// standard-charges table. Row count contributes but saturates so a huge
// chargemaster cannot outrank a real pivoted price table.
const zipRowScoreCap = 20

func scoreZipCandidate(t *Table) int {
	score := 0
	for _, c := range t.Columns {
		if strings.HasPrefix(c, "standard_charge|") {
			score += 4
			break
		}
	}
	if t.HasColumn("code|1") {
		score += 4
	}
	if t.HasColumn("payer_name") {
		score += 2
	}
	if t.HasColumn("description") {
		score += 2
	}
	rowScore := len(t.Records) / 1000
	if rowScore > zipRowScoreCap {
		rowScore = zipRowScoreCap
	}
	return score + rowScore
}

// parseZip enumerates CSV members, scores each readable candidate, and
// flattens the best one with the usual CSV dialect dispatch. Members that
// fail to parse are skipped; an archive with no readable CSV is a failure.
func parseZip(path string) (*Table, error) {
	zf, err := zip.OpenReader(path)
	if err != nil {
		return nil, failure(KindParseError, path, err)
	}
	defer zf.Close()

	var best *Table
	bestScore := -1
	sawCSV := false

	for _, member := range zf.File {
		if !strings.HasSuffix(strings.ToLower(member.Name), ".csv") {
			continue
		}
		sawCSV = true

		rc, err := member.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			continue
		}

		cand, err := parseCSV(data, path+"!"+member.Name)
		if err != nil {
			continue
		}
		if score := scoreZipCandidate(cand); score > bestScore {
			bestScore = score
			best = cand
		}
	}

	if !sawCSV {
		return nil, failure(KindZipNoCSV, path, nil)
	}
	if best == nil {
		return nil, failure(KindParseError, path, nil)
	}
	return flattenCSVTable(best), nil
}
