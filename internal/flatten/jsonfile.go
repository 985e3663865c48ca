package flatten

import (
	"bufio"
	"bytes"
	"encoding/json"
)

// parseJSON decodes a .json payload into a Table. List payloads map one
// element per row. Dict payloads are the nested CMS dialect when they carry
// a standard_charge_information list; otherwise the first dict value that is
// a non-empty list of objects becomes the row list, and a dict with no such
// value degrades to a one-row table rather than a hard error.
func parseJSON(data []byte, path string) (*Table, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, failure(KindParseError, path, err)
	}

	switch v := payload.(type) {
	case []any:
		return tableFromObjects(v), nil
	case map[string]any:
		if _, ok := v["standard_charge_information"].([]any); ok {
			return flattenChargeInformation(v), nil
		}
		for _, value := range v {
			if list, ok := value.([]any); ok && len(list) > 0 {
				if _, ok := list[0].(map[string]any); ok {
					return tableFromObjects(list), nil
				}
			}
		}
		rec := Record(v)
		return &Table{Columns: columnsFromRecords([]Record{rec}), Records: []Record{rec}}, nil
	default:
		return nil, failure(KindParseError, path, nil)
	}
}

// parseJSONLines decodes .jsonl/.ndjson content, one object per line.
func parseJSONLines(data []byte, path string) (*Table, error) {
	var records []Record
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, failure(KindParseError, path, err)
		}
		records = append(records, Record(rec))
	}
	if err := scanner.Err(); err != nil {
		return nil, failure(KindReadError, path, err)
	}
	return &Table{Columns: columnsFromRecords(records), Records: records}, nil
}

func tableFromObjects(list []any) *Table {
	var records []Record
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			records = append(records, Record(m))
		}
	}
	return &Table{Columns: columnsFromRecords(records), Records: records}
}
