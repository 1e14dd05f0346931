// Package ingest holds the external data-source adapters that feed raw
// records into the processor: JSON documents (with a repair pass for
// malformed vendor feeds), CSV tables, and HTML statement tables. The
// adapters only produce raw key/value records; all standardization and
// analysis happens downstream.
package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// ReadJSONFile loads a JSON object from disk. Malformed documents get one
// repair attempt before failing.
func ReadJSONFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ParseJSON(data)
}

// ParseJSON decodes a JSON object, repairing the text when the first
// parse fails.
func ParseJSON(data []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err == nil {
		return m, nil
	}
	repaired, err := jsonrepair.RepairJSON(string(data))
	if err != nil {
		return nil, fmt.Errorf("unparseable json: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &m); err != nil {
		return nil, fmt.Errorf("unparseable json after repair: %w", err)
	}
	return m, nil
}

// ReadCSVFile loads a headered CSV file into table rows suitable for the
// processor's table source kind.
func ReadCSVFile(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV reads a headered CSV stream into rows of raw values. Values
// stay strings; numeric coercion belongs to the processor.
func ParseCSV(r io.Reader) ([]map[string]any, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	var rows []map[string]any
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		row := make(map[string]any, len(header))
		for i, col := range header {
			if i < len(record) {
				row[strings.TrimSpace(col)] = record[i]
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("csv contains no data rows")
	}
	return rows, nil
}
