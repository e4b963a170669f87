// Package csv implements the simple comma-separated format used for todo
// import and export: quote-aware field splitting, header validation, and
// per-row schema validation with row-level error collection.
package csv

import (
	"fmt"
	"strings"
)

// Record is one data line keyed by the header line's column names.
type Record map[string]string

// ParseLine splits one line into fields. Commas inside double-quote pairs do
// not split; the quotes themselves are stripped; each field is trimmed.
// Embedded (escaped) quotes are not supported.
func ParseLine(line string) []string {
	var fields []string

	var current strings.Builder

	inQuotes := false

	for _, char := range line {
		switch {
		case char == '"':
			inQuotes = !inQuotes
		case char == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(char)
		}
	}

	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// Serialize emits the header line followed by one line per record in the
// given column order. A value containing a comma is wrapped in double quotes;
// nothing else is escaped.
func Serialize(rows []Record, headers []string) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(headers, ","))

	for _, row := range rows {
		fields := make([]string, 0, len(headers))

		for _, header := range headers {
			value := row[header]
			if strings.Contains(value, ",") {
				value = `"` + value + `"`
			}

			fields = append(fields, value)
		}

		lines = append(lines, strings.Join(fields, ","))
	}

	return strings.Join(lines, "\n")
}

// ParseText splits text into records keyed by the header line's columns.
// It fails with a StructuralError when there are no data lines or when any
// expected header is missing. A data line with fewer fields than headers
// yields empty strings for the missing trailing fields.
func ParseText(text string, expectedHeaders []string) ([]Record, error) {
	var lines []string

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		return nil, &StructuralError{Reason: "CSV file is empty or has no data rows"}
	}

	headers := strings.Split(lines[0], ",")
	for i, header := range headers {
		headers[i] = strings.TrimSpace(header)
	}

	for _, expected := range expectedHeaders {
		found := false

		for _, header := range headers {
			if header == expected {
				found = true

				break
			}
		}

		if !found {
			return nil, &StructuralError{
				Reason: fmt.Sprintf("CSV must have headers: %s", strings.Join(expectedHeaders, ", ")),
			}
		}
	}

	records := make([]Record, 0, len(lines)-1)

	for _, line := range lines[1:] {
		values := ParseLine(line)
		record := Record{}

		for i, header := range headers {
			if i < len(values) {
				record[header] = values[i]
			} else {
				record[header] = ""
			}
		}

		records = append(records, record)
	}

	return records, nil
}

// ParseWithSchema parses text and validates every record independently with
// the given validator. A structural parse failure is returned as-is before
// any record is validated. Validation failures never stop processing of
// subsequent records; they are collected with 1-based row numbers counting
// the header as row 1.
func ParseWithSchema[T any](
	text string, expectedHeaders []string, validate func(Record) (T, error),
) ([]T, RowErrors, error) {
	records, err := ParseText(text, expectedHeaders)
	if err != nil {
		return nil, nil, err
	}

	var validRows []T

	var rowErrs RowErrors

	for i, record := range records {
		row, err := validate(record)
		if err != nil {
			// the first data line is row 2: one for 0-indexing, one for the header
			rowErrs = append(rowErrs, RowError{Row: i + 2, Message: err.Error()})

			continue
		}

		validRows = append(validRows, row)
	}

	return validRows, rowErrs, nil
}
