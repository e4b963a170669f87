package csv

import (
	"fmt"
	"strings"
)

// StructuralError reports a problem with the CSV text as a whole: no data
// rows, or a missing required header. It rejects an import before any row
// is validated.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return e.Reason
}

// RowError is a validation failure tied to one specific data row. Row is
// 1-based and counts the header line as row 1.
type RowError struct {
	Row     int
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("Row %d: %s", e.Row, e.Message)
}

// RowErrors is every row-level failure from one parse, in row order.
type RowErrors []RowError

func (e RowErrors) Error() string {
	lines := make([]string, 0, len(e))
	for _, rowErr := range e {
		lines = append(lines, rowErr.Error())
	}

	return "CSV validation errors:\n" + strings.Join(lines, "\n")
}
