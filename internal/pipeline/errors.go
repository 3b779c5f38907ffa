package pipeline

import (
	"fmt"
	"strings"
)

// MissingColumnsError reports required schema columns absent from the
// source header. It aborts the whole run.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Columns, ", "))
}

// NoValidRowsError reports that the schema was present but every row
// failed validation. No partial output is produced.
type NoValidRowsError struct{}

func (e *NoValidRowsError) Error() string {
	return "no valid rows in input"
}
