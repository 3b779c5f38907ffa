package pipeline

import (
	"strings"

	"github.com/sells-group/leadbridge/internal/model"
)

// ValidateSchema checks the detected schema against the required column
// set. Returns a MissingColumnsError naming the exact absent columns.
// Repeated per chunk so chunk-at-a-time ingestion fails fast.
func ValidateSchema(schema model.Schema) error {
	if missing := schema.Missing(); len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// ValidRow reports whether a row has the minimum fields to be emitted:
// trimmed First Name, Company, and Email must be non-empty, and the
// selected canonical phone must be non-empty.
func ValidRow(rec model.RawRecord, canonicalPhone string) bool {
	if strings.TrimSpace(rec.Get(model.ColFirstName)) == "" {
		return false
	}
	if strings.TrimSpace(rec.Get(model.ColCompany)) == "" {
		return false
	}
	if strings.TrimSpace(rec.Get(model.ColEmail)) == "" {
		return false
	}
	return canonicalPhone != ""
}
