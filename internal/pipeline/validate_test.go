package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadbridge/internal/model"
)

func TestValidateSchema_Complete(t *testing.T) {
	schema := model.NewSchema(model.RequiredColumns)
	assert.NoError(t, ValidateSchema(schema))
}

func TestValidateSchema_MissingEmail(t *testing.T) {
	columns := []string{
		model.ColFirstName, model.ColLastName, model.ColKeywords,
		model.ColIndustry, model.ColCorporatePhone, model.ColTitle, model.ColCompany,
	}

	err := ValidateSchema(model.NewSchema(columns))
	require.Error(t, err)

	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{model.ColEmail}, missing.Columns)
	assert.Equal(t, "missing columns: Email", err.Error())
}

func TestValidateSchema_ReportsAllMissing(t *testing.T) {
	err := ValidateSchema(model.NewSchema([]string{model.ColFirstName}))

	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Len(t, missing.Columns, len(model.RequiredColumns)-1)
}

func TestValidateSchema_OptionalColumnsNotRequired(t *testing.T) {
	// Base schema without any extended columns is valid.
	schema := model.NewSchema(model.RequiredColumns)
	assert.NoError(t, ValidateSchema(schema))
	assert.False(t, schema.Extended)
}

func validRec() model.RawRecord {
	return model.RawRecord{
		model.ColFirstName: "Jane",
		model.ColCompany:   "Acme",
		model.ColEmail:     "jane@acme.com",
	}
}

func TestValidRow(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(model.RawRecord)
		phone    string
		expected bool
	}{
		{"all present", func(model.RawRecord) {}, "+14155551234", true},
		{"empty phone", func(model.RawRecord) {}, "", false},
		{"missing first name", func(r model.RawRecord) { delete(r, model.ColFirstName) }, "+14155551234", false},
		{"blank first name", func(r model.RawRecord) { r[model.ColFirstName] = "   " }, "+14155551234", false},
		{"blank company", func(r model.RawRecord) { r[model.ColCompany] = "" }, "+14155551234", false},
		{"blank email", func(r model.RawRecord) { r[model.ColEmail] = " " }, "+14155551234", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRec()
			tt.mutate(rec)
			assert.Equal(t, tt.expected, ValidRow(rec, tt.phone))
		})
	}
}
