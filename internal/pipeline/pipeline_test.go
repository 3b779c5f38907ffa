package pipeline

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/leadbridge/internal/model"
	"github.com/sells-group/leadbridge/internal/phone"
	"github.com/sells-group/leadbridge/internal/region"
)

// memSource serves in-memory rows in fixed-size chunks.
type memSource struct {
	columns   []string
	rows      []model.RawRecord
	pos       int
	chunkSize int
}

func (s *memSource) Columns() []string { return s.columns }

func (s *memSource) Next(_ context.Context) ([]model.RawRecord, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	end := min(s.pos+s.chunkSize, len(s.rows))
	chunk := s.rows[s.pos:end]
	s.pos = end
	return chunk, nil
}

func (s *memSource) Close() error { return nil }

func newPipeline() *Pipeline {
	return New(phone.NewNormalizer(), region.NewClassifier(), nil)
}

func leadRow(first, last, email, company, industry, corpPhone string) model.RawRecord {
	return model.RawRecord{
		model.ColFirstName:      first,
		model.ColLastName:       last,
		model.ColEmail:          email,
		model.ColKeywords:       "kw",
		model.ColIndustry:       industry,
		model.ColCorporatePhone: corpPhone,
		model.ColTitle:          "Manager",
		model.ColCompany:        company,
	}
}

func testRows() []model.RawRecord {
	return []model.RawRecord{
		leadRow("Jane", "Doe", "jane@acme.com", "Acme", "Tech", "+44 7911 123456"),
		leadRow("John", "Smith", "john@acme.com", "Acme", "Finance", "+1 415 555 1234"),
		leadRow("Ann", "Lee", "ann@globex.com", "Globex", "Energy", "+1 212 555 0101"),
		leadRow("Bob", "", "", "Initech", "Software", "+1 415 555 9999"), // no email, skipped
	}
}

func TestPipeline_Run(t *testing.T) {
	src := &memSource{columns: model.RequiredColumns, rows: testRows(), chunkSize: 100}

	result, err := newPipeline().Run(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, 4, result.RowsRead)
	assert.Equal(t, 1, result.RowsSkipped)
	require.Len(t, result.Tables.People, 3)
	require.Len(t, result.Tables.Organizations, 2)

	jane := result.Tables.People[0]
	assert.Equal(t, "Jane Doe", jane.Name)
	assert.Equal(t, "+447911123456", jane.Phone)
	assert.Equal(t, model.RegionUK, jane.Tags)

	// First-seen-wins: Acme keeps Jane's industry and tag.
	acme := result.Tables.Organizations[0]
	assert.Equal(t, "Acme", acme.Name)
	assert.Equal(t, "Tech", acme.Notes)
	assert.Equal(t, model.RegionUK, acme.Tags)

	assert.Equal(t, "Globex", result.Tables.Organizations[1].Name)
}

func TestPipeline_ChunkBoundariesAreInvisible(t *testing.T) {
	run := func(chunkSize int) *Result {
		src := &memSource{columns: model.RequiredColumns, rows: testRows(), chunkSize: chunkSize}
		result, err := newPipeline().Run(context.Background(), src)
		require.NoError(t, err)
		return result
	}

	whole := run(1000)
	for _, size := range []int{1, 2, 3} {
		assert.Equal(t, whole, run(size), "chunk size %d", size)
	}
}

func TestPipeline_DeterministicAcrossRuns(t *testing.T) {
	run := func() *Result {
		src := &memSource{columns: model.RequiredColumns, rows: testRows(), chunkSize: 2}
		result, err := newPipeline().Run(context.Background(), src)
		require.NoError(t, err)
		return result
	}

	assert.Equal(t, run(), run())
}

func TestPipeline_MissingColumns(t *testing.T) {
	columns := []string{model.ColFirstName, model.ColLastName, model.ColCompany}
	src := &memSource{columns: columns, rows: testRows(), chunkSize: 100}

	_, err := newPipeline().Run(context.Background(), src)

	var missing *MissingColumnsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{
		model.ColEmail, model.ColKeywords, model.ColIndustry,
		model.ColCorporatePhone, model.ColTitle,
	}, missing.Columns)
}

func TestPipeline_NoValidRows(t *testing.T) {
	rows := []model.RawRecord{
		leadRow("Jane", "Doe", "jane@acme.com", "", "Tech", "+44 7911 123456"),
		leadRow("John", "Smith", "john@acme.com", "", "Finance", "+1 415 555 1234"),
	}
	src := &memSource{columns: model.RequiredColumns, rows: rows, chunkSize: 100}

	result, err := newPipeline().Run(context.Background(), src)

	var noRows *NoValidRowsError
	require.ErrorAs(t, err, &noRows)
	assert.Nil(t, result)
}

func TestPipeline_EmptyInputIsNoValidRows(t *testing.T) {
	src := &memSource{columns: model.RequiredColumns, chunkSize: 100}

	_, err := newPipeline().Run(context.Background(), src)

	var noRows *NoValidRowsError
	require.ErrorAs(t, err, &noRows)
}

func TestPipeline_PhonePriorityOrder(t *testing.T) {
	columns := append(append([]string{}, model.RequiredColumns...),
		model.ColMobilePhone, model.ColOtherPhone)

	rec := leadRow("Jane", "Doe", "jane@acme.com", "Acme", "Tech", "+1 415 555 1234")
	rec[model.ColMobilePhone] = "+44 7911 123456"
	rec[model.ColOtherPhone] = "+1 212 555 0101"

	src := &memSource{columns: columns, rows: []model.RawRecord{rec}, chunkSize: 100}

	result, err := newPipeline().Run(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, result.Tables.People, 1)

	// Mobile wins over Other and Corporate.
	assert.Equal(t, "+447911123456", result.Tables.People[0].Phone)
	assert.Equal(t, model.RegionUK, result.Tables.People[0].Tags)
}

func TestPipeline_PhoneFallsBackAcrossColumns(t *testing.T) {
	columns := append(append([]string{}, model.RequiredColumns...),
		model.ColMobilePhone, model.ColOtherPhone)

	rec := leadRow("Jane", "Doe", "jane@acme.com", "Acme", "Tech", "+1 415 555 1234")
	rec[model.ColMobilePhone] = ""
	rec[model.ColOtherPhone] = "n/a"

	src := &memSource{columns: columns, rows: []model.RawRecord{rec}, chunkSize: 100}

	result, err := newPipeline().Run(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, "+14155551234", result.Tables.People[0].Phone)
}

func TestPipeline_BaseSchemaUsesCorporatePhoneOnly(t *testing.T) {
	src := &memSource{
		columns:   model.RequiredColumns,
		rows:      []model.RawRecord{leadRow("Jane", "Doe", "jane@acme.com", "Acme", "Tech", "07911123456")},
		chunkSize: 100,
	}

	result, err := newPipeline().Run(context.Background(), src)
	require.NoError(t, err)

	assert.Equal(t, "+447911123456", result.Tables.People[0].Phone)
}
