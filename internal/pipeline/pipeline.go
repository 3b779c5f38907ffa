// Package pipeline converts raw lead-export rows into the two
// ticketing-import tables: people and deduplicated organizations.
package pipeline

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/sells-group/leadbridge/internal/fetcher"
	"github.com/sells-group/leadbridge/internal/model"
	"github.com/sells-group/leadbridge/internal/phone"
	"github.com/sells-group/leadbridge/internal/region"
)

// Result holds the assembled tables plus row accounting for one run.
type Result struct {
	Tables      model.Tables
	RowsRead    int
	RowsSkipped int
}

// Pipeline drives validation, mapping, and aggregation over a chunked
// row source. Safe for sequential reuse; one invocation at a time.
type Pipeline struct {
	phones       *phone.Normalizer
	regions      *region.Classifier
	phoneColumns []string
}

// New constructs a Pipeline. phoneColumns is the candidate priority
// order (left to right, first non-empty canonical value wins); columns
// absent from a given source header are skipped per run.
func New(phones *phone.Normalizer, regions *region.Classifier, phoneColumns []string) *Pipeline {
	if len(phoneColumns) == 0 {
		phoneColumns = []string{model.ColMobilePhone, model.ColOtherPhone, model.ColCorporatePhone}
	}
	return &Pipeline{phones: phones, regions: regions, phoneColumns: phoneColumns}
}

// Run streams the source through the pipeline and assembles the output
// tables. Terminal outcomes: a complete Result, a MissingColumnsError,
// or a NoValidRowsError. Per-row classification failures never abort the
// run; they degrade to empty phones and the global tag upstream.
func (p *Pipeline) Run(ctx context.Context, src fetcher.Source) (*Result, error) {
	schema := model.NewSchema(src.Columns())
	if err := ValidateSchema(schema); err != nil {
		return nil, err
	}
	phoneColumns := p.activePhoneColumns(schema)

	var people []model.PersonRecord
	agg := NewAggregator()
	rowsRead, skipped := 0, 0

	for {
		chunk, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		// The schema gate repeats per chunk so chunked ingestion aborts
		// as soon as any chunk fails it.
		if err := ValidateSchema(schema); err != nil {
			return nil, err
		}

		for _, rec := range chunk {
			rowsRead++

			canonical := p.phones.First(rec, phoneColumns)
			if !ValidRow(rec, canonical) {
				skipped++
				continue
			}

			tag := p.regions.Classify(canonical)
			people = append(people, MapPerson(rec, schema, canonical, tag))
			agg.Observe(rec, tag)
		}
	}

	if len(people) == 0 {
		return nil, &NoValidRowsError{}
	}

	zap.L().Info("pipeline: assembled tables",
		zap.Int("rows_read", rowsRead),
		zap.Int("rows_skipped", skipped),
		zap.Int("people", len(people)),
		zap.Int("organizations", len(agg.order)),
	)

	return &Result{
		Tables: model.Tables{
			Schema:        schema,
			People:        people,
			Organizations: agg.Organizations(),
		},
		RowsRead:    rowsRead,
		RowsSkipped: skipped,
	}, nil
}

// activePhoneColumns filters the configured candidate list down to
// columns the source header actually carries.
func (p *Pipeline) activePhoneColumns(schema model.Schema) []string {
	active := make([]string, 0, len(p.phoneColumns))
	for _, col := range p.phoneColumns {
		if schema.Has(col) {
			active = append(active, col)
		}
	}
	return active
}
