package pipeline

import (
	"strings"

	"github.com/sells-group/leadbridge/internal/identity"
	"github.com/sells-group/leadbridge/internal/model"
)

// Aggregator collapses valid rows into one organization per distinct
// company name. First-seen-wins: the earliest row observed for a company
// fixes its notes (industry) and region tag; later rows are ignored for
// aggregation. Company names match exactly and case-sensitively.
type Aggregator struct {
	byName map[string]model.OrganizationRecord
	order  []string
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{byName: make(map[string]model.OrganizationRecord)}
}

// Observe records one valid row. Rows must be observed in input order
// for the first-seen guarantee to hold.
func (a *Aggregator) Observe(rec model.RawRecord, tag model.RegionTag) {
	// Key on the raw value: company matching is exact and case-sensitive.
	name := rec.Get(model.ColCompany)
	if strings.TrimSpace(name) == "" {
		return
	}
	if _, seen := a.byName[name]; seen {
		return
	}
	a.byName[name] = model.OrganizationRecord{
		Name:       name,
		ExternalID: identity.OrgID(name),
		Notes:      rec.Get(model.ColIndustry),
		Tags:       tag,
	}
	a.order = append(a.order, name)
}

// Organizations returns the aggregated records in first-seen order.
func (a *Aggregator) Organizations() []model.OrganizationRecord {
	orgs := make([]model.OrganizationRecord, 0, len(a.order))
	for _, name := range a.order {
		orgs = append(orgs, a.byName[name])
	}
	return orgs
}
