package pipeline

import (
	"strings"

	"github.com/sells-group/leadbridge/internal/identity"
	"github.com/sells-group/leadbridge/internal/model"
)

// customFieldColumns are the optional source columns carried through as
// user custom fields when the extended schema is present.
var customFieldColumns = []string{
	model.ColCity,
	model.ColCompanyLinkedinURL,
	model.ColPersonLinkedinURL,
	model.ColWebsite,
}

// MapPerson projects a valid raw row plus its derived canonical phone
// and region tag into a PersonRecord. Pure construction, no side effects.
func MapPerson(rec model.RawRecord, schema model.Schema, canonicalPhone string, tag model.RegionTag) model.PersonRecord {
	person := model.PersonRecord{
		Name:         joinName(rec.Get(model.ColFirstName), rec.Get(model.ColLastName)),
		Email:        strings.TrimSpace(rec.Get(model.ColEmail)),
		ExternalID:   identity.PersonID(rec.Get(model.ColEmail)),
		Details:      rec.Get(model.ColKeywords),
		Notes:        rec.Get(model.ColIndustry),
		Phone:        canonicalPhone,
		Role:         rec.Get(model.ColTitle),
		Organization: rec.Get(model.ColCompany),
		Tags:         tag,
	}

	if schema.Extended {
		person.CustomFields = make(map[string]string, len(customFieldColumns))
		for _, col := range customFieldColumns {
			if schema.Has(col) {
				person.CustomFields[col] = rec.Get(col)
			}
		}
	}

	return person
}

// joinName joins first and last name with a single space. A missing last
// name is tolerated and never rendered as a placeholder.
func joinName(first, last string) string {
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if last == "" {
		return first
	}
	if first == "" {
		return last
	}
	return first + " " + last
}
