// Package export writes the assembled import tables as CSV.
//
// Column order is significant for the downstream bulk-import tooling and
// matches the import templates exactly.
package export

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sells-group/leadbridge/internal/model"
)

// peopleColumns is the ordered users-import header.
var peopleColumns = []string{
	"name",
	"email",
	"external_id",
	"details",
	"notes",
	"phone",
	"role",
	"restriction",
	"organization",
	"tags",
	"brand",
}

// customField maps an optional source column to its import header name.
type customField struct {
	source string
	header string
}

// customFieldHeaders lists the optional columns in emission order.
var customFieldHeaders = []customField{
	{model.ColCity, "custom_fields.city"},
	{model.ColCompanyLinkedinURL, "custom_fields.company_linkedin_url"},
	{model.ColPersonLinkedinURL, "custom_fields.person_linkedin_url"},
	{model.ColWebsite, "custom_fields.website"},
}

// orgColumns is the ordered organizations-import header.
var orgColumns = []string{
	"name",
	"external_id",
	"notes",
	"details",
	"default",
	"shared",
	"shared_comments",
	"group",
	"tags",
}

// WritePeople writes the users table. Custom-field columns are appended
// only for the optional source columns the schema actually carries.
func WritePeople(w io.Writer, people []model.PersonRecord, schema model.Schema) error {
	cw := csv.NewWriter(w)

	header := append([]string{}, peopleColumns...)
	var custom []customField
	for _, cf := range customFieldHeaders {
		if schema.Has(cf.source) {
			header = append(header, cf.header)
			custom = append(custom, cf)
		}
	}

	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "export: write people header")
	}

	for _, p := range people {
		row := []string{
			p.Name,
			p.Email,
			p.ExternalID,
			p.Details,
			p.Notes,
			p.Phone,
			p.Role,
			p.Restriction,
			p.Organization,
			string(p.Tags),
			p.Brand,
		}
		for _, cf := range custom {
			row = append(row, p.CustomFields[cf.source])
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "export: write people row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush people")
}

// WriteOrganizations writes the organizations table.
func WriteOrganizations(w io.Writer, orgs []model.OrganizationRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(orgColumns); err != nil {
		return eris.Wrap(err, "export: write org header")
	}

	for _, o := range orgs {
		row := []string{
			o.Name,
			o.ExternalID,
			o.Notes,
			o.Details,
			o.Default,
			o.Shared,
			o.SharedComments,
			o.Group,
			string(o.Tags),
		}
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "export: write org row")
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush orgs")
}

// WritePeopleFile writes the users table to a file path.
func WritePeopleFile(path string, people []model.PersonRecord, schema model.Schema) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create people file")
	}
	defer f.Close() //nolint:errcheck

	return WritePeople(f, people, schema)
}

// WriteOrganizationsFile writes the organizations table to a file path.
func WriteOrganizationsFile(path string, orgs []model.OrganizationRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create org file")
	}
	defer f.Close() //nolint:errcheck

	return WriteOrganizations(f, orgs)
}
