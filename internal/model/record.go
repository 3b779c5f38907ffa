// Package model defines the record types flowing through the conversion pipeline.
package model

// Required source columns. Every input file must carry all of these.
const (
	ColFirstName      = "First Name"
	ColLastName       = "Last Name"
	ColEmail          = "Email"
	ColKeywords       = "Keywords"
	ColIndustry       = "Industry"
	ColCorporatePhone = "Corporate Phone"
	ColTitle          = "Title"
	ColCompany        = "Company"
)

// Optional columns from extended Apollo exports.
const (
	ColMobilePhone        = "Mobile Phone"
	ColOtherPhone         = "Other Phone"
	ColCity               = "City"
	ColCompanyLinkedinURL = "Company Linkedin Url"
	ColPersonLinkedinURL  = "Person Linkedin Url"
	ColWebsite            = "Website"
)

// RequiredColumns is the fixed schema every chunk must satisfy.
var RequiredColumns = []string{
	ColFirstName,
	ColLastName,
	ColEmail,
	ColKeywords,
	ColIndustry,
	ColCorporatePhone,
	ColTitle,
	ColCompany,
}

// OptionalColumns are recognized when present but never required.
var OptionalColumns = []string{
	ColMobilePhone,
	ColOtherPhone,
	ColCity,
	ColCompanyLinkedinURL,
	ColPersonLinkedinURL,
	ColWebsite,
}

// RawRecord is one input row keyed by source column name. A missing key
// models a null cell, distinct from an empty string.
type RawRecord map[string]string

// Get returns the cell value for a column, or "" when the cell is null.
func (r RawRecord) Get(column string) string {
	return r[column]
}

// RegionTag is the coarse geography bucket assigned to a contact.
type RegionTag string

const (
	RegionUK     RegionTag = "region_uk"
	RegionUSA    RegionTag = "region_usa"
	RegionGlobal RegionTag = "global"
)

// Schema describes the column set detected in a source header.
type Schema struct {
	Columns  []string // header columns in source order
	present  map[string]bool
	Extended bool // true when any optional column is present
}

// NewSchema builds a Schema from a header row.
func NewSchema(columns []string) Schema {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[c] = true
	}
	extended := false
	for _, c := range OptionalColumns {
		if present[c] {
			extended = true
			break
		}
	}
	return Schema{Columns: columns, present: present, Extended: extended}
}

// Has reports whether the source header contains the column.
func (s Schema) Has(column string) bool {
	return s.present[column]
}

// Missing returns the required columns absent from the header, in
// RequiredColumns order.
func (s Schema) Missing() []string {
	var missing []string
	for _, c := range RequiredColumns {
		if !s.present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// PersonRecord is one row of the users import table.
type PersonRecord struct {
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	ExternalID   string            `json:"external_id"`
	Details      string            `json:"details"`
	Notes        string            `json:"notes"`
	Phone        string            `json:"phone"`
	Role         string            `json:"role"`
	Restriction  string            `json:"restriction"`
	Organization string            `json:"organization"`
	Tags         RegionTag         `json:"tags"`
	Brand        string            `json:"brand"`
	CustomFields map[string]string `json:"custom_fields,omitempty"` // keyed by source column
}

// OrganizationRecord is one row of the organizations import table.
type OrganizationRecord struct {
	Name           string    `json:"name"`
	ExternalID     string    `json:"external_id"`
	Notes          string    `json:"notes"`
	Details        string    `json:"details"`
	Default        string    `json:"default"`
	Shared         string    `json:"shared"`
	SharedComments string    `json:"shared_comments"`
	Group          string    `json:"group"`
	Tags           RegionTag `json:"tags"`
}

// Tables holds the assembled output of one conversion pass.
type Tables struct {
	Schema        Schema               `json:"-"`
	People        []PersonRecord       `json:"people"`
	Organizations []OrganizationRecord `json:"organizations"`
}
