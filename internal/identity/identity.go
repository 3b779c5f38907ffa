// Package identity derives stable external identifiers for import records.
//
// Identifiers are content hashes, so re-importing the same source file
// assigns the same external_id to the same logical person or
// organization. Nothing here is salted or sequenced.
package identity

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// orgToken namespaces organization identifiers away from person
// identifiers derived from overlapping source fields.
const orgToken = "org"

// separator joins fields before hashing so distinct field tuples cannot
// collide by concatenation.
const separator = "|"

// PersonID derives the external identifier for a person. The first field
// is the primary input; when it is empty after trimming, the identifier
// is empty.
func PersonID(fields ...string) string {
	return hashFields(fields)
}

// OrgID derives the external identifier for an organization. It appends
// a namespace token so an organization never shares an identifier with a
// person hashed from the same raw fields.
func OrgID(fields ...string) string {
	if len(fields) == 0 || strings.TrimSpace(fields[0]) == "" {
		return ""
	}
	return hashFields(append(append([]string{}, fields...), orgToken))
}

func hashFields(fields []string) string {
	if len(fields) == 0 || strings.TrimSpace(fields[0]) == "" {
		return ""
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = strings.ToLower(strings.TrimSpace(f))
	}
	sum := md5.Sum([]byte(strings.Join(parts, separator)))
	return hex.EncodeToString(sum[:])
}
