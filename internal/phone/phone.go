// Package phone canonicalizes raw phone fields into E.164-like strings.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/sells-group/leadbridge/internal/model"
)

// DefaultRegions is the parse order tried for numbers without a country
// code. The export base is UK/US heavy, so GB is tried first.
var DefaultRegions = []string{"GB", "US"}

// Normalizer canonicalizes raw phone strings. The zero value is not
// usable; construct with NewNormalizer.
type Normalizer struct {
	regions []string
}

// NewNormalizer returns a Normalizer trying the given regions, in order,
// for numbers lacking a country code. Empty regions falls back to
// DefaultRegions.
func NewNormalizer(regions ...string) *Normalizer {
	if len(regions) == 0 {
		regions = DefaultRegions
	}
	return &Normalizer{regions: regions}
}

// Normalize canonicalizes a raw phone field. The result is either empty,
// a strict E.164 string when parsing succeeds, or the cleaned digit run
// (heuristically prefixed with "+") when it does not. It never fails.
func (n *Normalizer) Normalize(raw string) string {
	cleaned := clean(raw)
	if cleaned == "" {
		return ""
	}

	if strings.HasPrefix(cleaned, "+") {
		if num, err := phonenumbers.Parse(cleaned, ""); err == nil && phonenumbers.IsValidNumber(num) {
			return phonenumbers.Format(num, phonenumbers.E164)
		}
	} else {
		for _, region := range n.regions {
			num, err := phonenumbers.Parse(cleaned, region)
			if err != nil {
				continue
			}
			if phonenumbers.IsValidNumber(num) {
				return phonenumbers.Format(num, phonenumbers.E164)
			}
		}
	}

	// Heuristic fallback: only prefix "+" when the digit run plausibly
	// already starts with a country code (44, 1) or is long enough to
	// carry one. Shorter runs pass through bare.
	digits := strings.TrimPrefix(cleaned, "+")
	if strings.HasPrefix(digits, "44") || strings.HasPrefix(digits, "1") || len(digits) >= 10 {
		return "+" + digits
	}
	return digits
}

// First returns the first non-empty canonical number among the given
// columns, evaluated left to right.
func (n *Normalizer) First(rec model.RawRecord, columns []string) string {
	for _, col := range columns {
		if canonical := n.Normalize(rec.Get(col)); canonical != "" {
			return canonical
		}
	}
	return ""
}

// clean strips everything except ASCII digits, keeping a single "+" only
// when it appears before the first digit.
func clean(raw string) string {
	var b strings.Builder
	plus := false
	seenDigit := false
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			seenDigit = true
		case r == '+' && !seenDigit:
			plus = true
		}
	}
	if b.Len() == 0 {
		return ""
	}
	if plus {
		return "+" + b.String()
	}
	return b.String()
}
