// Package region buckets canonical phone numbers into coarse geography tags.
package region

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
	gocache "github.com/patrickmn/go-cache"

	"github.com/sells-group/leadbridge/internal/model"
)

// defaultTags maps phone region codes to output tags. Anything absent
// resolves to RegionGlobal.
var defaultTags = map[string]model.RegionTag{
	"GB": model.RegionUK,
	"US": model.RegionUSA,
}

// Classifier assigns a RegionTag to a canonical phone number using its
// parsed country code. Results are memoized so repeated numbers in large
// exports resolve once.
type Classifier struct {
	tags  map[string]model.RegionTag
	cache *gocache.Cache
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithTags overrides the region-code → tag table.
func WithTags(tags map[string]model.RegionTag) Option {
	return func(c *Classifier) { c.tags = tags }
}

// WithCache injects a shared memoization cache.
func WithCache(cache *gocache.Cache) Option {
	return func(c *Classifier) { c.cache = cache }
}

// NewClassifier returns a Classifier with the default GB/US tag table
// and a private non-expiring cache.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		tags:  defaultTags,
		cache: gocache.New(gocache.NoExpiration, 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify maps a canonical phone number to its region tag. Empty input
// and every failure path resolve to RegionGlobal.
func (c *Classifier) Classify(canonical string) model.RegionTag {
	if canonical == "" {
		return model.RegionGlobal
	}
	if cached, ok := c.cache.Get(canonical); ok {
		return cached.(model.RegionTag)
	}
	tag := c.resolve(canonical)
	c.cache.Set(canonical, tag, gocache.NoExpiration)
	return tag
}

func (c *Classifier) resolve(canonical string) model.RegionTag {
	parseable := canonical
	if !strings.HasPrefix(parseable, "+") {
		parseable = "+" + parseable
	}

	if num, err := phonenumbers.Parse(parseable, ""); err == nil {
		code := phonenumbers.GetRegionCodeForCountryCode(int(num.GetCountryCode()))
		if tag, ok := c.tags[code]; ok {
			return tag
		}
		return model.RegionGlobal
	}

	// Parse failed: textual prefix heuristic.
	digits := strings.TrimPrefix(canonical, "+")
	switch {
	case strings.HasPrefix(digits, "44"):
		return model.RegionUK
	case strings.HasPrefix(digits, "1"):
		return model.RegionUSA
	default:
		return model.RegionGlobal
	}
}
