// Package record defines the data model shared by the fieldguide pipeline:
// the validated query, the sparse per-source partial record, and the merged
// canonical record handed to the explanation layer.
package record

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aviaryworks/fieldguide/pkg/constants"
	"github.com/aviaryworks/fieldguide/pkg/errors"
)

// Unknown is the placeholder written into every canonical scalar field that
// no source could supply. Downstream templating relies on it being a plain
// printable string, never a language-level nil.
const Unknown = "unknown"

// Query is the validated input for one pipeline run. Construct it from caller
// input and call Validate before dispatching; it is not mutated afterwards.
type Query struct {
	// Name is the free-text species or heritage-element name.
	Name string

	// Region is an optional ISO 3166-1 alpha-2 country code filter.
	Region string

	// Year is an optional inscription-year filter for heritage records.
	// Zero means no filter.
	Year int

	// Limit caps the number of results requested from each source.
	// Zero is replaced by constants.DefaultResultLimit during validation.
	Limit int
}

// Validate checks the query and normalizes defaults in place. It returns a
// *errors.ValidationError before any network call is attempted.
func (q *Query) Validate() error {
	if strings.TrimSpace(q.Name) == "" {
		return errors.NewValidationError("name", q.Name, "cannot be empty")
	}
	if q.Limit == 0 {
		q.Limit = constants.DefaultResultLimit
	}
	if q.Limit < 1 || q.Limit > constants.MaxResultLimit {
		return errors.NewValidationError("limit", q.Limit, "must be between 1 and 50")
	}
	if q.Year < 0 {
		return errors.NewValidationError("year", q.Year, "cannot be negative")
	}
	return nil
}

// CacheKey returns the normalized memoization key for this query against one
// source: lower-cased, trimmed, inner whitespace collapsed, region appended.
func (q Query) CacheKey(sourceID string) string {
	return sourceID + "|" + Normalize(q.Name) + "|" + Normalize(q.Region)
}

var foldLower = cases.Lower(language.Und)

// Normalize canonicalizes free-text input for cache keys and identity
// matching: Unicode-aware lower casing, trimming, and whitespace collapsing.
func Normalize(s string) string {
	return strings.Join(strings.Fields(foldLower.String(s)), " ")
}

// Partial is the sparse output of a single source adapter. Scalar fields use
// the empty string for "absent"; list fields use nil. A Partial is built once
// per fetch and never shared across queries.
type Partial struct {
	// Source identifies the adapter that produced this record.
	Source string

	CommonName     string
	ScientificName string
	Ranks          []string
	Distribution   []string
	Status         string
	Habitat        string
	Behavior       string
	Photos         []string
	Observations   string
	Description    string
}

// IsEmpty reports whether the partial carries no data at all.
func (p *Partial) IsEmpty() bool {
	if p == nil {
		return true
	}
	return p.CommonName == "" &&
		p.ScientificName == "" &&
		len(p.Ranks) == 0 &&
		len(p.Distribution) == 0 &&
		p.Status == "" &&
		p.Habitat == "" &&
		p.Behavior == "" &&
		len(p.Photos) == 0 &&
		p.Observations == "" &&
		p.Description == ""
}

// Canonical is the merged record produced by the reconciler. Every scalar
// field holds a value or the Unknown literal; every list is non-nil. It is
// owned by the call that produced it and never mutated after construction.
type Canonical struct {
	CommonName     string   `json:"common_name"`
	ScientificName string   `json:"scientific_name"`
	Ranks          []string `json:"ranks"`
	Distribution   []string `json:"distribution"`
	Status         string   `json:"status"`
	Habitat        string   `json:"habitat"`
	Behavior       string   `json:"behavior"`
	Photos         []string `json:"photos"`
	Observations   string   `json:"observations"`
	Description    string   `json:"description"`

	// Sources lists the adapters that contributed at least one field,
	// in precedence order.
	Sources []string `json:"sources"`
}

// DisplayName returns the best human-facing name for the record.
func (c *Canonical) DisplayName() string {
	if c.CommonName != Unknown && c.CommonName != "" {
		return c.CommonName
	}
	if c.ScientificName != Unknown && c.ScientificName != "" {
		return c.ScientificName
	}
	return Unknown
}
