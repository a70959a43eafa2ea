// Package sources defines the data source adapter contract and the TTL cache
// decorator shared by the concrete adapters (gbif, inat, unesco).
//
// An adapter's Fetch has three terminal outcomes: a partial record, an
// explicit empty result (nil, nil) when the provider answered but matched
// nothing, or an error from the fieldguide taxonomy. Zero results is a valid
// answer, not a failure; only outright call failures trigger an adapter's
// fallback endpoint.
package sources

import (
	"context"

	"github.com/aviaryworks/fieldguide/pkg/record"
)

// Source is one external data provider adapter.
type Source interface {
	// ID returns the stable source identifier used for precedence,
	// cache keys, and provenance.
	ID() string

	// Fetch looks up the query against the provider. It returns
	// (nil, nil) when the provider answered with zero results.
	Fetch(ctx context.Context, q record.Query) (*record.Partial, error)
}

// Outcome is the terminal result of one dispatched adapter call.
type Outcome struct {
	Source  string
	Partial *record.Partial
	Err     error
}

// HasData reports whether the outcome carries a usable partial record.
func (o Outcome) HasData() bool {
	return o.Err == nil && !o.Partial.IsEmpty()
}
