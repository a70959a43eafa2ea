// Package reconcile merges the partial records produced by the source
// adapters into one canonical record.
//
// Precedence is field-level and fixed: for each field the first source in the
// configured priority order with a non-absent value wins. List fields win
// wholesale — distribution lists or photo sequences from different providers
// use inconsistent conventions and are never concatenated. The merge is a
// pure function of its inputs: no I/O, no retries, and the order of the input
// slice is irrelevant.
package reconcile

import (
	"sort"

	"github.com/aviaryworks/fieldguide/internal/sources"
	"github.com/aviaryworks/fieldguide/pkg/errors"
	"github.com/aviaryworks/fieldguide/pkg/record"
)

// DefaultPriority is the canonical source precedence: backbone taxonomy
// first, citizen observations second, the heritage registry last.
var DefaultPriority = []string{"gbif", "inat", "unesco"}

// Reconciler merges partial records using a fixed source priority.
type Reconciler struct {
	rank map[string]int
}

// New creates a Reconciler with the given priority order. An empty call uses
// DefaultPriority.
func New(priority ...string) *Reconciler {
	if len(priority) == 0 {
		priority = DefaultPriority
	}
	rank := make(map[string]int, len(priority))
	for i, id := range priority {
		rank[id] = i
	}
	return &Reconciler{rank: rank}
}

// Merge resolves the outcomes into a canonical record. When every adapter
// returned empty or failed it reports errors.ErrNotFound — deliberately
// distinct from a canonical record whose fields are all "unknown".
func (r *Reconciler) Merge(outcomes []sources.Outcome) (*record.Canonical, error) {
	parts := r.ordered(outcomes)
	if len(parts) == 0 {
		return nil, errors.NewNotFoundError("record", "")
	}

	used := make(map[string]bool)

	scalar := func(get func(*record.Partial) string) string {
		for _, p := range parts {
			if v := get(p); v != "" {
				used[p.Source] = true
				return v
			}
		}
		return record.Unknown
	}

	list := func(get func(*record.Partial) []string) []string {
		for _, p := range parts {
			if v := get(p); len(v) > 0 {
				used[p.Source] = true
				return append([]string(nil), v...)
			}
		}
		return []string{}
	}

	c := &record.Canonical{
		CommonName:     scalar(func(p *record.Partial) string { return p.CommonName }),
		ScientificName: scalar(func(p *record.Partial) string { return p.ScientificName }),
		Ranks:          list(func(p *record.Partial) []string { return p.Ranks }),
		Distribution:   list(func(p *record.Partial) []string { return p.Distribution }),
		Status:         scalar(func(p *record.Partial) string { return p.Status }),
		Habitat:        scalar(func(p *record.Partial) string { return p.Habitat }),
		Behavior:       scalar(func(p *record.Partial) string { return p.Behavior }),
		Photos:         list(func(p *record.Partial) []string { return p.Photos }),
		Observations:   scalar(func(p *record.Partial) string { return p.Observations }),
		Description:    scalar(func(p *record.Partial) string { return p.Description }),
	}

	for _, p := range parts {
		if used[p.Source] {
			c.Sources = append(c.Sources, p.Source)
		}
	}

	return c, nil
}

// ordered filters the outcomes down to usable partials and sorts them by
// configured priority, so the result never depends on dispatch completion
// order. Sources missing from the priority table sort last, by ID for
// determinism.
func (r *Reconciler) ordered(outcomes []sources.Outcome) []*record.Partial {
	var parts []*record.Partial
	for _, o := range outcomes {
		if o.HasData() {
			parts = append(parts, o.Partial)
		}
	}

	sort.SliceStable(parts, func(i, j int) bool {
		ri, iOK := r.rank[parts[i].Source]
		rj, jOK := r.rank[parts[j].Source]
		switch {
		case iOK && jOK:
			return ri < rj
		case iOK:
			return true
		case jOK:
			return false
		default:
			return parts[i].Source < parts[j].Source
		}
	})

	return parts
}
