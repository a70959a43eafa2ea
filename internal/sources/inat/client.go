// Package inat adapts the iNaturalist taxa API to the fieldguide source
// contract. It is the second-priority source and the only one carrying
// citizen-science observation counts and photos.
//
// Primary endpoint: /v1/taxa (full-text taxon search). Fallback:
// /v1/taxa/autocomplete, used only when the primary call fails outright.
package inat

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aviaryworks/fieldguide/internal/transport"
	"github.com/aviaryworks/fieldguide/pkg/constants"
	"github.com/aviaryworks/fieldguide/pkg/logging"
	"github.com/aviaryworks/fieldguide/pkg/record"
)

// SourceID identifies this adapter.
const SourceID = "inat"

// DefaultBaseURL is the public iNaturalist API root.
const DefaultBaseURL = "https://api.inaturalist.org/v1"

type taxaResponse struct {
	Results []taxonResult `json:"results"`
}

type taxonResult struct {
	Name                string              `json:"name"`
	PreferredCommonName string              `json:"preferred_common_name"`
	Rank                string              `json:"rank"`
	ObservationsCount   int                 `json:"observations_count"`
	WikipediaSummary    string              `json:"wikipedia_summary"`
	IconicTaxonName     string              `json:"iconic_taxon_name"`
	DefaultPhoto        *photo              `json:"default_photo"`
	TaxonPhotos         []taxonPhotoWrapper `json:"taxon_photos"`
	ConservationStatus  *conservationStatus `json:"conservation_status"`
}

type photo struct {
	MediumURL string `json:"medium_url"`
	URL       string `json:"url"`
}

type taxonPhotoWrapper struct {
	Photo *photo `json:"photo"`
}

type conservationStatus struct {
	StatusName string `json:"status_name"`
	Status     string `json:"status"`
}

// Client implements sources.Source for iNaturalist.
type Client struct {
	base      string
	primary   *transport.Client
	secondary *transport.Client
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the API root (test seam and ops knob).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		c.base = strings.TrimRight(base, "/")
	}
}

// WithTransport substitutes both transport clients.
func WithTransport(t *transport.Client) Option {
	return func(c *Client) {
		c.primary = t
		c.secondary = t
	}
}

// New creates an iNaturalist client.
func New(opts ...Option) *Client {
	c := &Client{
		base:    DefaultBaseURL,
		primary: transport.New(),
		secondary: transport.New(transport.WithHTTPClient(
			&http.Client{Timeout: constants.FallbackHTTPTimeout})),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID implements sources.Source.
func (c *Client) ID() string { return SourceID }

// Fetch implements sources.Source.
func (c *Client) Fetch(ctx context.Context, q record.Query) (*record.Partial, error) {
	partial, err := c.query(ctx, c.primary, "/taxa", q)
	if err == nil {
		return partial, nil
	}

	logging.FromContext(ctx).Warn().
		Err(err).
		Str("source", SourceID).
		Msg("primary endpoint failed, trying fallback")

	partial, fbErr := c.query(ctx, c.secondary, "/taxa/autocomplete", q)
	if fbErr != nil {
		return nil, err
	}
	return partial, nil
}

// query hits one taxa endpoint; both share the response shape.
func (c *Client) query(ctx context.Context, t *transport.Client, path string, q record.Query) (*record.Partial, error) {
	params := url.Values{}
	params.Set("q", q.Name)
	params.Set("per_page", strconv.Itoa(q.Limit))
	if q.Region != "" {
		params.Set("locale", strings.ToLower(q.Region))
	}

	var resp taxaResponse
	u := transport.BuildURL(c.base+path, params)
	if err := t.Get(ctx, SourceID, u, &resp); err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, nil
	}

	return convert(resp.Results[0]), nil
}

// convert extracts the partial record from the first taxon hit. Every
// expected key has a declared default; a sparse payload never faults.
func convert(r taxonResult) *record.Partial {
	p := &record.Partial{
		Source:         SourceID,
		CommonName:     r.PreferredCommonName,
		ScientificName: r.Name,
		Description:    r.WikipediaSummary,
		Photos:         photos(r),
	}
	// The search payload only carries the iconic taxon, not full ancestry;
	// that coarse lineage still beats nothing when GBIF had no hit.
	if r.IconicTaxonName != "" {
		p.Ranks = []string{r.IconicTaxonName}
	}
	if r.ObservationsCount > 0 {
		p.Observations = strconv.Itoa(r.ObservationsCount)
	}
	if cs := r.ConservationStatus; cs != nil {
		if cs.StatusName != "" {
			p.Status = cs.StatusName
		} else {
			p.Status = cs.Status
		}
	}
	return p
}

// photos collects the default photo plus any taxon photos, deduplicated.
func photos(r taxonResult) []string {
	var out []string
	seen := make(map[string]bool)

	add := func(p *photo) {
		if p == nil {
			return
		}
		u := p.MediumURL
		if u == "" {
			u = p.URL
		}
		if u != "" && !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}

	add(r.DefaultPhoto)
	for _, tp := range r.TaxonPhotos {
		add(tp.Photo)
	}
	return out
}
