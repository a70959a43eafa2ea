// Package gbif adapts the GBIF backbone taxonomy API to the fieldguide
// source contract. It is the highest-priority source for taxonomic fields.
//
// Primary endpoint: /v1/species/search (full records, vernacular names,
// descriptions). Fallback: /v1/species/match (name matching only), used when
// the primary call fails outright — never when it merely returns no results.
package gbif

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

// SourceID identifies this adapter in precedence order, cache keys, and
// provenance.
const SourceID = "gbif"

// DefaultBaseURL is the public GBIF API root.
const DefaultBaseURL = "https://api.gbif.org/v1"

// searchResponse is the shape of /species/search.
type searchResponse struct {
	Results []speciesResult `json:"results"`
}

type speciesResult struct {
	ScientificName  string            `json:"scientificName"`
	CanonicalName   string            `json:"canonicalName"`
	VernacularNames []vernacularName  `json:"vernacularNames"`
	Kingdom         string            `json:"kingdom"`
	Phylum          string            `json:"phylum"`
	Class           string            `json:"class"`
	Order           string            `json:"order"`
	Family          string            `json:"family"`
	Genus           string            `json:"genus"`
	ThreatStatuses  []string          `json:"threatStatuses"`
	Habitats        []string          `json:"habitats"`
	Descriptions    []descriptionItem `json:"descriptions"`
	NumOccurrences  int               `json:"numOccurrences"`
}

type vernacularName struct {
	VernacularName string `json:"vernacularName"`
	Language       string `json:"language"`
}

type descriptionItem struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// matchResponse is the shape of the /species/match fallback.
type matchResponse struct {
	MatchType      string `json:"matchType"`
	ScientificName string `json:"scientificName"`
	CanonicalName  string `json:"canonicalName"`
	Status         string `json:"status"`
	Kingdom        string `json:"kingdom"`
	Phylum         string `json:"phylum"`
	Class          string `json:"class"`
	Order          string `json:"order"`
	Family         string `json:"family"`
	Genus          string `json:"genus"`
}

// Client implements sources.Source for GBIF.
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

// New creates a GBIF client.
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

// Fetch implements sources.Source. The fallback endpoint fires only when the
// primary call itself fails; an empty result set is returned as (nil, nil).
func (c *Client) Fetch(ctx context.Context, q record.Query) (*record.Partial, error) {
	partial, err := c.search(ctx, q)
	if err == nil {
		return partial, nil
	}

	logging.FromContext(ctx).Warn().
		Err(err).
		Str("source", SourceID).
		Msg("primary endpoint failed, trying fallback")

	partial, fbErr := c.match(ctx, q)
	if fbErr != nil {
		// Report the primary failure; the fallback was best-effort.
		return nil, err
	}
	return partial, nil
}

// search queries the primary full-text endpoint.
func (c *Client) search(ctx context.Context, q record.Query) (*record.Partial, error) {
	params := url.Values{}
	params.Set("q", q.Name)
	params.Set("limit", strconv.Itoa(q.Limit))

	var resp searchResponse
	u := transport.BuildURL(c.base+"/species/search", params)
	if err := c.primary.Get(ctx, SourceID, u, &resp); err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, nil
	}

	return convertSearchResult(resp.Results[0]), nil
}

// match queries the fallback name-matching endpoint.
func (c *Client) match(ctx context.Context, q record.Query) (*record.Partial, error) {
	params := url.Values{}
	params.Set("name", q.Name)

	var resp matchResponse
	u := transport.BuildURL(c.base+"/species/match", params)
	if err := c.secondary.Get(ctx, SourceID, u, &resp); err != nil {
		return nil, err
	}

	if resp.MatchType == "" || resp.MatchType == "NONE" {
		return nil, nil
	}

	return convertMatchResult(resp), nil
}

// convertSearchResult extracts the partial record from the first search hit.
// Extraction is total: absent payload keys yield absent fields, never faults.
func convertSearchResult(r speciesResult) *record.Partial {
	p := &record.Partial{
		Source:         SourceID,
		ScientificName: firstNonEmpty(r.ScientificName, r.CanonicalName),
		CommonName:     preferredVernacular(r.VernacularNames),
		Ranks:          lineage(r.Kingdom, r.Phylum, r.Class, r.Order, r.Family, r.Genus),
		Status:         firstString(r.ThreatStatuses),
		Habitat:        strings.Join(r.Habitats, ", "),
	}
	if r.NumOccurrences > 0 {
		p.Observations = strconv.Itoa(r.NumOccurrences)
	}
	for _, d := range r.Descriptions {
		if d.Description != "" {
			p.Description = d.Description
			break
		}
	}
	return p
}

// convertMatchResult extracts the thinner fallback record.
func convertMatchResult(r matchResponse) *record.Partial {
	return &record.Partial{
		Source:         SourceID,
		ScientificName: firstNonEmpty(r.ScientificName, r.CanonicalName),
		Ranks:          lineage(r.Kingdom, r.Phylum, r.Class, r.Order, r.Family, r.Genus),
		Status:         r.Status,
	}
}

// preferredVernacular picks an English vernacular name when present, else the
// first one listed.
func preferredVernacular(names []vernacularName) string {
	for _, n := range names {
		if n.Language == "eng" && n.VernacularName != "" {
			return n.VernacularName
		}
	}
	for _, n := range names {
		if n.VernacularName != "" {
			return n.VernacularName
		}
	}
	return ""
}

// lineage builds the rank list kingdom through genus, skipping absent ranks.
func lineage(ranks ...string) []string {
	var out []string
	for _, r := range ranks {
		if r != "" {
			out = append(out, r)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstString(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
