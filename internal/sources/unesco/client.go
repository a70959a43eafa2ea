// Package unesco adapts the UNESCO intangible-cultural-heritage open-data
// API to the fieldguide source contract. It is the lowest-priority source and
// the only one covering heritage-registry entries.
//
// Primary endpoint: the Opendata explore v2.1 records API. Fallback: the
// legacy v1 search API, used only when the primary call fails outright.
package unesco

import (
	"context"
	"encoding/json"
	"fmt"
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
const SourceID = "unesco"

// DefaultBaseURL is the UNESCO open-data API root.
const DefaultBaseURL = "https://data.unesco.org"

// ichDataset is the intangible-cultural-heritage elements dataset.
const ichDataset = "ich-elements"

// recordsResponse is the explore v2.1 shape.
type recordsResponse struct {
	TotalCount int           `json:"total_count"`
	Results    []elementItem `json:"results"`
}

// legacyResponse is the v1 search shape: records wrap their fields.
type legacyResponse struct {
	Records []struct {
		Fields elementItem `json:"fields"`
	} `json:"records"`
}

type elementItem struct {
	NameEN             string     `json:"name_en"`
	NameFR             string     `json:"name_fr"`
	Countries          stringList `json:"countries"`
	YearInscribed      int        `json:"year_inscribed"`
	ListEN             string     `json:"list_en"`
	ShortDescriptionEN string     `json:"short_description_en"`
}

// stringList tolerates providers returning either a single string or an
// array for multi-valued fields.
type stringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *stringList) UnmarshalJSON(data []byte) error {
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*s = many
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err != nil {
		return err
	}
	if one != "" {
		*s = []string{one}
	}
	return nil
}

// Client implements sources.Source for the UNESCO ICH registry.
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

// New creates a UNESCO client.
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
	partial, err := c.explore(ctx, q)
	if err == nil {
		return partial, nil
	}

	logging.FromContext(ctx).Warn().
		Err(err).
		Str("source", SourceID).
		Msg("primary endpoint failed, trying fallback")

	partial, fbErr := c.legacySearch(ctx, q)
	if fbErr != nil {
		return nil, err
	}
	return partial, nil
}

// explore queries the v2.1 records endpoint with where/refine filters.
func (c *Client) explore(ctx context.Context, q record.Query) (*record.Partial, error) {
	params := url.Values{}
	params.Set("where", fmt.Sprintf("search(name_en, %q)", q.Name))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.Region != "" {
		params.Add("refine", "countries:"+q.Region)
	}
	if q.Year != 0 {
		params.Add("refine", "year_inscribed:"+strconv.Itoa(q.Year))
	}

	var resp recordsResponse
	u := transport.BuildURL(
		c.base+"/api/explore/v2.1/catalog/datasets/"+ichDataset+"/records", params)
	if err := c.primary.Get(ctx, SourceID, u, &resp); err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, nil
	}

	return convert(resp.Results[0]), nil
}

// legacySearch queries the v1 search endpoint; its records nest the payload
// under a fields key.
func (c *Client) legacySearch(ctx context.Context, q record.Query) (*record.Partial, error) {
	params := url.Values{}
	params.Set("dataset", ichDataset)
	params.Set("q", q.Name)
	params.Set("rows", strconv.Itoa(q.Limit))
	if q.Region != "" {
		params.Add("refine.countries", q.Region)
	}
	if q.Year != 0 {
		params.Add("refine.year_inscribed", strconv.Itoa(q.Year))
	}

	var resp legacyResponse
	u := transport.BuildURL(c.base+"/api/records/1.0/search/", params)
	if err := c.secondary.Get(ctx, SourceID, u, &resp); err != nil {
		return nil, err
	}

	if len(resp.Records) == 0 {
		return nil, nil
	}

	return convert(resp.Records[0].Fields), nil
}

// convert extracts the partial record from one heritage element. The French
// name doubles as the alternate-name field; the inscription year and list
// become the category status.
func convert(e elementItem) *record.Partial {
	p := &record.Partial{
		Source:         SourceID,
		CommonName:     e.NameEN,
		ScientificName: e.NameFR,
		Distribution:   []string(e.Countries),
		Description:    e.ShortDescriptionEN,
	}
	switch {
	case e.YearInscribed != 0 && e.ListEN != "":
		p.Status = fmt.Sprintf("%s (inscribed %d)", e.ListEN, e.YearInscribed)
	case e.YearInscribed != 0:
		p.Status = fmt.Sprintf("inscribed %d", e.YearInscribed)
	case e.ListEN != "":
		p.Status = e.ListEN
	}
	return p
}
