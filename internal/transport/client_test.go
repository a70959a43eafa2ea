package transport_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviaryworks/fieldguide/internal/transport"
	"github.com/aviaryworks/fieldguide/pkg/errors"
)

func TestGetDecodesJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Contains(t, r.Header.Get("User-Agent"), "fieldguide")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"name":"Ailuropoda melanoleuca"}]}`))
	}))
	defer ts.Close()

	var payload struct {
		Results []struct {
			Name string `json:"name"`
		} `json:"results"`
	}

	client := transport.New()
	err := client.Get(context.Background(), "gbif", ts.URL, &payload)
	require.NoError(t, err)
	require.Len(t, payload.Results, 1)
	assert.Equal(t, "Ailuropoda melanoleuca", payload.Results[0].Name)
}

func TestGetMapsStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		sentinel error
	}{
		{"server error", http.StatusServiceUnavailable, errors.ErrProviderUnavailable},
		{"rate limited", http.StatusTooManyRequests, errors.ErrRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tt.status)
			}))
			defer ts.Close()

			var target map[string]any
			err := transport.New().Get(context.Background(), "gbif", ts.URL, &target)
			require.Error(t, err)

			var apiErr *errors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, "gbif", apiErr.Source)
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestGetClassifiesTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	client := transport.New(transport.WithHTTPClient(&http.Client{Timeout: 20 * time.Millisecond}))
	var target map[string]any
	err := client.Get(context.Background(), "inat", ts.URL, &target)
	require.Error(t, err)
	assert.True(t, errors.IsTimeout(err), "expected timeout classification, got %v", err)
}

func TestGetClassifiesTransportFailure(t *testing.T) {
	// Reserve a port, then close it so the connection is refused.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead := ts.URL
	ts.Close()

	var target map[string]any
	err := transport.New().Get(context.Background(), "unesco", dead, &target)
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err), "expected transport classification, got %v", err)
}

func TestGetRejectsMalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	}))
	defer ts.Close()

	var target map[string]any
	err := transport.New().Get(context.Background(), "gbif", ts.URL, &target)
	require.Error(t, err)

	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestBuildURL(t *testing.T) {
	params := url.Values{}
	params.Set("q", "giant panda")
	params.Set("limit", "5")
	got := transport.BuildURL("https://api.gbif.org/v1/species/search", params)
	assert.Equal(t, "https://api.gbif.org/v1/species/search?limit=5&q=giant+panda", got)

	assert.Equal(t, "https://example.org", transport.BuildURL("https://example.org", nil))
}
