package record_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviaryworks/fieldguide/pkg/constants"
	"github.com/aviaryworks/fieldguide/pkg/errors"
	"github.com/aviaryworks/fieldguide/pkg/record"
)

func TestQueryValidate(t *testing.T) {
	tests := []struct {
		name    string
		query   record.Query
		wantErr bool
	}{
		{"valid", record.Query{Name: "Giant Panda", Limit: 5}, false},
		{"valid with region", record.Query{Name: "kabuki", Region: "JP", Limit: 1}, false},
		{"empty name", record.Query{Name: "", Limit: 5}, true},
		{"whitespace name", record.Query{Name: "   \t", Limit: 5}, true},
		{"limit too high", record.Query{Name: "lynx", Limit: constants.MaxResultLimit + 1}, true},
		{"negative limit", record.Query{Name: "lynx", Limit: -1}, true},
		{"negative year", record.Query{Name: "flamenco", Year: -3, Limit: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidationError(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestQueryValidateDefaultsLimit(t *testing.T) {
	q := record.Query{Name: "lynx"}
	require.NoError(t, q.Validate())
	assert.Equal(t, constants.DefaultResultLimit, q.Limit)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Giant Panda", "giant panda"},
		{"  Giant   Panda  ", "giant panda"},
		{"AILUROPODA MELANOLEUCA", "ailuropoda melanoleuca"},
		{"Mönchsgrasmücke", "mönchsgrasmücke"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, record.Normalize(tt.in))
	}
}

func TestQueryCacheKey(t *testing.T) {
	a := record.Query{Name: "Giant Panda", Region: "CN"}
	b := record.Query{Name: "  giant  PANDA ", Region: "cn"}
	assert.Equal(t, a.CacheKey("gbif"), b.CacheKey("gbif"))
	assert.NotEqual(t, a.CacheKey("gbif"), a.CacheKey("inat"))
	assert.NotEqual(t, a.CacheKey("gbif"), record.Query{Name: "Giant Panda"}.CacheKey("gbif"))
}

func TestPartialIsEmpty(t *testing.T) {
	var nilPartial *record.Partial
	assert.True(t, nilPartial.IsEmpty())
	assert.True(t, (&record.Partial{Source: "gbif"}).IsEmpty())
	assert.False(t, (&record.Partial{Source: "gbif", CommonName: "Giant Panda"}).IsEmpty())
	assert.False(t, (&record.Partial{Source: "unesco", Distribution: []string{"China"}}).IsEmpty())
}

func TestCanonicalDisplayName(t *testing.T) {
	c := &record.Canonical{CommonName: "Giant Panda", ScientificName: "Ailuropoda melanoleuca"}
	assert.Equal(t, "Giant Panda", c.DisplayName())

	c = &record.Canonical{CommonName: record.Unknown, ScientificName: "Ailuropoda melanoleuca"}
	assert.Equal(t, "Ailuropoda melanoleuca", c.DisplayName())

	c = &record.Canonical{CommonName: record.Unknown, ScientificName: record.Unknown}
	assert.Equal(t, record.Unknown, c.DisplayName())
}
