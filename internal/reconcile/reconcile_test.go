package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviaryworks/fieldguide/internal/reconcile"
	"github.com/aviaryworks/fieldguide/internal/sources"
	"github.com/aviaryworks/fieldguide/pkg/errors"
	"github.com/aviaryworks/fieldguide/pkg/record"
)

func outcome(p *record.Partial) sources.Outcome {
	return sources.Outcome{Source: p.Source, Partial: p}
}

func TestMergeAllEmptyIsNotFound(t *testing.T) {
	r := reconcile.New()

	tests := []struct {
		name     string
		outcomes []sources.Outcome
	}{
		{"no outcomes", nil},
		{"all empty", []sources.Outcome{
			{Source: "gbif"},
			{Source: "inat"},
		}},
		{"all errored", []sources.Outcome{
			{Source: "gbif", Err: errors.NewAPIError("gbif", 503, "down")},
			{Source: "inat", Err: errors.NewTimeoutError("fetch", "15s", "inat")},
		}},
		{"empty partials", []sources.Outcome{
			outcome(&record.Partial{Source: "gbif"}),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := r.Merge(tt.outcomes)
			require.Error(t, err)
			assert.Nil(t, c)
			assert.True(t, errors.IsNotFound(err))
		})
	}
}

func TestMergePrecedence(t *testing.T) {
	r := reconcile.New()

	gbifPart := &record.Partial{
		Source:         "gbif",
		ScientificName: "Ailuropoda melanoleuca",
		Status:         "VULNERABLE",
	}
	inatPart := &record.Partial{
		Source:         "inat",
		CommonName:     "Giant Panda",
		ScientificName: "Ailuropoda melanoleuca (iNat)",
		Observations:   "1248",
	}

	c, err := r.Merge([]sources.Outcome{outcome(gbifPart), outcome(inatPart)})
	require.NoError(t, err)

	// gbif wins contested fields; inat fills the gaps.
	assert.Equal(t, "Ailuropoda melanoleuca", c.ScientificName)
	assert.Equal(t, "Giant Panda", c.CommonName)
	assert.Equal(t, "VULNERABLE", c.Status)
	assert.Equal(t, "1248", c.Observations)
	assert.Equal(t, []string{"gbif", "inat"}, c.Sources)
}

func TestMergeOrderIndependent(t *testing.T) {
	r := reconcile.New()

	gbifPart := &record.Partial{Source: "gbif", ScientificName: "A"}
	inatPart := &record.Partial{Source: "inat", ScientificName: "B", CommonName: "panda"}
	unescoPart := &record.Partial{Source: "unesco", Description: "heritage text"}

	forward, err := r.Merge([]sources.Outcome{outcome(gbifPart), outcome(inatPart), outcome(unescoPart)})
	require.NoError(t, err)
	reversed, err := r.Merge([]sources.Outcome{outcome(unescoPart), outcome(inatPart), outcome(gbifPart)})
	require.NoError(t, err)

	assert.Equal(t, forward, reversed)
	assert.Equal(t, "A", forward.ScientificName)
}

func TestMergeListsWinWholesale(t *testing.T) {
	r := reconcile.New()

	inatPart := &record.Partial{
		Source: "inat",
		Photos: []string{"https://inat.example/1.jpg"},
	}
	unescoPart := &record.Partial{
		Source:       "unesco",
		Distribution: []string{"China", "Japan"},
		Photos:       []string{"https://unesco.example/a.jpg", "https://unesco.example/b.jpg"},
	}

	c, err := r.Merge([]sources.Outcome{outcome(unescoPart), outcome(inatPart)})
	require.NoError(t, err)

	// inat outranks unesco, so its photo list wins outright — no mixing.
	assert.Equal(t, []string{"https://inat.example/1.jpg"}, c.Photos)
	assert.Equal(t, []string{"China", "Japan"}, c.Distribution)
}

func TestMergeFillsUnknowns(t *testing.T) {
	r := reconcile.New()

	c, err := r.Merge([]sources.Outcome{
		outcome(&record.Partial{Source: "gbif", ScientificName: "Lynx lynx"}),
	})
	require.NoError(t, err)

	assert.Equal(t, record.Unknown, c.CommonName)
	assert.Equal(t, record.Unknown, c.Status)
	assert.Equal(t, record.Unknown, c.Habitat)
	assert.Equal(t, record.Unknown, c.Behavior)
	assert.Equal(t, record.Unknown, c.Observations)
	assert.Equal(t, record.Unknown, c.Description)
	require.NotNil(t, c.Ranks)
	require.NotNil(t, c.Distribution)
	require.NotNil(t, c.Photos)
	assert.Empty(t, c.Ranks)
}

func TestMergeSingleFailingSourceDegrades(t *testing.T) {
	r := reconcile.New()

	c, err := r.Merge([]sources.Outcome{
		{Source: "gbif", Err: errors.NewAPIError("gbif", 503, "down")},
		outcome(&record.Partial{Source: "inat", CommonName: "Giant Panda"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "Giant Panda", c.CommonName)
	assert.Equal(t, []string{"inat"}, c.Sources)
}

func TestMergeDoesNotAliasInputLists(t *testing.T) {
	r := reconcile.New()

	photos := []string{"https://inat.example/1.jpg"}
	c, err := r.Merge([]sources.Outcome{
		outcome(&record.Partial{Source: "inat", Photos: photos}),
	})
	require.NoError(t, err)

	photos[0] = "mutated"
	assert.Equal(t, "https://inat.example/1.jpg", c.Photos[0])
}

func TestMergeCustomPriority(t *testing.T) {
	r := reconcile.New("unesco", "gbif")

	c, err := r.Merge([]sources.Outcome{
		outcome(&record.Partial{Source: "gbif", CommonName: "from gbif"}),
		outcome(&record.Partial{Source: "unesco", CommonName: "from unesco"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "from unesco", c.CommonName)
}
