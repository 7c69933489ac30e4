package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suggestCatalog(t *testing.T) *Catalog {
	t.Helper()
	fsys := fstest.MapFS{
		"UB.json": &fstest.MapFile{Data: []byte(`{
			"457x191x67": {"h": 453.4},
			"457x191x74": {"h": 457.0},
			"457x191x82": {"h": 460.0},
			"610x229x101": {"h": 602.6}
		}`)},
		"PFC.json": &fstest.MapFile{Data: []byte(`{
			"430x100x64": {"h": 430.0}
		}`)},
	}
	return Load(NewDirSource(fsys, []SectionType{"UB", "PFC"}, 'x'))
}

func TestSuggest(t *testing.T) {
	cat := suggestCatalog(t)

	t.Run("near miss ranks closest first", func(t *testing.T) {
		got := cat.Suggest("457x191x68", "UB", 5)
		require.NotEmpty(t, got)
		assert.Equal(t, "457x191x67", got[0])
		assert.NotContains(t, got, "610x229x101")
	})

	t.Run("limit caps the result", func(t *testing.T) {
		got := cat.Suggest("457x191x00", "UB", 2)
		assert.LessOrEqual(t, len(got), 2)
	})

	t.Run("nothing similar", func(t *testing.T) {
		assert.Empty(t, cat.Suggest("ZZZZ", "UB", 5))
	})

	t.Run("zero limit", func(t *testing.T) {
		assert.Nil(t, cat.Suggest("457x191x67", "UB", 0))
	})

	t.Run("ties keep catalog order", func(t *testing.T) {
		// All three 457x191 candidates are two edits from the query and
		// score identically; equal scores must not reorder.
		got := cat.Suggest("457x191x", "UB", 5)
		require.Len(t, got, 3)
		assert.Equal(t, []string{"457x191x67", "457x191x74", "457x191x82"}, got)
	})
}

func TestSuggestAcrossTypes(t *testing.T) {
	cat := suggestCatalog(t)

	got := cat.SuggestAcrossTypes("430x100x63", 3)
	require.NotEmpty(t, got)
	assert.Equal(t, "430x100x64", got[0])
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("457x191x67", "457x191x67"))
	assert.Equal(t, 0.0, similarity("", "457x191x67"))
	assert.InDelta(t, 0.9, similarity("457x191x67", "457x191x68"), 0.001)
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"457x191x67", "457x191x67", 0},
		{"457x191x67", "457x191x74", 2},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}
