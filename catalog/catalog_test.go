package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/steelcat/property"
	"github.com/hupe1980/steelcat/query"
)

func testSource(t *testing.T) Source {
	t.Helper()
	fsys := fstest.MapFS{
		"UB.json": &fstest.MapFile{Data: []byte(`{
			"457x191x67": {"mass_per_metre": 67.1, "h": 453.4, "serial_size": "457x191"},
			"457x191x74": {"mass_per_metre": 74.3, "h": 457.0, "serial_size": "457x191"},
			"533x210x92": {"mass_per_metre": 92.1, "h": 533.1, "serial_size": "533x210"}
		}`)},
		"PFC.json": &fstest.MapFile{Data: []byte(`{
			"430x100x64": {"mass_per_metre": 64.4, "h": 430.0},
			"380x100x54": {"mass_per_metre": 54.0, "h": 380.0}
		}`)},
		"WELDS.json": &fstest.MapFile{Data: []byte(`{
			"BUTT_WELD_6": {"weld_type": "butt", "size": 6.0}
		}`)},
		"UC.json": &fstest.MapFile{Data: []byte(`{}`)},
		// No CFCHS.json on purpose: the type stays unloaded.
	}
	return NewDirSource(fsys, []SectionType{"UB", "UC", "PFC", "CFCHS", "WELDS"}, 'x')
}

func TestLoad(t *testing.T) {
	cat := Load(testSource(t))

	t.Run("get by type and designation", func(t *testing.T) {
		rec, ok := cat.Get("UB", "457x191x67")
		require.True(t, ok)

		mass, ok := rec.Float("mass_per_metre")
		require.True(t, ok)
		assert.Equal(t, 67.1, mass)
	})

	t.Run("records carry the owning type annotation", func(t *testing.T) {
		rec, ok := cat.Get("PFC", "430x100x64")
		require.True(t, ok)

		st, ok := rec.SectionType()
		require.True(t, ok)
		assert.Equal(t, "PFC", st)
	})

	t.Run("list preserves source order", func(t *testing.T) {
		assert.Equal(t, []string{"457x191x67", "457x191x74", "533x210x92"}, cat.List("UB"))
	})

	t.Run("missing resource means unloaded", func(t *testing.T) {
		assert.False(t, cat.Loaded("CFCHS"))
		assert.Nil(t, cat.List("CFCHS"))
	})

	t.Run("empty resource is loaded but not available", func(t *testing.T) {
		assert.True(t, cat.Loaded("UC"))
		assert.NotContains(t, cat.AvailableTypes(), SectionType("UC"))
	})

	t.Run("available types keep supported order", func(t *testing.T) {
		assert.Equal(t, []SectionType{"UB", "PFC", "WELDS"}, cat.AvailableTypes())
	})
}

func TestLoad_MalformedResource(t *testing.T) {
	fsys := fstest.MapFS{
		"UB.json":  &fstest.MapFile{Data: []byte(`{"457x191x67": {"h": 453.4}}`)},
		"PFC.json": &fstest.MapFile{Data: []byte(`[not json`)},
	}
	cat := Load(NewDirSource(fsys, []SectionType{"UB", "PFC"}, 'x'))

	// The broken type loads empty; the good type is unaffected.
	assert.True(t, cat.Loaded("PFC"))
	assert.Empty(t, cat.List("PFC"))

	_, ok := cat.Get("UB", "457x191x67")
	assert.True(t, ok)
}

func TestCatalog_Find(t *testing.T) {
	cat := Load(testSource(t))

	t.Run("exact hit returns the query verbatim", func(t *testing.T) {
		st, resolved, _, ok := cat.Find("457x191x67")
		require.True(t, ok)
		assert.Equal(t, SectionType("UB"), st)
		assert.Equal(t, "457x191x67", resolved)
	})

	t.Run("case fold", func(t *testing.T) {
		st, resolved, _, ok := cat.Find("457X191X67")
		require.True(t, ok)
		assert.Equal(t, SectionType("UB"), st)
		assert.Equal(t, "457x191x67", resolved)
	})

	t.Run("whitespace stripped", func(t *testing.T) {
		_, resolved, _, ok := cat.Find("  457 x 191 x 67 ")
		require.True(t, ok)
		assert.Equal(t, "457x191x67", resolved)
	})

	t.Run("separator stripped when both sides carry it", func(t *testing.T) {
		// Query has one 'x' missing; both sides still contain 'x'.
		_, resolved, _, ok := cat.Find("457191x67")
		require.True(t, ok)
		assert.Equal(t, "457x191x67", resolved)
	})

	t.Run("separator-free query never matches by stripping", func(t *testing.T) {
		_, _, _, ok := cat.Find("45719167")
		assert.False(t, ok)
	})

	t.Run("upper-case weld designation folds", func(t *testing.T) {
		st, resolved, _, ok := cat.Find("butt_weld_6")
		require.True(t, ok)
		assert.Equal(t, SectionType("WELDS"), st)
		assert.Equal(t, "BUTT_WELD_6", resolved)
	})

	t.Run("miss", func(t *testing.T) {
		_, _, _, ok := cat.Find("999x999x999")
		assert.False(t, ok)
	})
}

// The chain stops at the first step that matches: a candidate differing only
// by case beats one that would need separator stripping, regardless of
// catalog position.
func TestCatalog_FindChainOrder(t *testing.T) {
	fsys := fstest.MapFS{
		"UB.json": &fstest.MapFile{Data: []byte(`{
			"100x100x10x": {"h": 1.0},
			"100X100X10":  {"h": 2.0}
		}`)},
	}
	cat := Load(NewDirSource(fsys, []SectionType{"UB"}, 'x'))

	// Exact miss; case fold resolves to the second entry even though the
	// first entry matches under separator stripping.
	_, resolved, rec, ok := cat.Find("100x100x10")
	require.True(t, ok)
	assert.Equal(t, "100X100X10", resolved)

	h, _ := rec.Float("h")
	assert.Equal(t, 2.0, h)
}

func TestCatalog_FindInType(t *testing.T) {
	cat := Load(testSource(t))

	t.Run("exact", func(t *testing.T) {
		resolved, _, ok := cat.FindInType("UB", "457x191x67")
		require.True(t, ok)
		assert.Equal(t, "457x191x67", resolved)
	})

	t.Run("fuzzy restricted to the type", func(t *testing.T) {
		resolved, rec, ok := cat.FindInType("UB", "457X191X67")
		require.True(t, ok)
		assert.Equal(t, "457x191x67", resolved)

		mass, _ := rec.Float("mass_per_metre")
		assert.Equal(t, 67.1, mass)
	})

	t.Run("never crosses into other types", func(t *testing.T) {
		_, _, ok := cat.FindInType("UB", "430X100X64")
		assert.False(t, ok)
	})

	t.Run("unloaded type", func(t *testing.T) {
		_, _, ok := cat.FindInType("CFCHS", "457x191x67")
		assert.False(t, ok)
	})
}

func TestCatalog_FindExact(t *testing.T) {
	cat := Load(testSource(t))

	st, ok := cat.FindExact("430x100x64")
	require.True(t, ok)
	assert.Equal(t, SectionType("PFC"), st)

	// FindExact never normalizes.
	_, ok = cat.FindExact("430X100X64")
	assert.False(t, ok)
}

func TestCatalog_Search(t *testing.T) {
	cat := Load(testSource(t))

	matches := cat.Search("UB", query.Criteria{"mass_per_metre__gt": 70})
	require.Len(t, matches, 2)
	assert.Equal(t, "457x191x74", matches[0].Designation)
	assert.Equal(t, "533x210x92", matches[1].Designation)

	t.Run("unloaded type yields nothing", func(t *testing.T) {
		assert.Nil(t, cat.Search("CFCHS", query.Criteria{}))
	})

	t.Run("columnar engine agrees", func(t *testing.T) {
		columnar := Load(testSource(t), WithEngine(query.NewColumnarEngine()))
		assert.Equal(t,
			designationsOf(cat.Search("UB", query.Criteria{"h__lte": 457})),
			designationsOf(columnar.Search("UB", query.Criteria{"h__lte": 457})),
		)
	})
}

func designationsOf(matches []query.Match) []string {
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Designation
	}
	return out
}

func TestCatalog_Reload(t *testing.T) {
	cat := Load(testSource(t))

	fresh := cat.Reload()
	require.NotSame(t, cat, fresh)
	assert.Equal(t, cat.List("UB"), fresh.List("UB"))

	t.Run("rebuilt catalog reloads to itself", func(t *testing.T) {
		rebuilt := Rebuild(
			[]SectionType{"UB"}, 'x',
			map[SectionType]*RecordSet{
				"UB": NewRecordSet(
					[]string{"457x191x67"},
					map[string]property.Record{"457x191x67": {"h": property.Float(453.4)}},
				),
			},
		)
		assert.Same(t, rebuilt, rebuilt.Reload())
	})
}

func TestNewRecordSet_DropsOrphans(t *testing.T) {
	rs := NewRecordSet(
		[]string{"a", "b"},
		map[string]property.Record{"a": {"h": property.Float(1)}},
	)
	assert.Equal(t, 1, rs.Len())
	assert.Equal(t, []string{"a"}, rs.Designations())
}
