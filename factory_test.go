package steelcat

import (
	"errors"
	"fmt"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/steelcat/catalog"
	"github.com/hupe1980/steelcat/property"
)

// plainSection is a minimal Section for factory tests.
type plainSection struct {
	st          catalog.SectionType
	designation string
	props       property.Record
}

func (s *plainSection) SectionType() catalog.SectionType { return s.st }
func (s *plainSection) Designation() string              { return s.designation }
func (s *plainSection) Properties() property.Record      { return s.props }

func ctorFor(st catalog.SectionType) Constructor {
	return func(designation string, rec property.Record) (Section, error) {
		return &plainSection{st: st, designation: designation, props: rec}, nil
	}
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	fsys := fstest.MapFS{
		"UB.json": &fstest.MapFile{Data: []byte(`{
			"457x191x67": {"mass_per_metre": 67.1, "h": 453.4},
			"457x191x74": {"mass_per_metre": 74.3, "h": 457.0},
			"533x210x92": {"mass_per_metre": 92.1, "h": 533.1}
		}`)},
		"PFC.json": &fstest.MapFile{Data: []byte(`{
			"430x100x64": {"mass_per_metre": 64.4}
		}`)},
		"WELDS.json": &fstest.MapFile{Data: []byte(`{
			"BUTT_WELD_6": {"weld_type": "butt", "size": 6.0}
		}`)},
	}
	return catalog.Load(catalog.NewDirSource(fsys, []catalog.SectionType{"UB", "PFC", "WELDS"}, 'x'))
}

func testFactory(t *testing.T) *Factory {
	t.Helper()
	f := NewFactory(testCatalog(t))
	f.Register("UB", ctorFor("UB"))
	f.Register("PFC", ctorFor("PFC"))
	return f
}

func TestFactory_CreateTyped(t *testing.T) {
	f := testFactory(t)

	t.Run("exact hit", func(t *testing.T) {
		section, err := f.Create("457x191x67", "UB")
		require.NoError(t, err)
		assert.Equal(t, catalog.SectionType("UB"), section.SectionType())
		assert.Equal(t, "457x191x67", section.Designation())

		mass, ok := section.Properties().Float("mass_per_metre")
		require.True(t, ok)
		assert.Equal(t, 67.1, mass)
	})

	t.Run("case-insensitive within the type", func(t *testing.T) {
		section, err := f.Create("457X191X67", "UB")
		require.NoError(t, err)
		assert.Equal(t, "457x191x67", section.Designation())

		mass, ok := section.Properties().Float("mass_per_metre")
		require.True(t, ok)
		assert.Equal(t, 67.1, mass)
	})

	t.Run("fuzzy never crosses into other types", func(t *testing.T) {
		// Case-folded, this designation exists under PFC only.
		_, err := f.Create("430X100X64", "UB")

		var nfe *NotFoundError
		require.ErrorAs(t, err, &nfe)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("miss carries typed suggestions", func(t *testing.T) {
		_, err := f.Create("457x191x68", "UB")

		var nfe *NotFoundError
		require.ErrorAs(t, err, &nfe)
		assert.Equal(t, catalog.SectionType("UB"), nfe.SectionType)
		require.NotEmpty(t, nfe.Suggestions)
		assert.Equal(t, "457x191x67", nfe.Suggestions[0])
		assert.LessOrEqual(t, len(nfe.Suggestions), 5)
		assert.Contains(t, err.Error(), "Try: '457x191x67'")
	})

	t.Run("cross-type note for verbatim hit under another type", func(t *testing.T) {
		_, err := f.Create("430x100x64", "UB")

		var nfe *NotFoundError
		require.ErrorAs(t, err, &nfe)
		assert.Equal(t, catalog.SectionType("PFC"), nfe.CrossType)
		assert.Contains(t, err.Error(), `exists under type "PFC"`)
	})

	t.Run("no suggestions reports the type size", func(t *testing.T) {
		_, err := f.Create("ZZZZZZZZ", "UB")

		var nfe *NotFoundError
		require.ErrorAs(t, err, &nfe)
		assert.Empty(t, nfe.Suggestions)
		assert.Equal(t, 3, nfe.AvailableCount)
		assert.Contains(t, err.Error(), "Available sections: 3")
	})
}

func TestFactory_CreateUntyped(t *testing.T) {
	f := testFactory(t)

	t.Run("exact across types", func(t *testing.T) {
		section, err := f.Create("430x100x64")
		require.NoError(t, err)
		assert.Equal(t, catalog.SectionType("PFC"), section.SectionType())
	})

	t.Run("fuzzy resolution backfills the resolved designation", func(t *testing.T) {
		section, err := f.Create("457X191X67")
		require.NoError(t, err)
		assert.Equal(t, "457x191x67", section.Designation())

		d, ok := section.Properties().String(property.KeyDesignation)
		require.True(t, ok)
		assert.Equal(t, "457x191x67", d)
	})

	t.Run("miss lists available types", func(t *testing.T) {
		_, err := f.Create("ZZZZZZZZ")

		var nfe *NotFoundError
		require.ErrorAs(t, err, &nfe)
		assert.LessOrEqual(t, len(nfe.Suggestions), 3)
		assert.Equal(t, []catalog.SectionType{"UB", "PFC", "WELDS"}, nfe.AvailableTypes)
	})
}

func TestFactory_CleansReservedKeys(t *testing.T) {
	f := testFactory(t)

	section, err := f.Create("457x191x67", "UB")
	require.NoError(t, err)

	_, ok := section.Properties()[property.KeySectionType]
	assert.False(t, ok)
}

func TestFactory_TypeNotRegistered(t *testing.T) {
	f := testFactory(t)

	// WELDS resolves in the catalog but has no constructor.
	_, err := f.Create("BUTT_WELD_6", "WELDS")

	var tnr *TypeNotRegisteredError
	require.ErrorAs(t, err, &tnr)
	assert.True(t, errors.Is(err, ErrTypeNotRegistered))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, catalog.SectionType("WELDS"), tnr.SectionType)
	assert.Equal(t, []catalog.SectionType{"PFC", "UB"}, tnr.Registered)
}

func TestFactory_DeferredConstructor(t *testing.T) {
	t.Run("resolved once on first use", func(t *testing.T) {
		f := NewFactory(testCatalog(t))

		var calls int
		f.RegisterDeferred("WELDS", func() (Constructor, error) {
			calls++
			return ctorFor("WELDS"), nil
		})

		section, err := f.Create("BUTT_WELD_6", "WELDS")
		require.NoError(t, err)
		assert.Equal(t, "BUTT_WELD_6", section.Designation())

		_, err = f.Create("BUTT_WELD_6", "WELDS")
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("resolution failure is a registration error", func(t *testing.T) {
		f := NewFactory(testCatalog(t))
		f.RegisterDeferred("WELDS", func() (Constructor, error) {
			return nil, fmt.Errorf("weld tables unavailable")
		})

		_, err := f.Create("BUTT_WELD_6", "WELDS")

		var tnr *TypeNotRegisteredError
		require.ErrorAs(t, err, &tnr)
		assert.Contains(t, err.Error(), "weld tables unavailable")
	})
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register("UB", ctorFor("UB"))

	assert.Panics(t, func() { r.Register("UB", ctorFor("UB")) })
	assert.Panics(t, func() { r.RegisterDeferred("UB", func() (Constructor, error) { return nil, nil }) })
	assert.Panics(t, func() { r.Register("UC", nil) })
}

func TestRegistry_Resolve(t *testing.T) {
	r := NewRegistry()
	r.Register("UB", ctorFor("UB"))

	_, ok, err := r.Resolve("UC")
	require.NoError(t, err)
	assert.False(t, ok)

	ctor, ok, err := r.Resolve("UB")
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotNil(t, ctor)
}

func TestDefaultFactory(t *testing.T) {
	prev := DefaultFactory()
	t.Cleanup(func() { SetDefaultFactory(prev) })

	f := testFactory(t)
	SetDefaultFactory(f)
	assert.Same(t, f, DefaultFactory())
}

func TestNotFoundError_Message(t *testing.T) {
	t.Run("typed with suggestions", func(t *testing.T) {
		err := &NotFoundError{
			Designation: "457x191x68",
			SectionType: "UB",
			Suggestions: []string{"457x191x67", "457x191x74"},
		}
		assert.Equal(t,
			`section "457x191x68" of type "UB" not found. Try: '457x191x67', '457x191x74'?`,
			err.Error(),
		)
	})

	t.Run("untyped without suggestions", func(t *testing.T) {
		err := &NotFoundError{
			Designation:    "ZZZ",
			AvailableTypes: []catalog.SectionType{"UB", "PFC"},
		}
		assert.Equal(t,
			`section "ZZZ" not found in any type. Available types: [UB PFC]`,
			err.Error(),
		)
	})
}
