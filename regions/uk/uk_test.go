package uk

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/steelcat"
	"github.com/hupe1980/steelcat/catalog"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"UB.json": &fstest.MapFile{Data: []byte(`{
			"457x191x67": {"mass_per_metre": 67.1, "h": 453.4, "b": 189.9, "tw": 8.5, "tf": 12.7, "serial_size": "457x191", "I_yy": 29380.0, "I_t": 37.1},
			"457x191x74": {"mass_per_metre": 74.3, "h": 457.0, "b": 190.4, "tw": 9.0, "tf": 14.5, "serial_size": "457x191"}
		}`)},
		"UC.json": &fstest.MapFile{Data: []byte(`{
			"305x305x97": {"mass_per_metre": 96.9, "h": 307.9, "b": 305.3, "is_additional": false}
		}`)},
		"PFC.json": &fstest.MapFile{Data: []byte(`{
			"430x100x64": {"mass_per_metre": 64.4, "h": 430.0, "c_y": 2.62}
		}`)},
		"WELDS.json": &fstest.MapFile{Data: []byte(`{
			"BUTT_WELD_6": {"weld_type": "butt", "size": 6.0}
		}`)},
	}
}

func testUKFactory(t *testing.T) *steelcat.Factory {
	t.Helper()
	return NewFactory(catalog.Load(NewSource(testFS())))
}

func TestSupportedTypes(t *testing.T) {
	types := SupportedTypes()
	assert.Len(t, types, 18)
	assert.Equal(t, UB, types[0])
	assert.Contains(t, types, Welds)
	assert.Contains(t, types, LEqualB2B)
}

func TestNewSource(t *testing.T) {
	src := NewSource(testFS())
	assert.Equal(t, byte('x'), src.Separator())
	assert.Equal(t, SupportedTypes(), src.SupportedTypes())
}

func TestFactory_TypedSections(t *testing.T) {
	f := testUKFactory(t)

	t.Run("universal beam", func(t *testing.T) {
		section, err := f.Create("457x191x67", UB)
		require.NoError(t, err)

		beam, ok := section.(*UniversalBeam)
		require.True(t, ok)
		assert.Equal(t, UB, beam.SectionType())
		assert.Equal(t, "457x191x67", beam.Designation())
		assert.Equal(t, 67.1, beam.MassPerMetre)
		assert.Equal(t, 453.4, beam.H)
		assert.Equal(t, "457x191", beam.SerialSize)
		assert.Equal(t, 29380.0, beam.Iyy)
		assert.Equal(t, 37.1, beam.TorsionConstant)
	})

	t.Run("universal column", func(t *testing.T) {
		section, err := f.Create("305x305x97", UC)
		require.NoError(t, err)

		col, ok := section.(*UniversalColumn)
		require.True(t, ok)
		assert.Equal(t, 96.9, col.MassPerMetre)
		assert.False(t, col.IsAdditional)
	})

	t.Run("parallel flange channel", func(t *testing.T) {
		section, err := f.Create("430x100x64", PFC)
		require.NoError(t, err)

		channel, ok := section.(*ParallelFlangeChannel)
		require.True(t, ok)
		assert.Equal(t, 2.62, channel.ShearCentre)
	})

	t.Run("weld binds lazily", func(t *testing.T) {
		section, err := f.Create("BUTT_WELD_6", Welds)
		require.NoError(t, err)

		weld, ok := section.(*WeldSpecification)
		require.True(t, ok)
		assert.Equal(t, "butt", weld.WeldType)
		assert.Equal(t, 6.0, weld.Size)
	})
}

func TestFactory_UntypedResolution(t *testing.T) {
	f := testUKFactory(t)

	t.Run("case-insensitive designation", func(t *testing.T) {
		section, err := f.Create("457X191X67")
		require.NoError(t, err)
		assert.Equal(t, UB, section.SectionType())
		assert.Equal(t, "457x191x67", section.Designation())
	})

	t.Run("weld by lower-case key", func(t *testing.T) {
		section, err := f.Create("butt_weld_6")
		require.NoError(t, err)
		assert.Equal(t, Welds, section.SectionType())
		assert.Equal(t, "BUTT_WELD_6", section.Designation())
	})

	t.Run("unknown designation", func(t *testing.T) {
		_, err := f.Create("999x999x999")
		var nfe *steelcat.NotFoundError
		require.ErrorAs(t, err, &nfe)
	})
}

func TestFactory_RegisteredTypes(t *testing.T) {
	f := testUKFactory(t)
	assert.Equal(t, []catalog.SectionType{PFC, UB, UC, Welds}, f.RegisteredTypes())
}

func TestDefault(t *testing.T) {
	t.Cleanup(func() {
		SetDataFS(nil)
		ResetDefault()
	})

	SetDataFS(testFS())
	ResetDefault()

	f := Default()
	require.NotNil(t, f)

	// Double-checked init: the same instance comes back.
	assert.Same(t, f, Default())

	section, err := f.Create("457x191x67", UB)
	require.NoError(t, err)
	assert.Equal(t, "457x191x67", section.Designation())

	// Reset forces a rebuild.
	ResetDefault()
	assert.NotSame(t, f, Default())
}
