// Package uk provides the UK region: its section-type universe, a data
// source over the published UK steel tables, typed sections for the common
// profiles, and a pre-wired factory.
package uk

import (
	"io/fs"
	"os"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/steelcat"
	"github.com/hupe1980/steelcat/catalog"
)

// Separator is the designation separator of the UK grammar ("457x191x67").
const Separator byte = 'x'

// UK section type tags.
const (
	UB  catalog.SectionType = "UB"  // Universal Beam
	UC  catalog.SectionType = "UC"  // Universal Column
	UBP catalog.SectionType = "UBP" // Universal Bearing Pile

	PFC catalog.SectionType = "PFC" // Parallel Flange Channel

	LEqual      catalog.SectionType = "L_EQUAL"
	LUnequal    catalog.SectionType = "L_UNEQUAL"
	LEqualB2B   catalog.SectionType = "L_EQUAL_B2B"
	LUnequalB2B catalog.SectionType = "L_UNEQUAL_B2B"

	HFCHS catalog.SectionType = "HFCHS" // Hot Finished Circular Hollow Section
	HFRHS catalog.SectionType = "HFRHS" // Hot Finished Rectangular Hollow Section
	HFSHS catalog.SectionType = "HFSHS" // Hot Finished Square Hollow Section
	HFEHS catalog.SectionType = "HFEHS" // Hot Finished Elliptical Hollow Section

	CFCHS catalog.SectionType = "CFCHS" // Cold Formed Circular Hollow Section
	CFRHS catalog.SectionType = "CFRHS" // Cold Formed Rectangular Hollow Section
	CFSHS catalog.SectionType = "CFSHS" // Cold Formed Square Hollow Section

	Welds      catalog.SectionType = "WELDS"
	BoltPre88  catalog.SectionType = "BOLT_PRE_88"
	BoltPre109 catalog.SectionType = "BOLT_PRE_109"
)

// SupportedTypes returns the UK section types in canonical order. Catalog
// iteration and cross-type resolution follow this order.
func SupportedTypes() []catalog.SectionType {
	return []catalog.SectionType{
		UB, UC, UBP,
		PFC,
		LEqual, LUnequal, LEqualB2B, LUnequalB2B,
		HFCHS, HFRHS, HFSHS, HFEHS,
		CFCHS, CFRHS, CFSHS,
		Welds, BoltPre88, BoltPre109,
	}
}

// NewSource creates a UK data source over a file system holding one
// "<TYPE>.json" resource per section type. Types without a resource stay
// unloaded.
func NewSource(fsys fs.FS) catalog.Source {
	return catalog.NewDirSource(fsys, SupportedTypes(), Separator)
}

// NewFactory creates a factory over a loaded UK catalog with the typed
// constructors registered. Weld specifications bind lazily so the common
// beam/column path never pays for them.
func NewFactory(cat *catalog.Catalog, optFns ...steelcat.Option) *steelcat.Factory {
	f := steelcat.NewFactory(cat, optFns...)

	f.Register(UB, newUniversalBeam)
	f.Register(UC, newUniversalColumn)
	f.Register(PFC, newParallelFlangeChannel)
	f.RegisterDeferred(Welds, func() (steelcat.Constructor, error) {
		return newWeldSpecification, nil
	})

	return f
}

// defaultDataDir is where the UK tables live when no file system is injected.
const defaultDataDir = "data/UK"

var (
	defaultFactory atomic.Pointer[steelcat.Factory]
	defaultMu      sync.Mutex
	defaultFS      fs.FS
)

// SetDataFS overrides the file system the default factory loads from. It
// only affects a default factory that has not been built yet.
func SetDataFS(fsys fs.FS) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultFS = fsys
}

// Default returns the shared UK factory, building it on first use. The fast
// path is a single atomic load; construction is serialized so the catalog is
// only loaded once.
func Default() *steelcat.Factory {
	if f := defaultFactory.Load(); f != nil {
		return f
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if f := defaultFactory.Load(); f != nil {
		return f
	}

	fsys := defaultFS
	if fsys == nil {
		fsys = os.DirFS(defaultDataDir)
	}
	f := NewFactory(catalog.Load(NewSource(fsys)))
	defaultFactory.Store(f)
	return f
}

// ResetDefault clears the shared factory so the next Default rebuilds it.
// Use after SetDataFS or when the underlying tables changed on disk.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultFactory.Store(nil)
}
