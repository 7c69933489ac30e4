package steelcat

import "sync/atomic"

// Process-wide default factory handle. The handle is swappable: replacing it
// is a single pointer assignment, so readers never observe a partially-built
// factory (a reload builds a fresh catalog and factory, then swaps).
//
// Regions that want lazy construction of their default factory layer a
// double-checked initializer on top of this (see regions/uk).
var defaultFactory atomic.Pointer[Factory]

// SetDefaultFactory installs the process-wide default factory.
func SetDefaultFactory(f *Factory) {
	defaultFactory.Store(f)
}

// DefaultFactory returns the process-wide default factory, or nil when none
// has been installed.
func DefaultFactory() *Factory {
	return defaultFactory.Load()
}
