package catalog

import (
	"fmt"
	"io"
	"io/fs"
)

// SectionType identifies a section kind within a region (e.g. "UB", "PFC",
// "L_EQUAL"). The universe of types is fixed and enumerable per region.
type SectionType string

// String returns the type tag.
func (st SectionType) String() string { return string(st) }

// Source describes one region's section data. Implementations provide
// exactly three things: which types exist, how to open the resource backing
// each type, and the designation separator used by the region's grammar.
type Source interface {
	// SupportedTypes returns the region's section types in their canonical
	// order. Catalog iteration follows this order.
	SupportedTypes() []SectionType

	// Open opens the resource holding the record set for one type. A
	// missing resource is reported as fs.ErrNotExist and is not an error:
	// the type simply stays unloaded.
	Open(st SectionType) (io.ReadCloser, error)

	// Separator returns the designation separator character used by the
	// fuzzy resolution chain. One of 'x', '.' or '-'.
	Separator() byte
}

// DirSource is a Source over a file system with one JSON resource per
// section type, named "<TYPE>.json".
type DirSource struct {
	fsys  fs.FS
	types []SectionType
	sep   byte
}

// NewDirSource creates a source reading "<TYPE>.json" files from fsys.
func NewDirSource(fsys fs.FS, types []SectionType, sep byte) *DirSource {
	return &DirSource{fsys: fsys, types: types, sep: sep}
}

// SupportedTypes returns the configured section types.
func (s *DirSource) SupportedTypes() []SectionType { return s.types }

// Open opens "<TYPE>.json" from the underlying file system.
func (s *DirSource) Open(st SectionType) (io.ReadCloser, error) {
	f, err := s.fsys.Open(fmt.Sprintf("%s.json", st))
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Separator returns the configured designation separator.
func (s *DirSource) Separator() byte { return s.sep }
