package steelcat

import (
	"github.com/hupe1980/steelcat/catalog"
	"github.com/hupe1980/steelcat/property"
)

// Section is a typed section instance produced by the factory. The
// designation is always present, even when the source record omitted it.
type Section interface {
	// SectionType returns the section's type tag.
	SectionType() catalog.SectionType

	// Designation returns the section's natural key.
	Designation() string

	// Properties returns the section's full property record.
	Properties() property.Record
}

// Suggestion limits carried in NotFoundError messages: five when the caller
// named a type, three for catalog-wide lookups.
const (
	maxSuggestionsTyped = 5
	maxSuggestionsAny   = 3
)

// Factory resolves designations through a catalog and produces typed
// sections via registered constructors.
type Factory struct {
	catalog  *catalog.Catalog
	registry *Registry
	logger   *Logger
}

// NewFactory creates a factory over a loaded catalog.
func NewFactory(cat *catalog.Catalog, optFns ...Option) *Factory {
	opts := factoryOptions{
		logger:   NoopLogger(),
		registry: NewRegistry(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Factory{
		catalog:  cat,
		registry: opts.registry,
		logger:   opts.logger,
	}
}

// Catalog returns the backing catalog.
func (f *Factory) Catalog() *catalog.Catalog { return f.catalog }

// Register binds a constructor to a section type. Registering the same type
// twice panics.
func (f *Factory) Register(st catalog.SectionType, ctor Constructor) {
	f.registry.Register(st, ctor)
}

// RegisterDeferred binds a constructor lazily, resolved on first use.
func (f *Factory) RegisterDeferred(st catalog.SectionType, deferred DeferredConstructor) {
	f.registry.RegisterDeferred(st, deferred)
}

// RegisteredTypes returns all bound section types.
func (f *Factory) RegisteredTypes() []catalog.SectionType {
	return f.registry.RegisteredTypes()
}

// Create resolves a designation and produces a typed section.
//
// With a section type, exact lookup runs first, then the fuzzy normalization
// chain restricted to that type; a miss yields a NotFoundError carrying up to
// five suggestions from that type and, when the raw designation exists
// verbatim under a different type, a note naming it.
//
// Without a type, exact lookup runs across all types first, then the fuzzy
// normalization chain; a miss yields a NotFoundError with up to three
// cross-type suggestions and the list of available types.
//
// On a hit the record is cleaned of reserved metadata, the designation
// property is back-filled with the RESOLVED designation when absent, and the
// bound constructor runs. A resolvable record whose type has no constructor
// is a TypeNotRegisteredError, deliberately distinct from NotFoundError.
func (f *Factory) Create(designation string, sectionType ...catalog.SectionType) (Section, error) {
	var (
		st       catalog.SectionType
		resolved string
		rec      property.Record
	)

	if len(sectionType) > 0 && sectionType[0] != "" {
		st = sectionType[0]

		foundDesignation, found, ok := f.catalog.FindInType(st, designation)
		if !ok {
			err := f.notFoundTyped(designation, st)
			f.logger.LogCreate(designation, string(st), err)
			return nil, err
		}
		resolved, rec = foundDesignation, found
	} else {
		foundType, foundDesignation, found, ok := f.catalog.Find(designation)
		if !ok {
			err := &NotFoundError{
				Designation:    designation,
				Suggestions:    f.catalog.SuggestAcrossTypes(designation, maxSuggestionsAny),
				AvailableTypes: f.catalog.AvailableTypes(),
			}
			f.logger.LogCreate(designation, "", err)
			return nil, err
		}
		st, resolved, rec = foundType, foundDesignation, found
	}

	ctor, ok, err := f.registry.Resolve(st)
	if !ok || err != nil {
		terr := &TypeNotRegisteredError{
			SectionType: st,
			Registered:  f.registry.RegisteredTypes(),
			cause:       err,
		}
		f.logger.LogCreate(designation, string(st), terr)
		return nil, terr
	}

	clean := rec.Clean()
	if _, present := clean[property.KeyDesignation]; !present {
		clean[property.KeyDesignation] = property.String(resolved)
	}

	section, err := ctor(resolved, clean)
	f.logger.LogCreate(resolved, string(st), err)
	return section, err
}

// notFoundTyped assembles the typed-lookup failure with suggestions limited
// to the requested type plus the cross-type note.
func (f *Factory) notFoundTyped(designation string, st catalog.SectionType) *NotFoundError {
	nfe := &NotFoundError{
		Designation:    designation,
		SectionType:    st,
		Suggestions:    f.catalog.Suggest(designation, st, maxSuggestionsTyped),
		AvailableCount: len(f.catalog.List(st)),
	}
	if other, ok := f.catalog.FindExact(designation); ok && other != st {
		nfe.CrossType = other
	}
	return nfe
}
