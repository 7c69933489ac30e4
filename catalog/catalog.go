package catalog

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	gojson "github.com/goccy/go-json"

	"github.com/hupe1980/steelcat/property"
	"github.com/hupe1980/steelcat/query"
)

// RecordSet holds one section type's records in source insertion order.
// It implements query.RecordSource and is immutable after load.
type RecordSet struct {
	order   []string
	records map[string]property.Record
}

func newRecordSet() *RecordSet {
	return &RecordSet{records: make(map[string]property.Record)}
}

func (rs *RecordSet) put(designation string, rec property.Record) {
	if _, exists := rs.records[designation]; !exists {
		rs.order = append(rs.order, designation)
	}
	rs.records[designation] = rec
}

// Len returns the number of records.
func (rs *RecordSet) Len() int { return len(rs.order) }

// Designations returns all designations in insertion order. The returned
// slice must not be modified.
func (rs *RecordSet) Designations() []string { return rs.order }

// Record returns the record for a designation.
func (rs *RecordSet) Record(designation string) (property.Record, bool) {
	rec, ok := rs.records[designation]
	return rec, ok
}

type options struct {
	logger *slog.Logger
	engine query.Engine
}

// Option configures catalog construction.
type Option func(*options)

// WithLogger configures the logger used to report load failures.
// If nil is passed, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
	}
}

// WithEngine configures the criteria search engine.
//
// The default is the row-scan engine. Pass query.NewColumnarEngine() for the
// column-oriented backend; both return identical results for any input.
func WithEngine(engine query.Engine) Option {
	return func(o *options) {
		if engine == nil {
			engine = query.NewScanEngine()
		}
		o.engine = engine
	}
}

// Catalog is the immutable in-memory record store for one region.
type Catalog struct {
	source    Source
	supported []SectionType
	sets      map[SectionType]*RecordSet
	sep       byte
	logger    *slog.Logger
	engine    query.Engine
}

// Load builds a catalog from a source. It never fails as a whole: a type
// whose resource is malformed is logged and loaded as an empty record set,
// and a type whose resource does not exist stays unloaded. The catalog is
// immutable afterwards.
func Load(source Source, optFns ...Option) *Catalog {
	opts := options{
		logger: slog.Default(),
		engine: query.NewScanEngine(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	c := &Catalog{
		source:    source,
		supported: source.SupportedTypes(),
		sets:      make(map[SectionType]*RecordSet),
		sep:       source.Separator(),
		logger:    opts.logger,
		engine:    opts.engine,
	}

	for _, st := range c.supported {
		rs, err := c.loadType(st)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// Absent resource: the type stays unloaded, which is
				// distinct from loaded-but-empty.
				c.logger.Debug("section resource absent", "type", st.String())
				continue
			}
			c.logger.Error("failed to load section type",
				"type", st.String(),
				"error", err,
			)
			c.sets[st] = newRecordSet()
			continue
		}
		c.sets[st] = rs
	}

	return c
}

// loadType reads and decodes one type's record set, annotating every record
// with its owning type so cross-type searches can report provenance.
func (c *Catalog) loadType(st SectionType) (*RecordSet, error) {
	r, err := c.source.Open(st)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	rs, err := decodeRecordSet(r)
	if err != nil {
		return nil, err
	}

	for _, designation := range rs.order {
		rs.records[designation][property.KeySectionType] = property.String(st.String())
	}

	return rs, nil
}

// decodeRecordSet decodes a {designation -> record} JSON object, preserving
// the order in which designations appear in the source.
func decodeRecordSet(r io.Reader) (*RecordSet, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decode record set: %w", err)
	}
	if delim, ok := tok.(gojson.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("record set must be a JSON object, got %v", tok)
	}

	rs := newRecordSet()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode record set key: %w", err)
		}
		designation, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("record set key must be a string, got %v", keyTok)
		}

		var raw map[string]any
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode record %q: %w", designation, err)
		}

		rec, err := property.RecordFromAny(raw)
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", designation, err)
		}

		rs.put(designation, rec)
	}

	return rs, nil
}

// Source returns the source the catalog was loaded from.
func (c *Catalog) Source() Source { return c.source }

// Separator returns the region's designation separator.
func (c *Catalog) Separator() byte { return c.sep }

// SupportedTypes returns all types the source declares, loaded or not.
func (c *Catalog) SupportedTypes() []SectionType { return c.supported }

// AvailableTypes returns only the types with at least one loaded record, in
// supported-type order. Types that are present but empty are excluded.
func (c *Catalog) AvailableTypes() []SectionType {
	var out []SectionType
	for _, st := range c.supported {
		if rs, ok := c.sets[st]; ok && rs.Len() > 0 {
			out = append(out, st)
		}
	}
	return out
}

// Loaded reports whether the type's resource was loaded at all. A type can
// be loaded and still empty; see AvailableTypes.
func (c *Catalog) Loaded(st SectionType) bool {
	_, ok := c.sets[st]
	return ok
}

// RecordSet returns the record set for one type, or nil when the type was
// never loaded.
func (c *Catalog) RecordSet(st SectionType) *RecordSet { return c.sets[st] }

// Get retrieves a record by designation and type. O(1).
func (c *Catalog) Get(st SectionType, designation string) (property.Record, bool) {
	rs, ok := c.sets[st]
	if !ok {
		return nil, false
	}
	return rs.Record(designation)
}

// List returns all designations for a type in catalog iteration order.
func (c *Catalog) List(st SectionType) []string {
	rs, ok := c.sets[st]
	if !ok {
		return nil
	}
	return rs.Designations()
}

// Find locates a designation across all types: exact match first in
// supported-type order, then the fuzzy normalization chain. It returns the
// resolved (stored) designation, which may differ from the query when the
// match was fuzzy.
func (c *Catalog) Find(designation string) (SectionType, string, property.Record, bool) {
	for _, st := range c.supported {
		if rec, ok := c.Get(st, designation); ok {
			return st, designation, rec, true
		}
	}
	return c.fuzzyFind(designation, c.AvailableTypes())
}

// FindInType locates a designation under one type: exact match first, then
// the fuzzy normalization chain restricted to that type's record set.
func (c *Catalog) FindInType(st SectionType, designation string) (string, property.Record, bool) {
	if rec, ok := c.Get(st, designation); ok {
		return designation, rec, true
	}
	if _, loaded := c.sets[st]; !loaded {
		return "", nil, false
	}
	_, resolved, rec, ok := c.fuzzyFind(designation, []SectionType{st})
	return resolved, rec, ok
}

// FindExact locates a designation verbatim across all types, without any
// normalization. Used to detect the wrong-type mistake: a valid key from one
// type used against another.
func (c *Catalog) FindExact(designation string) (SectionType, bool) {
	for _, st := range c.supported {
		if _, ok := c.Get(st, designation); ok {
			return st, true
		}
	}
	return "", false
}

// Search evaluates criteria against one type's records using the configured
// engine. Results are in catalog iteration order. An unloaded type yields no
// results.
func (c *Catalog) Search(st SectionType, criteria query.Criteria) []query.Match {
	rs, ok := c.sets[st]
	if !ok {
		return nil
	}
	return c.engine.Search(rs, criteria)
}

// Reload builds a fresh catalog from the same source with the same options.
// The receiver is left untouched; swap any shared handle atomically. A
// catalog restored from a snapshot has no source and reloads to itself.
func (c *Catalog) Reload() *Catalog {
	if c.source == nil {
		return c
	}
	return Load(c.source, WithLogger(c.logger), WithEngine(c.engine))
}

// NewRecordSet assembles a record set from a designation order and its
// records, for snapshot restore. Designations without a record are dropped.
func NewRecordSet(designations []string, records map[string]property.Record) *RecordSet {
	rs := newRecordSet()
	for _, d := range designations {
		if rec, ok := records[d]; ok {
			rs.put(d, rec)
		}
	}
	return rs
}

// Rebuild assembles a catalog from previously dumped state, bypassing any
// source. Used by snapshot restore; the result behaves exactly like a loaded
// catalog except that Reload is a no-op.
func Rebuild(supported []SectionType, sep byte, sets map[SectionType]*RecordSet, optFns ...Option) *Catalog {
	opts := options{
		logger: slog.Default(),
		engine: query.NewScanEngine(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Catalog{
		supported: supported,
		sets:      sets,
		sep:       sep,
		logger:    opts.logger,
		engine:    opts.engine,
	}
}
