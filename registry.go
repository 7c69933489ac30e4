package steelcat

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/steelcat/catalog"
	"github.com/hupe1980/steelcat/property"
)

// Constructor builds a typed section from a cleaned record. The record has
// all reserved metadata stripped and is guaranteed to carry a designation
// property equal to the resolved designation.
type Constructor func(designation string, rec property.Record) (Section, error)

// DeferredConstructor postpones constructor creation until first use.
// Regions use this to avoid paying setup cost for section types that are
// never instantiated.
type DeferredConstructor func() (Constructor, error)

// binding is either bound (ctor set) or deferred (deferred set, resolved and
// cached on first use). Exactly one of the two is set at registration time.
type binding struct {
	ctor     Constructor
	deferred DeferredConstructor
}

// Registry binds section types to constructors.
//
// Registering the same type twice is programmer error and panics; everything
// else reports through error returns.
type Registry struct {
	mu       sync.Mutex
	bindings map[catalog.SectionType]*binding
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bindings: make(map[catalog.SectionType]*binding)}
}

// Register binds a constructor to a section type immediately.
func (r *Registry) Register(st catalog.SectionType, ctor Constructor) {
	if ctor == nil {
		panic(fmt.Sprintf("steelcat: nil constructor for section type %q", string(st)))
	}
	r.add(st, &binding{ctor: ctor})
}

// RegisterDeferred binds a constructor lazily: the descriptor runs on the
// first Resolve for the type and its result is cached. Callers observe no
// behavior difference from an eager Register apart from the resolution cost.
func (r *Registry) RegisterDeferred(st catalog.SectionType, deferred DeferredConstructor) {
	if deferred == nil {
		panic(fmt.Sprintf("steelcat: nil deferred constructor for section type %q", string(st)))
	}
	r.add(st, &binding{deferred: deferred})
}

func (r *Registry) add(st catalog.SectionType, b *binding) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bindings[st]; exists {
		panic(fmt.Sprintf("steelcat: constructor already registered for section type %q", string(st)))
	}
	r.bindings[st] = b
}

// Resolve returns the constructor for a section type, resolving and caching
// a deferred binding on first use. ok is false when the type was never
// registered; err is non-nil when a deferred binding failed to resolve.
func (r *Registry) Resolve(st catalog.SectionType) (ctor Constructor, ok bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, exists := r.bindings[st]
	if !exists {
		return nil, false, nil
	}
	if b.ctor != nil {
		return b.ctor, true, nil
	}

	ctor, err = b.deferred()
	if err != nil {
		return nil, true, fmt.Errorf("resolve deferred constructor for %q: %w", string(st), err)
	}
	b.ctor = ctor
	b.deferred = nil
	return ctor, true, nil
}

// RegisteredTypes returns all bound types in lexical order.
func (r *Registry) RegisteredTypes() []catalog.SectionType {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]catalog.SectionType, 0, len(r.bindings))
	for st := range r.bindings {
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
