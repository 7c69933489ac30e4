package steelcat

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/steelcat/catalog"
)

var (
	// ErrNotFound is the sentinel wrapped by every NotFoundError; match
	// with errors.Is.
	ErrNotFound = errors.New("section not found")

	// ErrTypeNotRegistered is the sentinel wrapped by every
	// TypeNotRegisteredError.
	ErrTypeNotRegistered = errors.New("section type not registered")
)

// NotFoundError indicates a designation could not be resolved. It carries
// actionable detail: similar designations worth suggesting, and — for typed
// lookups — a note when the raw designation exists verbatim under a
// different type (a common mistake: using one region's key against another
// region's type).
type NotFoundError struct {
	Designation string

	// SectionType is the requested type; empty for untyped lookups.
	SectionType catalog.SectionType

	// Suggestions holds similar designations, best first.
	Suggestions []string

	// CrossType names the other type the raw designation exists under
	// verbatim; empty when not applicable.
	CrossType catalog.SectionType

	// AvailableTypes lists the catalog's available types; populated for
	// untyped lookups with no suggestions.
	AvailableTypes []catalog.SectionType

	// AvailableCount is the number of designations under the requested
	// type; populated for typed lookups with no suggestions.
	AvailableCount int
}

func (e *NotFoundError) Error() string {
	var b strings.Builder

	if e.SectionType != "" {
		fmt.Fprintf(&b, "section %q of type %q not found", e.Designation, string(e.SectionType))
	} else {
		fmt.Fprintf(&b, "section %q not found in any type", e.Designation)
	}

	switch {
	case len(e.Suggestions) > 0:
		fmt.Fprintf(&b, ". Try: '%s'?", strings.Join(e.Suggestions, "', '"))
	case e.SectionType != "":
		fmt.Fprintf(&b, ". Available sections: %d", e.AvailableCount)
	default:
		fmt.Fprintf(&b, ". Available types: %v", e.AvailableTypes)
	}

	if e.CrossType != "" {
		fmt.Fprintf(&b, "\nNote: designation exists under type %q.", string(e.CrossType))
	}

	return b.String()
}

// Unwrap allows errors.Is(err, ErrNotFound).
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// TypeNotRegisteredError indicates the record resolved fine but no
// constructor is bound for its type. Distinct from NotFoundError on purpose:
// the data exists, the registry is incomplete.
type TypeNotRegisteredError struct {
	SectionType catalog.SectionType

	// Registered lists the currently bound types.
	Registered []catalog.SectionType

	// cause is the deferred-binding resolution failure, if any. Access
	// via errors.Unwrap chains.
	cause error
}

func (e *TypeNotRegisteredError) Error() string {
	msg := fmt.Sprintf("no registered constructor for section type %q. Registered types: %v",
		string(e.SectionType), e.Registered)
	if e.cause != nil {
		msg += fmt.Sprintf(" (deferred binding failed: %v)", e.cause)
	}
	return msg
}

// Unwrap allows errors.Is(err, ErrTypeNotRegistered).
func (e *TypeNotRegisteredError) Unwrap() error { return ErrTypeNotRegistered }
