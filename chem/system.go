// SPDX-License-Identifier: MIT

package chem

import (
	"fmt"
	"strings"
)

// Chemical system size bounds supported by the hull engine.
const (
	MinSystemSize = 2
	MaxSystemSize = 4
)

// ChemicalSystem is an ordered, de-duplicated list of 2–4 elements.
// The order fixes which coordinate index belongs to which element for the
// lifetime of one computation. Values are immutable; the zero value is invalid.
type ChemicalSystem struct {
	elements []Element
	index    map[Element]int
}

// NewChemicalSystem validates and de-duplicates elements (first occurrence
// wins) and returns the system.
//
// Errors:
//   - ErrUnknownElement for a symbol outside the periodic table.
//   - ErrSystemSize when fewer than 2 or more than 4 distinct elements remain.
func NewChemicalSystem(elements ...Element) (ChemicalSystem, error) {
	s := ChemicalSystem{index: make(map[Element]int, len(elements))}
	for _, e := range elements {
		if !e.Valid() {
			return ChemicalSystem{}, fmt.Errorf("NewChemicalSystem(%q): %w", string(e), ErrUnknownElement)
		}
		if _, dup := s.index[e]; dup {
			continue
		}
		s.index[e] = len(s.elements)
		s.elements = append(s.elements, e)
	}
	if n := len(s.elements); n < MinSystemSize || n > MaxSystemSize {
		return ChemicalSystem{}, fmt.Errorf("NewChemicalSystem: %d distinct elements: %w", n, ErrSystemSize)
	}

	return s, nil
}

// ParseChemicalSystem parses a dash- or comma-separated list such as "Li-Fe-O".
func ParseChemicalSystem(s string) (ChemicalSystem, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == ',' || r == ' ' })
	elems := make([]Element, 0, len(fields))
	for _, f := range fields {
		e, err := ParseElement(f)
		if err != nil {
			return ChemicalSystem{}, err
		}
		elems = append(elems, e)
	}

	return NewChemicalSystem(elems...)
}

// MustChemicalSystem is NewChemicalSystem that panics on error; for tests and literals.
func MustChemicalSystem(elements ...Element) ChemicalSystem {
	s, err := NewChemicalSystem(elements...)
	if err != nil {
		panic(err)
	}

	return s
}

// Dim returns the number of elements d.
func (s ChemicalSystem) Dim() int { return len(s.elements) }

// Elements returns a copy of the ordered element list.
func (s ChemicalSystem) Elements() []Element {
	return append([]Element(nil), s.elements...)
}

// Element returns the element on axis i.
func (s ChemicalSystem) Element(i int) Element { return s.elements[i] }

// Index returns the axis of e.
func (s ChemicalSystem) Index(e Element) (int, bool) {
	i, ok := s.index[e]
	return i, ok
}

// Contains reports whether e is one of the system's elements.
func (s ChemicalSystem) Contains(e Element) bool {
	_, ok := s.index[e]
	return ok
}

// Valid reports whether s was built by NewChemicalSystem.
func (s ChemicalSystem) Valid() bool { return len(s.elements) >= MinSystemSize }

// String renders the system as "Li-Fe-O".
func (s ChemicalSystem) String() string {
	parts := make([]string, len(s.elements))
	for i, e := range s.elements {
		parts[i] = string(e)
	}

	return strings.Join(parts, "-")
}
