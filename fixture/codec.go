package fixture

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/phasehull/chem"
	"github.com/katalvlaran/phasehull/hullcache"
	"github.com/katalvlaran/phasehull/stability"
)

// Set is a decoded entry set.
type Set struct {
	System    chem.ChemicalSystem
	Tolerance float64                    // 0 means the caller's default
	Policy    *stability.ReferencePolicy // nil means the caller's default
	Entries   []chem.PhaseEntry
}

// Request returns the set as a cache request, using ReferenceZero when the
// document names no policy.
func (s *Set) Request() hullcache.Request {
	req := hullcache.Request{
		Entries:   s.Entries,
		System:    s.System,
		Tolerance: s.Tolerance,
	}
	if s.Policy != nil {
		req.Policy = *s.Policy
	}

	return req
}

type document struct {
	System    string  `yaml:"system"`
	Tolerance float64 `yaml:"tolerance,omitempty"`
	Policy    string  `yaml:"policy,omitempty"`
	Entries   []entry `yaml:"entries"`
}

type entry struct {
	ID          string             `yaml:"id,omitempty"`
	Composition map[string]float64 `yaml:"composition"`
	Energy      float64            `yaml:"energy_per_atom"`
	Metadata    map[string]string  `yaml:"metadata,omitempty"`
}

// Decode reads one YAML document. Unknown fields are rejected.
//
// Errors: ErrInvalidFixture wrapping the YAML, chem or policy error.
func Decode(r io.Reader) (*Set, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
	}

	sys, err := chem.ParseChemicalSystem(doc.System)
	if err != nil {
		return nil, fmt.Errorf("%w: system: %w", ErrInvalidFixture, err)
	}
	set := &Set{System: sys, Tolerance: doc.Tolerance, Entries: make([]chem.PhaseEntry, len(doc.Entries))}
	if doc.Policy != "" {
		p, err := stability.ParseReferencePolicy(doc.Policy)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFixture, err)
		}
		set.Policy = &p
	}

	for i, e := range doc.Entries {
		comp := make(chem.Composition, len(e.Composition))
		for sym, amt := range e.Composition {
			el, err := chem.ParseElement(sym)
			if err != nil {
				return nil, fmt.Errorf("%w: entry %d: %w", ErrInvalidFixture, i, err)
			}
			comp[el] += amt
		}
		set.Entries[i] = chem.PhaseEntry{
			ID:            e.ID,
			Composition:   comp,
			EnergyPerAtom: e.Energy,
			Metadata:      e.Metadata,
		}
	}

	return set, nil
}

// Encode writes s as one YAML document.
func Encode(w io.Writer, s *Set) error {
	doc := document{
		System:    s.System.String(),
		Tolerance: s.Tolerance,
		Entries:   make([]entry, len(s.Entries)),
	}
	if s.Policy != nil {
		doc.Policy = s.Policy.String()
	}
	for i, e := range s.Entries {
		comp := make(map[string]float64, len(e.Composition))
		for el, amt := range e.Composition {
			comp[string(el)] = amt
		}
		doc.Entries[i] = entry{ID: e.ID, Composition: comp, Energy: e.EnergyPerAtom, Metadata: e.Metadata}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("Encode: %w", err)
	}

	return enc.Close()
}

// Load decodes the file at path.
func Load(path string) (*Set, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	set, err := Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("Load(%s): %w", path, err)
	}

	return set, nil
}
