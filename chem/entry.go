// SPDX-License-Identifier: MIT

package chem

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Composition maps an element to a non-negative amount. Amounts need not be
// normalised; zero and negative amounts are dropped before use.
type Composition map[Element]float64

// Clone returns an independent copy.
func (c Composition) Clone() Composition {
	out := make(Composition, len(c))
	for e, v := range c {
		out[e] = v
	}

	return out
}

// String renders the positive amounts in atomic-number order, e.g. "Li1 O2".
// Unit amounts keep their count so the output stays machine-readable.
func (c Composition) String() string {
	elems := make([]Element, 0, len(c))
	for e, v := range c {
		if v > 0 {
			elems = append(elems, e)
		}
	}
	sort.Slice(elems, func(i, j int) bool {
		zi, zj := elems[i].AtomicNumber(), elems[j].AtomicNumber()
		if zi != zj {
			return zi < zj
		}
		return elems[i] < elems[j]
	})
	parts := make([]string, len(elems))
	for i, e := range elems {
		parts[i] = string(e) + strconv.FormatFloat(c[e], 'g', -1, 64)
	}

	return strings.Join(parts, " ")
}

// PhaseEntry is one candidate phase: a composition and its energy per atom.
// Entries are treated as immutable inputs; many may share a composition.
type PhaseEntry struct {
	ID            string
	Composition   Composition
	EnergyPerAtom float64
	Metadata      map[string]string
}

// Clone returns a deep copy, safe to hand across goroutines.
func (e PhaseEntry) Clone() PhaseEntry {
	out := e
	out.Composition = e.Composition.Clone()
	if e.Metadata != nil {
		out.Metadata = make(map[string]string, len(e.Metadata))
		for k, v := range e.Metadata {
			out.Metadata[k] = v
		}
	}

	return out
}

// Label returns the ID, or the composition when the ID is empty.
func (e PhaseEntry) Label() string {
	if e.ID != "" {
		return e.ID
	}

	return e.Composition.String()
}

// NormalizedPoint is an entry expressed over a ChemicalSystem.
//   - Fractions holds the d−1 independent fractions in system order; the
//     d-th fraction is implicit (1 − Σ Fractions).
//   - Entry is the index of the source entry, or −1 for a synthesized point.
type NormalizedPoint struct {
	Fractions     []float64
	EnergyPerAtom float64
	Entry         int
	Synthesized   bool
}

// Dim returns the system size d.
func (p NormalizedPoint) Dim() int { return len(p.Fractions) + 1 }

// Full returns all d fractions (the implicit one appended, clamped at 0).
func (p NormalizedPoint) Full() []float64 {
	out := make([]float64, len(p.Fractions)+1)
	rest := 1.0
	for i, f := range p.Fractions {
		out[i] = f
		rest -= f
	}
	out[len(p.Fractions)] = math.Max(rest, 0)

	return out
}

// Elevated returns the hull-space coordinates: the d−1 fractions followed by energy.
func (p NormalizedPoint) Elevated() []float64 {
	out := make([]float64, len(p.Fractions)+1)
	copy(out, p.Fractions)
	out[len(p.Fractions)] = p.EnergyPerAtom

	return out
}

// PureAxis returns the axis i when the point is the pure element i
// (fraction i within eps of 1), or (−1, false).
func (p NormalizedPoint) PureAxis(eps float64) (int, bool) {
	for i, f := range p.Full() {
		if math.Abs(f-1) <= eps {
			return i, true
		}
	}

	return -1, false
}

// PointFromFractions builds a NormalizedPoint from all d fractions.
//
// Errors:
//   - ErrFractionsLength when len(full) != sys.Dim().
//   - ErrNonFiniteAmount for NaN/Inf or negative fractions.
//   - ErrEmptyComposition when the fractions sum to zero.
//   - ErrNonFiniteEnergy for NaN/Inf energy.
//
// Fractions are renormalised to sum to 1.
func PointFromFractions(full []float64, energy float64, sys ChemicalSystem, entry int) (NormalizedPoint, error) {
	if len(full) != sys.Dim() {
		return NormalizedPoint{}, fmt.Errorf("PointFromFractions: got %d, want %d: %w", len(full), sys.Dim(), ErrFractionsLength)
	}
	if math.IsNaN(energy) || math.IsInf(energy, 0) {
		return NormalizedPoint{}, fmt.Errorf("PointFromFractions: %w", ErrNonFiniteEnergy)
	}
	var total float64
	for _, f := range full {
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return NormalizedPoint{}, fmt.Errorf("PointFromFractions: fraction %g: %w", f, ErrNonFiniteAmount)
		}
		total += f
	}
	if total == 0 {
		return NormalizedPoint{}, fmt.Errorf("PointFromFractions: %w", ErrEmptyComposition)
	}
	fr := make([]float64, len(full)-1)
	for i := range fr {
		fr[i] = full[i] / total
	}

	return NormalizedPoint{Fractions: fr, EnergyPerAtom: energy, Entry: entry}, nil
}
