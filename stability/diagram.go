// SPDX-License-Identifier: MIT

package stability

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/phasehull/chem"
	"github.com/katalvlaran/phasehull/projection"
)

// Evaluate classifies an ad-hoc entry against the diagram without changing it.
// Entry and Point of the result are −1. An entry below the hull would be a new
// vertex: it is evaluated on a private rebuild that includes it and comes
// back Stable with no decomposition.
func (d *Diagram) Evaluate(entry chem.PhaseEntry) Result {
	p, err := chem.Normalize(entry, d.System)
	if err != nil {
		return Result{Entry: -1, Point: -1, Facet: -1, Status: Filtered, Err: &EntryError{Index: -1, ID: entry.ID, Err: err}}
	}
	if d.Err != nil || d.eval == nil {
		return Result{Entry: -1, Point: -1, Facet: -1, Status: Indeterminate, Err: d.Err}
	}

	res, below := d.eval.evaluate(p, -1)
	if !below {
		return res
	}

	n := len(d.Points)
	points := append(d.Points[:n:n], p)
	input := append(d.eval.input[:len(d.eval.input):len(d.eval.input)], n)
	ev, err := newEvaluator(points, input, d.Tolerance)
	if err != nil {
		return Result{Entry: -1, Point: -1, Facet: -1, Status: Indeterminate, Err: fmt.Errorf("Evaluate: %w: %w", ErrNumericalInstability, err)}
	}
	res, below = ev.evaluate(p, n)
	if below {
		return Result{Entry: -1, Point: -1, Facet: -1, Status: Indeterminate, Err: fmt.Errorf("Evaluate: %w", ErrNumericalInstability)}
	}
	res.Point, res.Facet, res.Decomposition = -1, -1, nil

	return res
}

// HullEnergyAt interpolates the lower hull at d fractions (renormalised).
//
// Errors:
//   - Diagram.Err when the batch was degenerate or failed.
//   - chem errors for invalid fractions, ErrNotCovered outside the hull region.
func (d *Diagram) HullEnergyAt(fractions []float64) (float64, error) {
	if d.Err != nil {
		return 0, d.Err
	}
	if d.eval == nil {
		return 0, ErrNotCovered
	}
	p, err := chem.PointFromFractions(fractions, 0, d.System, -1)
	if err != nil {
		return 0, fmt.Errorf("HullEnergyAt: %w", err)
	}
	loc, ok := d.eval.locate(p.Fractions)
	if !ok {
		return 0, fmt.Errorf("HullEnergyAt(%v): %w", fractions, ErrNotCovered)
	}

	return loc.hullEnergy, nil
}

// TieLines returns the unique edges of the lower facets as ascending Points
// index pairs, sorted.
func (d *Diagram) TieLines() [][2]int {
	seen := make(map[[2]int]struct{})
	var i, j int
	for _, f := range d.Facets {
		for i = 0; i < len(f.Points); i++ {
			for j = i + 1; j < len(f.Points); j++ {
				seen[[2]int{f.Points[i], f.Points[j]}] = struct{}{}
			}
		}
	}
	out := make([][2]int, 0, len(seen))
	for e := range seen {
		out = append(out, e)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a][0] != out[b][0] {
			return out[a][0] < out[b][0]
		}
		return out[a][1] < out[b][1]
	})

	return out
}

// StableEntries returns the indices of Stable entries.
func (d *Diagram) StableEntries() []int { return d.entriesWith(Stable) }

// UnstableEntries returns the indices of Unstable entries.
func (d *Diagram) UnstableEntries() []int { return d.entriesWith(Unstable) }

func (d *Diagram) entriesWith(s Status) []int {
	var out []int
	for i, r := range d.Results {
		if r.Status == s {
			out = append(out, i)
		}
	}

	return out
}

// FormationEnergy returns p's energy relative to the pure-element references
// used for the hull: E − Σ xᵢ·E_ref(i).
//
// Errors:
//   - *MissingReferenceWarning (ErrMissingReference) when an element has no
//     reference, which only happens under ReferenceNone.
func (d *Diagram) FormationEnergy(p chem.NormalizedPoint) (float64, error) {
	full := p.Full()
	if len(full) != len(d.references) {
		return 0, fmt.Errorf("FormationEnergy: %d fractions for %s: %w", len(full), d.System, chem.ErrFractionsLength)
	}
	e := p.EnergyPerAtom
	for axis, ref := range d.references {
		if ref < 0 {
			return 0, &MissingReferenceWarning{Element: d.System.Element(axis), Policy: d.Policy}
		}
		e -= full[axis] * d.Points[ref].EnergyPerAtom
	}

	return e, nil
}

// ProjectPoints returns display coordinates for every point of the diagram.
// With withEnergy the formation energy (raw energy when a reference is
// missing) is appended as the last axis.
func (d *Diagram) ProjectPoints(p *projection.Projector, withEnergy bool) ([][]float64, error) {
	if p.Dim() != d.System.Dim() {
		return nil, fmt.Errorf("ProjectPoints: projector for %d elements, system has %d: %w", p.Dim(), d.System.Dim(), projection.ErrDimension)
	}
	out := make([][]float64, len(d.Points))
	var err error
	for i, pt := range d.Points {
		if !withEnergy {
			out[i], err = p.Project(pt.Full())
		} else {
			e, ferr := d.FormationEnergy(pt)
			if ferr != nil {
				e = pt.EnergyPerAtom
			}
			out[i], err = p.ProjectWithEnergy(pt.Full(), e)
		}
		if err != nil {
			return nil, fmt.Errorf("ProjectPoints: point %d: %w", i, err)
		}
	}

	return out, nil
}
