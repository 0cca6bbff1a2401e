// SPDX-License-Identifier: MIT

package stability

import (
	"fmt"

	"github.com/katalvlaran/phasehull/chem"
)

// Compute evaluates the stability of every entry against the lower hull of sys.
//
// Returns a Diagram whose Results are aligned with entries. The error is
// non-nil only for invalid configuration (ErrInvalidTolerance,
// ErrInvalidSystem); data problems are reported inside the Diagram.
//
// Implementation:
//   - Stage 1: normalise entries; failures become Filtered results.
//   - Stage 2: synthesize missing references per policy.
//   - Stage 3: build the hull and evaluate every point. Points found more
//     than ε below the hull join the hull input and the hull is rebuilt, at
//     most WithMaxReadmitRounds times; anything else fails closed.
//   - Stage 4: if the hull spans fewer than d dimensions' worth of points,
//     demote every non-vertex result to Indeterminate.
//
// Complexity: O(R·(B + n·F·d³)) for R rounds, hull build cost B, n points
// and F lower facets.
func Compute(entries []chem.PhaseEntry, sys chem.ChemicalSystem, opts ...Option) (*Diagram, error) {
	cfg := gatherOptions(opts...)
	if !validTolerance(cfg.tol) {
		return nil, fmt.Errorf("Compute: tolerance %g: %w", cfg.tol, ErrInvalidTolerance)
	}
	if !sys.Valid() {
		return nil, fmt.Errorf("Compute: %w", ErrInvalidSystem)
	}

	d := &Diagram{
		System:    sys,
		Tolerance: cfg.tol,
		Policy:    cfg.policy,
		Results:   make([]Result, len(entries)),
	}

	// Stage 1: normalisation.
	norm, errs := chem.NormalizeAll(entries, sys)
	pointOf := make([]int, len(entries))
	valid := make([]chem.NormalizedPoint, 0, len(entries))
	for i := range entries {
		if errs[i] != nil {
			pointOf[i] = -1
			d.Results[i] = Result{
				Entry:  i,
				Point:  -1,
				Facet:  -1,
				Status: Filtered,
				Err:    &EntryError{Index: i, ID: entries[i].ID, Err: errs[i]},
			}
			continue
		}
		pointOf[i] = len(valid)
		valid = append(valid, norm[i])
	}

	// Stage 2: references.
	input, all, refs, warnings := synthesize(valid, sys, cfg.policy, cfg.tol)
	d.Points, d.references, d.Warnings = all, refs, warnings
	if len(input) == 0 {
		d.failClosed(fmt.Errorf("Compute: no points in %s: %w", sys, ErrDegenerateSystem))
		d.align(pointOf)
		return d, nil
	}

	// Stage 3: hull and evaluation.
	if !d.solve(input, cfg) {
		d.align(pointOf)
		return d, nil
	}
	ev := d.eval

	// Stage 4: degeneracy.
	if r := ev.h.Rank(); r+1 < sys.Dim() {
		d.Err = fmt.Errorf("Compute: %d affinely independent points in a %d-element system: %w", r+1, sys.Dim(), ErrDegenerateSystem)
		for i, p := range d.Points {
			if _, ok := ev.vertexFacet[i]; ok {
				continue
			}
			d.PointResults[i] = Result{Entry: p.Entry, Point: i, Facet: -1, Status: Indeterminate, Err: d.Err}
		}
	}
	d.align(pointOf)

	return d, nil
}

// solve evaluates d.Points against the hull of input and fills the numeric
// fields of d. On failure it fails closed and reports false.
func (d *Diagram) solve(input []int, cfg Options) bool {
	ev, results, err := evaluateAll(d.Points, input, cfg)
	if err != nil {
		d.failClosed(err)
		return false
	}
	d.eval = ev
	d.PointResults = results
	d.Facets, d.Vertices = ev.facets()

	return true
}

// evaluateAll runs the build/evaluate/re-admit loop.
func evaluateAll(points []chem.NormalizedPoint, input []int, cfg Options) (*evaluator, []Result, error) {
	input = append([]int(nil), input...)
	for round := 0; ; round++ {
		ev, err := newEvaluator(points, input, cfg.tol)
		if err != nil {
			return nil, nil, fmt.Errorf("Compute: %w: %w", ErrNumericalInstability, err)
		}

		results := make([]Result, len(points))
		var below []int
		for i, p := range points {
			r, isBelow := ev.evaluate(p, i)
			if !isBelow {
				results[i] = r
				continue
			}
			if ev.inHull[i] {
				return nil, nil, fmt.Errorf("Compute: hull point %d is %g below facet %d: %w",
					i, r.HullEnergy-p.EnergyPerAtom, r.Facet, ErrNumericalInstability)
			}
			below = append(below, i)
		}
		if len(below) == 0 {
			return ev, results, nil
		}
		if round >= cfg.maxRounds {
			return nil, nil, fmt.Errorf("Compute: %d points below the hull after %d rebuilds: %w",
				len(below), round, ErrNumericalInstability)
		}
		input = append(input, below...)
	}
}

// failClosed drops every numeric claim: no facets, all points Indeterminate.
func (d *Diagram) failClosed(err error) {
	d.Err = err
	d.eval = nil
	d.Facets, d.Vertices = nil, nil
	d.PointResults = make([]Result, len(d.Points))
	for i, p := range d.Points {
		d.PointResults[i] = Result{Entry: p.Entry, Point: i, Facet: -1, Status: Indeterminate, Err: err}
	}
}

// align copies point results into the entry-aligned Results.
func (d *Diagram) align(pointOf []int) {
	for i, pi := range pointOf {
		if pi >= 0 {
			d.Results[i] = d.PointResults[pi]
		}
	}
}
