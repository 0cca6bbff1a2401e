// SPDX-License-Identifier: MIT

package chem

import (
	"fmt"
	"math"
)

// Normalize converts entry into fractional coordinates over sys.
//
// Algorithm:
//  1. Reject a non-finite energy (ErrNonFiniteEnergy).
//  2. Drop amounts ≤ 0; reject NaN/Inf amounts (ErrNonFiniteAmount) and any
//     remaining element outside sys (ErrOutsideSystem).
//  3. Sum per axis, divide by the total (ErrEmptyComposition when zero).
//  4. Emit the first d−1 fractions in system order; the last is implicit.
//
// The returned point has Entry = −1; NormalizeAll fills in input indices.
// Pure: entry is not modified.
func Normalize(entry PhaseEntry, sys ChemicalSystem) (NormalizedPoint, error) {
	if math.IsNaN(entry.EnergyPerAtom) || math.IsInf(entry.EnergyPerAtom, 0) {
		return NormalizedPoint{}, fmt.Errorf("Normalize(%s): %w", entry.Label(), ErrNonFiniteEnergy)
	}

	amounts := make([]float64, sys.Dim())
	for e, amt := range entry.Composition {
		if math.IsNaN(amt) || math.IsInf(amt, 0) {
			return NormalizedPoint{}, fmt.Errorf("Normalize(%s): element %s: %w", entry.Label(), e, ErrNonFiniteAmount)
		}
		if amt <= 0 {
			continue
		}
		i, ok := sys.Index(e)
		if !ok {
			return NormalizedPoint{}, fmt.Errorf("Normalize(%s): element %s not in %s: %w", entry.Label(), e, sys, ErrOutsideSystem)
		}
		amounts[i] += amt
	}

	// Summing in axis order keeps the result independent of map iteration order.
	var total float64
	for _, a := range amounts {
		total += a
	}
	if total == 0 {
		return NormalizedPoint{}, fmt.Errorf("Normalize(%s): %w", entry.Label(), ErrEmptyComposition)
	}

	fr := make([]float64, sys.Dim()-1)
	for i := range fr {
		fr[i] = amounts[i] / total
	}

	return NormalizedPoint{Fractions: fr, EnergyPerAtom: entry.EnergyPerAtom, Entry: -1}, nil
}

// NormalizeAll normalises every entry. points[i] is valid iff errs[i] == nil;
// Entry is set to i. A failing entry never aborts the batch.
func NormalizeAll(entries []PhaseEntry, sys ChemicalSystem) (points []NormalizedPoint, errs []error) {
	points = make([]NormalizedPoint, len(entries))
	errs = make([]error, len(entries))
	for i, e := range entries {
		p, err := Normalize(e, sys)
		if err != nil {
			errs[i] = err
			continue
		}
		p.Entry = i
		points[i] = p
	}

	return points, errs
}
