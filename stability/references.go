// SPDX-License-Identifier: MIT

package stability

import (
	"math"

	"github.com/katalvlaran/phasehull/chem"
)

// SynthesizeReferences makes sure every pure element of sys has a hull vertex.
//
// Returns:
//   - all: points followed by any synthesized references (Entry −1,
//     Synthesized true).
//   - hullInput: indices into all that take part in hull construction;
//     among several pure entries of one element only the lowest-energy one
//     (lowest index on ties) is included, the others are still evaluated.
//   - warnings: one *MissingReferenceWarning per element without a pure entry.
//
// Synthesized energy follows policy: ReferenceZero → 0, ReferenceLowest →
// min(0, lowest energy in points), ReferenceNone → nothing is synthesized.
// points is not modified.
func SynthesizeReferences(points []chem.NormalizedPoint, sys chem.ChemicalSystem, policy ReferencePolicy) (hullInput []int, all []chem.NormalizedPoint, warnings []error) {
	hullInput, all, _, warnings = synthesize(points, sys, policy, DefaultTolerance)

	return hullInput, all, warnings
}

// synthesize is SynthesizeReferences that also reports, per axis, the index
// of the reference kept for hull construction (−1 when absent).
func synthesize(points []chem.NormalizedPoint, sys chem.ChemicalSystem, policy ReferencePolicy, tol float64) (hullInput []int, all []chem.NormalizedPoint, refs []int, warnings []error) {
	d := sys.Dim()
	all = make([]chem.NormalizedPoint, len(points), len(points)+d)
	copy(all, points)

	refs = make([]int, d)
	for i := range refs {
		refs[i] = -1
	}
	axisOf := make([]int, len(points))
	for i, p := range points {
		axis, ok := p.PureAxis(tol)
		if !ok {
			axisOf[i] = -1
			continue
		}
		axisOf[i] = axis
		if refs[axis] < 0 || p.EnergyPerAtom < points[refs[axis]].EnergyPerAtom {
			refs[axis] = i
		}
	}

	refEnergy := 0.0
	if policy == ReferenceLowest {
		for _, p := range points {
			refEnergy = math.Min(refEnergy, p.EnergyPerAtom)
		}
	}

	var synthesized []int
	for axis := 0; axis < d; axis++ {
		if refs[axis] >= 0 {
			continue
		}
		w := &MissingReferenceWarning{Element: sys.Element(axis), Policy: policy}
		if policy != ReferenceNone {
			fr := make([]float64, d-1)
			if axis < d-1 {
				fr[axis] = 1
			}
			refs[axis] = len(all)
			synthesized = append(synthesized, len(all))
			all = append(all, chem.NormalizedPoint{Fractions: fr, EnergyPerAtom: refEnergy, Entry: -1, Synthesized: true})
			w.Synthesized, w.Energy = true, refEnergy
		}
		warnings = append(warnings, w)
	}

	hullInput = make([]int, 0, len(all))
	for i := range points {
		if axisOf[i] < 0 || refs[axisOf[i]] == i {
			hullInput = append(hullInput, i)
		}
	}
	hullInput = append(hullInput, synthesized...)

	return hullInput, all, refs, warnings
}
