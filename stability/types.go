// SPDX-License-Identifier: MIT

package stability

import (
	"fmt"

	"github.com/katalvlaran/phasehull/chem"
	"github.com/katalvlaran/phasehull/hull"
)

// Status classifies one evaluated composition.
type Status int

const (
	// Indeterminate: no numeric claim can be made (outside the hull region,
	// degenerate or failed batch). The zero value.
	Indeterminate Status = iota
	// Stable: on the lower hull, EAboveHull == 0.
	Stable
	// Unstable: above the hull by more than ε.
	Unstable
	// Filtered: the entry was rejected before hull construction.
	Filtered
)

func (s Status) String() string {
	switch s {
	case Indeterminate:
		return "indeterminate"
	case Stable:
		return "stable"
	case Unstable:
		return "unstable"
	case Filtered:
		return "filtered"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Component is one decomposition product: a point of the diagram and its
// molar weight.
type Component struct {
	Point  int
	Weight float64
}

// Result is the evaluation of one entry.
//
// Entry and Point are −1 for ad-hoc queries; Point is also −1 for Filtered
// entries. EAboveHull, HullEnergy, Facet and Decomposition are only
// meaningful for Stable and Unstable results.
type Result struct {
	Entry                int
	Point                int
	Status               Status
	EAboveHull           float64
	HullEnergy           float64
	Facet                int
	Decomposition        []Component
	ApproximateReference bool
	Err                  error
}

// IsStable reports whether Status == Stable.
func (r Result) IsStable() bool { return r.Status == Stable }

// Facet is a lower-hull simplex of a Diagram.
//   - Points indexes Diagram.Points, ascending.
//   - Vertices holds copies of those points.
//   - Normal is the unit outward normal in (fractions…, energy) space; its
//     energy component is negative.
type Facet struct {
	Points   []int
	Vertices []chem.NormalizedPoint
	Normal   []float64
}

// Diagram is the immutable outcome of Compute.
//
// Points holds every normalised entry that passed filtering (input order)
// followed by synthesized references. Results is aligned with the input
// entries; PointResults with Points.
type Diagram struct {
	System       chem.ChemicalSystem
	Tolerance    float64
	Policy       ReferencePolicy
	Points       []chem.NormalizedPoint
	Facets       []Facet
	Vertices     []int
	Results      []Result
	PointResults []Result
	Warnings     []error
	Err          error

	eval       *evaluator
	references []int // per axis: Points index of the hull reference, −1 if absent
}

// Hull returns the hull the diagram was evaluated on, or nil when the batch
// failed closed or had no points.
func (d *Diagram) Hull() *hull.Hull {
	if d.eval == nil {
		return nil
	}

	return d.eval.h
}
