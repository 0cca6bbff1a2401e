// SPDX-License-Identifier: MIT

package hull

import (
	"sort"

	"github.com/katalvlaran/phasehull/geom"
)

// Facet is one simplex of the hull boundary in ambient coordinates.
//   - Vertices are indices into the Build input, ascending.
//   - Normal is a unit vector inside the affine span of the input (or, for a
//     flat span, a downward direction orthogonal to it), in input units.
//   - Offset satisfies Normal·p == Offset for every vertex p.
//   - Lower marks facets bounding the points from below in energy.
type Facet struct {
	Vertices []int
	Normal   []float64
	Offset   float64
	Lower    bool
}

// Distance returns the signed distance of p above the facet's hyperplane
// along Normal (positive means outside).
func (f Facet) Distance(p []float64) float64 {
	return geom.Dot(f.Normal, p) - f.Offset
}

// Clone returns a deep copy.
func (f Facet) Clone() Facet {
	return Facet{
		Vertices: append([]int(nil), f.Vertices...),
		Normal:   append([]float64(nil), f.Normal...),
		Offset:   f.Offset,
		Lower:    f.Lower,
	}
}

// Hull is an immutable convex hull produced by Build.
type Hull struct {
	points   [][]float64
	dim      int
	tol      float64
	eps      float64
	escale   float64
	rank     int
	compRank int
	facets   []Facet
}

// Dim returns the ambient dimension k.
func (h *Hull) Dim() int { return h.dim }

// Len returns the number of input points.
func (h *Hull) Len() int { return len(h.points) }

// Point returns a copy of input point i.
func (h *Hull) Point(i int) []float64 { return append([]float64(nil), h.points[i]...) }

// Tolerance returns the relative tolerance the hull was built with.
func (h *Hull) Tolerance() float64 { return h.tol }

// Epsilon returns the absolute energy threshold tol·max(1, max|E|)·max(1, max|x|).
// No input point lies farther than this outside any facet.
func (h *Hull) Epsilon() float64 { return h.eps * h.escale }

// CompositionEpsilon returns the distance threshold on composition axes,
// tol·max(1, max|x|). It does not grow with the energy unit.
func (h *Hull) CompositionEpsilon() float64 { return h.eps }

// EnergyScale returns s = max(1, max|E|), the divisor applied to the energy
// axis while the hull is built.
func (h *Hull) EnergyScale() float64 { return h.escale }

// Rank returns the affine rank r of the input points.
func (h *Hull) Rank() int { return h.rank }

// CompositionRank returns the affine rank c of the input compositions
// (all coordinates but the last).
func (h *Hull) CompositionRank() int { return h.compRank }

// Degenerate reports whether the input fails to span the ambient space.
func (h *Hull) Degenerate() bool { return h.rank < h.dim }

// Facets returns copies of every facet, upper ones included.
func (h *Hull) Facets() []Facet {
	out := make([]Facet, len(h.facets))
	for i, f := range h.facets {
		out[i] = f.Clone()
	}

	return out
}

// Lower returns copies of the lower facets in construction order.
func (h *Hull) Lower() []Facet {
	out := make([]Facet, 0, len(h.facets))
	for _, f := range h.facets {
		if f.Lower {
			out = append(out, f.Clone())
		}
	}

	return out
}

// Vertices returns the ascending indices of points on at least one lower facet.
func (h *Hull) Vertices() []int {
	seen := make(map[int]struct{})
	for _, f := range h.facets {
		if !f.Lower {
			continue
		}
		for _, v := range f.Vertices {
			seen[v] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)

	return out
}

// IsVertex reports whether point i lies on a lower facet as a vertex.
func (h *Hull) IsVertex(i int) bool {
	for _, f := range h.facets {
		if !f.Lower {
			continue
		}
		for _, v := range f.Vertices {
			if v == i {
				return true
			}
		}
	}

	return false
}
