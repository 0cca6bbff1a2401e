// SPDX-License-Identifier: MIT

package hull

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/phasehull/geom"
)

// Build computes the convex hull of points and classifies its facets.
//
// Implementation:
//   - Stage 1: validate shape and finiteness. Divide the energy axis by
//     s = max(1, max|E|) on a working copy so that energy spreads of any
//     unit land in [−1, 1]; composition axes keep eps = tol·max(1, max|x|).
//   - Stage 2: find the affine span of the working points (rank r) and of
//     their compositions (rank c) with geom.AffineSpan.
//   - Stage 3: r > c: hull in the r-dimensional span, lower iff the energy
//     component of the scaled outward normal is < −tol; normals are mapped
//     back to input units ((n_x, n_E/s), renormalized) before they are stored.
//     r = c ≥ 1: hull of the span polytope, pulled from its lowest-index
//     vertex into c-simplices, all lower. r = 0: the lowest point alone.
//
// Errors:
//   - ErrTooFewPoints, ErrDimension, ErrNonFinite for bad input.
//   - ErrNumericalInstability when a facet collapses or the ridge topology
//     of the result is not closed.
func Build(points [][]float64, opts ...Option) (*Hull, error) {
	cfg := gatherOptions(opts...)

	// Stage 1: validation.
	if len(points) == 0 {
		return nil, ErrTooFewPoints
	}
	k := len(points[0])
	if k < 1 || k > MaxDim {
		return nil, fmt.Errorf("Build: dimension %d: %w", k, ErrDimension)
	}
	cscale, escale := 1.0, 1.0
	pts := make([][]float64, len(points))
	var (
		i, j int
		v    float64
	)
	for i = range points {
		if len(points[i]) != k {
			return nil, fmt.Errorf("Build: point %d has dimension %d, want %d: %w", i, len(points[i]), k, ErrDimension)
		}
		for j, v = range points[i] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("Build: point %d: %w", i, ErrNonFinite)
			}
			if j == k-1 {
				escale = math.Max(escale, math.Abs(v))
			} else {
				cscale = math.Max(cscale, math.Abs(v))
			}
		}
		pts[i] = append([]float64(nil), points[i]...)
	}
	h := &Hull{points: pts, dim: k, tol: cfg.tol, eps: cfg.tol * cscale, escale: escale}
	work := make([][]float64, len(pts))
	for i = range pts {
		work[i] = append([]float64(nil), pts[i]...)
		work[i][k-1] /= escale
	}

	// Stage 2: spans.
	span, err := geom.AffineSpan(work, h.eps)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	comps := make([][]float64, len(work))
	for i = range work {
		comps[i] = work[i][:k-1]
	}
	cspan, err := geom.AffineSpan(comps, h.eps)
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}
	h.rank, h.compRank = span.Rank(), cspan.Rank()
	if h.compRank > h.rank {
		h.compRank = h.rank
	}

	// Stage 3: facets.
	switch {
	case h.rank == 0:
		h.facets = []Facet{h.pointFacet()}
	case h.rank > h.compRank:
		err = h.buildFull(work, span)
	default:
		err = h.buildFlat(work, span)
	}
	if err != nil {
		return nil, fmt.Errorf("Build: %w", err)
	}

	return h, nil
}

// pointFacet returns the single facet of a rank-0 input: its lowest point.
func (h *Hull) pointFacet() Facet {
	best := 0
	for i, p := range h.points {
		if p[h.dim-1] < h.points[best][h.dim-1] {
			best = i
		}
	}
	down := make([]float64, h.dim)
	down[h.dim-1] = -1

	return Facet{
		Vertices: []int{best},
		Normal:   down,
		Offset:   geom.Dot(down, h.points[best]),
		Lower:    true,
	}
}

// buildFull computes the boundary of the r-dimensional hull and keeps every
// facet, tagging the lower ones.
func (h *Hull) buildFull(work [][]float64, span geom.Span) error {
	local := localize(work, span)
	lfs, err := localHull(local, span.Rank(), span.Pivots, h.eps)
	if err != nil {
		return err
	}
	h.facets = make([]Facet, 0, len(lfs))
	for _, lf := range lfs {
		ns := span.Direction(lf.normal)
		n, err := h.unscale(ns)
		if err != nil {
			return err
		}
		h.facets = append(h.facets, Facet{
			Vertices: lf.verts,
			Normal:   n,
			Offset:   geom.Dot(n, h.points[lf.verts[0]]),
			Lower:    ns[h.dim-1] < -h.tol,
		})
	}

	return nil
}

// buildFlat triangulates the span polytope of coplanar, non-vertical points.
func (h *Hull) buildFlat(work [][]float64, span geom.Span) error {
	r := span.Rank()
	local := localize(work, span)
	boundary, err := localHull(local, r, span.Pivots, h.eps)
	if err != nil {
		return err
	}

	down := make([]float64, h.dim)
	down[h.dim-1] = -1
	ns, err := geom.Normalize(geom.RejectFrom(down, span.Basis, 0))
	if err != nil {
		return fmt.Errorf("flat span is vertical: %w", ErrNumericalInstability)
	}
	n, err := h.unscale(ns)
	if err != nil {
		return err
	}

	apex := -1
	for _, lf := range boundary {
		for _, v := range lf.verts {
			if apex < 0 || v < apex {
				apex = v
			}
		}
	}

	var (
		simplex [][]float64
		j       int
	)
	for _, lf := range boundary {
		if containsInt(lf.verts, apex) {
			continue
		}
		verts := append(append([]int(nil), lf.verts...), apex)
		sort.Ints(verts)
		// Split boundary faces can be coplanar with the apex; such pulls have no volume.
		simplex = simplex[:0]
		for j = range verts {
			simplex = append(simplex, local[verts[j]])
		}
		s, err := geom.AffineSpan(simplex, h.eps)
		if err != nil {
			return err
		}
		if s.Rank() < r {
			continue
		}
		h.facets = append(h.facets, Facet{
			Vertices: verts,
			Normal:   append([]float64(nil), n...),
			Offset:   geom.Dot(n, h.points[verts[0]]),
			Lower:    true,
		})
	}
	if len(h.facets) == 0 {
		return fmt.Errorf("flat triangulation is empty: %w", ErrNumericalInstability)
	}

	return nil
}

// unscale maps a unit normal of the energy-scaled working space back to a
// unit normal in input units. Orthogonality to the span is preserved.
func (h *Hull) unscale(ns []float64) ([]float64, error) {
	n := append([]float64(nil), ns...)
	n[h.dim-1] /= h.escale
	out, err := geom.Normalize(n)
	if err != nil {
		return nil, fmt.Errorf("normal collapsed: %w", ErrNumericalInstability)
	}

	return out, nil
}

func localize(points [][]float64, span geom.Span) [][]float64 {
	out := make([][]float64, len(points))
	for i, p := range points {
		out[i] = span.Local(p)
	}

	return out
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}

	return false
}
