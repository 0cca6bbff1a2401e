// SPDX-License-Identifier: MIT

package geom

import "fmt"

// Span is the affine hull of a point set: Origin + span(Basis).
//   - Basis is orthonormal; len(Basis) is the affine rank r.
//   - Pivots lists r+1 affinely independent input indices (Pivots[0] is the
//     origin), usable as a non-degenerate starting simplex.
type Span struct {
	Origin []float64
	Basis  [][]float64
	Pivots []int
}

// Rank returns the affine dimension of the span.
func (s Span) Rank() int { return len(s.Basis) }

// Dim returns the ambient dimension.
func (s Span) Dim() int { return len(s.Origin) }

// Local maps an ambient point to its coordinates in the span basis.
// Points off the span are projected orthogonally onto it.
func (s Span) Local(p []float64) []float64 {
	d := Sub(p, s.Origin)
	out := make([]float64, len(s.Basis))
	for i, b := range s.Basis {
		out[i] = Dot(d, b)
	}

	return out
}

// Ambient maps span coordinates back to ambient space.
func (s Span) Ambient(local []float64) []float64 {
	out := append([]float64(nil), s.Origin...)
	for i, b := range s.Basis {
		for j := range out {
			out[j] += local[i] * b[j]
		}
	}

	return out
}

// Direction maps a span-local direction (no origin shift) to ambient space.
func (s Span) Direction(local []float64) []float64 {
	out := make([]float64, len(s.Origin))
	for i, b := range s.Basis {
		for j := range out {
			out[j] += local[i] * b[j]
		}
	}

	return out
}

// Residual returns the distance from p to the span.
func (s Span) Residual(p []float64) float64 {
	return Norm(RejectFrom(Sub(p, s.Origin), s.Basis, 0))
}

// AffineSpan discovers the affine hull of points with a greedy Gram–Schmidt pass.
//
// Implementation:
//   - Stage 1: origin = points[0].
//   - Stage 2: repeatedly pick the point farthest from the current span
//     (lowest index on ties); stop when that distance is ≤ eps or the rank
//     reaches the ambient dimension.
//   - Stage 3: orthonormalise the chosen direction and append it to Basis.
//
// Choosing the farthest point each round keeps the basis well conditioned,
// which matters for nearly-degenerate hull inputs.
//
// Errors:
//   - ErrEmpty for no points, ErrDimensionMismatch for ragged input.
//
// Complexity: O(n · k²) for n points in Rᵏ.
func AffineSpan(points [][]float64, eps float64) (Span, error) {
	if len(points) == 0 {
		return Span{}, ErrEmpty
	}
	k := len(points[0])
	for i, p := range points {
		if len(p) != k {
			return Span{}, fmt.Errorf("AffineSpan: point %d has dim %d, want %d: %w", i, len(p), k, ErrDimensionMismatch)
		}
	}

	s := Span{Origin: append([]float64(nil), points[0]...), Pivots: []int{0}}
	for len(s.Basis) < k {
		best, bestIdx := eps, -1
		var bestVec []float64
		for i, p := range points {
			r := RejectFrom(Sub(p, s.Origin), s.Basis, 0)
			if n := Norm(r); n > best {
				best, bestIdx, bestVec = n, i, r
			}
		}
		if bestIdx < 0 {
			break
		}
		s.Basis = append(s.Basis, Scale(bestVec, 1/best))
		s.Pivots = append(s.Pivots, bestIdx)
	}

	return s, nil
}
