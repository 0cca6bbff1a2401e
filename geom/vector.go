// SPDX-License-Identifier: MIT

package geom

import (
	"fmt"
	"math"

	"github.com/katalvlaran/phasehull/matrix"
)

// Sub returns a − b. Lengths must match (caller contract; the shorter length wins otherwise).
func Sub(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range out {
		out[i] = a[i] - b[i]
	}

	return out
}

// Add returns a + b.
func Add(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range out {
		out[i] = a[i] + b[i]
	}

	return out
}

// Scale returns s·a.
func Scale(a []float64, s float64) []float64 {
	out := make([]float64, len(a))
	for i, v := range a {
		out[i] = s * v
	}

	return out
}

// Dot returns Σ aᵢbᵢ.
func Dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}

	return sum
}

// Norm returns the Euclidean length of a.
func Norm(a []float64) float64 {
	return math.Sqrt(Dot(a, a))
}

// Normalize returns a/|a|, or ErrZeroVector when |a| == 0.
func Normalize(a []float64) ([]float64, error) {
	n := Norm(a)
	if n == 0 {
		return nil, ErrZeroVector
	}

	return Scale(a, 1/n), nil
}

// Centroid returns the arithmetic mean of points.
//
// Errors:
//   - ErrEmpty for no points, ErrDimensionMismatch for ragged input.
func Centroid(points [][]float64) ([]float64, error) {
	if len(points) == 0 {
		return nil, ErrEmpty
	}
	k := len(points[0])
	out := make([]float64, k)
	for i, p := range points {
		if len(p) != k {
			return nil, fmt.Errorf("Centroid: point %d has dim %d, want %d: %w", i, len(p), k, ErrDimensionMismatch)
		}
		for j, v := range p {
			out[j] += v
		}
	}
	inv := 1 / float64(len(points))
	for j := range out {
		out[j] *= inv
	}

	return out, nil
}

// GeneralizedCross returns the vector orthogonal to the n−1 given vectors in Rⁿ.
//
// Component i is (−1)^(n−1+i) · det(M with column i removed), where M stacks
// the vectors as rows. For n = 3 this is exactly u × v; for n = 2 it is u
// rotated by +90°. The result is not normalised; its length is the
// (n−1)-volume of the parallelotope spanned by the vectors, so a zero result
// means the vectors are linearly dependent.
//
// Errors:
//   - ErrEmpty when n would be 0, ErrDimensionMismatch when the count is not
//     n−1 or lengths differ.
//
// Complexity: O(n · n³) via n cofactor determinants (n ≤ 5 in practice).
func GeneralizedCross(vectors [][]float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, ErrEmpty
	}
	if len(vectors) != n-1 {
		return nil, fmt.Errorf("GeneralizedCross: got %d vectors in R^%d: %w", len(vectors), n, ErrDimensionMismatch)
	}
	for i, v := range vectors {
		if len(v) != n {
			return nil, fmt.Errorf("GeneralizedCross: vector %d has dim %d: %w", i, len(v), ErrDimensionMismatch)
		}
	}
	if n == 1 {
		return []float64{1}, nil
	}

	out := make([]float64, n)
	minor := make([][]float64, n-1)
	var (
		i, r, c, col int
		det          float64
		m            *matrix.Dense
		err          error
	)
	for i = 0; i < n; i++ {
		for r = 0; r < n-1; r++ {
			row := make([]float64, 0, n-1)
			for c = 0; c < n; c++ {
				if c != i {
					row = append(row, vectors[r][c])
				}
			}
			minor[r] = row
		}
		if m, err = matrix.NewDenseFrom(minor); err != nil {
			return nil, fmt.Errorf("GeneralizedCross: %w", err)
		}
		if det, err = matrix.Det(m, matrix.WithPivotTolerance(0)); err != nil {
			return nil, fmt.Errorf("GeneralizedCross: %w", err)
		}
		col = n - 1 + i
		if col%2 == 1 {
			det = -det
		}
		out[i] = det
	}

	return out, nil
}

// OrientAway flips normal, if needed, so that it points away from interior
// as seen from onPlane: Dot(normal, interior − onPlane) ≤ 0 afterwards.
func OrientAway(normal, onPlane, interior []float64) []float64 {
	if Dot(normal, Sub(interior, onPlane)) > 0 {
		return Scale(normal, -1)
	}

	return append([]float64(nil), normal...)
}

// RejectFrom returns the component of v orthogonal to every vector in dirs
// (the rejection of v from span(dirs)). dirs need not be orthogonal; an
// internal Gram–Schmidt pass skips directions shorter than eps.
func RejectFrom(v []float64, dirs [][]float64, eps float64) []float64 {
	basis := make([][]float64, 0, len(dirs))
	for _, d := range dirs {
		u := append([]float64(nil), d...)
		for _, b := range basis {
			u = Sub(u, Scale(b, Dot(u, b)))
		}
		if n := Norm(u); n > eps {
			basis = append(basis, Scale(u, 1/n))
		}
	}
	out := append([]float64(nil), v...)
	for _, b := range basis {
		out = Sub(out, Scale(b, Dot(out, b)))
	}

	return out
}
