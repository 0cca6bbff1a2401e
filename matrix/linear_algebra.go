// SPDX-License-Identifier: MIT

// Package matrix provides the linear-algebra kernels used by the hull:
// matrix product, transpose, matrix-vector product and a partially pivoted
// LU factorization with Solve/Det/Inverse built on top of it.
//
// Purpose:
//   - Declare canonical kernels with strict fail-fast validation.
//   - Keep operation tags in constants for uniform error reporting.
//
// Notes:
//   - Every kernel allocates its result; operands are never mutated.
//   - LU pivots on the largest magnitude in the column (partial pivoting);
//     ties resolve to the lowest row index, so results are deterministic.

package matrix

import (
	"errors"
	"fmt"
	"math"
)

// ZeroSum is the initial value for dot products and substitutions.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opMatVec    = "MatVec"
	opLU        = "LU"
	opSolve     = "Solve"
	opDet       = "Det"
	opInverse   = "Inverse"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// toDense returns m as *Dense, copying through the interface when needed.
// Kernels then run a single flat-slice code path.
func toDense(m Matrix) (*Dense, error) {
	if d, ok := m.(*Dense); ok {
		return d, nil
	}
	r, c := m.Rows(), m.Cols()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	var (
		i, j int
		v    float64
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			out.data[i*c+j] = v
		}
	}

	return out, nil
}

// Mul performs standard matrix multiplication C = A × B (no aliasing).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows).
//
// Determinism:
//   - Fixed i→k→j loop order.
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	da, err := toDense(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	db, err := toDense(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	rows, inner, cols := da.r, da.c, db.c
	res, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	var i, k, j int
	var aik float64
	for i = 0; i < rows; i++ {
		for k = 0; k < inner; k++ {
			aik = da.data[i*inner+k]
			if aik == 0 {
				continue
			}
			for j = 0; j < cols; j++ {
				res.data[i*cols+j] += aik * db.data[k*cols+j]
			}
		}
	}

	return res, nil
}

// Transpose returns a new matrix with rows and columns swapped (mᵀ).
// Complexity: O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	res, err := NewDense(d.c, d.r)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	var i, j int
	for i = 0; i < d.r; i++ {
		for j = 0; j < d.c; j++ {
			res.data[j*d.r+i] = d.data[i*d.c+j]
		}
	}

	return res, nil
}

// MatVec computes y = m * x for a column vector x.
//
// Contract: m non-nil; x non-nil; len(x) == m.Cols().
// Complexity: Time O(r*c), Space O(r) for y.
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	d, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}

	y := make([]float64, d.r)
	var i, j, base int
	var acc float64
	for i = 0; i < d.r; i++ {
		acc = ZeroSum
		base = i * d.c
		for j = 0; j < d.c; j++ {
			acc += d.data[base+j] * x[j]
		}
		y[i] = acc
	}

	return y, nil
}

// LUFactors is a compact P·A = L·U factorization.
//   - lu stores L (strictly below the diagonal, unit diagonal implied) and U
//     (on and above the diagonal) in one buffer.
//   - perm[i] is the row of A that ended up in row i.
//   - sign is (−1)^(number of row swaps), used by Det.
type LUFactors struct {
	lu   *Dense
	perm []int
	sign float64
}

// LU computes P·A = L·U with partial pivoting.
//
// Implementation:
//   - Stage 1: validate m (non-nil, square); copy into a working buffer.
//   - Stage 2: for each column k pick the row with max |a[i][k]| (i ≥ k),
//     swap it into place, then eliminate below the pivot.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (via copy),
//     ErrSingular if max |pivot| ≤ pivot tolerance.
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
//
// AI-Hints:
//   - Reuse the returned factors for several right-hand sides via Solve.
func LU(m Matrix, opts ...Option) (*LUFactors, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	o := gatherOptions(opts...)

	src, err := toDense(m)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	a := src.Clone().(*Dense)
	n := a.r
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sign := 1.0

	var (
		i, j, k, p int
		best, v    float64
		pivot, f   float64
	)
	for k = 0; k < n; k++ {
		// Pivot search: lowest index wins ties.
		p, best = k, math.Abs(a.data[k*n+k])
		for i = k + 1; i < n; i++ {
			if v = math.Abs(a.data[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best <= o.pivotTol || best == 0 {
			return nil, matrixErrorf(opLU, fmt.Errorf("column %d: %w", k, ErrSingular))
		}
		if p != k {
			for j = 0; j < n; j++ {
				a.data[k*n+j], a.data[p*n+j] = a.data[p*n+j], a.data[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
			sign = -sign
		}

		pivot = a.data[k*n+k]
		for i = k + 1; i < n; i++ {
			f = a.data[i*n+k] / pivot
			a.data[i*n+k] = f
			if f == 0 {
				continue
			}
			for j = k + 1; j < n; j++ {
				a.data[i*n+j] -= f * a.data[k*n+j]
			}
		}
	}

	return &LUFactors{lu: a, perm: perm, sign: sign}, nil
}

// Det returns det(A) = sign · Π U[i][i].
func (f *LUFactors) Det() float64 {
	n := f.lu.r
	det := f.sign
	for i := 0; i < n; i++ {
		det *= f.lu.data[i*n+i]
	}

	return det
}

// Solve returns x with A·x = b using forward then backward substitution.
//
// Errors:
//   - ErrNilMatrix / ErrDimensionMismatch when b has the wrong length.
//
// Complexity: O(n^2).
func (f *LUFactors) Solve(b []float64) ([]float64, error) {
	n := f.lu.r
	if err := ValidateVecLen(b, n); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	x := make([]float64, n)
	var i, k int
	var sum float64
	// Forward: L·y = P·b (y stored in x).
	for i = 0; i < n; i++ {
		sum = b[f.perm[i]]
		for k = 0; k < i; k++ {
			sum -= f.lu.data[i*n+k] * x[k]
		}
		x[i] = sum
	}
	// Backward: U·x = y.
	for i = n - 1; i >= 0; i-- {
		sum = x[i]
		for k = i + 1; k < n; k++ {
			sum -= f.lu.data[i*n+k] * x[k]
		}
		x[i] = sum / f.lu.data[i*n+i]
	}

	return x, nil
}

// Solve factors a and solves a·x = b in one call.
//
// Errors:
//   - as LU, plus ErrDimensionMismatch when len(b) != a.Rows().
func Solve(a Matrix, b []float64, opts ...Option) ([]float64, error) {
	f, err := LU(a, opts...)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	return f.Solve(b)
}

// Det returns the determinant of a. A singular matrix (per pivot tolerance)
// yields (0, nil): singularity is a value here, not a failure.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf.
func Det(a Matrix, opts ...Option) (float64, error) {
	f, err := LU(a, opts...)
	if err != nil {
		if errors.Is(err, ErrSingular) {
			return 0, nil
		}

		return 0, matrixErrorf(opDet, err)
	}

	return f.Det(), nil
}

// Inverse returns A^{-1}, solving one identity column at a time.
//
// Errors:
//   - as LU (ErrSingular when A has no inverse).
//
// Complexity: O(n^3).
func Inverse(a Matrix, opts ...Option) (*Dense, error) {
	f, err := LU(a, opts...)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	n := f.lu.r
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	e := make([]float64, n)
	var col, i int
	var x []float64
	for col = 0; col < n; col++ {
		for i = range e {
			e[i] = 0
		}
		e[col] = 1
		if x, err = f.Solve(e); err != nil {
			return nil, matrixErrorf(opInverse, err)
		}
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}
