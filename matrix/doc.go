// SPDX-License-Identifier: MIT

// Package matrix offers the small dense linear-algebra toolkit used by the
// hull and projection packages.
//
// The matrix package provides:
//
//   - Dense: a row-major float64 matrix with bounds-checked At/Set.
//   - Kernels: Mul, Transpose, MatVec.
//   - Factorizations: LU with partial pivoting, plus Solve, Det and Inverse
//     built on top of it.
//   - Validators: a single source of truth for nil/shape checks.
//
// Matrices in this module are tiny (at most 5×5 for a quaternary hull), so
// every kernel favours determinism and clear error reporting over blocking
// or SIMD tricks.
//
// See example_test.go for usage patterns.
package matrix
