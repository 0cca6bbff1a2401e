// SPDX-License-Identifier: MIT

// Package geom holds the small vector-geometry toolkit shared by the hull and
// projection packages.
//
// What lives here:
//
//   - Vector helpers on []float64: Sub, Add, Scale, Dot, Norm, Normalize.
//   - Centroid of a point set.
//   - AffineSpan: greedy Gram–Schmidt discovery of the affine hull of a point
//     set, with local ↔ ambient coordinate maps.
//   - GeneralizedCross: the vector orthogonal to n−1 vectors in Rⁿ
//     (the 3-D cross product generalised through cofactor determinants).
//   - OrientAway and RejectFrom for orienting and projecting normals.
//
// All functions are pure; inputs are never mutated and outputs never alias
// inputs.
package geom
