// SPDX-License-Identifier: MIT

// Package hull builds the convex hull of elevated composition-energy points
// and extracts its lower envelope.
//
// Points live in Rᵏ (k ∈ {1..4}); the first k−1 coordinates are composition
// fractions and the last is energy. The hull is computed inside the affine
// span of the input, so degenerate inputs reduce to a lower-dimensional
// problem instead of failing:
//
//   - r = c+1 (energy varies freely over the span): incremental
//     beneath–beyond hull in r dimensions; lower facets are those whose
//     outward normal points down the energy axis.
//   - r = c (the points are coplanar with a non-vertical plane): the span
//     polytope is triangulated and every simplex is lower.
//   - r = 0: the point is its own facet.
//
// Here r is the affine rank of the elevated points and c the affine rank of
// their compositions. Lower facets always carry c+1 vertices, so they cover
// exactly the composition polytope of the input.
//
// Complexity:
//
//   - Time:  O(n·F·k³) for n points and F live facets (F is small for k ≤ 4).
//   - Space: O(n·k + F·k).
//
// All tolerances are relative. The energy axis is divided by
// max(1, max |E|) while building, so the composition threshold
// tol·max(1, max |x|) holds in any energy unit; see Epsilon and
// CompositionEpsilon.
package hull
