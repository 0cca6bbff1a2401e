// SPDX-License-Identifier: MIT

// Package projection maps barycentric compositions to Cartesian display
// coordinates and back.
//
// One Projector serves every system size; the corner layouts are data:
//
//	d = 2  segment      A (0)           B (1)
//	d = 3  triangle     A (0, 0)        B (1, 0)        C (½, √3/2)
//	d = 4  tetrahedron  A (0, 0, 0)     B (1, 0, 0)     C (½, √3/2, 0)   D (½, √3/6, √(2/3))
//
// A point is Σ wᵢ·cornerᵢ. The inverse multiplies [x; 1] by the precomputed
// inverse of the matrix whose columns are [cornerᵢ; 1], then clamps into the
// simplex, so picking outside the diagram snaps to its boundary.
//
// Energy, when requested, is appended as an extra axis (the 3D ternary hull
// view uses it as z).
package projection
