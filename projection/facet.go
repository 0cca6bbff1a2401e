// SPDX-License-Identifier: MIT

package projection

import (
	"fmt"

	"github.com/katalvlaran/phasehull/geom"
)

// FacetCentroid returns the arithmetic mean of the facet's points.
func FacetCentroid(points [][]float64) ([]float64, error) {
	c, err := geom.Centroid(points)
	if err != nil {
		return nil, fmt.Errorf("FacetCentroid: %w", err)
	}

	return c, nil
}

// FacetNormal returns the unit normal of the hyperplane through n points in Rⁿ
// (an edge in 2D, a triangle in 3D). When interior is non-nil the normal is
// flipped to point away from it; otherwise its sign follows the vertex order
// (counter-clockwise triangles face the viewer).
//
// Errors:
//   - ErrDimension when the point count differs from the dimension.
//   - ErrDegenerateFacet for collinear/coplanar points.
func FacetNormal(points [][]float64, interior []float64) ([]float64, error) {
	if len(points) == 0 || len(points) != len(points[0]) {
		return nil, fmt.Errorf("FacetNormal: %d points: %w", len(points), ErrDimension)
	}
	n := len(points)
	edges := make([][]float64, 0, n-1)
	for _, p := range points[1:] {
		if len(p) != n {
			return nil, fmt.Errorf("FacetNormal: %w", ErrDimension)
		}
		edges = append(edges, geom.Sub(p, points[0]))
	}
	cross, err := geom.GeneralizedCross(edges, n)
	if err != nil {
		return nil, fmt.Errorf("FacetNormal: %w", err)
	}
	unit, err := geom.Normalize(cross)
	if err != nil {
		return nil, fmt.Errorf("FacetNormal: %w", ErrDegenerateFacet)
	}
	if interior != nil {
		if len(interior) != n {
			return nil, fmt.Errorf("FacetNormal: interior: %w", ErrDimension)
		}
		unit = geom.OrientAway(unit, points[0], interior)
	}

	return unit, nil
}
