// SPDX-License-Identifier: MIT

package hull

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/phasehull/geom"
)

// localFacet is a boundary simplex in span-local coordinates.
type localFacet struct {
	verts  []int // ascending
	normal []float64
	offset float64
}

func (f localFacet) distance(p []float64) float64 {
	return geom.Dot(f.normal, p) - f.offset
}

// ridgeKey identifies a ridge (facet minus one vertex), padded with −1.
type ridgeKey [MaxDim]int

func makeRidgeKey(verts []int, skip int) ridgeKey {
	var key ridgeKey
	var i, j int
	for i = range key {
		key[i] = -1
	}
	for i = range verts {
		if i == skip {
			continue
		}
		key[j] = verts[i]
		j++
	}

	return key
}

func (k ridgeKey) verts() []int {
	out := make([]int, 0, MaxDim)
	for _, v := range k {
		if v >= 0 {
			out = append(out, v)
		}
	}

	return out
}

// localHull returns the boundary facets of the r-dimensional hull of local.
// pivots must be r+1 affinely independent indices.
//
// Implementation:
//   - r = 1: the two extreme points.
//   - r ≥ 2: beneath–beyond. Start from the pivot simplex, orient every
//     facet away from its centroid, then insert the remaining points in
//     index order: facets the point sees (distance > eps) are removed and
//     every horizon ridge (a ridge seen exactly once) is coned to the point.
//   - A final pass checks every ridge is shared by exactly two facets.
//
// Complexity: O(n·F·r³).
func localHull(local [][]float64, r int, pivots []int, eps float64) ([]localFacet, error) {
	if r == 1 {
		return segmentHull(local), nil
	}

	interior := make([]float64, r)
	for _, p := range pivots {
		interior = geom.Add(interior, local[p])
	}
	interior = geom.Scale(interior, 1/float64(len(pivots)))

	facets := make([]localFacet, 0, 2*(r+1))
	var (
		i, j int
		f    localFacet
		err  error
	)
	base := append([]int(nil), pivots...)
	sort.Ints(base)
	for j = range base {
		verts := make([]int, 0, r)
		verts = append(verts, base[:j]...)
		verts = append(verts, base[j+1:]...)
		if f, err = orientedFacet(local, verts, interior); err != nil {
			return nil, err
		}
		facets = append(facets, f)
	}

	used := make(map[int]bool, len(pivots))
	for _, p := range pivots {
		used[p] = true
	}
	for i = range local {
		if used[i] {
			continue
		}
		if facets, err = insertPoint(local, facets, i, interior, eps); err != nil {
			return nil, err
		}
	}

	if err = checkClosed(facets); err != nil {
		return nil, err
	}

	return facets, nil
}

// insertPoint adds point p to the hull if it lies beyond at least one facet.
func insertPoint(local [][]float64, facets []localFacet, p int, interior []float64, eps float64) ([]localFacet, error) {
	kept := make([]localFacet, 0, len(facets))
	counts := make(map[ridgeKey]int)
	order := make([]ridgeKey, 0)
	visible := 0
	var j int
	for _, f := range facets {
		if f.distance(local[p]) <= eps {
			kept = append(kept, f)
			continue
		}
		visible++
		for j = range f.verts {
			key := makeRidgeKey(f.verts, j)
			if counts[key] == 0 {
				order = append(order, key)
			}
			counts[key]++
		}
	}
	if visible == 0 {
		return facets, nil
	}

	for _, key := range order {
		if counts[key] != 1 {
			continue
		}
		verts := append(key.verts(), p)
		sort.Ints(verts)
		f, err := orientedFacet(local, verts, interior)
		if err != nil {
			return nil, err
		}
		kept = append(kept, f)
	}

	return kept, nil
}

// orientedFacet builds the hyperplane through verts with its normal pointing
// away from interior.
func orientedFacet(local [][]float64, verts []int, interior []float64) (localFacet, error) {
	r := len(local[verts[0]])
	origin := local[verts[0]]
	edges := make([][]float64, 0, r-1)
	for _, v := range verts[1:] {
		edges = append(edges, geom.Sub(local[v], origin))
	}
	n, err := geom.GeneralizedCross(edges, r)
	if err != nil {
		return localFacet{}, fmt.Errorf("facet %v: %w", verts, err)
	}
	if n, err = geom.Normalize(n); err != nil {
		return localFacet{}, fmt.Errorf("facet %v collapsed: %w", verts, ErrNumericalInstability)
	}
	n = geom.OrientAway(n, origin, interior)

	return localFacet{verts: verts, normal: n, offset: geom.Dot(n, origin)}, nil
}

// segmentHull is the r = 1 hull: lowest and highest coordinate, lowest index on ties.
func segmentHull(local [][]float64) []localFacet {
	lo, hi := 0, 0
	for i, p := range local {
		if p[0] < local[lo][0] {
			lo = i
		}
		if p[0] > local[hi][0] {
			hi = i
		}
	}

	return []localFacet{
		{verts: []int{lo}, normal: []float64{-1}, offset: -local[lo][0]},
		{verts: []int{hi}, normal: []float64{1}, offset: local[hi][0]},
	}
}

// checkClosed verifies that the boundary is a closed pseudo-manifold.
func checkClosed(facets []localFacet) error {
	counts := make(map[ridgeKey]int)
	var j int
	for _, f := range facets {
		for j = range f.verts {
			counts[makeRidgeKey(f.verts, j)]++
		}
	}
	for key, c := range counts {
		if c != 2 {
			return fmt.Errorf("ridge %v shared by %d facets: %w", key.verts(), c, ErrNumericalInstability)
		}
	}

	return nil
}
