// SPDX-License-Identifier: MIT

package stability

import (
	"math"
	"sort"

	"github.com/katalvlaran/phasehull/chem"
	"github.com/katalvlaran/phasehull/hull"
	"github.com/katalvlaran/phasehull/matrix"
)

// evaluator locates compositions on the lower facets of one hull.
type evaluator struct {
	h           *hull.Hull
	points      []chem.NormalizedPoint
	input       []int // hull index → points index
	lower       []hull.Facet
	inHull      map[int]bool
	vertexFacet map[int]int // points index → first lower facet holding it
	tol         float64
	eps         float64
}

// location is a covering facet with clamped, renormalised weights.
type location struct {
	facet      int
	components []Component
	hullEnergy float64
	normalE    float64 // energy component of the facet normal, energy axis scaled as in hull.Build
}

func newEvaluator(points []chem.NormalizedPoint, input []int, tol float64) (*evaluator, error) {
	elevated := make([][]float64, len(input))
	for j, pi := range input {
		elevated[j] = points[pi].Elevated()
	}
	h, err := hull.Build(elevated, hull.WithTolerance(tol))
	if err != nil {
		return nil, err
	}

	ev := &evaluator{
		h:           h,
		points:      points,
		input:       input,
		lower:       h.Lower(),
		inHull:      make(map[int]bool, len(input)),
		vertexFacet: make(map[int]int),
		tol:         tol,
		eps:         h.Epsilon(),
	}
	for _, pi := range input {
		ev.inHull[pi] = true
	}
	for fi, f := range ev.lower {
		for _, v := range f.Vertices {
			if _, ok := ev.vertexFacet[input[v]]; !ok {
				ev.vertexFacet[input[v]] = fi
			}
		}
	}

	return ev, nil
}

// evaluate classifies p (points index pi, or −1 for an ad-hoc query).
// below reports a point more than ε under the hull; its Result is unusable.
//
// Implementation:
//   - Stage 1: a lower-facet vertex is Stable and decomposes to itself.
//   - Stage 2: locate the covering facet; none → Indeterminate (ErrNotCovered).
//   - Stage 3: e = E − Σ wᵢEᵢ; |e| ≤ ε snaps to 0, with ε = tol·max(1, max|E|)
//     in energy units. Hull inputs may sit up to ε under a facet along its
//     energy-scaled normal (the hull ignored them as coplanar); anything
//     deeper is reported as below.
func (ev *evaluator) evaluate(p chem.NormalizedPoint, pi int) (res Result, below bool) {
	res = Result{Entry: p.Entry, Point: pi, Facet: -1}

	// Stage 1: vertex shortcut.
	if fi, ok := ev.vertexFacet[pi]; ok && pi >= 0 {
		res.Status = Stable
		res.HullEnergy = p.EnergyPerAtom
		res.Facet = fi
		res.Decomposition = []Component{{Point: pi, Weight: 1}}
		res.ApproximateReference = p.Synthesized

		return res, false
	}

	// Stage 2: point location.
	loc, ok := ev.locate(p.Fractions)
	if !ok {
		res.Err = ErrNotCovered
		return res, false
	}
	res.Facet = loc.facet
	res.HullEnergy = loc.hullEnergy
	res.Decomposition = loc.components
	for _, c := range loc.components {
		if ev.points[c.Point].Synthesized {
			res.ApproximateReference = true
		}
	}

	// Stage 3: energy above hull.
	e := p.EnergyPerAtom - loc.hullEnergy
	if e < -ev.eps {
		// 2ε absorbs round-off between the hull's distance test and this one.
		if pi < 0 || !ev.inHull[pi] || -e*math.Abs(loc.normalE) > 2*ev.eps {
			return res, true
		}
		e = 0
	}
	if e <= ev.eps {
		res.Status = Stable
		return res, false
	}
	res.Status = Unstable
	res.EAboveHull = e

	return res, false
}

// locate finds the lower facet whose composition simplex contains fractions,
// preferring the facet with the largest minimum weight (lowest facet index on ties).
func (ev *evaluator) locate(fractions []float64) (location, bool) {
	bestFacet, bestMin := -1, math.Inf(-1)
	var bestW []float64
	for fi, f := range ev.lower {
		w, ok := ev.weights(f, fractions)
		if !ok {
			continue
		}
		m := w[0]
		for _, v := range w[1:] {
			m = math.Min(m, v)
		}
		if m > bestMin {
			bestFacet, bestMin, bestW = fi, m, w
		}
	}
	if bestFacet < 0 || bestMin < -ev.tol {
		return location{}, false
	}

	// Clamp round-off negatives and renormalise.
	var sum float64
	for i := range bestW {
		if bestW[i] < 0 {
			bestW[i] = 0
		}
		sum += bestW[i]
	}
	f := ev.lower[bestFacet]
	loc := location{
		facet:      bestFacet,
		components: make([]Component, len(f.Vertices)),
		normalE:    ev.scaledNormalE(f.Normal),
	}
	for i, v := range f.Vertices {
		pi := ev.input[v]
		w := bestW[i] / sum
		loc.components[i] = Component{Point: pi, Weight: w}
		loc.hullEnergy += w * ev.points[pi].EnergyPerAtom
	}

	return loc, true
}

// scaledNormalE returns the energy component of unit normal n after the
// energy axis is divided by the hull's energy scale s, i.e. of (n_x, s·n_E)
// renormalized. Coplanarity decisions inside the hull use that normal.
func (ev *evaluator) scaledNormalE(n []float64) float64 {
	k := len(n) - 1
	e := n[k] * ev.h.EnergyScale()
	sq := e * e
	for _, v := range n[:k] {
		sq += v * v
	}

	return e / math.Sqrt(sq)
}

// weights solves Σ wᵢqᵢ = x, Σ wᵢ = 1 for the facet's vertex compositions qᵢ
// in the least-squares sense (normal equations AᵀA·w = Aᵀb, so sub-dimensional
// facets work too) and rejects x off the facet's affine span.
func (ev *evaluator) weights(f hull.Facet, x []float64) ([]float64, bool) {
	m, n := len(f.Vertices), len(x)

	// A is (n+1)×m: vertex compositions stacked over a row of ones.
	rows := make([][]float64, n+1)
	b := make([]float64, n+1)
	var r, j int
	for r = 0; r < n; r++ {
		rows[r] = make([]float64, m)
		for j = 0; j < m; j++ {
			rows[r][j] = ev.points[ev.input[f.Vertices[j]]].Fractions[r]
		}
		b[r] = x[r]
	}
	rows[n] = make([]float64, m)
	for j = 0; j < m; j++ {
		rows[n][j] = 1
	}
	b[n] = 1

	a, err := matrix.NewDenseFrom(rows)
	if err != nil {
		return nil, false
	}
	at, err := matrix.Transpose(a)
	if err != nil {
		return nil, false
	}
	g, err := matrix.Mul(at, a)
	if err != nil {
		return nil, false
	}
	rhs, err := matrix.MatVec(at, b)
	if err != nil {
		return nil, false
	}
	w, err := matrix.Solve(g, rhs)
	if err != nil {
		return nil, false
	}

	fit, err := matrix.MatVec(a, w)
	if err != nil {
		return nil, false
	}
	var res float64
	for r = range fit {
		res += (fit[r] - b[r]) * (fit[r] - b[r])
	}
	if math.Sqrt(res) > ev.tol {
		return nil, false
	}

	return w, true
}

// facets converts the lower facets into diagram facets and collects the
// sorted vertex set.
func (ev *evaluator) facets() ([]Facet, []int) {
	out := make([]Facet, len(ev.lower))
	seen := make(map[int]struct{})
	for fi, f := range ev.lower {
		pts := make([]int, len(f.Vertices))
		for j, v := range f.Vertices {
			pts[j] = ev.input[v]
			seen[pts[j]] = struct{}{}
		}
		sort.Ints(pts)
		verts := make([]chem.NormalizedPoint, len(pts))
		for j, pi := range pts {
			verts[j] = clonePoint(ev.points[pi])
		}
		out[fi] = Facet{Points: pts, Vertices: verts, Normal: append([]float64(nil), f.Normal...)}
	}
	vertices := make([]int, 0, len(seen))
	for pi := range seen {
		vertices = append(vertices, pi)
	}
	sort.Ints(vertices)

	return out, vertices
}

func clonePoint(p chem.NormalizedPoint) chem.NormalizedPoint {
	p.Fractions = append([]float64(nil), p.Fractions...)
	return p
}
