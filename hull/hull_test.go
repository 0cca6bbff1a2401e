// SPDX-License-Identifier: MIT

package hull_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/phasehull/hull"
	"github.com/katalvlaran/phasehull/matrix"
)

// requireConvex asserts that no input point lies outside any facet.
func requireConvex(t *testing.T, h *hull.Hull) {
	t.Helper()
	for _, f := range h.Facets() {
		for i := 0; i < h.Len(); i++ {
			require.LessOrEqual(t, f.Distance(h.Point(i)), h.Epsilon(), "point %d outside facet %v", i, f.Vertices)
		}
	}
}

func TestBuild_BinaryCompound(t *testing.T) {
	h, err := hull.Build([][]float64{{1, 0}, {0, 0}, {0.5, -1}})
	require.NoError(t, err)
	assert.Equal(t, 2, h.Rank())
	assert.Equal(t, 1, h.CompositionRank())
	assert.False(t, h.Degenerate())
	assert.Len(t, h.Facets(), 3)
	assert.Len(t, h.Lower(), 2)
	assert.Equal(t, []int{0, 1, 2}, h.Vertices())
	for _, f := range h.Lower() {
		assert.Len(t, f.Vertices, 2)
		assert.Less(t, f.Normal[1], 0.0)
		assert.InDelta(t, 1, math.Hypot(f.Normal[0], f.Normal[1]), 1e-12)
	}
	requireConvex(t, h)
}

func TestBuild_BinaryCompoundAboveTieLine(t *testing.T) {
	h, err := hull.Build([][]float64{{1, 0}, {0, 0}, {0.5, 0.5}})
	require.NoError(t, err)
	lower := h.Lower()
	require.Len(t, lower, 1)
	assert.Equal(t, []int{0, 1}, lower[0].Vertices)
	assert.Equal(t, []int{0, 1}, h.Vertices())
	assert.False(t, h.IsVertex(2))
}

func TestBuild_TernaryInteriorCompound(t *testing.T) {
	pts := [][]float64{
		{1, 0, 0}, {0, 1, 0}, {0, 0, 0},
		{1.0 / 3, 1.0 / 3, -2},
		{1.0 / 3, 1.0 / 3, -1},
	}
	h, err := hull.Build(pts)
	require.NoError(t, err)
	assert.Equal(t, 3, h.Rank())
	assert.Len(t, h.Facets(), 4)
	assert.Len(t, h.Lower(), 3)
	assert.Equal(t, []int{0, 1, 2, 3}, h.Vertices())
	assert.True(t, h.IsVertex(3))
	assert.False(t, h.IsVertex(4))
	requireConvex(t, h)
}

func TestBuild_FlatTriangle(t *testing.T) {
	h, err := hull.Build([][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 0}, {0.2, 0.2, 0}})
	require.NoError(t, err)
	assert.Equal(t, 2, h.Rank())
	assert.Equal(t, 2, h.CompositionRank())
	assert.True(t, h.Degenerate())
	lower := h.Lower()
	require.Len(t, lower, 1)
	assert.Equal(t, []int{0, 1, 2}, lower[0].Vertices)
	assert.InDeltaSlice(t, []float64{0, 0, -1}, lower[0].Normal, 1e-12)
}

func TestBuild_FlatTiltedSquare(t *testing.T) {
	// E = x + y over the unit square: four vertices, pulled into two triangles.
	h, err := hull.Build([][]float64{{0, 0, 0}, {1, 0, 1}, {1, 1, 2}, {0, 1, 1}})
	require.NoError(t, err)
	lower := h.Lower()
	require.Len(t, lower, 2)
	for _, f := range lower {
		assert.Len(t, f.Vertices, 3)
		assert.Contains(t, f.Vertices, 0)
		s := 1 / math.Sqrt(3)
		assert.InDeltaSlice(t, []float64{s, s, -s}, f.Normal, 1e-12)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, h.Vertices())
}

func TestBuild_Collinear(t *testing.T) {
	h, err := hull.Build([][]float64{{1, 0, 0}, {0, 1, 0}})
	require.NoError(t, err)
	assert.Equal(t, 1, h.Rank())
	assert.True(t, h.Degenerate())
	lower := h.Lower()
	require.Len(t, lower, 1)
	assert.Equal(t, []int{0, 1}, lower[0].Vertices)
}

func TestBuild_VerticalSegment(t *testing.T) {
	h, err := hull.Build([][]float64{{0.5, 0}, {0.5, -1}, {0.5, -0.25}})
	require.NoError(t, err)
	assert.Equal(t, 1, h.Rank())
	assert.Equal(t, 0, h.CompositionRank())
	lower := h.Lower()
	require.Len(t, lower, 1)
	assert.Equal(t, []int{1}, lower[0].Vertices)
	assert.Len(t, h.Facets(), 2)
}

func TestBuild_SinglePoint(t *testing.T) {
	h, err := hull.Build([][]float64{{0.5, -1}, {0.5, -1}})
	require.NoError(t, err)
	assert.Equal(t, 0, h.Rank())
	lower := h.Lower()
	require.Len(t, lower, 1)
	assert.Equal(t, []int{0}, lower[0].Vertices)
	assert.Equal(t, []float64{0, -1}, lower[0].Normal)
}

func TestBuild_NearDuplicatesIgnored(t *testing.T) {
	h, err := hull.Build([][]float64{{1, 0}, {0, 0}, {0.5, -1}, {0.5, -1 + 1e-10}})
	require.NoError(t, err)
	assert.Len(t, h.Lower(), 2)
	assert.False(t, h.IsVertex(3))
}

func TestBuild_Errors(t *testing.T) {
	_, err := hull.Build(nil)
	assert.ErrorIs(t, err, hull.ErrTooFewPoints)
	_, err = hull.Build([][]float64{{1, 0}, {1}})
	assert.ErrorIs(t, err, hull.ErrDimension)
	_, err = hull.Build([][]float64{{0, 0, 0, 0, 0}})
	assert.ErrorIs(t, err, hull.ErrDimension)
	_, err = hull.Build([][]float64{{}})
	assert.ErrorIs(t, err, hull.ErrDimension)
	_, err = hull.Build([][]float64{{1, math.NaN()}})
	assert.ErrorIs(t, err, hull.ErrNonFinite)

	assert.Panics(t, func() { hull.WithTolerance(0) })
	assert.Panics(t, func() { hull.WithTolerance(math.Inf(1)) })
	assert.NotPanics(t, func() { hull.WithTolerance(1e-9) })
}

func TestBuild_Tolerance(t *testing.T) {
	pts := [][]float64{{1, 0}, {0, 0}, {0.5, -1e-6}}
	h, err := hull.Build(pts)
	require.NoError(t, err)
	assert.Len(t, h.Lower(), 2, "1e-6 dip is resolved at the default tolerance")

	h, err = hull.Build(pts, hull.WithTolerance(1e-5))
	require.NoError(t, err)
	assert.Equal(t, 1, h.Rank(), "dip is flattened at a coarser tolerance")
	assert.Equal(t, 1e-5, h.Tolerance())
}

// randomSimplexPoints returns n points with uniformly random compositions in
// the (k−1)-simplex and energies in [−1, 0), after the k pure references.
func randomSimplexPoints(rng *rand.Rand, k, n int) [][]float64 {
	pts := make([][]float64, 0, k+n)
	for i := 0; i < k; i++ {
		p := make([]float64, k)
		if i < k-1 {
			p[i] = 1
		}
		pts = append(pts, p)
	}
	for len(pts) < k+n {
		w := make([]float64, k)
		var sum float64
		for i := range w {
			w[i] = -math.Log(1 - rng.Float64())
			sum += w[i]
		}
		p := make([]float64, k)
		for i := 0; i < k-1; i++ {
			p[i] = w[i] / sum
		}
		p[k-1] = -rng.Float64()
		pts = append(pts, p)
	}

	return pts
}

// simplexVolume returns |det(edges)| / m! for an m-simplex in Rᵐ.
func simplexVolume(t *testing.T, verts [][]float64) float64 {
	t.Helper()
	m := len(verts) - 1
	rows := make([][]float64, m)
	for i := 1; i <= m; i++ {
		row := make([]float64, m)
		for j := 0; j < m; j++ {
			row[j] = verts[i][j] - verts[0][j]
		}
		rows[i-1] = row
	}
	a, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)
	det, err := matrix.Det(a)
	require.NoError(t, err)
	fact := 1.0
	for i := 2; i <= m; i++ {
		fact *= float64(i)
	}

	return math.Abs(det) / fact
}

func TestBuild_RandomLowerHullCoversSimplex(t *testing.T) {
	for _, k := range []int{2, 3, 4} {
		rng := rand.New(rand.NewSource(int64(k)))
		pts := randomSimplexPoints(rng, k, 10)
		h, err := hull.Build(pts)
		require.NoError(t, err, "k=%d", k)
		assert.Equal(t, k, h.Rank())
		requireConvex(t, h)

		var vol float64
		for _, f := range h.Lower() {
			require.Len(t, f.Vertices, k)
			comps := make([][]float64, len(f.Vertices))
			for i, v := range f.Vertices {
				comps[i] = h.Point(v)[:k-1]
			}
			vol += simplexVolume(t, comps)
		}
		fact := 1.0
		for i := 2; i < k; i++ {
			fact *= float64(i)
		}
		assert.InDelta(t, 1/fact, vol, 1e-9, "k=%d: lower facets tile the composition simplex", k)

		for i := 0; i < k; i++ {
			assert.True(t, h.IsVertex(i), "k=%d: pure reference %d", k, i)
		}
	}
}

func TestBuild_EnergyUnitsKeepCompositionTolerance(t *testing.T) {
	// J/mol scale: the 100 J/mol dip at x = 0.75 must stay a vertex.
	pts := [][]float64{{1, 0}, {0, 0}, {0.5, -1e5}, {0.75, -5e4 - 100}}
	h, err := hull.Build(pts)
	require.NoError(t, err)
	assert.Equal(t, 1e5, h.EnergyScale())
	assert.Equal(t, hull.DefaultTolerance, h.CompositionEpsilon())
	assert.InDelta(t, hull.DefaultTolerance*1e5, h.Epsilon(), 1e-15)
	assert.Equal(t, []int{0, 1, 2, 3}, h.Vertices())
	assert.True(t, h.IsVertex(3))
	lower := h.Lower()
	require.Len(t, lower, 3)
	for _, f := range lower {
		assert.Less(t, f.Normal[1], 0.0)
		assert.InDelta(t, 1, math.Hypot(f.Normal[0], f.Normal[1]), 1e-12)
		for _, v := range f.Vertices {
			assert.InDelta(t, 0, f.Distance(pts[v]), 1e-9*h.EnergyScale(), "vertex %d off facet %v", v, f.Vertices)
		}
	}
	requireConvex(t, h)
}

func TestBuild_EnergyScaleInvariance(t *testing.T) {
	for _, k := range []int{2, 3, 4} {
		for seed := int64(1); seed <= 5; seed++ {
			pts := randomSimplexPoints(rand.New(rand.NewSource(seed)), k, 40)
			scaled := make([][]float64, len(pts))
			for i, p := range pts {
				scaled[i] = append([]float64(nil), p...)
				scaled[i][k-1] *= 1e5
			}
			h, err := hull.Build(pts)
			require.NoError(t, err)
			hs, err := hull.Build(scaled)
			require.NoError(t, err)

			assert.Equal(t, h.Vertices(), hs.Vertices(), "k=%d seed=%d", k, seed)
			want := make([][]int, 0, len(h.Lower()))
			for _, f := range h.Lower() {
				want = append(want, f.Vertices)
			}
			got := make([][]int, 0, len(hs.Lower()))
			for _, f := range hs.Lower() {
				got = append(got, f.Vertices)
			}
			assert.ElementsMatch(t, want, got, "k=%d seed=%d", k, seed)
			requireConvex(t, hs)
		}
	}
}
