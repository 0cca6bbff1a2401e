// SPDX-License-Identifier: MIT

package stability_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/phasehull/chem"
	"github.com/katalvlaran/phasehull/hull"
	"github.com/katalvlaran/phasehull/matrix"
	"github.com/katalvlaran/phasehull/projection"
	"github.com/katalvlaran/phasehull/stability"
)

const eps = 1e-9

func entry(id string, e float64, comp chem.Composition) chem.PhaseEntry {
	return chem.PhaseEntry{ID: id, Composition: comp, EnergyPerAtom: e}
}

// requireInvariants checks the properties every numeric result must hold.
func requireInvariants(t *testing.T, d *stability.Diagram) {
	t.Helper()
	for i, r := range d.PointResults {
		switch r.Status {
		case stability.Stable:
			require.Equal(t, 0.0, r.EAboveHull, "point %d", i)
		case stability.Unstable:
			require.Greater(t, r.EAboveHull, 0.0, "point %d", i)
		default:
			continue
		}
		var sum float64
		for _, c := range r.Decomposition {
			require.GreaterOrEqual(t, c.Weight, 0.0, "point %d", i)
			sum += c.Weight
		}
		require.InDelta(t, 1, sum, eps, "point %d: barycentric closure", i)
	}
}

func ternaryScenario() []chem.PhaseEntry {
	return []chem.PhaseEntry{
		entry("Li", 0, chem.Composition{"Li": 1}),
		entry("Fe", 0, chem.Composition{"Fe": 1}),
		entry("O", 0, chem.Composition{"O": 1}),
		entry("LiFeO", -2, chem.Composition{"Li": 1, "Fe": 1, "O": 1}),
		entry("LiFeO-hi", -1, chem.Composition{"Li": 2, "Fe": 2, "O": 2}),
	}
}

func TestCompute_BinaryScenario(t *testing.T) {
	sys := chem.MustChemicalSystem("Na", "Cl")
	d, err := stability.Compute([]chem.PhaseEntry{
		entry("Na", 0, chem.Composition{"Na": 1}),
		entry("Cl", 0, chem.Composition{"Cl": 1}),
		entry("NaCl", -1, chem.Composition{"Na": 1, "Cl": 1}),
		entry("NaCl-meta", -0.5, chem.Composition{"Na": 1, "Cl": 1}),
	}, sys)
	require.NoError(t, err)
	require.NoError(t, d.Err)
	assert.Empty(t, d.Warnings)
	require.Len(t, d.Results, 4)

	for i := 0; i < 3; i++ {
		assert.True(t, d.Results[i].IsStable(), "entry %d", i)
		assert.Equal(t, 0.0, d.Results[i].EAboveHull)
	}
	meta := d.Results[3]
	assert.Equal(t, stability.Unstable, meta.Status)
	assert.InDelta(t, 0.5, meta.EAboveHull, eps)
	assert.InDelta(t, -1, meta.HullEnergy, eps)
	assert.False(t, meta.ApproximateReference)
	assert.Equal(t, []int{0, 1, 2}, d.Vertices)
	assert.Len(t, d.Facets, 2)
	for _, f := range d.Facets {
		assert.Less(t, f.Normal[1], 0.0)
	}
	requireInvariants(t, d)
}

func TestCompute_DegenerateTernary(t *testing.T) {
	sys := chem.MustChemicalSystem("Li", "Fe", "O")
	entries := []chem.PhaseEntry{
		entry("Li", 0, chem.Composition{"Li": 1}),
		entry("Fe", 0, chem.Composition{"Fe": 1}),
	}
	d, err := stability.Compute(entries, sys, stability.WithReferencePolicy(stability.ReferenceNone))
	require.NoError(t, err)
	require.ErrorIs(t, d.Err, stability.ErrDegenerateSystem)

	require.Len(t, d.Warnings, 1)
	assert.ErrorIs(t, d.Warnings[0], stability.ErrMissingReference)
	var w *stability.MissingReferenceWarning
	require.True(t, errors.As(d.Warnings[0], &w))
	assert.Equal(t, chem.Element("O"), w.Element)
	assert.False(t, w.Synthesized)

	assert.True(t, d.Results[0].IsStable())
	assert.True(t, d.Results[1].IsStable())

	q := d.Evaluate(entry("LiO", -1, chem.Composition{"Li": 1, "O": 1}))
	assert.Equal(t, stability.Indeterminate, q.Status)
	assert.ErrorIs(t, q.Err, stability.ErrDegenerateSystem)
	_, err = d.HullEnergyAt([]float64{1, 1, 1})
	assert.ErrorIs(t, err, stability.ErrDegenerateSystem)
}

func TestCompute_DegenerateDemotesNonVertices(t *testing.T) {
	sys := chem.MustChemicalSystem("Li", "Fe", "O")
	d, err := stability.Compute([]chem.PhaseEntry{
		entry("Li", 0, chem.Composition{"Li": 1}),
		entry("Fe", 0, chem.Composition{"Fe": 1}),
		entry("LiFe", 0, chem.Composition{"Li": 1, "Fe": 1}),
	}, sys, stability.WithReferencePolicy(stability.ReferenceNone))
	require.NoError(t, err)
	require.ErrorIs(t, d.Err, stability.ErrDegenerateSystem)
	assert.True(t, d.Results[0].IsStable())
	assert.Equal(t, stability.Indeterminate, d.Results[2].Status)
	assert.ErrorIs(t, d.Results[2].Err, stability.ErrDegenerateSystem)
	assert.Equal(t, -1, d.Results[2].Facet)
}

func TestCompute_UncoveredCompositionIsIndeterminate(t *testing.T) {
	// Three affinely independent points on the Li–Fe edge: not degenerate,
	// but nothing covers O-bearing compositions.
	sys := chem.MustChemicalSystem("Li", "Fe", "O")
	d, err := stability.Compute([]chem.PhaseEntry{
		entry("Li", 0, chem.Composition{"Li": 1}),
		entry("Fe", 0, chem.Composition{"Fe": 1}),
		entry("LiFe", 0.3, chem.Composition{"Li": 1, "Fe": 1}),
	}, sys, stability.WithReferencePolicy(stability.ReferenceNone))
	require.NoError(t, err)
	require.NoError(t, d.Err)
	assert.Equal(t, stability.Unstable, d.Results[2].Status)
	assert.InDelta(t, 0.3, d.Results[2].EAboveHull, eps)

	q := d.Evaluate(entry("LiO", -1, chem.Composition{"Li": 1, "O": 1}))
	assert.Equal(t, stability.Indeterminate, q.Status)
	assert.ErrorIs(t, q.Err, stability.ErrNotCovered)
	_, err = d.HullEnergyAt([]float64{1, 0, 1})
	assert.ErrorIs(t, err, stability.ErrNotCovered)
}

func TestCompute_SynthesizedReferenceMakesTernaryWellPosed(t *testing.T) {
	sys := chem.MustChemicalSystem("Li", "Fe", "O")
	d, err := stability.Compute([]chem.PhaseEntry{
		entry("Li", 0, chem.Composition{"Li": 1}),
		entry("Fe", 0, chem.Composition{"Fe": 1}),
	}, sys)
	require.NoError(t, err)
	require.NoError(t, d.Err)
	require.Len(t, d.Warnings, 1)
	require.Len(t, d.Points, 3)
	assert.True(t, d.Points[2].Synthesized)
	assert.Equal(t, -1, d.Points[2].Entry)
	assert.True(t, d.PointResults[2].IsStable(), "synthesized reference is a stable vertex")
	assert.True(t, d.PointResults[2].ApproximateReference)

	q := d.Evaluate(entry("LiO", 0.1, chem.Composition{"Li": 1, "O": 1}))
	assert.Equal(t, stability.Unstable, q.Status)
	assert.InDelta(t, 0.1, q.EAboveHull, eps)
	assert.True(t, q.ApproximateReference)
}

func TestCompute_TernaryScenario(t *testing.T) {
	sys := chem.MustChemicalSystem("Li", "Fe", "O")
	d, err := stability.Compute(ternaryScenario(), sys)
	require.NoError(t, err)
	require.NoError(t, d.Err)

	for i := 0; i < 4; i++ {
		assert.True(t, d.Results[i].IsStable(), "entry %d", i)
	}
	hi := d.Results[4]
	assert.Equal(t, stability.Unstable, hi.Status)
	assert.InDelta(t, 1, hi.EAboveHull, eps)
	assert.Len(t, d.Facets, 3)
	assert.Equal(t, []int{0, 1, 2, 3}, d.Vertices)
	assert.Equal(t, []int{0, 1, 2, 3}, d.StableEntries())
	assert.Equal(t, []int{4}, d.UnstableEntries())
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, d.TieLines())
	requireInvariants(t, d)

	e, err := d.HullEnergyAt([]float64{1, 1, 1})
	require.NoError(t, err)
	assert.InDelta(t, -2, e, eps)
	e, err = d.HullEnergyAt([]float64{1, 1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0, e, eps)
	_, err = d.HullEnergyAt([]float64{1, 1})
	assert.ErrorIs(t, err, chem.ErrFractionsLength)
}

func TestCompute_QuaternaryRandom(t *testing.T) {
	sys := chem.MustChemicalSystem("Li", "Fe", "Mn", "O")
	rng := rand.New(rand.NewSource(42))
	entries := []chem.PhaseEntry{
		entry("Li", 0, chem.Composition{"Li": 1}),
		entry("Fe", 0, chem.Composition{"Fe": 1}),
		entry("Mn", 0, chem.Composition{"Mn": 1}),
		entry("O", 0, chem.Composition{"O": 1}),
	}
	for i := 0; i < 10; i++ {
		entries = append(entries, entry("", -rng.Float64(), chem.Composition{
			"Li": 0.1 + rng.Float64(),
			"Fe": 0.1 + rng.Float64(),
			"Mn": 0.1 + rng.Float64(),
			"O":  0.1 + rng.Float64(),
		}))
	}
	d, err := stability.Compute(entries, sys)
	require.NoError(t, err)
	require.NoError(t, d.Err)
	requireInvariants(t, d)

	for i, r := range d.Results {
		assert.GreaterOrEqual(t, r.EAboveHull, 0.0, "entry %d", i)
		assert.NotEqual(t, stability.Indeterminate, r.Status, "entry %d", i)
	}
	for i := 0; i < 4; i++ {
		assert.True(t, d.Results[i].IsStable())
	}

	// Brute force: a 4-subset is a lower facet iff no point lies below its plane.
	elevated := make([][]float64, len(d.Points))
	for i, p := range d.Points {
		elevated[i] = p.Elevated()
	}
	want := make(map[[4]int]bool)
	n := len(elevated)
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			for c := b + 1; c < n; c++ {
				for e := c + 1; e < n; e++ {
					idx := [4]int{a, b, c, e}
					plane, ok := energyPlane(elevated, idx)
					if !ok {
						continue
					}
					lower := true
					for _, p := range elevated {
						if p[3] < plane(p)-eps {
							lower = false
							break
						}
					}
					if lower {
						want[idx] = true
					}
				}
			}
		}
	}
	got := make(map[[4]int]bool)
	for _, f := range d.Facets {
		require.Len(t, f.Points, 4)
		got[[4]int{f.Points[0], f.Points[1], f.Points[2], f.Points[3]}] = true
	}
	assert.Equal(t, want, got)
}

// energyPlane fits E = a·x + b through four elevated points.
func energyPlane(pts [][]float64, idx [4]int) (func([]float64) float64, bool) {
	rows := make([][]float64, 4)
	rhs := make([]float64, 4)
	for i, k := range idx {
		rows[i] = []float64{pts[k][0], pts[k][1], pts[k][2], 1}
		rhs[i] = pts[k][3]
	}
	m, err := matrix.NewDenseFrom(rows)
	if err != nil {
		return nil, false
	}
	coef, err := matrix.Solve(m, rhs, matrix.WithPivotTolerance(1e-9))
	if err != nil {
		return nil, false
	}

	return func(p []float64) float64 {
		return coef[0]*p[0] + coef[1]*p[1] + coef[2]*p[2] + coef[3]
	}, true
}

func TestCompute_FilteredEntries(t *testing.T) {
	sys := chem.MustChemicalSystem("Na", "Cl")
	d, err := stability.Compute([]chem.PhaseEntry{
		entry("Na", 0, chem.Composition{"Na": 1}),
		entry("KCl", -1, chem.Composition{"K": 1, "Cl": 1}),
		entry("void", 0, chem.Composition{"Na": 0}),
		entry("Cl", 0, chem.Composition{"Cl": 1}),
		entry("bad", math.NaN(), chem.Composition{"Na": 1}),
	}, sys)
	require.NoError(t, err)
	require.NoError(t, d.Err)
	require.Len(t, d.Results, 5)
	assert.Len(t, d.Points, 2)

	r := d.Results[1]
	assert.Equal(t, stability.Filtered, r.Status)
	assert.Equal(t, -1, r.Point)
	assert.ErrorIs(t, r.Err, chem.ErrOutsideSystem)
	var ee *stability.EntryError
	require.True(t, errors.As(r.Err, &ee))
	assert.Equal(t, 1, ee.Index)
	assert.Equal(t, "KCl", ee.ID)

	assert.ErrorIs(t, d.Results[2].Err, chem.ErrEmptyComposition)
	assert.ErrorIs(t, d.Results[4].Err, chem.ErrNonFiniteEnergy)
	assert.True(t, d.Results[3].IsStable())
	assert.Equal(t, 3, d.Results[3].Entry)
	assert.Equal(t, 1, d.Results[3].Point)
}

func TestCompute_DuplicatePureEntries(t *testing.T) {
	sys := chem.MustChemicalSystem("Na", "Cl")
	d, err := stability.Compute([]chem.PhaseEntry{
		entry("Na-a", 0, chem.Composition{"Na": 1}),
		entry("Na-b", -0.1, chem.Composition{"Na": 2}),
		entry("Cl", 0, chem.Composition{"Cl": 1}),
	}, sys)
	require.NoError(t, err)
	assert.True(t, d.Results[1].IsStable())
	assert.Equal(t, stability.Unstable, d.Results[0].Status)
	assert.InDelta(t, 0.1, d.Results[0].EAboveHull, eps)
	assert.NotContains(t, d.Vertices, 0)
	assert.Empty(t, d.Warnings)
}

func TestCompute_ReferenceLowest(t *testing.T) {
	sys := chem.MustChemicalSystem("Na", "Cl")
	d, err := stability.Compute([]chem.PhaseEntry{
		entry("Na", 0, chem.Composition{"Na": 1}),
		entry("NaCl", -1, chem.Composition{"Na": 1, "Cl": 1}),
	}, sys, stability.WithReferencePolicy(stability.ReferenceLowest))
	require.NoError(t, err)
	require.Len(t, d.Warnings, 1)
	var w *stability.MissingReferenceWarning
	require.True(t, errors.As(d.Warnings[0], &w))
	assert.Equal(t, chem.Element("Cl"), w.Element)
	assert.Equal(t, -1.0, w.Energy)
	assert.Equal(t, -1.0, d.Points[2].EnergyPerAtom)

	// The Na–Cl tie line sits at −0.5 for x = 0.5, so NaCl stays a vertex.
	assert.True(t, d.Results[1].IsStable())
	assert.False(t, d.Results[1].ApproximateReference)
	requireInvariants(t, d)
}

func TestCompute_NoEntries(t *testing.T) {
	sys := chem.MustChemicalSystem("Li", "Fe", "O")
	d, err := stability.Compute(nil, sys)
	require.NoError(t, err)
	require.NoError(t, d.Err)
	assert.Len(t, d.Warnings, 3)
	require.Len(t, d.PointResults, 3)
	for _, r := range d.PointResults {
		assert.True(t, r.IsStable())
	}

	d, err = stability.Compute(nil, sys, stability.WithReferencePolicy(stability.ReferenceNone))
	require.NoError(t, err)
	assert.ErrorIs(t, d.Err, stability.ErrDegenerateSystem)
	assert.Empty(t, d.Facets)
	assert.Nil(t, d.Hull())
}

func TestCompute_Config(t *testing.T) {
	sys := chem.MustChemicalSystem("Na", "Cl")
	for _, tol := range []float64{0, -1, 1, math.NaN(), math.Inf(1)} {
		_, err := stability.Compute(nil, sys, stability.WithTolerance(tol))
		assert.ErrorIs(t, err, stability.ErrInvalidTolerance, "tol=%g", tol)
	}
	_, err := stability.Compute(nil, chem.ChemicalSystem{})
	assert.ErrorIs(t, err, stability.ErrInvalidSystem)

	d, err := stability.Compute(nil, sys, stability.WithTolerance(1e-6))
	require.NoError(t, err)
	assert.Equal(t, 1e-6, d.Tolerance)
	assert.Equal(t, 1e-6, d.Hull().Tolerance())

	assert.Panics(t, func() { stability.WithReferencePolicy(stability.ReferencePolicy(9)) })
	assert.Panics(t, func() { stability.WithMaxReadmitRounds(-1) })
	assert.NotPanics(t, func() { stability.WithMaxReadmitRounds(0) })
}

func TestReferencePolicyText(t *testing.T) {
	for _, p := range []stability.ReferencePolicy{stability.ReferenceZero, stability.ReferenceLowest, stability.ReferenceNone} {
		b, err := p.MarshalText()
		require.NoError(t, err)
		var back stability.ReferencePolicy
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, p, back)
	}
	p, err := stability.ParseReferencePolicy(" Lowest ")
	require.NoError(t, err)
	assert.Equal(t, stability.ReferenceLowest, p)
	_, err = stability.ParseReferencePolicy("median")
	assert.ErrorIs(t, err, stability.ErrInvalidPolicy)
	assert.Equal(t, "ReferencePolicy(7)", stability.ReferencePolicy(7).String())
}

func TestSynthesizeReferences(t *testing.T) {
	sys := chem.MustChemicalSystem("Li", "Fe", "O")
	pts, errs := chem.NormalizeAll(ternaryScenario()[:4], sys)
	for _, err := range errs {
		require.NoError(t, err)
	}
	pts = append(pts, chem.NormalizedPoint{Fractions: []float64{1, 0}, EnergyPerAtom: 0.5, Entry: 4})

	input, all, warnings := stability.SynthesizeReferences(pts, sys, stability.ReferenceZero)
	assert.Empty(t, warnings)
	assert.Len(t, all, 5)
	assert.Equal(t, []int{0, 1, 2, 3}, input, "the higher Li duplicate stays out of the hull")

	input, all, warnings = stability.SynthesizeReferences(pts[3:4], sys, stability.ReferenceZero)
	assert.Len(t, warnings, 3)
	require.Len(t, all, 4)
	assert.Equal(t, []int{0, 1, 2, 3}, input)
	for i, axis := range []int{0, 1, 2} {
		p := all[1+i]
		assert.True(t, p.Synthesized)
		got, ok := p.PureAxis(eps)
		assert.True(t, ok)
		assert.Equal(t, axis, got)
	}
}

func TestDiagram_EvaluateBelowHull(t *testing.T) {
	sys := chem.MustChemicalSystem("Na", "Cl")
	d, err := stability.Compute([]chem.PhaseEntry{
		entry("Na", 0, chem.Composition{"Na": 1}),
		entry("Cl", 0, chem.Composition{"Cl": 1}),
		entry("NaCl", -1, chem.Composition{"Na": 1, "Cl": 1}),
	}, sys)
	require.NoError(t, err)

	r := d.Evaluate(entry("NaCl-deep", -2, chem.Composition{"Na": 1, "Cl": 1}))
	assert.True(t, r.IsStable())
	assert.Equal(t, -1, r.Entry)
	assert.Nil(t, r.Decomposition)
	assert.Len(t, d.Points, 3, "diagram is unchanged")

	r = d.Evaluate(entry("Na3Cl", 0, chem.Composition{"Na": 3, "Cl": 1}))
	assert.Equal(t, stability.Unstable, r.Status)
	assert.InDelta(t, 0.5, r.EAboveHull, eps)
	require.Len(t, r.Decomposition, 2)

	r = d.Evaluate(entry("K", 0, chem.Composition{"K": 1}))
	assert.Equal(t, stability.Filtered, r.Status)
	assert.ErrorIs(t, r.Err, chem.ErrOutsideSystem)
}

func TestDiagram_FormationEnergyAndProjection(t *testing.T) {
	sys := chem.MustChemicalSystem("Na", "Cl")
	d, err := stability.Compute([]chem.PhaseEntry{
		entry("Na", -1, chem.Composition{"Na": 1}),
		entry("Cl", -2, chem.Composition{"Cl": 1}),
		entry("NaCl", -3, chem.Composition{"Na": 1, "Cl": 1}),
	}, sys)
	require.NoError(t, err)
	fe, err := d.FormationEnergy(d.Points[2])
	require.NoError(t, err)
	assert.InDelta(t, -1.5, fe, eps)

	p, err := projection.New(2)
	require.NoError(t, err)
	coords, err := d.ProjectPoints(p, true)
	require.NoError(t, err)
	require.Len(t, coords, 3)
	assert.InDeltaSlice(t, []float64{0, 0}, coords[0], eps)
	assert.InDeltaSlice(t, []float64{1, 0}, coords[1], eps)
	assert.InDeltaSlice(t, []float64{0.5, -1.5}, coords[2], eps)

	p3, err := projection.New(3)
	require.NoError(t, err)
	_, err = d.ProjectPoints(p3, false)
	assert.ErrorIs(t, err, projection.ErrDimension)

	none, err := stability.Compute([]chem.PhaseEntry{entry("Na", 0, chem.Composition{"Na": 1})}, sys,
		stability.WithReferencePolicy(stability.ReferenceNone))
	require.NoError(t, err)
	_, err = none.FormationEnergy(none.Points[0])
	assert.ErrorIs(t, err, stability.ErrMissingReference)
}

func TestVisibleUnstableMonotonic(t *testing.T) {
	sys := chem.MustChemicalSystem("Li", "Fe", "Mn", "O")
	rng := rand.New(rand.NewSource(3))
	entries := make([]chem.PhaseEntry, 0, 60)
	for i := 0; i < 60; i++ {
		entries = append(entries, entry("", -rng.Float64(), chem.Composition{
			"Li": rng.Float64(), "Fe": rng.Float64(), "Mn": rng.Float64(), "O": rng.Float64(),
		}))
	}
	d, err := stability.Compute(entries, sys)
	require.NoError(t, err)
	require.NoError(t, d.Err)

	prev := -1
	for th := 0.0; th <= 1.0; th += 0.05 {
		n := stability.CountVisibleUnstable(d.Results, th)
		assert.GreaterOrEqual(t, n, prev)
		assert.Len(t, stability.VisibleUnstable(d.Results, th), n)
		prev = n
	}
	assert.Equal(t, len(d.UnstableEntries()), stability.CountVisibleUnstable(d.Results, math.Inf(1)))
	assert.Zero(t, stability.CountVisibleUnstable(d.Results, -1))
}

func TestCompute_MatchesHullVertices(t *testing.T) {
	sys := chem.MustChemicalSystem("Li", "Fe", "O")
	d, err := stability.Compute(ternaryScenario(), sys)
	require.NoError(t, err)
	var h *hull.Hull = d.Hull()
	require.NotNil(t, h)
	assert.Len(t, h.Lower(), len(d.Facets))
	for _, v := range d.Vertices {
		assert.True(t, d.PointResults[v].IsStable())
	}
}

func TestCompute_JoulePerMoleScale(t *testing.T) {
	sys := chem.MustChemicalSystem("Na", "Cl")
	d, err := stability.Compute([]chem.PhaseEntry{
		entry("Na", 0, chem.Composition{"Na": 1}),
		entry("Cl", 0, chem.Composition{"Cl": 1}),
		entry("NaCl", -1e5, chem.Composition{"Na": 1, "Cl": 1}),
		entry("Na3Cl", -5e4-100, chem.Composition{"Na": 3, "Cl": 1}),
		entry("Na3Cl-meta", -5e4, chem.Composition{"Na": 3, "Cl": 1}),
	}, sys)
	require.NoError(t, err)
	require.NoError(t, d.Err)
	requireInvariants(t, d)

	for i := 0; i < 4; i++ {
		assert.True(t, d.Results[i].IsStable(), "entry %d", i)
	}
	meta := d.Results[4]
	assert.Equal(t, stability.Unstable, meta.Status)
	assert.InDelta(t, 100, meta.EAboveHull, 1e-6)
	assert.Equal(t, []int{0, 1, 2, 3}, d.Vertices)
}

func TestCompute_EnergyUnitInvariance(t *testing.T) {
	systems := []chem.ChemicalSystem{
		chem.MustChemicalSystem("Li", "Fe", "O"),
		chem.MustChemicalSystem("Li", "Fe", "Mn", "O"),
	}
	for _, sys := range systems {
		for seed := int64(1); seed <= 4; seed++ {
			entries := randomEntries(rand.New(rand.NewSource(seed)), sys, 40)
			scaled := make([]chem.PhaseEntry, len(entries))
			for i, e := range entries {
				scaled[i] = e
				scaled[i].EnergyPerAtom *= 1e5
			}

			d, err := stability.Compute(entries, sys)
			require.NoError(t, err)
			require.NoError(t, d.Err)
			ds, err := stability.Compute(scaled, sys)
			require.NoError(t, err)
			require.NoError(t, ds.Err)

			assert.Equal(t, d.Vertices, ds.Vertices, "%s seed=%d", sys, seed)
			require.Len(t, ds.Results, len(d.Results))
			for i := range d.Results {
				assert.Equal(t, d.Results[i].Status, ds.Results[i].Status, "%s seed=%d entry %d", sys, seed, i)
				assert.InDelta(t, d.Results[i].EAboveHull*1e5, ds.Results[i].EAboveHull, 1e-6, "%s seed=%d entry %d", sys, seed, i)
			}
		}
	}
}
