// SPDX-License-Identifier: MIT

package projection

import (
	"fmt"
	"math"

	"github.com/katalvlaran/phasehull/matrix"
)

// FractionTolerance is how far below zero a fraction may be before Project
// rejects it; such small negatives are treated as zero.
const FractionTolerance = 1e-9

// corners holds the vertex layout per system size; corners[d][i] is the
// position of element i.
var corners = map[int][][]float64{
	2: {{0}, {1}},
	3: {{0, 0}, {1, 0}, {0.5, math.Sqrt(3) / 2}},
	4: {{0, 0, 0}, {1, 0, 0}, {0.5, math.Sqrt(3) / 2, 0}, {0.5, math.Sqrt(3) / 6, math.Sqrt(2.0 / 3)}},
}

// Projector maps d barycentric fractions to (d−1)-dimensional coordinates.
// It is immutable and safe for concurrent use.
type Projector struct {
	d       int
	corners [][]float64
	inv     *matrix.Dense
}

// New returns the projector for a d-element system, d ∈ {2, 3, 4}.
func New(d int) (*Projector, error) {
	cs, ok := corners[d]
	if !ok {
		return nil, fmt.Errorf("New(%d): %w", d, ErrDimension)
	}

	m, err := matrix.NewDense(d, d)
	if err != nil {
		return nil, fmt.Errorf("New(%d): %w", d, err)
	}
	var i, j int
	for i = 0; i < d; i++ {
		for j = 0; j < d-1; j++ {
			if err = m.Set(j, i, cs[i][j]); err != nil {
				return nil, fmt.Errorf("New(%d): %w", d, err)
			}
		}
		if err = m.Set(d-1, i, 1); err != nil {
			return nil, fmt.Errorf("New(%d): %w", d, err)
		}
	}
	inv, err := matrix.Inverse(m)
	if err != nil {
		return nil, fmt.Errorf("New(%d): %w", d, err)
	}

	return &Projector{d: d, corners: cs, inv: inv}, nil
}

func mustNew(d int) *Projector {
	p, err := New(d)
	if err != nil {
		panic(err)
	}

	return p
}

// Dim returns the system size d.
func (p *Projector) Dim() int { return p.d }

// Corner returns a copy of the display position of element i.
func (p *Projector) Corner(i int) []float64 {
	return append([]float64(nil), p.corners[i]...)
}

// Project maps d fractions to d−1 coordinates. Fractions are renormalised to
// sum to 1; values in [−FractionTolerance, 0) count as zero.
//
// Errors:
//   - ErrDimension when len(fractions) != d.
//   - ErrNonFinite, ErrInvalidFractions for NaN/Inf, negative or all-zero input.
func (p *Projector) Project(fractions []float64) ([]float64, error) {
	w, err := p.weights(fractions)
	if err != nil {
		return nil, fmt.Errorf("Project: %w", err)
	}
	out := make([]float64, p.d-1)
	var i, j int
	for i = range w {
		for j = range out {
			out[j] += w[i] * p.corners[i][j]
		}
	}

	return out, nil
}

// ProjectWithEnergy is Project with energy appended as the last axis.
func (p *Projector) ProjectWithEnergy(fractions []float64, energy float64) ([]float64, error) {
	if math.IsNaN(energy) || math.IsInf(energy, 0) {
		return nil, fmt.Errorf("ProjectWithEnergy: energy: %w", ErrNonFinite)
	}
	out, err := p.Project(fractions)
	if err != nil {
		return nil, err
	}

	return append(out, energy), nil
}

// Unproject recovers d fractions from d−1 coordinates. Points outside the
// simplex are clamped onto it: negative weights are zeroed and the rest
// renormalised.
//
// Errors:
//   - ErrDimension when len(point) != d−1, ErrNonFinite for NaN/Inf.
func (p *Projector) Unproject(point []float64) ([]float64, error) {
	if len(point) != p.d-1 {
		return nil, fmt.Errorf("Unproject: got %d coordinates, want %d: %w", len(point), p.d-1, ErrDimension)
	}
	x := make([]float64, p.d)
	for i, v := range point {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("Unproject: %w", ErrNonFinite)
		}
		x[i] = v
	}
	x[p.d-1] = 1

	w, err := matrix.MatVec(p.inv, x)
	if err != nil {
		return nil, fmt.Errorf("Unproject: %w", err)
	}
	var sum float64
	for i := range w {
		if w[i] < 0 {
			w[i] = 0
		}
		sum += w[i]
	}
	for i := range w {
		w[i] /= sum
	}

	return w, nil
}

// UnprojectWithEnergy splits off the trailing energy axis and unprojects the rest.
func (p *Projector) UnprojectWithEnergy(point []float64) ([]float64, float64, error) {
	if len(point) != p.d {
		return nil, 0, fmt.Errorf("UnprojectWithEnergy: got %d coordinates, want %d: %w", len(point), p.d, ErrDimension)
	}
	e := point[p.d-1]
	if math.IsNaN(e) || math.IsInf(e, 0) {
		return nil, 0, fmt.Errorf("UnprojectWithEnergy: energy: %w", ErrNonFinite)
	}
	w, err := p.Unproject(point[:p.d-1])
	if err != nil {
		return nil, 0, err
	}

	return w, e, nil
}

// weights validates fractions and renormalises them.
func (p *Projector) weights(fractions []float64) ([]float64, error) {
	if len(fractions) != p.d {
		return nil, fmt.Errorf("got %d fractions, want %d: %w", len(fractions), p.d, ErrDimension)
	}
	w := make([]float64, p.d)
	var sum float64
	for i, f := range fractions {
		switch {
		case math.IsNaN(f) || math.IsInf(f, 0):
			return nil, ErrNonFinite
		case f < -FractionTolerance:
			return nil, fmt.Errorf("fraction %d = %g: %w", i, f, ErrInvalidFractions)
		case f > 0:
			w[i] = f
			sum += f
		}
	}
	if sum == 0 {
		return nil, fmt.Errorf("fractions sum to zero: %w", ErrInvalidFractions)
	}
	for i := range w {
		w[i] /= sum
	}

	return w, nil
}
