package fixture

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/katalvlaran/phasehull/chem"
)

// Generator defaults.
const (
	DefaultDepth          = 1.0
	DefaultSpread         = 0.1
	DefaultFrequency      = 2.0
	DefaultMaxCoefficient = 6
	DefaultOctaves        = 3

	persistence = 0.5
)

// GenOption configures Generate.
type GenOption func(*genConfig)

type genConfig struct {
	depth     float64
	spread    float64
	frequency float64
	maxCoef   int
	octaves   int
}

// WithDepth sets the deepest formation energy of the landscape (eV/atom).
// Panics if depth is negative or not finite.
func WithDepth(depth float64) GenOption {
	if depth < 0 || math.IsNaN(depth) || math.IsInf(depth, 0) {
		panic("fixture: WithDepth requires a finite depth >= 0")
	}
	return func(c *genConfig) { c.depth = depth }
}

// WithSpread sets the maximum random offset above the landscape, which
// separates polymorphs sharing a composition. Panics if spread is negative
// or not finite.
func WithSpread(spread float64) GenOption {
	if spread < 0 || math.IsNaN(spread) || math.IsInf(spread, 0) {
		panic("fixture: WithSpread requires a finite spread >= 0")
	}
	return func(c *genConfig) { c.spread = spread }
}

// WithFrequency sets the base noise frequency. Panics unless f > 0.
func WithFrequency(f float64) GenOption {
	if !(f > 0) || math.IsInf(f, 0) {
		panic("fixture: WithFrequency requires a finite f > 0")
	}
	return func(c *genConfig) { c.frequency = f }
}

// WithMaxCoefficient bounds the integer stoichiometric coefficients.
// Panics if n < 1.
func WithMaxCoefficient(n int) GenOption {
	if n < 1 {
		panic("fixture: WithMaxCoefficient requires n >= 1")
	}
	return func(c *genConfig) { c.maxCoef = n }
}

// WithOctaves sets the number of noise octaves. Panics if n < 1.
func WithOctaves(n int) GenOption {
	if n < 1 {
		panic("fixture: WithOctaves requires n >= 1")
	}
	return func(c *genConfig) { c.octaves = n }
}

// Generate returns one zero-energy reference per element followed by n
// entries with small integer stoichiometries. The output depends only on
// sys, n, seed and the options.
//
// Energy of a mixture with fractions x:
//
//	E = −depth · m(x) · noise(x) + spread · u,  m(x) = (1 − Σxᵢ²)/(1 − 1/d)
//
// where noise is normalised fractal OpenSimplex noise in [0, 1] and u is
// uniform in [0, 1).
func Generate(sys chem.ChemicalSystem, n int, seed int64, opts ...GenOption) ([]chem.PhaseEntry, error) {
	if !sys.Valid() {
		return nil, fmt.Errorf("Generate: %w", chem.ErrSystemSize)
	}
	if n < 0 {
		return nil, fmt.Errorf("Generate(%d): %w", n, ErrInvalidCount)
	}
	cfg := genConfig{
		depth:     DefaultDepth,
		spread:    DefaultSpread,
		frequency: DefaultFrequency,
		maxCoef:   DefaultMaxCoefficient,
		octaves:   DefaultOctaves,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := sys.Dim()
	rng := rand.New(rand.NewSource(seed))
	noise := opensimplex.NewNormalized(seed)
	entries := make([]chem.PhaseEntry, 0, d+n)
	var i, k int
	for i = 0; i < d; i++ {
		el := sys.Element(i)
		entries = append(entries, chem.PhaseEntry{
			ID:          string(el),
			Composition: chem.Composition{el: 1},
			Metadata:    map[string]string{"source": "reference"},
		})
	}

	amounts := make([]int, d)
	frac := make([]float64, d)
	for k = 0; k < n; k++ {
		total := 0
		for total == 0 {
			for i = range amounts {
				amounts[i] = rng.Intn(cfg.maxCoef + 1)
				total += amounts[i]
			}
		}
		comp := make(chem.Composition, d)
		var sq float64
		for i = range amounts {
			frac[i] = float64(amounts[i]) / float64(total)
			sq += frac[i] * frac[i]
			if amounts[i] > 0 {
				comp[sys.Element(i)] = float64(amounts[i])
			}
		}
		mixing := (1 - sq) / (1 - 1/float64(d))
		energy := -cfg.depth*mixing*fractal(noise, frac[:d-1], cfg) + cfg.spread*rng.Float64()

		entries = append(entries, chem.PhaseEntry{
			ID:            "gen-" + strconv.Itoa(k),
			Composition:   comp,
			EnergyPerAtom: energy,
			Metadata:      map[string]string{"source": "generated", "seed": strconv.FormatInt(seed, 10)},
		})
	}

	return entries, nil
}

// fractal layers octaves of noise over the first d−1 fractions; the result
// stays in [0, 1].
func fractal(noise opensimplex.Noise, x []float64, cfg genConfig) float64 {
	var total, maxVal float64
	amplitude, f := 1.0, cfg.frequency
	for o := 0; o < cfg.octaves; o++ {
		var v float64
		switch len(x) {
		case 1:
			v = noise.Eval2(x[0]*f, 0.5)
		case 2:
			v = noise.Eval2(x[0]*f, x[1]*f)
		default:
			v = noise.Eval3(x[0]*f, x[1]*f, x[2]*f)
		}
		total += v * amplitude
		maxVal += amplitude
		amplitude *= persistence
		f *= 2
	}

	return total / maxVal
}
