// SPDX-License-Identifier: MIT

package hull

import "math"

// DefaultTolerance is the relative tolerance for coplanarity and visibility tests.
const DefaultTolerance = 1e-7

// MaxDim is the largest supported ambient dimension (quaternary system: 3 fractions + energy).
const MaxDim = 4

const panicToleranceInvalid = "hull: WithTolerance: tol must be finite and > 0"

// Option configures Build.
type Option func(*Options)

// Options holds the effective Build configuration.
type Options struct {
	tol float64
}

// WithTolerance sets the relative tolerance ε.
//
// Errors:
//   - Panics when tol is NaN, Inf or ≤ 0.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

func gatherOptions(opts ...Option) Options {
	o := Options{tol: DefaultTolerance}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
