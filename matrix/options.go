// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the factorization kernels.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

// ---------- Defaults (single source of truth) ----------

// DefaultPivotTolerance is the absolute magnitude at or below which an LU
// pivot is treated as zero (ErrSingular). Hull systems are built from
// coordinates in [0,1] and energies of order 1, so 1e-12 sits well above
// double-precision round-off while still rejecting genuinely degenerate
// simplices.
const DefaultPivotTolerance = 1e-12

// ---------- Internal panic messages (no magic strings) ----------

const panicPivotToleranceInvalid = "matrix: WithPivotTolerance: tol must be finite, non-negative"

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Public entry points accept `...Option` and resolve them via gatherOptions.
type Options struct {
	pivotTol float64 // >= 0; DefaultPivotTolerance
}

// WithPivotTolerance sets the singularity threshold used by LU, Solve, Det
// and Inverse.
//
// Errors:
//   - Panics with a stable message when tol is NaN, Inf or negative.
//
// AI-Hints:
//   - Use 0 to accept any non-zero pivot (exact arithmetic expectations).
func WithPivotTolerance(tol float64) Option {
	if isNonFinite(tol) || tol < 0 {
		panic(panicPivotToleranceInvalid)
	}

	return func(o *Options) { o.pivotTol = tol }
}

// defaultOptions returns Options with every field set to its documented default.
func defaultOptions() Options {
	return Options{pivotTol: DefaultPivotTolerance}
}

// gatherOptions applies opts in order over the defaults; nil options are skipped.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
