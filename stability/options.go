// SPDX-License-Identifier: MIT

package stability

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/phasehull/hull"
)

// ---------- Defaults (single source of truth) ----------

// DefaultTolerance is the relative tolerance ε shared by hull construction
// and evaluation.
const DefaultTolerance = hull.DefaultTolerance

// DefaultMaxReadmitRounds bounds how often Compute rebuilds the hull after
// finding points below it.
const DefaultMaxReadmitRounds = 3

const (
	panicPolicyInvalid = "stability: WithReferencePolicy: unknown policy"
	panicRoundsInvalid = "stability: WithMaxReadmitRounds: rounds must be >= 0"
)

// ReferencePolicy selects the energy of synthesized pure-element references.
type ReferencePolicy int

const (
	// ReferenceZero synthesizes missing references at 0 eV/atom.
	ReferenceZero ReferencePolicy = iota
	// ReferenceLowest synthesizes at the lowest observed energy, capped at 0.
	ReferenceLowest
	// ReferenceNone never synthesizes; the hull may be degenerate.
	ReferenceNone
)

var policyNames = [...]string{"zero", "lowest", "none"}

func (p ReferencePolicy) valid() bool { return p >= ReferenceZero && p <= ReferenceNone }

func (p ReferencePolicy) String() string {
	if !p.valid() {
		return fmt.Sprintf("ReferencePolicy(%d)", int(p))
	}

	return policyNames[p]
}

// ParseReferencePolicy accepts "zero", "lowest" or "none" (case-insensitive).
func ParseReferencePolicy(s string) (ReferencePolicy, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range policyNames {
		if s == name {
			return ReferencePolicy(i), nil
		}
	}

	return 0, fmt.Errorf("ParseReferencePolicy(%q): %w", s, ErrInvalidPolicy)
}

// MarshalText implements encoding.TextMarshaler.
func (p ReferencePolicy) MarshalText() ([]byte, error) {
	if !p.valid() {
		return nil, fmt.Errorf("MarshalText(%d): %w", int(p), ErrInvalidPolicy)
	}

	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *ReferencePolicy) UnmarshalText(b []byte) error {
	v, err := ParseReferencePolicy(string(b))
	if err != nil {
		return err
	}
	*p = v

	return nil
}

// Option configures Compute.
type Option func(*Options)

// Options stores the effective configuration.
type Options struct {
	tol       float64
	policy    ReferencePolicy
	maxRounds int
}

// WithTolerance sets the relative tolerance ε. The value usually comes from
// user configuration, so Compute validates it and returns ErrInvalidTolerance
// instead of panicking.
func WithTolerance(tol float64) Option {
	return func(o *Options) { o.tol = tol }
}

// WithReferencePolicy selects how missing pure-element references are handled.
//
// Errors:
//   - Panics on a value outside the declared policies.
func WithReferencePolicy(p ReferencePolicy) Option {
	if !p.valid() {
		panic(panicPolicyInvalid)
	}

	return func(o *Options) { o.policy = p }
}

// WithMaxReadmitRounds bounds the rebuild loop; 0 disables re-admission,
// so any point below the hull fails the batch closed.
//
// Errors:
//   - Panics when n < 0.
func WithMaxReadmitRounds(n int) Option {
	if n < 0 {
		panic(panicRoundsInvalid)
	}

	return func(o *Options) { o.maxRounds = n }
}

func defaultOptions() Options {
	return Options{tol: DefaultTolerance, policy: ReferenceZero, maxRounds: DefaultMaxReadmitRounds}
}

func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

func validTolerance(tol float64) bool {
	return !math.IsNaN(tol) && !math.IsInf(tol, 0) && tol > 0 && tol < 1
}
