// SPDX-License-Identifier: MIT

package stability

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/phasehull/chem"
)

var (
	// ErrDegenerateSystem indicates fewer than d affinely independent
	// elevated points, even after reference synthesis.
	ErrDegenerateSystem = errors.New("stability: degenerate system")

	// ErrNumericalInstability indicates the hull could not be built or
	// verified; the batch fails closed.
	ErrNumericalInstability = errors.New("stability: numerical instability")

	// ErrMissingReference indicates a pure-element reference was absent.
	ErrMissingReference = errors.New("stability: missing pure-element reference")

	// ErrNotCovered indicates a composition outside every lower facet.
	ErrNotCovered = errors.New("stability: composition not covered by the lower hull")

	// ErrInvalidTolerance indicates a tolerance that is not finite and in (0, 1).
	ErrInvalidTolerance = errors.New("stability: invalid tolerance")

	// ErrInvalidSystem indicates a zero-value or otherwise invalid chem.ChemicalSystem.
	ErrInvalidSystem = errors.New("stability: invalid chemical system")

	// ErrInvalidPolicy indicates an unknown reference policy name.
	ErrInvalidPolicy = errors.New("stability: invalid reference policy")
)

// EntryError reports why a single entry was filtered out.
type EntryError struct {
	Index int // position in the input slice, −1 for ad-hoc queries
	ID    string
	Err   error
}

func (e *EntryError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("stability: entry %d (%s): %v", e.Index, e.ID, e.Err)
	}

	return fmt.Sprintf("stability: entry %d: %v", e.Index, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// MissingReferenceWarning reports a pure element without a measured entry.
// errors.Is(w, ErrMissingReference) holds.
type MissingReferenceWarning struct {
	Element     chem.Element
	Policy      ReferencePolicy
	Synthesized bool    // false under ReferenceNone
	Energy      float64 // energy of the synthesized point
}

func (w *MissingReferenceWarning) Error() string {
	if !w.Synthesized {
		return fmt.Sprintf("stability: no reference for %s (policy %s)", w.Element, w.Policy)
	}

	return fmt.Sprintf("stability: synthesized reference for %s at %g eV/atom (policy %s)", w.Element, w.Energy, w.Policy)
}

func (w *MissingReferenceWarning) Unwrap() error { return ErrMissingReference }
