// SPDX-License-Identifier: MIT

package chem

import "errors"

var (
	// ErrUnknownElement indicates a symbol outside the periodic-table vocabulary.
	ErrUnknownElement = errors.New("chem: unknown element symbol")

	// ErrSystemSize indicates a chemical system with fewer than MinSystemSize
	// or more than MaxSystemSize distinct elements.
	ErrSystemSize = errors.New("chem: chemical system must have 2 to 4 distinct elements")

	// ErrOutsideSystem indicates a composition with a positive amount of an
	// element that is not part of the target chemical system.
	ErrOutsideSystem = errors.New("chem: composition has elements outside the chemical system")

	// ErrEmptyComposition indicates that no positive amount remains after
	// dropping zero and negative amounts.
	ErrEmptyComposition = errors.New("chem: composition has no positive amounts")

	// ErrNonFiniteAmount indicates a NaN or ±Inf amount in a composition.
	ErrNonFiniteAmount = errors.New("chem: composition amount is NaN or Inf")

	// ErrNonFiniteEnergy indicates a NaN or ±Inf energy per atom.
	ErrNonFiniteEnergy = errors.New("chem: energy per atom is NaN or Inf")

	// ErrFractionsLength indicates a fraction vector whose length does not
	// match the chemical system.
	ErrFractionsLength = errors.New("chem: fraction vector length does not match the system")
)
