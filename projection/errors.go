// SPDX-License-Identifier: MIT

package projection

import "errors"

var (
	// ErrDimension indicates an unsupported system size or a vector of the wrong length.
	ErrDimension = errors.New("projection: dimension mismatch")

	// ErrInvalidFractions indicates negative fractions or fractions summing to zero.
	ErrInvalidFractions = errors.New("projection: invalid fractions")

	// ErrNonFinite indicates a NaN or ±Inf input.
	ErrNonFinite = errors.New("projection: non-finite value")

	// ErrDegenerateFacet indicates facet points that do not span a hyperplane.
	ErrDegenerateFacet = errors.New("projection: degenerate facet")
)
