// SPDX-License-Identifier: MIT

package hull

import "errors"

var (
	// ErrTooFewPoints indicates Build was called without points.
	ErrTooFewPoints = errors.New("hull: too few points")

	// ErrDimension indicates ragged points or a dimension outside 1..MaxDim.
	ErrDimension = errors.New("hull: unsupported dimension")

	// ErrNonFinite indicates a NaN or ±Inf coordinate.
	ErrNonFinite = errors.New("hull: non-finite coordinate")

	// ErrNumericalInstability indicates a collapsed facet or a hull whose
	// ridge topology is broken; callers must not trust any facet.
	ErrNumericalInstability = errors.New("hull: numerical instability")
)
