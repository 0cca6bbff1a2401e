// SPDX-License-Identifier: MIT

package geom

import "errors"

var (
	// ErrEmpty indicates an operation that needs at least one point or vector got none.
	ErrEmpty = errors.New("geom: empty input")

	// ErrDimensionMismatch indicates vectors of different lengths, or a vector
	// count that does not fit the ambient dimension.
	ErrDimensionMismatch = errors.New("geom: dimension mismatch")

	// ErrZeroVector indicates a vector whose norm is zero (within tolerance)
	// where a direction was required.
	ErrZeroVector = errors.New("geom: zero-length vector")
)
