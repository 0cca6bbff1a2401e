package hullcache

import "errors"

var (
	// ErrInvalidSize indicates a cache capacity below 1.
	ErrInvalidSize = errors.New("hullcache: size must be positive")

	// ErrInvalidRequest indicates a request whose diagram cannot be computed
	// (invalid system, tolerance or reference policy); it wraps the stability error.
	ErrInvalidRequest = errors.New("hullcache: invalid request")
)
