package fixture

import "errors"

var (
	// ErrInvalidFixture indicates a document that cannot be turned into a Set.
	ErrInvalidFixture = errors.New("fixture: invalid fixture")

	// ErrInvalidCount indicates a negative number of generated entries.
	ErrInvalidCount = errors.New("fixture: negative entry count")
)
