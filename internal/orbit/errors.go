package orbit

import "errors"

var (
	// ErrInvalidElements indicates a set of Keplerian elements outside the
	// elliptic domain (e ∈ [0,1), a > 0, finite angles).
	ErrInvalidElements = errors.New("orbit: invalid keplerian elements")

	// ErrInvalidMu indicates a central body with a non-positive μ.
	ErrInvalidMu = errors.New("orbit: central body has non-positive gravitational parameter")
)
