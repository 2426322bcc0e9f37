package miroir

import "errors"

var (
	ErrZeroDirection     = errors.New("ray direction must be non-zero")
	ErrNonFinite         = errors.New("coordinates must be finite")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrDependentBasis    = errors.New("tangent basis vectors must be linearly independent")
	ErrBasisTooLarge     = errors.New("tangent basis must have fewer vectors than the space dimension")
	ErrBadSteps          = errors.New("max steps must be positive")
	ErrBadTolerance      = errors.New("tolerance must be finite and non-negative")
)
