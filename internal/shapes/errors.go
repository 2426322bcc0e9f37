package shapes

import "errors"

var (
	ErrBadRadius     = errors.New("radius must be finite and > 0")
	ErrBadVertices   = errors.New("wrong number of vertices")
	ErrDegenerate    = errors.New("shape is degenerate")
	ErrBadRotation   = errors.New("matrix is not a rotation")
	ErrEmptyPolytope = errors.New("polytope needs at least one facet")
)
