package miroir

import (
	"fmt"
	"math"

	"github.com/lukaszgryglicki/miroir/internal/geom"
)

// TangentSpace is the affine tangent subspace of a mirror at a contact
// point: a point plus an orthonormal basis of its direction space.
//
// A hyperplane may instead be given by its unit normal (TangentFromNormal),
// which skips the basis entirely; most curved surfaces report that form.
type TangentSpace struct {
	Point geom.Point

	basis  []geom.Vector // orthonormal, len < dim
	normal geom.Vector   // unit, non-nil only for the normal form
}

// NewTangentSpace orthonormalizes basis. The family must be free and hold
// fewer vectors than the space dimension. An empty basis is a vertex.
func NewTangentSpace(point geom.Point, basis ...geom.Vector) (TangentSpace, error) {
	n := len(point)
	if n == 0 {
		return TangentSpace{}, fmt.Errorf("tangent point has zero dimension: %w", ErrDimensionMismatch)
	}
	if len(basis) >= n {
		return TangentSpace{}, fmt.Errorf("%d basis vectors in dimension %d: %w", len(basis), n, ErrBasisTooLarge)
	}
	for i, v := range basis {
		if len(v) != n {
			return TangentSpace{}, fmt.Errorf("basis vector #%d has dimension %d, expected %d: %w", i, len(v), n, ErrDimensionMismatch)
		}
	}
	onb, err := geom.Orthonormalize(basis)
	if err != nil {
		return TangentSpace{}, fmt.Errorf("%w: %v", ErrDependentBasis, err)
	}
	return TangentSpace{Point: point.Clone(), basis: onb}, nil
}

// TangentFromNormal builds the tangent hyperplane through point orthogonal
// to normal. The normal need not be unit length but must be non-zero.
func TangentFromNormal(point geom.Point, normal geom.Vector) (TangentSpace, error) {
	if len(point) == 0 || len(point) != len(normal) {
		return TangentSpace{}, fmt.Errorf("point has dimension %d, normal %d: %w", len(point), len(normal), ErrDimensionMismatch)
	}
	l := normal.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return TangentSpace{}, fmt.Errorf("normal %v: %w", normal, ErrDependentBasis)
	}
	return TangentSpace{Point: point.Clone(), normal: normal.Mul(1 / l)}, nil
}

// At returns the same direction space anchored at p.
func (t TangentSpace) At(p geom.Point) TangentSpace {
	t.Point = p
	return t
}

// Dim returns the dimension of the tangent direction space.
func (t TangentSpace) Dim() int {
	if t.normal != nil {
		return len(t.normal) - 1
	}
	return len(t.basis)
}

// Basis returns an orthonormal basis of the direction space. For the
// normal form it is computed on demand.
func (t TangentSpace) Basis() []geom.Vector {
	if t.normal != nil {
		return geom.Complement([]geom.Vector{t.normal}, len(t.normal))
	}
	return append([]geom.Vector(nil), t.basis...)
}

// Normal returns the unit normal if t was built from one.
func (t TangentSpace) Normal() (geom.Vector, bool) {
	return t.normal, t.normal != nil
}

// IsHyperplane reports whether the direction space has codimension one.
func (t TangentSpace) IsHyperplane() bool { return t.Dim() == len(t.Point)-1 }

// Project returns the orthogonal projection of v onto the direction space.
func (t TangentSpace) Project(v geom.Vector) geom.Vector {
	if t.normal != nil {
		return v.AddScaled(-v.Dot(t.normal), t.normal)
	}
	return geom.Project(v, t.basis)
}

// reflect keeps the tangential part of v and inverts the rest.
func (t TangentSpace) reflect(v geom.Vector) geom.Vector {
	if t.normal != nil {
		return v.AddScaled(-2*v.Dot(t.normal), t.normal)
	}
	return geom.Project(v, t.basis).Mul(2).Sub(v)
}

// Distance returns the signed distance along ray to the affine tangent
// hyperplane. It fails for lower-dimensional tangent spaces and for rays
// parallel to the hyperplane.
func (t TangentSpace) Distance(ray Ray) (float64, bool) {
	if len(t.Point) != ray.Dim() || !t.IsHyperplane() {
		return 0, false
	}
	if t.normal != nil {
		u := ray.Direction.Dot(t.normal)
		if math.Abs(u) <= parallelEps {
			return 0, false
		}
		return t.Point.Sub(ray.Origin).Dot(t.normal) / u, true
	}
	cols := make([]geom.Vector, 0, ray.Dim())
	cols = append(cols, ray.Direction)
	for _, e := range t.basis {
		cols = append(cols, e.Neg())
	}
	x, err := geom.Solve(cols, t.Point.Sub(ray.Origin))
	if err != nil {
		return 0, false
	}
	return x[0], true
}

func (t TangentSpace) String() string {
	if t.normal != nil {
		return fmt.Sprintf("tangent{point: %v, normal: %v}", t.Point, t.normal)
	}
	return fmt.Sprintf("tangent{point: %v, basis: %v}", t.Point, t.basis)
}
