package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// PlaneAngle is a rotation by Angle radians in the coordinate plane spanned
// by axes I and J (I != J).
type PlaneAngle struct {
	I, J  int
	Angle float64
}

// Identity returns the n×n identity matrix.
func Identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// planeRotation is the Givens rotation in the (i, j) plane.
func planeRotation(n int, a PlaneAngle) *mat.Dense {
	c, s := math.Cos(a.Angle), math.Sin(a.Angle)
	m := Identity(n)
	m.Set(a.I, a.I, c)
	m.Set(a.I, a.J, -s)
	m.Set(a.J, a.I, s)
	m.Set(a.J, a.J, c)
	return m
}

// Rotation composes plane rotations, applying angles[0] first.
func Rotation(n int, angles []PlaneAngle) (*mat.Dense, error) {
	r := Identity(n)
	for _, a := range angles {
		if a.I < 0 || a.J < 0 || a.I >= n || a.J >= n || a.I == a.J {
			return nil, fmt.Errorf("invalid rotation plane (%d, %d) in dimension %d", a.I, a.J, n)
		}
		var next mat.Dense
		next.Mul(planeRotation(n, a), r)
		r = &next
	}
	return r, nil
}

// IsRotation reports whether m is square of size n and orthogonal.
func IsRotation(m mat.Matrix, n int) bool {
	r, c := m.Dims()
	if r != n || c != n {
		return false
	}
	var mtm mat.Dense
	mtm.Mul(m.T(), m)
	return mat.EqualApprox(&mtm, Identity(n), 1e-9)
}

// Apply returns m·v.
func Apply(m mat.Matrix, v Vector) Vector {
	var out mat.VecDense
	out.MulVec(m, mat.NewVecDense(len(v), v.Clone()))
	res := make(Vector, len(v))
	for i := range res {
		res[i] = out.AtVec(i)
	}
	return res
}
