package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vector represents a direction (not a position) in n-dimensional space.
// Operations never modify their receiver; they allocate a new Vector.
type Vector []float64

// Vec builds a Vector from its coordinates.
func Vec(xs ...float64) Vector { return Vector(xs) }

// Zero returns the zero vector of dimension n.
func Zero(n int) Vector { return make(Vector, n) }

// Axis returns the i-th canonical unit vector of dimension n.
func Axis(n, i int) Vector {
	v := make(Vector, n)
	v[i] = 1
	return v
}

func (v Vector) Dim() int { return len(v) }

func (v Vector) Clone() Vector { return append(Vector(nil), v...) }

// Vector functions
func (a Vector) Add(b Vector) Vector { return floats.AddTo(make(Vector, len(a)), a, b) }
func (a Vector) Sub(b Vector) Vector { return floats.SubTo(make(Vector, len(a)), a, b) }
func (v Vector) Mul(s float64) Vector {
	return floats.ScaleTo(make(Vector, len(v)), s, v)
}
func (v Vector) Neg() Vector { return v.Mul(-1) }

// AddScaled returns a + s*b.
func (a Vector) AddScaled(s float64, b Vector) Vector {
	return floats.AddScaledTo(make(Vector, len(a)), a, s, b)
}

// Dot returns the dot product between two vectors of the same dimension.
func (a Vector) Dot(b Vector) float64 { return floats.Dot(a, b) }

// Len returns the Euclidean length of the vector.
func (v Vector) Len() float64 { return floats.Norm(v, 2) }

// Norm returns a unit-length version of the vector.
// If the vector is zero, it returns a copy of the input unchanged.
func (v Vector) Norm() Vector {
	l := v.Len()
	if l == 0 {
		return v.Clone()
	}
	return v.Mul(1 / l)
}

// IsFinite reports whether every coordinate is neither NaN nor ±Inf.
func (v Vector) IsFinite() bool { return isFinite(v) }

// IsZero reports whether every coordinate is exactly zero.
func (v Vector) IsZero() bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Near reports whether a and b are within tol of each other (Euclidean).
func (a Vector) Near(b Vector, tol float64) bool {
	return len(a) == len(b) && floats.Distance(a, b, 2) <= tol
}

func (v Vector) String() string { return fmt.Sprintf("%v", []float64(v)) }

func isFinite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
