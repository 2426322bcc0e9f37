package geom

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Point represents a position in n-dimensional space.
type Point []float64

// Pt builds a Point from its coordinates.
func Pt(xs ...float64) Point { return Point(xs) }

// Origin returns the origin of the n-dimensional space.
func Origin(n int) Point { return make(Point, n) }

func (p Point) Dim() int { return len(p) }

func (p Point) Clone() Point { return append(Point(nil), p...) }

// Add lets you translate a Point by a Vector.
func (p Point) Add(v Vector) Point { return floats.AddTo(make(Point, len(p)), p, v) }

// AddScaled returns p + s*v.
func (p Point) AddScaled(s float64, v Vector) Point {
	return floats.AddScaledTo(make(Point, len(p)), p, s, v)
}

// Sub returns the vector going from q to p.
func (p Point) Sub(q Point) Vector { return floats.SubTo(make(Vector, len(p)), p, q) }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return floats.Distance(p, q, 2) }

// Near reports whether p and q are within tol of each other.
func (p Point) Near(q Point, tol float64) bool {
	return len(p) == len(q) && p.Dist(q) <= tol
}

// Vector returns the position vector of p (p - origin).
func (p Point) Vector() Vector { return Vector(p).Clone() }

func (p Point) IsFinite() bool { return isFinite(p) }

func (p Point) String() string { return fmt.Sprintf("%v", []float64(p)) }
