package miroir

import (
	"fmt"

	"github.com/lukaszgryglicki/miroir/internal/geom"
)

// Ray is a half-line: an origin and a unit direction.
//
// The direction is normalized on construction, so every distance reported
// to or by the simulation is a Euclidean length. Rays are values: Advance and
// reflection build new rays and never touch the receiver's coordinates.
type Ray struct {
	Origin    geom.Point
	Direction geom.Vector
}

// NewRay validates origin and direction and normalizes the direction.
// Zero, NaN or Inf directions are rejected rather than propagated.
func NewRay(origin geom.Point, dir geom.Vector) (Ray, error) {
	if len(origin) == 0 || len(origin) != len(dir) {
		return Ray{}, fmt.Errorf("origin has dimension %d, direction %d: %w", len(origin), len(dir), ErrDimensionMismatch)
	}
	if !origin.IsFinite() || !dir.IsFinite() {
		return Ray{}, fmt.Errorf("ray origin %v direction %v: %w", origin, dir, ErrNonFinite)
	}
	l := dir.Len()
	if l == 0 {
		return Ray{}, fmt.Errorf("ray direction %v: %w", dir, ErrZeroDirection)
	}
	return Ray{Origin: origin.Clone(), Direction: dir.Mul(1 / l)}, nil
}

// MustRay is like NewRay but panics on invalid input. Meant for literals.
func MustRay(origin geom.Point, dir geom.Vector) Ray {
	r, err := NewRay(origin, dir)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Ray) Dim() int { return len(r.Origin) }

// At returns the point at signed distance t from the origin.
func (r Ray) At(t float64) geom.Point { return r.Origin.AddScaled(t, r.Direction) }

// Advance returns the ray moved forward (or backward if t < 0) by t.
func (r Ray) Advance(t float64) Ray {
	return Ray{Origin: r.At(t), Direction: r.Direction}
}

// Near reports whether both origins and both directions are within tol.
func (r Ray) Near(o Ray, tol float64) bool {
	return r.Origin.Near(o.Origin, tol) && r.Direction.Near(o.Direction, tol)
}

func (r Ray) String() string {
	return fmt.Sprintf("ray{origin: %v, direction: %v}", r.Origin, r.Direction)
}
