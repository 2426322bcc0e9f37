package miroir

import (
	"fmt"
	"math"

	"github.com/lukaszgryglicki/miroir/internal/geom"
)

// Tolerance holds the numerical thresholds of the resolver.
type Tolerance struct {
	// Epsilon is the strict lower bound on accepted distances. Contacts at
	// or below it are the surface the ray just left, re-detected through
	// roundoff.
	Epsilon float64
	// Tie is how much closer a later candidate must be to replace the
	// current best. Within Tie, the first-reported candidate wins.
	Tie float64
}

// DefaultTolerance returns DefaultEpsilon and DefaultTie.
func DefaultTolerance() Tolerance {
	return Tolerance{Epsilon: DefaultEpsilon, Tie: DefaultTie}
}

func (t Tolerance) validate() error {
	for _, x := range []float64{t.Epsilon, t.Tie} {
		if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("tolerance %+v: %w", t, ErrBadTolerance)
		}
	}
	return nil
}

// Intersection is the contact chosen by the resolver.
type Intersection struct {
	Distance float64
	Point    geom.Point
	Tangent  TangentSpace
	// Index is the position of the chosen candidate in report order.
	Index int
}

// Closest returns the index of the nearest candidate with a finite distance
// strictly above tol.Epsilon. Ties within tol.Tie go to the first reported.
func Closest(cands []Candidate, tol Tolerance) (int, bool) {
	best := -1
	bestD := math.Inf(1)
	for i, c := range cands {
		d := c.Distance
		if math.IsNaN(d) || math.IsInf(d, 0) || d <= tol.Epsilon {
			continue
		}
		if best < 0 || d < bestD-tol.Tie {
			best, bestD = i, d
		}
	}
	return best, best >= 0
}

// Candidates runs one query and returns every raw candidate, unfiltered.
func Candidates(ray Ray, m Mirror) []Candidate {
	ctx := NewContext(ray)
	m.Query(ray, ctx)
	return ctx.candidates
}

// ClosestIntersection queries m with a fresh context and returns the nearest
// valid contact. false means the ray escapes to infinity.
func ClosestIntersection(ray Ray, m Mirror, tol Tolerance) (Intersection, bool) {
	cands := Candidates(ray, m)
	i, ok := Closest(cands, tol)
	if !ok {
		return Intersection{}, false
	}
	c := cands[i]
	return Intersection{
		Distance: c.Distance,
		Point:    ray.At(c.Distance),
		Tangent:  c.Tangent,
		Index:    i,
	}, true
}

// Resolver binds a tolerance to ClosestIntersection.
type Resolver struct {
	Tolerance Tolerance
}

func (r Resolver) Resolve(ray Ray, m Mirror) (Intersection, bool) {
	return ClosestIntersection(ray, m, r.Tolerance)
}
