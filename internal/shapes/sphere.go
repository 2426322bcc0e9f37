package shapes

import (
	"fmt"
	"math"

	"github.com/lukaszgryglicki/miroir/internal/geom"
	"github.com/lukaszgryglicki/miroir/internal/miroir"
)

// Sphere is the hypersphere |x - Center| = Radius, mirrored on both sides.
type Sphere struct {
	Center geom.Point
	Radius float64
}

func NewSphere(center geom.Point, radius float64) (*Sphere, error) {
	if len(center) == 0 || !center.IsFinite() {
		return nil, fmt.Errorf("sphere center %v: %w", center, miroir.ErrNonFinite)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("sphere radius %g: %w", radius, ErrBadRadius)
	}
	s := &Sphere{Center: center.Clone(), Radius: radius}
	debugLog("created sphere: %+v", s)
	return s, nil
}

// roots solves |o + t d|^2 = 1 for t, o and d given in unit-sphere space.
func roots(o, d geom.Vector) (t0, t1 float64, n int) {
	a := d.Dot(d)
	b := o.Dot(d)
	c := o.Dot(o) - 1
	disc := b*b - a*c
	if disc < 0 || a == 0 {
		return 0, 0, 0
	}
	if disc == 0 {
		t := -b / a
		return t, t, 1
	}
	sq := math.Sqrt(disc)
	return (-b - sq) / a, (-b + sq) / a, 2
}

// Query reports both crossings of the ray's line with the sphere.
func (s *Sphere) Query(ray miroir.Ray, ctx *miroir.Context) {
	if ray.Dim() != len(s.Center) {
		return
	}
	inv := 1 / s.Radius
	o := ray.Origin.Sub(s.Center).Mul(inv)
	d := ray.Direction.Mul(inv)
	t0, t1, n := roots(o, d)
	for i, t := range [2]float64{t0, t1} {
		if i >= n {
			break
		}
		p := ray.At(t)
		ts, err := miroir.TangentFromNormal(p, p.Sub(s.Center))
		if err != nil {
			continue
		}
		ctx.Add(t, ts)
	}
}
