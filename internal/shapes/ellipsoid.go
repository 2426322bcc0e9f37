package shapes

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/lukaszgryglicki/miroir/internal/geom"
	"github.com/lukaszgryglicki/miroir/internal/miroir"
)

// Ellipsoid: start from a unit sphere in local space, scale along local axes
// by Radii, rotate by R about the origin, then translate to Center.
type Ellipsoid struct {
	Center geom.Point
	Radii  []float64
	R      *mat.Dense // local->world rotation, owned by the ellipsoid

	rt mat.Matrix // world->local rotation (R^T)
}

// NewEllipsoid validates the semi-axes and rotation. A nil rot means the
// identity.
func NewEllipsoid(center geom.Point, radii []float64, rot *mat.Dense) (*Ellipsoid, error) {
	n := len(center)
	if n == 0 || !center.IsFinite() {
		return nil, fmt.Errorf("ellipsoid center %v: %w", center, miroir.ErrNonFinite)
	}
	if len(radii) != n {
		return nil, fmt.Errorf("ellipsoid has %d radii in dimension %d: %w", len(radii), n, miroir.ErrDimensionMismatch)
	}
	for i, r := range radii {
		if !(r > 0) || math.IsInf(r, 0) {
			return nil, fmt.Errorf("ellipsoid radius #%d = %g: %w", i, r, ErrBadRadius)
		}
	}
	if rot == nil {
		rot = geom.Identity(n)
	}
	if !geom.IsRotation(rot, n) {
		return nil, fmt.Errorf("ellipsoid rotation: %w", ErrBadRotation)
	}
	var r mat.Dense
	r.CloneFrom(rot)
	e := &Ellipsoid{
		Center: center.Clone(),
		Radii:  append([]float64(nil), radii...),
		R:      &r,
		rt:     r.T(),
	}
	debugLog("created ellipsoid: center %v radii %v", e.Center, e.Radii)
	return e, nil
}

func (e *Ellipsoid) toUnit(v geom.Vector) geom.Vector {
	for i := range v {
		v[i] /= e.Radii[i]
	}
	return v
}

// Query transforms the ray into unit-sphere space, where
// y = RT*(x - C) and s = y / Radii, and solves |s_o + t s_d|^2 = 1.
// The world normal is R * (s / Radii).
func (e *Ellipsoid) Query(ray miroir.Ray, ctx *miroir.Context) {
	if ray.Dim() != len(e.Center) {
		return
	}
	os := e.toUnit(geom.Apply(e.rt, ray.Origin.Sub(e.Center)))
	ds := e.toUnit(geom.Apply(e.rt, ray.Direction))
	t0, t1, n := roots(os, ds)
	for i, t := range [2]float64{t0, t1} {
		if i >= n {
			break
		}
		s := e.toUnit(os.AddScaled(t, ds))
		ts, err := miroir.TangentFromNormal(ray.At(t), geom.Apply(e.R, s))
		if err != nil {
			continue
		}
		ctx.Add(t, ts)
	}
}
