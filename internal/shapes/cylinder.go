package shapes

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lukaszgryglicki/miroir/internal/geom"
	"github.com/lukaszgryglicki/miroir/internal/miroir"
)

// Cylinder is an open 3D cylinder of the given radius around the segment
// Start-End. The end caps are not mirrors.
type Cylinder struct {
	Start  r3.Vec
	Axis   r3.Vec // End - Start
	Radius float64

	invAxisSq float64
}

func NewCylinder(start, end geom.Point, radius float64) (*Cylinder, error) {
	if len(start) != 3 || len(end) != 3 {
		return nil, fmt.Errorf("cylinder needs 3D endpoints, got %v %v: %w", start, end, miroir.ErrDimensionMismatch)
	}
	if !start.IsFinite() || !end.IsFinite() {
		return nil, fmt.Errorf("cylinder endpoints %v %v: %w", start, end, miroir.ErrNonFinite)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("cylinder radius %g: %w", radius, ErrBadRadius)
	}
	s, e := toR3(start), toR3(end)
	axis := r3.Sub(e, s)
	l2 := r3.Norm2(axis)
	if l2 == 0 {
		return nil, fmt.Errorf("cylinder with zero length axis: %w", ErrDegenerate)
	}
	c := &Cylinder{Start: s, Axis: axis, Radius: radius, invAxisSq: 1 / l2}
	debugLog("created cylinder: %+v", c)
	return c, nil
}

func toR3(v []float64) r3.Vec { return r3.Vec{X: v[0], Y: v[1], Z: v[2]} }

// End returns the second endpoint of the axis segment.
func (c *Cylinder) End() geom.Point {
	e := r3.Add(c.Start, c.Axis)
	return geom.Pt(e.X, e.Y, e.Z)
}

// axial returns the coordinate of v along the axis, 0 at Start and 1 at End.
func (c *Cylinder) axial(v r3.Vec) float64 { return r3.Dot(c.Axis, v) * c.invAxisSq }

// radial removes the axial component of v.
func (c *Cylinder) radial(v r3.Vec) r3.Vec { return r3.Sub(v, r3.Scale(c.axial(v), c.Axis)) }

// Query solves |radial(o - Start + t*d)| = Radius and keeps roots whose
// axial coordinate lies on the segment.
func (c *Cylinder) Query(ray miroir.Ray, ctx *miroir.Context) {
	if ray.Dim() != 3 {
		return
	}
	m := c.radial(r3.Sub(toR3(ray.Origin), c.Start))
	d := c.radial(toR3(ray.Direction))
	a := r3.Norm2(d)
	if a < parEps {
		// along the axis
		return
	}
	b := r3.Dot(m, d)
	cc := r3.Norm2(m) - c.Radius*c.Radius
	disc := b*b - a*cc
	if disc < 0 {
		return
	}
	sq := math.Sqrt(disc)
	roots := [2]float64{(-b - sq) / a, (-b + sq) / a}
	for i, t := range roots {
		if i == 1 && disc == 0 {
			break
		}
		p := ray.At(t)
		v := r3.Sub(toR3(p), c.Start)
		if k := c.axial(v); k < 0 || k > 1 {
			continue
		}
		n := c.radial(v)
		ts, err := miroir.TangentFromNormal(p, geom.Vec(n.X, n.Y, n.Z))
		if err != nil {
			continue
		}
		ctx.Add(t, ts)
	}
}
