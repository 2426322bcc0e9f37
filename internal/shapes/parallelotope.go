package shapes

import (
	"fmt"

	"github.com/lukaszgryglicki/miroir/internal/geom"
	"github.com/lukaszgryglicki/miroir/internal/miroir"
)

// Parallelotope is the flat set Center + sum mu_i*HalfEdges[i] with
// |mu_i| <= 1: a segment in 2D, a parallelogram in 3D.
type Parallelotope struct {
	Center    geom.Point
	HalfEdges []geom.Vector
	flat
}

func NewParallelotope(center geom.Point, halfEdges ...geom.Vector) (*Parallelotope, error) {
	hs := make([]geom.Vector, len(halfEdges))
	for i, h := range halfEdges {
		if len(h) != len(center) {
			return nil, fmt.Errorf("half edge #%d has dimension %d, expected %d: %w", i, len(h), len(center), miroir.ErrDimensionMismatch)
		}
		hs[i] = h.Clone()
	}
	f, err := newFlat(center, hs)
	if err != nil {
		return nil, fmt.Errorf("parallelotope: %w", err)
	}
	p := &Parallelotope{Center: center.Clone(), HalfEdges: hs, flat: f}
	debugLog("created parallelotope: center %v half edges %v", p.Center, p.HalfEdges)
	return p, nil
}

// Vertices returns the 2^(N-1) corners.
func (p *Parallelotope) Vertices() []geom.Point {
	k := len(p.HalfEdges)
	out := make([]geom.Point, 0, 1<<k)
	for mask := 0; mask < 1<<k; mask++ {
		v := p.Center.Clone()
		for j, h := range p.HalfEdges {
			s := 1.0
			if mask>>j&1 == 1 {
				s = -1
			}
			v = v.AddScaled(s, h)
		}
		out = append(out, v)
	}
	return out
}

func (p *Parallelotope) Query(ray miroir.Ray, ctx *miroir.Context) {
	t, mu, ok := p.coords(ray)
	if !ok {
		return
	}
	for _, m := range mu {
		if m < -1-coordTol || m > 1+coordTol {
			return
		}
	}
	ctx.Add(t, p.tangent.At(ray.At(t)))
}
