package shapes

import (
	"fmt"
	"math"

	"github.com/lukaszgryglicki/miroir/internal/geom"
	"github.com/lukaszgryglicki/miroir/internal/miroir"
)

// Polytope is a convex polytope expressed as the intersection of the
// half-spaces N[i]·x <= D[i]. Its boundary is the mirror.
type Polytope struct {
	N []geom.Vector // outward unit normals
	D []float64
}

// NewPolytope normalizes the facet normals and scales the offsets to
// match.
func NewPolytope(normals []geom.Vector, offsets []float64) (*Polytope, error) {
	if len(normals) == 0 {
		return nil, ErrEmptyPolytope
	}
	if len(normals) != len(offsets) {
		return nil, fmt.Errorf("%d normals, %d offsets: %w", len(normals), len(offsets), miroir.ErrDimensionMismatch)
	}
	n := len(normals[0])
	p := &Polytope{}
	for i, nv := range normals {
		if len(nv) != n || n == 0 {
			return nil, fmt.Errorf("facet #%d normal %v: %w", i, nv, miroir.ErrDimensionMismatch)
		}
		l := nv.Len()
		if l == 0 || !nv.IsFinite() || math.IsNaN(offsets[i]) || math.IsInf(offsets[i], 0) {
			return nil, fmt.Errorf("facet #%d normal %v offset %g: %w", i, nv, offsets[i], ErrDegenerate)
		}
		p.N = append(p.N, nv.Mul(1/l))
		p.D = append(p.D, offsets[i]/l)
	}
	debugLog("created polytope with %d facets", len(p.N))
	return p, nil
}

// NewCrossPolytope returns the n-dimensional cross-polytope |x - center|_1 <= radius:
// a square rotated by 45° in 2D, an octahedron in 3D, the 16-cell in 4D.
func NewCrossPolytope(center geom.Point, radius float64) (*Polytope, error) {
	n := len(center)
	if n == 0 || !center.IsFinite() {
		return nil, fmt.Errorf("cross-polytope center %v: %w", center, miroir.ErrNonFinite)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("cross-polytope radius %g: %w", radius, ErrBadRadius)
	}
	normals := make([]geom.Vector, 0, 1<<n)
	offsets := make([]float64, 0, 1<<n)
	for mask := 0; mask < 1<<n; mask++ {
		s := geom.Zero(n)
		for i := range s {
			s[i] = 1
			if mask>>i&1 == 1 {
				s[i] = -1
			}
		}
		normals = append(normals, s)
		offsets = append(offsets, radius+s.Dot(center.Vector()))
	}
	return NewPolytope(normals, offsets)
}

// Contains reports whether x lies inside or on the boundary.
func (p *Polytope) Contains(x geom.Point) bool {
	for i, n := range p.N {
		if n.Dot(x.Vector()) > p.D[i]+coordTol {
			return false
		}
	}
	return true
}

// clip intersects the ray's line with every half-space. enter or exit is
// -1 when the line is unbounded on that side.
func (p *Polytope) clip(ray miroir.Ray) (tEnter, tExit float64, enter, exit int, ok bool) {
	tEnter, tExit = math.Inf(-1), math.Inf(1)
	enter, exit = -1, -1
	o := ray.Origin.Vector()
	for i, n := range p.N {
		nO := n.Dot(o)
		nD := n.Dot(ray.Direction)
		rhs := p.D[i] - nO
		if math.Abs(nD) < parEps {
			if rhs < -coordTol {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := rhs / nD
		if nD > 0 {
			if t < tExit {
				tExit, exit = t, i
			}
		} else if t > tEnter {
			tEnter, enter = t, i
		}
	}
	if tEnter > tExit {
		return 0, 0, 0, 0, false
	}
	return tEnter, tExit, enter, exit, true
}

// Query reports the entry facet and the exit facet that exist.
func (p *Polytope) Query(ray miroir.Ray, ctx *miroir.Context) {
	if len(p.N) == 0 || ray.Dim() != len(p.N[0]) {
		return
	}
	tEnter, tExit, ei, xi, ok := p.clip(ray)
	if !ok {
		return
	}
	for _, f := range [2]struct {
		t     float64
		facet int
	}{{tEnter, ei}, {tExit, xi}} {
		if f.facet < 0 {
			continue
		}
		ts, err := miroir.TangentFromNormal(ray.At(f.t), p.N[f.facet])
		if err != nil {
			continue
		}
		ctx.Add(f.t, ts)
	}
}
