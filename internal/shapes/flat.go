package shapes

import (
	"fmt"

	"github.com/lukaszgryglicki/miroir/internal/geom"
	"github.com/lukaszgryglicki/miroir/internal/miroir"
)

// coordTol is the slack on barycentric and parallelotope coordinates, so
// that shared edges and vertices of adjacent facets are hit by both.
const coordTol = 1e-12

// flat is a bounded piece of a hyperplane: an anchor point and N-1 edge
// vectors spanning it.
type flat struct {
	v0      geom.Point
	edges   []geom.Vector
	tangent miroir.TangentSpace
}

func newFlat(v0 geom.Point, edges []geom.Vector) (flat, error) {
	n := len(v0)
	if n == 0 || !v0.IsFinite() {
		return flat{}, fmt.Errorf("anchor %v: %w", v0, miroir.ErrNonFinite)
	}
	if len(edges) != n-1 {
		return flat{}, fmt.Errorf("%d edge vectors in dimension %d: %w", len(edges), n, ErrBadVertices)
	}
	for _, e := range edges {
		if !e.IsFinite() {
			return flat{}, fmt.Errorf("edge %v: %w", e, miroir.ErrNonFinite)
		}
	}
	ts, err := miroir.NewTangentSpace(v0, edges...)
	if err != nil {
		return flat{}, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}
	return flat{v0: v0.Clone(), edges: edges, tangent: ts}, nil
}

// coords solves o + t*d = v0 + sum mu_i*edge_i and returns t and mu.
func (f flat) coords(ray miroir.Ray) (float64, geom.Vector, bool) {
	if ray.Dim() != len(f.v0) {
		return 0, nil, false
	}
	cols := make([]geom.Vector, 0, ray.Dim())
	cols = append(cols, ray.Direction)
	for _, e := range f.edges {
		cols = append(cols, e.Neg())
	}
	x, err := geom.Solve(cols, f.v0.Sub(ray.Origin))
	if err != nil {
		// parallel to the hyperplane
		return 0, nil, false
	}
	return x[0], x[1:], true
}
