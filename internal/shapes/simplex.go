package shapes

import (
	"fmt"

	"github.com/lukaszgryglicki/miroir/internal/geom"
	"github.com/lukaszgryglicki/miroir/internal/miroir"
)

// Simplex is the convex hull of N affinely independent points in N
// dimensions: a segment in 2D, a triangle in 3D, a tetrahedron in 4D.
type Simplex struct {
	Vertices []geom.Point
	flat
}

func NewSimplex(vertices ...geom.Point) (*Simplex, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("simplex: %w", ErrBadVertices)
	}
	n := len(vertices[0])
	if len(vertices) != n {
		return nil, fmt.Errorf("simplex has %d vertices in dimension %d: %w", len(vertices), n, ErrBadVertices)
	}
	vs := make([]geom.Point, n)
	edges := make([]geom.Vector, 0, n-1)
	for i, v := range vertices {
		if len(v) != n {
			return nil, fmt.Errorf("simplex vertex #%d has dimension %d, expected %d: %w", i, len(v), n, miroir.ErrDimensionMismatch)
		}
		vs[i] = v.Clone()
		if i > 0 {
			edges = append(edges, v.Sub(vertices[0]))
		}
	}
	f, err := newFlat(vs[0], edges)
	if err != nil {
		return nil, fmt.Errorf("simplex: %w", err)
	}
	s := &Simplex{Vertices: vs, flat: f}
	debugLog("created simplex: %v", s.Vertices)
	return s, nil
}

// Query reports the hit when the barycentric coordinates of the contact
// are all >= 0 and sum to at most 1.
func (s *Simplex) Query(ray miroir.Ray, ctx *miroir.Context) {
	t, mu, ok := s.coords(ray)
	if !ok {
		return
	}
	var sum float64
	for _, m := range mu {
		if m < -coordTol {
			return
		}
		sum += m
	}
	if sum > 1+coordTol {
		return
	}
	ctx.Add(t, s.tangent.At(ray.At(t)))
}
