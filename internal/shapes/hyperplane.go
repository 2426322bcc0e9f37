package shapes

import (
	"fmt"

	"github.com/lukaszgryglicki/miroir/internal/geom"
	"github.com/lukaszgryglicki/miroir/internal/miroir"
)

// Hyperplane is an unbounded flat mirror through Point orthogonal to Normal.
type Hyperplane struct {
	tangent miroir.TangentSpace
}

func NewHyperplane(point geom.Point, normal geom.Vector) (*Hyperplane, error) {
	if !point.IsFinite() || !normal.IsFinite() {
		return nil, fmt.Errorf("hyperplane %v %v: %w", point, normal, miroir.ErrNonFinite)
	}
	ts, err := miroir.TangentFromNormal(point, normal)
	if err != nil {
		return nil, fmt.Errorf("hyperplane: %w", err)
	}
	return &Hyperplane{tangent: ts}, nil
}

// Point returns the anchor point.
func (h *Hyperplane) Point() geom.Point { return h.tangent.Point }

// Normal returns the unit normal.
func (h *Hyperplane) Normal() geom.Vector {
	n, _ := h.tangent.Normal()
	return n
}

// Query reports the crossing unless the ray runs parallel to the plane.
func (h *Hyperplane) Query(ray miroir.Ray, ctx *miroir.Context) {
	if ray.Dim() != len(h.tangent.Point) {
		return
	}
	ctx.AddTangent(h.tangent)
}
