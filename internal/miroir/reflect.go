package miroir

import "github.com/lukaszgryglicki/miroir/internal/geom"

// Reflect mirrors dir across the orthogonal complement of t's direction
// space: the tangential part of dir is kept and the normal part inverted,
// i.e. dir - 2*(dir - proj(dir)). For a hyperplane this is the usual mirror
// reflection; for edges and vertices more of dir is inverted.
//
// The result is renormalized, so unit inputs stay unit despite roundoff.
func Reflect(dir geom.Vector, t TangentSpace) geom.Vector {
	r := t.reflect(dir)
	if l := r.Len(); l > 0 {
		return r.Mul(dir.Len() / l)
	}
	return r
}

// Bounce moves ray to hit and reflects its direction there.
func Bounce(ray Ray, hit Intersection) Ray {
	origin := hit.Point
	if origin == nil {
		origin = ray.At(hit.Distance)
	}
	return Ray{Origin: origin, Direction: Reflect(ray.Direction, hit.Tangent)}
}
