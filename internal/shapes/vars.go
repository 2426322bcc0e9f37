package shapes

import "github.com/lukaszgryglicki/miroir/internal/miroir"

var (
	_ miroir.Mirror = (*Sphere)(nil)
	_ miroir.Mirror = (*Ellipsoid)(nil)
	_ miroir.Mirror = (*Simplex)(nil)
	_ miroir.Mirror = (*Parallelotope)(nil)
	_ miroir.Mirror = (*Hyperplane)(nil)
	_ miroir.Mirror = (*Box)(nil)
	_ miroir.Mirror = (*Polytope)(nil)
	_ miroir.Mirror = (*Cylinder)(nil)
)
