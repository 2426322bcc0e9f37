// Package random generates random rays, mirrors and whole scenes, mostly
// for fuzzing the simulator and for demos.
package random

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lukaszgryglicki/miroir/internal/geom"
	"github.com/lukaszgryglicki/miroir/internal/miroir"
	"github.com/lukaszgryglicki/miroir/internal/scene"
	"github.com/lukaszgryglicki/miroir/internal/shapes"
)

const (
	RayOriginMag  = 7.0
	MirrorMag     = 10.0
	MinRays       = 1
	MaxRays       = 32
	maxAttempts   = 1000
	minDirLen     = 8 * 0x1p-52
	minSphereSize = 0.1
)

// Vector returns a vector with every coordinate uniform in [-maxMag, maxMag).
func Vector(rng *rand.Rand, dim int, maxMag float64) geom.Vector {
	v := make(geom.Vector, dim)
	for i := range v {
		v[i] = (rng.Float64() - 0.5) * 2 * math.Abs(maxMag)
	}
	return v
}

// Direction returns a uniformly random unit vector: a normalized draw of
// independent standard normals. Draws too short to normalize are retried.
func Direction(rng *rand.Rand, dim int) geom.Vector {
	for {
		v := make(geom.Vector, dim)
		for i := range v {
			v[i] = rng.NormFloat64()
		}
		if l := v.Len(); l > minDirLen {
			return v.Mul(1 / l)
		}
	}
}

// Ray returns a ray with origin in the [-RayOriginMag, RayOriginMag] cube.
func Ray(rng *rand.Rand, dim int) miroir.Ray {
	return miroir.MustRay(geom.Point(Vector(rng, dim, RayOriginMag)), Direction(rng, dim))
}

// Simplex returns a random non-degenerate simplex.
func Simplex(rng *rand.Rand, dim int) (*shapes.Simplex, error) {
	for i := 0; i < maxAttempts; i++ {
		vs := make([]geom.Point, dim)
		for j := range vs {
			vs[j] = geom.Point(Vector(rng, dim, MirrorMag))
		}
		if s, err := shapes.NewSimplex(vs...); err == nil {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no valid simplex in %d attempts", maxAttempts)
}

// Sphere returns a random sphere with radius in [minSphereSize, MirrorMag/2).
func Sphere(rng *rand.Rand, dim int) (*shapes.Sphere, error) {
	r := minSphereSize + rng.Float64()*(MirrorMag/2-minSphereSize)
	return shapes.NewSphere(geom.Point(Vector(rng, dim, MirrorMag)), r)
}

// Parallelotope returns a random non-degenerate parallelotope.
func Parallelotope(rng *rand.Rand, dim int) (*shapes.Parallelotope, error) {
	for i := 0; i < maxAttempts; i++ {
		hs := make([]geom.Vector, dim-1)
		for j := range hs {
			hs[j] = Vector(rng, dim, MirrorMag/2)
		}
		if p, err := shapes.NewParallelotope(geom.Point(Vector(rng, dim, MirrorMag)), hs...); err == nil {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no valid parallelotope in %d attempts", maxAttempts)
}

// Options controls Simulation.
type Options struct {
	Mirrors  int // number of mirrors, 0 for a random count in [1, 16)
	Rays     int // number of rays, 0 for a random count in [MinRays, MaxRays)
	MaxSteps int
}

func toFloats(v []float64) []float64 { return append([]float64(nil), v...) }

// Simulation returns a random scene config of spheres, simplices,
// parallelotopes and (in 3D) cylinders, plus random rays.
func Simulation(rng *rand.Rand, dim int, opts Options) (*scene.Config, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("dimension %d: %w", dim, miroir.ErrDimensionMismatch)
	}
	nm := opts.Mirrors
	if nm <= 0 {
		nm = 1 + rng.Intn(15)
	}
	nr := opts.Rays
	if nr <= 0 {
		nr = MinRays + rng.Intn(MaxRays-MinRays)
	}
	cfg := &scene.Config{Dimension: dim, MaxSteps: opts.MaxSteps}
	kinds := 3
	if dim == 3 {
		kinds = 4
	}
	for len(cfg.Mirrors) < nm {
		var m scene.MirrorCfg
		switch rng.Intn(kinds) {
		case 0:
			s, err := Sphere(rng, dim)
			if err != nil {
				return nil, err
			}
			m = scene.MirrorCfg{Type: "sphere", Shape: &scene.SphereCfg{Center: toFloats(s.Center), Radius: s.Radius}}
		case 1:
			s, err := Simplex(rng, dim)
			if err != nil {
				return nil, err
			}
			vs := make([][]float64, len(s.Vertices))
			for i, v := range s.Vertices {
				vs[i] = toFloats(v)
			}
			m = scene.MirrorCfg{Type: "simplex", Shape: &scene.SimplexCfg{Vertices: vs}}
		case 2:
			p, err := Parallelotope(rng, dim)
			if err != nil {
				return nil, err
			}
			hs := make([][]float64, len(p.HalfEdges))
			for i, h := range p.HalfEdges {
				hs[i] = toFloats(h)
			}
			m = scene.MirrorCfg{Type: "parallelotope", Shape: &scene.ParallelotopeCfg{Center: toFloats(p.Center), HalfEdges: hs}}
		default:
			start := Vector(rng, 3, MirrorMag)
			end := Vector(rng, 3, MirrorMag)
			if start.Sub(end).Len() < minSphereSize {
				continue
			}
			m = scene.MirrorCfg{Type: "cylinder", Shape: &scene.CylinderCfg{
				Start:  toFloats(start),
				End:    toFloats(end),
				Radius: minSphereSize + rng.Float64()*(MirrorMag/4-minSphereSize),
			}}
		}
		cfg.Mirrors = append(cfg.Mirrors, m)
	}
	for i := 0; i < nr; i++ {
		r := Ray(rng, dim)
		cfg.Rays = append(cfg.Rays, scene.RayCfg{Origin: toFloats(r.Origin), Direction: toFloats(r.Direction)})
	}
	return cfg, nil
}
