package random

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lukaszgryglicki/miroir/internal/miroir"
)

func TestVectorAndDirection(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		v := Vector(rng, 4, 3)
		for _, x := range v {
			if x < -3 || x >= 3 {
				t.Fatalf("coordinate %v out of range", x)
			}
		}
		d := Direction(rng, 3)
		if math.Abs(d.Len()-1) > 1e-12 {
			t.Fatalf("direction %v is not unit", d)
		}
	}
}

func TestDirectionHighDimension(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, dim := range []int{1, 24, 32, 64} {
		var sum float64
		const n = 200
		for i := 0; i < n; i++ {
			d := Direction(rng, dim)
			if len(d) != dim || math.Abs(d.Len()-1) > 1e-12 {
				t.Fatalf("dim %d: direction %v is not unit", dim, d)
			}
			sum += d[0]
		}
		// no preferred side along an axis
		if dim > 1 && math.Abs(sum/n) > 0.2 {
			t.Fatalf("dim %d: mean first coordinate %v", dim, sum/n)
		}
	}
}

func TestRandomShapesAreValid(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for dim := 1; dim <= 5; dim++ {
		if _, err := Simplex(rng, dim); err != nil {
			t.Fatalf("dim %d: %v", dim, err)
		}
		if _, err := Parallelotope(rng, dim); err != nil {
			t.Fatalf("dim %d: %v", dim, err)
		}
		s, err := Sphere(rng, dim)
		if err != nil {
			t.Fatalf("dim %d: %v", dim, err)
		}
		if s.Radius < minSphereSize || s.Radius >= MirrorMag/2 {
			t.Fatalf("radius %v out of range", s.Radius)
		}
	}
}

func TestSimulationBuildsAndRuns(t *testing.T) {
	for _, dim := range []int{2, 3, 4} {
		rng := rand.New(rand.NewSource(int64(dim)))
		cfg, err := Simulation(rng, dim, Options{Mirrors: 6, Rays: 5, MaxSteps: 100})
		if err != nil {
			t.Fatalf("dim %d: %v", dim, err)
		}
		if len(cfg.Mirrors) != 6 || len(cfg.Rays) != 5 {
			t.Fatalf("dim %d: %d mirrors, %d rays", dim, len(cfg.Mirrors), len(cfg.Rays))
		}
		s, err := cfg.Build()
		if err != nil {
			t.Fatalf("dim %d: %v", dim, err)
		}
		results, err := miroir.SimulateAll(context.Background(), s.Rays, s.Mirror, s.MaxSteps, 0, s.Options...)
		if err != nil {
			t.Fatalf("dim %d: %v", dim, err)
		}
		for i, r := range results {
			if r.Status == miroir.Running || len(r.Rays) == 0 || len(r.Rays) > 101 {
				t.Fatalf("dim %d ray %d: status %v with %d rays", dim, i, r.Status, len(r.Rays))
			}
		}
	}
}

func TestSimulationIsDeterministic(t *testing.T) {
	a, err := Simulation(rand.New(rand.NewSource(42)), 3, Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Simulation(rand.New(rand.NewSource(42)), 3, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed, different scenes (-a +b)\n%s", diff)
	}
	if n := len(a.Rays); n < MinRays || n >= MaxRays {
		t.Fatalf("%d rays", n)
	}
}

func TestSimulationRejectsZeroDimension(t *testing.T) {
	if _, err := Simulation(rand.New(rand.NewSource(1)), 0, Options{}); err == nil {
		t.Fatal("expected an error")
	}
}
