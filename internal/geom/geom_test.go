package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const eps = 1e-12

func nearly(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestVectorArithmetic(t *testing.T) {
	a := Vec(1, 2, 3, 4)
	b := Vec(4, 3, 2, 1)

	approx := cmpopts.EquateApprox(0, eps)
	if diff := cmp.Diff(a.Add(b), Vec(5, 5, 5, 5), approx); diff != "" {
		t.Fatalf("Add (-got +want)\n%s", diff)
	}
	if diff := cmp.Diff(a.Sub(b), Vec(-3, -1, 1, 3), approx); diff != "" {
		t.Fatalf("Sub (-got +want)\n%s", diff)
	}
	if diff := cmp.Diff(a.AddScaled(2, b), Vec(9, 8, 7, 6), approx); diff != "" {
		t.Fatalf("AddScaled (-got +want)\n%s", diff)
	}
	if got := a.Dot(b); !nearly(got, 20, eps) {
		t.Fatalf("Dot = %v, want 20", got)
	}
	if got := Vec(3, 4).Len(); !nearly(got, 5, eps) {
		t.Fatalf("Len = %v, want 5", got)
	}
	// receivers are never modified
	if diff := cmp.Diff(a, Vec(1, 2, 3, 4)); diff != "" {
		t.Fatalf("receiver mutated (-got +want)\n%s", diff)
	}
}

func TestNormZero(t *testing.T) {
	z := Zero(3)
	n := z.Norm()
	if !n.IsZero() {
		t.Fatalf("Norm of zero should stay zero, got %v", n)
	}
	u := Vec(0, 0, 2).Norm()
	if !nearly(u.Len(), 1, eps) || !nearly(u[2], 1, eps) {
		t.Fatalf("bad unit vector %v", u)
	}
}

func TestPointOps(t *testing.T) {
	p := Pt(1, 1)
	q := p.Add(Vec(3, 4))
	if !q.Near(Pt(4, 5), eps) {
		t.Fatalf("Add = %v", q)
	}
	if d := q.Dist(p); !nearly(d, 5, eps) {
		t.Fatalf("Dist = %v", d)
	}
	if v := q.Sub(p); !v.Near(Vec(3, 4), eps) {
		t.Fatalf("Sub = %v", v)
	}
	if Pt(math.NaN(), 0).IsFinite() {
		t.Fatal("NaN point reported finite")
	}
}

func TestOrthonormalize(t *testing.T) {
	onb, err := Orthonormalize([]Vector{Vec(1, 1, 0), Vec(1, 0, 0)})
	if err != nil {
		t.Fatal(err)
	}
	if len(onb) != 2 {
		t.Fatalf("got %d vectors", len(onb))
	}
	for i, e := range onb {
		if !nearly(e.Len(), 1, eps) {
			t.Fatalf("vector %d not unit: %v", i, e)
		}
	}
	if !nearly(onb[0].Dot(onb[1]), 0, eps) {
		t.Fatalf("not orthogonal: %v", onb)
	}

	_, err = Orthonormalize([]Vector{Vec(1, 2, 3), Vec(2, 4, 6)})
	if !errors.Is(err, ErrDependent) {
		t.Fatalf("expected ErrDependent, got %v", err)
	}
	_, err = Orthonormalize([]Vector{Zero(3)})
	if !errors.Is(err, ErrDependent) {
		t.Fatalf("expected ErrDependent for zero vector, got %v", err)
	}
}

func TestProjectAndComplement(t *testing.T) {
	onb := []Vector{Axis(3, 0), Axis(3, 1)}
	p := Project(Vec(1, 2, 3), onb)
	if !p.Near(Vec(1, 2, 0), eps) {
		t.Fatalf("Project = %v", p)
	}
	c := Complement(onb, 3)
	if len(c) != 1 || !nearly(math.Abs(c[0][2]), 1, eps) {
		t.Fatalf("Complement = %v", c)
	}
}

func TestSolve(t *testing.T) {
	// 2x + y = 5, x - y = 1 => x=2, y=1
	x, err := Solve([]Vector{Vec(2, 1), Vec(1, -1)}, Vec(5, 1))
	if err != nil {
		t.Fatal(err)
	}
	if !x.Near(Vec(2, 1), 1e-9) {
		t.Fatalf("Solve = %v", x)
	}
	_, err = Solve([]Vector{Vec(1, 2), Vec(2, 4)}, Vec(1, 1))
	if !errors.Is(err, ErrSingular) {
		t.Fatalf("expected ErrSingular, got %v", err)
	}
}

func TestRotation(t *testing.T) {
	r, err := Rotation(4, []PlaneAngle{{I: 0, J: 1, Angle: math.Pi / 2}})
	if err != nil {
		t.Fatal(err)
	}
	if !IsRotation(r, 4) {
		t.Fatal("rotation not orthogonal")
	}
	got := Apply(r, Vec(1, 0, 0, 0))
	if !got.Near(Vec(0, 1, 0, 0), 1e-12) {
		t.Fatalf("XY rotation of X = %v", got)
	}
	if _, err := Rotation(3, []PlaneAngle{{I: 1, J: 1}}); err == nil {
		t.Fatal("expected error for degenerate plane")
	}
}
