package geom

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Tolerance used to decide that a vector is linearly dependent on the ones
// before it, relative to its own length.
const Tolerance = 1e-10

var (
	ErrDependent = errors.New("vectors are linearly dependent")
	ErrSingular  = errors.New("linear system is singular")
)

// Orthonormalize runs modified Gram-Schmidt over vs and returns an
// orthonormal basis of their span. The family must be free.
func Orthonormalize(vs []Vector) ([]Vector, error) {
	out := make([]Vector, 0, len(vs))
	for i, v := range vs {
		l := v.Len()
		if l == 0 || !v.IsFinite() {
			return nil, fmt.Errorf("vector #%d %v: %w", i, v, ErrDependent)
		}
		w := v.Clone()
		for _, e := range out {
			w = w.AddScaled(-w.Dot(e), e)
		}
		wl := w.Len()
		if wl <= Tolerance*l {
			return nil, fmt.Errorf("vector #%d %v: %w", i, v, ErrDependent)
		}
		out = append(out, w.Mul(1/wl))
	}
	return out, nil
}

// Project returns the orthogonal projection of v onto the span of the
// orthonormal family onb.
func Project(v Vector, onb []Vector) Vector {
	p := Zero(len(v))
	for _, e := range onb {
		p = p.AddScaled(v.Dot(e), e)
	}
	return p
}

// Complement completes the orthonormal family onb with canonical axes and
// returns an orthonormal basis of its orthogonal complement in dimension n.
func Complement(onb []Vector, n int) []Vector {
	all := append([]Vector(nil), onb...)
	for i := 0; i < n && len(all) < n; i++ {
		w := Axis(n, i)
		for _, e := range all {
			w = w.AddScaled(-w.Dot(e), e)
		}
		if l := w.Len(); l > 1e-6 {
			all = append(all, w.Mul(1/l))
		}
	}
	return all[len(onb):]
}

// Solve returns x such that sum_j x[j]*cols[j] = b. len(cols) must equal
// len(b). Singular or badly conditioned systems return ErrSingular.
func Solve(cols []Vector, b Vector) (Vector, error) {
	n := len(b)
	if n == 0 {
		return nil, fmt.Errorf("solve: zero dimension")
	}
	if len(cols) != n {
		return nil, fmt.Errorf("solve: %d columns for dimension %d", len(cols), n)
	}
	a := mat.NewDense(n, n, nil)
	for j, c := range cols {
		if len(c) != n {
			return nil, fmt.Errorf("solve: column #%d has dimension %d, expected %d", j, len(c), n)
		}
		a.SetCol(j, c)
	}
	var x mat.VecDense
	if err := x.SolveVec(a, mat.NewVecDense(n, b.Clone())); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	out := make(Vector, n)
	for i := range out {
		out[i] = x.AtVec(i)
	}
	return out, nil
}
