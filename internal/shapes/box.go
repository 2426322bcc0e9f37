package shapes

import (
	"fmt"
	"math"

	"github.com/lukaszgryglicki/miroir/internal/geom"
	"github.com/lukaszgryglicki/miroir/internal/miroir"
)

// parEps is the direction component below which a ray is treated as
// parallel to a face.
const parEps = 1e-12

// Box is an axis-aligned box whose faces are mirrors.
type Box struct {
	Min geom.Point
	Max geom.Point
}

func NewBox(minP, maxP geom.Point) (*Box, error) {
	if len(minP) == 0 || len(minP) != len(maxP) {
		return nil, fmt.Errorf("box corners %v %v: %w", minP, maxP, miroir.ErrDimensionMismatch)
	}
	if !minP.IsFinite() || !maxP.IsFinite() {
		return nil, fmt.Errorf("box corners %v %v: %w", minP, maxP, miroir.ErrNonFinite)
	}
	for i := range minP {
		if !(minP[i] < maxP[i]) {
			return nil, fmt.Errorf("box axis %d: min %g >= max %g: %w", i, minP[i], maxP[i], ErrDegenerate)
		}
	}
	b := &Box{Min: minP.Clone(), Max: maxP.Clone()}
	debugLog("created box: %v - %v", b.Min, b.Max)
	return b, nil
}

// slabs runs the slab method and returns the entry and exit distances
// with the axis of the face crossed at each.
func (b *Box) slabs(ray miroir.Ray) (tEnter, tExit float64, enterAxis, exitAxis int, ok bool) {
	tEnter, tExit = math.Inf(-1), math.Inf(1)
	enterAxis, exitAxis = -1, -1
	for i := range b.Min {
		o, d := ray.Origin[i], ray.Direction[i]
		if math.Abs(d) < parEps {
			if o < b.Min[i] || o > b.Max[i] {
				return 0, 0, 0, 0, false
			}
			continue
		}
		inv := 1 / d
		t1 := (b.Min[i] - o) * inv
		t2 := (b.Max[i] - o) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEnter {
			tEnter, enterAxis = t1, i
		}
		if t2 < tExit {
			tExit, exitAxis = t2, i
		}
	}
	if enterAxis < 0 || tEnter > tExit {
		return 0, 0, 0, 0, false
	}
	return tEnter, tExit, enterAxis, exitAxis, true
}

// Query reports the entry face and the exit face, at whatever signed
// distance they lie.
func (b *Box) Query(ray miroir.Ray, ctx *miroir.Context) {
	if ray.Dim() != len(b.Min) {
		return
	}
	tEnter, tExit, ea, xa, ok := b.slabs(ray)
	if !ok {
		return
	}
	n := ray.Dim()
	for _, f := range [2]struct {
		t    float64
		axis int
	}{{tEnter, ea}, {tExit, xa}} {
		ts, err := miroir.TangentFromNormal(ray.At(f.t), geom.Axis(n, f.axis))
		if err != nil {
			continue
		}
		ctx.Add(f.t, ts)
	}
}
