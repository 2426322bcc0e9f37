package scene

import (
	"errors"
	"fmt"

	"github.com/lukaszgryglicki/miroir/internal/geom"
	"github.com/lukaszgryglicki/miroir/internal/miroir"
	"github.com/lukaszgryglicki/miroir/internal/shapes"
)

var ErrRefCycle = errors.New("mirror definitions reference each other in a cycle")

// Scene is a built configuration, ready to simulate.
type Scene struct {
	Dim      int
	Mirror   miroir.Mirror
	Rays     []miroir.Ray
	MaxSteps int
	Workers  int
	Options  []miroir.Option
}

// Builder turns mirror configs into mirrors. Definitions are built on first
// use and handed out as shared handles afterwards.
type Builder struct {
	Dim  int
	defs map[string]MirrorCfg

	shared   map[string]miroir.Shared[miroir.Mirror]
	visiting map[string]bool
}

func NewBuilder(dim int, defs map[string]MirrorCfg) *Builder {
	return &Builder{
		Dim:      dim,
		defs:     defs,
		shared:   make(map[string]miroir.Shared[miroir.Mirror]),
		visiting: make(map[string]bool),
	}
}

// Mirror builds one entry.
func (b *Builder) Mirror(m MirrorCfg) (miroir.Mirror, error) {
	if m.Shape == nil {
		return nil, fmt.Errorf("mirror %q has no shape", m.Type)
	}
	mm, err := m.Shape.Build(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", m.Type, err)
	}
	return mm, nil
}

// List builds every entry, in order.
func (b *Builder) List(ms []MirrorCfg) (miroir.List, error) {
	out := make(miroir.List, 0, len(ms))
	for i, m := range ms {
		mm, err := b.Mirror(m)
		if err != nil {
			return nil, fmt.Errorf("mirror #%d: %w", i, err)
		}
		out = append(out, mm)
	}
	return out, nil
}

func (b *Builder) point(name string, xs []float64) (geom.Point, error) {
	if len(xs) != b.Dim {
		return nil, fmt.Errorf("%s %v has dimension %d, expected %d: %w", name, xs, len(xs), b.Dim, miroir.ErrDimensionMismatch)
	}
	return geom.Pt(xs...).Clone(), nil
}

func (b *Builder) vector(name string, xs []float64) (geom.Vector, error) {
	p, err := b.point(name, xs)
	return geom.Vector(p), err
}

func (c *SphereCfg) Build(b *Builder) (miroir.Mirror, error) {
	center, err := b.point("center", c.Center)
	if err != nil {
		return nil, err
	}
	return shapes.NewSphere(center, c.Radius)
}

func (c *EllipsoidCfg) Build(b *Builder) (miroir.Mirror, error) {
	center, err := b.point("center", c.Center)
	if err != nil {
		return nil, err
	}
	radii := make([]float64, b.Dim)
	for i := range radii {
		radii[i] = 1
		if i < len(c.Radii) && c.Radii[i] != 0 {
			radii[i] = c.Radii[i]
		}
	}
	if len(c.Radii) > b.Dim {
		return nil, fmt.Errorf("%d radii in dimension %d: %w", len(c.Radii), b.Dim, miroir.ErrDimensionMismatch)
	}
	angles := make([]geom.PlaneAngle, 0, len(c.RotDeg))
	for _, a := range c.RotDeg {
		angles = append(angles, geom.PlaneAngle{I: a.I, J: a.J, Angle: a.Radians()})
	}
	rot, err := geom.Rotation(b.Dim, angles)
	if err != nil {
		return nil, err
	}
	return shapes.NewEllipsoid(center, radii, rot)
}

func (c *SimplexCfg) Build(b *Builder) (miroir.Mirror, error) {
	vs := make([]geom.Point, 0, len(c.Vertices))
	for i, v := range c.Vertices {
		p, err := b.point(fmt.Sprintf("vertex #%d", i), v)
		if err != nil {
			return nil, err
		}
		vs = append(vs, p)
	}
	return shapes.NewSimplex(vs...)
}

func (c *ParallelotopeCfg) Build(b *Builder) (miroir.Mirror, error) {
	center, err := b.point("center", c.Center)
	if err != nil {
		return nil, err
	}
	hs := make([]geom.Vector, 0, len(c.HalfEdges))
	for i, h := range c.HalfEdges {
		v, err := b.vector(fmt.Sprintf("half edge #%d", i), h)
		if err != nil {
			return nil, err
		}
		hs = append(hs, v)
	}
	return shapes.NewParallelotope(center, hs...)
}

func (c *HyperplaneCfg) Build(b *Builder) (miroir.Mirror, error) {
	p, err := b.point("point", c.Point)
	if err != nil {
		return nil, err
	}
	n, err := b.vector("normal", c.Normal)
	if err != nil {
		return nil, err
	}
	return shapes.NewHyperplane(p, n)
}

func (c *BoxCfg) Build(b *Builder) (miroir.Mirror, error) {
	lo, err := b.point("min", c.Min)
	if err != nil {
		return nil, err
	}
	hi, err := b.point("max", c.Max)
	if err != nil {
		return nil, err
	}
	return shapes.NewBox(lo, hi)
}

func (c *PolytopeCfg) Build(b *Builder) (miroir.Mirror, error) {
	ns := make([]geom.Vector, 0, len(c.Normals))
	for i, n := range c.Normals {
		v, err := b.vector(fmt.Sprintf("normal #%d", i), n)
		if err != nil {
			return nil, err
		}
		ns = append(ns, v)
	}
	return shapes.NewPolytope(ns, c.Offsets)
}

func (c *CrossPolytopeCfg) Build(b *Builder) (miroir.Mirror, error) {
	center, err := b.point("center", c.Center)
	if err != nil {
		return nil, err
	}
	return shapes.NewCrossPolytope(center, c.Radius)
}

func (c *CylinderCfg) Build(b *Builder) (miroir.Mirror, error) {
	s, err := b.point("start", c.Start)
	if err != nil {
		return nil, err
	}
	e, err := b.point("end", c.End)
	if err != nil {
		return nil, err
	}
	return shapes.NewCylinder(s, e, c.Radius)
}

func (c *GroupCfg) Build(b *Builder) (miroir.Mirror, error) {
	return b.List(c.Mirrors)
}

// Build resolves the named definition, building it once.
func (c *RefCfg) Build(b *Builder) (miroir.Mirror, error) {
	if s, ok := b.shared[c.Name]; ok {
		return s, nil
	}
	def, ok := b.defs[c.Name]
	if !ok {
		return nil, fmt.Errorf("undefined mirror %q", c.Name)
	}
	if b.visiting[c.Name] {
		return nil, fmt.Errorf("%q: %w", c.Name, ErrRefCycle)
	}
	b.visiting[c.Name] = true
	defer delete(b.visiting, c.Name)
	m, err := b.Mirror(def)
	if err != nil {
		return nil, fmt.Errorf("def %q: %w", c.Name, err)
	}
	s := miroir.NewShared(m)
	b.shared[c.Name] = s
	debugLog("built shared mirror %q (%s)", c.Name, def.Type)
	return s, nil
}

// Build fills defaults, validates cfg and constructs the mirrors and rays.
func (c *Config) Build() (*Scene, error) {
	if err := c.setDefaults(); err != nil {
		return nil, err
	}
	b := NewBuilder(c.Dimension, c.Defs)
	list, err := b.List(c.Mirrors)
	if err != nil {
		return nil, err
	}
	rays := make([]miroir.Ray, 0, len(c.Rays))
	for i, rc := range c.Rays {
		o, err := b.point("origin", rc.Origin)
		if err != nil {
			return nil, fmt.Errorf("ray #%d: %w", i, err)
		}
		d, err := b.vector("direction", rc.Direction)
		if err != nil {
			return nil, fmt.Errorf("ray #%d: %w", i, err)
		}
		r, err := miroir.NewRay(o, d)
		if err != nil {
			return nil, fmt.Errorf("ray #%d: %w", i, err)
		}
		rays = append(rays, r)
	}
	opts := []miroir.Option{
		miroir.WithTolerance(miroir.Tolerance{Epsilon: c.Epsilon, Tie: c.Tie}),
		miroir.WithLoopTolerance(c.LoopTolerance),
		miroir.WithHistory(c.History),
	}
	if c.NoLoopDetection {
		opts = append(opts, miroir.WithoutLoopDetection())
	}
	s := &Scene{
		Dim:      c.Dimension,
		Mirror:   list,
		Rays:     rays,
		MaxSteps: c.MaxSteps,
		Workers:  c.Workers,
		Options:  opts,
	}
	debugLog("Built scene: dim=%d, %d top-level mirrors, %d shared, %d rays", s.Dim, len(list), len(b.shared), len(rays))
	return s, nil
}
