package scene

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lukaszgryglicki/miroir/internal/miroir"
)

type Config struct {
	Dimension     int     `yaml:"dimension"`
	MaxSteps      int     `yaml:"maxSteps,omitempty"`
	Epsilon       float64 `yaml:"epsilon,omitempty"`
	Tie           float64 `yaml:"tie,omitempty"`
	LoopTolerance float64 `yaml:"loopTolerance,omitempty"`
	History       int     `yaml:"history,omitempty"`
	// When true, paths end only by escaping or hitting MaxSteps.
	NoLoopDetection bool `yaml:"noLoopDetection,omitempty"`
	Workers         int  `yaml:"workers,omitempty"`

	Rays []RayCfg `yaml:"rays"`
	// Named mirrors that "ref" entries point to. A definition referenced
	// from several places is built once and shared.
	Defs    map[string]MirrorCfg `yaml:"defs,omitempty"`
	Mirrors []MirrorCfg          `yaml:"mirrors"`
}

type RayCfg struct {
	Origin    []float64 `yaml:"origin,flow"`
	Direction []float64 `yaml:"direction,flow"`
}

// PlaneAngleDeg is a rotation in the (I, J) coordinate plane, in degrees
// (friendlier than radians).
type PlaneAngleDeg struct {
	I   int     `yaml:"i"`
	J   int     `yaml:"j"`
	Deg float64 `yaml:"deg"`
}

type SphereCfg struct {
	Center []float64 `yaml:"center,flow"`
	Radius float64   `yaml:"radius"`
}

type EllipsoidCfg struct {
	Center []float64       `yaml:"center,flow"`
	Radii  []float64       `yaml:"radii,flow,omitempty"` // defaults 1 on each axis
	RotDeg []PlaneAngleDeg `yaml:"rotDeg,omitempty"`
}

type SimplexCfg struct {
	Vertices [][]float64 `yaml:"vertices,flow"`
}

type ParallelotopeCfg struct {
	Center    []float64   `yaml:"center,flow"`
	HalfEdges [][]float64 `yaml:"halfEdges,flow"`
}

type HyperplaneCfg struct {
	Point  []float64 `yaml:"point,flow"`
	Normal []float64 `yaml:"normal,flow"`
}

type BoxCfg struct {
	Min []float64 `yaml:"min,flow"`
	Max []float64 `yaml:"max,flow"`
}

type PolytopeCfg struct {
	Normals [][]float64 `yaml:"normals,flow"`
	Offsets []float64   `yaml:"offsets,flow"`
}

type CrossPolytopeCfg struct {
	Center []float64 `yaml:"center,flow"`
	Radius float64   `yaml:"radius"`
}

type CylinderCfg struct {
	Start  []float64 `yaml:"start,flow"`
	End    []float64 `yaml:"end,flow"`
	Radius float64   `yaml:"radius"`
}

type GroupCfg struct {
	Mirrors []MirrorCfg `yaml:"mirrors"`
}

type RefCfg struct {
	Name string `yaml:"name"`
}

// ShapeCfg is the body of a mirror entry; Build turns it into a mirror.
type ShapeCfg interface {
	Build(b *Builder) (miroir.Mirror, error)
}

// MirrorCfg is a mirror entry tagged by its "type" key.
type MirrorCfg struct {
	Type  string
	Shape ShapeCfg
}

func newShape(typ string) (ShapeCfg, error) {
	switch typ {
	case "sphere":
		return &SphereCfg{}, nil
	case "ellipsoid":
		return &EllipsoidCfg{}, nil
	case "simplex":
		return &SimplexCfg{}, nil
	case "parallelotope":
		return &ParallelotopeCfg{}, nil
	case "hyperplane":
		return &HyperplaneCfg{}, nil
	case "box":
		return &BoxCfg{}, nil
	case "polytope":
		return &PolytopeCfg{}, nil
	case "crosspolytope":
		return &CrossPolytopeCfg{}, nil
	case "cylinder":
		return &CylinderCfg{}, nil
	case "group":
		return &GroupCfg{}, nil
	case "ref":
		return &RefCfg{}, nil
	}
	return nil, fmt.Errorf("unknown mirror type %q", typ)
}

func (m *MirrorCfg) UnmarshalYAML(value *yaml.Node) error {
	var head struct {
		Type string `yaml:"type"`
	}
	if err := value.Decode(&head); err != nil {
		return err
	}
	shape, err := newShape(head.Type)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	if err := value.Decode(shape); err != nil {
		return fmt.Errorf("line %d: %s: %w", value.Line, head.Type, err)
	}
	m.Type, m.Shape = head.Type, shape
	return nil
}

func (m MirrorCfg) MarshalYAML() (interface{}, error) {
	if m.Shape == nil {
		return nil, fmt.Errorf("mirror %q has no shape", m.Type)
	}
	var body yaml.Node
	if err := body.Encode(m.Shape); err != nil {
		return nil, err
	}
	typ := []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "type"},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: m.Type},
	}
	body.Content = append(typ, body.Content...)
	return &body, nil
}

// Radians converts to the angles geom.Rotation takes.
func (a PlaneAngleDeg) Radians() float64 { return a.Deg * math.Pi / 180 }

// Load reads a YAML (or JSON) scene and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	debugLog("Loaded config from %s: dim=%d, rays=%d, mirrors=%d, defs=%d, maxSteps=%d", path, cfg.Dimension, len(cfg.Rays), len(cfg.Mirrors), len(cfg.Defs), cfg.MaxSteps)
	return cfg, nil
}

// Parse decodes a scene and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}
	if len(cfg.Rays) == 0 {
		return nil, fmt.Errorf("config has no rays")
	}
	return &cfg, nil
}

// setDefaults fills every zero tuning field.
func (c *Config) setDefaults() error {
	if c.Dimension <= 0 {
		if len(c.Rays) == 0 || len(c.Rays[0].Origin) == 0 {
			return fmt.Errorf("config has no dimension")
		}
		c.Dimension = len(c.Rays[0].Origin)
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = miroir.DefaultMaxSteps
	}
	if c.Epsilon <= 0 {
		c.Epsilon = miroir.DefaultEpsilon
	}
	if c.Tie <= 0 {
		c.Tie = miroir.DefaultTie
	}
	if c.LoopTolerance <= 0 {
		c.LoopTolerance = miroir.DefaultLoopTolerance
	}
	if c.History <= 0 {
		c.History = miroir.DefaultHistory
	}
	return nil
}

// Save writes cfg as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
