package scene

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/lukaszgryglicki/miroir/internal/miroir"
	"github.com/lukaszgryglicki/miroir/internal/shapes"
)

const corridor = `
dimension: 2
maxSteps: 50
defs:
  wall:
    type: hyperplane
    point: [1, 0]
    normal: [1, 0]
  walls:
    type: group
    mirrors:
      - type: ref
        name: wall
      - type: hyperplane
        point: [-1, 0]
        normal: [1, 0]
rays:
  - origin: [0, 0]
    direction: [1, 0]
  - origin: [0, 5]
    direction: [0, 1]
  - origin: [0, 3]
    direction: [0, 2]
mirrors:
  - type: ref
    name: walls
  - type: sphere
    center: [0, 3]
    radius: 0.5
`

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(corridor))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxSteps != 50 || cfg.Epsilon != miroir.DefaultEpsilon || cfg.History != miroir.DefaultHistory {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if diff := cmp.Diff([]string{cfg.Mirrors[0].Type, cfg.Mirrors[1].Type}, []string{"ref", "sphere"}); diff != "" {
		t.Fatalf("mirror types (-got +want)\n%s", diff)
	}
	sc, ok := cfg.Mirrors[1].Shape.(*SphereCfg)
	if !ok {
		t.Fatalf("shape is %T", cfg.Mirrors[1].Shape)
	}
	if diff := cmp.Diff(sc, &SphereCfg{Center: []float64{0, 3}, Radius: 0.5}); diff != "" {
		t.Fatalf("sphere (-got +want)\n%s", diff)
	}

	noDim, err := Parse([]byte("rays:\n  - origin: [0, 0, 0]\n    direction: [1, 0, 0]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if noDim.Dimension != 3 || noDim.MaxSteps != miroir.DefaultMaxSteps {
		t.Fatalf("dimension not inferred: %+v", noDim)
	}
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"no rays":      "dimension: 2\nmirrors: []\n",
		"unknown type": "dimension: 2\nrays: [{origin: [0, 0], direction: [1, 0]}]\nmirrors:\n  - type: torus\n",
		"bad yaml":     "dimension: [\n",
		"no dimension": "mirrors: []\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(in)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestBuildAndSimulate(t *testing.T) {
	cfg, err := Parse([]byte(corridor))
	if err != nil {
		t.Fatal(err)
	}
	s, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Rays) != 3 || s.Dim != 2 {
		t.Fatalf("scene = %+v", s)
	}
	log := NewEventLog()
	results, err := Simulate(context.Background(), s, log)
	if err != nil {
		t.Fatal(err)
	}
	var got []miroir.Status
	for _, r := range results {
		got = append(got, r.Status)
	}
	want := []miroir.Status{miroir.LoopDetected, miroir.Escaped, miroir.LoopDetected}
	if diff := cmp.Diff(got, want); diff != "" {
		t.Fatalf("statuses (-got +want)\n%s", diff)
	}
	if results[0].Loop.Period() != 2 {
		t.Fatalf("corridor loop = %+v", results[0].Loop)
	}
	if diff := cmp.Diff(log.Stats(), map[string]int{"loop_detected": 2, "escaped": 1}); diff != "" {
		t.Fatalf("stats (-got +want)\n%s", diff)
	}
	loops := log.Events(miroir.LoopDetected)
	if len(loops) != 2 || loops[0].Ray != 0 || loops[1].Ray != 2 || loops[1].Period != 2 {
		t.Fatalf("loop events = %+v", loops)
	}
}

func TestEventLogConcurrentRecord(t *testing.T) {
	log := NewEventLog()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res := miroir.Result{Status: miroir.Escaped, Rays: make([]miroir.Ray, 1)}
			if i%2 == 0 {
				res = miroir.Result{Status: miroir.LoopDetected, Rays: make([]miroir.Ray, 3), Loop: miroir.Loop{Start: 0, End: 2}}
			}
			log.Record(i, res)
		}()
	}
	wg.Wait()
	if diff := cmp.Diff(log.Stats(), map[string]int{"loop_detected": 25, "escaped": 25}); diff != "" {
		t.Fatalf("stats (-got +want)\n%s", diff)
	}
	loops := log.Events(miroir.LoopDetected)
	for j, e := range loops {
		if e.Ray != 2*j || e.Period != 2 || e.Steps != 2 {
			t.Fatalf("event #%d = %+v", j, e)
		}
	}
}

func TestRefsAreSharedAndCyclesRejected(t *testing.T) {
	defs := map[string]MirrorCfg{
		"ball": {Type: "sphere", Shape: &SphereCfg{Center: []float64{0, 0}, Radius: 1}},
		"a":    {Type: "ref", Shape: &RefCfg{Name: "b"}},
		"b":    {Type: "group", Shape: &GroupCfg{Mirrors: []MirrorCfg{{Type: "ref", Shape: &RefCfg{Name: "a"}}}}},
	}
	b := NewBuilder(2, defs)
	ref := MirrorCfg{Type: "ref", Shape: &RefCfg{Name: "ball"}}
	list, err := b.List([]MirrorCfg{ref, {Type: "group", Shape: &GroupCfg{Mirrors: []MirrorCfg{ref}}}})
	if err != nil {
		t.Fatal(err)
	}
	first, ok := list[0].(miroir.Shared[miroir.Mirror])
	if !ok {
		t.Fatalf("ref built %T", list[0])
	}
	second := list[1].(miroir.List)[0]
	if second != miroir.Mirror(first) {
		t.Fatal("the two references do not share one mirror")
	}
	if _, ok := first.Get().(*shapes.Sphere); !ok {
		t.Fatalf("shared mirror is %T", first.Get())
	}

	if _, err := b.Mirror(MirrorCfg{Type: "ref", Shape: &RefCfg{Name: "a"}}); !errors.Is(err, ErrRefCycle) {
		t.Fatalf("expected ErrRefCycle, got %v", err)
	}
	if _, err := b.Mirror(MirrorCfg{Type: "ref", Shape: &RefCfg{Name: "missing"}}); err == nil {
		t.Fatal("expected an error for an undefined ref")
	}
}

func TestBuildDimensionMismatch(t *testing.T) {
	cfg := &Config{
		Dimension: 3,
		Rays:      []RayCfg{{Origin: []float64{0, 0, 0}, Direction: []float64{1, 0, 0}}},
		Mirrors:   []MirrorCfg{{Type: "sphere", Shape: &SphereCfg{Center: []float64{0, 0}, Radius: 1}}},
	}
	if _, err := cfg.Build(); !errors.Is(err, miroir.ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
	cfg.Mirrors = nil
	cfg.Rays[0].Direction = []float64{0, 0, 0}
	if _, err := cfg.Build(); !errors.Is(err, miroir.ErrZeroDirection) {
		t.Fatalf("expected ErrZeroDirection, got %v", err)
	}
}

func TestEveryShapeBuilds(t *testing.T) {
	in := `
dimension: 3
rays: [{origin: [0, 0, 0], direction: [0, 0, 1]}]
mirrors:
  - {type: sphere, center: [0, 0, 9], radius: 1}
  - {type: ellipsoid, center: [0, 0, -9], radii: [1, 2], rotDeg: [{i: 0, j: 1, deg: 30}]}
  - {type: simplex, vertices: [[0, 0, 5], [1, 0, 5], [0, 1, 5]]}
  - {type: parallelotope, center: [3, 0, 0], halfEdges: [[0, 1, 0], [0, 0, 1]]}
  - {type: hyperplane, point: [0, 0, 20], normal: [0, 0, 1]}
  - {type: box, min: [-30, -30, -30], max: [30, 30, 30]}
  - {type: polytope, normals: [[1, 0, 0]], offsets: [40]}
  - {type: crosspolytope, center: [0, 0, 0], radius: 50}
  - {type: cylinder, start: [0, 0, -60], end: [0, 0, 60], radius: 60}
`
	cfg, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	s, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	list := s.Mirror.(miroir.List)
	if len(list) != 9 {
		t.Fatalf("%d mirrors built", len(list))
	}
	e := list[1].(*shapes.Ellipsoid)
	if diff := cmp.Diff(e.Radii, []float64{1, 2, 1}); diff != "" {
		t.Fatalf("radii defaults (-got +want)\n%s", diff)
	}
	hit, ok := miroir.ClosestIntersection(s.Rays[0], s.Mirror, miroir.DefaultTolerance())
	if !ok || math.Abs(hit.Distance-5) > 1e-9 {
		t.Fatalf("first hit = %+v, %v", hit, ok)
	}
}

func TestSaveLoadKeepsShapes(t *testing.T) {
	cfg, err := Parse([]byte(corridor))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(back, cfg); diff != "" {
		t.Fatalf("config changed on save/load (-got +want)\n%s", diff)
	}
}

func TestRunWritesReport(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	outPath := filepath.Join(dir, "report.yaml")
	if err := os.WriteFile(cfgPath, []byte(corridor), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Run(cfgPath, outPath); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	var rep Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		t.Fatal(err)
	}
	if rep.RunID == "" || rep.Dimension != 2 || len(rep.Paths) != 3 || rep.Config != cfgPath {
		t.Fatalf("report = %+v", rep)
	}
	p := rep.Paths[0]
	if p.Status != "loop_detected" || p.Loop == nil || p.Loop.Period != 2 || len(p.Points) != 4 {
		t.Fatalf("path 0 = %+v", p)
	}
	if diff := cmp.Diff(p.Points[1], []float64{1, 0}); diff != "" {
		t.Fatalf("first bounce (-got +want)\n%s", diff)
	}
	if rep.Paths[1].Loop != nil || rep.Paths[1].Steps != 0 {
		t.Fatalf("escaped path = %+v", rep.Paths[1])
	}

	if err := Run(filepath.Join(dir, "missing.yaml"), outPath); err == nil {
		t.Fatal("expected an error for a missing config")
	}
}
