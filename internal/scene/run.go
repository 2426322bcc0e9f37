package scene

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/lukaszgryglicki/miroir/internal/miroir"
)

type LoopReport struct {
	Start  int `yaml:"start"`
	End    int `yaml:"end"`
	Period int `yaml:"period"`
}

type PathReport struct {
	Ray       int         `yaml:"ray"`
	Status    string      `yaml:"status"`
	Steps     int         `yaml:"steps"`
	Length    float64     `yaml:"length"`
	Loop      *LoopReport `yaml:"loop,omitempty"`
	Points    [][]float64 `yaml:"points,flow"`
	Direction []float64   `yaml:"direction,flow"` // of the last ray
}

type Report struct {
	RunID     string         `yaml:"runId"`
	Config    string         `yaml:"config,omitempty"`
	Dimension int            `yaml:"dimension"`
	Elapsed   string         `yaml:"elapsed"`
	Stats     map[string]int `yaml:"stats"`
	Paths     []PathReport   `yaml:"paths"`
}

// Simulate runs every ray of s and records the outcomes in log.
func Simulate(ctx context.Context, s *Scene, log *EventLog) ([]miroir.Result, error) {
	results, err := miroir.SimulateAll(ctx, s.Rays, s.Mirror, s.MaxSteps, s.Workers, s.Options...)
	if err != nil {
		return nil, err
	}
	for i, res := range results {
		log.Record(i, res)
	}
	return results, nil
}

// NewReport summarizes the results of one run.
func NewReport(id uuid.UUID, s *Scene, results []miroir.Result, log *EventLog, elapsed time.Duration) *Report {
	rep := &Report{
		RunID:     id.String(),
		Dimension: s.Dim,
		Elapsed:   elapsed.String(),
		Stats:     log.Stats(),
		Paths:     make([]PathReport, 0, len(results)),
	}
	for i, res := range results {
		pr := PathReport{
			Ray:    i,
			Status: res.Status.String(),
			Steps:  len(res.Rays) - 1,
			Length: res.Length(),
			Points: make([][]float64, 0, len(res.Rays)),
		}
		for _, r := range res.Rays {
			pr.Points = append(pr.Points, []float64(r.Origin.Clone()))
		}
		if n := len(res.Rays); n > 0 {
			pr.Direction = []float64(res.Rays[n-1].Direction.Clone())
		}
		if res.Looped() {
			pr.Loop = &LoopReport{Start: res.Loop.Start, End: res.Loop.End, Period: res.Loop.Period()}
		}
		rep.Paths = append(rep.Paths, pr)
	}
	return rep
}

// Run loads cfgPath, simulates every ray and writes a YAML report to
// outPath.
func Run(cfgPath, outPath string) error {
	cfg, err := Load(cfgPath)
	if err != nil {
		return err
	}
	s, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("%s: %w", cfgPath, err)
	}
	id := uuid.New()
	glog.Infof("run %s: %d rays in %dD, max steps %d", id, len(s.Rays), s.Dim, s.MaxSteps)

	log := NewEventLog()
	start := time.Now()
	results, err := Simulate(context.Background(), s, log)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	glog.Infof("run %s: %d rays, time: %s", id, len(results), elapsed)
	log.LogStats()

	rep := NewReport(id, s, results, log, elapsed)
	rep.Config = cfgPath
	data, err := yaml.Marshal(rep)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return err
	}
	debugLog("Saved report: %s", outPath)
	return nil
}
