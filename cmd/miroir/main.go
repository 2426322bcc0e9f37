package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime/pprof"
	"time"

	"github.com/golang/glog"

	"github.com/lukaszgryglicki/miroir/internal/random"
	"github.com/lukaszgryglicki/miroir/internal/scene"
)

var (
	out      = flag.String("out", scene.DefaultReport, "Where to write the YAML report (or the generated config with -random).")
	randomN  = flag.Int("random", 0, "Generate a random scene with this many mirrors instead of simulating.")
	dim      = flag.Int("dim", 3, "Dimension of the random scene.")
	seed     = flag.Int64("seed", 0, "Seed for -random, 0 for the current time.")
	rays     = flag.Int("rays", 0, "Number of rays in the random scene, 0 for a random count.")
	maxSteps = flag.Int("max-steps", 0, "Max steps written to the random scene, 0 for the default.")
)

func main() {
	flag.Parse()
	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	glog.Infof("flags:")
	glog.Infof("out: %v", *out)
	glog.Infof("random: %v", *randomN)
	glog.Infof("dim: %v", *dim)
	glog.Infof("seed: %v", *seed)

	if os.Getenv("PROFILE") != "" {
		f, err := os.Create("cpu.out")
		if err != nil {
			glog.Exitf("Error: %v", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			glog.Exitf("Error: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	if err := do(); err != nil {
		pprof.StopCPUProfile()
		glog.Exitf("Error: %v", err)
	}
}

func do() error {
	if *randomN > 0 {
		return generate()
	}
	cfg := scene.DefaultConfig
	if flag.NArg() > 0 {
		cfg = flag.Arg(0)
	}
	return scene.Run(cfg, *out)
}

func generate() error {
	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(s))
	cfg, err := random.Simulation(rng, *dim, random.Options{Mirrors: *randomN, Rays: *rays, MaxSteps: *maxSteps})
	if err != nil {
		return fmt.Errorf("while generating a random scene: %w", err)
	}
	if err := scene.Save(*out, cfg); err != nil {
		return fmt.Errorf("while saving %s: %w", *out, err)
	}
	glog.Infof("random %dD scene with %d mirrors and %d rays (seed %d) saved to %s", cfg.Dimension, len(cfg.Mirrors), len(cfg.Rays), s, *out)
	return nil
}
