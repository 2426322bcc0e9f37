package miroir

import (
	"fmt"
	"iter"

	"github.com/golang/glog"
)

// Status is the state of a Path.
type Status uint8

const (
	Running         Status = iota // more rays may follow
	Escaped                       // no intersection left: the ray went to infinity
	MaxStepsReached               // step ceiling hit before any other outcome
	LoopDetected                  // the ray came back to an earlier state
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Escaped:
		return "escaped"
	case MaxStepsReached:
		return "max_steps_reached"
	case LoopDetected:
		return "loop_detected"
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// Loop is the repeating part of a path: rays Start..End-1 form one period,
// and ray End is (within tolerance) ray Start again.
type Loop struct {
	Start int
	End   int
}

// Period returns the number of reflections in one cycle.
func (l Loop) Period() int { return l.End - l.Start }

type pathConfig struct {
	tol         Tolerance
	loopTol     float64
	history     int
	detectLoops bool
}

// Option configures a Path.
type Option func(*pathConfig)

// WithTolerance sets the resolver tolerance.
func WithTolerance(t Tolerance) Option { return func(c *pathConfig) { c.tol = t } }

// WithLoopTolerance sets how close two ray states must be to count as equal.
func WithLoopTolerance(eps float64) Option { return func(c *pathConfig) { c.loopTol = eps } }

// WithHistory sets how many recent ray states are kept for loop detection.
func WithHistory(n int) Option { return func(c *pathConfig) { c.history = n } }

// WithoutLoopDetection disables loop detection; only Escaped and
// MaxStepsReached can end the path.
func WithoutLoopDetection() Option { return func(c *pathConfig) { c.detectLoops = false } }

type historyEntry struct {
	index int
	ray   Ray
}

// Path is the lazy sequence of rays produced by repeated intersection and
// reflection. Ray 0 is the initial ray and ray k follows the k-th
// reflection. A Path is not safe for concurrent use and cannot be rewound:
// build a new one to replay it.
type Path struct {
	mirror   Mirror
	ray      Ray
	maxSteps int
	steps    int
	status   Status
	loop     Loop
	last     Intersection
	cfg      pathConfig

	// ring buffer of the most recent states
	history []historyEntry
	head    int
}

// NewPath starts a path at ray through mirror. At most maxSteps reflections
// are computed.
func NewPath(ray Ray, mirror Mirror, maxSteps int, opts ...Option) (*Path, error) {
	if maxSteps <= 0 {
		return nil, fmt.Errorf("max steps %d: %w", maxSteps, ErrBadSteps)
	}
	if mirror == nil {
		return nil, fmt.Errorf("path needs a mirror")
	}
	// rays built as struct literals get the same checks and normalization
	ray, err := NewRay(ray.Origin, ray.Direction)
	if err != nil {
		return nil, fmt.Errorf("path start: %w", err)
	}
	cfg := pathConfig{
		tol:         DefaultTolerance(),
		loopTol:     DefaultLoopTolerance,
		history:     DefaultHistory,
		detectLoops: true,
	}
	for _, o := range opts {
		o(&cfg)
	}
	if err := cfg.tol.validate(); err != nil {
		return nil, err
	}
	if cfg.loopTol < 0 || cfg.history <= 0 {
		return nil, fmt.Errorf("loop tolerance %g, history %d: %w", cfg.loopTol, cfg.history, ErrBadTolerance)
	}
	p := &Path{
		mirror:   mirror,
		ray:      ray,
		maxSteps: maxSteps,
		cfg:      cfg,
	}
	if cfg.detectLoops {
		p.history = make([]historyEntry, 0, min(cfg.history, maxSteps+1))
		p.remember(0, ray)
	}
	debugLog("new path from %v, max steps %d, tolerance %+v", ray, maxSteps, cfg.tol)
	return p, nil
}

// Next computes and returns the next ray. It returns false once the path
// has terminated; Status then tells why.
func (p *Path) Next() (Ray, bool) {
	if p.status != Running {
		return Ray{}, false
	}
	if p.steps >= p.maxSteps {
		p.status = MaxStepsReached
		debugLog("path gave up after %d steps", p.steps)
		return Ray{}, false
	}
	hit, ok := ClosestIntersection(p.ray, p.mirror, p.cfg.tol)
	if !ok {
		p.status = Escaped
		debugLog("path escaped after %d steps from %v", p.steps, p.ray)
		return Ray{}, false
	}
	next := Bounce(p.ray, hit)
	p.steps++
	p.ray = next
	p.last = hit
	if glog.V(3) {
		glog.Infof("step %d: hit at distance %.9g, candidate #%d, new %v", p.steps, hit.Distance, hit.Index, next)
	}
	if p.cfg.detectLoops {
		if j, ok := p.match(next); ok {
			p.status = LoopDetected
			p.loop = Loop{Start: j, End: p.steps}
			debugLog("loop detected: rays %d..%d (period %d)", j, p.steps, p.loop.Period())
		}
		p.remember(p.steps, next)
	}
	return next, true
}

// match looks for a retained state close to r, oldest first.
func (p *Path) match(r Ray) (int, bool) {
	n := len(p.history)
	for i := 0; i < n; i++ {
		e := p.history[(p.head+i)%n]
		if r.Near(e.ray, p.cfg.loopTol) {
			return e.index, true
		}
	}
	return 0, false
}

func (p *Path) remember(index int, r Ray) {
	e := historyEntry{index: index, ray: r}
	if len(p.history) < cap(p.history) {
		p.history = append(p.history, e)
		return
	}
	p.history[p.head] = e
	p.head = (p.head + 1) % len(p.history)
}

// Status returns the current state.
func (p *Path) Status() Status { return p.status }

// Steps returns how many reflections were computed.
func (p *Path) Steps() int { return p.steps }

// Current returns the latest ray (the initial one before the first Next).
func (p *Path) Current() Ray { return p.ray }

// LastHit returns the contact that produced the current ray.
func (p *Path) LastHit() (Intersection, bool) { return p.last, p.steps > 0 }

// Loop returns the repeating range once the path ended in LoopDetected.
func (p *Path) Loop() (Loop, bool) { return p.loop, p.status == LoopDetected }

// All returns a range-over-func view yielding (index, ray) for every
// remaining reflection. Breaking out of the loop leaves the path usable.
func (p *Path) All() iter.Seq2[int, Ray] {
	return func(yield func(int, Ray) bool) {
		for {
			r, ok := p.Next()
			if !ok || !yield(p.steps, r) {
				return
			}
		}
	}
}

// Result is a fully drained path.
type Result struct {
	// Rays holds the initial ray followed by every reflected ray.
	Rays   []Ray
	Status Status
	Loop   Loop
}

// Collect drains the path. The current ray is included first. Loop indices
// count from the initial ray, so they index Rays only on a fresh path.
func (p *Path) Collect() Result {
	rays := []Ray{p.ray}
	for _, r := range p.All() {
		rays = append(rays, r)
	}
	res := Result{Rays: rays, Status: p.status}
	if l, ok := p.Loop(); ok {
		res.Loop = l
	}
	return res
}

// Simulate builds a path and drains it.
func Simulate(ray Ray, mirror Mirror, maxSteps int, opts ...Option) (Result, error) {
	p, err := NewPath(ray, mirror, maxSteps, opts...)
	if err != nil {
		return Result{}, err
	}
	return p.Collect(), nil
}

// Looped reports whether the path ended in a detected cycle.
func (r Result) Looped() bool { return r.Status == LoopDetected }

// Split separates the transient prefix from one period of the cycle.
// Without a loop, the whole path is transient.
func (r Result) Split() (transient, cycle []Ray) {
	if !r.Looped() {
		return r.Rays, nil
	}
	return r.Rays[:r.Loop.Start], r.Rays[r.Loop.Start:r.Loop.End]
}

// Length returns the total distance traveled between consecutive origins.
func (r Result) Length() float64 {
	var l float64
	for i := 1; i < len(r.Rays); i++ {
		l += r.Rays[i].Origin.Dist(r.Rays[i-1].Origin)
	}
	return l
}
