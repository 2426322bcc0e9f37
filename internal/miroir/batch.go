package miroir

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ctxCheckEvery is how many steps a worker runs between cancellation checks.
const ctxCheckEvery = 64

// SimulateAll runs an independent path for every ray, on up to workers
// goroutines (NumCPU when workers <= 0). mirror is shared read-only by all
// of them. results[i] belongs to rays[i]. The first error (including
// cancellation of ctx) stops the remaining work.
func SimulateAll(ctx context.Context, rays []Ray, mirror Mirror, maxSteps, workers int, opts ...Option) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(rays) {
		workers = len(rays)
	}
	results := make([]Result, len(rays))
	if len(rays) == 0 {
		return results, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range rays {
		g.Go(func() error {
			p, err := NewPath(rays[i], mirror, maxSteps, opts...)
			if err != nil {
				return fmt.Errorf("ray #%d: %w", i, err)
			}
			out := []Ray{p.Current()}
			for {
				if p.Steps()%ctxCheckEvery == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				r, ok := p.Next()
				if !ok {
					break
				}
				out = append(out, r)
			}
			res := Result{Rays: out, Status: p.Status()}
			if l, ok := p.Loop(); ok {
				res.Loop = l
			}
			results[i] = res
			debugLog("ray #%d: %s after %d steps", i, res.Status, p.Steps())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
