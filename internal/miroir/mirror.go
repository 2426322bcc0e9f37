package miroir

// Mirror is any reflective surface, or set of surfaces.
//
// Query appends to ctx a candidate for every point where the infinite line
// carried by ray meets the surface, in no particular order and at any signed
// distance: contacts behind the origin are reported too and discarded by the
// resolver. Query must not retain or modify ray, and must be deterministic:
// the same ray always yields the same candidates. It must not mutate state
// shared with other queries, so one Mirror can serve many goroutines.
type Mirror interface {
	Query(ray Ray, ctx *Context)
}

// Func adapts an ordinary function to the Mirror interface.
type Func func(ray Ray, ctx *Context)

func (f Func) Query(ray Ray, ctx *Context) { f(ray, ctx) }
