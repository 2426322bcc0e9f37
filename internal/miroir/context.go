package miroir

// Candidate is one (distance, tangent space) pair reported by a mirror.
// Distance is the signed t such that ray.At(t) lies on the surface.
type Candidate struct {
	Distance float64
	Tangent  TangentSpace
}

// Context collects the candidates reported during a single query.
// Mirrors may only read the ray and append candidates.
type Context struct {
	ray        Ray
	candidates []Candidate
}

// NewContext opens a fresh query over ray.
func NewContext(ray Ray) *Context {
	return &Context{ray: ray}
}

// Add reports a contact at signed distance d with tangent space t.
func (c *Context) Add(d float64, t TangentSpace) {
	c.candidates = append(c.candidates, Candidate{Distance: d, Tangent: t})
}

// AddTangent reports a tangent hyperplane without a known distance; the
// distance is derived by intersecting the ray with it. It returns false and
// reports nothing when the ray is parallel to t or t is not a hyperplane.
func (c *Context) AddTangent(t TangentSpace) bool {
	d, ok := t.Distance(c.ray)
	if !ok {
		return false
	}
	c.Add(d, t)
	return true
}

// Len returns the number of candidates reported so far.
func (c *Context) Len() int { return len(c.candidates) }

// Candidates returns a copy of the reported candidates in report order.
func (c *Context) Candidates() []Candidate {
	return append([]Candidate(nil), c.candidates...)
}
