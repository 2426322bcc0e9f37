package miroir

// List is a type-erased, variable-length group of mirrors. Elements are
// queried in order and all report into the same context.
type List []Mirror

func (l List) Query(ray Ray, ctx *Context) {
	for _, m := range l {
		m.Query(ray, ctx)
	}
}

// Slice is a homogeneous group whose element type is known at compile time,
// so each query is a direct call rather than an interface dispatch.
type Slice[M Mirror] []M

func (s Slice[M]) Query(ray Ray, ctx *Context) {
	for i := range s {
		s[i].Query(ray, ctx)
	}
}

// Fixed is a homogeneous group whose size is set at construction.
type Fixed[M Mirror] struct {
	items []M
}

// NewFixed copies ms into a group that cannot grow or shrink.
func NewFixed[M Mirror](ms ...M) Fixed[M] {
	return Fixed[M]{items: append([]M(nil), ms...)}
}

func (f Fixed[M]) Len() int  { return len(f.items) }
func (f Fixed[M]) At(i int) M { return f.items[i] }

func (f Fixed[M]) Query(ray Ray, ctx *Context) {
	for i := range f.items {
		f.items[i].Query(ray, ctx)
	}
}

// Shared is a handle on a single mirror definition that several groups may
// hold at once without copying it. The definition lives as long as its
// longest holder. Querying through the handle reports exactly what the
// underlying mirror reports.
type Shared[M Mirror] struct {
	m *M
}

// NewShared moves m behind a shared handle.
func NewShared[M Mirror](m M) Shared[M] {
	return Shared[M]{m: &m}
}

// Get returns the shared definition.
func (s Shared[M]) Get() M { return *s.m }

func (s Shared[M]) Query(ray Ray, ctx *Context) {
	if s.m == nil {
		return
	}
	(*s.m).Query(ray, ctx)
}

// Pair groups two mirrors of possibly different concrete types.
// Nest pairs (or use Triple) for larger tuples.
type Pair[A, B Mirror] struct {
	First  A
	Second B
}

func NewPair[A, B Mirror](a A, b B) Pair[A, B] { return Pair[A, B]{First: a, Second: b} }

func (p Pair[A, B]) Query(ray Ray, ctx *Context) {
	p.First.Query(ray, ctx)
	p.Second.Query(ray, ctx)
}

// Triple groups three mirrors of possibly different concrete types.
type Triple[A, B, C Mirror] struct {
	First  A
	Second B
	Third  C
}

func NewTriple[A, B, C Mirror](a A, b B, c C) Triple[A, B, C] {
	return Triple[A, B, C]{First: a, Second: b, Third: c}
}

func (t Triple[A, B, C]) Query(ray Ray, ctx *Context) {
	t.First.Query(ray, ctx)
	t.Second.Query(ray, ctx)
	t.Third.Query(ray, ctx)
}
