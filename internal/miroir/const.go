package miroir

const (
	// DefaultEpsilon is the minimal distance a ray travels before it can be
	// reflected again. It rejects the surface the ray just left.
	DefaultEpsilon = 1e-9
	// DefaultTie is how much closer a later candidate must be to replace
	// an earlier one.
	DefaultTie = 1e-12
	// DefaultLoopTolerance bounds origin and direction differences for two
	// ray states to count as the same.
	DefaultLoopTolerance = 1e-7
	DefaultHistory       = 64
	DefaultMaxSteps      = 1000
)

// rays whose direction has a smaller component along a normal are parallel
const parallelEps = 1e-12
