package miroir

// Compile time checks that every adapter is a Mirror
var (
	_ Mirror = List(nil)
	_ Mirror = Slice[Mirror](nil)
	_ Mirror = Fixed[Mirror]{}
	_ Mirror = Shared[Mirror]{}
	_ Mirror = Pair[Mirror, Mirror]{}
	_ Mirror = Triple[Mirror, Mirror, Mirror]{}
	_ Mirror = Func(nil)
)
