package evolve

// Population is one generation's ordered set of individuals. After
// evaluation and ranking, position 0 is the best.
type Population[P any] []P

// Hook is a side-effect-free callback invoked once per completed
// generation. Implementations must not mutate pop; the loop passes the
// same backing slice header every caller receives read access to, not a
// defensive deep copy, since individuals are plain data and Go has no
// way to enforce immutability short of one — callers are trusted the
// same way the teacher trusts its ProgressFunc callers not to write
// through the grid it hands them.
type Hook[P any] func(generation int, pop Population[P])
