// Package envstate defines the capability sets a caller's problem state
// must satisfy to be evaluated by fitness or qlearn. The core never
// implements a production dataset or environment — callers adapt their
// own data source to these interfaces. The two fixtures in this package
// exist solely so the engine's own test suite has something to evaluate
// against.
package envstate

// Dataset is the capability set a finite, iterable state space must
// provide: classification rows, or a non-terminal RL environment viewed
// one step at a time.
//
// A fatal failure in any method here (a dataset file that can't be
// read, a live environment's backing service erroring out) has no
// return-value channel to travel through: implementations report it by
// panicking with lgperr.EnvironmentIOFault{Cause: err}. evolve.Loop
// recognizes that specific panic payload and aborts the run with
// lgperr.ErrEnvironmentIO instead of absorbing it as a per-trial
// EvaluationFault. Any other panic (index out of range, a program bug)
// is treated as an ordinary EvaluationFault.
type Dataset interface {
	// Get reads the idx-th feature of the current observation.
	Get(idx int) float64
	// ExecuteAction applies action against the current observation and
	// returns a reward or class-match indicator, depending on variant.
	ExecuteAction(action int) float64
	// Next advances to the next row/step. It returns false when no rows
	// remain (dataset exhausted) or the episode has otherwise ended.
	Next() bool
}

// Environment extends Dataset with the two RL-only operations: terminal
// detection and initial-state retrieval for generating a starting
// register-external input vector.
type Environment interface {
	Dataset
	IsTerminal() bool
	InitialState() []float64
}

// Generator produces a fresh Dataset or Environment instance, the
// envstate half of variation.Generate's generate_state hook. The core
// never constructs problem state itself; a caller always supplies one of
// these.
type Generator interface {
	GenerateState() Dataset
}
