package envstate

// CounterEnv is a minimal deterministic RL environment fixture: a 1-D
// counter nudged by two actions (decrement, increment) toward a bound,
// terminating when the bound is reached or a step cap is hit. Grounded
// on the teacher's grid_world track-and-kinematics environment, reduced
// to the simplest state machine that still exercises terminal detection
// and reward accumulation, for testing fitness.RL and qlearn.Fitness
// without pulling in a real control-theory benchmark.
type CounterEnv struct {
	Bound   float64
	StepCap int

	counter float64
	steps   int
}

// NewCounterEnv builds an environment starting at zero.
func NewCounterEnv(bound float64, stepCap int) *CounterEnv {
	return &CounterEnv{Bound: bound, StepCap: stepCap}
}

// Get returns the current counter value; idx is ignored, this
// environment has exactly one feature.
func (e *CounterEnv) Get(idx int) float64 {
	return e.counter
}

// ExecuteAction applies action 0 as a decrement and any other action as
// an increment, advances the step count, and returns a reward of 1 for
// every step survived.
func (e *CounterEnv) ExecuteAction(action int) float64 {
	if action == 0 {
		e.counter--
	} else {
		e.counter++
	}
	e.steps++
	return 1
}

func (e *CounterEnv) Next() bool {
	return !e.IsTerminal()
}

// IsTerminal reports whether the counter has reached -Bound or Bound, or
// the step cap has been reached.
func (e *CounterEnv) IsTerminal() bool {
	return e.counter <= -e.Bound || e.counter >= e.Bound || e.steps >= e.StepCap
}

// InitialState returns the starting observation vector.
func (e *CounterEnv) InitialState() []float64 {
	return []float64{0}
}

// Reset returns the environment to its starting state for the next trial.
func (e *CounterEnv) Reset() {
	e.counter = 0
	e.steps = 0
}
