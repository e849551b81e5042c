package fitness

import (
	"github.com/niceyeti/lgp/envstate"
	"github.com/niceyeti/lgp/program"
)

// RL scores a program by cumulative reward over one episode of a
// caller-supplied environment, with no Q-learning overlay. Grounded on
// the teacher's alphaMonteCarloVanillaTrain episode loop, reduced to
// straight reward accumulation with no state-value bookkeeping.
type RL struct {
	// NewEnv builds one fresh environment instance per trial.
	NewEnv func() envstate.Environment

	NInputs        int
	NActions       int
	ExternalFactor float64
	MaxSteps       int
}

// Eval runs the program against a fresh environment until the
// environment reports terminal or MaxSteps is reached, accumulating the
// reward returned by each step.
func (r *RL) Eval(p *program.Program) float64 {
	env := r.NewEnv()

	var reward float64
	input := make([]float64, r.NInputs)

	for step := 0; step < r.MaxSteps && !env.IsTerminal(); step++ {
		p.ResetRegisters()
		for i := range input {
			input[i] = env.Get(i)
		}

		program.Execute(p, input, r.ExternalFactor)
		action := program.Argmax(p.Registers, r.NActions)

		reward += env.ExecuteAction(action)
	}

	return reward
}
