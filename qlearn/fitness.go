package qlearn

import (
	"github.com/niceyeti/lgp/envstate"
	"github.com/niceyeti/lgp/program"
	"github.com/niceyeti/lgp/rng"
)

// Fitness scores a QProgram by cumulative reward over one episode, with
// action selection driven by a per-trial Q-table keyed by winning
// register index rather than directly by the action registers. Grounded
// on fitness.RL's episode loop, extended with the greedy-selection/
// SARSA-update pair from spec.md §4.8.3.
type Fitness struct {
	NewEnv func() envstate.Environment

	NInputs        int
	NActions       int
	ExternalFactor float64
	MaxSteps       int

	// Src supplies every stochastic draw this trial needs: the
	// ε-greedy action override and its uniform replacement action.
	Src *rng.Source
}

// step captures everything needed to defer a Q update by one time step,
// matching the SARSA-style "look one step ahead" update rule.
type step struct {
	winningRegister int
	action          int
	reward          float64
}

// Eval runs one trial: a fresh environment, a fresh zero Q-table, and
// per-step ε-greedy action selection with a conditional SARSA-style
// update whenever the winning register changes between consecutive
// steps. alpha and epsilon decay multiplicatively after every step; both
// reset to qp's configured starting values at the top of each trial, so
// decay never leaks across trials.
func (f *Fitness) Eval(qp *QProgram) float64 {
	p := qp.Program
	env := f.NewEnv()
	q := newTable(len(p.Registers), f.NActions)

	alpha := qp.Alpha
	epsilon := qp.Epsilon

	var reward float64
	var prev *step

	input := make([]float64, f.NInputs)

	for t := 0; t < f.MaxSteps && !env.IsTerminal(); t++ {
		for i := range input {
			input[i] = env.Get(i)
		}
		p.ResetRegisters()
		program.Execute(p, input, f.ExternalFactor)

		winningRegister := program.Argmax(p.Registers, len(p.Registers))
		action := q.maxAction(winningRegister)
		if f.Src.Float64() < epsilon {
			action = f.Src.IntN(f.NActions)
		}

		stepReward := env.ExecuteAction(action)
		reward += stepReward

		// The update for the *previous* transition needs this step's
		// winning register (r_{t+1}) and the reward that previous
		// transition actually produced (reward_{t+1}, captured when it
		// was taken) — never this step's own fresh reward.
		if prev != nil && prev.winningRegister != winningRegister {
			target := prev.reward + qp.Gamma*q.maxValue(winningRegister)
			cur := q[prev.winningRegister][prev.action]
			q[prev.winningRegister][prev.action] = cur + alpha*(target-cur)
		}

		prev = &step{winningRegister: winningRegister, action: action, reward: stepReward}

		alpha *= 1 - qp.AlphaDecay
		epsilon *= 1 - qp.EpsilonDecay
	}

	return reward
}
