// Package qlearn implements the optional ε-greedy Q-learning overlay:
// QProgram wraps a program.Program with the scalar hyperparameters of a
// per-trial Q-table keyed by winning register index, and Fitness scores
// a QProgram the same way fitness.RL scores a plain program, but with
// action selection and a SARSA-style update layered on top.
package qlearn

import "github.com/niceyeti/lgp/program"

// QProgram wraps a program with the Q-learning overlay's scalar
// hyperparameters. The Q-table itself is never a field here: it is
// zero-initialized fresh at the start of every trial and discarded at
// the end, so it never persists into the genome (spec.md §4.8.3, §9).
type QProgram struct {
	Program *program.Program

	Alpha        float64
	Gamma        float64
	Epsilon      float64
	AlphaDecay   float64
	EpsilonDecay float64
}

// Clone returns a QProgram wrapping a clone of the underlying program,
// carrying the same Q hyperparameters forward unchanged — the
// hyperparameters are part of the run configuration, not the evolved
// genome, so variation never touches them.
func (q *QProgram) Clone() *QProgram {
	return &QProgram{
		Program:      q.Program.Clone(),
		Alpha:        q.Alpha,
		Gamma:        q.Gamma,
		Epsilon:      q.Epsilon,
		AlphaDecay:   q.AlphaDecay,
		EpsilonDecay: q.EpsilonDecay,
	}
}
