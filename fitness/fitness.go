// Package fitness evaluates a program against one or many trials of a
// caller-supplied state and reduces the trial results to a single
// generational fitness value via median. Classification and RL are
// provided here; the Q-learning overlay variant lives in package qlearn
// since it is inseparable from QProgram's per-trial table lifecycle.
package fitness

import (
	"sort"

	"github.com/niceyeti/lgp/program"
)

// Strategy evaluates one program against a single fresh trial and
// returns that trial's score. A Strategy owns its own state factory
// (dataset or environment) so it can construct an independent instance
// per trial.
type Strategy interface {
	Eval(p *program.Program) float64
}

// Median runs strategy.Eval against p nTrials times, in order, and
// returns the median of the results. Evaluation of one individual is
// always serial, even when the evolution loop evaluates many individuals
// concurrently, because RL/Q trials carry state (a Q-table, an
// environment) that must not be shared across concurrent calls.
func Median(strategy Strategy, p *program.Program, nTrials int) float64 {
	scores := make([]float64, nTrials)
	for i := range scores {
		scores[i] = strategy.Eval(p)
	}
	return median(scores)
}

func median(scores []float64) float64 {
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
