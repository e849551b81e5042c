package evolve

import (
	"github.com/google/uuid"

	"github.com/niceyeti/lgp/rng"
)

// Ops is the set of per-individual operations the loop needs but cannot
// know the concrete shape of: P might be *program.Program for plain
// classification/RL runs, or *qlearn.QProgram for a Q-overlay run. The
// loop is generic over P and never touches its fields directly, the way
// the teacher's fastview.ViewBuilder[DataModel, ViewModel] stays generic
// over the view's data shape and only calls caller-supplied builder
// functions.
type Ops[P any] struct {
	// NewIndividual builds one fresh random individual using src for
	// every stochastic decision.
	NewIndividual func(src *rng.Source) P

	// Clone returns an independent copy with a fresh identity.
	Clone func(p P) P

	// Mutate perturbs p in place using src for every stochastic decision.
	Mutate func(src *rng.Source, p P)

	// Breed returns one offspring of p1 and p2, using src for every
	// stochastic decision.
	Breed func(src *rng.Source, p1, p2 P) P

	// Eval runs one individual's full NTrials-median fitness evaluation
	// using src for any randomness the strategy itself needs (e.g. the
	// Q overlay's ε-greedy draws). It must not mutate p beyond what a
	// trial legitimately does to p's own registers.
	Eval func(src *rng.Source, p P) float64

	GetFitness func(p P) *float64
	SetFitness func(p P, f *float64)
	GetID      func(p P) uuid.UUID
}
