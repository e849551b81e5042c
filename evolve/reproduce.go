package evolve

import "math"

// survivorCount returns ceil(PopulationSize * (1 - Gap)).
func survivorCount(populationSize int, gap float64) int {
	return int(math.Ceil(float64(populationSize) * (1 - gap)))
}

// reproduce truncates the current (ranked) population to its survivors
// and refills it to PopulationSize via weighted mutation/crossover/
// reproduction. Survivors are carried forward with their fitness intact
// (rank already put the best first); offspring always have their
// fitness cleared by Ops.Mutate/Ops.Breed, except reproduction's plain
// clone, which explicitly copies the parent's fitness forward since
// nothing about the individual changed.
func (l *Loop[P]) reproduce(generation int) Population[P] {
	nSurvivors := survivorCount(l.Params.PopulationSize, l.Params.Gap)
	if nSurvivors > len(l.population) {
		nSurvivors = len(l.population)
	}
	survivors := l.population[:nSurvivors]

	next := make(Population[P], 0, l.Params.PopulationSize)
	next = append(next, survivors...)

	reproductionPercent := 1 - l.Params.MutationPercent - l.Params.CrossoverPercent
	weights := []float64{l.Params.MutationPercent, l.Params.CrossoverPercent, reproductionPercent}

	for offspringIdx := 0; len(next) < l.Params.PopulationSize; offspringIdx++ {
		// Each offspring draws from the split stream at its own index in
		// the next population (past the survivor range). evaluate later
		// splits the same (generation, index) coordinate for that
		// offspring's Eval.
		src := l.root.Split(generation, nSurvivors+offspringIdx)

		switch src.WeightedChoice(weights) {
		case 0:
			parent := survivors[src.IntN(len(survivors))]
			child := l.Ops.Clone(parent)
			l.Ops.Mutate(src, child)
			next = append(next, child)
		case 1:
			a := survivors[src.IntN(len(survivors))]
			b := survivors[src.IntN(len(survivors))]
			next = append(next, l.Ops.Breed(src, a, b))
		default:
			parent := survivors[src.IntN(len(survivors))]
			child := l.Ops.Clone(parent)
			parentFitness := *l.Ops.GetFitness(parent)
			l.Ops.SetFitness(child, &parentFitness)
			next = append(next, child)
		}
	}

	return next
}
