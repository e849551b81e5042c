package variation

import (
	"github.com/niceyeti/lgp/program"
	"github.com/niceyeti/lgp/rng"
)

// Mutate selects one instruction of p uniformly at random and, for each
// of its three independent fields (operation, source index+mode,
// target index), replaces that field with the corresponding field of a
// freshly generated instruction with probability 1/2. p is mutated in
// place; its fitness is cleared since the genome changed.
func Mutate(src *rng.Source, p *program.Program, params Params) {
	idx := src.IntN(len(p.Instructions))
	replacement := GenerateInstruction(src, params)
	cur := p.Instructions[idx]

	if src.Bool() {
		cur.Op = replacement.Op
	}
	if src.Bool() {
		cur.SourceIndex = replacement.SourceIndex
		cur.Mode = replacement.Mode
	}
	if src.Bool() {
		cur.TargetIndex = replacement.TargetIndex
	}

	p.Instructions[idx] = cur
	p.Fitness = nil
}
