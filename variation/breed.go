package variation

import (
	"github.com/niceyeti/lgp/program"
	"github.com/niceyeti/lgp/rng"
)

// Breed performs two-point crossover. Both parents are cloned; two
// distinct cut points 0 <= a < b < min(len(p1), len(p2)) are chosen
// uniformly, the instruction slice [a,b) is swapped between the clones,
// and one of the two resulting offspring is returned uniformly at
// random — the other is discarded. The returned child's fitness is
// always cleared.
//
// If either parent has fewer than two instructions there is no valid cut
// point pair; Breed is then a no-op that returns a clone of p1.
func Breed(src *rng.Source, p1, p2 *program.Program) *program.Program {
	minLen := len(p1.Instructions)
	if len(p2.Instructions) < minLen {
		minLen = len(p2.Instructions)
	}

	if minLen < 2 {
		return p1.Clone()
	}

	c1 := p1.Clone()
	c2 := p2.Clone()

	a, b := distinctCutPoints(src, minLen)
	for i := a; i < b; i++ {
		c1.Instructions[i], c2.Instructions[i] = c2.Instructions[i], c1.Instructions[i]
	}

	var child *program.Program
	if src.Bool() {
		child = c1
	} else {
		child = c2
	}
	child.Fitness = nil

	return child
}

// distinctCutPoints returns two distinct indices a < b drawn uniformly
// from [0, n).
func distinctCutPoints(src *rng.Source, n int) (a, b int) {
	a = src.IntN(n)
	b = src.IntN(n - 1)
	if b >= a {
		b++
	}
	if a > b {
		a, b = b, a
	}
	return a, b
}
