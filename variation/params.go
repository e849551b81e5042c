// Package variation implements the operators that produce, perturb, and
// recombine programs: Generate, Mutate, Breed, and Reset. Every
// stochastic choice routes through a caller-supplied *rng.Source so the
// operators are deterministic and reproducible under splitting.
package variation

// Params bundles the structural hyperparameters the variation operators
// need to know about a program's shape. It is a narrower view of
// config.HyperParameters — variation never imports config, only the
// fields it actually consumes.
type Params struct {
	MaxInstructions int
	NActions        int
	NExtras         int
	NInputs         int
}

// NR is the total register count implied by p.
func (p Params) NR() int {
	return p.NActions + p.NExtras
}
