package fitness

import (
	"github.com/niceyeti/lgp/envstate"
	"github.com/niceyeti/lgp/program"
)

// Classification scores a program by the fraction of dataset rows it
// predicts correctly. Grounded on the teacher's
// alphaMonteCarloVanillaTrain episode loop (reset, act, accumulate,
// check terminal), here restructured around a finite row iterator
// instead of an open-ended episode.
type Classification struct {
	// NewDataset builds one fresh, rewound dataset instance per trial —
	// typically a closure returning the same *envstate.SliceDataset
	// after Reset, or envstate.Generator.GenerateState for a caller's
	// own dataset.
	NewDataset func() envstate.Dataset

	NInputs        int
	NActions       int
	ExternalFactor float64
}

// Eval walks every row of a freshly built dataset, resetting the
// program's registers before each row, and returns the fraction of rows
// whose predicted class (argmax over the action registers) matched the
// row's expected class.
func (c *Classification) Eval(p *program.Program) float64 {
	ds := c.NewDataset()

	var correct, total float64
	input := make([]float64, c.NInputs)

	for ds.Next() {
		p.ResetRegisters()
		for i := range input {
			input[i] = ds.Get(i)
		}

		program.Execute(p, input, c.ExternalFactor)
		prediction := program.Argmax(p.Registers, c.NActions)

		correct += ds.ExecuteAction(prediction)
		total++
	}

	if total == 0 {
		return 0
	}
	return correct / total
}
