package variation

import (
	"github.com/niceyeti/lgp/program"
	"github.com/niceyeti/lgp/rng"
)

// GenerateInstruction samples a uniformly random instruction. Mode is
// forced to Internal when the problem has no external inputs; otherwise
// it is drawn uniformly from {Internal, External}. SourceIndex is drawn
// against NInputs or NR depending on the sampled mode; TargetIndex is
// always drawn against NR.
func GenerateInstruction(src *rng.Source, p Params) program.Instruction {
	op := program.Op(src.IntN(4))

	mode := program.Internal
	if p.NInputs > 0 && src.Bool() {
		mode = program.External
	}

	var sourceIdx int
	if mode == program.External {
		sourceIdx = src.IntN(p.NInputs)
	} else {
		sourceIdx = src.IntN(p.NR())
	}

	return program.Instruction{
		Op:          op,
		SourceIndex: sourceIdx,
		TargetIndex: src.IntN(p.NR()),
		Mode:        mode,
	}
}

// GenerateProgram samples a program of length uniform in
// [1, MaxInstructions], each instruction independently generated, with a
// freshly zeroed register file.
func GenerateProgram(src *rng.Source, p Params) *program.Program {
	length := 1 + src.IntN(p.MaxInstructions)

	prog := program.New(length, p.NActions, p.NExtras)
	for i := range prog.Instructions {
		prog.Instructions[i] = GenerateInstruction(src, p)
	}

	return prog
}
