package program

import "github.com/niceyeti/lgp/register"

// Execute runs every instruction of p in order against p.Registers,
// reading external operands from input. There is no control flow: this is
// a purely straight-line machine, and arithmetic is never sanitized — a
// NaN or Inf produced partway through propagates through the remaining
// instructions exactly as a real program's would. Callers that need to
// guard against that do so at the fitness layer, not here. An
// External-mode instruction is skipped when input is empty.
//
// externalFactor scales every External-mode source read (the resolution
// of spec.md's external_factor Open Question: a read-time multiplier on
// external inputs only, never a reward scaler).
func Execute(p *Program, input []float64, externalFactor float64) {
	regs := p.Registers
	nr := len(regs)
	nx := len(input)

	for _, instr := range p.Instructions {
		tgtIdx := instr.TargetIndex % nr
		tgt := regs[tgtIdx]

		if instr.Op == Div2 {
			regs[tgtIdx] = tgt / 2
			continue
		}

		var src float64
		if instr.Mode == External {
			if nx == 0 {
				continue
			}
			src = input[instr.SourceIndex%nx] * externalFactor
		} else {
			src = regs[instr.SourceIndex%nr]
		}

		switch instr.Op {
		case Add:
			regs[tgtIdx] = tgt + src
		case Sub:
			regs[tgtIdx] = tgt - src
		case Mul:
			regs[tgtIdx] = tgt * src
		}
	}
}

// Argmax returns the index of the largest of the first n registers,
// breaking ties to the lowest index. n is typically NActions (action
// prediction) or len(registers) (Q overlay's winning-register search).
// Delegates to register.Argmax so there is a single tie-breaking rule.
func Argmax(registers []float64, n int) int {
	return register.Argmax(registers, n)
}
