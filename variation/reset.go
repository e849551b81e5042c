package variation

import "github.com/niceyeti/lgp/program"

// Reset zeroes p's registers and clears its fitness, readying it for a
// fresh trial. Callers invoke this before every trial of a fitness
// evaluation; resetting a caller's state (dataset iterator, RL
// environment) is the caller's own responsibility via its Reset method,
// not this package's.
func Reset(p *program.Program) {
	p.ResetRegisters()
	p.Fitness = nil
}
