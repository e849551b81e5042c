// Package program defines the register-machine genome: a straight-line
// sequence of Instructions plus the register file they operate on. A
// Program carries no behavior beyond execution (package program's own
// Execute) and identity; variation, evaluation, and selection all live in
// their own packages and treat Program as plain data.
package program

import (
	"github.com/google/uuid"

	"github.com/niceyeti/lgp/register"
)

// Program is one individual: an ordered instruction sequence and the
// register file those instructions read and write. Fitness is a pointer
// so "unevaluated" (nil) is distinguishable from "evaluated to zero" —
// ranking relies on that distinction to catch a program that skipped
// evaluation rather than silently treating it as the worst in the pool.
type Program struct {
	ID           uuid.UUID
	Instructions []Instruction
	Registers    register.Registers
	Fitness      *float64
}

// New allocates a Program with nInstructions zero-value instructions and
// a fresh register file of nActions+nExtras entries.
// variation.GenerateProgram builds on it and fills in random
// instructions; tests use it directly as a base case.
func New(nInstructions, nActions, nExtras int) *Program {
	return &Program{
		ID:           uuid.New(),
		Instructions: make([]Instruction, nInstructions),
		Registers:    register.New(nActions, nExtras),
	}
}

// Clone returns a deep copy with a new identity: independent instruction
// slice, independent (zeroed) register file, and unevaluated fitness.
// Variation operators clone parents before mutating them so the parent
// population member is never touched.
func (p *Program) Clone() *Program {
	instrs := make([]Instruction, len(p.Instructions))
	copy(instrs, p.Instructions)

	return &Program{
		ID:           uuid.New(),
		Instructions: instrs,
		Registers:    register.New(len(p.Registers), 0),
	}
}

// ResetRegisters zeroes the register file in place, readying the program
// for a fresh trial without disturbing its instructions or fitness.
func (p *Program) ResetRegisters() {
	p.Registers.Reset()
}
