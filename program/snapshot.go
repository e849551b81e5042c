package program

// Snapshot is a flat, JSON-serializable projection of a Program, used by
// the telemetry layer and by tests that want to compare programs without
// reaching into register.Registers or uuid.UUID directly.
type Snapshot struct {
	ID           string        `json:"id"`
	Fitness      *float64      `json:"fitness"`
	Instructions []Instruction `json:"instructions"`
	Registers    []float64     `json:"registers"`
}

// Snapshot copies p into its serializable form.
func (p *Program) Snapshot() Snapshot {
	instrs := make([]Instruction, len(p.Instructions))
	copy(instrs, p.Instructions)

	regs := make([]float64, len(p.Registers))
	copy(regs, p.Registers)

	return Snapshot{
		ID:           p.ID.String(),
		Fitness:      p.Fitness,
		Instructions: instrs,
		Registers:    regs,
	}
}
