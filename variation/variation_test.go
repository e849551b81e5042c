package variation

import (
	"testing"

	"github.com/niceyeti/lgp/program"
	"github.com/niceyeti/lgp/rng"
)

var testParams = Params{MaxInstructions: 8, NActions: 2, NExtras: 2, NInputs: 3}

func TestGenerateProgramLengthBounds(t *testing.T) {
	seed := uint64(1)
	root, _ := rng.NewRootSource(&seed)

	for i := 0; i < 500; i++ {
		p := GenerateProgram(root, testParams)
		if len(p.Instructions) < 1 || len(p.Instructions) > testParams.MaxInstructions {
			t.Fatalf("trial %d: instruction count %d out of [1,%d]", i, len(p.Instructions), testParams.MaxInstructions)
		}
		if len(p.Registers) != testParams.NR() {
			t.Fatalf("trial %d: register width %d != %d", i, len(p.Registers), testParams.NR())
		}
	}
}

func TestGenerateInstructionForcesInternalWithoutInputs(t *testing.T) {
	seed := uint64(2)
	root, _ := rng.NewRootSource(&seed)
	noInputParams := Params{MaxInstructions: 4, NActions: 2, NExtras: 1, NInputs: 0}

	for i := 0; i < 500; i++ {
		instr := GenerateInstruction(root, noInputParams)
		if instr.Mode != program.Internal {
			t.Fatalf("trial %d: expected Internal mode with zero inputs, got %v", i, instr.Mode)
		}
	}
}

func TestMutateClearsFitnessAndPreservesLength(t *testing.T) {
	seed := uint64(3)
	root, _ := rng.NewRootSource(&seed)

	for i := 0; i < 1000; i++ {
		p := GenerateProgram(root, testParams)
		f := 0.5
		p.Fitness = &f
		before := len(p.Instructions)

		Mutate(root, p, testParams)

		if p.Fitness != nil {
			t.Fatalf("trial %d: mutation did not clear fitness", i)
		}
		if len(p.Instructions) != before {
			t.Fatalf("trial %d: mutation changed instruction count %d -> %d", i, before, len(p.Instructions))
		}
	}
}

func TestBreedPreservesProducingParentLength(t *testing.T) {
	seed := uint64(4)
	root, _ := rng.NewRootSource(&seed)

	for i := 0; i < 1000; i++ {
		p1 := GenerateProgram(root, testParams)
		p2 := GenerateProgram(root, testParams)

		child := Breed(root, p1, p2)

		if len(child.Instructions) != len(p1.Instructions) && len(child.Instructions) != len(p2.Instructions) {
			t.Fatalf("trial %d: child length %d matches neither parent (%d, %d)",
				i, len(child.Instructions), len(p1.Instructions), len(p2.Instructions))
		}
		if child.Fitness != nil {
			t.Fatalf("trial %d: breed did not clear fitness", i)
		}
		if child.ID == p1.ID || child.ID == p2.ID {
			t.Fatalf("trial %d: child reused a parent identity", i)
		}
	}
}

func TestBreedShortParentIsNoOp(t *testing.T) {
	seed := uint64(5)
	root, _ := rng.NewRootSource(&seed)

	p1 := program.New(1, 2, 0)
	p1.Instructions[0] = program.Instruction{Op: program.Add, SourceIndex: 0, TargetIndex: 0}
	p2 := GenerateProgram(root, testParams)

	child := Breed(root, p1, p2)

	if len(child.Instructions) != len(p1.Instructions) {
		t.Fatalf("expected no-op breed to preserve p1's length, got %d", len(child.Instructions))
	}
	if child.Instructions[0] != p1.Instructions[0] {
		t.Fatalf("expected no-op breed to copy p1's instructions verbatim")
	}
	if child.ID == p1.ID {
		t.Fatalf("expected no-op breed to still return a distinct clone identity")
	}
}

func TestBreedDoesNotMutateParents(t *testing.T) {
	seed := uint64(6)
	root, _ := rng.NewRootSource(&seed)

	for i := 0; i < 200; i++ {
		p1 := GenerateProgram(root, testParams)
		p2 := GenerateProgram(root, testParams)
		snap1 := append([]program.Instruction(nil), p1.Instructions...)
		snap2 := append([]program.Instruction(nil), p2.Instructions...)

		Breed(root, p1, p2)

		for j := range snap1 {
			if p1.Instructions[j] != snap1[j] {
				t.Fatalf("trial %d: p1 mutated by Breed at index %d", i, j)
			}
		}
		for j := range snap2 {
			if p2.Instructions[j] != snap2[j] {
				t.Fatalf("trial %d: p2 mutated by Breed at index %d", i, j)
			}
		}
	}
}

func TestReset(t *testing.T) {
	seed := uint64(7)
	root, _ := rng.NewRootSource(&seed)

	p := GenerateProgram(root, testParams)
	p.Registers[0] = 42
	f := 1.0
	p.Fitness = &f

	Reset(p)

	if p.Fitness != nil {
		t.Fatalf("expected Reset to clear fitness")
	}
	for _, v := range p.Registers {
		if v != 0 {
			t.Fatalf("expected Reset to zero all registers")
		}
	}
}
