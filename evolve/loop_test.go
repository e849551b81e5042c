package evolve

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/google/uuid"

	"github.com/niceyeti/lgp/config"
	"github.com/niceyeti/lgp/lgperr"
	"github.com/niceyeti/lgp/program"
	"github.com/niceyeti/lgp/rng"
	"github.com/niceyeti/lgp/variation"
)

var testVariationParams = variation.Params{MaxInstructions: 6, NActions: 2, NExtras: 1, NInputs: 2}

// sumFitness is a deterministic, non-random fitness: the absolute sum of
// register 0 after executing against a fixed input, letting tests assert
// exact invariants instead of statistical ones.
func sumFitness(src *rng.Source, p *program.Program) float64 {
	p.ResetRegisters()
	program.Execute(p, []float64{1, 2}, 1)
	v := p.Registers[0]
	if v < 0 {
		v = -v
	}
	return v
}

func testOps() Ops[*program.Program] {
	return Ops[*program.Program]{
		NewIndividual: func(src *rng.Source) *program.Program {
			return variation.GenerateProgram(src, testVariationParams)
		},
		Clone: func(p *program.Program) *program.Program { return p.Clone() },
		Mutate: func(src *rng.Source, p *program.Program) {
			variation.Mutate(src, p, testVariationParams)
		},
		Breed: func(src *rng.Source, a, b *program.Program) *program.Program {
			return variation.Breed(src, a, b)
		},
		Eval:       sumFitness,
		GetFitness: func(p *program.Program) *float64 { return p.Fitness },
		SetFitness: func(p *program.Program, f *float64) { p.Fitness = f },
		GetID:      func(p *program.Program) uuid.UUID { return p.ID },
	}
}

func testParams() config.HyperParameters {
	return config.HyperParameters{
		PopulationSize:   12,
		NGenerations:     6,
		NTrials:          1,
		Gap:              0.5,
		MutationPercent:  0.4,
		CrossoverPercent: 0.4,
		MaxInstructions:  6,
		NActions:         2,
		NExtras:          1,
		NInputs:          2,
		ExternalFactor:   1,
		DefaultFitness:   -1,
	}
}

func TestLoopInvariants(t *testing.T) {
	Convey("Given a loop over several generations", t, func() {
		seed := uint64(100)
		loop, err := NewLoop(testParams(), testOps(), nil, &seed)
		So(err, ShouldBeNil)

		ctx := context.Background()
		var generations []Population[*program.Program]
		for {
			pop, ok := loop.Next(ctx)
			if !ok {
				break
			}
			generations = append(generations, append(Population[*program.Program]{}, pop...))
		}

		Convey("Then the loop ran without error", func() {
			So(loop.Err(), ShouldBeNil)
		})

		Convey("Then it produced exactly NGenerations populations", func() {
			So(len(generations), ShouldEqual, testParams().NGenerations)
		})

		Convey("Then population size is constant across generations", func() {
			for _, pop := range generations {
				So(len(pop), ShouldEqual, testParams().PopulationSize)
			}
		})

		Convey("Then every individual is evaluated after each generation", func() {
			for _, pop := range generations {
				for _, ind := range pop {
					So(ind.Fitness, ShouldNotBeNil)
				}
			}
		})

		Convey("Then each generation is ranked descending by fitness", func() {
			for _, pop := range generations {
				for i := 0; i+1 < len(pop); i++ {
					So(*pop[i].Fitness, ShouldBeGreaterThanOrEqualTo, *pop[i+1].Fitness)
				}
			}
		})
	})
}

func TestLoopDeterminism(t *testing.T) {
	Convey("Given two loops built from the same seed and hyperparameters", t, func() {
		seed := uint64(7)
		loopA, _ := NewLoop(testParams(), testOps(), nil, &seed)
		loopB, _ := NewLoop(testParams(), testOps(), nil, &seed)

		Convey("When both are driven to completion", func() {
			ctx := context.Background()
			var popsA, popsB []Population[*program.Program]
			for {
				pop, ok := loopA.Next(ctx)
				if !ok {
					break
				}
				popsA = append(popsA, pop)
			}
			for {
				pop, ok := loopB.Next(ctx)
				if !ok {
					break
				}
				popsB = append(popsB, pop)
			}

			Convey("Then every generation's fitness sequence is identical", func() {
				So(len(popsA), ShouldEqual, len(popsB))
				for g := range popsA {
					So(len(popsA[g]), ShouldEqual, len(popsB[g]))
					for i := range popsA[g] {
						So(*popsA[g][i].Fitness, ShouldEqual, *popsB[g][i].Fitness)
					}
				}
			})
		})
	})
}

func TestLoopGapZeroIsIdempotent(t *testing.T) {
	Convey("Given gap=0 (all individuals survive, none replaced)", t, func() {
		params := testParams()
		params.Gap = 0
		params.MutationPercent = 0
		params.CrossoverPercent = 0

		seed := uint64(55)
		loop, _ := NewLoop(params, testOps(), nil, &seed)

		ctx := context.Background()
		first, ok := loop.Next(ctx)
		So(ok, ShouldBeTrue)
		firstIDs := idsOf(first)

		second, ok := loop.Next(ctx)
		So(ok, ShouldBeTrue)
		secondIDs := idsOf(second)

		Convey("Then the same individuals (by identity) carry forward unchanged", func() {
			So(secondIDs, ShouldResemble, firstIDs)
		})
	})
}

func TestLoopFatalEnvironmentFault(t *testing.T) {
	Convey("Given a loop whose Eval always panics with an EnvironmentIOFault", t, func() {
		ops := testOps()
		ops.Eval = func(src *rng.Source, p *program.Program) float64 {
			panic(lgperr.EnvironmentIOFault{Cause: errors.New("dataset file missing")})
		}

		seed := uint64(11)
		loop, err := NewLoop(testParams(), ops, nil, &seed)
		So(err, ShouldBeNil)

		Convey("When Next is called", func() {
			_, ok := loop.Next(context.Background())

			Convey("Then it returns false and Err wraps ErrEnvironmentIO", func() {
				So(ok, ShouldBeFalse)
				So(errors.Is(loop.Err(), lgperr.ErrEnvironmentIO), ShouldBeTrue)
			})
		})
	})
}

func TestLoopEvaluationFaultIsRecoveredAndRecorded(t *testing.T) {
	Convey("Given a loop whose Eval panics with an ordinary value for every individual", t, func() {
		ops := testOps()
		ops.Eval = func(src *rng.Source, p *program.Program) float64 {
			panic("divide by zero in register 3")
		}

		seed := uint64(12)
		params := testParams()
		params.NGenerations = 1
		loop, err := NewLoop(params, ops, nil, &seed)
		So(err, ShouldBeNil)

		Convey("When Next is called", func() {
			pop, ok := loop.Next(context.Background())

			Convey("Then the run continues, scoring every individual at DefaultFitness", func() {
				So(ok, ShouldBeTrue)
				So(loop.Err(), ShouldBeNil)
				for _, ind := range pop {
					So(*ind.Fitness, ShouldEqual, params.DefaultFitness)
				}
			})

			Convey("Then LastFault records the recovered panic", func() {
				So(loop.LastFault, ShouldNotBeNil)
			})
		})
	})
}

func idsOf(pop Population[*program.Program]) []uuid.UUID {
	ids := make([]uuid.UUID, len(pop))
	for i, p := range pop {
		ids[i] = p.ID
	}
	return ids
}

func TestLoopHookInvoked(t *testing.T) {
	Convey("Given a loop with a hook registered", t, func() {
		var seen []int
		hook := func(gen int, pop Population[*program.Program]) {
			seen = append(seen, gen)
		}

		seed := uint64(9)
		params := testParams()
		params.NGenerations = 3
		loop, _ := NewLoop(params, testOps(), hook, &seed)

		ctx := context.Background()
		for {
			if _, ok := loop.Next(ctx); !ok {
				break
			}
		}

		Convey("Then the hook fires once per generation with increasing indices", func() {
			So(seen, ShouldResemble, []int{0, 1, 2})
		})
	})
}

func TestLoopCancellation(t *testing.T) {
	Convey("Given an already-cancelled context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		seed := uint64(3)
		loop, _ := NewLoop(testParams(), testOps(), nil, &seed)

		Convey("When Next is called", func() {
			_, ok := loop.Next(ctx)

			Convey("Then it returns false and Err reports cancellation", func() {
				So(ok, ShouldBeFalse)
				So(loop.Err(), ShouldNotBeNil)
			})
		})
	})
}
