// Package evolve implements the generational selection/replacement loop:
// evaluate, rank, truncate, reproduce, advance. It is generic over the
// individual type P so the same loop drives both plain
// *program.Program runs and *qlearn.QProgram runs — the loop never
// inspects P's fields directly, only calls the Ops functions a caller
// supplies, the way the teacher's fastview.ViewBuilder stays generic
// over its data/view types and only calls caller-supplied builders.
package evolve

import (
	"context"
	"fmt"
	"log"
	"math"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/niceyeti/lgp/atomicfloat"
	"github.com/niceyeti/lgp/config"
	"github.com/niceyeti/lgp/lgperr"
	"github.com/niceyeti/lgp/rng"
)

// Loop drives one LGP run. Construct with NewLoop, then call Next
// repeatedly (as a bufio.Scanner-style iterator: Next returns false when
// the run is done or has failed, with the failure available from Err).
type Loop[P any] struct {
	Params config.HyperParameters
	Ops    Ops[P]
	Hook   Hook[P]

	// BestFitness, if non-nil, is raised concurrently by every
	// evaluation worker as each individual's fitness comes in, so it always holds
	// the best fitness seen so far even mid-generation. It exists for a
	// reader outside the generational barrier — e.g. telemetry.Server's
	// /bestfitness endpoint, polled independently of the per-generation
	// Hook — to observe progress without waiting for a generation to
	// finish. The core itself never reads it back.
	BestFitness *atomicfloat.Float64

	// LastFault records the most recent evaluation that panicked or
	// produced a NaN result and was absorbed as an EvaluationFault, so
	// callers and tests can observe that the recovery path actually ran
	// even though it never surfaces as a returned error. Guarded by
	// faultMu since evaluate's workers write it concurrently.
	LastFault *lgperr.EvaluationFault

	root       *rng.Source
	population Population[P]
	generation int
	err        error
	faultMu    sync.Mutex
}

// NewLoop validates params and builds a Loop ready to iterate. seed may
// be nil to draw one from a time-seeded generator; the seed drawn that
// way is logged so the run can be reproduced by passing it back in.
func NewLoop[P any](params config.HyperParameters, ops Ops[P], hook Hook[P], seed *uint64) (*Loop[P], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	root, usedSeed := rng.NewRootSource(seed)
	if seed == nil {
		log.Printf("lgp: no seed configured, using seed %d", usedSeed)
	}

	return &Loop[P]{
		Params:     params,
		Ops:        ops,
		Hook:       hook,
		root:       root,
		generation: -1,
	}, nil
}

// Err returns the error that caused Next to return false, or nil if the
// run ended because it reached NGenerations.
func (l *Loop[P]) Err() error {
	return l.err
}

// Next advances one generation and returns the resulting population,
// ranked descending by fitness. It returns false once NGenerations have
// been produced, the context is cancelled, or evaluation hits a fatal
// (environment I/O) error — callers distinguish these via Err.
func (l *Loop[P]) Next(ctx context.Context) (Population[P], bool) {
	if l.err != nil {
		return nil, false
	}
	if err := ctx.Err(); err != nil {
		l.err = fmt.Errorf("%w: %v", lgperr.ErrCancelled, err)
		return nil, false
	}
	if l.generation+1 >= l.Params.NGenerations {
		return nil, false
	}

	nextGen := l.generation + 1
	if l.population == nil {
		l.population = l.initialPopulation(nextGen)
	} else {
		l.population = l.reproduce(nextGen)
	}
	l.generation = nextGen

	if err := l.evaluate(ctx); err != nil {
		l.err = err
		return nil, false
	}
	l.rank()

	if l.Hook != nil {
		l.Hook(l.generation, l.population)
	}

	return l.population, true
}

func (l *Loop[P]) initialPopulation(generation int) Population[P] {
	pop := make(Population[P], l.Params.PopulationSize)
	for i := range pop {
		src := l.root.Split(generation, i)
		pop[i] = l.Ops.NewIndividual(src)
	}
	return pop
}

// evaluate computes fitness for every individual with no fitness set
// yet (offspring; survivors already carry theirs forward), in parallel
// across the population, bounded by Params.NumWorkers. Each worker gets
// an exclusive, independently-split random source and exclusive
// ownership of its one individual — no shared mutable state, per the
// concurrency model's no-shared-state guarantee.
func (l *Loop[P]) evaluate(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	limit := l.Params.NumWorkers
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	g.SetLimit(limit)

	for i, ind := range l.population {
		if l.Ops.GetFitness(ind) != nil {
			continue
		}

		i, ind := i, ind
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			src := l.root.Split(l.generation, i)
			fitness, err := l.safeEval(src, ind)
			if err != nil {
				return err
			}
			l.Ops.SetFitness(ind, &fitness)
			if l.BestFitness != nil {
				l.BestFitness.RaiseTo(fitness)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %v", lgperr.ErrCancelled, ctxErr)
		}
		return fmt.Errorf("generation %d evaluation: %w", l.generation, err)
	}
	return nil
}

// safeEval runs Ops.Eval for one individual. A panic of
// lgperr.EnvironmentIOFault is fatal: it is wrapped in lgperr.ErrEnvironmentIO
// and returned, aborting the run at the next barrier in evaluate. Any other
// panic, or a NaN result, is an ordinary EvaluationFault — recorded on
// LastFault and scored at Params.DefaultFitness so one bad individual never
// aborts the run.
func (l *Loop[P]) safeEval(src *rng.Source, ind P) (fitness float64, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if fault, ok := r.(lgperr.EnvironmentIOFault); ok {
			err = fmt.Errorf("%s: %w", fault.Error(), lgperr.ErrEnvironmentIO)
			return
		}
		l.recordFault(r)
		fitness = l.Params.DefaultFitness
	}()

	fitness = l.Ops.Eval(src, ind)
	if math.IsNaN(fitness) {
		l.recordFault(fitness)
		fitness = l.Params.DefaultFitness
	}
	return fitness, nil
}

// recordFault stores cause as the most recently recovered EvaluationFault.
// Called from evaluate's worker goroutines, so access is mutex-guarded.
func (l *Loop[P]) recordFault(cause any) {
	l.faultMu.Lock()
	defer l.faultMu.Unlock()
	l.LastFault = &lgperr.EvaluationFault{Cause: cause}
}

// rank sorts the population descending by fitness, tie-breaking by ID
// for stable ordering across runs that reach a true tie.
func (l *Loop[P]) rank() {
	sort.SliceStable(l.population, func(i, j int) bool {
		fi := *l.Ops.GetFitness(l.population[i])
		fj := *l.Ops.GetFitness(l.population[j])
		if fi != fj {
			return fi > fj
		}
		return l.Ops.GetID(l.population[i]).String() < l.Ops.GetID(l.population[j]).String()
	})
}
