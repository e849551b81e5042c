/*
lgp evolves register-machine programs against a classification or
reinforcement-learning task via linear genetic programming, and serves
a live dashboard of best/median/worst fitness per generation while it
runs. The demo dataset below (a tiny XOR-like classification task) is
only here so the binary does something out of the box; point
NewDataset (or swap in fitness.RL) at a real problem for actual use.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/schollz/progressbar/v3"

	"github.com/google/uuid"

	"github.com/niceyeti/lgp/atomicfloat"
	"github.com/niceyeti/lgp/config"
	"github.com/niceyeti/lgp/envstate"
	"github.com/niceyeti/lgp/evolve"
	"github.com/niceyeti/lgp/fitness"
	"github.com/niceyeti/lgp/program"
	"github.com/niceyeti/lgp/rng"
	"github.com/niceyeti/lgp/telemetry"
	"github.com/niceyeti/lgp/telemetry/statviews"
	"github.com/niceyeti/lgp/variation"
)

var (
	cfgPath  *string
	host     *string
	port     *string
	addr     string
	statChan = make(chan statviews.Stat)
)

// TODO: per 12-factor rules these should come from env, not flags; KISS for now.
func init() {
	cfgPath = flag.String("config", "./config.yaml", "path to the hyperparameter yaml file")
	host = flag.String("host", "", "the host ip")
	port = flag.String("port", "8080", "the host port")
	flag.Parse()
	addr = *host + ":" + *port
}

// xorDataset is the demo classification task: two binary inputs, one
// expected class (XOR), repeated a few times so Len() is large enough
// for a meaningful fitness fraction.
func xorDataset() *envstate.SliceDataset {
	rows := [][]float64{
		{0, 0}, {0, 1}, {1, 0}, {1, 1},
		{0, 0}, {0, 1}, {1, 0}, {1, 1},
	}
	expected := []int{0, 1, 1, 0, 0, 1, 1, 0}
	return envstate.NewSliceDataset(rows, expected)
}

func runApp() error {
	params, err := config.LoadYAML(*cfgPath)
	if err != nil {
		return err
	}

	variationParams := variation.Params{
		MaxInstructions: params.MaxInstructions,
		NActions:        params.NActions,
		NExtras:         params.NExtras,
		NInputs:         params.NInputs,
	}

	strategy := &fitness.Classification{
		NewDataset: func() envstate.Dataset {
			return xorDataset()
		},
		NInputs:        params.NInputs,
		NActions:       params.NActions,
		ExternalFactor: params.ExternalFactor,
	}

	ops := evolve.Ops[*program.Program]{
		NewIndividual: func(src *rng.Source) *program.Program {
			return variation.GenerateProgram(src, variationParams)
		},
		Clone: func(p *program.Program) *program.Program { return p.Clone() },
		Mutate: func(src *rng.Source, p *program.Program) {
			variation.Mutate(src, p, variationParams)
		},
		Breed: func(src *rng.Source, a, b *program.Program) *program.Program {
			return variation.Breed(src, a, b)
		},
		Eval: func(src *rng.Source, p *program.Program) float64 {
			return fitness.Median(strategy, p, params.NTrials)
		},
		GetFitness: func(p *program.Program) *float64 { return p.Fitness },
		SetFitness: func(p *program.Program, f *float64) { p.Fitness = f },
		GetID:      func(p *program.Program) uuid.UUID { return p.ID },
	}

	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	hook := func(generation int, pop evolve.Population[*program.Program]) {
		fitnesses := make([]float64, len(pop))
		for i, ind := range pop {
			fitnesses[i] = *ind.Fitness
		}
		stat := statviews.Stat{
			Generation: generation,
			Best:       fitnesses[0],
			Worst:      fitnesses[len(fitnesses)-1],
			Median:     fitnesses[len(fitnesses)/2],
		}
		select {
		case statChan <- stat:
		case <-appCtx.Done():
		}
	}

	loop, err := evolve.NewLoop(*params, ops, hook, params.Seed)
	if err != nil {
		return err
	}
	loop.BestFitness = atomicfloat.New(params.DefaultFitness)

	srv := telemetry.NewServer(appCtx, addr, statChan, loop.BestFitness)

	go runLoop(appCtx, loop, params.NGenerations)

	return srv.Serve()
}

// runLoop drives the evolution loop to completion with a progress bar.
// The telemetry server keeps serving the last generation's chart after
// this returns.
func runLoop(ctx context.Context, loop *evolve.Loop[*program.Program], nGenerations int) {
	bar := progressbar.Default(int64(nGenerations), "evolving")
	for {
		_, ok := loop.Next(ctx)
		if !ok {
			break
		}
		_ = bar.Add(1)
	}
	if err := loop.Err(); err != nil {
		log.Println("evolution stopped:", err)
	}
}

func main() {
	if err := runApp(); err != nil {
		fmt.Println(err)
	}
}
