// Package config loads config.HyperParameters from YAML. It is the one
// ambient place Viper appears in this repository; the core packages
// (program, variation, fitness, qlearn, evolve) never import it and only
// ever accept a plain HyperParameters value.
package config

import (
	"fmt"

	"github.com/niceyeti/lgp/lgperr"
)

// QParams holds the optional Q-learning overlay's hyperparameters.
type QParams struct {
	Alpha        float64 `yaml:"alpha" mapstructure:"alpha"`
	Gamma        float64 `yaml:"gamma" mapstructure:"gamma"`
	Epsilon      float64 `yaml:"epsilon" mapstructure:"epsilon"`
	AlphaDecay   float64 `yaml:"alphaDecay" mapstructure:"alphaDecay"`
	EpsilonDecay float64 `yaml:"epsilonDecay" mapstructure:"epsilonDecay"`
}

// HyperParameters is the full enumerated set of options the evolution
// loop, variation operators, and fitness strategies accept. No field
// carries a default: a zero value that happens to also be invalid (e.g.
// PopulationSize 0) is caught by Validate, not silently substituted.
type HyperParameters struct {
	PopulationSize   int     `yaml:"populationSize" mapstructure:"populationSize"`
	NGenerations     int     `yaml:"nGenerations" mapstructure:"nGenerations"`
	NTrials          int     `yaml:"nTrials" mapstructure:"nTrials"`
	Gap              float64 `yaml:"gap" mapstructure:"gap"`
	MutationPercent  float64 `yaml:"mutationPercent" mapstructure:"mutationPercent"`
	CrossoverPercent float64 `yaml:"crossoverPercent" mapstructure:"crossoverPercent"`
	MaxInstructions  int     `yaml:"maxInstructions" mapstructure:"maxInstructions"`
	NActions         int     `yaml:"nActions" mapstructure:"nActions"`
	NExtras          int     `yaml:"nExtras" mapstructure:"nExtras"`
	NInputs          int     `yaml:"nInputs" mapstructure:"nInputs"`
	ExternalFactor   float64 `yaml:"externalFactor" mapstructure:"externalFactor"`
	DefaultFitness   float64 `yaml:"defaultFitness" mapstructure:"defaultFitness"`
	NumWorkers       int     `yaml:"numWorkers" mapstructure:"numWorkers"`

	// Seed is a pointer so "absent" (draw from entropy) is distinguishable
	// from "explicitly zero".
	Seed *uint64 `yaml:"seed" mapstructure:"seed"`

	// Q is nil when the run has no Q-learning overlay.
	Q *QParams `yaml:"q" mapstructure:"q"`
}

// Validate enforces the constraints spec.md §3 documents. It is called
// once at construction; the evolution loop refuses to start on failure
// rather than silently clamping an out-of-range value.
func (h *HyperParameters) Validate() error {
	switch {
	case h.PopulationSize < 1:
		return fmt.Errorf("populationSize must be >= 1, got %d: %w", h.PopulationSize, lgperr.ErrInvalidHyperparameter)
	case h.NTrials < 1:
		return fmt.Errorf("nTrials must be >= 1, got %d: %w", h.NTrials, lgperr.ErrInvalidHyperparameter)
	case h.Gap < 0 || h.Gap >= 1:
		// gap == 0 is explicitly allowed despite spec.md's declared (0,1)
		// domain: spec.md §8 requires "gap=0 -> population unchanged
		// across a generation" as a testable law, which only makes sense
		// if 0 is a reachable value. See DESIGN.md.
		return fmt.Errorf("gap must be in [0,1), got %v: %w", h.Gap, lgperr.ErrInvalidHyperparameter)
	case h.MutationPercent < 0 || h.CrossoverPercent < 0:
		return fmt.Errorf("mutationPercent and crossoverPercent must be >= 0: %w", lgperr.ErrInvalidHyperparameter)
	case h.MutationPercent+h.CrossoverPercent > 1:
		return fmt.Errorf("mutationPercent + crossoverPercent must be <= 1, got %v: %w",
			h.MutationPercent+h.CrossoverPercent, lgperr.ErrInvalidHyperparameter)
	case h.MaxInstructions < 1:
		return fmt.Errorf("maxInstructions must be >= 1, got %d: %w", h.MaxInstructions, lgperr.ErrInvalidHyperparameter)
	case h.NActions < 1:
		return fmt.Errorf("nActions must be >= 1, got %d: %w", h.NActions, lgperr.ErrInvalidHyperparameter)
	case h.NExtras < 1:
		return fmt.Errorf("nExtras must be >= 1, got %d: %w", h.NExtras, lgperr.ErrInvalidHyperparameter)
	case h.NInputs < 0:
		return fmt.Errorf("nInputs must be >= 0, got %d: %w", h.NInputs, lgperr.ErrInvalidHyperparameter)
	case h.ExternalFactor < 0:
		return fmt.Errorf("externalFactor must be >= 0, got %v: %w", h.ExternalFactor, lgperr.ErrInvalidHyperparameter)
	}

	if h.Q != nil {
		for name, v := range map[string]float64{
			"q.alpha": h.Q.Alpha, "q.gamma": h.Q.Gamma, "q.epsilon": h.Q.Epsilon,
			"q.alphaDecay": h.Q.AlphaDecay, "q.epsilonDecay": h.Q.EpsilonDecay,
		} {
			if v < 0 || v > 1 {
				return fmt.Errorf("%s must be in [0,1], got %v: %w", name, v, lgperr.ErrInvalidHyperparameter)
			}
		}
	}

	return nil
}
