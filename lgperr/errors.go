// Package lgperr defines the engine's error kinds. The core never panics
// across a package boundary and never hides failure behind ambient
// exception machinery: every failure surfaces as an explicit error value
// at the call site that can act on it, wrapped with fmt.Errorf("%w", ...)
// the way the teacher wraps lower-level errors throughout server.go and
// reinforcement.go.
package lgperr

import (
	"errors"
	"fmt"
)

// ErrInvalidHyperparameter is returned at construction when a
// HyperParameters value violates one of its documented constraints.
// Construction fails fast; the caller never gets a half-built loop.
var ErrInvalidHyperparameter = errors.New("lgp: invalid hyperparameter")

// ErrEnvironmentIO is the sentinel a fatal Dataset/Environment failure is
// wrapped in before it reaches Loop.Next's caller — a dataset file that
// can't be read, a live environment's backing service erroring out.
// Unlike EvaluationFault, this is fatal: it aborts the run instead of
// being absorbed per-trial. A caller reports one by panicking with
// EnvironmentIOFault from inside a Dataset/Environment method, or from a
// fitness.Strategy built on top of one; evolve recognizes that specific
// panic payload and returns it as an error, wrapped in this sentinel,
// instead of treating it like an ordinary evaluation fault.
var ErrEnvironmentIO = errors.New("lgp: environment io error")

// ErrCancelled is returned when a context is cancelled; the evolution
// loop completes any in-flight trials for the current generation and
// returns this at the next barrier.
var ErrCancelled = errors.New("lgp: cancelled")

// EnvironmentIOFault is the panic payload a Dataset/Environment/Strategy
// implementation uses to report a fatal I/O failure, as opposed to an
// ordinary evaluation fault (a NaN result, an out-of-range index caused
// by the program itself). evolve.safeEval
// type-asserts every recovered panic against this type specifically: a
// match is returned as a fatal error (wrapped in ErrEnvironmentIO) out of
// Loop.Next; anything else is an EvaluationFault, absorbed and scored at
// DefaultFitness so one bad individual never aborts the run.
type EnvironmentIOFault struct {
	Cause error
}

func (f EnvironmentIOFault) Error() string {
	return fmt.Sprintf("lgp: environment io fault: %v", f.Cause)
}

// EvaluationFault wraps whatever a single individual's evaluation panic,
// or a NaN fitness result, was recovered as. It never reaches the caller
// as an error value: evolve recovers it internally, records it on
// Loop.LastFault, and substitutes DefaultFitness for that individual,
// continuing evaluation — exported so callers and tests can observe
// that the recovery path actually ran.
type EvaluationFault struct {
	Cause any
}

func (e *EvaluationFault) Error() string {
	return fmt.Sprintf("lgp: evaluation fault (recovered): %v", e.Cause)
}
