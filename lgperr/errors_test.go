package lgperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelsWrap(t *testing.T) {
	wrapped := fmt.Errorf("loading config: %w", ErrInvalidHyperparameter)
	if !errors.Is(wrapped, ErrInvalidHyperparameter) {
		t.Fatal("expected wrapped error to match ErrInvalidHyperparameter via errors.Is")
	}
}

func TestEvaluationFaultMessage(t *testing.T) {
	f := &EvaluationFault{Cause: "divide by zero"}
	if f.Error() == "" {
		t.Fatal("expected a non-empty error message")
	}
}

func TestEnvironmentIOFaultWrapsErrEnvironmentIO(t *testing.T) {
	cause := errors.New("dataset file missing")
	fault := EnvironmentIOFault{Cause: cause}
	wrapped := fmt.Errorf("%s: %w", fault.Error(), ErrEnvironmentIO)
	if !errors.Is(wrapped, ErrEnvironmentIO) {
		t.Fatal("expected wrapped error to match ErrEnvironmentIO via errors.Is")
	}
}
