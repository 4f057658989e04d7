// Package radixerr defines the error taxonomy for the radix tree and its
// benchmark harness: small typed errors, in the same register the teacher
// repository's pkg/errors used for its table/index errors, wrapped with
// cockroachdb/errors at the boundary where they cross into the CLI so a
// stack trace survives the crossing.
package radixerr

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// InvalidParameterError is returned by New/Init for bits < 1 or radix < 1.
// An unknown variant name is reported as UnknownVariantError instead.
type InvalidParameterError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
}

// CorrectnessViolationError is raised only by the benchmark harness, never
// by the tree itself, when a returned reference disagrees with the shadow
// table. Kind is 1 (find-or-create mismatch) or 2 (find mismatch), matching
// the harness's exit codes.
type CorrectnessViolationError struct {
	Kind int
	Key  uint64
	Want any
	Got  any
}

func (e *CorrectnessViolationError) Error() string {
	return fmt.Sprintf("correctness violation (kind %d) at key %d: want %v, got %v", e.Kind, e.Key, e.Want, e.Got)
}

// UnknownVariantError is returned when the CLI or harness asks the registry
// for a variant name that was never registered.
type UnknownVariantError struct {
	Name string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown variant %q", e.Name)
}

// Wrap attaches a stack trace to err at the point it crosses from a tree or
// harness package into the CLI. It is a no-op (returns nil) if err is nil.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.WithStack(errors.WithMessage(err, context))
}
