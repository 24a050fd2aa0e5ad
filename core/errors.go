package core

import "github.com/pkg/errors"

// Error taxonomy shared by the world, loader and simulation
//
// MalformedRecord is recovered by skipping the record. OutOfBounds and
// OccupiedCell are recovered as silent no-ops; the world reports them with
// boolean results and the sentinels exist for callers that need an error value.
// Invariant marks a modeling bug and is raised with panic.
var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrOutOfBounds     = errors.New("position out of bounds")
	ErrOccupiedCell    = errors.New("cell occupied")
	ErrInvariant       = errors.New("invariant violation")
)

// Invariantf panics with a stack-carrying invariant violation
func Invariantf(format string, args ...any) {
	panic(errors.WithStack(errors.Wrapf(ErrInvariant, format, args...)))
}
