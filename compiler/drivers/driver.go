package drivers

import (
	"context"

	"github.com/HemeraProtocol/seismic-verify/compiler/types"
)

// Driver describes the interface all compiler driver implementations must implement. A driver is
// a pass-through boundary: it hands a standard JSON input to an external compiler and returns the
// raw bytes the compiler emitted, without interpreting them. A returned error means the compiler
// could not produce output at all (spawn failure, missing binary, kill by cancellation, non-zero
// exit with no usable payload).
type Driver interface {
	// Compile hands the given input to the underlying compiler and returns its raw output. The
	// context bounds the external process's lifetime.
	Compile(ctx context.Context, input *types.SolcInput) ([]byte, error)

	// Name returns an identifier for the driver implementation.
	Name() string
}
