package verification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/HemeraProtocol/seismic-verify/compiler"
	"github.com/HemeraProtocol/seismic-verify/compiler/drivers"
	"github.com/HemeraProtocol/seismic-verify/logging"
)

// Request describes a single verification run: one named in-memory source unit. It is immutable
// once constructed and owned by the caller for the duration of Verify.
type Request struct {
	// Path is the virtual file path the source is registered under in the compiler input.
	Path string

	// Source is the literal source text of the unit.
	Source string
}

// Verifier runs the verification pipeline: assemble a compiler input, invoke a driver, interpret
// the raw output it returns. A Verifier holds no mutable state across runs; concurrent Verify
// calls are independent.
type Verifier struct {
	// config describes the compiler input configuration applied to every run.
	config *compiler.Config

	// driver is the compiler driver invoked for every run.
	driver drivers.Driver

	// timeout bounds the driver invocation of each run. Zero means no timeout.
	timeout time.Duration

	// logger describes the Verifier's log object that can be used to log messages and print
	// to console.
	logger *logging.Logger
}

// NewVerifier returns a Verifier using the provided compiler config and driver. A zero timeout
// leaves driver invocations bounded only by the caller's context.
func NewVerifier(config *compiler.Config, driver drivers.Driver, timeout time.Duration) (*Verifier, error) {
	if config == nil {
		return nil, errors.New("could not create verifier: no compiler config provided")
	}
	if driver == nil {
		return nil, errors.New("could not create verifier: no driver provided")
	}

	return &Verifier{
		config:  config,
		driver:  driver,
		timeout: timeout,
		logger:  logging.GlobalLogger.NewSubLogger("module", "verification"),
	}, nil
}

// Verify runs the full pipeline for one request and returns its terminal Outcome. Compilation
// failures, driver failures and malformed output are all expressed as Outcome variants rather
// than errors; the error return covers only caller misuse (an empty request). The context bounds
// the driver invocation, further narrowed by the Verifier's configured timeout.
func (v *Verifier) Verify(ctx context.Context, request Request) (*Outcome, error) {
	if request.Path == "" {
		return nil, errors.New("could not verify: request has no source path")
	}

	// Each run gets an id so its log lines can be correlated.
	runLogger := v.logger.NewSubLogger("run", uuid.New().String())

	// Assemble the compiler input for our single source unit.
	input, err := compiler.AssembleInput(v.config, compiler.NamedSource{Path: request.Path, Content: request.Source})
	if err != nil {
		return nil, err
	}

	// Bound the driver invocation. The external process is killed when the deadline passes.
	if v.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, v.timeout)
		defer cancel()
	}

	// Invoke the driver. Its failure to produce any output is a terminal outcome, not an error.
	runLogger.Debug("invoking compiler driver '", v.driver.Name(), "' for '", request.Path, "'")
	raw, err := v.driver.Compile(ctx, input)
	if err != nil {
		runLogger.Debug("compiler driver failed", err)
		return &Outcome{
			Kind:  OutcomeDriverFailed,
			Cause: err,
		}, nil
	}
	runLogger.Debug("compiler driver returned ", len(raw), " bytes of output")

	// Interpret the raw output and hand back the classification.
	outcome := Interpret(raw)
	if outcome.MissingArtifacts {
		runLogger.Warn("compiler reported no errors but emitted no artifacts for '", request.Path, "'")
	}
	return outcome, nil
}
