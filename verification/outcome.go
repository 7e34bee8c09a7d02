package verification

import (
	"github.com/HemeraProtocol/seismic-verify/compiler/types"
)

// OutcomeKind describes the terminal classification of a verification run.
type OutcomeKind int

const (
	// OutcomeSuccess indicates the run produced no diagnostics and an artifact set.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeSuccessWithWarnings indicates the run produced only non-error diagnostics.
	OutcomeSuccessWithWarnings

	// OutcomeCompilationFailed indicates the run produced at least one error-severity diagnostic.
	// This is a normal business outcome, not a system fault.
	OutcomeCompilationFailed

	// OutcomeDriverFailed indicates the compiler process could not produce output at all.
	OutcomeDriverFailed

	// OutcomeMalformedOutput indicates output was received but could not be parsed as a report.
	OutcomeMalformedOutput
)

// String returns a display name for the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeSuccessWithWarnings:
		return "success with warnings"
	case OutcomeCompilationFailed:
		return "compilation failed"
	case OutcomeDriverFailed:
		return "driver failed"
	case OutcomeMalformedOutput:
		return "malformed output"
	default:
		return "unknown"
	}
}

// Outcome describes the terminal, immutable result of one verification run. Exactly one is
// produced per invocation. Callers branch on Kind; the remaining fields are populated per
// variant as documented.
type Outcome struct {
	// Kind is the classification of the run.
	Kind OutcomeKind

	// Artifacts is the compiler's artifact set. Populated for OutcomeSuccess; empty but non-nil
	// when the compiler reported no errors yet also emitted no artifact set (see
	// MissingArtifacts).
	Artifacts types.ArtifactSet

	// MissingArtifacts is set when the run classified as success but the compiler's report
	// carried no artifact set at all. Callers may want to log this state distinctly.
	MissingArtifacts bool

	// Diagnostics is the full ordered diagnostic collection of the run, warnings included.
	// Populated for OutcomeCompilationFailed and OutcomeSuccessWithWarnings.
	Diagnostics []types.Diagnostic

	// Cause is the underlying failure. Populated for OutcomeDriverFailed and
	// OutcomeMalformedOutput.
	Cause error

	// RawOutput is the unparsed output the driver returned. Populated for
	// OutcomeMalformedOutput so the actual compiler emission can be inspected.
	RawOutput []byte
}

// Succeeded returns whether the outcome is one of the success classifications.
func (o *Outcome) Succeeded() bool {
	return o.Kind == OutcomeSuccess || o.Kind == OutcomeSuccessWithWarnings
}

// ErrorCount returns the number of error-severity diagnostics carried by the outcome.
func (o *Outcome) ErrorCount() int {
	count := 0
	for _, diagnostic := range o.Diagnostics {
		if diagnostic.IsError() {
			count++
		}
	}
	return count
}

// RawOutputText returns the raw driver output as text, for surfacing unparseable emissions to a
// human. Returns the empty string when no raw output was retained.
func (o *Outcome) RawOutputText() string {
	return string(o.RawOutput)
}
