package verification

import (
	"github.com/pkg/errors"

	"github.com/HemeraProtocol/seismic-verify/compiler/types"
)

// Interpret parses raw compiler output and classifies the run it describes. The classification
// depends only on the parsed report's content: any error-severity diagnostic dominates and yields
// OutcomeCompilationFailed carrying the full diagnostic collection; otherwise a non-empty
// diagnostic collection yields OutcomeSuccessWithWarnings; otherwise the run is a success,
// flagged with MissingArtifacts when the report carried no artifact set. Unparseable output
// yields OutcomeMalformedOutput retaining the original bytes.
func Interpret(raw []byte) *Outcome {
	// Attempt to parse the raw output. On failure we retain the bytes rather than discard them,
	// so a driver that emitted plain text or a truncated stream can still be diagnosed.
	report, err := types.ParseCompilerReport(raw)
	if err != nil {
		return &Outcome{
			Kind:      OutcomeMalformedOutput,
			Cause:     errors.Wrap(err, "could not parse compiler output"),
			RawOutput: raw,
		}
	}

	// An absent diagnostics collection means zero diagnostics, not an error. Any error severity
	// marks the run failed; warnings accompanying a failed run are carried along as context.
	if report.HasErrors() {
		return &Outcome{
			Kind:        OutcomeCompilationFailed,
			Diagnostics: report.Errors,
		}
	}
	if len(report.Errors) > 0 {
		return &Outcome{
			Kind:        OutcomeSuccessWithWarnings,
			Diagnostics: report.Errors,
			Artifacts:   report.Contracts,
		}
	}

	// No diagnostics at all. A report with no artifact set either is still a success, but the
	// state is flagged so callers can log it distinctly.
	artifacts := report.Contracts
	missing := artifacts == nil
	if missing {
		artifacts = types.ArtifactSet{}
	}
	return &Outcome{
		Kind:             OutcomeSuccess,
		Artifacts:        artifacts,
		MissingArtifacts: missing,
	}
}
