package types

import (
	"encoding/json"
)

// Severity values the compiler attaches to diagnostics. Only SeverityError is fatal; every other
// value is treated as non-fatal.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// SourceLocation describes where in a source unit a diagnostic points.
type SourceLocation struct {
	// File is the virtual path of the source unit the diagnostic refers to.
	File string `json:"file"`

	// Start is the byte offset where the relevant region begins, or -1 if unknown.
	Start int `json:"start"`

	// End is the byte offset where the relevant region ends, or -1 if unknown.
	End int `json:"end"`
}

// Diagnostic describes a single compiler-emitted message. Beyond Severity, the fields are carried
// for display only and never interpreted. The raw encoded form is retained so fields this type
// does not model survive a round-trip unmodified.
type Diagnostic struct {
	// Severity is the compiler-assigned severity string (see the Severity constants).
	Severity string `json:"severity"`

	// Type is the compiler's diagnostic kind (e.g. "ParserError", "Warning").
	Type string `json:"type,omitempty"`

	// Component is the compiler component that emitted the diagnostic.
	Component string `json:"component,omitempty"`

	// Message is the plain diagnostic message.
	Message string `json:"message,omitempty"`

	// FormattedMessage is the compiler's human-formatted rendering, including source excerpts.
	FormattedMessage string `json:"formattedMessage,omitempty"`

	// SourceLocation points at the offending source region, when the compiler provided one.
	SourceLocation *SourceLocation `json:"sourceLocation,omitempty"`

	// raw is the original encoded form of the diagnostic, retained verbatim.
	raw json.RawMessage
}

// IsError returns whether the diagnostic's severity marks the compilation run as failed.
func (d Diagnostic) IsError() bool {
	return d.Severity == SeverityError
}

// UnmarshalJSON decodes the diagnostic and retains its original encoded form.
func (d *Diagnostic) UnmarshalJSON(data []byte) error {
	type alias Diagnostic
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*d = Diagnostic(decoded)
	d.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON re-emits the diagnostic's original encoded form when one exists, so unmodeled
// fields are not dropped.
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	if d.raw != nil {
		return d.raw, nil
	}
	type alias Diagnostic
	return json.Marshal(alias(d))
}

// ArtifactSet describes the compiler-produced artifacts of a run, keyed by source path and then
// contract name. Artifact contents are opaque to the verification core.
type ArtifactSet map[string]map[string]json.RawMessage

// ContractNames returns every contract name present in the set, across all source paths.
func (a ArtifactSet) ContractNames() []string {
	var names []string
	for _, contracts := range a {
		for name := range contracts {
			names = append(names, name)
		}
	}
	return names
}

// CompilerReport describes the parsed form of the compiler's raw standard JSON output. Both
// top-level keys are optional; any other top-level content is ignored.
type CompilerReport struct {
	// Errors is the ordered collection of diagnostics the compiler emitted. Absent means the run
	// produced zero diagnostics.
	Errors []Diagnostic `json:"errors,omitempty"`

	// Contracts is the artifact set of the run, or nil when the compiler emitted none.
	Contracts ArtifactSet `json:"contracts,omitempty"`
}

// HasErrors returns whether any diagnostic in the report carries error severity.
func (r *CompilerReport) HasErrors() bool {
	for _, diagnostic := range r.Errors {
		if diagnostic.IsError() {
			return true
		}
	}
	return false
}

// ParseCompilerReport decodes raw compiler output into a CompilerReport. The caller is expected
// to retain the raw bytes if it needs to surface unparseable output.
func ParseCompilerReport(raw []byte) (*CompilerReport, error) {
	var report CompilerReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
