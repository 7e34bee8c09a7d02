package verification

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInterpretErrorsDominate will test that any error-severity diagnostic classifies a run as
// failed, regardless of artifact presence or accompanying warnings.
func TestInterpretErrorsDominate(t *testing.T) {
	// Create the list of test cases. Every report carries at least one error severity.
	testCases := []string{
		`{"errors":[{"severity":"error","message":"X"}]}`,
		`{"errors":[{"severity":"warning","message":"W"},{"severity":"error","message":"E"}]}`,
		`{"errors":[{"severity":"error","message":"E"}],"contracts":{"Foo":{}}}`,
		`{"errors":[{"severity":"info","message":"I"},{"severity":"error","message":"E"},{"severity":"warning","message":"W"}],"contracts":{"Foo":{"Bar":{}}}}`,
	}

	for _, tc := range testCases {
		outcome := Interpret([]byte(tc))
		assert.Equal(t, OutcomeCompilationFailed, outcome.Kind, "report: %s", tc)
		assert.False(t, outcome.Succeeded())

		// The full diagnostic collection must be carried, not just the errors.
		var report struct {
			Errors []json.RawMessage `json:"errors"`
		}
		require.NoError(t, json.Unmarshal([]byte(tc), &report))
		assert.Equal(t, len(report.Errors), len(outcome.Diagnostics), "report: %s", tc)
	}
}

// TestInterpretAbsenceOfErrorsNeverFails will test that a report without error-severity
// diagnostics never yields a failed classification, even when the artifact set is absent.
func TestInterpretAbsenceOfErrorsNeverFails(t *testing.T) {
	testCases := []string{
		`{}`,
		`{"errors":[]}`,
		`{"errors":null}`,
		`{"contracts":null}`,
	}

	for _, tc := range testCases {
		outcome := Interpret([]byte(tc))
		assert.Equal(t, OutcomeSuccess, outcome.Kind, "report: %s", tc)
		assert.True(t, outcome.Succeeded())

		// The ambiguous "no errors, no artifacts" state is still a success, but flagged, with an
		// empty (non-nil) artifact set.
		assert.True(t, outcome.MissingArtifacts, "report: %s", tc)
		assert.NotNil(t, outcome.Artifacts)
		assert.Empty(t, outcome.Artifacts)
	}
}

// TestInterpretWarningsPreserved will test that a warnings-only run classifies as a success with
// warnings and carries the diagnostic collection unmodified in content and order.
func TestInterpretWarningsPreserved(t *testing.T) {
	raw := `{"errors":[` +
		`{"severity":"warning","message":"first","errorCode":"2072"},` +
		`{"severity":"info","message":"second"},` +
		`{"severity":"warning","message":"third"}]}`

	outcome := Interpret([]byte(raw))
	assert.Equal(t, OutcomeSuccessWithWarnings, outcome.Kind)
	require.Equal(t, 3, len(outcome.Diagnostics))
	assert.Equal(t, "first", outcome.Diagnostics[0].Message)
	assert.Equal(t, "second", outcome.Diagnostics[1].Message)
	assert.Equal(t, "third", outcome.Diagnostics[2].Message)

	// Fields this module does not model must survive a re-encode of the diagnostic.
	reencoded, err := json.Marshal(outcome.Diagnostics[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"severity":"warning","message":"first","errorCode":"2072"}`, string(reencoded))
}

// TestInterpretMalformedOutputRetainsBytes will test that unparseable output yields a malformed
// classification from which the original bytes are recoverable.
func TestInterpretMalformedOutputRetainsBytes(t *testing.T) {
	testCases := [][]byte{
		[]byte("not json"),
		[]byte(""),
		[]byte(`{"errors":`),
		[]byte("Segmentation fault (core dumped)"),
	}

	for _, tc := range testCases {
		outcome := Interpret(tc)
		assert.Equal(t, OutcomeMalformedOutput, outcome.Kind, "raw: %q", tc)
		assert.Error(t, outcome.Cause)
		assert.Equal(t, tc, outcome.RawOutput)
	}
}

// TestInterpretSingleError will test the concrete single-error scenario.
func TestInterpretSingleError(t *testing.T) {
	outcome := Interpret([]byte(`{"errors":[{"severity":"error","message":"X"}]}`))
	assert.Equal(t, OutcomeCompilationFailed, outcome.Kind)
	require.Equal(t, 1, len(outcome.Diagnostics))
	assert.Equal(t, "X", outcome.Diagnostics[0].Message)
	assert.Equal(t, 1, outcome.ErrorCount())
}

// TestInterpretWarningWithArtifacts will test the concrete warning-plus-artifacts scenario.
func TestInterpretWarningWithArtifacts(t *testing.T) {
	outcome := Interpret([]byte(`{"errors":[{"severity":"warning","message":"Y"}],"contracts":{"Foo":{}}}`))
	assert.Equal(t, OutcomeSuccessWithWarnings, outcome.Kind)
	require.Equal(t, 1, len(outcome.Diagnostics))
	assert.Equal(t, "Y", outcome.Diagnostics[0].Message)
	assert.Equal(t, 0, outcome.ErrorCount())
}

// TestInterpretCleanSuccess will test the concrete no-errors scenario.
func TestInterpretCleanSuccess(t *testing.T) {
	outcome := Interpret([]byte(`{"contracts":{"Foo":{}}}`))
	assert.Equal(t, OutcomeSuccess, outcome.Kind)
	assert.False(t, outcome.MissingArtifacts)
	assert.Contains(t, outcome.Artifacts, "Foo")
}

// TestInterpretPlainText will test the concrete non-JSON scenario.
func TestInterpretPlainText(t *testing.T) {
	outcome := Interpret([]byte("not json"))
	assert.Equal(t, OutcomeMalformedOutput, outcome.Kind)
	assert.Equal(t, "not json", outcome.RawOutputText())
}

// TestInterpretIgnoresUnknownTopLevelKeys will test that classification depends only on the
// diagnostics and artifact content, not on incidental top-level fields.
func TestInterpretIgnoresUnknownTopLevelKeys(t *testing.T) {
	outcome := Interpret([]byte(`{"sources":{"Test.sol":{"id":0}},"contracts":{"Foo":{"Bar":{"abi":[]}}}}`))
	assert.Equal(t, OutcomeSuccess, outcome.Kind)
	assert.Equal(t, []string{"Bar"}, outcome.Artifacts.ContractNames())
}
