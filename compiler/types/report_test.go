package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDiagnosticRetainsUnmodeledFields will test that fields the Diagnostic type does not model
// survive a decode/re-encode round trip.
func TestDiagnosticRetainsUnmodeledFields(t *testing.T) {
	raw := `{"severity":"warning","message":"unused variable","errorCode":"2072","secondarySourceLocations":[{"file":"Test.sol","start":10,"end":12}]}`

	var diagnostic Diagnostic
	require.NoError(t, json.Unmarshal([]byte(raw), &diagnostic))
	assert.Equal(t, "warning", diagnostic.Severity)
	assert.Equal(t, "unused variable", diagnostic.Message)
	assert.False(t, diagnostic.IsError())

	reencoded, err := json.Marshal(diagnostic)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(reencoded))
}

// TestDiagnosticSourceLocation will test that the compiler's source location is decoded.
func TestDiagnosticSourceLocation(t *testing.T) {
	raw := `{"severity":"error","type":"ParserError","message":"expected ';'","sourceLocation":{"file":"Wallet.sol","start":120,"end":121}}`

	var diagnostic Diagnostic
	require.NoError(t, json.Unmarshal([]byte(raw), &diagnostic))
	assert.True(t, diagnostic.IsError())
	require.NotNil(t, diagnostic.SourceLocation)
	assert.Equal(t, "Wallet.sol", diagnostic.SourceLocation.File)
	assert.Equal(t, 120, diagnostic.SourceLocation.Start)
}

// TestCompilerReportHasErrors will test error detection across diagnostic severities.
func TestCompilerReportHasErrors(t *testing.T) {
	testCases := []struct {
		raw       string
		hasErrors bool
	}{
		{`{}`, false},
		{`{"errors":[]}`, false},
		{`{"errors":[{"severity":"warning"}]}`, false},
		{`{"errors":[{"severity":"info"},{"severity":"warning"}]}`, false},
		{`{"errors":[{"severity":"error"}]}`, true},
		{`{"errors":[{"severity":"warning"},{"severity":"error"}]}`, true},
	}

	for _, tc := range testCases {
		report, err := ParseCompilerReport([]byte(tc.raw))
		require.NoError(t, err, "report: %s", tc.raw)
		assert.Equal(t, tc.hasErrors, report.HasErrors(), "report: %s", tc.raw)
	}
}

// TestParseCompilerReportRejectsNonJSON will test that non-JSON output fails to parse.
func TestParseCompilerReportRejectsNonJSON(t *testing.T) {
	_, err := ParseCompilerReport([]byte("Segmentation fault"))
	assert.Error(t, err)
}

// TestArtifactSetContractNames will test contract name enumeration across source paths.
func TestArtifactSetContractNames(t *testing.T) {
	report, err := ParseCompilerReport([]byte(`{"contracts":{"A.sol":{"Alpha":{},"Beta":{}},"B.sol":{"Gamma":{}}}}`))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Alpha", "Beta", "Gamma"}, report.Contracts.ContractNames())
}
