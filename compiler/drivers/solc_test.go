package drivers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseSolcVersion will test version extraction from typical `solc --version` output.
func TestParseSolcVersion(t *testing.T) {
	// Create the list of test cases
	testCases := []struct {
		output   string
		expected string
	}{
		{"solc, the solidity compiler commandline interface\nVersion: 0.8.29+commit.d4b8c7ae.Linux.g++", "0.8.29"},
		{"Version: 0.8.30+commit.73712a01.Linux.g++", "0.8.30"},
		{"seismic-solidity 0.8.29", "0.8.29"},
	}

	// Iterate over the test cases and parse the version out of each output
	for _, tc := range testCases {
		version, err := ParseSolcVersion(tc.output)
		require.NoError(t, err, "output: %s", tc.output)
		assert.Equal(t, tc.expected, version.String(), "output: %s", tc.output)
	}
}

// TestParseSolcVersionRejectsUnversionedOutput will test that output without a semver fails.
func TestParseSolcVersionRejectsUnversionedOutput(t *testing.T) {
	_, err := ParseSolcVersion("command not found")
	assert.Error(t, err)
}

// TestSolcDriverName will test the driver's identifier and configured binary path.
func TestSolcDriverName(t *testing.T) {
	driver := NewSolcDriver("/tmp/solidity-compilers/v0.8.29+commit.d4b8c7ae/solc")
	assert.Equal(t, "solc", driver.Name())
	assert.Equal(t, "/tmp/solidity-compilers/v0.8.29+commit.d4b8c7ae/solc", driver.BinaryPath())
	assert.Nil(t, driver.Version())
}
