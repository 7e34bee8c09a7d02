package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSourceMapPreservesInsertionOrder will test that SourceMap keys are encoded in insertion
// order, so repeated runs hand the compiler a byte-identical input.
func TestSourceMapPreservesInsertionOrder(t *testing.T) {
	sources := NewSourceMap()
	sources.Set("z.sol", SourceUnit{Content: "contract Z {}"})
	sources.Set("a.sol", SourceUnit{Content: "contract A {}"})
	sources.Set("m.sol", SourceUnit{Content: "contract M {}"})

	assert.Equal(t, []string{"z.sol", "a.sol", "m.sol"}, sources.Paths())

	encoded, err := json.Marshal(sources)
	require.NoError(t, err)
	assert.Equal(t,
		`{"z.sol":{"content":"contract Z {}"},"a.sol":{"content":"contract A {}"},"m.sol":{"content":"contract M {}"}}`,
		string(encoded))

	// Encoding twice must produce identical bytes.
	reencoded, err := json.Marshal(sources)
	require.NoError(t, err)
	assert.Equal(t, encoded, reencoded)
}

// TestSourceMapReplaceKeepsPosition will test that replacing a path's unit keeps its position.
func TestSourceMapReplaceKeepsPosition(t *testing.T) {
	sources := NewSourceMap()
	sources.Set("first.sol", SourceUnit{Content: "one"})
	sources.Set("second.sol", SourceUnit{Content: "two"})
	sources.Set("first.sol", SourceUnit{Content: "replaced"})

	assert.Equal(t, []string{"first.sol", "second.sol"}, sources.Paths())
	unit, ok := sources.Get("first.sol")
	require.True(t, ok)
	assert.Equal(t, "replaced", unit.Content)
}

// TestSourceMapRoundTrip will test that decoding an encoded map preserves key order and content.
func TestSourceMapRoundTrip(t *testing.T) {
	sources := NewSourceMap()
	sources.Set("b.sol", SourceUnit{Content: "contract B {}", Keccak256: "0xabc"})
	sources.Set("a.sol", SourceUnit{Content: "contract A {}"})

	encoded, err := json.Marshal(sources)
	require.NoError(t, err)

	var decoded SourceMap
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, []string{"b.sol", "a.sol"}, decoded.Paths())
	unit, ok := decoded.Get("b.sol")
	require.True(t, ok)
	assert.Equal(t, "0xabc", unit.Keccak256)
}

// TestSolcInputEncoding will test that a full input encodes in the standard JSON shape the
// compiler expects.
func TestSolcInputEncoding(t *testing.T) {
	sources := NewSourceMap()
	sources.Set("Test.sol", SourceUnit{Content: "contract T {}"})
	input := SolcInput{
		Language: LanguageSolidity,
		Sources:  sources,
		Settings: SolcSettings{EVMVersion: "cancun"},
	}

	encoded, err := json.Marshal(input)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Contains(t, decoded, "language")
	assert.Contains(t, decoded, "sources")
	assert.Contains(t, decoded, "settings")
	assert.JSONEq(t, `"Solidity"`, string(decoded["language"]))
	assert.JSONEq(t, `{"evmVersion":"cancun"}`, string(decoded["settings"]))
}
