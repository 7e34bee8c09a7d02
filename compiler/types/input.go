package types

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// SolcLanguage describes the language identifier passed to the compiler in a standard JSON input.
type SolcLanguage string

const (
	// LanguageSolidity is the language identifier for Solidity and Seismic-extended Solidity sources.
	LanguageSolidity SolcLanguage = "Solidity"

	// LanguageYul is the language identifier for Yul sources.
	LanguageYul SolcLanguage = "Yul"
)

// SourceUnit describes a single virtual source file embedded in a SolcInput.
type SourceUnit struct {
	// Content is the literal source text of the unit.
	Content string `json:"content"`

	// Keccak256 is an optional 0x-prefixed keccak-256 hash of Content. When set, the compiler
	// cross-checks it against the content it received.
	Keccak256 string `json:"keccak256,omitempty"`
}

// OptimizerSettings describes the optimizer section of the compiler settings. A nil value means
// the toggle is left at the compiler's default.
type OptimizerSettings struct {
	// Enabled describes whether the optimizer should run.
	Enabled *bool `json:"enabled,omitempty"`

	// Runs describes the optimizer run count tuning parameter.
	Runs *int `json:"runs,omitempty"`
}

// SolcSettings describes the settings section of a standard JSON compiler input. Every field is
// optional and omitted from the encoded input when unset, leaving the compiler's default behavior.
type SolcSettings struct {
	// EVMVersion describes the EVM version to compile for (e.g. "cancun").
	EVMVersion string `json:"evmVersion,omitempty"`

	// Optimizer describes optimizer toggles.
	Optimizer *OptimizerSettings `json:"optimizer,omitempty"`

	// ViaIR describes whether compilation should go through the IR pipeline.
	ViaIR *bool `json:"viaIR,omitempty"`

	// Remappings describes import path remappings.
	Remappings []string `json:"remappings,omitempty"`

	// OutputSelection describes which compiler outputs are requested, keyed by source path and
	// contract name per the standard JSON schema.
	OutputSelection map[string]map[string][]string `json:"outputSelection,omitempty"`
}

// SolcInput describes a full standard JSON compiler input: a language identifier, an ordered set
// of virtual source files, and optional settings. It is immutable once constructed and owned
// solely by the caller that hands it to a driver.
type SolcInput struct {
	// Language is the language identifier for all sources in the input.
	Language SolcLanguage

	// Sources is the ordered mapping of virtual file path to source unit.
	Sources SourceMap

	// Settings describes the optional compiler settings.
	Settings SolcSettings
}

// MarshalJSON encodes the input in the standard JSON schema the compiler expects.
func (i SolcInput) MarshalJSON() ([]byte, error) {
	type encoded struct {
		Language SolcLanguage `json:"language"`
		Sources  SourceMap    `json:"sources"`
		Settings SolcSettings `json:"settings"`
	}
	return json.Marshal(encoded{Language: i.Language, Sources: i.Sources, Settings: i.Settings})
}

// SourceMap describes an insertion-ordered mapping of virtual file path to SourceUnit. Key order
// is preserved so repeated invocations hand the driver a byte-identical input.
type SourceMap struct {
	paths map[string]SourceUnit
	order []string
}

// NewSourceMap returns an empty SourceMap.
func NewSourceMap() SourceMap {
	return SourceMap{paths: make(map[string]SourceUnit)}
}

// Set adds or replaces the source unit stored under the given virtual path. A replaced path keeps
// its original position in the ordering.
func (m *SourceMap) Set(path string, unit SourceUnit) {
	if m.paths == nil {
		m.paths = make(map[string]SourceUnit)
	}
	if _, exists := m.paths[path]; !exists {
		m.order = append(m.order, path)
	}
	m.paths[path] = unit
}

// Get returns the source unit stored under the given virtual path, and whether one exists.
func (m SourceMap) Get(path string) (SourceUnit, bool) {
	unit, ok := m.paths[path]
	return unit, ok
}

// Len returns the number of source units in the map.
func (m SourceMap) Len() int {
	return len(m.order)
}

// Paths returns the virtual file paths in insertion order.
func (m SourceMap) Paths() []string {
	paths := make([]string, len(m.order))
	copy(paths, m.order)
	return paths
}

// MarshalJSON encodes the map as a JSON object whose keys appear in insertion order.
func (m SourceMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, path := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedPath, err := json.Marshal(path)
		if err != nil {
			return nil, err
		}
		encodedUnit, err := json.Marshal(m.paths[path])
		if err != nil {
			return nil, errors.Wrapf(err, "could not encode source unit '%s'", path)
		}
		buf.Write(encodedPath)
		buf.WriteByte(':')
		buf.Write(encodedUnit)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the map, preserving the key order of the encoded form.
func (m *SourceMap) UnmarshalJSON(data []byte) error {
	*m = NewSourceMap()

	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return errors.New("could not decode source map: expected a JSON object")
	}

	// Read alternating key/value pairs until the closing delimiter.
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return err
		}
		path := keyToken.(string)

		var unit SourceUnit
		if err := decoder.Decode(&unit); err != nil {
			return errors.Wrapf(err, "could not decode source unit '%s'", path)
		}
		m.Set(path, unit)
	}
	_, err = decoder.Token()
	return err
}
