package compiler

import (
	"github.com/HemeraProtocol/seismic-verify/compiler/types"
)

// Config describes the configuration options used to assemble a compiler input for a
// verification run. Every toggle defaults to unset, leaving the compiler's own defaults in
// effect unless the caller overrides them.
type Config struct {
	// Language references the language identifier to compile the sources as.
	Language types.SolcLanguage `json:"language"`

	// EVMVersion describes the EVM version to compile for. Empty means the compiler default.
	EVMVersion string `json:"evmVersion,omitempty"`

	// Optimize describes whether the optimizer should be enabled. Nil means the compiler default.
	Optimize *bool `json:"optimize,omitempty"`

	// OptimizerRuns describes the optimizer run count. Nil means the compiler default.
	OptimizerRuns *int `json:"optimizerRuns,omitempty"`

	// ViaIR describes whether to compile through the IR pipeline. Nil means the compiler default.
	ViaIR *bool `json:"viaIR,omitempty"`

	// Remappings describes import path remappings handed to the compiler.
	Remappings []string `json:"remappings,omitempty"`

	// HashSources describes whether each source unit's keccak-256 hash should be embedded in the
	// input so the compiler cross-checks content integrity.
	HashSources bool `json:"hashSources,omitempty"`
}

// NewConfig returns a Config with default values: Solidity language, every compiler toggle unset.
func NewConfig() *Config {
	return &Config{
		Language: types.LanguageSolidity,
	}
}

// settings converts the config's toggles into the settings section of a standard JSON input.
// Unset toggles are omitted entirely.
func (c *Config) settings() types.SolcSettings {
	settings := types.SolcSettings{
		EVMVersion: c.EVMVersion,
		ViaIR:      c.ViaIR,
		Remappings: c.Remappings,
	}
	if c.Optimize != nil || c.OptimizerRuns != nil {
		settings.Optimizer = &types.OptimizerSettings{
			Enabled: c.Optimize,
			Runs:    c.OptimizerRuns,
		}
	}

	// Request the full artifact surface for every contract, so the report's artifact set is
	// populated whenever compilation succeeds.
	settings.OutputSelection = map[string]map[string][]string{
		"*": {
			"*": {"abi", "evm.bytecode", "evm.deployedBytecode", "metadata"},
		},
	}
	return settings
}
