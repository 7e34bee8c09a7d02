package config

import (
	"github.com/rs/zerolog"

	"github.com/HemeraProtocol/seismic-verify/compiler"
)

// DefaultCompilerDirectory describes the default directory compiler binaries are stored under.
const DefaultCompilerDirectory = "/tmp/solidity-compilers"

// DefaultReleaseListURL describes the default compiler release mirror. The official solc binary
// list for linux-amd64 is used unless a project overrides it.
const DefaultReleaseListURL = "https://solc-bin.ethereum.org/linux-amd64"

// GetDefaultProjectConfig obtains a default configuration for a project: Solidity compilation
// with all compiler toggles unset, a five minute driver timeout, and info-level console logging.
func GetDefaultProjectConfig() *ProjectConfig {
	return &ProjectConfig{
		Verification: VerificationConfig{
			Timeout:           300,
			CompilerVersion:   "",
			CompilerDirectory: DefaultCompilerDirectory,
			ReleaseListURL:    DefaultReleaseListURL,
		},
		Compilation: compiler.NewConfig(),
		Logging: LoggingConfig{
			Level:                zerolog.InfoLevel,
			EnableConsoleLogging: true,
			LogDirectory:         "",
		},
	}
}
