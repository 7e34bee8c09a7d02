package config

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/HemeraProtocol/seismic-verify/compiler"
)

// ProjectConfig describes the full configuration of a verification project.
type ProjectConfig struct {
	// Verification describes the configuration used to run verifications.
	Verification VerificationConfig `json:"verification"`

	// Compilation describes the configuration used to assemble compiler inputs.
	Compilation *compiler.Config `json:"compilation"`

	// Logging describes the configuration used for logging.
	Logging LoggingConfig `json:"logging"`
}

// VerificationConfig describes the configuration options used by the verification.Verifier.
type VerificationConfig struct {
	// Timeout describes a time in seconds for which a single driver invocation may run.
	// Providing a negative or zero value will result in no timeout.
	Timeout int `json:"timeout"`

	// CompilerVersion describes the compiler version to verify against, e.g.
	// "0.8.29". An empty string selects the newest installed version.
	CompilerVersion string `json:"compilerVersion"`

	// CompilerDirectory describes the directory compiler binaries are stored under, one
	// versioned subdirectory per release.
	CompilerDirectory string `json:"compilerDirectory"`

	// ReleaseListURL describes the base URL of the compiler release mirror used to list and
	// download binaries.
	ReleaseListURL string `json:"releaseListUrl"`
}

// LoggingConfig describes the configuration options used for logging.
type LoggingConfig struct {
	// Level describes whether logs of certain severity levels (eg info, warning, etc.) will be emitted or discarded.
	// Increasing level values represent more severe logs.
	Level zerolog.Level `json:"level"`

	// EnableConsoleLogging describes whether console logging is enabled.
	EnableConsoleLogging bool `json:"enableConsoleLogging"`

	// LogDirectory describes the directory where structured log _files_ will be outputted. If the string is empty,
	// then no log files are kept.
	LogDirectory string `json:"logDirectory"`
}

// ReadProjectConfigFromFile reads a JSON-serialized ProjectConfig from a provided file path.
// Returns the ProjectConfig if it succeeds, or an error if one occurs.
func ReadProjectConfigFromFile(path string) (*ProjectConfig, error) {
	// Read our project configuration file data
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Parse the project configuration over the defaults, so omitted fields keep their
	// default values.
	projectConfig := GetDefaultProjectConfig()
	err = json.Unmarshal(b, projectConfig)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return projectConfig, nil
}

// WriteToFile writes the ProjectConfig to a provided file path in a JSON-serialized format.
// Returns an error if one occurs.
func (p *ProjectConfig) WriteToFile(path string) error {
	// Serialize the configuration
	b, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return errors.WithStack(err)
	}

	// Save it to the provided output path and return the result
	err = os.WriteFile(path, b, 0644)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// Validate validates that the ProjectConfig meets certain requirements.
// Returns an error if one occurs.
func (p *ProjectConfig) Validate() error {
	// Verify a compilation config is present and names a language.
	if p.Compilation == nil {
		return errors.Errorf("a compilation configuration must be provided")
	}
	if p.Compilation.Language == "" {
		return errors.Errorf("the compilation configuration must specify a language")
	}

	// Verify a compiler store location is set.
	if p.Verification.CompilerDirectory == "" {
		return errors.Errorf("a compiler directory must be provided")
	}

	// Verify the release mirror URL is set, as both version listing and installs depend on it.
	if p.Verification.ReleaseListURL == "" {
		return errors.Errorf("a release list URL must be provided")
	}

	return nil
}
