package drivers

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"

	"github.com/HemeraProtocol/seismic-verify/compiler/types"
	"github.com/HemeraProtocol/seismic-verify/utils"
)

// solcVersionPattern matches the semver component of `solc --version` output.
var solcVersionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// SolcDriver invokes a solc binary in standard JSON mode, feeding the encoded input on stdin and
// capturing whatever the compiler writes to stdout as the raw output.
type SolcDriver struct {
	// binaryPath is the path of the solc binary to execute.
	binaryPath string

	// version is the resolved compiler version, when known.
	version *semver.Version
}

// NewSolcDriver returns a SolcDriver executing the binary at the given path. The version is left
// unresolved until ResolveVersion is called.
func NewSolcDriver(binaryPath string) *SolcDriver {
	return &SolcDriver{binaryPath: binaryPath}
}

// Name returns the driver identifier.
func (d *SolcDriver) Name() string {
	return "solc"
}

// BinaryPath returns the path of the solc binary the driver executes.
func (d *SolcDriver) BinaryPath() string {
	return d.binaryPath
}

// Version returns the resolved compiler version, or nil if ResolveVersion has not succeeded.
func (d *SolcDriver) Version() *semver.Version {
	return d.version
}

// ResolveVersion runs the binary with --version and parses the compiler version out of its
// output. The resolved version is cached on the driver and returned.
func (d *SolcDriver) ResolveVersion(ctx context.Context) (*semver.Version, error) {
	if d.version != nil {
		return d.version, nil
	}

	// Run solc --version to obtain our compiler version.
	out, err := exec.CommandContext(ctx, d.binaryPath, "--version").CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("error while executing solc:\nOUTPUT:\n%s\nERROR: %s\n", string(out), err.Error())
	}

	// Parse the compiler version out of the output
	version, err := ParseSolcVersion(string(out))
	if err != nil {
		return nil, err
	}
	d.version = version
	return version, nil
}

// ParseSolcVersion extracts and parses the semver component of `solc --version` output.
func ParseSolcVersion(versionOutput string) (*semver.Version, error) {
	versionStr := solcVersionPattern.FindString(versionOutput)
	if versionStr == "" {
		return nil, errors.New("could not parse solc version using 'solc --version'")
	}

	// Parse our semver string and return it
	return semver.NewVersion(versionStr)
}

// Compile encodes the input as standard JSON, runs the binary with --standard-json, and returns
// the bytes the compiler wrote to stdout. The output is returned uninterpreted; callers decide
// whether it represents a successful run. The context bounds the process's lifetime; on
// cancellation or deadline the process is killed and an error is returned.
func (d *SolcDriver) Compile(ctx context.Context, input *types.SolcInput) ([]byte, error) {
	// Encode our input into the standard JSON form solc expects on stdin.
	encodedInput, err := json.Marshal(input)
	if err != nil {
		return nil, errors.Wrap(err, "could not encode compiler input")
	}

	// Create our command and feed it the encoded input.
	cmd := exec.CommandContext(ctx, d.binaryPath, "--standard-json")
	cmdStdout, _, cmdCombined, err := utils.RunCommandWithInput(ctx, cmd, encodedInput)
	if err != nil {
		// In standard JSON mode solc reports compilation problems inside its output rather than
		// through the exit code, so any process error here means the run produced nothing usable.
		return nil, fmt.Errorf("error while executing solc:\n%s\n\nCommand Output:\n%s\n", err.Error(), string(cmdCombined))
	}

	return cmdStdout, nil
}
