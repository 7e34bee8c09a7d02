package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/HemeraProtocol/seismic-verify/cmd/exitcodes"
	"github.com/HemeraProtocol/seismic-verify/compiler/drivers"
	"github.com/HemeraProtocol/seismic-verify/compiler/types"
	"github.com/HemeraProtocol/seismic-verify/logging/colors"
	"github.com/HemeraProtocol/seismic-verify/solcbin"
	"github.com/HemeraProtocol/seismic-verify/verification"
)

// verifyCmd represents the command provider for verification
var verifyCmd = &cobra.Command{
	Use:               "verify <file>",
	Short:             "Verifies a single contract source file",
	Long:              `Compiles a single contract source file against the configured compiler and classifies the outcome`,
	Args:              cmdValidateVerifyArgs,
	ValidArgsFunction: cmdValidVerifyArgs,
	RunE:              cmdRunVerify,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the verify command
	addVerifyFlags()

	// Add the verify command and its associated flags to the root command
	rootCmd.AddCommand(verifyCmd)
}

// cmdValidVerifyArgs will return which flags are valid for dynamic completion for the verify command
func cmdValidVerifyArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Gather a list of flags that are available to be used in the current command but have not been used yet
	var unusedFlags []string

	// Examine all the flags, and add any flags that have not been set in the current command line
	// to a list of unused flags
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			// When adding a flag to a command, include the "--" prefix to indicate that it is a flag
			// and not a positional argument.
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})

	// Provide a list of flags that can be used in the current command (but have not been used yet)
	// for autocompletion suggestions
	return unusedFlags, cobra.ShellCompDirectiveDefault
}

// cmdValidateVerifyArgs makes sure that exactly one source file is provided to the verify command
func cmdValidateVerifyArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		err = fmt.Errorf("verify accepts exactly one source file argument")
		cmdLogger.Error("Failed to validate args to the verify command", err)
		return err
	}
	return nil
}

// cmdRunVerify executes the CLI verify command: it resolves the project configuration, locates a
// compiler binary, runs the verification pipeline once for the provided source file, and prints
// the outcome. Compilation failures map to a dedicated exit code; driver and parse failures map
// to another, so batch callers can tell domain results from environmental faults.
func cmdRunVerify(cmd *cobra.Command, args []string) error {
	// Resolve the project configuration and apply any CLI overrides.
	projectConfig, err := resolveProjectConfig(cmd)
	if err != nil {
		cmdLogger.Error("Failed to run the verify command", err)
		return err
	}
	if err = updateProjectConfigWithVerifyFlags(cmd, projectConfig); err != nil {
		cmdLogger.Error("Failed to run the verify command", err)
		return err
	}
	if err = setupGlobalLogger(projectConfig.Logging); err != nil {
		cmdLogger.Error("Failed to set up logging", err)
		return err
	}
	if err = projectConfig.Validate(); err != nil {
		cmdLogger.Error("Invalid project configuration", err)
		return err
	}

	// Read the source file to verify.
	sourcePath := args[0]
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		cmdLogger.Error("Failed to read the source file", err)
		return err
	}

	// Resolve the compiler binary: an explicit --compiler-binary wins, otherwise the configured
	// version is looked up in the local compiler store.
	binaryPath, err := cmd.Flags().GetString("compiler-binary")
	if err != nil {
		return err
	}
	if binaryPath == "" {
		store, err := solcbin.NewStore(projectConfig.Verification.CompilerDirectory, projectConfig.Verification.ReleaseListURL)
		if err != nil {
			cmdLogger.Error("Failed to open the compiler store", err)
			return err
		}
		binaryPath, err = store.BinaryPath(projectConfig.Verification.CompilerVersion)
		if err != nil {
			cmdLogger.Error("Failed to resolve a compiler binary. Use 'seismic-verify versions --install <version>' to install one", err)
			return err
		}
	}

	// Create the driver and log which compiler build answered.
	driver := drivers.NewSolcDriver(binaryPath)
	if compilerVersion, err := driver.ResolveVersion(cmd.Context()); err == nil {
		cmdLogger.Info("Using compiler ", colors.Bold, compilerVersion.String(), colors.Reset, " at ", binaryPath)
	} else {
		cmdLogger.Warn("Could not resolve the compiler's version", err)
	}

	// Create the verifier and run the pipeline once.
	verifier, err := verification.NewVerifier(projectConfig.Compilation, driver, time.Duration(projectConfig.Verification.Timeout)*time.Second)
	if err != nil {
		cmdLogger.Error("Failed to create the verifier", err)
		return err
	}
	outcome, err := verifier.Verify(context.Background(), verification.Request{
		Path:   filepath.Base(sourcePath),
		Source: string(source),
	})
	if err != nil {
		cmdLogger.Error("Failed to run the verify command", err)
		return err
	}

	// Print the outcome and translate it into an exit code. Errors are already displayed here,
	// so the top-level handler must not print them again.
	printOutcome(outcome)
	switch outcome.Kind {
	case verification.OutcomeCompilationFailed:
		return exitcodes.NewErrorWithExitCode(nil, exitcodes.ExitCodeCompilationFailed)
	case verification.OutcomeDriverFailed, verification.OutcomeMalformedOutput:
		return exitcodes.NewErrorWithExitCode(nil, exitcodes.ExitCodeDriverError)
	default:
		return nil
	}
}

// printOutcome displays a verification outcome on console. All display logic lives here; the
// verification package only returns values.
func printOutcome(outcome *verification.Outcome) {
	switch outcome.Kind {
	case verification.OutcomeSuccess:
		cmdLogger.Info(colors.GreenBold, colors.CHECK_MARK+" Compilation successful", colors.Reset, ", ", len(outcome.Artifacts.ContractNames()), " contract(s) generated")
		if outcome.MissingArtifacts {
			cmdLogger.Warn("The compiler reported no errors but emitted no artifact set")
		}
	case verification.OutcomeSuccessWithWarnings:
		cmdLogger.Info(colors.GreenBold, colors.CHECK_MARK+" Compilation successful", colors.Reset, " with ", len(outcome.Diagnostics), " warning(s)")
		printDiagnostics(outcome.Diagnostics)
	case verification.OutcomeCompilationFailed:
		cmdLogger.Error(colors.RedBold, colors.CROSS_MARK+" Compilation failed", colors.Reset, " with ", outcome.ErrorCount(), " error(s)")
		printDiagnostics(outcome.Diagnostics)
	case verification.OutcomeDriverFailed:
		cmdLogger.Error("The compiler process failed", outcome.Cause)
	case verification.OutcomeMalformedOutput:
		cmdLogger.Error("Failed to parse the compiler's output", outcome.Cause)
		cmdLogger.Error("Raw compiler output:\n", outcome.RawOutputText())
	}
}

// printDiagnostics displays each diagnostic of a run, colorized by severity, preferring the
// compiler's formatted rendering when present.
func printDiagnostics(diagnostics []types.Diagnostic) {
	for _, diagnostic := range diagnostics {
		message := diagnostic.FormattedMessage
		if message == "" {
			message = diagnostic.Message
		}
		switch diagnostic.Severity {
		case types.SeverityError:
			cmdLogger.Error(colors.Red, message, colors.Reset)
		case types.SeverityWarning:
			cmdLogger.Warn(colors.Yellow, message, colors.Reset)
		default:
			cmdLogger.Info(message)
		}
	}
}
