package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HemeraProtocol/seismic-verify/compiler"
	"github.com/HemeraProtocol/seismic-verify/verification/config"
)

// addVerifyFlags adds the various flags for the verify command
func addVerifyFlags() {
	// Get the default project config so flag descriptions can cite the defaults
	defaultConfig := config.GetDefaultProjectConfig()

	// Prevent alphabetical sorting of usage message
	verifyCmd.Flags().SortFlags = false

	// Config file
	verifyCmd.Flags().String("config", "", "path to config file")

	// Compiler selection
	verifyCmd.Flags().String("compiler-version", "",
		"compiler version to verify against (default is the newest installed version)")
	verifyCmd.Flags().String("compiler-dir", "",
		fmt.Sprintf("directory compiler binaries are stored under (unless a config file is provided, default is %q)", defaultConfig.Verification.CompilerDirectory))
	verifyCmd.Flags().String("compiler-binary", "",
		"path of a compiler binary to use directly, bypassing the compiler store")

	// Timeout
	verifyCmd.Flags().Int("timeout", 0,
		fmt.Sprintf("number of seconds a compiler invocation may run for (unless a config file is provided, default is %d). 0 means that timeout is not enforced", defaultConfig.Verification.Timeout))

	// Compiler toggles
	verifyCmd.Flags().String("evm-version", "",
		"EVM version to compile for (default is the compiler's own default)")
	verifyCmd.Flags().Bool("optimize", false,
		"enable the compiler's optimizer")
	verifyCmd.Flags().Bool("via-ir", false,
		"compile through the IR pipeline")
	verifyCmd.Flags().Bool("hash-sources", false,
		"embed keccak-256 content hashes in the compiler input so the compiler cross-checks source integrity")
}

// updateProjectConfigWithVerifyFlags will update the given projectConfig with any CLI arguments that were provided to the verify command
func updateProjectConfigWithVerifyFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	var err error

	// A config file may have nulled the compilation section; flag overrides still need one.
	if projectConfig.Compilation == nil {
		projectConfig.Compilation = compiler.NewConfig()
	}

	// Update the compiler selection
	if cmd.Flags().Changed("compiler-version") {
		projectConfig.Verification.CompilerVersion, err = cmd.Flags().GetString("compiler-version")
		if err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("compiler-dir") {
		projectConfig.Verification.CompilerDirectory, err = cmd.Flags().GetString("compiler-dir")
		if err != nil {
			return err
		}
	}

	// Update the timeout
	if cmd.Flags().Changed("timeout") {
		projectConfig.Verification.Timeout, err = cmd.Flags().GetInt("timeout")
		if err != nil {
			return err
		}
	}

	// Update the compiler toggles
	if cmd.Flags().Changed("evm-version") {
		projectConfig.Compilation.EVMVersion, err = cmd.Flags().GetString("evm-version")
		if err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("optimize") {
		optimize, err := cmd.Flags().GetBool("optimize")
		if err != nil {
			return err
		}
		projectConfig.Compilation.Optimize = &optimize
	}
	if cmd.Flags().Changed("via-ir") {
		viaIR, err := cmd.Flags().GetBool("via-ir")
		if err != nil {
			return err
		}
		projectConfig.Compilation.ViaIR = &viaIR
	}
	if cmd.Flags().Changed("hash-sources") {
		projectConfig.Compilation.HashSources, err = cmd.Flags().GetBool("hash-sources")
		if err != nil {
			return err
		}
	}

	return nil
}
