package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/HemeraProtocol/seismic-verify/logging/colors"
	"github.com/HemeraProtocol/seismic-verify/verification/config"
)

// initCmd represents the command provider for init
var initCmd = &cobra.Command{
	Use:           "init",
	Short:         "Initializes a project configuration",
	Long:          `Initializes a project configuration`,
	Args:          cobra.NoArgs,
	RunE:          cmdRunInit,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Output path for configuration
	initCmd.Flags().String("out", "", "output path for the new project configuration file")

	// Add the init command and its associated flags to the root command
	rootCmd.AddCommand(initCmd)
}

// cmdRunInit executes the init CLI command and writes a default project configuration to disk.
func cmdRunInit(cmd *cobra.Command, args []string) error {
	// Check if --out flag was used and store the value of --out flag
	outputFlagUsed := cmd.Flags().Changed("out")
	outputPath, err := cmd.Flags().GetString("out")
	if err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}

	// If we weren't provided an output path, we use the default configuration filename in the
	// working directory
	if !outputFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			cmdLogger.Error("Failed to run the init command", err)
			return err
		}
		outputPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	// Refuse to clobber an existing configuration file.
	if _, err := os.Stat(outputPath); err == nil {
		err = fmt.Errorf("a configuration file already exists at '%s'", outputPath)
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}

	// Write the default project configuration.
	projectConfig := config.GetDefaultProjectConfig()
	if err = projectConfig.WriteToFile(outputPath); err != nil {
		cmdLogger.Error("Failed to run the init command", err)
		return err
	}

	cmdLogger.Info("Project configuration successfully saved to: ", colors.Bold, outputPath, colors.Reset)
	return nil
}
