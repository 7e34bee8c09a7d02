package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/HemeraProtocol/seismic-verify/logging"
	"github.com/HemeraProtocol/seismic-verify/utils"
	"github.com/HemeraProtocol/seismic-verify/verification/config"
)

// rootCmd represents the root CLI command object which all other commands stem from.
var rootCmd = &cobra.Command{
	Use:   "seismic-verify",
	Short: "A verification harness for Seismic Solidity contracts",
	Long:  "seismic-verify compiles a contract source against a pinned solc build and classifies the run's outcome",
}

// cmdLogger is the logger that will be used for the cmd package. It is reassigned once the
// project configuration is known and the global logger is configured.
var cmdLogger = logging.NewLogger(zerolog.ErrorLevel, true).NewSubLogger("module", "cmd")

// Execute provides an exportable function to invoke the CLI.
func Execute() error {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd.Execute()
}

// setupGlobalLogger configures the global logger per the project's logging config: console
// output at the configured level, plus a structured log file when a log directory is set. The
// cmd package's own logger is recreated off the new global logger.
func setupGlobalLogger(loggingConfig config.LoggingConfig) error {
	var writers []*os.File
	if loggingConfig.LogDirectory != "" {
		// Each CLI run gets its own timestamped structured log file.
		fileName := "seismic-verify-" + time.Now().UTC().Format("20060102-150405") + ".log"
		file, err := utils.CreateFile(loggingConfig.LogDirectory, fileName)
		if err != nil {
			return err
		}
		writers = append(writers, file)
	}

	if len(writers) > 0 {
		logging.GlobalLogger = logging.NewLogger(loggingConfig.Level, loggingConfig.EnableConsoleLogging, writers[0])
	} else {
		logging.GlobalLogger = logging.NewLogger(loggingConfig.Level, loggingConfig.EnableConsoleLogging)
	}
	cmdLogger = logging.GlobalLogger.NewSubLogger("module", "cmd")
	return nil
}

// resolveProjectConfig locates and reads the project configuration. The default file is looked
// up in the working directory unless --config named one explicitly; a missing default file
// falls back to the default configuration, while a missing explicit file is an error.
func resolveProjectConfig(cmd *cobra.Command) (*config.ProjectConfig, error) {
	// Check to see if --config flag was used and store the value of --config flag
	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If --config was not used, look for the default config file in the current work directory
	if !configFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	// Check to see if the file exists at configPath
	_, existenceError := os.Stat(configPath)

	// Possibility #1: File was found, read it.
	if existenceError == nil {
		return config.ReadProjectConfigFromFile(configPath)
	}

	// Possibility #2: If the --config flag was used, and we couldn't find the file, we'll throw an error
	if configFlagUsed {
		return nil, existenceError
	}

	// Possibility #3: --config flag was not used and the default file was not found, so use the
	// default project config
	return config.GetDefaultProjectConfig(), nil
}
