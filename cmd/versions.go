package cmd

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/HemeraProtocol/seismic-verify/logging/colors"
	"github.com/HemeraProtocol/seismic-verify/solcbin"
)

// versionsCmd represents the command provider for compiler version management
var versionsCmd = &cobra.Command{
	Use:           "versions",
	Short:         "Lists and installs compiler versions",
	Long:          `Lists compiler versions installed in the local compiler store and advertised by the release mirror, and installs new ones`,
	Args:          cobra.NoArgs,
	RunE:          cmdRunVersions,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	versionsCmd.Flags().SortFlags = false
	versionsCmd.Flags().String("config", "", "path to config file")
	versionsCmd.Flags().String("install", "", "compiler version to download and install into the compiler store")
	versionsCmd.Flags().Bool("available", false, "also list the versions advertised by the release mirror")

	// Add the versions command and its associated flags to the root command
	rootCmd.AddCommand(versionsCmd)
}

// cmdRunVersions executes the CLI versions command: it lists the compiler store's contents,
// optionally lists the mirror's advertised releases, and installs a requested version.
func cmdRunVersions(cmd *cobra.Command, args []string) error {
	// Resolve the project configuration to locate the compiler store and mirror.
	projectConfig, err := resolveProjectConfig(cmd)
	if err != nil {
		cmdLogger.Error("Failed to run the versions command", err)
		return err
	}
	if err = setupGlobalLogger(projectConfig.Logging); err != nil {
		cmdLogger.Error("Failed to set up logging", err)
		return err
	}

	store, err := solcbin.NewStore(projectConfig.Verification.CompilerDirectory, projectConfig.Verification.ReleaseListURL)
	if err != nil {
		cmdLogger.Error("Failed to open the compiler store", err)
		return err
	}

	// Install a version first if one was requested, so the listing below reflects it.
	installVersion, err := cmd.Flags().GetString("install")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("install") {
		if _, err = store.Install(cmd.Context(), installVersion); err != nil {
			cmdLogger.Error("Failed to install the requested compiler version", err)
			return err
		}
	}

	// List the store's contents.
	installed, err := store.InstalledVersions()
	if err != nil {
		cmdLogger.Error("Failed to enumerate the compiler store", err)
		return err
	}
	cmdLogger.Info("Installed compiler versions under ", colors.Bold, store.Directory(), colors.Reset, ": ", len(installed))
	for _, version := range installed {
		cmdLogger.Info("  ", version.String())
	}

	// Optionally list what the mirror advertises.
	showAvailable, err := cmd.Flags().GetBool("available")
	if err != nil {
		return err
	}
	if showAvailable {
		list, err := solcbin.FetchReleaseList(cmd.Context(), http.DefaultClient, projectConfig.Verification.ReleaseListURL)
		if err != nil {
			cmdLogger.Error("Failed to fetch the compiler release list", err)
			return err
		}
		available := list.Versions()
		cmdLogger.Info("Available compiler versions at ", colors.Bold, projectConfig.Verification.ReleaseListURL, colors.Reset, ": ", len(available))
		for _, version := range available {
			cmdLogger.Info("  ", version.String())
		}
	}

	return nil
}
