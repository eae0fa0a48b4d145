// Package commands implements the intakeflow command line client.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/intakeflow/internal/api/v1/client"
	"github.com/celestiaorg/intakeflow/internal/api/v1/routes"
	"github.com/celestiaorg/intakeflow/internal/constants"
	"github.com/celestiaorg/intakeflow/internal/dashboard"
)

// flag names
const (
	flagServerAddress = "server-address"
	flagAPIKey        = "api-key"
	flagPreferences   = "preferences"
)

var (
	// apiClient is the shared API client instance
	apiClient client.Client
	// prefs persists the dashboard filters between invocations
	prefs dashboard.PreferenceStore
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
	// apiKey is sent with every write request
	apiKey string
	// preferencesPath overrides the default preferences location
	preferencesPath string
)

// initClient initializes the API client
func initClient() error {
	var err error
	opts := client.DefaultOptions()
	opts.BaseURL = serverAddress
	opts.APIKey = apiKey

	apiClient, err = client.NewClient(opts)
	return err
}

// initPreferences opens the file backed preference store
func initPreferences() error {
	store, err := dashboard.NewFilePreferences(preferencesPath)
	if err != nil {
		return err
	}
	prefs = store
	return nil
}

func init() {
	// PersistentPreRunE applies the environment over these defaults
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", routes.DefaultBaseURL,
		"Address of the IntakeFlow API server (env: "+constants.EnvAPIBase+")")
	RootCmd.PersistentFlags().StringVar(&apiKey, flagAPIKey, constants.DefaultAPIKey,
		"Key sent with write requests (env: "+constants.EnvAPIKey+")")
	RootCmd.PersistentFlags().StringVar(&preferencesPath, flagPreferences, "",
		"Preferences file for saved filters (env: "+constants.EnvPreferencesFile+")")

	RootCmd.AddCommand(GetProjectsCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "intakeflow",
	Short: "IntakeFlow CLI - track project intake from the command line",
	Long: `IntakeFlow CLI lists, filters, edits and exports intake projects through the
IntakeFlow API, and renders the portfolio timeline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Flag > Env Var > Default
		applyEnv(cmd, flagServerAddress, constants.EnvAPIBase, &serverAddress)
		applyEnv(cmd, flagAPIKey, constants.EnvAPIKey, &apiKey)
		applyEnv(cmd, flagPreferences, constants.EnvPreferencesFile, &preferencesPath)

		if serverAddress == "" {
			return fmt.Errorf("server address cannot be empty")
		}
		if err := initPreferences(); err != nil {
			return err
		}
		return initClient()
	},
}

// applyEnv overrides target with the env var unless the flag was set explicitly
func applyEnv(cmd *cobra.Command, flag, envVar string, target *string) {
	if cmd.Flags().Changed(flag) {
		return
	}
	if v := os.Getenv(envVar); v != "" {
		*target = v
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
