package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/devboard-esn/devboard/internal/config"
	"github.com/devboard-esn/devboard/internal/logger"
	"github.com/devboard-esn/devboard/internal/store"
	"github.com/devboard-esn/devboard/pkg/api/v1/client"
	"github.com/devboard-esn/devboard/pkg/models"
)

// flag names
const (
	flagServerAddress = "server-address"
	flagConfig        = "config"
)

var (
	// apiClient is the shared API client instance
	apiClient client.Client
	// cfg is the configuration loaded by PersistentPreRunE
	cfg = config.Default()
	// statusLabels is the validated label mapping from cfg
	statusLabels models.StatusLabels

	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
	// configPath is the optional YAML configuration file
	configPath string
)

func init() {
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", "", "Address of the DevBoard API server (env: DEVBOARD_API_BASE_URL)")
	RootCmd.PersistentFlags().StringVarP(&configPath, flagConfig, "c", "", "Path to a YAML configuration file")

	RootCmd.AddCommand(newProjectsCmd())
	RootCmd.AddCommand(newDashboardCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "devboard",
	Short: "DevBoard CLI - track consulting projects from the terminal",
	Long: `DevBoard is a small tracker for consulting-firm projects.
The CLI talks to the DevBoard API server to list, create and delete projects,
and can open an interactive dashboard.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// setup loads the configuration and builds the API client
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	logger.InitializeAndConfigure(cfg.Log.Level)

	labels, err := cfg.Labels()
	if err != nil {
		return err
	}
	statusLabels = labels

	// Flag > env or config file > default
	if !cmd.Flags().Changed(flagServerAddress) {
		serverAddress = cfg.API.BaseURL
	}
	if serverAddress == "" {
		return fmt.Errorf("server address cannot be empty")
	}
	return initClient()
}

// initClient initializes the API client
func initClient() error {
	var err error
	opts := client.DefaultOptions()
	opts.BaseURL = serverAddress
	opts.Timeout = cfg.API.Timeout

	apiClient, err = client.NewClient(opts)
	return err
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// loadStore returns a store holding the server's current collection
func loadStore(ctx context.Context) (*store.ProjectStore, error) {
	s := store.NewProjectStore(apiClient, statusLabels)
	if err := s.Init(ctx); err != nil {
		return nil, err
	}
	return s, nil
}
