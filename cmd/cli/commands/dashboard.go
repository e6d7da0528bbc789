package commands

import (
	"github.com/spf13/cobra"

	"github.com/devboard-esn/devboard/internal/dashboard"
	"github.com/devboard-esn/devboard/internal/form"
	"github.com/devboard-esn/devboard/internal/store"
)

const flagLogFile = "log-file"

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive project dashboard",
		Long: `Open the interactive project dashboard.

Keys: n new project, d delete the selected project, r refresh, q quit.
Logs are written to the log file so they do not draw over the dashboard.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logFile := cfg.Log.File
			if cmd.Flags().Changed(flagLogFile) {
				logFile, _ = cmd.Flags().GetString(flagLogFile)
			}

			// The dashboard performs the initial fetch itself
			s := store.NewProjectStore(apiClient, statusLabels)
			return dashboard.Run(s, form.NewController(s), logFile)
		},
	}
	cmd.Flags().String(flagLogFile, "", "File receiving logs while the dashboard runs (default from log.file)")
	return cmd
}
