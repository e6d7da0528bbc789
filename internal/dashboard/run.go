package dashboard

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devboard-esn/devboard/internal/form"
	"github.com/devboard-esn/devboard/internal/logger"
	"github.com/devboard-esn/devboard/internal/store"
)

// Run starts the dashboard and blocks until the user quits. Log output is
// redirected to logFile while the dashboard owns the terminal.
func Run(s *store.ProjectStore, f *form.Controller, logFile string) error {
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer func() { _ = file.Close() }()
		logger.SetOutput(file)
		defer logger.SetOutput(os.Stderr)
	}

	p := tea.NewProgram(NewModel(s, f), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
