package commands

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/devboard-esn/devboard/internal/form"
	"github.com/devboard-esn/devboard/internal/store"
	"github.com/devboard-esn/devboard/pkg/models"
)

// Flag names
const (
	flagID          = "id"
	flagName        = "name"
	flagClient      = "client"
	flagDescription = "description"
	flagStatus      = "status"
	flagYes         = "yes"
)

// projectOutput represents the printed form of a project
type projectOutput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Client      string `json:"client"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	StatusLabel string `json:"status_label"`
	CreatedAt   string `json:"created_at"`
}

// projectListOutput represents the printed form of a list of projects
type projectListOutput struct {
	Projects []projectOutput `json:"projects"`
	Stats    store.Stats     `json:"stats"`
}

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage projects",
	}
	cmd.AddCommand(newListProjectsCmd())
	cmd.AddCommand(newGetProjectCmd())
	cmd.AddCommand(newCreateProjectCmd())
	cmd.AddCommand(newDeleteProjectCmd())
	cmd.AddCommand(newStatsCmd())
	return cmd
}

func newListProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all projects, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("error listing projects: %w", err)
			}

			projects := s.Projects()
			output := projectListOutput{
				Projects: make([]projectOutput, len(projects)),
				Stats:    s.Stats(),
			}
			for i, p := range projects {
				output.Projects[i] = toOutput(s, p)
			}
			return printJSON(cmd.OutOrStdout(), output)
		},
	}
}

func newGetProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get a specific project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := cmd.Flags().GetString(flagID)
			if err != nil {
				return fmt.Errorf("error getting id flag: %w", err)
			}

			project, err := apiClient.GetProject(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("error getting project: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), toOutput(store.NewProjectStore(apiClient, statusLabels), project))
		},
	}
	cmd.Flags().String(flagID, "", "Project ID")
	mustMarkRequired(cmd, flagID)
	return cmd
}

func newCreateProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// A failed initial list is logged by the store and does not block the create
			s := store.NewProjectStore(apiClient, statusLabels)
			_ = s.Init(cmd.Context())

			f := form.NewController(s)
			for _, field := range []string{flagName, flagClient, flagDescription, flagStatus} {
				value, err := cmd.Flags().GetString(field)
				if err != nil {
					return fmt.Errorf("error getting %s flag: %w", field, err)
				}
				if err := f.UpdateField(field, value); err != nil {
					return err
				}
			}

			project, err := f.Submit(cmd.Context())
			if err != nil {
				return fmt.Errorf("error creating project: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), toOutput(s, project))
		},
	}
	cmd.Flags().StringP(flagName, "n", "", "Project name")
	cmd.Flags().String(flagClient, "", "Client name")
	cmd.Flags().StringP(flagDescription, "d", "", "Project description")
	cmd.Flags().String(flagStatus, models.StatusDraft.String(), "Project status (draft, in_progress, delivered, archived)")
	return cmd
}

func newDeleteProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := cmd.Flags().GetString(flagID)
			if err != nil {
				return fmt.Errorf("error getting id flag: %w", err)
			}
			yes, err := cmd.Flags().GetBool(flagYes)
			if err != nil {
				return fmt.Errorf("error getting yes flag: %w", err)
			}

			s, err := loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("error deleting project: %w", err)
			}

			intent, err := s.RequestDelete(id)
			if errors.Is(err, store.ErrUnknownProject) {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Project %s not found, nothing to delete\n", id)
				return nil
			}
			if err != nil {
				return fmt.Errorf("error deleting project: %w", err)
			}
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), intent.Prompt) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}

			if err := s.Delete(cmd.Context(), intent.ID); err != nil {
				return fmt.Errorf("error deleting project: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Project %s deleted\n", intent.ID)
			return nil
		},
	}
	cmd.Flags().String(flagID, "", "Project ID")
	cmd.Flags().BoolP(flagYes, "y", false, "Skip the confirmation prompt")
	mustMarkRequired(cmd, flagID)
	return cmd
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show project counters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("error getting stats: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), s.Stats())
		},
	}
}

func mustMarkRequired(cmd *cobra.Command, flag string) {
	if err := cmd.MarkFlagRequired(flag); err != nil {
		panic(fmt.Errorf("failed to mark %s flag as required for %s command: %w", flag, cmd.Name(), err))
	}
}

func toOutput(s *store.ProjectStore, p models.Project) projectOutput {
	label, _ := s.Label(p.Status)
	return projectOutput{
		ID:          p.ID,
		Name:        p.Name,
		Client:      p.Client,
		Description: p.Description,
		Status:      p.Status.String(),
		StatusLabel: label,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

func printJSON(w io.Writer, v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(prettyJSON))
	return err
}

// confirm asks a yes/no question and reads the answer from in
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	_, _ = fmt.Fprintf(out, "%s [y/N] ", prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "o", "oui":
		return true
	}
	return false
}
