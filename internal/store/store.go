// Package store keeps the dashboard's local copy of the project collection
// in sync with the API.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/devboard-esn/devboard/internal/logger"
	"github.com/devboard-esn/devboard/pkg/api/v1/client"
	"github.com/devboard-esn/devboard/pkg/models"
)

// DeletePrompt is the confirmation question shown before a delete
const DeletePrompt = "Supprimer ce projet ?"

// ErrUnknownProject is returned by RequestDelete for an id that is not in
// the local collection.
var ErrUnknownProject = errors.New("unknown project")

// Stats are the counters shown above the project list
type Stats struct {
	Total      int `json:"total"`
	InProgress int `json:"in_progress"`
	Delivered  int `json:"delivered"`
}

// DeleteIntent describes a pending delete awaiting user confirmation
type DeleteIntent struct {
	ID     string
	Name   string
	Prompt string
}

// ProjectStore is the local copy of the remote project collection.
//
// The collection is only ever replaced wholesale by a successful Refresh.
// Create and Delete never touch it directly: they call the API and then
// refresh. When several refreshes overlap, the one that completes last
// determines the collection. A ProjectStore is safe for concurrent use.
type ProjectStore struct {
	client client.Client
	labels models.StatusLabels

	mu       sync.RWMutex
	projects []models.Project
	loading  bool
	lastErr  error
}

// NewProjectStore creates a store in the loading state. Call Init to
// perform the initial fetch. A nil labels mapping uses the defaults.
func NewProjectStore(c client.Client, labels models.StatusLabels) *ProjectStore {
	if labels == nil {
		labels = models.DefaultStatusLabels()
	}
	return &ProjectStore{
		client:   c,
		labels:   labels.Clone(),
		projects: []models.Project{},
		loading:  true,
	}
}

// Init performs the initial refresh
func (s *ProjectStore) Init(ctx context.Context) error {
	return s.Refresh(ctx)
}

// Refresh replaces the collection with the API's current contents. On
// failure the previous collection is kept. Either way loading is cleared.
func (s *ProjectStore) Refresh(ctx context.Context) error {
	projects, err := s.client.ListProjects(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		logger.ErrorWithFields("failed to refresh projects", map[string]interface{}{
			"kind":  client.Kind(err),
			"error": err.Error(),
		})
		return fmt.Errorf("refresh projects: %w", err)
	}

	if projects == nil {
		projects = []models.Project{}
	}
	s.checkIntegrity(projects)
	s.projects = projects
	s.lastErr = nil
	return nil
}

// checkIntegrity reports statuses without a label and duplicate ids.
// Offending entries are kept.
func (s *ProjectStore) checkIntegrity(projects []models.Project) {
	seen := make(map[string]struct{}, len(projects))
	for _, p := range projects {
		if _, ok := s.labels[p.Status]; !ok {
			logger.ErrorWithFields("project has unmapped status", map[string]interface{}{
				"id":     p.ID,
				"status": p.Status.String(),
			})
		}
		if _, dup := seen[p.ID]; dup {
			logger.ErrorWithFields("duplicate project id in collection", map[string]interface{}{
				"id": p.ID,
			})
		}
		seen[p.ID] = struct{}{}
	}
}

// Create sends the draft to the API and refreshes on success. The draft is
// not re-validated. A failed refresh after a successful create is logged
// and kept in LastError but does not fail the create.
func (s *ProjectStore) Create(ctx context.Context, draft models.Draft) (models.Project, error) {
	project, err := s.client.CreateProject(ctx, draft)
	if err != nil {
		s.setLastErr(err)
		logger.ErrorWithFields("failed to create project", map[string]interface{}{
			"name":  draft.Name,
			"kind":  client.Kind(err),
			"error": err.Error(),
		})
		return models.Project{}, fmt.Errorf("create project: %w", err)
	}

	logger.InfoWithFields("project created", map[string]interface{}{
		"id":   project.ID,
		"name": project.Name,
	})
	_ = s.Refresh(ctx)
	return project, nil
}

// Delete removes the project from the API and refreshes. A 404 means the
// project is already gone: it is logged as a warning and the store still
// refreshes.
func (s *ProjectStore) Delete(ctx context.Context, id string) error {
	err := s.client.DeleteProject(ctx, id)
	switch {
	case err == nil:
		logger.InfoWithFields("project deleted", map[string]interface{}{"id": id})
	case client.IsNotFound(err):
		logger.WarnWithFields("project already deleted", map[string]interface{}{"id": id})
	default:
		s.setLastErr(err)
		logger.ErrorWithFields("failed to delete project", map[string]interface{}{
			"id":    id,
			"kind":  client.Kind(err),
			"error": err.Error(),
		})
		return fmt.Errorf("delete project %s: %w", id, err)
	}

	_ = s.Refresh(ctx)
	return nil
}

// RequestDelete starts the two-step delete of a project in the local
// collection. The caller confirms the returned intent with the user and
// then calls Delete with its ID.
func (s *ProjectStore) RequestDelete(id string) (DeleteIntent, error) {
	project, ok := s.Lookup(id)
	if !ok {
		return DeleteIntent{}, fmt.Errorf("%w: %s", ErrUnknownProject, id)
	}
	return DeleteIntent{
		ID:     project.ID,
		Name:   project.Name,
		Prompt: fmt.Sprintf("%s %s (%s)", DeletePrompt, project.Name, project.Client),
	}, nil
}

// Stats counts the current collection
func (s *ProjectStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeStats(s.projects)
}

// ComputeStats counts projects by status. It depends only on the multiset
// of statuses, not on their order.
func ComputeStats(projects []models.Project) Stats {
	stats := Stats{Total: len(projects)}
	for _, p := range projects {
		switch p.Status {
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusDelivered:
			stats.Delivered++
		}
	}
	return stats
}

// Projects returns a snapshot of the collection in API order
func (s *ProjectStore) Projects() []models.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

// Lookup returns the project with the given id from the local collection
func (s *ProjectStore) Lookup(id string) (models.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return models.Project{}, false
}

// Loading reports whether the initial fetch is still pending
func (s *ProjectStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LastError returns the error of the last failed operation, cleared by
// the next successful refresh.
func (s *ProjectStore) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Label returns the display label of a status, or the fallback label and
// false if the status is unmapped.
func (s *ProjectStore) Label(status models.ProjectStatus) (string, bool) {
	return s.labels.Label(status)
}

// Labels returns a copy of the status label mapping
func (s *ProjectStore) Labels() models.StatusLabels {
	return s.labels.Clone()
}

func (s *ProjectStore) setLastErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}
