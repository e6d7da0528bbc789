package store

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/devboard-esn/devboard/pkg/api/v1/client"
	"github.com/devboard-esn/devboard/pkg/models"
)

var _ client.Client = &fakeClient{}

// fakeClient is an in-memory project API. Errors set on it are returned
// by the matching call instead of touching the data.
type fakeClient struct {
	mu       sync.Mutex
	projects []models.Project
	nextID   int
	now      time.Time

	listErr   error
	createErr error
	deleteErr error

	// listHook, when set, replaces ListProjects; call counts from 1
	listHook func(call int) ([]models.Project, error)

	listCalls   int
	createCalls int
	deleteCalls int
}

func newFakeClient(projects ...models.Project) *fakeClient {
	return &fakeClient{
		projects: projects,
		now:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func serverError(code int) error {
	return fmt.Errorf("%w: %w", client.ErrServerFailure, fiber.NewError(code, http.StatusText(code)))
}

func (f *fakeClient) HealthCheck(context.Context) (map[string]string, error) {
	return map[string]string{"status": "ok"}, nil
}

func (f *fakeClient) ListProjects(context.Context) ([]models.Project, error) {
	f.mu.Lock()
	f.listCalls++
	call := f.listCalls
	hook := f.listHook
	f.mu.Unlock()

	if hook != nil {
		return hook(call)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Project, len(f.projects))
	copy(out, f.projects)
	return out, nil
}

func (f *fakeClient) GetProject(_ context.Context, id string) (models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Project{}, serverError(http.StatusNotFound)
}

func (f *fakeClient) CreateProject(_ context.Context, draft models.Draft) (models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return models.Project{}, f.createErr
	}
	f.nextID++
	project := models.Project{
		ID:          fmt.Sprintf("p%d", f.nextID),
		Name:        draft.Name,
		Client:      draft.Client,
		Description: draft.Description,
		Status:      draft.WithDefaults().Status,
		CreatedAt:   f.now,
	}
	f.projects = append([]models.Project{project}, f.projects...)
	return project, nil
}

func (f *fakeClient) DeleteProject(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, p := range f.projects {
		if p.ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return serverError(http.StatusNotFound)
}

func (f *fakeClient) calls() (list, create, del int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.createCalls, f.deleteCalls
}
