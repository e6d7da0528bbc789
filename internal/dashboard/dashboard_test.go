package dashboard

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	fiber "github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devboard-esn/devboard/internal/form"
	"github.com/devboard-esn/devboard/internal/store"
	"github.com/devboard-esn/devboard/pkg/api/v1/client"
	"github.com/devboard-esn/devboard/pkg/models"
)

// memClient is a minimal in-memory project API
type memClient struct {
	mu       sync.Mutex
	projects []models.Project
	next     int
	created  []models.Draft
	deleted  []string
}

var _ client.Client = &memClient{}

func (c *memClient) HealthCheck(context.Context) (map[string]string, error) {
	return map[string]string{"status": "ok"}, nil
}

func (c *memClient) ListProjects(context.Context) ([]models.Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Project(nil), c.projects...), nil
}

func (c *memClient) GetProject(context.Context, string) (models.Project, error) {
	return models.Project{}, fmt.Errorf("%w: %w", client.ErrServerFailure, fiber.NewError(http.StatusNotFound))
}

func (c *memClient) CreateProject(_ context.Context, d models.Draft) (models.Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	c.created = append(c.created, d)
	p := models.Project{
		ID:        fmt.Sprintf("p%d", c.next),
		Name:      d.Name,
		Client:    d.Client,
		Status:    d.Status,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	c.projects = append([]models.Project{p}, c.projects...)
	return p, nil
}

func (c *memClient) DeleteProject(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, id)
	for i, p := range c.projects {
		if p.ID == id {
			c.projects = append(c.projects[:i], c.projects[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %w", client.ErrServerFailure, fiber.NewError(http.StatusNotFound))
}

func newTestModel(t *testing.T, projects ...models.Project) (Model, *memClient) {
	t.Helper()
	c := &memClient{projects: projects}
	s := store.NewProjectStore(c, nil)
	require.NoError(t, s.Init(context.Background()))
	return NewModel(s, form.NewController(s)), c
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds a message and drops the returned command
func press(m Model, msg tea.Msg) Model {
	updated, _ := m.Update(msg)
	return updated.(Model)
}

// send feeds a message, runs the returned store command and feeds its
// result back.
func send(m Model, msg tea.Msg) Model {
	updated, cmd := m.Update(msg)
	m = updated.(Model)
	if cmd == nil {
		return m
	}
	updated, _ = m.Update(cmd())
	return updated.(Model)
}

func typeText(m Model, text string) Model {
	for _, r := range text {
		m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestNewModel(t *testing.T) {
	model, _ := newTestModel(t)
	assert.False(t, model.quitting)
	assert.False(t, model.form.Visible())
	assert.NotNil(t, model.Init())
}

func TestModel_Update_QuitKey(t *testing.T) {
	model, _ := newTestModel(t)
	updated, cmd := model.Update(key("q"))
	assert.True(t, updated.(Model).quitting)
	assert.NotNil(t, cmd)
	assert.Empty(t, updated.(Model).View())
}

func TestModel_Update_RefreshKey(t *testing.T) {
	model, c := newTestModel(t)
	c.mu.Lock()
	c.projects = []models.Project{{ID: "x", Name: "Late", Client: "Acme", Status: models.StatusDraft}}
	c.mu.Unlock()

	model = send(model, key("r"))
	assert.Equal(t, []string{"x"}, model.rowIDs)
}

func TestModel_CreateFromForm(t *testing.T) {
	model, c := newTestModel(t)

	model = press(model, key("n"))
	require.True(t, model.form.Visible())

	model = typeText(model, "Site Refonte")
	model = press(model, key("tab"))
	model = typeText(model, "Acme")
	model = press(model, key("tab"))
	model = press(model, key("tab"))
	model = press(model, key("right"))
	assert.Equal(t, models.StatusInProgress, model.form.Draft().Status)

	model = send(model, key("enter"))
	require.Len(t, c.created, 1)
	assert.Equal(t, models.Draft{Name: "Site Refonte", Client: "Acme", Status: models.StatusInProgress}, c.created[0])

	assert.False(t, model.form.Visible())
	assert.Equal(t, models.NewDraft(), model.form.Draft())
	assert.Equal(t, []string{"p1"}, model.rowIDs)
	assert.Contains(t, model.View(), "Site Refonte")
	assert.Contains(t, model.View(), "En cours")
}

func TestModel_EnterIgnoredWhileSubmitting(t *testing.T) {
	model, c := newTestModel(t)

	model = press(model, key("n"))
	model = typeText(model, "Site Refonte")
	model = press(model, key("tab"))
	model = typeText(model, "Acme")

	updated, submit := model.Update(key("enter"))
	model = updated.(Model)
	require.NotNil(t, submit)
	assert.True(t, model.submitting)

	updated, again := model.Update(key("enter"))
	model = updated.(Model)
	assert.Nil(t, again, "a second enter must not submit the same draft")

	updated, _ = model.Update(submit())
	model = updated.(Model)
	assert.False(t, model.submitting)
	assert.Len(t, c.created, 1)
	assert.Equal(t, []string{"p1"}, model.rowIDs)
}

func TestModel_SubmitInvalidShowsFields(t *testing.T) {
	model, c := newTestModel(t)

	model = press(model, key("n"))
	model = send(model, key("enter"))
	assert.Empty(t, c.created)
	assert.True(t, model.form.Visible())
	assert.Contains(t, model.View(), "Champs requis: client, name")
}

func TestModel_EscKeepsDraft(t *testing.T) {
	model, _ := newTestModel(t)

	model = press(model, key("n"))
	model = typeText(model, "Site")
	model = press(model, key("esc"))
	assert.False(t, model.form.Visible())

	model = press(model, key("n"))
	assert.Equal(t, "Site", model.form.Draft().Name)
	assert.Equal(t, "Site", model.inputs[inputName].Value())
}

func TestModel_DeleteWithConfirmation(t *testing.T) {
	model, c := newTestModel(t,
		models.Project{ID: "a", Name: "Alpha", Client: "Acme", Status: models.StatusDraft},
		models.Project{ID: "b", Name: "Beta", Client: "Globex", Status: models.StatusDelivered},
	)

	model = press(model, key("d"))
	require.NotNil(t, model.confirm)
	assert.Equal(t, "a", model.confirm.ID)
	assert.Contains(t, model.View(), store.DeletePrompt)

	// Declining leaves everything in place
	model = press(model, key("n"))
	assert.Nil(t, model.confirm)
	assert.Empty(t, c.deleted)

	model = press(model, key("d"))
	model = send(model, key("y"))
	assert.Equal(t, []string{"a"}, c.deleted)
	assert.Equal(t, []string{"b"}, model.rowIDs)
}

func TestModel_View_Stats(t *testing.T) {
	model, _ := newTestModel(t,
		models.Project{ID: "a", Name: "Alpha", Client: "Acme", Status: models.StatusInProgress},
		models.Project{ID: "b", Name: "Beta", Client: "Globex", Status: "on_hold"},
	)

	view := model.View()
	assert.Contains(t, view, "DevBoard")
	assert.Contains(t, view, "Total")
	assert.Contains(t, view, "? on_hold")
	assert.Contains(t, view, "[q]")
}

func TestModel_View_Empty(t *testing.T) {
	model, _ := newTestModel(t)
	assert.Contains(t, model.View(), "Aucun projet")
}
