// Package form holds the state of the new-project form.
package form

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/devboard-esn/devboard/internal/logger"
	"github.com/devboard-esn/devboard/pkg/models"
)

// Creator persists a validated draft. *store.ProjectStore implements it.
type Creator interface {
	Create(ctx context.Context, draft models.Draft) (models.Project, error)
}

// ValidationError lists the draft fields that prevent a submit
type ValidationError struct {
	Fields []string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid draft: %s", strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Controller is the new-project form: a draft and a visibility flag.
//
// Hiding the form keeps the draft. A submit that reaches the API always
// resets the draft and hides the form, whether the create succeeded or not.
type Controller struct {
	creator Creator

	mu      sync.Mutex
	draft   models.Draft
	visible bool
}

// NewController returns a hidden form with an empty draft
func NewController(creator Creator) *Controller {
	return &Controller{
		creator: creator,
		draft:   models.NewDraft(),
	}
}

// ToggleVisible shows or hides the form and returns the new visibility
func (c *Controller) ToggleVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visible = !c.visible
	return c.visible
}

// Visible reports whether the form is shown
func (c *Controller) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}

// Draft returns the current draft
func (c *Controller) Draft() models.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// UpdateField sets one field of the draft. The status value must be one
// of the known statuses.
func (c *Controller) UpdateField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case models.FieldName:
		c.draft.Name = value
	case models.FieldClient:
		c.draft.Client = value
	case models.FieldDescription:
		c.draft.Description = value
	case models.FieldStatus:
		status, err := models.ParseProjectStatus(value)
		if err != nil {
			return err
		}
		c.draft.Status = status
	default:
		return fmt.Errorf("unknown field: %s", field)
	}
	return nil
}

// Validate checks the current draft without submitting it
func (c *Controller) Validate() error {
	return validate(c.Draft())
}

func validate(draft models.Draft) error {
	if err := draft.Validate(); err != nil {
		return &ValidationError{Fields: models.InvalidFields(err), Err: err}
	}
	return nil
}

// Submit validates the draft and hands it to the creator. An invalid draft
// is returned as a *ValidationError and leaves the form untouched. Otherwise
// the form is reset and hidden once Create returns, and its error, if any,
// is returned.
func (c *Controller) Submit(ctx context.Context) (models.Project, error) {
	draft := c.Draft()
	if err := validate(draft); err != nil {
		return models.Project{}, err
	}

	project, err := c.creator.Create(ctx, draft)
	if err != nil {
		logger.WarnWithFields("project form submit failed, draft discarded", map[string]interface{}{
			"name":  draft.Name,
			"error": err.Error(),
		})
	}

	c.mu.Lock()
	c.draft = models.NewDraft()
	c.visible = false
	c.mu.Unlock()

	return project, err
}
