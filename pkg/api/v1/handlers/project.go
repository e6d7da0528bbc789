package handlers

import (
	"context"
	"errors"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/devboard-esn/devboard/internal/logger"
	"github.com/devboard-esn/devboard/internal/services"
	"github.com/devboard-esn/devboard/pkg/models"
)

// ProjectService is the set of project operations the handlers depend on
type ProjectService interface {
	Create(ctx context.Context, draft models.Draft) (models.Project, error)
	Get(ctx context.Context, id string) (models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	Delete(ctx context.Context, id string) error
}

// ProjectHandler handles HTTP requests for projects
type ProjectHandler struct {
	projectService ProjectService
}

// NewProjectHandler creates a new instance of ProjectHandler
func NewProjectHandler(projectService ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// ListProjects returns every project, newest first. An empty collection is
// encoded as [] rather than null.
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.projectService.List(c.UserContext())
	if err != nil {
		logger.Errorf("%s: %v", ErrMsgProjListFailed, err)
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgProjListFailed)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	return c.JSON(projects)
}

// GetProject returns a single project by id
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgProjIDRequired)
	}

	project, err := h.projectService.Get(c.UserContext(), id)
	if errors.Is(err, services.ErrProjectNotFound) {
		return respondWithError(c, fiber.StatusNotFound, ErrMsgProjNotFound)
	}
	if err != nil {
		logger.Errorf("%s: %v", ErrMsgProjGetFailed, err)
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgProjGetFailed)
	}
	return c.JSON(project)
}

// CreateProject persists a new project from a draft body
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var draft models.Draft
	if err := c.BodyParser(&draft); err != nil {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}

	project, err := h.projectService.Create(c.UserContext(), draft)
	if errors.Is(err, services.ErrInvalidProject) {
		return respondWithError(c, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		logger.Errorf("%s: %v", ErrMsgProjCreateFailed, err)
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgProjCreateFailed)
	}

	logger.InfoWithFields("project created", map[string]interface{}{
		"id":     project.ID,
		"name":   project.Name,
		"client": project.Client,
	})
	return c.Status(fiber.StatusCreated).JSON(project)
}

// DeleteProject removes a project by id
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return respondWithError(c, fiber.StatusBadRequest, ErrMsgProjIDRequired)
	}

	err := h.projectService.Delete(c.UserContext(), id)
	if errors.Is(err, services.ErrProjectNotFound) {
		return respondWithError(c, fiber.StatusNotFound, ErrMsgProjNotFound)
	}
	if err != nil {
		logger.Errorf("%s: %v", ErrMsgProjDeleteFailed, err)
		return respondWithError(c, fiber.StatusInternalServerError, ErrMsgProjDeleteFailed)
	}

	logger.InfoWithFields("project deleted", map[string]interface{}{"id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
