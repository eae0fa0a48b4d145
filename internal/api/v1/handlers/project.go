package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/celestiaorg/intakeflow/internal/types"
)

// ProjectHandler handles HTTP requests for project operations
type ProjectHandler struct {
	*APIHandler
}

// NewProjectHandler creates a new ProjectHandler instance
func NewProjectHandler(api *APIHandler) *ProjectHandler {
	return &ProjectHandler{
		APIHandler: api,
	}
}

// ListProjects godoc
// @Summary List projects
// @Description Returns every project ordered by portfolio, then start date (undated last)
// @Tags projects
// @Produce json
// @Success 200 {array} models.Project
// @Router /api/v1/projects [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	projects, err := h.project.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(projects)
}

// GetProject godoc
// @Summary Get a project
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} models.Project
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/projects/{id} [get]
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return err
	}

	project, err := h.project.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(project)
}

// CreateProject godoc
// @Summary Create a project
// @Description Creates a project with status Initiated
// @Tags projects
// @Accept json
// @Produce json
// @Param request body types.ProjectRequest true "Project"
// @Success 201 {object} models.Project
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {string} string
// @Failure 409 {object} types.ErrorResponse
// @Router /api/v1/projects [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	var req types.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}

	project, err := h.project.Create(c.UserContext(), req.Input())
	if err != nil {
		return err
	}

	c.Location(fmt.Sprintf("%s/%d", strings.TrimSuffix(c.Path(), "/"), project.ID))
	return c.Status(fiber.StatusCreated).JSON(project)
}

// UpdateProject godoc
// @Summary Replace a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body types.ProjectRequest true "Project"
// @Success 200 {object} models.Project
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {string} string
// @Failure 404 {object} types.ErrorResponse
// @Failure 409 {object} types.ErrorResponse
// @Router /api/v1/projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return err
	}

	var req types.ProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}

	project, err := h.project.Update(c.UserContext(), id, req.Input())
	if err != nil {
		return err
	}
	return c.JSON(project)
}

// UpdateProjectStatus godoc
// @Summary Change a project's status
// @Tags projects
// @Accept json
// @Produce json
// @Param id path int true "Project ID"
// @Param request body types.StatusRequest true "Status"
// @Success 200 {object} models.Project
// @Failure 400 {object} types.ErrorResponse
// @Failure 401 {string} string
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/projects/{id}/status [put]
func (h *ProjectHandler) UpdateProjectStatus(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return err
	}

	var req types.StatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidReqBody)
	}

	project, err := h.project.UpdateStatus(c.UserContext(), id, req.Input())
	if err != nil {
		return err
	}
	return c.JSON(project)
}

// DeleteProject godoc
// @Summary Delete a project
// @Tags projects
// @Param id path int true "Project ID"
// @Success 204
// @Failure 401 {string} string
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	id, err := projectID(c)
	if err != nil {
		return err
	}

	if err := h.project.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HealthCheck reports that the server is up
func HealthCheck(c *fiber.Ctx) error {
	return c.JSON(types.HealthResponse{Status: "healthy"})
}

func projectID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, ErrMsgInvalidProjectID)
	}
	return uint(id), nil
}
