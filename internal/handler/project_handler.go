package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "uptask/internal/errors"
	"uptask/internal/model"
	"uptask/internal/service"
)

// ProjectHandler handles project and collaborator endpoints.
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler creates a new project handler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProjectRequest represents a new project. Any creador in the body
// is ignored.
type CreateProjectRequest struct {
	Nombre       string `json:"nombre" validate:"required"`
	Descripcion  string `json:"descripcion" validate:"required"`
	FechaEntrega string `json:"fechaEntrega" example:"2025-01-01"`
	Cliente      string `json:"cliente" validate:"required"`
}

// EditProjectRequest carries the fields to change; empty fields are kept.
type EditProjectRequest struct {
	Nombre       string `json:"nombre"`
	Descripcion  string `json:"descripcion"`
	FechaEntrega string `json:"fechaEntrega" example:"2025-01-01"`
	Cliente      string `json:"cliente"`
}

// CollaboratorRequest identifies a user by email. Lookups are exact, so a
// malformed address is simply not found.
type CollaboratorRequest struct {
	Email string `json:"email" validate:"required"`
}

// RemoveCollaboratorRequest identifies the collaborator to remove.
type RemoveCollaboratorRequest struct {
	ColaboradorID string `json:"colaboradorId" validate:"required"`
}

func (r EditProjectRequest) input() (service.ProjectInput, error) {
	due, err := parseDate(r.FechaEntrega)
	if err != nil {
		return service.ProjectInput{}, err
	}
	return service.ProjectInput{
		Nombre:       r.Nombre,
		Descripcion:  r.Descripcion,
		Cliente:      r.Cliente,
		FechaEntrega: due,
	}, nil
}

// ListProjects godoc
// @Summary List the caller's projects
// @Tags proyectos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Project
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /proyectos [get]
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}

	projects, err := h.projectService.List(c.Request().Context(), user.ID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, projects)
}

// CreateProject godoc
// @Summary Create a project owned by the caller
// @Tags proyectos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProjectRequest true "Project data"
// @Success 200 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /proyectos [post]
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}

	var req CreateProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	input, err := EditProjectRequest(req).input()
	if err != nil {
		return err
	}

	project, err := h.projectService.Create(c.Request().Context(), user.ID, input)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, project)
}

// GetProject godoc
// @Summary Get a project with its tasks and collaborators
// @Tags proyectos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} model.ProjectDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /proyectos/{id} [get]
func (h *ProjectHandler) GetProject(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.projectService.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

// EditProject godoc
// @Summary Edit a project
// @Description Only non-empty fields are applied.
// @Tags proyectos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body EditProjectRequest true "Fields to change"
// @Success 200 {object} model.Project
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /proyectos/{id} [put]
func (h *ProjectHandler) EditProject(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req EditProjectRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	input, err := req.input()
	if err != nil {
		return err
	}

	project, err := h.projectService.Edit(c.Request().Context(), user.ID, id, input)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, project)
}

// DeleteProject godoc
// @Summary Delete a project and its tasks
// @Tags proyectos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /proyectos/{id} [delete]
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.projectService.Delete(c.Request().Context(), user.ID, id); err != nil {
		return serviceError(err)
	}
	return message(c, "project deleted")
}

// FindCollaborator godoc
// @Summary Look up a user by email
// @Tags colaboradores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CollaboratorRequest true "Email"
// @Success 200 {object} model.UserSummary
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /proyectos/colaboradores [post]
func (h *ProjectHandler) FindCollaborator(c echo.Context) error {
	if _, err := caller(c); err != nil {
		return err
	}

	var req CollaboratorRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.projectService.FindCollaborator(c.Request().Context(), req.Email)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// AddCollaborator godoc
// @Summary Add a collaborator to a project
// @Tags colaboradores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body CollaboratorRequest true "Collaborator email"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /proyectos/colaboradores/{id} [post]
func (h *ProjectHandler) AddCollaborator(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	// Project and creator are checked before the email; an unusable email
	// is reported as an unknown user.
	var req CollaboratorRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	if err := h.projectService.AddCollaborator(c.Request().Context(), user.ID, id, req.Email); err != nil {
		return serviceError(err)
	}
	return message(c, "collaborator added")
}

// RemoveCollaborator godoc
// @Summary Remove a collaborator from a project
// @Tags colaboradores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param request body RemoveCollaboratorRequest true "Collaborator id"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /proyectos/colaboradores/{id} [delete]
func (h *ProjectHandler) RemoveCollaborator(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req RemoveCollaboratorRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if !model.IsValidID(req.ColaboradorID) {
		return serviceError(apperrors.ErrInvalidID)
	}

	if err := h.projectService.RemoveCollaborator(c.Request().Context(), user.ID, id, req.ColaboradorID); err != nil {
		return serviceError(err)
	}
	return message(c, "collaborator removed")
}
