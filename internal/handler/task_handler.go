package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "uptask/internal/errors"
	"uptask/internal/model"
	"uptask/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTaskRequest represents a new task.
type CreateTaskRequest struct {
	Nombre       string `json:"nombre" validate:"required"`
	Descripcion  string `json:"descripcion" validate:"required"`
	FechaEntrega string `json:"fechaEntrega" example:"2025-01-01"`
	Prioridad    string `json:"prioridad" validate:"required,oneof=Baja Media Alta"`
	Proyecto     string `json:"proyecto" validate:"required"`
}

// UpdateTaskRequest carries the fields to change; empty fields are kept.
type UpdateTaskRequest struct {
	Nombre       string `json:"nombre"`
	Descripcion  string `json:"descripcion"`
	FechaEntrega string `json:"fechaEntrega" example:"2025-01-01"`
	Prioridad    string `json:"prioridad" validate:"omitempty,oneof=Baja Media Alta"`
}

// CreateTask godoc
// @Summary Create a task in one of the caller's projects
// @Tags tareas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task data"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tareas [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}

	var req CreateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if !model.IsValidID(req.Proyecto) {
		return serviceError(apperrors.ErrInvalidID)
	}
	due, err := parseDate(req.FechaEntrega)
	if err != nil {
		return err
	}

	task, err := h.taskService.Create(c.Request().Context(), user.ID, service.TaskInput{
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		Prioridad:    model.Priority(req.Prioridad),
		FechaEntrega: due,
		Proyecto:     req.Proyecto,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// GetTask godoc
// @Summary Get a task
// @Tags tareas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tareas/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	task, err := h.taskService.Get(c.Request().Context(), user.ID, id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask godoc
// @Summary Update a task
// @Tags tareas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to change"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tareas/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	due, err := parseDate(req.FechaEntrega)
	if err != nil {
		return err
	}

	task, err := h.taskService.Update(c.Request().Context(), user.ID, id, service.TaskInput{
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		Prioridad:    model.Priority(req.Prioridad),
		FechaEntrega: due,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tareas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tareas/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.taskService.Delete(c.Request().Context(), user.ID, id); err != nil {
		return serviceError(err)
	}
	return message(c, "task deleted")
}

// ToggleTaskState godoc
// @Summary Toggle a task between pending and done
// @Tags tareas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tareas/estado/{id} [post]
func (h *TaskHandler) ToggleTaskState(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	task, err := h.taskService.ToggleState(c.Request().Context(), user.ID, id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, task)
}
