package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "uptask/internal/errors"
	"uptask/internal/model"
	"uptask/internal/repository"
)

// TaskInput carries the client-editable task fields.
type TaskInput struct {
	Nombre       string
	Descripcion  string
	Prioridad    model.Priority
	FechaEntrega *time.Time
	Proyecto     string
}

// TaskService manages tasks. Writes are reserved to the project creator;
// reads and state toggles are open to collaborators as well.
type TaskService interface {
	Create(ctx context.Context, callerID string, input TaskInput) (*model.Task, error)
	Get(ctx context.Context, callerID, id string) (*model.Task, error)
	Update(ctx context.Context, callerID, id string, input TaskInput) (*model.Task, error)
	Delete(ctx context.Context, callerID, id string) error
	ToggleState(ctx context.Context, callerID, id string) (*model.Task, error)
}

type taskService struct {
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	now      func() time.Time
}

// NewTaskService creates a new task service.
func NewTaskService(tasks repository.TaskRepository, projects repository.ProjectRepository) TaskService {
	return &taskService{tasks: tasks, projects: projects, now: time.Now}
}

func (s *taskService) Create(ctx context.Context, callerID string, input TaskInput) (*model.Task, error) {
	project, err := s.project(ctx, input.Proyecto)
	if err != nil {
		return nil, err
	}
	if !project.IsCreator(callerID) {
		return nil, apperrors.ErrForbidden
	}

	task := &model.Task{
		Nombre:       input.Nombre,
		Descripcion:  input.Descripcion,
		Prioridad:    input.Prioridad,
		FechaEntrega: s.now().UTC(),
		Proyecto:     project.ID,
	}
	if input.FechaEntrega != nil {
		task.FechaEntrega = input.FechaEntrega.UTC()
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *taskService) Get(ctx context.Context, callerID, id string) (*model.Task, error) {
	return s.authorizedTask(ctx, id, callerID, false)
}

// Update applies the non-empty fields of input. The owning project never
// changes.
func (s *taskService) Update(ctx context.Context, callerID, id string, input TaskInput) (*model.Task, error) {
	task, err := s.authorizedTask(ctx, id, callerID, true)
	if err != nil {
		return nil, err
	}

	if input.Nombre != "" {
		task.Nombre = input.Nombre
	}
	if input.Descripcion != "" {
		task.Descripcion = input.Descripcion
	}
	if input.Prioridad != "" {
		task.Prioridad = input.Prioridad
	}
	if input.FechaEntrega != nil && !input.FechaEntrega.IsZero() {
		task.FechaEntrega = input.FechaEntrega.UTC()
	}

	if err := s.save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, callerID, id string) error {
	task, err := s.authorizedTask(ctx, id, callerID, true)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, task.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// ToggleState flips the completion flag.
func (s *taskService) ToggleState(ctx context.Context, callerID, id string) (*model.Task, error) {
	task, err := s.authorizedTask(ctx, id, callerID, false)
	if err != nil {
		return nil, err
	}
	task.Estado = !task.Estado
	if err := s.save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// authorizedTask loads a task and checks the caller's access to its project:
// creator only when write is set, creator or collaborator otherwise.
func (s *taskService) authorizedTask(ctx context.Context, id, callerID string, write bool) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	project, err := s.project(ctx, task.Proyecto)
	if err != nil {
		return nil, err
	}

	allowed := project.HasAccess(callerID)
	if write {
		allowed = project.IsCreator(callerID)
	}
	if !allowed {
		return nil, apperrors.ErrForbidden
	}
	return task, nil
}

func (s *taskService) project(ctx context.Context, id string) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return project, nil
}

func (s *taskService) save(ctx context.Context, task *model.Task) error {
	if err := s.tasks.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrTaskNotFound
		}
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}
