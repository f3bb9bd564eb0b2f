package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "uptask/internal/errors"
	"uptask/internal/logging"
	"uptask/internal/model"
	"uptask/internal/repository"
)

// ProjectInput carries the client-editable project fields. Zero values mean
// "not provided".
type ProjectInput struct {
	Nombre       string
	Descripcion  string
	Cliente      string
	FechaEntrega *time.Time
}

// ProjectService handles projects and their collaborators. Every method
// takes the authenticated caller's id; identifiers are validated by the
// HTTP layer.
type ProjectService interface {
	List(ctx context.Context, callerID string) ([]model.Project, error)
	Create(ctx context.Context, callerID string, input ProjectInput) (*model.Project, error)
	Get(ctx context.Context, callerID, id string) (*model.ProjectDetail, error)
	Edit(ctx context.Context, callerID, id string, input ProjectInput) (*model.Project, error)
	Delete(ctx context.Context, callerID, id string) error
	FindCollaborator(ctx context.Context, email string) (*model.UserSummary, error)
	AddCollaborator(ctx context.Context, callerID, projectID, email string) error
	RemoveCollaborator(ctx context.Context, callerID, projectID, collaboratorID string) error
}

type projectService struct {
	projects repository.ProjectRepository
	tasks    repository.TaskRepository
	users    repository.UserRepository
	now      func() time.Time
}

// NewProjectService creates a new project service.
func NewProjectService(projects repository.ProjectRepository, tasks repository.TaskRepository, users repository.UserRepository) ProjectService {
	return &projectService{
		projects: projects,
		tasks:    tasks,
		users:    users,
		now:      time.Now,
	}
}

func (s *projectService) List(ctx context.Context, callerID string) ([]model.Project, error) {
	projects, err := s.projects.ListByCreator(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Create stores a new project owned by the caller. A client-supplied
// creator never reaches this layer.
func (s *projectService) Create(ctx context.Context, callerID string, input ProjectInput) (*model.Project, error) {
	project := &model.Project{
		Nombre:        input.Nombre,
		Descripcion:   input.Descripcion,
		Cliente:       input.Cliente,
		FechaEntrega:  s.now().UTC(),
		Creador:       callerID,
		Colaboradores: []string{},
	}
	if input.FechaEntrega != nil {
		project.FechaEntrega = input.FechaEntrega.UTC()
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	logging.FromContext(ctx).Info("project created",
		zap.String("project_id", project.ID),
		zap.String("creador", callerID),
	)
	return project, nil
}

// Get returns the project with collaborator summaries, in collaborator
// order, and its tasks. Only the creator may read it.
func (s *projectService) Get(ctx context.Context, callerID, id string) (*model.ProjectDetail, error) {
	project, err := s.ownedProject(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	summaries, err := s.users.FindSummaries(ctx, project.Colaboradores)
	if err != nil {
		return nil, fmt.Errorf("load collaborators: %w", err)
	}
	tasks, err := s.tasks.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}

	return &model.ProjectDetail{
		Project:       *project,
		Colaboradores: orderSummaries(project.Colaboradores, summaries),
		Tareas:        tasks,
	}, nil
}

// Edit applies the non-empty fields of input; empty values keep the
// stored ones.
func (s *projectService) Edit(ctx context.Context, callerID, id string, input ProjectInput) (*model.Project, error) {
	project, err := s.ownedProject(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	if input.Nombre != "" {
		project.Nombre = input.Nombre
	}
	if input.Descripcion != "" {
		project.Descripcion = input.Descripcion
	}
	if input.Cliente != "" {
		project.Cliente = input.Cliente
	}
	if input.FechaEntrega != nil && !input.FechaEntrega.IsZero() {
		project.FechaEntrega = input.FechaEntrega.UTC()
	}

	if err := s.save(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project and its tasks. Only the creator may delete.
func (s *projectService) Delete(ctx context.Context, callerID, id string) error {
	project, err := s.ownedProject(ctx, callerID, id)
	if err != nil {
		return err
	}

	// Tasks go first so a failure never leaves tasks without a project.
	if err := s.tasks.DeleteByProject(ctx, project.ID); err != nil {
		return fmt.Errorf("delete project tasks: %w", err)
	}
	if err := s.projects.Delete(ctx, project.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}

	logging.FromContext(ctx).Info("project deleted", zap.String("project_id", project.ID))
	return nil
}

// FindCollaborator looks a user up by exact email and returns the redacted
// view.
func (s *projectService) FindCollaborator(ctx context.Context, email string) (*model.UserSummary, error) {
	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	summary := user.Summary()
	return &summary, nil
}

func (s *projectService) AddCollaborator(ctx context.Context, callerID, projectID, email string) error {
	project, err := s.ownedProject(ctx, callerID, projectID)
	if err != nil {
		return err
	}

	user, err := s.userByEmail(ctx, email)
	if err != nil {
		return err
	}
	if project.IsCreator(user.ID) {
		return apperrors.ErrCreatorAsCollaborator
	}
	if !project.AddCollaborator(user.ID) {
		return apperrors.ErrAlreadyCollaborator
	}

	return s.save(ctx, project)
}

// RemoveCollaborator drops collaboratorID from the project. Removing a
// non-member succeeds without writing.
func (s *projectService) RemoveCollaborator(ctx context.Context, callerID, projectID, collaboratorID string) error {
	project, err := s.ownedProject(ctx, callerID, projectID)
	if err != nil {
		return err
	}
	if !project.RemoveCollaborator(collaboratorID) {
		return nil
	}
	return s.save(ctx, project)
}

// ownedProject loads a project and checks the caller created it.
func (s *projectService) ownedProject(ctx context.Context, callerID, id string) (*model.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	if !project.IsCreator(callerID) {
		return nil, apperrors.ErrNotCreator
	}
	return project, nil
}

func (s *projectService) save(ctx context.Context, project *model.Project) error {
	if err := s.projects.Update(ctx, project); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrProjectNotFound
		}
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

func (s *projectService) userByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// orderSummaries returns summaries in the order of ids, skipping users that
// no longer exist.
func orderSummaries(ids []string, summaries []model.UserSummary) []model.UserSummary {
	byID := make(map[string]model.UserSummary, len(summaries))
	for _, s := range summaries {
		byID[s.ID] = s
	}
	ordered := make([]model.UserSummary, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered
}
