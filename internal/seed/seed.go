// Package seed loads demo accounts, projects and tasks into a store.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"uptask/internal/model"
	"uptask/internal/repository"
)

// Data is the seed file layout. Users are referenced by email.
type Data struct {
	Usuarios  []User    `json:"usuarios" validate:"dive"`
	Proyectos []Project `json:"proyectos" validate:"dive"`
}

// User is a confirmed demo account.
type User struct {
	Nombre   string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Project is a demo project owned by Creador.
type Project struct {
	Nombre        string   `json:"nombre" validate:"required"`
	Descripcion   string   `json:"descripcion" validate:"required"`
	Cliente       string   `json:"cliente" validate:"required"`
	FechaEntrega  string   `json:"fechaEntrega"`
	Creador       string   `json:"creador" validate:"required,email"`
	Colaboradores []string `json:"colaboradores" validate:"dive,email"`
	Tareas        []Task   `json:"tareas" validate:"dive"`
}

// Task is a demo task of its enclosing project.
type Task struct {
	Nombre       string `json:"nombre" validate:"required"`
	Descripcion  string `json:"descripcion" validate:"required"`
	Prioridad    string `json:"prioridad" validate:"required,oneof=Baja Media Alta"`
	FechaEntrega string `json:"fechaEntrega"`
	Estado       bool   `json:"estado"`
}

// Result counts what a run wrote.
type Result struct {
	Users    int
	Projects int
	Tasks    int
	Skipped  int
}

// Decode reads and validates a seed file.
func Decode(r io.Reader) (*Data, error) {
	var data Data
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode seed data: %w", err)
	}
	if err := validator.New().Struct(&data); err != nil {
		return nil, fmt.Errorf("validate seed data: %w", err)
	}
	return &data, nil
}

// Seeder writes seed data through the repositories.
type Seeder struct {
	repos repository.Repositories
	log   *zap.Logger
	now   func() time.Time
}

// New creates a seeder.
func New(repos repository.Repositories, log *zap.Logger) *Seeder {
	return &Seeder{repos: repos, log: log, now: time.Now}
}

// Run creates missing users, then projects with their tasks. Users are
// matched by email and projects by creator and name, so running twice
// writes nothing the second time.
func (s *Seeder) Run(ctx context.Context, data *Data) (Result, error) {
	var res Result
	ids := make(map[string]string, len(data.Usuarios))

	for _, u := range data.Usuarios {
		id, created, err := s.ensureUser(ctx, u)
		if err != nil {
			return res, err
		}
		ids[u.Email] = id
		if created {
			res.Users++
		} else {
			res.Skipped++
		}
	}

	for _, p := range data.Proyectos {
		created, tasks, err := s.ensureProject(ctx, p, ids)
		if err != nil {
			return res, err
		}
		if created {
			res.Projects++
			res.Tasks += tasks
		} else {
			res.Skipped++
		}
	}
	return res, nil
}

func (s *Seeder) ensureUser(ctx context.Context, u User) (string, bool, error) {
	existing, err := s.repos.Users.FindByEmail(ctx, u.Email)
	if err == nil {
		s.log.Info("user exists, skipping", zap.String("email", u.Email))
		return existing.ID, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return "", false, fmt.Errorf("find user %s: %w", u.Email, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", false, fmt.Errorf("hash password: %w", err)
	}
	user := &model.User{
		ID:         model.NewID(),
		Nombre:     u.Nombre,
		Email:      u.Email,
		Password:   string(hash),
		Confirmado: true,
	}
	if err := s.repos.Users.Create(ctx, user); err != nil {
		return "", false, fmt.Errorf("create user %s: %w", u.Email, err)
	}
	s.log.Info("user created", zap.String("email", u.Email), zap.String("id", user.ID))
	return user.ID, true, nil
}

func (s *Seeder) ensureProject(ctx context.Context, p Project, ids map[string]string) (bool, int, error) {
	creatorID, err := s.userID(ctx, p.Creador, ids)
	if err != nil {
		return false, 0, err
	}

	owned, err := s.repos.Projects.ListByCreator(ctx, creatorID)
	if err != nil {
		return false, 0, fmt.Errorf("list projects of %s: %w", p.Creador, err)
	}
	for _, existing := range owned {
		if existing.Nombre == p.Nombre {
			s.log.Info("project exists, skipping", zap.String("nombre", p.Nombre))
			return false, 0, nil
		}
	}

	due, err := s.date(p.FechaEntrega)
	if err != nil {
		return false, 0, fmt.Errorf("project %s: %w", p.Nombre, err)
	}
	project := &model.Project{
		ID:            model.NewID(),
		Nombre:        p.Nombre,
		Descripcion:   p.Descripcion,
		Cliente:       p.Cliente,
		FechaEntrega:  due,
		Creador:       creatorID,
		Colaboradores: []string{},
	}
	for _, email := range p.Colaboradores {
		id, err := s.userID(ctx, email, ids)
		if err != nil {
			return false, 0, err
		}
		if id != creatorID {
			project.AddCollaborator(id)
		}
	}
	if err := s.repos.Projects.Create(ctx, project); err != nil {
		return false, 0, fmt.Errorf("create project %s: %w", p.Nombre, err)
	}

	for _, t := range p.Tareas {
		due, err := s.date(t.FechaEntrega)
		if err != nil {
			return false, 0, fmt.Errorf("task %s: %w", t.Nombre, err)
		}
		task := &model.Task{
			ID:           model.NewID(),
			Nombre:       t.Nombre,
			Descripcion:  t.Descripcion,
			Prioridad:    model.Priority(t.Prioridad),
			Estado:       t.Estado,
			FechaEntrega: due,
			Proyecto:     project.ID,
		}
		if err := s.repos.Tasks.Create(ctx, task); err != nil {
			return false, 0, fmt.Errorf("create task %s: %w", t.Nombre, err)
		}
	}

	s.log.Info("project created",
		zap.String("nombre", p.Nombre),
		zap.String("id", project.ID),
		zap.Int("tareas", len(p.Tareas)),
	)
	return true, len(p.Tareas), nil
}

// userID resolves an email to an id, looking in this run's users first.
func (s *Seeder) userID(ctx context.Context, email string, ids map[string]string) (string, error) {
	if id, ok := ids[email]; ok {
		return id, nil
	}
	user, err := s.repos.Users.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("unknown user %s: %w", email, err)
	}
	ids[email] = user.ID
	return user.ID, nil
}

func (s *Seeder) date(value string) (time.Time, error) {
	if value == "" {
		return s.now().UTC(), nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return t, nil
}
