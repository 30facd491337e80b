package service

import (
	"context"
	"strings"

	"todai/internal/domain"

	"github.com/google/uuid"
)

// TaskStore is the persistence gateway the service talks to. The pgx-backed
// repository implements it; tests substitute an in-memory fake.
type TaskStore interface {
	List(ctx context.Context) ([]domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, id string, p domain.TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}

type TaskService struct {
	store TaskStore
}

func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

func (s *TaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return s.store.List(ctx)
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	return s.store.GetByID(ctx, id)
}

func (s *TaskService) CreateTask(ctx context.Context, p domain.TaskPatch) (*domain.Task, error) {
	if err := domain.Validate(p, true); err != nil {
		return nil, err
	}

	t := &domain.Task{
		ID:     uuid.NewString(),
		Title:  strings.TrimSpace(p.Title.Value),
		Status: domain.StatusTodo,
	}
	if p.Description.Present() {
		t.Description = strings.TrimSpace(p.Description.Value)
	}
	if p.Status.Present() {
		t.Status = p.Status.Value
	}
	if p.Priority.Present() {
		v := p.PriorityInt()
		t.Priority = &v
	}
	if p.DueDate.Present() {
		d := p.DueDate.Value
		t.DueDate = &d
	}
	if p.Project.Present() {
		proj := p.Project.Value
		t.Project = &proj
	}

	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, p domain.TaskPatch) (*domain.Task, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	if err := domain.Validate(p, false); err != nil {
		return nil, err
	}
	return s.store.Update(ctx, id, p)
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	if err := parseID(id); err != nil {
		return err
	}
	return s.store.Delete(ctx, id)
}

func parseID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.NewInvalidIDError()
	}
	return nil
}
