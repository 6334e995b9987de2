package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tickbox/tickbox/internal/metrics"
	"github.com/tickbox/tickbox/internal/model"
	"github.com/tickbox/tickbox/internal/repository"
)

// TodoService handles todo business logic. Every operation is scoped to an owner.
type TodoService struct {
	todos   TodoStore
	metrics metrics.Recorder
	now     func() time.Time
}

// NewTodoService creates a new TodoService.
func NewTodoService(todos TodoStore, recorder metrics.Recorder) *TodoService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &TodoService{
		todos:   todos,
		metrics: recorder,
		now:     time.Now,
	}
}

// List returns the owner's todos in creation order.
func (s *TodoService) List(ctx context.Context, ownerID string) ([]*model.Todo, error) {
	todos, err := s.todos.ListTodosByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	if todos == nil {
		todos = []*model.Todo{}
	}
	return todos, nil
}

// Create adds an incomplete todo for the owner.
func (s *TodoService) Create(ctx context.Context, ownerID, title string) (*model.Todo, error) {
	title = model.NormalizeTitle(title)
	if !model.ValidTitle(title) {
		verr := &ValidationError{}
		verr.Add("title", fmt.Sprintf("must be between 1 and %d characters", model.MaxTodoTitleLength), title)
		return nil, verr
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	todo := &model.Todo{
		ID:        ulid.Make().String(),
		Title:     title,
		Completed: false,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.todos.CreateTodo(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("create todo: %w", err)
	}

	s.metrics.IncTodoCreated()
	return todo, nil
}

// SetCompleted updates the completion flag of an owned todo.
func (s *TodoService) SetCompleted(ctx context.Context, ownerID, id string, completed bool) (*model.Todo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrTodoNotFound
	}

	todo, err := s.todos.SetTodoCompleted(ctx, id, ownerID, completed)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("update todo: %w", err)
	}

	s.metrics.IncTodoUpdated()
	return todo, nil
}

// Delete removes an owned todo.
func (s *TodoService) Delete(ctx context.Context, ownerID, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrTodoNotFound
	}

	if err := s.todos.DeleteTodo(ctx, id, ownerID); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("delete todo: %w", err)
	}

	s.metrics.IncTodoDeleted()
	return nil
}
