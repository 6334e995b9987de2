package service

import (
	"context"

	"github.com/tickbox/tickbox/internal/model"
)

// UserStore persists accounts. Implementations return repository.ErrEmailExists
// on a duplicate email and repository.ErrUserNotFound on a missed lookup.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// TodoStore persists todos. Mutations are scoped to ownerID and return
// repository.ErrTodoNotFound when no owned row matches.
type TodoStore interface {
	CreateTodo(ctx context.Context, todo *model.Todo) error
	ListTodosByOwner(ctx context.Context, ownerID string) ([]*model.Todo, error)
	SetTodoCompleted(ctx context.Context, id, ownerID string, completed bool) (*model.Todo, error)
	DeleteTodo(ctx context.Context, id, ownerID string) error
}
