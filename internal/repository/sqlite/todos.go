package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tickbox/tickbox/internal/model"
	"github.com/tickbox/tickbox/internal/repository"
)

const todoColumns = `id, user_id, title, completed, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// CreateTodo inserts a new todo.
// Returns repository.ErrUserNotFound when the owner does not exist.
func (s *Store) CreateTodo(ctx context.Context, todo *model.Todo) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (`+todoColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.OwnerID, todo.Title, todo.Completed,
		toMillis(todo.CreatedAt), toMillis(todo.UpdatedAt),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrUserNotFound
		}
		return fmt.Errorf("create todo: %w", err)
	}
	return nil
}

// ListTodosByOwner returns every todo owned by ownerID, oldest first.
func (s *Store) ListTodosByOwner(ctx context.Context, ownerID string) ([]*model.Todo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE user_id = ? ORDER BY created_at ASC, id ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]*model.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return todos, nil
}

// SetTodoCompleted updates the completed flag of a todo owned by ownerID.
// Returns repository.ErrTodoNotFound when no such todo exists for that owner.
func (s *Store) SetTodoCompleted(ctx context.Context, id, ownerID string, completed bool) (*model.Todo, error) {
	row := s.db.QueryRowContext(ctx,
		`UPDATE todos SET completed = ?, updated_at = ? WHERE id = ? AND user_id = ? RETURNING `+todoColumns,
		completed, toMillis(s.now()), id, ownerID,
	)
	todo, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrTodoNotFound
		}
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return todo, nil
}

// DeleteTodo removes a todo owned by ownerID.
// Returns repository.ErrTodoNotFound when no such todo exists for that owner.
func (s *Store) DeleteTodo(ctx context.Context, id, ownerID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo rows affected: %w", err)
	}
	if affected == 0 {
		return repository.ErrTodoNotFound
	}
	return nil
}

func scanTodo(row rowScanner) (*model.Todo, error) {
	var (
		todo                 model.Todo
		createdAt, updatedAt int64
	)
	if err := row.Scan(&todo.ID, &todo.OwnerID, &todo.Title, &todo.Completed, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	todo.CreatedAt = fromMillis(createdAt)
	todo.UpdatedAt = fromMillis(updatedAt)
	return &todo, nil
}
