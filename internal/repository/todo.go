package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tickbox/tickbox/internal/model"
)

const todoColumns = `id, user_id, title, completed, created_at, updated_at`

// CreateTodo inserts a new todo into the database.
// Returns ErrUserNotFound when the owner does not exist.
func (r *Repository) CreateTodo(ctx context.Context, todo *model.Todo) error {
	query := `
		INSERT INTO todos (id, user_id, title, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		todo.ID,
		todo.OwnerID,
		todo.Title,
		todo.Completed,
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to create todo: %w", err)
	}

	return nil
}

// ListTodosByOwner returns every todo owned by ownerID, oldest first.
func (r *Repository) ListTodosByOwner(ctx context.Context, ownerID string) ([]*model.Todo, error) {
	query := `SELECT ` + todoColumns + `
		FROM todos
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]*model.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

// SetTodoCompleted updates the completed flag of a todo owned by ownerID.
// Returns ErrTodoNotFound when no such todo exists for that owner.
func (r *Repository) SetTodoCompleted(ctx context.Context, id, ownerID string, completed bool) (*model.Todo, error) {
	query := `
		UPDATE todos
		SET completed = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + todoColumns

	todo, err := scanTodo(r.pool.QueryRow(ctx, query, id, ownerID, completed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	return todo, nil
}

// DeleteTodo removes a todo owned by ownerID.
// Returns ErrTodoNotFound when no such todo exists for that owner.
func (r *Repository) DeleteTodo(ctx context.Context, id, ownerID string) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTodoNotFound
	}

	return nil
}

// scanTodo scans a single row into a Todo model.
func scanTodo(row pgx.Row) (*model.Todo, error) {
	var todo model.Todo
	err := row.Scan(
		&todo.ID,
		&todo.OwnerID,
		&todo.Title,
		&todo.Completed,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	return &todo, err
}
