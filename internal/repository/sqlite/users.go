package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tickbox/tickbox/internal/model"
	"github.com/tickbox/tickbox/internal/repository"
)

// CreateUser inserts a new user.
// Returns repository.ErrEmailExists when the email is already registered.
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		user.ID, user.Email, user.PasswordHash, toMillis(user.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrEmailExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their ID.
func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE id = ?`, id)
	return scanUser(row, "get user by id")
}

// GetUserByEmail retrieves a user by their normalized email address.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM users WHERE email = ?`, email)
	return scanUser(row, "get user by email")
}

func scanUser(row *sql.Row, op string) (*model.User, error) {
	var (
		user      model.User
		createdAt int64
	)
	if err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.CreatedAt = fromMillis(createdAt)
	return &user, nil
}
