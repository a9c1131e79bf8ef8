package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

type lookupFunc func(ctx context.Context, username string) (User, bool, error)

// ByUsername loads an active user. The employee_id column is speculative:
// databases provisioned before the employee link existed do not have it, so
// the full query runs in a transaction and a failure rolls back and retries
// once with the reduced column set.
func (s *Store) ByUsername(ctx context.Context, username string) (User, bool, error) {
	return lookupWithFallback(ctx, username, s.byUsernameWithEmployee, s.byUsernameLegacy)
}

// lookupWithFallback retries with legacy only on error. A clean not-found
// from the primary query is final.
func lookupWithFallback(ctx context.Context, username string, primary, legacy lookupFunc) (User, bool, error) {
	user, found, err := primary(ctx, username)
	if err == nil {
		return user, found, nil
	}
	return legacy(ctx, username)
}

func (s *Store) byUsernameWithEmployee(ctx context.Context, username string) (User, bool, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return User{}, false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var user User
	err = tx.QueryRow(ctx, `
    SELECT id, username, password_hash, COALESCE(full_name, ''), COALESCE(email, ''), role_id, employee_id
    FROM users
    WHERE username = $1 AND is_active = TRUE
  `, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.FullName, &user.Email, &user.RoleID, &user.EmployeeID)
	if errors.Is(err, pgx.ErrNoRows) {
		_ = tx.Commit(ctx)
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return User{}, false, err
	}
	return user, true, nil
}

func (s *Store) byUsernameLegacy(ctx context.Context, username string) (User, bool, error) {
	var user User
	err := s.DB.QueryRow(ctx, `
    SELECT id, username, password_hash, COALESCE(full_name, ''), COALESCE(email, ''), role_id
    FROM users
    WHERE username = $1 AND is_active = TRUE
  `, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.FullName, &user.Email, &user.RoleID)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}
	return user, true, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID int64) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1", userID)
	return err
}
