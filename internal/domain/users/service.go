package users

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"perfai/internal/auth"
)

type StoreAPI interface {
	ByUsername(ctx context.Context, username string) (User, bool, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

type Service struct {
	store     StoreAPI
	jwtSecret string
	tokenTTL  time.Duration
}

func NewService(store StoreAPI, jwtSecret string, tokenTTL time.Duration) *Service {
	return &Service{store: store, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login validates credentials and mints an access token. Not-found and
// wrong-password collapse into the same error so callers cannot probe for
// usernames.
func (s *Service) Login(ctx context.Context, username, password string) (LoginResult, error) {
	user, found, err := s.store.ByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, fmt.Errorf("lookup user: %w", err)
	}
	if !found {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := s.store.UpdateLastLogin(ctx, user.ID); err != nil {
		slog.Warn("last login update failed", "userID", user.ID, "err", err)
	}

	claims := auth.Claims{
		UserID:   user.ID,
		Username: user.Username,
		RoleID:   user.RoleID,
	}
	if user.EmployeeID != nil {
		claims.EmployeeID = *user.EmployeeID
	}
	token, err := auth.GenerateToken(s.jwtSecret, claims, s.tokenTTL)
	if err != nil {
		return LoginResult{}, fmt.Errorf("mint token: %w", err)
	}

	user.PasswordHash = ""
	return LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}
