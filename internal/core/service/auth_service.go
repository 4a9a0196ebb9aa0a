package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/openjournal/diary-system/internal/core/domain"
	"github.com/openjournal/diary-system/internal/core/ports"
)

// AuthService implements registration, login, profile access, and logout.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates the account and immediately issues a session token, so a
// fresh registration doubles as a login.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		RegisteredOn: time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.Issue(created.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, created, nil
}

// Login verifies credentials and issues a token. A wrong password reports
// exactly as an unknown email so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrUserNotFound
	}

	return s.tokens.Issue(user.ID)
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

// UpdateProfile applies the requested changes to the caller's own account.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, update ports.ProfileUpdate) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if update.Email != nil && *update.Email != "" {
		user.Email = *update.Email
	}
	if update.Password != nil && *update.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	return s.users.Update(ctx, user)
}

// Logout revokes the presented token. Revoking twice is a no-op success.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}
