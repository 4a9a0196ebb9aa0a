package ports

import (
	"context"

	"github.com/openjournal/diary-system/internal/core/domain"
)

// ProfileUpdate carries the optional fields a user may change on their own
// account. Nil means "leave unchanged".
type ProfileUpdate struct {
	Email    *string
	Password *string
}

// AuthService implements registration, login, profile access, and logout.
type AuthService interface {
	// Register creates the account and returns a freshly issued token.
	Register(ctx context.Context, email, password string) (string, *domain.User, error)

	// Login verifies credentials and returns a token. Unknown email and
	// wrong password are indistinguishable to the caller: both return
	// domain.ErrUserNotFound.
	Login(ctx context.Context, email, password string) (string, error)

	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) error

	// Logout revokes the presented token.
	Logout(ctx context.Context, token string) error
}
