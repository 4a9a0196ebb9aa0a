package ports

import (
	"context"

	"github.com/openjournal/diary-system/internal/core/domain"
)

// UserRepository defines the persistence interface for user identities.
// Create must reject a second insert of an already-registered email with
// domain.ErrUserExists, even under concurrent registration attempts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}
