package ports

import (
	"context"

	"github.com/openjournal/diary-system/internal/core/domain"
)

// EntryRepository defines the persistence interface for diary entries.
type EntryRepository interface {
	Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)
	FindByID(ctx context.Context, id string) (*domain.Entry, error)
	FindByUser(ctx context.Context, userID string) ([]domain.Entry, error)
	FindAll(ctx context.Context) ([]domain.Entry, error)

	// Complete transitions the entry to its terminal state, setting the
	// result and clearing the in-progress flag. The first call wins; calling
	// it on an already-completed entry is a no-op success so that redelivered
	// jobs cannot overwrite an earlier result.
	Complete(ctx context.Context, id, result string) error
}
