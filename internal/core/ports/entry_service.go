package ports

import (
	"context"

	"github.com/openjournal/diary-system/internal/core/domain"
)

// Stats aggregates a user's diary activity.
type Stats struct {
	TotalEntries     int `json:"total_entries"`
	CompletedEntries int `json:"completed_entries"`
	PendingEntries   int `json:"pending_entries"`
	TotalCharacters  int `json:"total_characters"`
}

// EntryService implements diary entry creation, reads, and stats, enforcing
// the owner-or-admin access policy on behalf of the ownership-agnostic store.
type EntryService interface {
	// Create persists the entry in-progress and hands its id to the job
	// dispatcher. The durable insert always happens before the enqueue; an
	// enqueue failure is surfaced as domain.ErrDispatchFailed with the row
	// left in its created state.
	Create(ctx context.Context, ownerID, text string) (*domain.Entry, error)

	Get(ctx context.Context, actor domain.Actor, id string) (*domain.Entry, error)
	List(ctx context.Context, actor domain.Actor) ([]domain.Entry, error)
	Stats(ctx context.Context, userID string) (*Stats, error)
}
