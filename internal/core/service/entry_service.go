package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/openjournal/diary-system/internal/core/domain"
	"github.com/openjournal/diary-system/internal/core/ports"
	"github.com/openjournal/diary-system/internal/metrics"
)

// EntryService implements diary entry creation, reads, and stats.
type EntryService struct {
	entries    ports.EntryRepository
	dispatcher ports.Dispatcher
	log        zerolog.Logger
}

func NewEntryService(entries ports.EntryRepository, dispatcher ports.Dispatcher, log zerolog.Logger) *EntryService {
	return &EntryService{entries: entries, dispatcher: dispatcher, log: log}
}

// Create inserts the entry in-progress and enqueues its id for the worker.
// The insert is durably committed before the enqueue, so the processor can
// always load the row it was told about. If the enqueue fails the entry stays
// created and the caller gets domain.ErrDispatchFailed.
func (s *EntryService) Create(ctx context.Context, ownerID, text string) (*domain.Entry, error) {
	entry := &domain.Entry{
		UserID:     ownerID,
		Text:       text,
		InProgress: true,
		CreatedOn:  time.Now().UTC(),
	}

	created, err := s.entries.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	metrics.EntriesCreatedTotal.Inc()

	if err := s.dispatcher.Enqueue(ctx, created.ID); err != nil {
		metrics.DispatchErrorsTotal.Inc()
		s.log.Error().Err(err).Str("entry_id", created.ID).Msg("failed to enqueue entry")
		return nil, fmt.Errorf("%w: %v", domain.ErrDispatchFailed, err)
	}

	s.log.Info().Str("entry_id", created.ID).Str("user_id", ownerID).Msg("entry created")
	return created, nil
}

// Get loads one entry, enforcing the owner-or-admin policy. Missing entries
// report not-found before the ownership check, matching the upstream contract.
func (s *EntryService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Entry, error) {
	entry, err := s.entries.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanRead(entry.UserID) {
		return nil, domain.ErrForbidden
	}
	return entry, nil
}

// List returns every entry for admins and only the actor's own otherwise.
func (s *EntryService) List(ctx context.Context, actor domain.Actor) ([]domain.Entry, error) {
	if actor.Admin {
		return s.entries.FindAll(ctx)
	}
	return s.entries.FindByUser(ctx, actor.ID)
}

// Stats aggregates the caller's own entries. A user with no entries gets
// domain.ErrEntryNotFound.
func (s *EntryService) Stats(ctx context.Context, userID string) (*ports.Stats, error) {
	entries, err := s.entries.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrEntryNotFound
	}

	stats := &ports.Stats{TotalEntries: len(entries)}
	for _, e := range entries {
		if e.InProgress {
			stats.PendingEntries++
		} else {
			stats.CompletedEntries++
		}
		stats.TotalCharacters += len(e.Text)
	}
	return stats, nil
}
