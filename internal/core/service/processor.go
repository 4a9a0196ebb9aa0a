package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/openjournal/diary-system/internal/core/domain"
	"github.com/openjournal/diary-system/internal/core/ports"
	"github.com/openjournal/diary-system/internal/metrics"
)

const (
	completeAttempts = 3
	completeBackoff  = 200 * time.Millisecond
)

// ProcessFunc is the pluggable text-processing step applied to each entry.
type ProcessFunc func(text string) (string, error)

// EntryProcessor consumes dispatched entry ids: load, process, complete.
type EntryProcessor struct {
	entries ports.EntryRepository
	process ProcessFunc
	log     zerolog.Logger
}

func NewEntryProcessor(entries ports.EntryRepository, process ProcessFunc, log zerolog.Logger) *EntryProcessor {
	return &EntryProcessor{entries: entries, process: process, log: log}
}

// Process handles one dispatched entry id. Per-entry failures are contained:
// a processing error or panic records the terminal failure marker on the
// entry and still completes it, so no record is left in-progress forever. A
// missing entry drops the job with a warning. Redelivered ids are skipped
// once the entry is completed; the repository's first-write-wins completion
// covers the race where redelivery and first delivery interleave.
func (p *EntryProcessor) Process(ctx context.Context, entryID string) error {
	start := time.Now()

	entry, err := p.entries.FindByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, domain.ErrEntryNotFound) {
			metrics.EntriesProcessedTotal.WithLabelValues("dropped").Inc()
			p.log.Warn().Str("entry_id", entryID).Msg("dispatched entry no longer exists, dropping job")
			return nil
		}
		return fmt.Errorf("load entry: %w", err)
	}
	if entry.Completed() {
		p.log.Debug().Str("entry_id", entryID).Msg("entry already completed, skipping redelivery")
		return nil
	}

	result, outcome := p.runProcess(entry.Text)

	// Completion is idempotent, so retrying a transient storage failure here
	// is safe even if an earlier attempt actually landed.
	if err := p.completeWithRetry(ctx, entryID, result); err != nil {
		metrics.EntriesProcessedTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("complete entry: %w", err)
	}

	metrics.EntriesProcessedTotal.WithLabelValues(outcome).Inc()
	metrics.ProcessingDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	p.log.Info().Str("entry_id", entryID).Str("outcome", outcome).Msg("entry processed")
	return nil
}

func (p *EntryProcessor) completeWithRetry(ctx context.Context, entryID, result string) error {
	var err error
	for attempt := 0; attempt < completeAttempts; attempt++ {
		if err = p.entries.Complete(ctx, entryID, result); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(completeBackoff << attempt):
		}
	}
	return err
}

// runProcess invokes the pluggable processor, translating errors and panics
// into the terminal failure marker.
func (p *EntryProcessor) runProcess(text string) (result, outcome string) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error().Interface("panic", r).Msg("text processor panicked")
			result, outcome = domain.FailedResult, "failed"
		}
	}()

	out, err := p.process(text)
	if err != nil {
		p.log.Error().Err(err).Msg("text processing failed")
		return domain.FailedResult, "failed"
	}
	return out, "completed"
}
