package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/openjournal/diary-system/internal/core/domain"
)

type stubEntryRepo struct {
	entries map[string]*domain.Entry
	nextID  int

	completions      []string // results passed to Complete, in order
	completeFailures int      // number of Complete calls to fail before succeeding
	findErr          error
}

func newStubEntryRepo() *stubEntryRepo {
	return &stubEntryRepo{entries: make(map[string]*domain.Entry)}
}

func cloneEntry(e *domain.Entry) *domain.Entry {
	if e == nil {
		return nil
	}
	clone := *e
	if e.Result != nil {
		r := *e.Result
		clone.Result = &r
	}
	return &clone
}

func (r *stubEntryRepo) Create(_ context.Context, entry *domain.Entry) (*domain.Entry, error) {
	r.nextID++
	created := cloneEntry(entry)
	created.ID = fmt.Sprintf("entry-%d", r.nextID)
	r.entries[created.ID] = cloneEntry(created)
	return cloneEntry(created), nil
}

func (r *stubEntryRepo) FindByID(_ context.Context, id string) (*domain.Entry, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	e, ok := r.entries[id]
	if !ok {
		return nil, domain.ErrEntryNotFound
	}
	return cloneEntry(e), nil
}

func (r *stubEntryRepo) FindByUser(_ context.Context, userID string) ([]domain.Entry, error) {
	var out []domain.Entry
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, *cloneEntry(e))
		}
	}
	return out, nil
}

func (r *stubEntryRepo) FindAll(_ context.Context) ([]domain.Entry, error) {
	var out []domain.Entry
	for _, e := range r.entries {
		out = append(out, *cloneEntry(e))
	}
	return out, nil
}

func (r *stubEntryRepo) Complete(_ context.Context, id, result string) error {
	if r.completeFailures > 0 {
		r.completeFailures--
		return errors.New("storage unavailable")
	}
	r.completions = append(r.completions, result)
	e, ok := r.entries[id]
	if !ok {
		return domain.ErrEntryNotFound
	}
	if !e.InProgress {
		return nil // first write wins
	}
	e.InProgress = false
	e.Result = &result
	return nil
}

type stubDispatcher struct {
	enqueued []string
	err      error

	// onEnqueue lets tests observe store state at enqueue time.
	onEnqueue func(entryID string)
}

func (d *stubDispatcher) Enqueue(_ context.Context, entryID string) error {
	if d.err != nil {
		return d.err
	}
	if d.onEnqueue != nil {
		d.onEnqueue(entryID)
	}
	d.enqueued = append(d.enqueued, entryID)
	return nil
}

func TestEntryService_Create_InsertsBeforeEnqueue(t *testing.T) {
	repo := newStubEntryRepo()
	dispatcher := &stubDispatcher{}
	dispatcher.onEnqueue = func(entryID string) {
		if _, ok := repo.entries[entryID]; !ok {
			t.Fatalf("entry %s enqueued before it was committed", entryID)
		}
	}
	svc := NewEntryService(repo, dispatcher, zerolog.Nop())

	entry, err := svc.Create(context.Background(), "user-1", "hello")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !entry.InProgress || entry.Result != nil {
		t.Fatalf("new entry must be in-progress with nil result: %+v", entry)
	}
	if len(dispatcher.enqueued) != 1 || dispatcher.enqueued[0] != entry.ID {
		t.Fatalf("expected entry id enqueued once, got %v", dispatcher.enqueued)
	}
}

func TestEntryService_Create_DispatchFailure(t *testing.T) {
	repo := newStubEntryRepo()
	dispatcher := &stubDispatcher{err: errors.New("broker down")}
	svc := NewEntryService(repo, dispatcher, zerolog.Nop())

	_, err := svc.Create(context.Background(), "user-1", "hello")
	if !errors.Is(err, domain.ErrDispatchFailed) {
		t.Fatalf("expected ErrDispatchFailed, got %v", err)
	}
	// The row stays committed in its created state.
	if len(repo.entries) != 1 {
		t.Fatalf("expected entry to remain persisted, got %d rows", len(repo.entries))
	}
}

func TestEntryService_Get_Ownership(t *testing.T) {
	repo := newStubEntryRepo()
	svc := NewEntryService(repo, &stubDispatcher{}, zerolog.Nop())

	entry, err := svc.Create(context.Background(), "user-a", "mine")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	owner := domain.Actor{ID: "user-a"}
	stranger := domain.Actor{ID: "user-b"}
	admin := domain.Actor{ID: "user-c", Admin: true}

	if _, err := svc.Get(context.Background(), owner, entry.ID); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), stranger, entry.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if _, err := svc.Get(context.Background(), admin, entry.ID); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}
}

func TestEntryService_Get_NotFound(t *testing.T) {
	svc := NewEntryService(newStubEntryRepo(), &stubDispatcher{}, zerolog.Nop())

	if _, err := svc.Get(context.Background(), domain.Actor{ID: "u"}, "missing"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestEntryService_List_AdminSeesAll(t *testing.T) {
	repo := newStubEntryRepo()
	svc := NewEntryService(repo, &stubDispatcher{}, zerolog.Nop())

	_, _ = svc.Create(context.Background(), "user-a", "one")
	_, _ = svc.Create(context.Background(), "user-b", "two")

	own, err := svc.List(context.Background(), domain.Actor{ID: "user-a"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(own) != 1 {
		t.Fatalf("expected 1 own entry, got %d", len(own))
	}

	all, err := svc.List(context.Background(), domain.Actor{ID: "root", Admin: true})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 entries for admin, got %d", len(all))
	}
}

func TestEntryService_Stats(t *testing.T) {
	repo := newStubEntryRepo()
	svc := NewEntryService(repo, &stubDispatcher{}, zerolog.Nop())

	e1, _ := svc.Create(context.Background(), "user-a", "hello")
	_, _ = svc.Create(context.Background(), "user-a", "world!!")
	_ = repo.Complete(context.Background(), e1.ID, "a")

	stats, err := svc.Stats(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.TotalEntries != 2 || stats.CompletedEntries != 1 || stats.PendingEntries != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.TotalCharacters != len("hello")+len("world!!") {
		t.Fatalf("unexpected character count: %d", stats.TotalCharacters)
	}
}

func TestEntryService_Stats_NoEntries(t *testing.T) {
	svc := NewEntryService(newStubEntryRepo(), &stubDispatcher{}, zerolog.Nop())

	if _, err := svc.Stats(context.Background(), "nobody"); !errors.Is(err, domain.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}
