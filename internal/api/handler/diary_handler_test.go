package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/openjournal/diary-system/internal/core/domain"
	"github.com/openjournal/diary-system/internal/core/ports"
)

type stubEntryService struct {
	createFn func(ctx context.Context, ownerID, text string) (*domain.Entry, error)
	getFn    func(ctx context.Context, actor domain.Actor, id string) (*domain.Entry, error)
	listFn   func(ctx context.Context, actor domain.Actor) ([]domain.Entry, error)
	statsFn  func(ctx context.Context, userID string) (*ports.Stats, error)
}

func (s *stubEntryService) Create(ctx context.Context, ownerID, text string) (*domain.Entry, error) {
	return s.createFn(ctx, ownerID, text)
}

func (s *stubEntryService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Entry, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubEntryService) List(ctx context.Context, actor domain.Actor) ([]domain.Entry, error) {
	return s.listFn(ctx, actor)
}

func (s *stubEntryService) Stats(ctx context.Context, userID string) (*ports.Stats, error) {
	return s.statsFn(ctx, userID)
}

func knownUsers() *stubUsers {
	return &stubUsers{users: map[string]*domain.User{
		"user-1": {ID: "user-1", Email: "alice@x.com"},
		"root":   {ID: "root", Email: "root@x.com", Admin: true},
	}}
}

func TestDiaryHandler_Create(t *testing.T) {
	entries := &stubEntryService{
		createFn: func(_ context.Context, ownerID, text string) (*domain.Entry, error) {
			if ownerID != "user-1" || text != "hello" {
				t.Fatalf("unexpected args: %s %s", ownerID, text)
			}
			return &domain.Entry{ID: "e1", UserID: ownerID, Text: text, InProgress: true}, nil
		},
	}
	h := NewDiaryHandler(entries, knownUsers())

	c, rec := newTestContext(t, http.MethodPost, "/api/diary", `{"text":"hello"}`)
	c.Set("user_id", "user-1")
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["diary_id"] != "e1" {
		t.Fatalf("expected diary_id in response, got %v", resp)
	}
}

func TestDiaryHandler_Create_UnknownUser(t *testing.T) {
	h := NewDiaryHandler(&stubEntryService{}, &stubUsers{})

	c, rec := newTestContext(t, http.MethodPost, "/api/diary", `{"text":"hello"}`)
	c.Set("user_id", "ghost")
	_ = h.Create(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDiaryHandler_Create_DispatchFailure(t *testing.T) {
	entries := &stubEntryService{
		createFn: func(context.Context, string, string) (*domain.Entry, error) {
			return nil, domain.ErrDispatchFailed
		},
	}
	h := NewDiaryHandler(entries, knownUsers())

	c, rec := newTestContext(t, http.MethodPost, "/api/diary", `{"text":"hello"}`)
	c.Set("user_id", "user-1")
	_ = h.Create(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["status"] != "fail" {
		t.Fatalf("expected fail envelope, got %v", resp)
	}
}

func TestDiaryHandler_Get_NotOwner(t *testing.T) {
	entries := &stubEntryService{
		getFn: func(context.Context, domain.Actor, string) (*domain.Entry, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewDiaryHandler(entries, knownUsers())

	c, rec := newTestContext(t, http.MethodGet, "/api/diary/e1", "")
	c.SetParamNames("id")
	c.SetParamValues("e1")
	c.Set("user_id", "user-1")
	_ = h.Get(c)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestDiaryHandler_Get_NotFound(t *testing.T) {
	entries := &stubEntryService{
		getFn: func(context.Context, domain.Actor, string) (*domain.Entry, error) {
			return nil, domain.ErrEntryNotFound
		},
	}
	h := NewDiaryHandler(entries, knownUsers())

	c, rec := newTestContext(t, http.MethodGet, "/api/diary/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")
	c.Set("user_id", "user-1")
	_ = h.Get(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDiaryHandler_Get_Success(t *testing.T) {
	result := "a"
	entries := &stubEntryService{
		getFn: func(_ context.Context, actor domain.Actor, id string) (*domain.Entry, error) {
			if actor.ID != "user-1" {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			return &domain.Entry{ID: id, UserID: "user-1", Text: "hello", Result: &result, CreatedOn: time.Now()}, nil
		},
	}
	h := NewDiaryHandler(entries, knownUsers())

	c, rec := newTestContext(t, http.MethodGet, "/api/diary/e1", "")
	c.SetParamNames("id")
	c.SetParamValues("e1")
	c.Set("user_id", "user-1")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	data, ok := resp["data"].(map[string]any)
	if !ok || data["result"] != "a" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestDiaryHandler_List_AdminGetsAll(t *testing.T) {
	entries := &stubEntryService{
		listFn: func(_ context.Context, actor domain.Actor) ([]domain.Entry, error) {
			if !actor.Admin {
				t.Fatalf("expected admin actor")
			}
			return []domain.Entry{{ID: "e1"}, {ID: "e2"}}, nil
		},
	}
	h := NewDiaryHandler(entries, knownUsers())

	c, rec := newTestContext(t, http.MethodGet, "/api/diary", "")
	c.Set("user_id", "root")
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	data, ok := resp["data"].([]any)
	if !ok || len(data) != 2 {
		t.Fatalf("expected 2 entries, got %v", resp)
	}
}

func TestDiaryHandler_Stats_NoEntries(t *testing.T) {
	entries := &stubEntryService{
		statsFn: func(context.Context, string) (*ports.Stats, error) {
			return nil, domain.ErrEntryNotFound
		},
	}
	h := NewDiaryHandler(entries, knownUsers())

	c, rec := newTestContext(t, http.MethodGet, "/api/stats", "")
	c.Set("user_id", "user-1")
	_ = h.Stats(c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDiaryHandler_Stats_Success(t *testing.T) {
	entries := &stubEntryService{
		statsFn: func(context.Context, string) (*ports.Stats, error) {
			return &ports.Stats{TotalEntries: 3, CompletedEntries: 2, PendingEntries: 1, TotalCharacters: 42}, nil
		},
	}
	h := NewDiaryHandler(entries, knownUsers())

	c, rec := newTestContext(t, http.MethodGet, "/api/stats", "")
	c.Set("user_id", "user-1")
	if err := h.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	data, ok := resp["data"].(map[string]any)
	if !ok || data["total_entries"] != float64(3) {
		t.Fatalf("unexpected body: %v", resp)
	}
}
