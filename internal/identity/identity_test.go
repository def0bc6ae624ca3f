package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/escriba-ai/escriba/internal/store"
)

// failingKV always errors, modeling an unavailable backing store.
type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("store unavailable")
}
func (failingKV) Set(context.Context, string, string) error { return errors.New("store unavailable") }
func (failingKV) Delete(context.Context, string) error      { return errors.New("store unavailable") }
func (failingKV) Close() error                              { return nil }

func TestEnsureUserIDIsStable(t *testing.T) {
	ctx := context.Background()
	s := New(store.NewMemory(), nil)

	first := s.EnsureUserID(ctx)
	if first == "" {
		t.Fatal("EnsureUserID() returned empty id")
	}

	second := s.EnsureUserID(ctx)
	if second != first {
		t.Errorf("EnsureUserID() = %q on second call, want %q", second, first)
	}
}

func TestEnsureUserIDSurvivesReload(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	first := New(kv, nil).EnsureUserID(ctx)
	second := New(kv, nil).EnsureUserID(ctx)
	if second != first {
		t.Errorf("EnsureUserID() after reload = %q, want %q", second, first)
	}
}

func TestStartSessionRegeneratesID(t *testing.T) {
	ctx := context.Background()
	s := New(store.NewMemory(), nil)

	first := s.StartSession(ctx)
	second := s.StartSession(ctx)
	if first == "" || second == "" {
		t.Fatal("StartSession() returned empty id")
	}
	if first == second {
		t.Errorf("StartSession() returned the same id twice: %q", first)
	}
}

func TestCurrentSessionIDRehydrates(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()

	started := New(kv, nil).StartSession(ctx)

	current, ok := New(kv, nil).CurrentSessionID(ctx)
	if !ok {
		t.Fatal("CurrentSessionID() ok = false after StartSession()")
	}
	if current != started {
		t.Errorf("CurrentSessionID() = %q, want %q", current, started)
	}
}

func TestCurrentSessionIDAbsent(t *testing.T) {
	s := New(store.NewMemory(), nil)
	if _, ok := s.CurrentSessionID(context.Background()); ok {
		t.Error("CurrentSessionID() ok = true on empty store")
	}
}

func TestIdentityToleratesStoreFailure(t *testing.T) {
	ctx := context.Background()
	s := New(failingKV{}, nil)

	if id := s.EnsureUserID(ctx); id == "" {
		t.Error("EnsureUserID() returned empty id on failing store")
	}
	if id := s.StartSession(ctx); id == "" {
		t.Error("StartSession() returned empty id on failing store")
	}
	if _, ok := s.CurrentSessionID(ctx); ok {
		t.Error("CurrentSessionID() ok = true on failing store")
	}
}
