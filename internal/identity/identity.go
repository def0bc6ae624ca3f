// Package identity manages the stable user identifier and the per-work
// session identifier.
//
// Identifiers are opaque correlation tokens generated client-side with
// probabilistic uniqueness (UUIDv4). They carry no cryptographic
// guarantee and are not security tokens.
package identity

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/escriba-ai/escriba/internal/store"
)

// Store persists and rehydrates identifiers through the key/value
// store. Persistence failures degrade to in-memory identifiers; they
// are never surfaced to the user.
type Store struct {
	kv     store.KV
	logger *slog.Logger
}

// New creates an identity store backed by kv.
func New(kv store.KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, logger: logger}
}

// EnsureUserID returns the persisted user identifier, creating and
// persisting one on first use. The identifier is stable for the
// lifetime of the local store.
func (s *Store) EnsureUserID(ctx context.Context) string {
	if id, ok, err := s.kv.Get(ctx, store.KeyUserID); err == nil && ok && id != "" {
		return id
	} else if err != nil {
		s.logger.Warn("failed to read user id, generating ephemeral one", "error", err)
	}

	id := uuid.NewString()
	if err := s.kv.Set(ctx, store.KeyUserID, id); err != nil {
		s.logger.Debug("failed to persist user id", "error", err)
	}
	s.logger.Debug("created user id", "user_id", id)
	return id
}

// StartSession generates a fresh session identifier, persists it and
// returns it. Called exactly once per "new work" action.
func (s *Store) StartSession(ctx context.Context) string {
	id := uuid.NewString()
	if err := s.kv.Set(ctx, store.KeySessionID, id); err != nil {
		s.logger.Debug("failed to persist session id", "error", err)
	}
	s.logger.Debug("started session", "session_id", id)
	return id
}

// CurrentSessionID returns the persisted session identifier, if any.
// A restarted process keeps correlating with the same work session
// until the user explicitly starts a new one.
func (s *Store) CurrentSessionID(ctx context.Context) (string, bool) {
	id, ok, err := s.kv.Get(ctx, store.KeySessionID)
	if err != nil {
		s.logger.Debug("failed to read session id", "error", err)
		return "", false
	}
	return id, ok && id != ""
}
