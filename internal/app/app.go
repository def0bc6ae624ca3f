// Package app wires the application components together.
//
// App owns the component graph: persistence, identity, ledger, session
// log, history archive, the generation client and the orchestrator.
// Construction is explicit constructor wiring; each component receives
// its dependencies and a scoped logger.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/escriba-ai/escriba/internal/agent"
	"github.com/escriba-ai/escriba/internal/clipboard"
	"github.com/escriba-ai/escriba/internal/config"
	"github.com/escriba-ai/escriba/internal/history"
	"github.com/escriba-ai/escriba/internal/identity"
	"github.com/escriba-ai/escriba/internal/ledger"
	"github.com/escriba-ai/escriba/internal/log"
	"github.com/escriba-ai/escriba/internal/session"
	"github.com/escriba-ai/escriba/internal/store"
	"github.com/escriba-ai/escriba/internal/work"
)

// App is the application container.
type App struct {
	Config       *config.Config
	Orchestrator *work.Orchestrator
	Archive      *history.Archive
	Ledger       *ledger.Ledger
	Identity     *identity.Store
	Clipboard    *clipboard.Clipboard

	kv     store.KV
	logger log.Logger
}

// New builds the component graph from cfg.
//
// The SQLite store is opened under the configured data directory; when
// it cannot be opened the application degrades to an in-memory store
// with a warning instead of failing, per the persistence contract.
func New(ctx context.Context, cfg *config.Config, logger log.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if logger == nil {
		logger = log.New(log.Config{})
	}

	var kv store.KV
	sqlite, err := store.NewSQLite(cfg.DatabasePath())
	if err != nil {
		logger.Warn("persistence unavailable, running in-memory only",
			"path", cfg.DatabasePath(), "error", err)
		kv = store.NewMemory()
	} else {
		kv = sqlite
	}

	ids := identity.New(kv, logger.With("component", "identity"))
	lg := ledger.New(ctx, kv, cfg.InitialBalance, logger.With("component", "ledger"))
	archive := history.New(ctx, kv, logger.With("component", "history"))

	// Rehydrate the current work session id; a fresh one is minted only
	// when no session has been started yet.
	sessionID, ok := ids.CurrentSessionID(ctx)
	if !ok {
		sessionID = ids.StartSession(ctx)
	}
	sessionLog := session.NewLog(sessionID)

	caller, err := agent.NewClient(cfg.AgentURL,
		time.Duration(cfg.RequestTimeoutMs)*time.Millisecond,
		logger.With("component", "agent"))
	if err != nil {
		kv.Close()
		return nil, fmt.Errorf("create generation client: %w", err)
	}

	orch := work.New(ids, lg, sessionLog, archive, caller, work.Options{
		Cost:    cfg.GenerationCost,
		AgentID: cfg.AgentID,
	}, logger.With("component", "work"))

	return &App{
		Config:       cfg,
		Orchestrator: orch,
		Archive:      archive,
		Ledger:       lg,
		Identity:     ids,
		Clipboard:    clipboard.New(logger.With("component", "clipboard")),
		kv:           kv,
		logger:       logger,
	}, nil
}

// Reset clears the archive and reseeds the ledger with the configured
// initial balance. The user identity is kept.
func (a *App) Reset(ctx context.Context) {
	a.Archive.Reset(ctx)
	a.Ledger.Reset(ctx, a.Config.InitialBalance)
}

// Close releases the backing store.
func (a *App) Close() error {
	return a.kv.Close()
}
