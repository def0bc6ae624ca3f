// Package work coordinates one generation round as a single logical
// transaction: affordability gate, session append, external call,
// ledger debit and history archival.
//
// The orchestrator is the only writer of the ledger, the session log
// and the archive. One mutex guards the state field together with the
// whole check-then-act sequence, so the no-double-spend invariant
// holds even when the core is driven programmatically from multiple
// goroutines. At most one generation is in flight per session; the
// external call is the only point where the lock is released while
// work is pending.
package work

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/escriba-ai/escriba/internal/agent"
	"github.com/escriba-ai/escriba/internal/classify"
	"github.com/escriba-ai/escriba/internal/history"
	"github.com/escriba-ai/escriba/internal/ledger"
	"github.com/escriba-ai/escriba/internal/session"
)

// State of the orchestrator. There is no terminal state; every round
// returns to Idle.
type State int

const (
	// StateIdle accepts user input.
	StateIdle State = iota
	// StateSending has one generation call in flight.
	StateSending
)

// Sentinel errors. All of them are terminal at this boundary: the CLI
// converts each into a dismissible user-facing notice, none aborts the
// process.
var (
	// ErrEmptyPrompt indicates the submitted input was empty after trimming.
	ErrEmptyPrompt = errors.New("empty prompt")

	// ErrGenerationInFlight indicates a submit arrived while a
	// generation was already in flight.
	ErrGenerationInFlight = errors.New("generation already in flight")

	// ErrInsufficientBalance indicates the gate refused the spend
	// before any side effect. The caller should offer a top-up.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrGenerationFailed indicates a collaborator-reported failure.
	// No debit occurred; the user message stays in the session.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrTransportFailure indicates the call itself failed. Identical
	// state effects to ErrGenerationFailed.
	ErrTransportFailure = errors.New("generation call failed")
)

// IdentityStore supplies the identifiers attached to every generation
// call. Satisfied by *identity.Store.
type IdentityStore interface {
	EnsureUserID(ctx context.Context) string
	StartSession(ctx context.Context) string
}

// Result is the outcome of a successful generation round.
type Result struct {
	// Reply is the assistant message appended to the session.
	Reply session.Message

	// Entry is the history entry archived for this round.
	Entry history.Entry
}

// Orchestrator drives the Idle -> Sending -> Idle state machine.
type Orchestrator struct {
	mu    sync.Mutex
	state State

	cost    int
	agentID string

	ids     IdentityStore
	ledger  *ledger.Ledger
	log     *session.Log
	archive *history.Archive
	caller  agent.Caller
	logger  *slog.Logger
}

// Options configures an Orchestrator.
type Options struct {
	// Cost is the fixed point cost of one generation.
	Cost int

	// AgentID identifies the generation agent on every call.
	AgentID string
}

// New creates an Orchestrator in the Idle state.
func New(ids IdentityStore, lg *ledger.Ledger, log *session.Log, archive *history.Archive, caller agent.Caller, opts Options, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		state:   StateIdle,
		cost:    opts.Cost,
		agentID: opts.AgentID,
		ids:     ids,
		ledger:  lg,
		log:     log,
		archive: archive,
		caller:  caller,
		logger:  logger,
	}
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Balance returns the current point balance.
func (o *Orchestrator) Balance() int {
	return o.ledger.Balance()
}

// Session returns the live session log.
func (o *Orchestrator) Session() *session.Log {
	return o.log
}

// Cost returns the fixed per-generation point cost.
func (o *Orchestrator) Cost() int {
	return o.cost
}

// NewWork starts a fresh work session: a new session identifier is
// minted and persisted, and the message log is reset. The previous
// session's messages are discarded; completed generations already live
// in the archive. Returns ErrGenerationInFlight while a call is
// pending, so a reset can never race a completing generation.
func (o *Orchestrator) NewWork(ctx context.Context) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateIdle {
		return "", ErrGenerationInFlight
	}
	id := o.ids.StartSession(ctx)
	o.log.Reset(id)
	o.logger.Debug("started new work session", "session_id", id)
	return id, nil
}

// Credit adds points through the purchase flow.
func (o *Orchestrator) Credit(ctx context.Context, amount int) {
	o.ledger.Credit(ctx, amount)
}

// Submit runs one generation round.
//
// The trimmed input is appended to the session before the external
// call resolves, so the user turn is visible optimistically. On
// success the assistant reply, the ledger debit and the history entry
// are applied as one unit. On any failure the user message is kept,
// no debit occurs and no entry is created.
//
// A submit while a generation is in flight returns
// ErrGenerationInFlight with no effects. A submit the balance cannot
// cover returns ErrInsufficientBalance before any side effect,
// including the session append.
func (o *Orchestrator) Submit(ctx context.Context, input string) (*Result, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return nil, ErrEmptyPrompt
	}

	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	if !o.ledger.CanAfford(o.cost) {
		o.mu.Unlock()
		return nil, ErrInsufficientBalance
	}
	o.state = StateSending
	o.log.AppendUser(text)
	userID := o.ids.EnsureUserID(ctx)
	sessionID := o.log.SessionID()
	o.mu.Unlock()

	resp, callErr := o.caller.Generate(ctx, agent.Request{
		Prompt:    text,
		AgentID:   o.agentID,
		UserID:    userID,
		SessionID: sessionID,
	})

	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = StateIdle

	if callErr != nil {
		o.logger.Warn("generation transport failure", "session_id", sessionID, "error", callErr)
		return nil, fmt.Errorf("%w: %v", ErrTransportFailure, callErr)
	}
	if !resp.Success {
		o.logger.Warn("generation reported failure", "session_id", sessionID, "message", resp.ErrorMessage)
		if resp.ErrorMessage != "" {
			return nil, fmt.Errorf("%w: %s", ErrGenerationFailed, resp.ErrorMessage)
		}
		return nil, ErrGenerationFailed
	}

	return o.complete(ctx, resp), nil
}

// complete applies the success effects as one unit. Callers hold o.mu.
func (o *Orchestrator) complete(ctx context.Context, resp *agent.Response) *Result {
	text := agent.ExtractText(resp)

	files := make([]session.ArtifactFile, 0, len(resp.Files))
	for _, f := range resp.Files {
		files = append(files, session.ArtifactFile{FileURL: f.FileURL})
	}

	reply := o.log.AppendAssistant(text, files)
	o.ledger.Debit(ctx, o.cost)

	topic := o.log.Topic()
	level, format := classify.Classify(topic)
	entry := history.NewEntry(topic, level, format, text, o.cost, o.log.Snapshot())
	o.archive.Append(ctx, entry)

	o.logger.Debug("generation completed",
		"session_id", o.log.SessionID(),
		"level", level,
		"format", format,
		"files", len(files),
		"balance", o.ledger.Balance())

	return &Result{Reply: reply, Entry: entry}
}
