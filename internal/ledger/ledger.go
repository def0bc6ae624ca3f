// Package ledger holds the client-local point balance that gates
// generation calls.
//
// The client is the sole authority over the balance: debits happen only
// after a confirmed generation success, credits only through the
// explicit purchase flow. The balance never goes negative.
package ledger

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/escriba-ai/escriba/internal/store"
)

// Ledger is the point balance with best-effort persistence.
//
// The orchestrator is the only writer during generation, but Ledger is
// safe for concurrent use so the core stays correct when invoked
// programmatically from multiple goroutines.
type Ledger struct {
	mu      sync.Mutex
	balance int

	kv     store.KV
	logger *slog.Logger
}

// New creates a Ledger rehydrated from kv. When no balance has been
// persisted yet the configured initial balance is seeded.
func New(ctx context.Context, kv store.KV, initialBalance int, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Ledger{kv: kv, logger: logger}

	raw, ok, err := kv.Get(ctx, store.KeyBalance)
	if err != nil {
		logger.Warn("failed to load balance, starting from initial balance", "error", err)
	}
	if err == nil && ok {
		if v, perr := strconv.Atoi(raw); perr == nil && v >= 0 {
			l.balance = v
			return l
		}
		logger.Warn("ignoring malformed persisted balance", "value", raw)
	}

	l.balance = max(initialBalance, 0)
	l.persist(ctx)
	return l
}

// Balance returns the current balance.
func (l *Ledger) Balance() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

// CanAfford reports whether the balance covers cost. Spend-triggering
// actions must call this before initiating the external call.
func (l *Ledger) CanAfford(cost int) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance >= cost
}

// Debit decreases the balance by cost, flooring at zero. The floor is
// defensive invariant enforcement; the affordability gate makes an
// underflow unreachable in normal operation.
func (l *Ledger) Debit(ctx context.Context, cost int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance = max(l.balance-cost, 0)
	l.logger.Debug("debited points", "cost", cost, "balance", l.balance)
	l.persist(ctx)
}

// Credit increases the balance by amount. Used by the purchase flow.
func (l *Ledger) Credit(ctx context.Context, amount int) {
	if amount <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance += amount
	l.logger.Debug("credited points", "amount", amount, "balance", l.balance)
	l.persist(ctx)
}

// Reset reseeds the balance, used by the whole-store reset flow.
func (l *Ledger) Reset(ctx context.Context, balance int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balance = max(balance, 0)
	l.logger.Debug("reset balance", "balance", l.balance)
	l.persist(ctx)
}

// persist writes the balance best-effort. Callers hold l.mu.
// A write failure never aborts the in-memory transition.
func (l *Ledger) persist(ctx context.Context) {
	if err := l.kv.Set(ctx, store.KeyBalance, strconv.Itoa(l.balance)); err != nil {
		l.logger.Debug("failed to persist balance", "error", err)
	}
}
