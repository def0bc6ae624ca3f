package work

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/escriba-ai/escriba/internal/agent"
	"github.com/escriba-ai/escriba/internal/classify"
	"github.com/escriba-ai/escriba/internal/history"
	"github.com/escriba-ai/escriba/internal/identity"
	"github.com/escriba-ai/escriba/internal/ledger"
	"github.com/escriba-ai/escriba/internal/log"
	"github.com/escriba-ai/escriba/internal/session"
	"github.com/escriba-ai/escriba/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeCaller scripts the collaborator's behavior per call.
type fakeCaller struct {
	mu       sync.Mutex
	calls    int
	generate func(ctx context.Context, req agent.Request) (*agent.Response, error)
}

func (f *fakeCaller) Generate(ctx context.Context, req agent.Request) (*agent.Response, error) {
	f.mu.Lock()
	f.calls++
	fn := f.generate
	f.mu.Unlock()
	return fn(ctx, req)
}

func (f *fakeCaller) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func succeedWith(text string, files ...agent.File) func(context.Context, agent.Request) (*agent.Response, error) {
	return func(context.Context, agent.Request) (*agent.Response, error) {
		return &agent.Response{Success: true, Output: text, Files: files}, nil
	}
}

type fixture struct {
	orch    *Orchestrator
	ledger  *ledger.Ledger
	archive *history.Archive
	log     *session.Log
	caller  *fakeCaller
	kv      *store.Memory
}

const testCost = 10

func newFixture(t *testing.T, balance int) *fixture {
	t.Helper()
	ctx := context.Background()
	kv := store.NewMemory()
	logger := log.NewNop()

	ids := identity.New(kv, logger)
	lg := ledger.New(ctx, kv, balance, logger)
	sessionLog := session.NewLog(ids.StartSession(ctx))
	archive := history.New(ctx, kv, logger)
	caller := &fakeCaller{generate: succeedWith("trabalho gerado")}

	orch := New(ids, lg, sessionLog, archive, caller,
		Options{Cost: testCost, AgentID: "escriba-trabalhos"}, logger)

	return &fixture{orch: orch, ledger: lg, archive: archive, log: sessionLog, caller: caller, kv: kv}
}

func TestSubmitSuccess(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50)
	f.caller.generate = succeedWith("conteudo do trabalho", agent.File{FileURL: "https://files.example/doc.pdf"})

	res, err := f.orch.Submit(ctx, "  Trabalho tecnico sobre redes  ")
	require.NoError(t, err)

	// Exact charge.
	assert.Equal(t, 40, f.orch.Balance())
	assert.Equal(t, StateIdle, f.orch.State())

	// Session gained exactly one user and one assistant turn, trimmed.
	snap := f.log.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, session.RoleUser, snap[0].Role)
	assert.Equal(t, "Trabalho tecnico sobre redes", snap[0].Content)
	assert.Equal(t, session.RoleAssistant, snap[1].Role)
	assert.Equal(t, "conteudo do trabalho", snap[1].Content)
	require.Len(t, snap[1].Files, 1)

	// Exactly one entry, carrying cost, classification and the full snapshot.
	require.Equal(t, 1, f.archive.Len())
	entry := res.Entry
	assert.Equal(t, testCost, entry.PointCost)
	assert.Equal(t, classify.LevelTecnico, entry.Level)
	assert.Equal(t, classify.FormatDocumento, entry.Format)
	assert.Equal(t, 0, entry.PageCount)
	assert.Equal(t, "conteudo do trabalho", entry.Content)
	assert.Len(t, entry.Messages, 2)
	assert.Equal(t, "Trabalho tecnico sobre redes", entry.Topic)
}

func TestSubmitUsesStructuredFallback(t *testing.T) {
	f := newFixture(t, 50)
	f.caller.generate = func(context.Context, agent.Request) (*agent.Response, error) {
		return &agent.Response{Success: true, Data: &agent.StructuredOutput{Output: "texto estruturado"}}, nil
	}

	res, err := f.orch.Submit(context.Background(), "qualquer tema")
	require.NoError(t, err)
	assert.Equal(t, "texto estruturado", res.Reply.Content)
}

func TestNoChargeOnCollaboratorFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50)
	f.caller.generate = func(context.Context, agent.Request) (*agent.Response, error) {
		return &agent.Response{Success: false, ErrorMessage: "agente sobrecarregado"}, nil
	}

	_, err := f.orch.Submit(ctx, "um tema")
	require.ErrorIs(t, err, ErrGenerationFailed)
	assert.Contains(t, err.Error(), "agente sobrecarregado")

	// No debit, no entry, user message retained, back to Idle.
	assert.Equal(t, 50, f.orch.Balance())
	assert.Equal(t, 0, f.archive.Len())
	require.Equal(t, 1, f.log.Len())
	assert.Equal(t, session.RoleUser, f.log.Snapshot()[0].Role)
	assert.Equal(t, StateIdle, f.orch.State())
}

func TestNoChargeOnTransportFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50)
	f.caller.generate = func(context.Context, agent.Request) (*agent.Response, error) {
		return nil, errors.New("connection refused")
	}

	_, err := f.orch.Submit(ctx, "um tema")
	require.ErrorIs(t, err, ErrTransportFailure)

	assert.Equal(t, 50, f.orch.Balance())
	assert.Equal(t, 0, f.archive.Len())
	assert.Equal(t, 1, f.log.Len())
	assert.Equal(t, StateIdle, f.orch.State())
}

func TestGateEnforcement(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, testCost-1)

	_, err := f.orch.Submit(ctx, "um tema")
	require.ErrorIs(t, err, ErrInsufficientBalance)

	// No user message appended and no call made.
	assert.Equal(t, 0, f.log.Len())
	assert.Equal(t, 0, f.caller.callCount())
	assert.Equal(t, testCost-1, f.orch.Balance())
}

func TestEmptyPromptRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50)

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := f.orch.Submit(ctx, input)
		require.ErrorIs(t, err, ErrEmptyPrompt)
	}
	assert.Equal(t, 0, f.log.Len())
	assert.Equal(t, 0, f.caller.callCount())
}

func TestSingleFlight(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 50)

	inFlight := make(chan struct{})
	release := make(chan struct{})
	f.caller.generate = func(context.Context, agent.Request) (*agent.Response, error) {
		close(inFlight)
		<-release
		return &agent.Response{Success: true, Output: "pronto"}, nil
	}

	done := make(chan error, 1)
	go func() {
		_, err := f.orch.Submit(ctx, "primeiro tema")
		done <- err
	}()

	<-inFlight
	assert.Equal(t, StateSending, f.orch.State())

	// Second submit while Sending is a no-op.
	lenBefore, balanceBefore := f.log.Len(), f.orch.Balance()
	_, err := f.orch.Submit(ctx, "segundo tema")
	require.ErrorIs(t, err, ErrGenerationInFlight)
	assert.Equal(t, lenBefore, f.log.Len())
	assert.Equal(t, balanceBefore, f.orch.Balance())
	assert.Equal(t, 1, f.caller.callCount())

	// NewWork is refused mid-flight too.
	_, err = f.orch.NewWork(ctx)
	require.ErrorIs(t, err, ErrGenerationInFlight)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, StateIdle, f.orch.State())
	assert.Equal(t, 40, f.orch.Balance())
	assert.Equal(t, 1, f.archive.Len())
}

func TestArchiveOrdering(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 100)

	topics := []string{"primeiro tema", "segundo tema", "terceiro tema"}
	for _, topic := range topics {
		_, err := f.orch.NewWork(ctx)
		require.NoError(t, err)
		f.caller.generate = succeedWith("conteudo de " + topic)
		_, err = f.orch.Submit(ctx, topic)
		require.NoError(t, err)
	}

	entries := f.archive.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "terceiro tema", entries[0].Topic)
	assert.Equal(t, "segundo tema", entries[1].Topic)
	assert.Equal(t, "primeiro tema", entries[2].Topic)
}

func TestTopicFixedAtFirstUserTurn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 100)

	_, err := f.orch.Submit(ctx, "fotossintese para o ensino medio")
	require.NoError(t, err)

	// A follow-up turn in the same session keeps the original topic.
	res, err := f.orch.Submit(ctx, "adicione uma conclusao")
	require.NoError(t, err)
	assert.Equal(t, "fotossintese para o ensino medio", res.Entry.Topic)
	assert.Equal(t, classify.LevelMedio, res.Entry.Level)
}

func TestNewWorkResetsSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 100)

	_, err := f.orch.Submit(ctx, "primeiro tema")
	require.NoError(t, err)
	oldID := f.log.SessionID()

	newID, err := f.orch.NewWork(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, oldID, newID)
	assert.Equal(t, 0, f.log.Len())

	// Archive is untouched by the reset.
	assert.Equal(t, 1, f.archive.Len())
}

func TestCreditRestoresAffordability(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)

	_, err := f.orch.Submit(ctx, "um tema")
	require.ErrorIs(t, err, ErrInsufficientBalance)

	f.orch.Credit(ctx, testCost)
	_, err = f.orch.Submit(ctx, "um tema")
	require.NoError(t, err)
	assert.Equal(t, 0, f.orch.Balance())
}

func TestRehydrationIdempotence(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 100)
	logger := log.NewNop()

	_, err := f.orch.Submit(ctx, "primeiro tema")
	require.NoError(t, err)
	_, err = f.orch.Submit(ctx, "segundo tema")
	require.NoError(t, err)

	userID := identity.New(f.kv, logger).EnsureUserID(ctx)
	balance := f.orch.Balance()
	entries := f.archive.All()

	// Rebuild every component from the same store, as a process
	// restart would.
	ids := identity.New(f.kv, logger)
	assert.Equal(t, userID, ids.EnsureUserID(ctx))

	sessionID, ok := ids.CurrentSessionID(ctx)
	require.True(t, ok)
	assert.Equal(t, f.log.SessionID(), sessionID)

	reloadedLedger := ledger.New(ctx, f.kv, 100, logger)
	assert.Equal(t, balance, reloadedLedger.Balance())

	reloadedArchive := history.New(ctx, f.kv, logger)
	require.Equal(t, len(entries), reloadedArchive.Len())
	for i, e := range reloadedArchive.All() {
		assert.Equal(t, entries[i].ID, e.ID)
		assert.Equal(t, entries[i].Topic, e.Topic)
		assert.Equal(t, entries[i].PointCost, e.PointCost)
	}
}
