// Package history keeps the append-only archive of completed works.
//
// Entries are stored newest-first, never mutated after creation, and
// removed only by a whole-store reset. The archive persists itself as
// JSON through the key/value store; persistence failures never abort
// an in-memory append.
package history

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/escriba-ai/escriba/internal/classify"
	"github.com/escriba-ai/escriba/internal/session"
	"github.com/escriba-ai/escriba/internal/store"
)

// FilterAll is the sentinel accepted by Filter to skip a level or
// format predicate.
const FilterAll = "all"

// maxTopicLen is the rune budget for an entry topic before truncation.
const maxTopicLen = 80

// DateLayout is the display format used for entry dates.
const DateLayout = "02/01/2006"

// timeNow is swapped in tests.
var timeNow = time.Now

// Entry is one completed generation.
type Entry struct {
	ID        string            `json:"id"`
	Topic     string            `json:"topic"`
	Level     classify.Level    `json:"level"`
	Format    classify.Format   `json:"format"`
	PageCount int               `json:"pageCount"`
	Content   string            `json:"content"`
	Date      string            `json:"date"`
	PointCost int               `json:"pointCost"`
	Messages  []session.Message `json:"messages"`
}

// NewEntry builds an entry for a completed generation. The topic is
// truncated to 80 runes with an ellipsis marker when longer. PageCount
// is always recorded as zero; it is intentionally never derived from
// the content.
func NewEntry(topic string, level classify.Level, format classify.Format, content string, pointCost int, messages []session.Message) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Topic:     TruncateTopic(topic),
		Level:     level,
		Format:    format,
		PageCount: 0,
		Content:   content,
		Date:      timeNow().Format(DateLayout),
		PointCost: pointCost,
		Messages:  messages,
	}
}

// TruncateTopic caps topic at 80 runes, appending "..." when truncated.
func TruncateTopic(topic string) string {
	runes := []rune(topic)
	if len(runes) <= maxTopicLen {
		return topic
	}
	return string(runes[:maxTopicLen]) + "..."
}

// Archive is the newest-first collection of entries.
type Archive struct {
	mu      sync.RWMutex
	entries []Entry

	kv     store.KV
	logger *slog.Logger
}

// New creates an Archive rehydrated from kv. Absent or corrupt
// persisted data starts an empty archive.
func New(ctx context.Context, kv store.KV, logger *slog.Logger) *Archive {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Archive{kv: kv, logger: logger}

	raw, ok, err := kv.Get(ctx, store.KeyHistory)
	if err != nil {
		logger.Warn("failed to load history, starting empty", "error", err)
		return a
	}
	if !ok || raw == "" {
		return a
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logger.Warn("ignoring corrupt persisted history", "error", err)
		return a
	}
	a.entries = entries
	logger.Debug("loaded history", "count", len(entries))
	return a
}

// Append prepends entry, keeping the archive newest-first, and persists
// the archive best-effort.
func (a *Archive) Append(ctx context.Context, entry Entry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append([]Entry{entry}, a.entries...)
	a.persist(ctx)
}

// Filter returns the entries matching all three predicates: search is
// a case-insensitive substring of the topic (empty matches all), level
// and format are exact matches or FilterAll.
func (a *Archive) Filter(search, level, format string) []Entry {
	a.mu.RLock()
	defer a.mu.RUnlock()

	search = strings.ToLower(strings.TrimSpace(search))
	var out []Entry
	for _, e := range a.entries {
		if search != "" && !strings.Contains(strings.ToLower(e.Topic), search) {
			continue
		}
		if level != FilterAll && string(e.Level) != level {
			continue
		}
		if format != FilterAll && string(e.Format) != format {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Recent returns the first n entries of the newest-first archive, or
// fewer if the archive is smaller.
func (a *Archive) Recent(n int) []Entry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if n > len(a.entries) {
		n = len(a.entries)
	}
	if n <= 0 {
		return nil
	}
	out := make([]Entry, n)
	copy(out, a.entries[:n])
	return out
}

// All returns a copy of every entry, newest first.
func (a *Archive) All() []Entry {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]Entry, len(a.entries))
	copy(out, a.entries)
	return out
}

// Len returns the number of archived entries.
func (a *Archive) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.entries)
}

// Reset clears the archive and its persisted form. This is the only
// way entries are ever removed.
func (a *Archive) Reset(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = nil
	if err := a.kv.Delete(ctx, store.KeyHistory); err != nil {
		a.logger.Debug("failed to delete persisted history", "error", err)
	}
}

// persist writes the archive best-effort. Callers hold a.mu.
func (a *Archive) persist(ctx context.Context) {
	data, err := json.Marshal(a.entries)
	if err != nil {
		a.logger.Debug("failed to marshal history", "error", err)
		return
	}
	if err := a.kv.Set(ctx, store.KeyHistory, string(data)); err != nil {
		a.logger.Debug("failed to persist history", "error", err)
	}
}
