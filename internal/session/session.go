// Package session holds the ordered message log of one work session.
//
// A Log is bound to a single session identifier, grows by one user
// message per submit and one assistant message per successful
// generation, and is never mutated retroactively. The first user
// message fixes the topic of the work for the session's lifetime.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// TimestampLayout is the display format used for message timestamps.
const TimestampLayout = "02/01/2006 15:04"

// timeNow is swapped in tests.
var timeNow = time.Now

// ArtifactFile is a downloadable output reference returned alongside
// generated text.
type ArtifactFile struct {
	FileURL string `json:"fileUrl"`
}

// Message is a single turn in a work session. Immutable once created;
// snapshots copy messages by value so archived history shares no
// mutable state with the live session.
type Message struct {
	ID        string         `json:"id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Timestamp string         `json:"timestamp"`
	Files     []ArtifactFile `json:"files,omitempty"`
}

// Log is the ordered message sequence of one work session.
//
// Safe for concurrent use, though the orchestrator is the only writer
// during generation.
type Log struct {
	mu        sync.RWMutex
	sessionID string
	messages  []Message
}

// NewLog creates an empty log bound to sessionID.
func NewLog(sessionID string) *Log {
	return &Log{sessionID: sessionID}
}

// SessionID returns the session identifier the log is bound to.
func (l *Log) SessionID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sessionID
}

// AppendUser appends a user message and returns it.
func (l *Log) AppendUser(text string) Message {
	return l.append(RoleUser, text, nil)
}

// AppendAssistant appends an assistant message with optional artifact
// files and returns it.
func (l *Log) AppendAssistant(text string, files []ArtifactFile) Message {
	return l.append(RoleAssistant, text, files)
}

func (l *Log) append(role, text string, files []ArtifactFile) Message {
	msg := Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   text,
		Timestamp: timeNow().Format(TimestampLayout),
	}
	if len(files) > 0 {
		msg.Files = make([]ArtifactFile, len(files))
		copy(msg.Files, files)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
	return msg
}

// Snapshot returns a defensive copy of all messages in order.
func (l *Log) Snapshot() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of messages.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}

// Topic returns the content of the first user message, the canonical
// subject of the work. Later user turns never overwrite it. Returns ""
// while no user message exists.
func (l *Log) Topic() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, msg := range l.messages {
		if msg.Role == RoleUser {
			return msg.Content
		}
	}
	return ""
}

// Reset discards all messages and rebinds the log to a freshly minted
// session identifier.
func (l *Log) Reset(sessionID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sessionID = sessionID
	l.messages = nil
}
