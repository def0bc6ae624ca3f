// Package clipboard wraps the system clipboard as a best-effort
// collaborator. Copy failures are logged, never propagated.
package clipboard

import (
	"log/slog"

	"github.com/atotto/clipboard"
)

// Clipboard copies text to the system clipboard.
type Clipboard struct {
	logger *slog.Logger
}

// New creates a clipboard collaborator.
func New(logger *slog.Logger) *Clipboard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Clipboard{logger: logger}
}

// Copy places text on the system clipboard and reports success.
func (c *Clipboard) Copy(text string) bool {
	if err := clipboard.WriteAll(text); err != nil {
		c.logger.Debug("clipboard copy failed", "error", err)
		return false
	}
	return true
}
