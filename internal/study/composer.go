package study

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anatolykoptev/go_studynotes/internal/engine"
)

// ErrEmptySummary is returned when there is nothing to build notes from.
var ErrEmptySummary = errors.New("summary is empty")

// Composer converts a summary into detailed study notes with one
// non-streaming chat completion.
type Composer struct {
	LLM engine.Completer
}

// NewComposer uses the notes model from engine.Cfg.
func NewComposer() *Composer {
	return &Composer{LLM: engine.ClientCompleter(engine.Cfg.NotesLLM)}
}

// Compose sends the fixed system role plus the notes instruction embedding
// summary verbatim, and returns the trimmed reply.
func (c *Composer) Compose(ctx context.Context, summary string) (string, error) {
	if strings.TrimSpace(summary) == "" {
		return "", ErrEmptySummary
	}
	out, err := c.LLM(ctx, engine.NotesSystemPrompt, NotesPrompt(summary))
	if err != nil {
		return "", fmt.Errorf("notes model: %w", err)
	}
	engine.IncrNotes()
	return strings.TrimSpace(out), nil
}

// NotesPrompt is the user message of the composer request.
func NotesPrompt(summary string) string {
	return fmt.Sprintf(engine.NotesUserPrompt, summary)
}
