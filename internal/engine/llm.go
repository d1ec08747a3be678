package engine

import (
	"context"
	"strings"

	"github.com/anatolykoptev/go-kit/llm"
)

// Completer sends one non-streaming chat completion built from a system
// and a user message and returns the text of the first choice.
type Completer func(ctx context.Context, system, user string) (string, error)

// ClientCompleter adapts a go-kit LLM client to a Completer.
// Every call is counted in the llm_calls / llm_errors metrics.
func ClientCompleter(c *llm.Client) Completer {
	return func(ctx context.Context, system, user string) (string, error) {
		metrics.LLMCalls.Add(1)
		resp, err := c.Complete(ctx, system, user)
		if err != nil {
			metrics.LLMErrors.Add(1)
			return "", err
		}
		return resp, nil
	}
}

// stripFences removes a markdown code fence wrapping the whole LLM output.
// Models sometimes wrap plain notes in ```markdown ... ```.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], " \t") {
		s = s[nl+1:] // drop the info string ("markdown", "md", ...)
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// CleanReply normalizes a raw completion: trims whitespace and unwraps a
// single surrounding code fence.
func CleanReply(s string) string {
	return stripFences(s)
}
