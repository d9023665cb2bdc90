// Package llm adapts hosted text-generation APIs to a single request shape.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/heartmarshall/nova-backend/internal/domain"
)

// Role of a conversation turn as seen by the generator.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Request is a provider-neutral generation request. System carries the
// persona or instructions; Messages are the ordered turns.
type Request struct {
	System    string
	Messages  []Message
	MaxTokens int
}

// Generator is implemented by every provider adapter.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

var (
	_ Generator = (*AnthropicGenerator)(nil)
	_ Generator = (*OpenAIGenerator)(nil)
	_ Generator = StubGenerator{}
)

// Prompt builds a single-turn request.
func Prompt(text string) Request {
	return Request{Messages: []Message{{Role: RoleUser, Content: text}}}
}

// ExtractJSON returns the outermost JSON object in s, ignoring markdown
// fences and any prose around it.
func ExtractJSON(s string) (string, error) {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}

// mergeTurns drops empty turns and joins consecutive turns of the same role.
func mergeTurns(msgs []Message) []Message {
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Role == m.Role {
			out[n-1].Content += "\n\n" + m.Content
			continue
		}
		out = append(out, m)
	}
	return out
}

// classify wraps a provider error with the matching domain sentinel.
// Deadlines, throttling and 5xx are retryable; everything else is not.
func classify(provider string, status int, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s: timed out: %w", domain.ErrUnavailable, provider, err)
	case errors.Is(err, context.Canceled):
		return err
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s: status %d: %w", domain.ErrUnavailable, provider, status, err)
	default:
		return fmt.Errorf("%w: %s: %w", domain.ErrDownstream, provider, err)
	}
}
