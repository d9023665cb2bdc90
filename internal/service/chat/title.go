package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/internal/llm"
)

const titlePromptChars = 100

// deriveTitle asks the generator for a short title. Any failure yields
// domain.DefaultChatTitle.
func (s *Service) deriveTitle(ctx context.Context, firstMessage string) string {
	excerpt := []rune(firstMessage)
	if len(excerpt) > titlePromptChars {
		excerpt = excerpt[:titlePromptChars]
	}

	prompt := fmt.Sprintf(
		"Generate a short, descriptive title (max 6 words) for a conversation that starts with this message: %q. "+
			"Return only the title without quotes or additional text.",
		string(excerpt),
	)

	req := llm.Prompt(prompt)
	req.MaxTokens = 32

	raw, err := s.generate(ctx, "title", s.opts.TitleTimeout, req)
	if err != nil {
		s.log.WarnContext(ctx, "title derivation failed", slog.String("error", err.Error()))
		return domain.DefaultChatTitle
	}
	return cleanTitle(raw)
}

// cleanTitle strips quotes and whitespace and caps the length.
func cleanTitle(raw string) string {
	t := strings.TrimSpace(raw)
	if i := strings.IndexByte(t, '\n'); i >= 0 {
		t = t[:i]
	}
	t = strings.Trim(t, "\"'`“”‘’ ")
	t = strings.TrimSpace(t)

	if r := []rune(t); len(r) > domain.MaxChatTitleLength {
		t = strings.TrimSpace(string(r[:domain.MaxChatTitleLength]))
	}
	if t == "" {
		return domain.DefaultChatTitle
	}
	return t
}
