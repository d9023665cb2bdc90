package llm

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/heartmarshall/nova-backend/internal/domain"
)

// StubGenerator answers without calling any provider. It is selected with
// provider "stub" for local runs and smoke tests.
type StubGenerator struct{}

// Generate returns a default diet plan for JSON prompts, a short title for
// title prompts, and an echo otherwise.
func (StubGenerator) Generate(ctx context.Context, req Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(req.Messages) == 0 {
		return "", nil
	}
	last := req.Messages[len(req.Messages)-1].Content

	switch {
	case strings.Contains(last, "Respond ONLY with a valid JSON object"):
		raw, err := json.Marshal(domain.DefaultDietPlan())
		if err != nil {
			return "", err
		}
		return string(raw), nil
	case strings.HasPrefix(last, "Generate a short, descriptive title"):
		return "Pregnancy Questions", nil
	default:
		return "NOVA (offline): I received your message: " + last, nil
	}
}
