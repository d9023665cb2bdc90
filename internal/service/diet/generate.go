package diet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/internal/llm"
)

const planPromptTemplate = `You are a professional nutritionist. Create a comprehensive pregnancy diet plan for:
- Trimester: %s
- Weight: %skg
- Health Conditions: %s
- Dietary Preference: %s

IMPORTANT: Respond ONLY with a valid JSON object. Do not include any markdown formatting or explanations.

The object must have exactly this shape:
{
  "overview": {"calories_per_day": "2200-2500", "key_nutrients": ["..."], "foods_to_avoid": ["..."]},
  "meal_plans": [
    {
      "type": "Balanced Plan",
      "meals": {
        "breakfast": {"name": "...", "calories": "400", "items": ["..."]},
        "lunch": {"name": "...", "calories": "500", "items": ["..."]},
        "dinner": {"name": "...", "calories": "450", "items": ["..."]},
        "snacks": [{"name": "...", "items": ["..."]}]
      }
    }
  ],
  "tips": ["..."],
  "supplements": [{"name": "...", "dosage": "...", "reason": "..."}]
}`

func planPrompt(req domain.DietRequest) string {
	conditions := req.HealthConditions
	if conditions == "" {
		conditions = "None"
	}
	preference := req.DietaryPreference
	if preference == "" {
		preference = "No specific preference"
	}
	return fmt.Sprintf(planPromptTemplate, req.Trimester, formatWeight(req.Weight), conditions, preference)
}

// buildPlan asks the generator for a plan. Anything short of a complete,
// well-formed plan is replaced by domain.DefaultDietPlan. Only caller
// cancellation is returned as an error.
func (s *Service) buildPlan(ctx context.Context, req domain.DietRequest) (domain.DietPlan, error) {
	genReq := llm.Prompt(planPrompt(req))
	genReq.MaxTokens = s.maxTokens

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.gen.Generate(genCtx, genReq)
	if s.metrics != nil {
		s.metrics.ObserveGeneration("diet", time.Since(start), err)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return domain.DietPlan{}, ctxErr
		}
		s.log.WarnContext(ctx, "diet generation failed, using default plan", slog.String("error", err.Error()))
		return domain.DefaultDietPlan(), nil
	}

	plan, err := parsePlan(raw)
	if err != nil {
		s.log.WarnContext(ctx, "diet plan rejected, using default plan", slog.String("error", err.Error()))
		return domain.DefaultDietPlan(), nil
	}
	return plan, nil
}

var errIncompletePlan = errors.New("diet plan is incomplete")

func parsePlan(raw string) (domain.DietPlan, error) {
	body, err := llm.ExtractJSON(raw)
	if err != nil {
		return domain.DietPlan{}, err
	}

	var plan domain.DietPlan
	if err := json.Unmarshal([]byte(body), &plan); err != nil {
		return domain.DietPlan{}, fmt.Errorf("decode diet plan: %w", err)
	}
	if !plan.IsComplete() {
		return domain.DietPlan{}, errIncompletePlan
	}
	return plan, nil
}
