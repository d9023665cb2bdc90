package diet

import (
	"math"
	"strings"

	"github.com/heartmarshall/nova-backend/internal/domain"
)

// PlanInput holds the parameters of a diet plan request.
type PlanInput struct {
	Trimester         string
	Weight            *float64
	HealthConditions  string
	DietaryPreference string
}

// Validate checks all fields and collects all errors.
func (i PlanInput) Validate() error {
	var errs []domain.FieldError

	trimester := strings.TrimSpace(i.Trimester)
	if trimester == "" {
		errs = append(errs, domain.FieldError{Field: "trimester", Message: "required"})
	}
	if len(trimester) > 50 {
		errs = append(errs, domain.FieldError{Field: "trimester", Message: "max 50 characters"})
	}

	switch {
	case i.Weight == nil:
		errs = append(errs, domain.FieldError{Field: "weight", Message: "required"})
	case math.IsNaN(*i.Weight) || math.IsInf(*i.Weight, 0) || *i.Weight <= 0:
		errs = append(errs, domain.FieldError{Field: "weight", Message: "must be a positive number"})
	case *i.Weight > 500:
		errs = append(errs, domain.FieldError{Field: "weight", Message: "max 500 kg"})
	}

	if len(i.HealthConditions) > 1000 {
		errs = append(errs, domain.FieldError{Field: "health_conditions", Message: "max 1000 characters"})
	}
	if len(i.DietaryPreference) > 500 {
		errs = append(errs, domain.FieldError{Field: "dietary_preference", Message: "max 500 characters"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i PlanInput) request() domain.DietRequest {
	return domain.DietRequest{
		Trimester:         strings.TrimSpace(i.Trimester),
		Weight:            *i.Weight,
		HealthConditions:  strings.TrimSpace(i.HealthConditions),
		DietaryPreference: strings.TrimSpace(i.DietaryPreference),
	}
}
