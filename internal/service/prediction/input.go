package prediction

import (
	"fmt"
	"math"

	"github.com/heartmarshall/nova-backend/internal/domain"
)

// MaternalInput holds the six vitals. A nil field was absent from the request.
type MaternalInput struct {
	Age          *float64
	SystolicBP   *float64
	DiastolicBP  *float64
	BloodGlucose *float64
	BodyTemp     *float64
	HeartRate    *float64
}

// Validate checks all fields and collects all errors.
func (i MaternalInput) Validate() error {
	fields := []*float64{i.Age, i.SystolicBP, i.DiastolicBP, i.BloodGlucose, i.BodyTemp, i.HeartRate}

	var errs []domain.FieldError
	for n, f := range fields {
		name := domain.MaternalFeatureNames[n]
		switch {
		case f == nil:
			errs = append(errs, domain.FieldError{Field: name, Message: "required"})
		case math.IsNaN(*f) || math.IsInf(*f, 0):
			errs = append(errs, domain.FieldError{Field: name, Message: "must be a finite number"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i MaternalInput) vitals() domain.MaternalVitals {
	return domain.MaternalVitals{
		Age:          *i.Age,
		SystolicBP:   *i.SystolicBP,
		DiastolicBP:  *i.DiastolicBP,
		BloodGlucose: *i.BloodGlucose,
		BodyTemp:     *i.BodyTemp,
		HeartRate:    *i.HeartRate,
	}
}

// FetalInput carries the CTG features either positionally (Features, in
// domain.FetalFeatureNames order) or by name (Named). Named wins when set.
type FetalInput struct {
	Features []float64
	Named    map[string]float64
}

// Vector validates the input and returns it in model order.
func (i FetalInput) Vector() ([]float64, error) {
	want := len(domain.FetalFeatureNames)

	if i.Named != nil {
		var errs []domain.FieldError
		out := make([]float64, want)
		for n, name := range domain.FetalFeatureNames {
			v, ok := i.Named[name]
			if !ok {
				errs = append(errs, domain.FieldError{Field: name, Message: "required"})
				continue
			}
			out[n] = v
		}
		if len(errs) > 0 {
			return nil, domain.NewValidationErrors(errs)
		}
		return out, checkFinite(out)
	}

	if len(i.Features) != want {
		return nil, domain.NewValidationError("features",
			fmt.Sprintf("expected %d values, got %d", want, len(i.Features)))
	}
	out := make([]float64, want)
	copy(out, i.Features)
	return out, checkFinite(out)
}

func checkFinite(v []float64) error {
	for n, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return domain.NewValidationError(domain.FetalFeatureNames[n], "must be a finite number")
		}
	}
	return nil
}
