// Package inference evaluates the exported risk classifiers: a standard
// scaler followed by a multinomial linear model.
package inference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
)

// ErrArity is returned when a feature vector does not match the model input width.
var ErrArity = errors.New("feature vector arity mismatch")

// StandardScaler centres and scales each feature: (x - mean) / scale.
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Transform returns the scaled copy of x.
func (s StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("scale: %w: got %d, want %d", ErrArity, len(x), len(s.Mean))
	}
	out := make([]float64, len(x))
	for i, v := range x {
		sc := s.Scale[i]
		if sc == 0 {
			sc = 1
		}
		out[i] = (v - s.Mean[i]) / sc
	}
	return out, nil
}

// LinearModel is a one-vs-rest or multinomial linear classifier. With a
// single coefficient row it is treated as binary: a positive decision
// selects Classes[1].
type LinearModel struct {
	Classes   []int       `json:"classes"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

// Predict returns the class with the highest decision value.
func (m LinearModel) Predict(x []float64) (int, error) {
	scores := make([]float64, len(m.Coef))
	for i, row := range m.Coef {
		if len(row) != len(x) {
			return 0, fmt.Errorf("classify: %w: got %d, want %d", ErrArity, len(x), len(row))
		}
		d := m.Intercept[i]
		for j, w := range row {
			d += w * x[j]
		}
		scores[i] = d
	}

	if len(scores) == 1 {
		if scores[0] > 0 {
			return m.Classes[1], nil
		}
		return m.Classes[0], nil
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return m.Classes[best], nil
}

func (m LinearModel) validate(arity int) error {
	if len(m.Coef) == 0 {
		return errors.New("model has no coefficients")
	}
	if len(m.Intercept) != len(m.Coef) {
		return fmt.Errorf("intercept length %d does not match %d coefficient rows", len(m.Intercept), len(m.Coef))
	}
	wantClasses := len(m.Coef)
	if wantClasses == 1 {
		wantClasses = 2
	}
	if len(m.Classes) != wantClasses {
		return fmt.Errorf("classes length %d, want %d", len(m.Classes), wantClasses)
	}
	for i, row := range m.Coef {
		if len(row) != arity {
			return fmt.Errorf("coefficient row %d has %d weights, want %d", i, len(row), arity)
		}
	}
	return nil
}

// Artifact is the on-disk form of a fitted pipeline.
type Artifact struct {
	Name         string         `json:"name"`
	Version      string         `json:"version"`
	FeatureNames []string       `json:"feature_names"`
	Scaler       StandardScaler `json:"scaler"`
	Model        LinearModel    `json:"model"`
}

// Classifier maps a raw feature vector to a class under a fixed contract.
type Classifier interface {
	Predict(ctx context.Context, features []float64) (int, error)
	Contract() Contract
}

var _ Classifier = (*Pipeline)(nil)

// Pipeline applies the scaler and the model to a raw feature vector.
type Pipeline struct {
	contract Contract
	scaler   StandardScaler
	model    LinearModel
}

// NewPipeline validates the artifact against the contract.
func NewPipeline(c Contract, a Artifact) (*Pipeline, error) {
	arity := c.Arity()
	if len(a.FeatureNames) > 0 && !slices.Equal(a.FeatureNames, c.FeatureNames) {
		return nil, fmt.Errorf("artifact %s: feature names do not match contract %s", a.Name, c.ID())
	}
	if len(a.Scaler.Mean) != arity || len(a.Scaler.Scale) != arity {
		return nil, fmt.Errorf("artifact %s: scaler width %d/%d, want %d",
			a.Name, len(a.Scaler.Mean), len(a.Scaler.Scale), arity)
	}
	if err := a.Model.validate(arity); err != nil {
		return nil, fmt.Errorf("artifact %s: %w", a.Name, err)
	}
	return &Pipeline{contract: c, scaler: a.Scaler, model: a.Model}, nil
}

// LoadPipeline reads a JSON artifact from path.
func LoadPipeline(path string, c Contract) (*Pipeline, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", c.ID(), err)
	}
	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", c.ID(), err)
	}
	p, err := NewPipeline(c, a)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", c.ID(), err)
	}
	return p, nil
}

// Contract returns the contract the pipeline was validated against.
func (p *Pipeline) Contract() Contract { return p.contract }

// Predict scales features and returns the raw class.
func (p *Pipeline) Predict(ctx context.Context, features []float64) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	for i, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("feature %d is not finite", i)
		}
	}
	scaled, err := p.scaler.Transform(features)
	if err != nil {
		return 0, err
	}
	return p.model.Predict(scaled)
}
