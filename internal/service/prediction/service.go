// Package prediction runs the maternal and fetal risk classifiers and
// records every result for the caller.
package prediction

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/internal/inference"
)

type classifier interface {
	Predict(ctx context.Context, features []float64) (int, error)
	Contract() inference.Contract
}

type recordRepo interface {
	CreateVitals(ctx context.Context, rec domain.VitalsRecord) (domain.VitalsRecord, error)
	CreateCTG(ctx context.Context, rec domain.CTGRecord) (domain.CTGRecord, error)
}

type observer interface {
	ObservePrediction(model, label string)
}

// Service provides prediction operations.
type Service struct {
	maternal classifier
	fetal    classifier
	records  recordRepo
	metrics  observer
	log      *slog.Logger
}

// NewService creates a new prediction service.
func NewService(log *slog.Logger, maternal, fetal classifier, records recordRepo, metrics observer) *Service {
	return &Service{
		maternal: maternal,
		fetal:    fetal,
		records:  records,
		metrics:  metrics,
		log:      log.With("service", "prediction"),
	}
}
