package prediction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/pkg/ctxutil"
)

// PredictMaternal classifies the caller's vitals and stores the result.
func (s *Service) PredictMaternal(ctx context.Context, input MaternalInput) (Result, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return Result{}, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return Result{}, err
	}
	vitals := input.vitals()

	res, err := s.classify(ctx, s.maternal, vitals.Vector())
	if err != nil {
		return Result{}, err
	}

	rec, err := s.records.CreateVitals(ctx, domain.VitalsRecord{
		UserID:        userID,
		Vitals:        vitals,
		Prediction:    res.Class,
		PredictedRisk: res.Label,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "vitals not stored",
			slog.String("user_id", userID.String()),
			slog.String("label", res.Label),
			slog.String("error", err.Error()),
		)
		return res, &PersistError{Result: res, Err: err}
	}
	res.RecordID = rec.ID

	s.log.InfoContext(ctx, "maternal prediction",
		slog.String("user_id", userID.String()),
		slog.String("label", res.Label),
	)
	return res, nil
}

// PredictFetal classifies the caller's CTG features and stores the result.
func (s *Service) PredictFetal(ctx context.Context, input FetalInput) (Result, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return Result{}, domain.ErrUnauthorized
	}

	features, err := input.Vector()
	if err != nil {
		return Result{}, err
	}

	res, err := s.classify(ctx, s.fetal, features)
	if err != nil {
		return Result{}, err
	}

	rec, err := s.records.CreateCTG(ctx, domain.CTGRecord{
		UserID:          userID,
		Features:        features,
		PredictedClass:  res.Class,
		PredictedStatus: res.Label,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "ctg not stored",
			slog.String("user_id", userID.String()),
			slog.String("label", res.Label),
			slog.String("error", err.Error()),
		)
		return res, &PersistError{Result: res, Err: err}
	}
	res.RecordID = rec.ID

	s.log.InfoContext(ctx, "fetal prediction",
		slog.String("user_id", userID.String()),
		slog.Int("class", res.Class),
		slog.String("label", res.Label),
	)
	return res, nil
}

func (s *Service) classify(ctx context.Context, c classifier, features []float64) (Result, error) {
	contract := c.Contract()

	class, err := c.Predict(ctx, features)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Result{}, err
		}
		return Result{}, fmt.Errorf("%w: classify %s: %w", domain.ErrDownstream, contract.ID(), err)
	}

	label := contract.Label(class)
	if s.metrics != nil {
		s.metrics.ObservePrediction(contract.Name, label)
	}
	return Result{Class: class, Label: label}, nil
}
