// Package vitals persists classifier results for maternal vitals and
// fetal cardiotocography readings.
package vitals

import (
	"context"
	"fmt"

	"github.com/heartmarshall/nova-backend/internal/adapter/postgres"
	"github.com/heartmarshall/nova-backend/internal/domain"
)

// Repo stores immutable prediction records.
type Repo struct {
	db postgres.Querier
}

// New creates a new vitals repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var vitalsColumns = []string{
	"user_id", "age", "systolic_bp", "diastolic_bp", "blood_glucose",
	"body_temp", "heart_rate", "prediction", "predicted_risk",
}

// CreateVitals inserts a maternal prediction and returns it with the
// generated id and timestamp.
func (r *Repo) CreateVitals(ctx context.Context, rec domain.VitalsRecord) (domain.VitalsRecord, error) {
	v := rec.Vitals
	query, args, err := postgres.Builder().
		Insert("vitals").
		Columns(vitalsColumns...).
		Values(rec.UserID, v.Age, v.SystolicBP, v.DiastolicBP, v.BloodGlucose,
			v.BodyTemp, v.HeartRate, rec.Prediction, rec.PredictedRisk).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return domain.VitalsRecord{}, fmt.Errorf("build vitals insert: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	if err := q.QueryRow(ctx, query, args...).Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return domain.VitalsRecord{}, postgres.MapError(err, "vitals", rec.UserID)
	}
	return rec, nil
}

// CreateCTG inserts a fetal prediction. Features must be in
// domain.FetalFeatureNames order.
func (r *Repo) CreateCTG(ctx context.Context, rec domain.CTGRecord) (domain.CTGRecord, error) {
	if len(rec.Features) != len(domain.FetalFeatureNames) {
		return domain.CTGRecord{}, fmt.Errorf("ctg: %d features, want %d: %w",
			len(rec.Features), len(domain.FetalFeatureNames), domain.ErrValidation)
	}

	cols := make([]string, 0, len(domain.FetalFeatureNames)+3)
	vals := make([]any, 0, cap(cols))
	cols = append(cols, "user_id")
	vals = append(vals, rec.UserID)
	for i, name := range domain.FetalFeatureNames {
		cols = append(cols, name)
		vals = append(vals, rec.Features[i])
	}
	cols = append(cols, "prediction", "status")
	vals = append(vals, rec.PredictedClass, rec.PredictedStatus)

	query, args, err := postgres.Builder().
		Insert("ctg").
		Columns(cols...).
		Values(vals...).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return domain.CTGRecord{}, fmt.Errorf("build ctg insert: %w", err)
	}

	q := postgres.QuerierFromCtx(ctx, r.db)
	if err := q.QueryRow(ctx, query, args...).Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return domain.CTGRecord{}, postgres.MapError(err, "ctg", rec.UserID)
	}
	return rec, nil
}
