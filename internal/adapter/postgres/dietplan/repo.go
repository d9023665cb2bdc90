// Package dietplan stores plans produced by the one-off plan endpoint.
package dietplan

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heartmarshall/nova-backend/internal/adapter/postgres"
	"github.com/heartmarshall/nova-backend/internal/domain"
)

type Repo struct {
	db postgres.Querier
}

func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create stores rec and returns it with ID and CreatedAt populated.
func (r *Repo) Create(ctx context.Context, rec domain.DietPlanRecord) (domain.DietPlanRecord, error) {
	req, err := json.Marshal(rec.Request)
	if err != nil {
		return rec, fmt.Errorf("encode diet request: %w", err)
	}
	plan, err := json.Marshal(rec.Plan)
	if err != nil {
		return rec, fmt.Errorf("encode diet plan: %w", err)
	}

	query, args, err := postgres.Builder().
		Insert("diet_plans").
		Columns("user_id", "request", "diet_plan").
		Values(rec.UserID, req, plan).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return rec, fmt.Errorf("build diet_plans insert: %w", err)
	}

	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return rec, postgres.MapError(err, "diet_plan", rec.UserID)
	}
	return rec, nil
}
