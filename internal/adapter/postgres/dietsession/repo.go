// Package dietsession persists generated diet recommendations.
package dietsession

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/nova-backend/internal/adapter/postgres"
	"github.com/heartmarshall/nova-backend/internal/domain"
)

// Repo provides diet session persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new diet session repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var columns = []string{
	"id", "user_id", "title", "trimester", "weight",
	"health_conditions", "dietary_preference", "diet_plan",
	"created_at", "updated_at",
}

type row struct {
	ID                uuid.UUID `db:"id"`
	UserID            uuid.UUID `db:"user_id"`
	Title             string    `db:"title"`
	Trimester         string    `db:"trimester"`
	Weight            float64   `db:"weight"`
	HealthConditions  string    `db:"health_conditions"`
	DietaryPreference string    `db:"dietary_preference"`
	DietPlan          []byte    `db:"diet_plan"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func (r row) toDomain() (domain.DietSession, error) {
	s := domain.DietSession{
		ID:     r.ID,
		UserID: r.UserID,
		Title:  r.Title,
		Request: domain.DietRequest{
			Trimester:         r.Trimester,
			Weight:            r.Weight,
			HealthConditions:  r.HealthConditions,
			DietaryPreference: r.DietaryPreference,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if err := json.Unmarshal(r.DietPlan, &s.Plan); err != nil {
		return domain.DietSession{}, fmt.Errorf("decode diet_plan %s: %w", r.ID, err)
	}
	return s, nil
}

// Create inserts a session.
func (r *Repo) Create(ctx context.Context, s domain.DietSession) error {
	plan, err := json.Marshal(s.Plan)
	if err != nil {
		return fmt.Errorf("encode diet_plan: %w", err)
	}

	query, args, err := postgres.Builder().
		Insert("diet_sessions").
		Columns(columns...).
		Values(
			s.ID, s.UserID, s.Title, s.Request.Trimester, s.Request.Weight,
			s.Request.HealthConditions, s.Request.DietaryPreference, plan,
			s.CreatedAt, s.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build diet_session insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "diet_session", s.ID)
	}
	return nil
}

// List returns the user's sessions, most recently updated first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]domain.DietSession, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("diet_sessions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build diet_sessions list: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list diet_sessions: %w", err)
	}

	out := make([]domain.DietSession, 0, len(rows))
	for _, rw := range rows {
		s, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Get returns a single session owned by userID.
func (r *Repo) Get(ctx context.Context, userID, id uuid.UUID) (*domain.DietSession, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From("diet_sessions").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build diet_session get: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("diet_session %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "diet_session", id)
	}

	s, err := rw.toDomain()
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete removes a session owned by userID.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query, args, err := postgres.Builder().
		Delete("diet_sessions").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build diet_session delete: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "diet_session", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("diet_session %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
