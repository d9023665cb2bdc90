// Package doctor persists the public doctor directory.
package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	"github.com/heartmarshall/nova-backend/internal/adapter/postgres"
	"github.com/heartmarshall/nova-backend/internal/domain"
)

type Repo struct {
	db postgres.Querier
}

func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID              uuid.UUID `db:"id"`
	Name            string    `db:"name"`
	Phone           string    `db:"phone"`
	Specialty       string    `db:"specialty"`
	Location        string    `db:"location"`
	ProfileImageURL string    `db:"profile_image_url"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Upsert creates a profile or, when the phone is already registered,
// replaces its details. The stored profile is returned.
func (r *Repo) Upsert(ctx context.Context, p domain.DoctorProfile) (domain.DoctorProfile, error) {
	query, args, err := postgres.Builder().
		Insert("doctors").
		Columns("name", "phone", "specialty", "location", "profile_image_url").
		Values(p.Name, p.Phone, p.Specialty, p.Location, p.ProfileImageURL).
		Suffix(`ON CONFLICT (phone) DO UPDATE SET
			name = EXCLUDED.name,
			specialty = EXCLUDED.specialty,
			location = EXCLUDED.location,
			profile_image_url = EXCLUDED.profile_image_url,
			updated_at = now()
		RETURNING id, name, phone, specialty, location, profile_image_url, created_at, updated_at`).
		ToSql()
	if err != nil {
		return domain.DoctorProfile{}, fmt.Errorf("build doctors upsert: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return domain.DoctorProfile{}, postgres.MapError(err, "doctor", p.Phone)
	}

	return domain.DoctorProfile{
		ID:              rw.ID,
		Name:            rw.Name,
		Phone:           rw.Phone,
		Specialty:       rw.Specialty,
		Location:        rw.Location,
		ProfileImageURL: rw.ProfileImageURL,
		CreatedAt:       rw.CreatedAt,
		UpdatedAt:       rw.UpdatedAt,
	}, nil
}
