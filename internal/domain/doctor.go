package domain

import (
	"time"

	"github.com/google/uuid"
)

// DoctorProfile is a public directory entry. Phone is the natural key.
type DoctorProfile struct {
	ID              uuid.UUID
	Name            string
	Phone           string
	Specialty       string
	Location        string
	ProfileImageURL string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
