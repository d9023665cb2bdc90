// Package doctor maintains the public doctor directory.
package doctor

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"github.com/heartmarshall/nova-backend/internal/domain"
)

type doctorRepo interface {
	Upsert(ctx context.Context, p domain.DoctorProfile) (domain.DoctorProfile, error)
}

// Service provides doctor profile operations.
type Service struct {
	doctors doctorRepo
	log     *slog.Logger
}

// NewService creates a new doctor service.
func NewService(log *slog.Logger, doctors doctorRepo) *Service {
	return &Service{doctors: doctors, log: log.With("service", "doctor")}
}

// ProfileInput holds the fields of a doctor profile submission.
type ProfileInput struct {
	Name            string
	Phone           string
	Specialty       string
	Location        string
	ProfileImageURL string
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-.]{5,24}$`)

// Validate checks all fields and collects all errors.
func (i ProfileInput) Validate() error {
	var errs []domain.FieldError

	name := strings.TrimSpace(i.Name)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "name", Message: "required"})
	}
	if len(name) > 200 {
		errs = append(errs, domain.FieldError{Field: "name", Message: "max 200 characters"})
	}

	phone := strings.TrimSpace(i.Phone)
	switch {
	case phone == "":
		errs = append(errs, domain.FieldError{Field: "phone", Message: "required"})
	case !phonePattern.MatchString(phone):
		errs = append(errs, domain.FieldError{Field: "phone", Message: "invalid phone number"})
	}

	if raw := strings.TrimSpace(i.ProfileImageURL); raw != "" {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, domain.FieldError{Field: "profile_image_url", Message: "must be an http(s) URL"})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// CreateProfile registers a doctor. A profile with the same phone number is
// updated in place.
func (s *Service) CreateProfile(ctx context.Context, input ProfileInput) (domain.DoctorProfile, error) {
	if err := input.Validate(); err != nil {
		return domain.DoctorProfile{}, err
	}

	p, err := s.doctors.Upsert(ctx, domain.DoctorProfile{
		Name:            strings.TrimSpace(input.Name),
		Phone:           strings.TrimSpace(input.Phone),
		Specialty:       strings.TrimSpace(input.Specialty),
		Location:        strings.TrimSpace(input.Location),
		ProfileImageURL: strings.TrimSpace(input.ProfileImageURL),
	})
	if err != nil {
		return domain.DoctorProfile{}, fmt.Errorf("upsert doctor: %w", err)
	}

	s.log.InfoContext(ctx, "doctor profile saved", slog.String("doctor_id", p.ID.String()))
	return p, nil
}
