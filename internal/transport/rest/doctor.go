package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/internal/service/doctor"
)

type doctorService interface {
	CreateProfile(ctx context.Context, input doctor.ProfileInput) (domain.DoctorProfile, error)
}

// DoctorHandler serves the public doctor directory submission.
type DoctorHandler struct {
	svc doctorService
	dec decoder
	log *slog.Logger
}

// NewDoctorHandler creates a DoctorHandler.
func NewDoctorHandler(svc doctorService, maxBodyBytes int64, logger *slog.Logger) *DoctorHandler {
	return &DoctorHandler{svc: svc, dec: newDecoder(maxBodyBytes), log: logger.With("handler", "doctor")}
}

type doctorRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Specialty       string `json:"specialty"`
	Location        string `json:"location"`
	ProfileImageURL string `json:"profile_image_url"`
}

type doctorProfile struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Specialty       string    `json:"specialty"`
	Location        string    `json:"location"`
	ProfileImageURL string    `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type doctorResponse struct {
	Message string        `json:"message"`
	Data    doctorProfile `json:"data"`
}

// Create handles POST /create_doctor_profile. Submitting an existing phone
// number updates that profile.
func (h *DoctorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req doctorRequest
	if err := h.dec.decode(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	p, err := h.svc.CreateProfile(r.Context(), doctor.ProfileInput(req))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, doctorResponse{
		Message: "Doctor profile created successfully",
		Data: doctorProfile{
			ID:              p.ID,
			Name:            p.Name,
			Phone:           p.Phone,
			Specialty:       p.Specialty,
			Location:        p.Location,
			ProfileImageURL: p.ProfileImageURL,
			CreatedAt:       p.CreatedAt,
			UpdatedAt:       p.UpdatedAt,
		},
	})
}
