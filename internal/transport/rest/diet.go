package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/internal/service/diet"
)

type dietService interface {
	GeneratePlan(ctx context.Context, input diet.PlanInput) (domain.DietPlan, error)
	CreateSession(ctx context.Context, input diet.PlanInput) (*domain.DietSession, error)
	ListSessions(ctx context.Context) ([]domain.DietSession, error)
	GetSession(ctx context.Context, id uuid.UUID) (*domain.DietSession, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
}

// DietHandler serves diet plan generation and saved diet sessions.
type DietHandler struct {
	svc dietService
	dec decoder
	log *slog.Logger
}

// NewDietHandler creates a DietHandler.
func NewDietHandler(svc dietService, maxBodyBytes int64, logger *slog.Logger) *DietHandler {
	return &DietHandler{svc: svc, dec: newDecoder(maxBodyBytes), log: logger.With("handler", "diet")}
}

type planRequest struct {
	Trimester         string          `json:"trimester"`
	Weight            json.RawMessage `json:"weight"`
	HealthConditions  string          `json:"health_conditions"`
	DietaryPreference string          `json:"dietary_preference"`
}

type planResponse struct {
	DietPlan domain.DietPlan `json:"diet_plan"`
}

type dietSessionResponse struct {
	ID                uuid.UUID       `json:"id"`
	UserID            uuid.UUID       `json:"user_id"`
	Title             string          `json:"title"`
	Trimester         string          `json:"trimester"`
	Weight            float64         `json:"weight"`
	HealthConditions  string          `json:"health_conditions"`
	DietaryPreference string          `json:"dietary_preference"`
	DietPlan          domain.DietPlan `json:"diet_plan"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func toDietSessionResponse(s *domain.DietSession) dietSessionResponse {
	return dietSessionResponse{
		ID:                s.ID,
		UserID:            s.UserID,
		Title:             s.Title,
		Trimester:         s.Request.Trimester,
		Weight:            s.Request.Weight,
		HealthConditions:  s.Request.HealthConditions,
		DietaryPreference: s.Request.DietaryPreference,
		DietPlan:          s.Plan,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func (h *DietHandler) readInput(w http.ResponseWriter, r *http.Request) (diet.PlanInput, error) {
	var req planRequest
	if err := h.dec.decode(w, r, &req); err != nil {
		return diet.PlanInput{}, err
	}

	weight, err := parseNumber(req.Weight)
	if err != nil {
		return diet.PlanInput{}, domain.NewValidationError("weight", err.Error())
	}

	return diet.PlanInput{
		Trimester:         req.Trimester,
		Weight:            weight,
		HealthConditions:  req.HealthConditions,
		DietaryPreference: req.DietaryPreference,
	}, nil
}

// Plan handles POST /diet_plan.
func (h *DietHandler) Plan(w http.ResponseWriter, r *http.Request) {
	input, err := h.readInput(w, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	plan, err := h.svc.GeneratePlan(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, planResponse{DietPlan: plan})
}

// CreateSession handles POST /diet/sessions.
func (h *DietHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	input, err := h.readInput(w, r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	s, err := h.svc.CreateSession(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDietSessionResponse(s))
}

// ListSessions handles GET /diet/sessions.
func (h *DietHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.svc.ListSessions(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]dietSessionResponse, len(sessions))
	for i := range sessions {
		out[i] = toDietSessionResponse(&sessions[i])
	}
	writeJSON(w, http.StatusOK, out)
}

// GetSession handles GET /diet/sessions/{id}.
func (h *DietHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	s, err := h.svc.GetSession(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toDietSessionResponse(s))
}

// DeleteSession handles DELETE /diet/sessions/{id}.
func (h *DietHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.DeleteSession(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deletedResponse{Message: "Session deleted successfully"})
}
