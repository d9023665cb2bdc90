package diet

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/pkg/ctxutil"
)

// GeneratePlan produces a one-off plan and records it for the caller.
func (s *Service) GeneratePlan(ctx context.Context, input PlanInput) (domain.DietPlan, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.DietPlan{}, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return domain.DietPlan{}, err
	}
	req := input.request()

	plan, err := s.buildPlan(ctx, req)
	if err != nil {
		return domain.DietPlan{}, err
	}

	rec, err := s.plans.Create(ctx, domain.DietPlanRecord{UserID: userID, Request: req, Plan: plan})
	if err != nil {
		return domain.DietPlan{}, fmt.Errorf("store diet plan: %w", err)
	}

	s.log.InfoContext(ctx, "diet plan generated",
		slog.String("user_id", userID.String()),
		slog.String("plan_id", rec.ID.String()),
	)
	return plan, nil
}

// CreateSession generates a plan and stores it as a new diet session.
func (s *Service) CreateSession(ctx context.Context, input PlanInput) (*domain.DietSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	req := input.request()

	plan, err := s.buildPlan(ctx, req)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sess := domain.DietSession{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     SessionTitle(req),
		Request:   req,
		Plan:      plan,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create diet session: %w", err)
	}

	s.log.InfoContext(ctx, "diet session created",
		slog.String("user_id", userID.String()),
		slog.String("session_id", sess.ID.String()),
	)
	return &sess, nil
}

// ListSessions returns the caller's diet sessions, newest first.
func (s *Service) ListSessions(ctx context.Context) ([]domain.DietSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	sessions, err := s.sessions.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list diet sessions: %w", err)
	}
	return sessions, nil
}

// GetSession returns one of the caller's diet sessions.
func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (*domain.DietSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.sessions.Get(ctx, userID, id)
}

// DeleteSession removes one of the caller's diet sessions.
func (s *Service) DeleteSession(ctx context.Context, id uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if err := s.sessions.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "diet session deleted",
		slog.String("user_id", userID.String()),
		slog.String("session_id", id.String()),
	)
	return nil
}

// SessionTitle renders "<trimester> Trimester - <weight>kg".
func SessionTitle(req domain.DietRequest) string {
	return req.Trimester + " Trimester - " + formatWeight(req.Weight) + "kg"
}

func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}
