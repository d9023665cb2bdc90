// Package diet generates structured pregnancy diet plans and keeps the
// per-user history of them.
package diet

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/internal/llm"
)

type sessionRepo interface {
	Create(ctx context.Context, s domain.DietSession) error
	List(ctx context.Context, userID uuid.UUID) ([]domain.DietSession, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.DietSession, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type planRepo interface {
	Create(ctx context.Context, rec domain.DietPlanRecord) (domain.DietPlanRecord, error)
}

type generator interface {
	Generate(ctx context.Context, req llm.Request) (string, error)
}

type observer interface {
	ObserveGeneration(purpose string, d time.Duration, err error)
}

// Service provides diet plan operations.
type Service struct {
	sessions  sessionRepo
	plans     planRepo
	gen       generator
	metrics   observer
	timeout   time.Duration
	maxTokens int
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a new diet service. metrics may be nil; a zero
// timeout means 30s.
func NewService(
	log *slog.Logger,
	sessions sessionRepo,
	plans planRepo,
	gen generator,
	metrics observer,
	timeout time.Duration,
	maxTokens int,
) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		sessions:  sessions,
		plans:     plans,
		gen:       gen,
		metrics:   metrics,
		timeout:   timeout,
		maxTokens: maxTokens,
		log:       log.With("service", "diet"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}
