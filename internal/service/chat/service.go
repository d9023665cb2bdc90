// Package chat manages NOVA conversation sessions: creation, history,
// appends with generated replies, and deletion.
package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/internal/llm"
)

type sessionRepo interface {
	Create(ctx context.Context, s domain.ChatSession) error
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ChatSession, error)
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*domain.ChatSession, error)
	Latest(ctx context.Context, userID uuid.UUID) (*domain.ChatSession, error)
	AppendMessages(ctx context.Context, userID, sessionID uuid.UUID, expectedVersion int64, msgs []domain.ChatMessage, title string, updatedAt time.Time) (int64, error)
	Delete(ctx context.Context, userID, sessionID uuid.UUID) error
}

type generator interface {
	Generate(ctx context.Context, req llm.Request) (string, error)
}

type observer interface {
	ObserveGeneration(purpose string, d time.Duration, err error)
}

// Options tunes limits and timeouts. Zero values fall back to defaults.
type Options struct {
	MaxMessageLength int
	AppendAttempts   int
	// HistoryLimit caps prior turns sent to the generator; 0 sends all.
	HistoryLimit int
	MaxTokens    int
	Timeout      time.Duration
	TitleTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.MaxMessageLength <= 0 {
		o.MaxMessageLength = 4000
	}
	if o.AppendAttempts <= 0 {
		o.AppendAttempts = 3
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	if o.TitleTimeout <= 0 {
		o.TitleTimeout = 5 * time.Second
	}
	return o
}

// Service provides chat session operations.
type Service struct {
	sessions  sessionRepo
	gen       generator
	metrics   observer
	opts      Options
	log       *slog.Logger
	now       func() time.Time
	sessLocks *keyedMutex
	userLocks *keyedMutex
}

// NewService creates a new chat service. metrics may be nil.
func NewService(log *slog.Logger, sessions sessionRepo, gen generator, metrics observer, opts Options) *Service {
	return &Service{
		sessions:  sessions,
		gen:       gen,
		metrics:   metrics,
		opts:      opts.withDefaults(),
		log:       log.With("service", "chat"),
		now:       func() time.Time { return time.Now().UTC() },
		sessLocks: newKeyedMutex(),
		userLocks: newKeyedMutex(),
	}
}
