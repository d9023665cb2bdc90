package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/pkg/ctxutil"
)

// CreateSession starts an empty conversation seeded with the NOVA persona.
func (s *Service) CreateSession(ctx context.Context) (*domain.ChatSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	sess, err := s.createSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	visible := *sess
	visible.Messages = sess.VisibleMessages()
	return &visible, nil
}

func (s *Service) createSession(ctx context.Context, userID uuid.UUID) (*domain.ChatSession, error) {
	now := s.now()
	sess := domain.ChatSession{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     domain.DefaultChatTitle,
		CreatedAt: now,
		UpdatedAt: now,
		Messages: []domain.ChatMessage{
			{Seq: 1, Role: domain.ChatRoleSystem, Content: domain.AssistantPersona, CreatedAt: now},
		},
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create chat session: %w", err)
	}

	s.log.InfoContext(ctx, "chat session created",
		slog.String("user_id", userID.String()),
		slog.String("session_id", sess.ID.String()),
	)
	return &sess, nil
}

// ListSessions returns the caller's sessions, most recently updated first.
// Messages are not loaded.
func (s *Service) ListSessions(ctx context.Context, input ListInput) ([]domain.ChatSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	sessions, err := s.sessions.List(ctx, userID, input.Limit, input.Offset)
	if err != nil {
		return nil, fmt.Errorf("list chat sessions: %w", err)
	}
	return sessions, nil
}

// GetSession returns one session with its visible history. Sessions owned
// by someone else are reported as domain.ErrNotFound.
func (s *Service) GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.ChatSession, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	sess, err := s.sessions.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	sess.Messages = sess.VisibleMessages()
	return sess, nil
}

// DeleteSession removes a session and its history.
func (s *Service) DeleteSession(ctx context.Context, sessionID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	unlock := s.sessLocks.Lock(sessionID)
	defer unlock()

	if err := s.sessions.Delete(ctx, userID, sessionID); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "chat session deleted",
		slog.String("user_id", userID.String()),
		slog.String("session_id", sessionID.String()),
	)
	return nil
}
