package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/pkg/ctxutil"
)

// LatestHistory returns the visible history of the caller's most recently
// updated session, or an empty history when there is none.
func (s *Service) LatestHistory(ctx context.Context) ([]domain.ChatMessage, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	sess, err := s.sessions.Latest(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.ChatMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest chat session: %w", err)
	}
	return sess.VisibleMessages(), nil
}

// SendLatest appends to the caller's most recent session, creating one
// first if the caller has none. A repeated messageID returns the stored
// reply of that session.
func (s *Service) SendLatest(ctx context.Context, content string, messageID *uuid.UUID) (Reply, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return Reply{}, domain.ErrUnauthorized
	}
	if errs := contentErrors(content, s.opts.MaxMessageLength); len(errs) > 0 {
		return Reply{}, domain.NewValidationErrors(errs)
	}
	if messageID != nil && *messageID == uuid.Nil {
		return Reply{}, domain.NewValidationError("message_id", "must not be the nil uuid")
	}

	unlock := s.userLocks.Lock(userID)
	sess, err := s.sessions.Latest(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		sess, err = s.createSession(ctx, userID)
	}
	unlock()
	if err != nil {
		return Reply{}, fmt.Errorf("resolve latest chat session: %w", err)
	}

	return s.appendMessage(ctx, userID, SendInput{SessionID: sess.ID, Content: content, MessageID: messageID})
}
