package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/internal/llm"
	"github.com/heartmarshall/nova-backend/pkg/ctxutil"
)

// Reply is the outcome of an append.
type Reply struct {
	SessionID uuid.UUID
	MessageID uuid.UUID
	Content   string
	Title     string
	// Replayed is true when the exchange had already been stored and the
	// saved reply was returned without generating again.
	Replayed bool
}

// AppendMessage adds a user message to an existing session, generates the
// assistant reply from the full history and commits both atomically.
func (s *Service) AppendMessage(ctx context.Context, input SendInput) (Reply, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return Reply{}, domain.ErrUnauthorized
	}
	if err := input.Validate(s.opts.MaxMessageLength); err != nil {
		return Reply{}, err
	}

	return s.appendMessage(ctx, userID, input)
}

func (s *Service) appendMessage(ctx context.Context, userID uuid.UUID, input SendInput) (Reply, error) {
	msgID := uuid.New()
	if input.MessageID != nil {
		msgID = *input.MessageID
	}

	unlock := s.sessLocks.Lock(input.SessionID)
	defer unlock()

	for attempt := 1; attempt <= s.opts.AppendAttempts; attempt++ {
		sess, err := s.sessions.Get(ctx, userID, input.SessionID)
		if err != nil {
			return Reply{}, err
		}

		if stored, ok := sess.FindReply(msgID); ok {
			s.log.InfoContext(ctx, "chat message replayed",
				slog.String("session_id", sess.ID.String()),
				slog.String("message_id", msgID.String()),
			)
			return Reply{
				SessionID: sess.ID,
				MessageID: msgID,
				Content:   stored.Content,
				Title:     sess.Title,
				Replayed:  true,
			}, nil
		}

		reply, err := s.exchange(ctx, userID, sess, msgID, input.Content)
		if errors.Is(err, domain.ErrConflict) {
			s.log.WarnContext(ctx, "chat append conflict, retrying",
				slog.String("session_id", sess.ID.String()),
				slog.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return Reply{}, err
		}
		return reply, nil
	}

	return Reply{}, fmt.Errorf("append to chat session %s: gave up after %d attempts: %w",
		input.SessionID, s.opts.AppendAttempts, domain.ErrConflict)
}

// exchange generates a reply against sess and commits the pair.
func (s *Service) exchange(ctx context.Context, userID uuid.UUID, sess *domain.ChatSession, msgID uuid.UUID, content string) (Reply, error) {
	req := s.buildRequest(sess, content)
	firstMessage := sess.UserMessageCount() == 0

	var (
		answer string
		title  = sess.Title
		g      errgroup.Group
	)
	g.Go(func() error {
		var err error
		answer, err = s.generate(ctx, "chat", s.opts.Timeout, req)
		return err
	})
	if firstMessage {
		g.Go(func() error {
			title = s.deriveTitle(ctx, content)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Reply{}, err
	}

	now := s.now()
	seq := sess.NextSeq()
	msgs := []domain.ChatMessage{
		{Seq: seq, Role: domain.ChatRoleUser, Content: content, MessageID: &msgID, CreatedAt: now},
		{Seq: seq + 1, Role: domain.ChatRoleAssistant, Content: answer, MessageID: &msgID, CreatedAt: now},
	}

	if _, err := s.sessions.AppendMessages(ctx, userID, sess.ID, sess.Version, msgs, title, now); err != nil {
		return Reply{}, err
	}

	s.log.InfoContext(ctx, "chat message appended",
		slog.String("user_id", userID.String()),
		slog.String("session_id", sess.ID.String()),
		slog.String("message_id", msgID.String()),
	)

	return Reply{SessionID: sess.ID, MessageID: msgID, Content: answer, Title: title}, nil
}

// buildRequest translates the stored history plus the new message into a
// generation request. System messages become the request's system prompt.
func (s *Service) buildRequest(sess *domain.ChatSession, content string) llm.Request {
	var (
		system string
		turns  []llm.Message
	)
	for _, m := range sess.Messages {
		switch m.Role {
		case domain.ChatRoleSystem:
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
		case domain.ChatRoleUser:
			turns = append(turns, llm.Message{Role: llm.RoleUser, Content: m.Content})
		case domain.ChatRoleAssistant:
			turns = append(turns, llm.Message{Role: llm.RoleAssistant, Content: m.Content})
		}
	}
	if s.opts.HistoryLimit > 0 && len(turns) > s.opts.HistoryLimit {
		turns = turns[len(turns)-s.opts.HistoryLimit:]
	}
	turns = append(turns, llm.Message{Role: llm.RoleUser, Content: content})

	return llm.Request{System: system, Messages: turns, MaxTokens: s.opts.MaxTokens}
}

// generate runs one bounded generation call and normalizes its error to the
// domain taxonomy.
func (s *Service) generate(ctx context.Context, purpose string, timeout time.Duration, req llm.Request) (string, error) {
	genCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	out, err := s.gen.Generate(genCtx, req)
	if s.metrics != nil {
		s.metrics.ObserveGeneration(purpose, time.Since(start), err)
	}
	if err == nil {
		return out, nil
	}

	switch {
	case errors.Is(err, domain.ErrUnavailable), errors.Is(err, domain.ErrDownstream):
		return "", err
	case ctx.Err() != nil:
		return "", ctx.Err()
	case errors.Is(err, context.DeadlineExceeded):
		return "", fmt.Errorf("%w: %s generation timed out after %s", domain.ErrUnavailable, purpose, timeout)
	default:
		return "", fmt.Errorf("%w: %s generation: %w", domain.ErrDownstream, purpose, err)
	}
}
