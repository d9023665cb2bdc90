package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/nova-backend/internal/domain"
)

// SeedChatSession inserts a session owned by userID holding the persona
// message, the same shape CreateSession produces.
func SeedChatSession(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.ChatSession {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	s := domain.ChatSession{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     domain.DefaultChatTitle,
		CreatedAt: now,
		UpdatedAt: now,
		Messages: []domain.ChatMessage{
			{Seq: 1, Role: domain.ChatRoleSystem, Content: domain.AssistantPersona, CreatedAt: now},
		},
	}

	if _, err := pool.Exec(ctx,
		`INSERT INTO chat_sessions (id, user_id, title, version, created_at, updated_at)
		 VALUES ($1, $2, $3, 0, $4, $4)`,
		s.ID, s.UserID, s.Title, now,
	); err != nil {
		t.Fatalf("SeedChatSession: insert session: %v", err)
	}

	if _, err := pool.Exec(ctx,
		`INSERT INTO chat_messages (session_id, seq, role, content, created_at)
		 VALUES ($1, 1, 'system', $2, $3)`,
		s.ID, domain.AssistantPersona, now,
	); err != nil {
		t.Fatalf("SeedChatSession: insert persona: %v", err)
	}

	return s
}
