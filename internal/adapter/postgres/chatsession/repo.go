// Package chatsession persists conversation sessions and their ordered,
// append-only message log.
package chatsession

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/heartmarshall/nova-backend/internal/adapter/postgres"
	"github.com/heartmarshall/nova-backend/internal/domain"
)

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repo provides chat session persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
	tx txRunner
}

// New creates a new chat session repository.
func New(db postgres.Querier, tx txRunner) *Repo {
	return &Repo{db: db, tx: tx}
}

type sessionRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	Title     string    `db:"title"`
	Version   int64     `db:"version"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r sessionRow) toDomain() domain.ChatSession {
	return domain.ChatSession{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Version:   r.Version,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type messageRow struct {
	Seq       int64      `db:"seq"`
	Role      string     `db:"role"`
	Content   string     `db:"content"`
	MessageID *uuid.UUID `db:"message_id"`
	CreatedAt time.Time  `db:"created_at"`
}

var sessionColumns = []string{"id", "user_id", "title", "version", "created_at", "updated_at"}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// List returns the user's sessions, most recently updated first, without
// messages. limit <= 0 means no limit.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.ChatSession, error) {
	b := postgres.Builder().
		Select(sessionColumns...).
		From("chat_sessions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC", "id")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build chat_sessions list: %w", err)
	}

	var rows []sessionRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list chat_sessions: %w", err)
	}

	out := make([]domain.ChatSession, len(rows))
	for i, row := range rows {
		out[i] = row.toDomain()
	}
	return out, nil
}

// Get returns the session with its full message log ordered by seq.
// Returns domain.ErrNotFound when the session does not exist or belongs to
// another user.
func (r *Repo) Get(ctx context.Context, userID, sessionID uuid.UUID) (*domain.ChatSession, error) {
	query, args, err := postgres.Builder().
		Select(sessionColumns...).
		From("chat_sessions").
		Where(sq.Eq{"id": sessionID, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build chat_session get: %w", err)
	}

	return r.load(ctx, sessionID, query, args)
}

// Latest returns the user's most recently updated session with messages.
func (r *Repo) Latest(ctx context.Context, userID uuid.UUID) (*domain.ChatSession, error) {
	query, args, err := postgres.Builder().
		Select(sessionColumns...).
		From("chat_sessions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("updated_at DESC", "id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build chat_session latest: %w", err)
	}

	return r.load(ctx, latestKey(userID), query, args)
}

// latestKey labels errors of a Latest lookup, which has no session id.
func latestKey(userID uuid.UUID) string {
	return "latest of user " + userID.String()
}

// load reads one session row and its messages; key names the lookup in errors.
func (r *Repo) load(ctx context.Context, key any, query string, args []any) (*domain.ChatSession, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row sessionRow
	if err := pgxscan.Get(ctx, q, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("chat_session %v: %w", key, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "chat_session", key)
	}

	msgs, err := r.messages(ctx, q, row.ID)
	if err != nil {
		return nil, err
	}

	s := row.toDomain()
	s.Messages = msgs
	return &s, nil
}

const listMessagesSQL = `SELECT seq, role, content, message_id, created_at
FROM chat_messages WHERE session_id = $1 ORDER BY seq`

func (r *Repo) messages(ctx context.Context, q postgres.Querier, sessionID uuid.UUID) ([]domain.ChatMessage, error) {
	var rows []messageRow
	if err := pgxscan.Select(ctx, q, &rows, listMessagesSQL, sessionID); err != nil {
		return nil, fmt.Errorf("list chat_messages %s: %w", sessionID, err)
	}

	out := make([]domain.ChatMessage, len(rows))
	for i, m := range rows {
		out[i] = domain.ChatMessage{
			Seq:       m.Seq,
			Role:      domain.ChatRole(m.Role),
			Content:   m.Content,
			MessageID: m.MessageID,
			CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a session together with its initial messages.
func (r *Repo) Create(ctx context.Context, s domain.ChatSession) error {
	query, args, err := postgres.Builder().
		Insert("chat_sessions").
		Columns(sessionColumns...).
		Values(s.ID, s.UserID, s.Title, s.Version, s.CreatedAt, s.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build chat_session insert: %w", err)
	}

	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
			return postgres.MapError(err, "chat_session", s.ID)
		}
		return r.insertMessages(ctx, s.ID, s.Messages)
	})
}

const bumpVersionSQL = `UPDATE chat_sessions
SET version = version + 1, title = $4, updated_at = $5
WHERE id = $1 AND user_id = $2 AND version = $3
RETURNING version`

const ownedSQL = `SELECT EXISTS(SELECT 1 FROM chat_sessions WHERE id = $1 AND user_id = $2)`

// AppendMessages appends msgs and sets title in one transaction, provided
// the session is still at expectedVersion. Returns the new version.
// Returns domain.ErrNotFound if the session is absent or not owned, and
// domain.ErrConflict if another writer committed first.
func (r *Repo) AppendMessages(
	ctx context.Context,
	userID, sessionID uuid.UUID,
	expectedVersion int64,
	msgs []domain.ChatMessage,
	title string,
	updatedAt time.Time,
) (int64, error) {
	var version int64

	err := r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		err := q.QueryRow(ctx, bumpVersionSQL, sessionID, userID, expectedVersion, title, updatedAt).Scan(&version)
		if errors.Is(err, pgx.ErrNoRows) {
			var owned bool
			if err := q.QueryRow(ctx, ownedSQL, sessionID, userID).Scan(&owned); err != nil {
				return postgres.MapError(err, "chat_session", sessionID)
			}
			if !owned {
				return fmt.Errorf("chat_session %s: %w", sessionID, domain.ErrNotFound)
			}
			return fmt.Errorf("chat_session %s: version %d is stale: %w", sessionID, expectedVersion, domain.ErrConflict)
		}
		if err != nil {
			return postgres.MapError(err, "chat_session", sessionID)
		}

		return r.insertMessages(ctx, sessionID, msgs)
	})
	if err != nil {
		return 0, err
	}
	return version, nil
}

func (r *Repo) insertMessages(ctx context.Context, sessionID uuid.UUID, msgs []domain.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}

	b := postgres.Builder().
		Insert("chat_messages").
		Columns("session_id", "seq", "role", "content", "message_id", "created_at")
	for _, m := range msgs {
		b = b.Values(sessionID, m.Seq, string(m.Role), m.Content, m.MessageID, m.CreatedAt)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build chat_messages insert: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "chat_messages", sessionID)
	}
	return nil
}

const deleteSessionSQL = `DELETE FROM chat_sessions WHERE id = $1 AND user_id = $2`

// Delete removes a session and, by cascade, its messages.
// Returns domain.ErrNotFound when nothing owned by the user was deleted.
func (r *Repo) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, deleteSessionSQL, sessionID, userID)
	if err != nil {
		return postgres.MapError(err, "chat_session", sessionID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("chat_session %s: %w", sessionID, domain.ErrNotFound)
	}
	return nil
}
