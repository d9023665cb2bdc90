package chat

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/nova-backend/internal/domain"
)

// memRepo is an in-memory sessionRepo with the same version and ownership
// rules as the PostgreSQL repository.
type memRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.ChatSession

	// conflicts makes the next N AppendMessages calls fail with ErrConflict.
	conflicts int
	getCalls  int
}

var _ sessionRepo = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{sessions: make(map[uuid.UUID]*domain.ChatSession)}
}

func clone(s *domain.ChatSession) *domain.ChatSession {
	c := *s
	c.Messages = append([]domain.ChatMessage(nil), s.Messages...)
	return &c
}

func (r *memRepo) Create(_ context.Context, s domain.ChatSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[s.ID]; ok {
		return domain.ErrConflict
	}
	r.sessions[s.ID] = clone(&s)
	return nil
}

func (r *memRepo) owned(userID, id uuid.UUID) (*domain.ChatSession, error) {
	s, ok := r.sessions[id]
	if !ok || s.UserID != userID {
		return nil, fmt.Errorf("chat_session %s: %w", id, domain.ErrNotFound)
	}
	return s, nil
}

func (r *memRepo) List(_ context.Context, userID uuid.UUID, limit, offset int) ([]domain.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.ChatSession
	for _, s := range r.sessions {
		if s.UserID == userID {
			c := *s
			c.Messages = nil
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memRepo) Get(_ context.Context, userID, id uuid.UUID) (*domain.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.getCalls++
	s, err := r.owned(userID, id)
	if err != nil {
		return nil, err
	}
	return clone(s), nil
}

func (r *memRepo) Latest(_ context.Context, userID uuid.UUID) (*domain.ChatSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *domain.ChatSession
	for _, s := range r.sessions {
		if s.UserID == userID && (latest == nil || s.UpdatedAt.After(latest.UpdatedAt)) {
			latest = s
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	return clone(latest), nil
}

func (r *memRepo) AppendMessages(_ context.Context, userID, id uuid.UUID, expected int64, msgs []domain.ChatMessage, title string, updatedAt time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, err := r.owned(userID, id)
	if err != nil {
		return 0, err
	}
	if r.conflicts > 0 {
		r.conflicts--
		s.Version++
		return 0, domain.ErrConflict
	}
	if s.Version != expected {
		return 0, domain.ErrConflict
	}
	s.Version++
	s.Title = title
	s.UpdatedAt = updatedAt
	s.Messages = append(s.Messages, msgs...)
	return s.Version, nil
}

func (r *memRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.owned(userID, id); err != nil {
		return err
	}
	delete(r.sessions, id)
	return nil
}

func (r *memRepo) session(id uuid.UUID) *domain.ChatSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return clone(r.sessions[id])
}
