package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/nova-backend/internal/domain"
	"github.com/heartmarshall/nova-backend/internal/service/chat"
)

type chatService interface {
	CreateSession(ctx context.Context) (*domain.ChatSession, error)
	ListSessions(ctx context.Context, input chat.ListInput) ([]domain.ChatSession, error)
	GetSession(ctx context.Context, sessionID uuid.UUID) (*domain.ChatSession, error)
	DeleteSession(ctx context.Context, sessionID uuid.UUID) error
	AppendMessage(ctx context.Context, input chat.SendInput) (chat.Reply, error)
	LatestHistory(ctx context.Context) ([]domain.ChatMessage, error)
	SendLatest(ctx context.Context, content string, messageID *uuid.UUID) (chat.Reply, error)
}

// ChatHandler serves NOVA conversations.
type ChatHandler struct {
	svc chatService
	dec decoder
	log *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(svc chatService, maxBodyBytes int64, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, dec: newDecoder(maxBodyBytes), log: logger.With("handler", "chat")}
}

type sendRequest struct {
	Message   string `json:"message"`
	MessageID string `json:"message_id"`
}

// messageID parses the optional client idempotency key.
func (req sendRequest) messageID() (*uuid.UUID, error) {
	if req.MessageID == "" {
		return nil, nil
	}
	mid, err := uuid.Parse(req.MessageID)
	if err != nil {
		return nil, domain.NewValidationError("message_id", "must be a UUID")
	}
	return &mid, nil
}

type sessionSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type sessionResponse struct {
	ID        uuid.UUID            `json:"id"`
	UserID    uuid.UUID            `json:"user_id"`
	Title     string               `json:"title"`
	Messages  []domain.ChatMessage `json:"messages"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

type messageResponse struct {
	Content   string    `json:"content"`
	Title     string    `json:"title"`
	MessageID uuid.UUID `json:"message_id"`
}

type legacyReply struct {
	Response string `json:"response"`
}

type deletedResponse struct {
	Message string `json:"message"`
}

func toSessionResponse(s *domain.ChatSession) sessionResponse {
	msgs := s.Messages
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	return sessionResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Title:     s.Title,
		Messages:  msgs,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// ListSessions handles GET /chat/sessions?limit=&offset=.
func (h *ChatHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	input, err := listInput(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	sessions, err := h.svc.ListSessions(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]sessionSummary, len(sessions))
	for i, s := range sessions {
		out[i] = sessionSummary{ID: s.ID, Title: s.Title, CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt}
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateSession handles POST /chat/sessions.
func (h *ChatHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.CreateSession(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSessionResponse(s))
}

// GetSession handles GET /chat/sessions/{id}.
func (h *ChatHandler) GetSession(w http.ResponseWriter, r *http.Request) {
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
	writeJSON(w, http.StatusOK, toSessionResponse(s))
}

// DeleteSession handles DELETE /chat/sessions/{id}.
func (h *ChatHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
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

// SendMessage handles POST /chat/sessions/{id}/message.
func (h *ChatHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req sendRequest
	if err := h.dec.decode(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	mid, err := req.messageID()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	input := chat.SendInput{SessionID: id, Content: req.Message, MessageID: mid}

	reply, err := h.svc.AppendMessage(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Content:   reply.Content,
		Title:     reply.Title,
		MessageID: reply.MessageID,
	})
}

// History handles GET /chat: the visible history of the most recent session.
func (h *ChatHandler) History(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.LatestHistory(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if msgs == nil {
		msgs = []domain.ChatMessage{}
	}
	writeJSON(w, http.StatusOK, msgs)
}

// Send handles POST /chat: appends to the most recent session, creating one
// when the user has none.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := h.dec.decode(w, r, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	mid, err := req.messageID()
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	reply, err := h.svc.SendLatest(r.Context(), req.Message, mid)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, legacyReply{Response: reply.Content})
}

func listInput(r *http.Request) (chat.ListInput, error) {
	var (
		input chat.ListInput
		errs  []domain.FieldError
	)
	q := r.URL.Query()
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "limit", Message: "must be an integer"})
		}
		input.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "offset", Message: "must be an integer"})
		}
		input.Offset = n
	}
	if len(errs) > 0 {
		return chat.ListInput{}, domain.NewValidationErrors(errs)
	}
	return input, nil
}
