package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultChatTitle is the placeholder title of a fresh session and the
// fallback when title derivation fails.
const DefaultChatTitle = "New Chat"

// MaxChatTitleLength caps derived titles, in characters.
const MaxChatTitleLength = 50

// AssistantPersona is the system message every chat session starts with.
const AssistantPersona = "You are NOVA, an AI assistant that is here to help users with their pregnancy journey. " +
	"You will only provide accurate and helpful information related to pregnancy, avoiding any " +
	"medical advice or unrelated topics. Be polite and respectful at all times. " +
	"Format your responses using markdown for better readability with headings, bullet points, " +
	"and emphasis where appropriate."

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

func (r ChatRole) String() string { return string(r) }

func (r ChatRole) IsValid() bool {
	switch r {
	case ChatRoleSystem, ChatRoleUser, ChatRoleAssistant:
		return true
	}
	return false
}

// ChatMessage is one entry of a session history. Seq is assigned by the
// store and totally orders messages within a session.
type ChatMessage struct {
	Seq       int64      `json:"-"`
	Role      ChatRole   `json:"role"`
	Content   string     `json:"content"`
	MessageID *uuid.UUID `json:"message_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ChatSession is a user-owned, ordered conversation. Version increases on
// every committed append and guards concurrent writers.
type ChatSession struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Version   int64
	Messages  []ChatMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VisibleMessages returns the history without system messages.
func (s *ChatSession) VisibleMessages() []ChatMessage {
	out := make([]ChatMessage, 0, len(s.Messages))
	for _, m := range s.Messages {
		if m.Role != ChatRoleSystem {
			out = append(out, m)
		}
	}
	return out
}

// UserMessageCount returns the number of user-authored messages.
func (s *ChatSession) UserMessageCount() int {
	n := 0
	for _, m := range s.Messages {
		if m.Role == ChatRoleUser {
			n++
		}
	}
	return n
}

// FindReply returns the assistant message stored for the given logical
// message id, if the exchange was already committed.
func (s *ChatSession) FindReply(messageID uuid.UUID) (ChatMessage, bool) {
	for _, m := range s.Messages {
		if m.Role == ChatRoleAssistant && m.MessageID != nil && *m.MessageID == messageID {
			return m, true
		}
	}
	return ChatMessage{}, false
}

// NextSeq returns the sequence number the next appended message receives.
func (s *ChatSession) NextSeq() int64 {
	if len(s.Messages) == 0 {
		return 1
	}
	return s.Messages[len(s.Messages)-1].Seq + 1
}
