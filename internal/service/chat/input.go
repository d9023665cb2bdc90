package chat

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/nova-backend/internal/domain"
)

// SendInput holds the parameters for appending a user message.
type SendInput struct {
	SessionID uuid.UUID
	Content   string
	// MessageID makes the append idempotent. A nil value gets a fresh id.
	MessageID *uuid.UUID
}

func contentErrors(content string, maxLen int) []domain.FieldError {
	if strings.TrimSpace(content) == "" {
		return []domain.FieldError{{Field: "content", Message: "required"}}
	}
	if utf8.RuneCountInString(content) > maxLen {
		return []domain.FieldError{{Field: "content", Message: fmt.Sprintf("max %d characters", maxLen)}}
	}
	return nil
}

// Validate checks all fields and collects all errors.
func (i SendInput) Validate(maxLen int) error {
	var errs []domain.FieldError

	if i.SessionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "session_id", Message: "required"})
	}
	if i.MessageID != nil && *i.MessageID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "message_id", Message: "must not be the nil uuid"})
	}
	errs = append(errs, contentErrors(i.Content, maxLen)...)

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// ListInput holds optional paging for ListSessions. Zero means unbounded.
type ListInput struct {
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be >= 0"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
