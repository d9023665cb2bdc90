package domain

import "github.com/google/uuid"

// Identity is the verified caller produced by the authentication middleware.
// Every user-scoped operation receives it explicitly.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// IsZero reports whether the identity carries no user.
func (i Identity) IsZero() bool { return i.UserID == uuid.Nil }
