package model

import (
	"time"

	"github.com/google/uuid"
)

// IdentityClaims is the payload carried by a session token.
type IdentityClaims struct {
	UserID uuid.UUID
	Email  string
}

// ResetClaims is the payload carried by a password reset token.
// TokenID and ExpiresAt come from the registered claims and only serve
// as the key of the optional single-use marker.
type ResetClaims struct {
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// ResetSubmission is the final step of the password reset handshake.
type ResetSubmission struct {
	Token          string
	Password       string
	RepeatPassword string
}
