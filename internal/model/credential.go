package model

import "time"

// Hasher produces and checks one-way password credentials.
type Hasher interface {
	Hash(plaintext string) (string, error)
	// Verify returns (false, nil) on mismatch and an error only for malformed credentials.
	Verify(plaintext, credential string) (bool, error)
	NeedsRehash(credential string) bool
}

// SessionTokenIssuer signs and checks session tokens.
type SessionTokenIssuer interface {
	Issue(claims IdentityClaims) (string, error)
	Verify(token string) (IdentityClaims, error)
}

// ResetTokenIssuer signs and checks password reset tokens.
type ResetTokenIssuer interface {
	Issue(email string) (string, error)
	Verify(token string) (ResetClaims, error)
	TTL() time.Duration
}
