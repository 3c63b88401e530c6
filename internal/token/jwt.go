package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/scriba-server/internal/model"
)

const (
	issuer = "scriba"

	audienceSession = "session"
	audienceReset   = "password-reset"

	sessionTTL = 24 * time.Hour
	resetTTL   = time.Hour
)

// Option configures an issuer.
type Option func(*signer)

// WithClock overrides the time source used for issuing and verifying tokens.
func WithClock(now func() time.Time) Option {
	return func(s *signer) {
		s.now = now
	}
}

// WithTTL overrides the token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *signer) {
		s.ttl = ttl
	}
}

// signer holds the immutable signing material shared by both issuers.
type signer struct {
	secretKey []byte
	audience  string
	ttl       time.Duration
	now       func() time.Time
}

func newSigner(secretKey, audience string, ttl time.Duration, opts []Option) signer {
	s := signer{
		secretKey: []byte(secretKey),
		audience:  audience,
		ttl:       ttl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s signer) registeredClaims() jwt.RegisteredClaims {
	now := s.now()
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    issuer,
		Audience:  jwt.ClaimStrings{s.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
}

func (s signer) sign(claims jwt.Claims) (string, error) {
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", s.audience, err)
	}
	return tokenString, nil
}

// parse verifies signature, algorithm, issuer, audience and expiry.
// Every failure collapses into model.ErrInvalidOrExpiredToken.
func (s signer) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return model.ErrInvalidOrExpiredToken
	}
	return nil
}

// SessionClaims are the JWT claims of a session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// SessionIssuer signs and verifies 24 hour bearer tokens carrying identity claims.
type SessionIssuer struct {
	signer signer
}

// NewSessionIssuer creates a session token issuer with the provided secret key.
func NewSessionIssuer(secretKey string, opts ...Option) *SessionIssuer {
	return &SessionIssuer{signer: newSigner(secretKey, audienceSession, sessionTTL, opts)}
}

// Issue creates a session token for the given identity.
func (i *SessionIssuer) Issue(claims model.IdentityClaims) (string, error) {
	return i.signer.sign(SessionClaims{
		RegisteredClaims: i.signer.registeredClaims(),
		UserID:           claims.UserID,
		Email:            claims.Email,
	})
}

// Verify validates a session token and returns its identity claims.
func (i *SessionIssuer) Verify(tokenString string) (model.IdentityClaims, error) {
	claims := &SessionClaims{}
	if err := i.signer.parse(tokenString, claims); err != nil {
		return model.IdentityClaims{}, err
	}
	if claims.UserID == uuid.Nil {
		return model.IdentityClaims{}, model.ErrInvalidOrExpiredToken
	}
	return model.IdentityClaims{UserID: claims.UserID, Email: claims.Email}, nil
}

// Decode returns the claims of a session token WITHOUT checking its signature or expiry.
// Diagnostics only; never use the result to authorize anything.
func (i *SessionIssuer) Decode(tokenString string) (model.IdentityClaims, error) {
	claims := &SessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return model.IdentityClaims{}, fmt.Errorf("failed to decode token: %w", err)
	}
	return model.IdentityClaims{UserID: claims.UserID, Email: claims.Email}, nil
}

// ResetClaims are the JWT claims of a password reset token.
type ResetClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// ResetIssuer signs and verifies one hour tokens bound to an email address.
// Its tokens carry their own audience, so SessionIssuer never accepts them.
type ResetIssuer struct {
	signer signer
}

// NewResetIssuer creates a reset token issuer with the provided secret key.
func NewResetIssuer(secretKey string, opts ...Option) *ResetIssuer {
	return &ResetIssuer{signer: newSigner(secretKey, audienceReset, resetTTL, opts)}
}

// TTL returns the lifetime of issued reset tokens.
func (i *ResetIssuer) TTL() time.Duration {
	return i.signer.ttl
}

// Issue creates a reset token for email.
func (i *ResetIssuer) Issue(email string) (string, error) {
	return i.signer.sign(ResetClaims{
		RegisteredClaims: i.signer.registeredClaims(),
		Email:            email,
	})
}

// Verify validates a reset token and returns its claims.
func (i *ResetIssuer) Verify(tokenString string) (model.ResetClaims, error) {
	claims := &ResetClaims{}
	if err := i.signer.parse(tokenString, claims); err != nil {
		return model.ResetClaims{}, err
	}
	if claims.Email == "" || claims.ID == "" {
		return model.ResetClaims{}, model.ErrInvalidOrExpiredToken
	}
	return model.ResetClaims{
		Email:     claims.Email,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
