package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/scriba-server/internal/credential"
	"github.com/dtroode/scriba-server/internal/logger"
	"github.com/dtroode/scriba-server/internal/metrics"
	"github.com/dtroode/scriba-server/internal/model"
)

// dummyPassword is hashed once so logins for unknown emails still pay for a compare.
const dummyPassword = "Scriba-dummy-1!"

// DocumentsPrefix is the storage prefix holding a user's documents.
func DocumentsPrefix(userID uuid.UUID) string {
	return "documents/" + userID.String() + "/"
}

// AccountOption configures Account.
type AccountOption func(*Account)

// WithAccountMetrics records login outcomes.
func WithAccountMetrics(m *metrics.Metrics) AccountOption {
	return func(a *Account) {
		a.metrics = m
	}
}

// WithDocumentStorage purges the user's documents on account deletion.
func WithDocumentStorage(storage model.Storage) AccountOption {
	return func(a *Account) {
		a.storage = storage
	}
}

// Account registers users, logs them in and authenticates their sessions.
type Account struct {
	userStore model.UserStore
	hasher    model.Hasher
	sessions  model.SessionTokenIssuer
	storage   model.Storage
	metrics   *metrics.Metrics
	logger    *logger.Logger
	dummyHash string
}

func NewAccount(
	userStore model.UserStore,
	hasher model.Hasher,
	sessions model.SessionTokenIssuer,
	logger *logger.Logger,
	opts ...AccountOption,
) (*Account, error) {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy credential: %w", err)
	}

	a := &Account{
		userStore: userStore,
		hasher:    hasher,
		sessions:  sessions,
		logger:    logger,
		dummyHash: dummyHash,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Register creates a user with a hashed password.
func (a *Account) Register(ctx context.Context, email, password string) (model.User, error) {
	email = credential.NormalizeEmail(email)
	if err := credential.ValidateEmail(email); err != nil {
		return model.User{}, err
	}
	if err := credential.ValidatePassword(password); err != nil {
		return model.User{}, err
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		a.logger.Error("Account service: failed to hash password",
			"error", err.Error())
		return model.User{}, hashingError(err)
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, model.ErrEmailTaken) {
		a.logger.Info("Account service: email already taken")
		return model.User{}, model.ErrEmailTaken
	}
	if err != nil {
		a.logger.Error("Account service: failed to create user",
			"error", err.Error())
		return model.User{}, fmt.Errorf("%w: failed to create user: %w", model.ErrRequestFailed, err)
	}

	a.logger.Info("Account service: user registered",
		"user_id", user.ID)

	return user, nil
}

// Login checks the password and returns a session token.
func (a *Account) Login(ctx context.Context, email, password string) (string, error) {
	email = credential.NormalizeEmail(email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		_, _ = a.hasher.Verify(password, a.dummyHash)
		a.metrics.RecordLogin(metrics.OutcomeRejected)
		return "", model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Account service: failed to get user by email",
			"error", err.Error())
		a.metrics.RecordLogin(metrics.OutcomeFailure)
		return "", fmt.Errorf("%w: failed to get user by email: %w", model.ErrRequestFailed, err)
	}

	ok, err := a.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		a.logger.Error("Account service: failed to verify password",
			"user_id", user.ID,
			"error", err.Error())
		a.metrics.RecordLogin(metrics.OutcomeFailure)
		return "", fmt.Errorf("%w: %w", model.ErrRequestFailed, err)
	}
	if !ok {
		a.metrics.RecordLogin(metrics.OutcomeRejected)
		return "", model.ErrInvalidCredentials
	}

	if a.hasher.NeedsRehash(user.PasswordHash) {
		a.rehash(ctx, user, password)
	}

	token, err := a.sessions.Issue(model.IdentityClaims{UserID: user.ID, Email: user.Email})
	if err != nil {
		a.logger.Error("Account service: failed to issue session token",
			"user_id", user.ID,
			"error", err.Error())
		a.metrics.RecordLogin(metrics.OutcomeFailure)
		return "", fmt.Errorf("%w: %w", model.ErrRequestFailed, err)
	}

	a.logger.Info("Account service: user logged in",
		"user_id", user.ID)
	a.metrics.RecordLogin(metrics.OutcomeSuccess)

	return token, nil
}

// rehash upgrades a credential made with an outdated cost. Failures only cost the upgrade.
func (a *Account) rehash(ctx context.Context, user model.User, password string) {
	hash, err := a.hasher.Hash(password)
	if err != nil {
		a.logger.Warn("Account service: failed to rehash password",
			"user_id", user.ID,
			"error", err.Error())
		return
	}
	if err := a.userStore.UpdatePassword(ctx, user.ID, hash); err != nil {
		a.logger.Warn("Account service: failed to store rehashed password",
			"user_id", user.ID,
			"error", err.Error())
	}
}

// Authenticate verifies a session token and checks the user still exists.
func (a *Account) Authenticate(ctx context.Context, token string) (model.IdentityClaims, error) {
	claims, err := a.sessions.Verify(token)
	if err != nil {
		return model.IdentityClaims{}, model.ErrInvalidOrExpiredToken
	}

	_, err = a.userStore.GetByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return model.IdentityClaims{}, model.ErrInvalidOrExpiredToken
	}
	if err != nil {
		a.logger.Error("Account service: failed to get user by id",
			"user_id", claims.UserID,
			"error", err.Error())
		return model.IdentityClaims{}, fmt.Errorf("%w: failed to get user by id: %w", model.ErrRequestFailed, err)
	}

	return claims, nil
}

// Delete purges the user's documents and soft-deletes the user.
func (a *Account) Delete(ctx context.Context, userID uuid.UUID) error {
	_, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrUserNotFound
	}
	if err != nil {
		a.logger.Error("Account service: failed to get user by id",
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("%w: failed to get user by id: %w", model.ErrRequestFailed, err)
	}

	if a.storage != nil {
		err = a.storage.DeletePrefix(ctx, DocumentsPrefix(userID))
		if err != nil {
			a.logger.Error("Account service: failed to purge documents",
				"user_id", userID,
				"error", err.Error())
			return fmt.Errorf("%w: failed to purge documents: %w", model.ErrRequestFailed, err)
		}
	}

	err = a.userStore.Delete(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrUserNotFound
	}
	if err != nil {
		a.logger.Error("Account service: failed to delete user",
			"user_id", userID,
			"error", err.Error())
		return fmt.Errorf("%w: failed to delete user: %w", model.ErrRequestFailed, err)
	}

	a.logger.Info("Account service: user deleted",
		"user_id", userID)

	return nil
}
