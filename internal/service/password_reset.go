package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dtroode/scriba-server/internal/credential"
	"github.com/dtroode/scriba-server/internal/logger"
	"github.com/dtroode/scriba-server/internal/mailer"
	"github.com/dtroode/scriba-server/internal/metrics"
	"github.com/dtroode/scriba-server/internal/model"
)

// ResetPath is the path of the page that consumes reset links.
const ResetPath = "/reset-password"

// PasswordResetOption configures PasswordReset.
type PasswordResetOption func(*PasswordReset)

// WithRedemptionStore makes reset tokens single-use.
func WithRedemptionStore(store model.RedemptionStore) PasswordResetOption {
	return func(p *PasswordReset) {
		p.redemptions = store
	}
}

// WithResetMetrics records request and completion outcomes.
func WithResetMetrics(m *metrics.Metrics) PasswordResetOption {
	return func(p *PasswordReset) {
		p.metrics = m
	}
}

// PasswordReset runs the forgot-password handshake: request, link, form, completion.
// Each step is independent; nothing is held in memory between them.
type PasswordReset struct {
	userStore   model.UserStore
	issuer      model.ResetTokenIssuer
	hasher      model.Hasher
	mail        model.Mailer
	redemptions model.RedemptionStore
	metrics     *metrics.Metrics
	baseURL     string
	logger      *logger.Logger
}

func NewPasswordReset(
	userStore model.UserStore,
	issuer model.ResetTokenIssuer,
	hasher model.Hasher,
	mail model.Mailer,
	baseURL string,
	logger *logger.Logger,
	opts ...PasswordResetOption,
) *PasswordReset {
	p := &PasswordReset{
		userStore: userStore,
		issuer:    issuer,
		hasher:    hasher,
		mail:      mail,
		baseURL:   strings.TrimRight(baseURL, "/"),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SingleUse reports whether reset tokens are redeemed on completion.
func (p *PasswordReset) SingleUse() bool {
	return p.redemptions != nil
}

// ResetURL builds the link sent by email.
func (p *PasswordReset) ResetURL(token string) string {
	return p.baseURL + ResetPath + "?token=" + url.QueryEscape(token)
}

// RequestReset mails a reset link when email belongs to a user.
// Malformed and unknown addresses return nil so callers cannot tell them apart from known ones.
func (p *PasswordReset) RequestReset(ctx context.Context, email string) error {
	email = credential.NormalizeEmail(email)
	if err := credential.ValidateEmail(email); err != nil {
		p.logger.Debug("PasswordReset service: ignoring malformed email")
		p.metrics.RecordResetRequest(metrics.OutcomeInvalid)
		return nil
	}

	user, err := p.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		p.logger.Debug("PasswordReset service: no user for email")
		p.metrics.RecordResetRequest(metrics.OutcomeUnknown)
		return nil
	}
	if err != nil {
		p.logger.Error("PasswordReset service: failed to get user by email",
			"error", err.Error())
		p.metrics.RecordResetRequest(metrics.OutcomeFailure)
		return fmt.Errorf("%w: failed to get user by email: %w", model.ErrRequestFailed, err)
	}

	if err := p.dispatch(ctx, user); err != nil {
		p.logger.Error("PasswordReset service: failed to dispatch reset link",
			"user_id", user.ID,
			"error", err.Error())
		p.metrics.RecordResetRequest(metrics.OutcomeFailure)
		return fmt.Errorf("%w: %w", model.ErrDispatch, err)
	}

	p.logger.Info("PasswordReset service: reset link sent",
		"user_id", user.ID)
	p.metrics.RecordResetRequest(metrics.OutcomeSuccess)

	return nil
}

func (p *PasswordReset) dispatch(ctx context.Context, user model.User) error {
	token, err := p.issuer.Issue(user.Email)
	if err != nil {
		return fmt.Errorf("failed to issue reset token: %w", err)
	}

	body, err := mailer.RenderPasswordReset(p.ResetURL(token), p.issuer.TTL())
	if err != nil {
		return err
	}

	return p.mail.Send(ctx, user.Email, mailer.PasswordResetSubject, body)
}

// ValidateResetToken checks a token before the reset form is shown.
func (p *PasswordReset) ValidateResetToken(ctx context.Context, token string) (model.ResetClaims, error) {
	claims, err := p.issuer.Verify(token)
	if err != nil {
		return model.ResetClaims{}, model.ErrInvalidOrExpiredToken
	}

	if p.redemptions == nil {
		return claims, nil
	}

	redeemed, err := p.redemptions.IsRedeemed(ctx, claims.TokenID)
	if err != nil {
		p.logger.Error("PasswordReset service: failed to check token redemption",
			"error", err.Error())
		return model.ResetClaims{}, fmt.Errorf("%w: failed to check token redemption: %w", model.ErrRequestFailed, err)
	}
	if redeemed {
		return model.ResetClaims{}, model.ErrInvalidOrExpiredToken
	}

	return claims, nil
}

// CompleteReset replaces the password of the user the token was issued for.
// It does not create a session.
func (p *PasswordReset) CompleteReset(ctx context.Context, sub model.ResetSubmission) error {
	err := p.completeReset(ctx, sub)
	p.metrics.RecordResetCompletion(completionOutcome(err))
	return err
}

func (p *PasswordReset) completeReset(ctx context.Context, sub model.ResetSubmission) error {
	if sub.Password != sub.RepeatPassword {
		return model.ErrPasswordMismatch
	}

	if err := credential.ValidatePassword(sub.Password); err != nil {
		return err
	}

	claims, err := p.issuer.Verify(sub.Token)
	if err != nil {
		return model.ErrInvalidOrExpiredToken
	}

	user, err := p.userStore.GetByEmail(ctx, claims.Email)
	if errors.Is(err, model.ErrNotFound) {
		return model.ErrUserNotFound
	}
	if err != nil {
		p.logger.Error("PasswordReset service: failed to get user by email",
			"error", err.Error())
		return fmt.Errorf("%w: failed to get user by email: %w", model.ErrRequestFailed, err)
	}

	if p.redemptions != nil {
		err = p.redemptions.Redeem(ctx, claims.TokenID, claims.ExpiresAt)
		if errors.Is(err, model.ErrAlreadyRedeemed) {
			p.logger.Info("PasswordReset service: reset token replayed",
				"user_id", user.ID)
			return model.ErrInvalidOrExpiredToken
		}
		if err != nil {
			p.logger.Error("PasswordReset service: failed to redeem reset token",
				"user_id", user.ID,
				"error", err.Error())
			return fmt.Errorf("%w: failed to redeem reset token: %w", model.ErrRequestFailed, err)
		}
	}

	hash, err := p.hasher.Hash(sub.Password)
	if err != nil {
		p.logger.Error("PasswordReset service: failed to hash password",
			"user_id", user.ID,
			"error", err.Error())
		return hashingError(err)
	}

	err = p.userStore.UpdatePassword(ctx, user.ID, hash)
	if err != nil {
		p.logger.Error("PasswordReset service: failed to update password",
			"user_id", user.ID,
			"error", err.Error())
		return fmt.Errorf("%w: failed to update password: %w", model.ErrRequestFailed, err)
	}

	p.logger.Info("PasswordReset service: password updated",
		"user_id", user.ID)

	return nil
}

func completionOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, model.ErrPasswordMismatch), errors.Is(err, model.ErrValidation):
		return metrics.OutcomeRejected
	case errors.Is(err, model.ErrInvalidOrExpiredToken), errors.Is(err, model.ErrUserNotFound):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeFailure
	}
}

func hashingError(err error) error {
	if errors.Is(err, model.ErrHashing) {
		return err
	}
	return fmt.Errorf("%w: %w", model.ErrHashing, err)
}
