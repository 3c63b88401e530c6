package model

import (
	"context"
	"time"
)

// RedemptionStore records reset tokens that have already been used.
// It is only consulted when single-use reset tokens are enabled.
type RedemptionStore interface {
	// Redeem marks the token as used. Returns ErrAlreadyRedeemed when it was used before.
	Redeem(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRedeemed(ctx context.Context, tokenID string) (bool, error)
	// DeleteExpired removes markers of tokens that cannot verify anymore.
	DeleteExpired(ctx context.Context) (int64, error)
}
