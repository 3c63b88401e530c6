package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/scriba-server/internal/model"
)

var _ model.RedemptionStore = (*RedemptionRepository)(nil)

type RedemptionRepository struct {
	db DB
}

func NewRedemptionRepository(db DB) *RedemptionRepository {
	return &RedemptionRepository{db: db}
}

func (r *RedemptionRepository) Redeem(ctx context.Context, tokenID string, expiresAt time.Time) error {
	const query = `
        INSERT INTO redeemed_reset_tokens (token_id, expires_at, redeemed_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (token_id) DO NOTHING
    `

	tag, err := r.db.Exec(ctx, query, tokenID, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to redeem reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAlreadyRedeemed
	}
	return nil
}

func (r *RedemptionRepository) IsRedeemed(ctx context.Context, tokenID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM redeemed_reset_tokens WHERE token_id = $1)`

	var redeemed bool
	if err := r.db.QueryRow(ctx, query, tokenID).Scan(&redeemed); err != nil {
		return false, fmt.Errorf("failed to check reset token redemption: %w", err)
	}
	return redeemed, nil
}

func (r *RedemptionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM redeemed_reset_tokens WHERE expires_at < NOW()`

	tag, err := r.db.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired redemptions: %w", err)
	}
	return tag.RowsAffected(), nil
}
