package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/scriba-server/internal/logger"
	"github.com/dtroode/scriba-server/internal/model"
)

// DefaultSweepInterval is used when no positive interval is configured.
const DefaultSweepInterval = 10 * time.Minute

// RedemptionSweeper periodically drops markers of reset tokens that have expired.
type RedemptionSweeper struct {
	store    model.RedemptionStore
	interval time.Duration
	logger   *logger.Logger
}

func NewRedemptionSweeper(store model.RedemptionStore, interval time.Duration, logger *logger.Logger) *RedemptionSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &RedemptionSweeper{
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// Sweep deletes expired markers once.
func (s *RedemptionSweeper) Sweep(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired redemptions: %w", err)
	}
	return n, nil
}

// Run sweeps every interval until ctx is done.
func (s *RedemptionSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				s.logger.Error("RedemptionSweeper: sweep failed",
					"error", err.Error())
				continue
			}
			if n > 0 {
				s.logger.Debug("RedemptionSweeper: expired redemptions deleted",
					"count", n)
			}
		}
	}
}
