package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/scriba-server/internal/model"
)

// RedemptionStore is a mock type for the model.RedemptionStore type.
type RedemptionStore struct {
	mock.Mock
}

var _ model.RedemptionStore = (*RedemptionStore)(nil)

// Redeem provides a mock function with given fields: ctx, tokenID, expiresAt
func (_m *RedemptionStore) Redeem(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ret := _m.Called(ctx, tokenID, expiresAt)
	return ret.Error(0)
}

// IsRedeemed provides a mock function with given fields: ctx, tokenID
func (_m *RedemptionStore) IsRedeemed(ctx context.Context, tokenID string) (bool, error) {
	ret := _m.Called(ctx, tokenID)
	return ret.Bool(0), ret.Error(1)
}

// DeleteExpired provides a mock function with given fields: ctx
func (_m *RedemptionStore) DeleteExpired(ctx context.Context) (int64, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(int64), ret.Error(1)
}
