package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/scriba-server/internal/model"
)

// ResetService is a mock type for the handler.ResetService type.
type ResetService struct {
	mock.Mock
}

// RequestReset provides a mock function with given fields: ctx, email
func (_m *ResetService) RequestReset(ctx context.Context, email string) error {
	ret := _m.Called(ctx, email)
	return ret.Error(0)
}

// ValidateResetToken provides a mock function with given fields: ctx, token
func (_m *ResetService) ValidateResetToken(ctx context.Context, token string) (model.ResetClaims, error) {
	ret := _m.Called(ctx, token)
	return ret.Get(0).(model.ResetClaims), ret.Error(1)
}

// CompleteReset provides a mock function with given fields: ctx, sub
func (_m *ResetService) CompleteReset(ctx context.Context, sub model.ResetSubmission) error {
	ret := _m.Called(ctx, sub)
	return ret.Error(0)
}
