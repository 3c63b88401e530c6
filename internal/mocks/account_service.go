package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/scriba-server/internal/model"
)

// AccountService is a mock type for the handler.AccountService type.
type AccountService struct {
	mock.Mock
}

// Register provides a mock function with given fields: ctx, email, password
func (_m *AccountService) Register(ctx context.Context, email, password string) (model.User, error) {
	ret := _m.Called(ctx, email, password)
	return ret.Get(0).(model.User), ret.Error(1)
}

// Login provides a mock function with given fields: ctx, email, password
func (_m *AccountService) Login(ctx context.Context, email, password string) (string, error) {
	ret := _m.Called(ctx, email, password)
	return ret.String(0), ret.Error(1)
}

// Authenticate provides a mock function with given fields: ctx, token
func (_m *AccountService) Authenticate(ctx context.Context, token string) (model.IdentityClaims, error) {
	ret := _m.Called(ctx, token)
	return ret.Get(0).(model.IdentityClaims), ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, userID
func (_m *AccountService) Delete(ctx context.Context, userID uuid.UUID) error {
	ret := _m.Called(ctx, userID)
	return ret.Error(0)
}
