package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/scriba-server/internal/model"
)

// Storage is a mock type for the model.Storage type.
type Storage struct {
	mock.Mock
}

var _ model.Storage = (*Storage)(nil)

// Exists provides a mock function with given fields: ctx, key
func (_m *Storage) Exists(ctx context.Context, key string) (bool, error) {
	ret := _m.Called(ctx, key)
	return ret.Bool(0), ret.Error(1)
}

// Delete provides a mock function with given fields: ctx, key
func (_m *Storage) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	return ret.Error(0)
}

// DeletePrefix provides a mock function with given fields: ctx, prefix
func (_m *Storage) DeletePrefix(ctx context.Context, prefix string) error {
	ret := _m.Called(ctx, prefix)
	return ret.Error(0)
}
