package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/scriba-server/internal/model"
)

// Mailer is a mock type for the model.Mailer type.
type Mailer struct {
	mock.Mock
}

var _ model.Mailer = (*Mailer)(nil)

// Send provides a mock function with given fields: ctx, to, subject, bodyHTML
func (_m *Mailer) Send(ctx context.Context, to, subject, bodyHTML string) error {
	ret := _m.Called(ctx, to, subject, bodyHTML)
	return ret.Error(0)
}
