package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/scriba-server/internal/model"
)

// Hasher is a mock type for the model.Hasher type.
type Hasher struct {
	mock.Mock
}

var _ model.Hasher = (*Hasher)(nil)

// Hash provides a mock function with given fields: plaintext
func (_m *Hasher) Hash(plaintext string) (string, error) {
	ret := _m.Called(plaintext)
	return ret.String(0), ret.Error(1)
}

// Verify provides a mock function with given fields: plaintext, credential
func (_m *Hasher) Verify(plaintext, credential string) (bool, error) {
	ret := _m.Called(plaintext, credential)
	return ret.Bool(0), ret.Error(1)
}

// NeedsRehash provides a mock function with given fields: credential
func (_m *Hasher) NeedsRehash(credential string) bool {
	ret := _m.Called(credential)
	return ret.Bool(0)
}
