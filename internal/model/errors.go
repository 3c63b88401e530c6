package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")

	ErrValidation    = errors.New("validation failed")
	ErrInvalidEmail  = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmptyPassword = fmt.Errorf("%w: password cannot be empty", ErrValidation)

	ErrHashing      = errors.New("failed to hash password")
	ErrVerification = errors.New("stored credential is malformed")

	// ErrInvalidOrExpiredToken is returned for every token failure, whatever the cause.
	ErrInvalidOrExpiredToken = errors.New("token is invalid or expired")
	ErrAlreadyRedeemed       = errors.New("token already redeemed")

	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrDispatch      = errors.New("failed to dispatch message")
	ErrRequestFailed = errors.New("could not process request")
)

// PasswordRule identifies a password policy rule.
type PasswordRule string

const (
	RuleMinLength PasswordRule = "min_length"
	RuleUppercase PasswordRule = "uppercase"
	RuleLowercase PasswordRule = "lowercase"
	RuleDigit     PasswordRule = "digit"
	RuleSpecial   PasswordRule = "special"
	RuleMaxLength PasswordRule = "max_length"
)

// PolicyViolationError reports the first password rule a candidate failed.
type PolicyViolationError struct {
	Rule   PasswordRule
	Reason string
}

func (e *PolicyViolationError) Error() string {
	return e.Reason
}

func (e *PolicyViolationError) Unwrap() error {
	return ErrValidation
}
