package credential

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/scriba-server/internal/model"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{email: "a@b.com", valid: true},
		{email: "first.last+tag@sub.example.org", valid: true},
		{email: "a@b", valid: false},
		{email: "ab.com", valid: false},
		{email: "a b@c.com", valid: false},
		{email: "a@b c.com", valid: false},
		{email: "a@@b.com", valid: false},
		{email: "@b.com", valid: false},
		{email: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, model.ErrInvalidEmail)
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", NormalizeEmail("  User@Example.COM \n"))
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantRule model.PasswordRule
	}{
		{name: "valid", password: "Abcdefg1!"},
		{name: "too short", password: "short1!", wantRule: model.RuleMinLength},
		{name: "short wins over other rules", password: "abc", wantRule: model.RuleMinLength},
		{name: "no uppercase", password: "abcdefg1!", wantRule: model.RuleUppercase},
		{name: "no lowercase", password: "ABCDEFG1!", wantRule: model.RuleLowercase},
		{name: "no digit", password: "Abcdefgh!", wantRule: model.RuleDigit},
		{name: "no special", password: "Abcdefg12", wantRule: model.RuleSpecial},
		{name: "unlisted special does not count", password: "Abcdefg1?", wantRule: model.RuleSpecial},
		{name: "non-ascii upper does not count", password: "Ébcdefg1!", wantRule: model.RuleUppercase},
		{name: "too long", password: "Aa1!" + strings.Repeat("x", 69), wantRule: model.RuleMaxLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantRule == "" {
				assert.NoError(t, err)
				return
			}

			var violation *model.PolicyViolationError
			require.True(t, errors.As(err, &violation))
			assert.Equal(t, tt.wantRule, violation.Rule)
			assert.Equal(t, violation.Reason, err.Error())
			assert.ErrorIs(t, err, model.ErrValidation)
		})
	}
}
