package credential

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dtroode/scriba-server/internal/model"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past the 72nd byte.
	maxPasswordBytes = 72
	specialChars     = "!@#$%^&*"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail accepts local-part@domain with no whitespace and a dot in the domain.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return model.ErrInvalidEmail
	}
	return nil
}

type passwordRule struct {
	rule   model.PasswordRule
	reason string
	check  func(string) bool
}

// Order matters: the first failing rule is reported.
var passwordRules = []passwordRule{
	{
		rule:   model.RuleMinLength,
		reason: "password must be at least 8 characters long",
		check:  func(s string) bool { return utf8.RuneCountInString(s) >= minPasswordLength },
	},
	{
		rule:   model.RuleUppercase,
		reason: "password must contain at least one uppercase letter",
		check:  func(s string) bool { return containsRange(s, 'A', 'Z') },
	},
	{
		rule:   model.RuleLowercase,
		reason: "password must contain at least one lowercase letter",
		check:  func(s string) bool { return containsRange(s, 'a', 'z') },
	},
	{
		rule:   model.RuleDigit,
		reason: "password must contain at least one digit",
		check:  func(s string) bool { return containsRange(s, '0', '9') },
	},
	{
		rule:   model.RuleSpecial,
		reason: "password must contain at least one special character (!@#$%^&*)",
		check:  func(s string) bool { return strings.ContainsAny(s, specialChars) },
	},
	{
		rule:   model.RuleMaxLength,
		reason: "password must be at most 72 bytes long",
		check:  func(s string) bool { return len(s) <= maxPasswordBytes },
	},
}

// ValidatePassword checks password against the policy and returns
// a *model.PolicyViolationError for the first rule it breaks.
func ValidatePassword(password string) error {
	for _, r := range passwordRules {
		if !r.check(password) {
			return &model.PolicyViolationError{Rule: r.rule, Reason: r.reason}
		}
	}
	return nil
}

func containsRange(s string, lo, hi rune) bool {
	for _, r := range s {
		if r >= lo && r <= hi {
			return true
		}
	}
	return false
}
