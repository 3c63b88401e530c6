package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

// PasswordResetSubject is the subject line of password reset emails.
const PasswordResetSubject = "Password reset - Scriba"

//go:embed templates/*.html
var templatesFS embed.FS

var passwordResetTemplate = template.Must(template.ParseFS(templatesFS, "templates/password_reset.html"))

type passwordResetData struct {
	ResetURL  string
	ExpiresIn string
}

// RenderPasswordReset renders the HTML body of a password reset email.
func RenderPasswordReset(resetURL string, ttl time.Duration) (string, error) {
	var buf bytes.Buffer
	err := passwordResetTemplate.Execute(&buf, passwordResetData{
		ResetURL:  resetURL,
		ExpiresIn: humanizeTTL(ttl),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render password reset email: %w", err)
	}
	return buf.String(), nil
}

func humanizeTTL(d time.Duration) string {
	switch {
	case d == time.Hour:
		return "1 hour"
	case d%time.Hour == 0:
		return fmt.Sprintf("%d hours", d/time.Hour)
	case d == time.Minute:
		return "1 minute"
	case d%time.Minute == 0:
		return fmt.Sprintf("%d minutes", d/time.Minute)
	default:
		return d.String()
	}
}
