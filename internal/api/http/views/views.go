package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// Page names.
const (
	ForgotPassword = "forgot_password.html"
	EmailSent      = "email_sent.html"
	ResetPassword  = "reset_password.html"
	ResetSuccess   = "reset_success.html"
	Error          = "error.html"
)

//go:embed templates/*.html
var templatesFS embed.FS

// ResetPasswordData fills the reset form.
type ResetPasswordData struct {
	Token string
}

// ErrorData fills the error page.
type ErrorData struct {
	Message string
}

// Renderer renders the embedded HTML pages for echo.
type Renderer struct {
	templates *template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// New parses the embedded templates.
func New() (*Renderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render executes the named page.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
