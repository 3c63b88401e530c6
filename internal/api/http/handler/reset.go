package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/scriba-server/internal/api/http/views"
	"github.com/dtroode/scriba-server/internal/logger"
	"github.com/dtroode/scriba-server/internal/model"
)

// ResetService is the password reset workflow used by the pages.
type ResetService interface {
	RequestReset(ctx context.Context, email string) error
	ValidateResetToken(ctx context.Context, token string) (model.ResetClaims, error)
	CompleteReset(ctx context.Context, sub model.ResetSubmission) error
}

// Reset serves the forgot-password and reset-password pages.
type Reset struct {
	service ResetService
	logger  *logger.Logger
}

func NewReset(service ResetService, logger *logger.Logger) *Reset {
	return &Reset{service: service, logger: logger}
}

type forgotPasswordForm struct {
	Email string `form:"email" json:"email"`
}

type resetPasswordForm struct {
	Token          string `form:"token" json:"token"`
	Password       string `form:"password" json:"password"`
	RepeatPassword string `form:"repeatPassword" json:"repeatPassword"`
}

// ShowForgotPassword renders the request form.
func (h *Reset) ShowForgotPassword(c echo.Context) error {
	return c.Render(http.StatusOK, views.ForgotPassword, nil)
}

// RequestReset always answers with the same page unless dispatch failed.
func (h *Reset) RequestReset(c echo.Context) error {
	var form forgotPasswordForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusOK, views.EmailSent, nil)
	}

	err := h.service.RequestReset(c.Request().Context(), form.Email)
	if err != nil {
		h.logger.Error("Reset handler: failed to request reset", "error", err.Error())
		return h.renderError(c, err, "could not process the request")
	}

	return c.Render(http.StatusOK, views.EmailSent, nil)
}

// ShowResetPassword renders the new password form for a valid token.
func (h *Reset) ShowResetPassword(c echo.Context) error {
	token := c.QueryParam("token")

	_, err := h.service.ValidateResetToken(c.Request().Context(), token)
	if err != nil {
		return h.renderError(c, err, "could not process the request")
	}

	return c.Render(http.StatusOK, views.ResetPassword, views.ResetPasswordData{Token: token})
}

// CompleteReset stores the new password.
func (h *Reset) CompleteReset(c echo.Context) error {
	var form resetPasswordForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, views.Error, views.ErrorData{Message: "invalid request body"})
	}

	err := h.service.CompleteReset(c.Request().Context(), model.ResetSubmission{
		Token:          form.Token,
		Password:       form.Password,
		RepeatPassword: form.RepeatPassword,
	})
	if err != nil {
		return h.renderError(c, err, "could not reset the password")
	}

	return c.Render(http.StatusOK, views.ResetSuccess, nil)
}

func (h *Reset) renderError(c echo.Context, err error, fallback string) error {
	code, msg := handleError(err, fallback)
	return c.Render(code, views.Error, views.ErrorData{Message: msg})
}
