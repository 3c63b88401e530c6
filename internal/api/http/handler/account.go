package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dtroode/scriba-server/internal/api/http/middleware"
	"github.com/dtroode/scriba-server/internal/logger"
	"github.com/dtroode/scriba-server/internal/model"
)

// AccountService manages users and their sessions.
type AccountService interface {
	Register(ctx context.Context, email, password string) (model.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Authenticate(ctx context.Context, token string) (model.IdentityClaims, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// Account serves the JSON account API.
type Account struct {
	service AccountService
	logger  *logger.Logger
}

func NewAccount(service AccountService, logger *logger.Logger) *Account {
	return &Account{service: service, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type sessionResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Register creates a user.
func (h *Account) Register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	user, err := h.service.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.jsonError(c, err)
	}

	return c.JSON(http.StatusCreated, userResponse{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt})
}

// Login exchanges credentials for a session token.
func (h *Account) Login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	token, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.jsonError(c, err)
	}

	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Session returns the identity of the bearer.
func (h *Account) Session(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
	}

	return c.JSON(http.StatusOK, sessionResponse{UserID: claims.UserID, Email: claims.Email})
}

// Delete removes the bearer's account.
func (h *Account) Delete(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
	}

	if err := h.service.Delete(c.Request().Context(), claims.UserID); err != nil {
		return h.jsonError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Account) jsonError(c echo.Context, err error) error {
	code, msg := handleError(err, "internal server error")
	if code >= http.StatusInternalServerError {
		h.logger.Error("Account handler: request failed",
			"path", c.Path(),
			"error", err.Error())
	}
	return c.JSON(code, errorResponse{Error: msg})
}
