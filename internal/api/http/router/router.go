package router

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/dtroode/scriba-server/internal/api/http/handler"
	"github.com/dtroode/scriba-server/internal/api/http/middleware"
	"github.com/dtroode/scriba-server/internal/api/http/views"
	"github.com/dtroode/scriba-server/internal/logger"
	"github.com/dtroode/scriba-server/internal/metrics"
)

const bodyLimit = "64K"

// Router wires the reset pages, the account API and the metrics endpoint.
type Router struct {
	resetService   handler.ResetService
	accountService handler.AccountService
	metricsHandler http.Handler
	metrics        *metrics.Metrics
	logger         *logger.Logger
}

// New creates new HTTP Router instance. metricsHandler and metrics may be nil.
func New(
	resetService handler.ResetService,
	accountService handler.AccountService,
	metricsHandler http.Handler,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Router {
	return &Router{
		resetService:   resetService,
		accountService: accountService,
		metricsHandler: metricsHandler,
		metrics:        metrics,
		logger:         logger,
	}
}

// Register builds the echo instance with all routes and middleware.
func (r *Router) Register() (*echo.Echo, error) {
	renderer, err := views.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	logging := middleware.NewLogging(r.logger, r.metrics)
	e.Use(
		echomw.Recover(),
		logging.Handle,
		echomw.BodyLimit(bodyLimit),
	)

	r.registerResetRoutes(e)
	r.registerAccountRoutes(e)

	if r.metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(r.metricsHandler))
	}

	return e, nil
}

func (r *Router) registerResetRoutes(e *echo.Echo) {
	h := handler.NewReset(r.resetService, r.logger)

	e.GET("/forgot-password", h.ShowForgotPassword)
	e.POST("/forgot-password", h.RequestReset)
	e.GET("/reset-password", h.ShowResetPassword)
	e.POST("/reset-password", h.CompleteReset)
}

func (r *Router) registerAccountRoutes(e *echo.Echo) {
	h := handler.NewAccount(r.accountService, r.logger)
	authenticate := middleware.NewAuthenticate(r.accountService, r.logger)

	api := e.Group("/api/v1")
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)

	api.GET("/session", h.Session, authenticate.Handle)
	api.DELETE("/account", h.Delete, authenticate.Handle)
}
