package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/scriba-server/internal/logger"
	"github.com/dtroode/scriba-server/internal/metrics"
)

// Logging logs HTTP requests and results and counts them.
type Logging struct {
	logger  *logger.Logger
	metrics *metrics.Metrics
}

// NewLogging creates a new Logging middleware. metrics may be nil.
func NewLogging(logger *logger.Logger, metrics *metrics.Metrics) *Logging {
	return &Logging{logger: logger, metrics: metrics}
}

// Handle logs method, route, duration and status for each request.
func (l *Logging) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		l.logger.Debug("HTTP request started",
			"method", req.Method,
			"path", req.URL.Path)

		err := next(c)

		status := c.Response().Status
		if err != nil {
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			} else {
				status = http.StatusInternalServerError
			}
		}

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}

		l.logger.Info("HTTP request completed",
			"method", req.Method,
			"route", route,
			"duration_ms", time.Since(start).Milliseconds(),
			"status", status)

		if err != nil {
			l.logger.Error("HTTP request failed",
				"method", req.Method,
				"route", route,
				"error", err.Error(),
				"status", status)
		}

		l.metrics.RecordHTTPRequest(req.Method, route, strconv.Itoa(status))

		return err
	}
}
