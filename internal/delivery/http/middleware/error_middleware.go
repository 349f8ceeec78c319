// Package middleware holds the echo error handler for the HTTP server.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	deliverycontext "authd/internal/delivery/context"
	"authd/internal/delivery/http/response"
	domainerrors "authd/internal/domain/errors"
	"authd/internal/errors"

	"github.com/labstack/echo/v4"
)

const (
	internalErrorCode    = "INTERNAL_ERROR"
	internalErrorMessage = "Internal server error"
	httpErrorCode        = "HTTP_ERROR"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError is installed as echo's HTTPErrorHandler. Domain errors keep
// their status and message; anything else becomes a generic 500 whose cause
// is only logged.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		m.write(c, response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details()))

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			message = msg
		} else if httpErr.Message != nil {
			message = fmt.Sprint(httpErr.Message)
		}
		m.write(c, response.Error(c, httpErr.Code, httpErrorCode, message, ""))

		return
	}

	req := c.Request()
	deliverycontext.GetLoggerOrDefault(req.Context(), m.logger).Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", req.URL.Path),
		slog.String("method", req.Method),
	)

	m.write(c, response.Error(c, http.StatusInternalServerError, internalErrorCode, internalErrorMessage, ""))
}

func (m *ErrorMiddleware) write(c echo.Context, err error) {
	if err != nil {
		m.logger.Error("Failed to write error response", slog.Any("error", err))
	}
}
