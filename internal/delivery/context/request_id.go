// Package context carries request-scoped values between the transport and service layers.
package context

import (
	"context"
	"log/slog"

	"github.com/labstack/echo/v4"
)

type ctxKey int

const (
	keyRequestID ctxKey = iota
	keyLogger
)

const (
	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = echo.HeaderXRequestID

	// echoKeyRequestID stores the request ID on echo.Context.
	echoKeyRequestID = "request_id"
)

// GetRequestID extracts the request ID from echo.Context, or "" when none was set.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(echoKeyRequestID).(string); ok {
		return id
	}

	return ""
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoKeyRequestID, requestID)
}

// GetRequestIDFromContext extracts the request ID from context.Context.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(keyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback when the
// context does not carry one.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(keyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}
