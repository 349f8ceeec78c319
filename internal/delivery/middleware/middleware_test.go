package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"authd/config"
	deliverycontext "authd/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expectID func(t *testing.T, id string)
	}{
		{
			name:   "reuses client id",
			header: "client-req-1",
			expectID: func(t *testing.T, id string) {
				assert.Equal(t, "client-req-1", id)
			},
		},
		{
			name: "generates id when absent",
			expectID: func(t *testing.T, id string) {
				assert.Len(t, id, 36)
			},
		},
		{
			name:   "replaces oversized id",
			header: strings.Repeat("x", maxRequestIDLength+1),
			expectID: func(t *testing.T, id string) {
				assert.Len(t, id, 36)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			mw := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

			var ctxID, echoID string
			var hasLogger bool
			e.GET("/", func(c echo.Context) error {
				ctx := c.Request().Context()
				ctxID = deliverycontext.GetRequestIDFromContext(ctx)
				echoID = deliverycontext.GetRequestID(c)
				hasLogger = deliverycontext.GetLoggerOrDefault(ctx, nil) != nil

				return c.NoContent(http.StatusNoContent)
			}, mw.Process)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			responseID := rec.Header().Get(deliverycontext.HeaderXRequestID)
			tt.expectID(t, responseID)
			assert.Equal(t, responseID, ctxID)
			assert.Equal(t, responseID, echoID)
			assert.True(t, hasLogger)
		})
	}
}

func TestLoggerMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		debug      bool
		handler    echo.HandlerFunc
		wantStatus int
		wantLogged bool
		wantLevel  string
	}{
		{
			name:       "debug logs success",
			debug:      true,
			handler:    func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			wantStatus: http.StatusOK,
			wantLogged: true,
			wantLevel:  "INFO",
		},
		{
			name:       "quiet on success outside debug",
			handler:    func(c echo.Context) error { return c.NoContent(http.StatusOK) },
			wantStatus: http.StatusOK,
		},
		{
			name:       "client error logged as warn in debug",
			debug:      true,
			handler:    func(c echo.Context) error { return echo.NewHTTPError(http.StatusBadRequest, "bad") },
			wantStatus: http.StatusBadRequest,
			wantLogged: true,
			wantLevel:  "WARN",
		},
		{
			name:       "server error always logged",
			handler:    func(c echo.Context) error { return echo.NewHTTPError(http.StatusInternalServerError, "boom") },
			wantStatus: http.StatusInternalServerError,
			wantLogged: true,
			wantLevel:  "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&buf, nil))

			cfg := &config.Config{}
			cfg.Env.Debug = tt.debug

			e := echo.New()
			mw := NewLoggerMiddleware(logger, cfg)
			e.GET("/", tt.handler, mw.Handle)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			require.Equal(t, tt.wantStatus, rec.Code)
			if !tt.wantLogged {
				assert.Empty(t, buf.String())

				return
			}
			assert.Contains(t, buf.String(), `"msg":"HTTP Request"`)
			assert.Contains(t, buf.String(), `"level":"`+tt.wantLevel+`"`)
		})
	}
}
