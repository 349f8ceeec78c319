// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"authd/internal/delivery/http/response"
	"authd/internal/errors"
	"authd/internal/usecase"

	"github.com/labstack/echo/v4"
)

const invalidInputCode = "INVALID_INPUT"

// AuthHandler holds dependencies for the credential endpoints.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// Signup handles account creation.
func (h *AuthHandler) Signup(c echo.Context) error {
	var input usecase.SignupInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, invalidInputCode, "Invalid signup input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Signup(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.Account, "Account created")
}

// Signin handles credential verification.
func (h *AuthHandler) Signin(c echo.Context) error {
	var input usecase.SigninInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, invalidInputCode, "Invalid signin input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Signin(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output.Account, "Signin successful")
}
