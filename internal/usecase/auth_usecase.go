// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"authd/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to create an account.
type SignupInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=1024"`
}

// SigninInput defines the data required to sign in.
type SigninInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=1024"`
}

// --- Output DTOs ---

// SignupOutput returns the newly created account.
type SignupOutput struct {
	Account entity.PublicAccount
}

// SigninOutput returns the authenticated account.
type SigninOutput struct {
	Account entity.PublicAccount
}

// AuthUsecase defines the credential operations exposed to the delivery layer.
//
// Signup fails with domainerrors.ErrEmailTaken when the email is registered.
// Signin fails with domainerrors.ErrInvalidCredentials both when the email is
// unknown and when the password does not match. Any other error is a fault.
type AuthUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)
	Signin(ctx context.Context, input *SigninInput) (*SigninOutput, error)
}
