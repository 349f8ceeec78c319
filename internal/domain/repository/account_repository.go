// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"authd/internal/domain/entity"
)

// ErrAccountNotFound is returned when no account matches the lookup key.
var ErrAccountNotFound = errors.New("account not found")

// UniqueViolationError reports that a write collided with a uniqueness
// constraint. Field names the violated column when the store can tell.
type UniqueViolationError struct {
	Field string
	Err   error
}

func (e *UniqueViolationError) Error() string {
	if e.Field == "" {
		return "unique constraint violated"
	}

	return "unique constraint violated on " + e.Field
}

func (e *UniqueViolationError) Unwrap() error {
	return e.Err
}

// AccountRepository defines the persistence operations for accounts.
type AccountRepository interface {
	// Create persists a new account and fills in its ID and timestamps.
	// A duplicate email yields a *UniqueViolationError.
	Create(ctx context.Context, account *entity.Account) error

	// FindByEmail returns ErrAccountNotFound when no account has the email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)
}
