// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is a single set of email/password credentials as held by the store.
// It carries the password hash and must not leave the service layer; use Public.
type Account struct {
	ID           uuid.UUID // Assigned by the store on creation.
	Email        string    // Unique login identifier. Immutable after creation.
	PasswordHash string    // argon2id PHC string.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicAccount is the caller-facing view of an Account. It has no hash field.
type PublicAccount struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public strips the credential material from the account.
func (a *Account) Public() PublicAccount {
	return PublicAccount{
		ID:        a.ID,
		Email:     a.Email,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
