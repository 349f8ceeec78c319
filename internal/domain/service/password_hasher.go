// Package service defines interfaces for core, stateless domain logic.
package service

import "context"

// PasswordHasher derives and verifies one-way password hashes.
// Both operations are CPU and memory heavy; implementations may block until
// capacity is available and must honour ctx while waiting.
type PasswordHasher interface {
	// Hash returns an encoded hash with a random salt embedded in it.
	Hash(ctx context.Context, password string) (string, error)

	// Check reports whether password matches the encoded hash. A malformed
	// hash is an error, a mismatch is (false, nil).
	Check(ctx context.Context, password, encodedHash string) (bool, error)
}
