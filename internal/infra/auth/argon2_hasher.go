// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"runtime"
	"strings"

	"authd/config"
	"authd/internal/domain/service"
	"authd/internal/errors"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"
)

const argon2Variant = "argon2id"

var (
	// ErrMalformedHash is returned when a stored hash is not a valid argon2id PHC string.
	ErrMalformedHash = errors.New("malformed argon2 hash")
	// ErrIncompatibleVersion is returned for hashes written by another argon2 revision.
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

// Argon2Params are the argon2id cost parameters.
type Argon2Params struct {
	Memory      uint32 // KiB
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params mirrors the defaults of the node argon2 package, so
// hashes written there verify here unchanged.
var DefaultArgon2Params = Argon2Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// argon2Hasher implements service.PasswordHasher with argon2id.
type argon2Hasher struct {
	params Argon2Params
	slots  *semaphore.Weighted
}

// NewArgon2Hasher builds the hasher from configuration.
func NewArgon2Hasher(cfg *config.Config) service.PasswordHasher {
	params := DefaultArgon2Params
	maxConcurrent := 0
	if cfg != nil && cfg.Auth != nil {
		a := cfg.Auth.Argon2
		params = Argon2Params{
			Memory:      a.Memory,
			Iterations:  a.Iterations,
			Parallelism: a.Parallelism,
			SaltLength:  a.SaltLength,
			KeyLength:   a.KeyLength,
		}
		maxConcurrent = a.MaxConcurrent
	}

	return NewArgon2HasherWithParams(params, maxConcurrent)
}

// NewArgon2HasherWithParams allows callers to pick cost parameters directly.
// maxConcurrent limits how many derivations run at once; zero means GOMAXPROCS.
func NewArgon2HasherWithParams(params Argon2Params, maxConcurrent int) service.PasswordHasher {
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.GOMAXPROCS(0)
	}

	return &argon2Hasher{
		params: params,
		slots:  semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Hash derives an argon2id key from password with a fresh random salt and
// returns it in PHC form: $argon2id$v=19$m=65536,t=3,p=4$<salt>$<key>.
func (h *argon2Hasher) Hash(ctx context.Context, password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", errors.Wrap(err, "failed to generate salt")
	}

	if err := h.slots.Acquire(ctx, 1); err != nil {
		return "", errors.Wrap(err, "waiting for hashing capacity")
	}
	key := argon2.IDKey([]byte(password), salt, h.params.Iterations, h.params.Memory, h.params.Parallelism, h.params.KeyLength)
	h.slots.Release(1)

	return encodeArgon2(h.params, salt, key), nil
}

// Check re-derives the key with the parameters encoded in the hash and
// compares in constant time.
func (h *argon2Hasher) Check(ctx context.Context, password, encodedHash string) (bool, error) {
	params, salt, key, err := decodeArgon2(encodedHash)
	if err != nil {
		return false, err
	}

	if err := h.slots.Acquire(ctx, 1); err != nil {
		return false, errors.Wrap(err, "waiting for hashing capacity")
	}
	candidate := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)
	h.slots.Release(1)

	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}

func encodeArgon2(p Argon2Params, salt, key []byte) string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Variant,
		argon2.Version,
		p.Memory, p.Iterations, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

func decodeArgon2(encoded string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	// "", variant, version, params, salt, key
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != argon2Variant {
		return p, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, errors.Wrap(ErrMalformedHash, "version")
	}
	if version != argon2.Version {
		return p, nil, nil, errors.Wrapf(ErrIncompatibleVersion, "got v=%d", version)
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Iterations, &p.Parallelism); err != nil {
		return p, nil, nil, errors.Wrap(ErrMalformedHash, "parameters")
	}
	if p.Iterations == 0 || p.Parallelism == 0 {
		return p, nil, nil, errors.Wrap(ErrMalformedHash, "parameters")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, errors.Wrap(ErrMalformedHash, "salt")
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, errors.Wrap(ErrMalformedHash, "key")
	}

	p.SaltLength = uint32(len(salt))
	p.KeyLength = uint32(len(key))

	return p, salt, key, nil
}
