package auth

import (
	"context"
	"strings"
	"testing"

	"authd/config"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Cheap parameters keep the suite fast; production cost comes from config.
var testParams = Argon2Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func TestArgon2Hasher_Hash(t *testing.T) {
	hasher := NewArgon2HasherWithParams(testParams, 1)
	ctx := context.Background()

	hash, err := hasher.Hash(ctx, "pw1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"), hash)
	assert.NotContains(t, hash, "pw1")

	ok, err := hasher.Check(ctx, "pw1", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2Hasher_SaltIsRandom(t *testing.T) {
	hasher := NewArgon2HasherWithParams(testParams, 2)
	ctx := context.Background()

	first, err := hasher.Hash(ctx, "same-secret")
	require.NoError(t, err)
	second, err := hasher.Hash(ctx, "same-secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestArgon2Hasher_Check(t *testing.T) {
	hasher := NewArgon2HasherWithParams(testParams, 1)
	ctx := context.Background()

	hash, err := hasher.Hash(ctx, "pw1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "correct", password: "pw1", want: true},
		{name: "different", password: "pw2", want: false},
		{name: "empty", password: "", want: false},
		{name: "prefix", password: "pw", want: false},
		{name: "case", password: "PW1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := hasher.Check(ctx, tt.password, hash)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestArgon2Hasher_ChecksWithEncodedParams(t *testing.T) {
	ctx := context.Background()
	older := NewArgon2HasherWithParams(testParams, 1)
	hash, err := older.Hash(ctx, "pw1")
	require.NoError(t, err)

	stronger := testParams
	stronger.Iterations = 2
	stronger.KeyLength = 16
	current := NewArgon2HasherWithParams(stronger, 1)

	ok, err := current.Check(ctx, "pw1", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2Hasher_MalformedHash(t *testing.T) {
	hasher := NewArgon2HasherWithParams(testParams, 1)
	ctx := context.Background()

	malformed := []string{
		"",
		"invalid_hash",
		"$2a$10$abcdefghijklmnopqrstuv",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5",
		"$argon2id$v=x$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5",
		"$argon2id$v=19$m=1024$c2FsdHNhbHQ$a2V5",
		"$argon2id$v=19$m=1024,t=0,p=1$c2FsdHNhbHQ$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$",
	}

	for _, encoded := range malformed {
		ok, err := hasher.Check(ctx, "pw1", encoded)
		assert.False(t, ok, encoded)
		assert.True(t, errors.Is(err, ErrMalformedHash), "expected malformed error for %q, got %v", encoded, err)
	}

	_, err := hasher.Check(ctx, "pw1", "$argon2id$v=16$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5")
	assert.True(t, errors.Is(err, ErrIncompatibleVersion))
}

func TestArgon2Hasher_WaitHonoursContext(t *testing.T) {
	hasher := NewArgon2HasherWithParams(testParams, 1).(*argon2Hasher)
	require.NoError(t, hasher.slots.Acquire(context.Background(), 1))
	defer hasher.slots.Release(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := hasher.Hash(ctx, "pw1")
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = hasher.Check(ctx, "pw1", "$argon2id$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$a2V5")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewArgon2Hasher_FromConfig(t *testing.T) {
	cfg := &config.Config{Auth: &config.AuthConfig{Argon2: config.Argon2Config{
		Memory:        2048,
		Iterations:    1,
		Parallelism:   2,
		SaltLength:    8,
		KeyLength:     16,
		MaxConcurrent: 3,
	}}}

	hasher := NewArgon2Hasher(cfg).(*argon2Hasher)
	assert.Equal(t, Argon2Params{Memory: 2048, Iterations: 1, Parallelism: 2, SaltLength: 8, KeyLength: 16}, hasher.params)

	hash, err := hasher.Hash(context.Background(), "pw1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=2048,t=1,p=2$"))

	assert.Equal(t, DefaultArgon2Params, NewArgon2Hasher(nil).(*argon2Hasher).params)
}
