package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "authd",
			},
		},
		"auth": map[string]any{
			"storeTimeout": "5s",
			"argon2": map[string]any{
				"maxConcurrent": 0,
				"saltLength":    16,
			},
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "AUTH_STORETIMEOUT", want: "auth.storeTimeout"},
		{envKey: "AUTH_ARGON2_MAXCONCURRENT", want: "auth.argon2.maxConcurrent"},
		{envKey: "AUTH__ARGON2__SALTLENGTH", want: "auth.argon2.saltLength"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
