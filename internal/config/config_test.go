package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("AUTH_ADMIN_REGISTRATION_POLICY", "")
	t.Setenv("AUTH_BEARER_SCHEME", "")
	t.Setenv("AUTH_BEARER_HEADER", "")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, AdminPolicyAdminOnly, cfg.Auth.AdminRegistrationPolicy)
	assert.Equal(t, "Bearer", cfg.Auth.BearerScheme)
	assert.Equal(t, "Authorization", cfg.Auth.BearerHeader)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTokenTTL())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("AUTH_BEARER_SCHEME", "Token")
	t.Setenv("AUTH_BEARER_HEADER", "X-Auth")
	t.Setenv("AUTH_ADMIN_REGISTRATION_POLICY", "ANY")
	t.Setenv("GRPC_PORT", "6000")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Token", cfg.Auth.BearerScheme)
	assert.Equal(t, "X-Auth", cfg.Auth.BearerHeader)
	assert.Equal(t, AdminPolicyAnyToken, cfg.Auth.AdminRegistrationPolicy)
	assert.Equal(t, "0.0.0.0:6000", cfg.GRPC.Addr())
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown driver", "STORE_DRIVER", "cassandra"},
		{"unknown policy", "AUTH_ADMIN_REGISTRATION_POLICY", "everyone"},
		{"bad redis db", "REDIS_DB", "one"},
		{"postgres without dsn", "STORE_DRIVER", "postgres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("POSTGRES_DSN", "")
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsDevSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_JWT_SECRET")

	t.Setenv("AUTH_JWT_SECRET", DevJWTSecret)
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("AUTH_JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "a-real-secret", cfg.Auth.JWTSecret)
}

func TestLoadAllowsDevSecretInDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DevJWTSecret, cfg.Auth.JWTSecret)
}
