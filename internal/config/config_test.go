package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	unsetEnv(t, "STORE_DRIVER", "JWT_EXPIRY_HOURS", "DB_QUERY_TIMEOUT", "BCRYPT_COST", "AUTH_REVOCATION_ENABLED")

	cfg := Load()

	assert.Equal(t, StoreDriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenLifetime)
	assert.Equal(t, 5*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.False(t, cfg.Auth.RevocationEnabled)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("JWT_SECRET", "s3cr3t")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("DB_QUERY_TIMEOUT", "1500ms")
	t.Setenv("AUTH_REVOCATION_ENABLED", "true")
	t.Setenv("RATE_LIMIT_CAPACITY", "0")

	cfg := Load()

	assert.Equal(t, StoreDriverMemory, cfg.Database.Driver)
	assert.Equal(t, "s3cr3t", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenLifetime)
	assert.Equal(t, 1500*time.Millisecond, cfg.Database.QueryTimeout)
	assert.True(t, cfg.Auth.RevocationEnabled)
	assert.Equal(t, 1, cfg.RateLimit.Capacity)
}

func validConfig() *Config {
	return &Config{
		App:      AppConfig{Environment: "development"},
		Database: DatabaseConfig{Driver: StoreDriverMemory, QueryTimeout: time.Second},
		Auth:     AuthConfig{JWTSecret: "dev-secret", TokenLifetime: time.Hour},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "missing secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }, wantErr: "JWT_SECRET is required"},
		{name: "short secret in production", mutate: func(c *Config) { c.App.Environment = "production" }, wantErr: "at least 32 bytes"},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mongo" }, wantErr: "unknown STORE_DRIVER"},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Database.Driver = StoreDriverPostgres }, wantErr: "DB_CONNECTION_STRING"},
		{name: "non-positive lifetime", mutate: func(c *Config) { c.Auth.TokenLifetime = 0 }, wantErr: "JWT_EXPIRY_HOURS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.wantErr), err.Error())
		})
	}

	prod := validConfig()
	prod.App.Environment = "production"
	prod.Auth.JWTSecret = strings.Repeat("x", MinSecretLength)
	assert.NoError(t, prod.Validate())
}
