package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_BACKEND", "TOKEN_TTL", "MAX_UPLOAD_MB", "JWT_SECRET", "ENVIRONMENT", "LOGIN_RATE_PER_MIN", "TRUST_PROXY"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "0.0.0.0:4000", cfg.Addr())
	assert.Equal(t, BackendFile, cfg.StoreBackend)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(50<<20), cfg.MaxUploadBytes())
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 10, cfg.LoginRatePerMin)
	assert.False(t, cfg.UploadRequireAuth)
	assert.False(t, cfg.TrustProxy)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("STORE_BACKEND", " SQLite ")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("UPLOAD_REQUIRE_AUTH", "true")
	t.Setenv("TRUST_PROXY", "true")
	t.Setenv("ENVIRONMENT", " Production ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.True(t, cfg.UploadRequireAuth)
	assert.True(t, cfg.TrustProxy)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("STORE_BACKEND", "postgres")
	_, err := Load()
	assert.ErrorContains(t, err, "STORE_BACKEND")

	t.Setenv("STORE_BACKEND", "file")
	t.Setenv("PORT", "not-a-number")
	_, err = Load()
	assert.Error(t, err)
}

func TestValidateEnv(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	logger := zap.New(core)

	cfg := &Config{Port: 4000, JWTSecret: DefaultJWTSecret, Environment: "development", AdminPass: "pw"}
	require.NoError(t, ValidateEnv(cfg, logger))
	assert.NotZero(t, logs.FilterMessageSnippet("JWT_SECRET").Len())
	for _, e := range logs.All() {
		for _, f := range e.Context {
			assert.NotEqual(t, "pw", f.String)
		}
	}

	cfg.Environment = "production"
	assert.Error(t, ValidateEnv(cfg, zap.NewNop()))

	cfg.JWTSecret = "a-long-random-secret"
	assert.NoError(t, ValidateEnv(cfg, zap.NewNop()))
}
