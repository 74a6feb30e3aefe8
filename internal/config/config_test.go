package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "DB_DRIVER", "DB_URL", "JWT_SECRET", "STATIC_DIR", "UPLOAD_DIR", "TLS_CERT_FILE", "TLS_KEY_FILE"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	require.Equal(t, "5000", cfg.Port)
	require.Equal(t, "development", cfg.Env)
	require.Equal(t, "postgres", cfg.DBDriver)
	require.Equal(t, "static", cfg.StaticDir)
	require.Equal(t, "static/images", cfg.UploadDir)
	require.True(t, cfg.GeneratedSecret)
	require.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "8443")
	t.Setenv("ENV", "production")
	t.Setenv("DB_DRIVER", "sqlite3")
	t.Setenv("DB_URL", "file:catalog.db")
	t.Setenv("JWT_SECRET", "operator-secret")
	t.Setenv("STATIC_DIR", "/srv/static")
	t.Setenv("UPLOAD_DIR", "")

	cfg := LoadConfig()

	require.Equal(t, "8443", cfg.Port)
	require.Equal(t, "production", cfg.Env)
	require.Equal(t, "sqlite3", cfg.DBDriver)
	require.Equal(t, "file:catalog.db", cfg.DBUrl)
	require.Equal(t, []byte("operator-secret"), cfg.JWTSecret)
	require.False(t, cfg.GeneratedSecret)
	require.Equal(t, "/srv/static/images", cfg.UploadDir)
}

func TestGeneratedSecretsDiffer(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	a := LoadConfig()
	b := LoadConfig()
	require.NotEqual(t, a.JWTSecret, b.JWTSecret)
}
