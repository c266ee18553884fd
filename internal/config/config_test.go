// SPDX-License-Identifier: AGPL-3.0-only
package config

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32)))

func setRequired(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"PORT", "MIGRATIONS_DIR", "TWITTER_CLIENT_ID", "TWITTER_CLIENT_SECRET",
		"TWITTER_CALLBACK_URL", "TWITTER_API_URL", "BLUESKY_PDS_URL", "COOKIE_SECURE",
		"SYNC_INTERVAL", "HTTP_TIMEOUT", "OAUTH_STATE_TTL", "FETCH_WINDOW",
		"WORKER_CONCURRENCY", "POSTGRES_DB", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_HOST",
	} {
		t.Setenv(key, "")
	}

	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/xpost?sslmode=disable")
	t.Setenv("TOKEN_ENCRYPTION_KEY", testKey)
	t.Setenv("SESSION_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./sql/schema", cfg.MigrationsDir)
	assert.Len(t, cfg.TokenEncryptionKey, 32)
	assert.Equal(t, "https://api.twitter.com", cfg.TwitterAPIURL)
	assert.Equal(t, "https://bsky.social", cfg.BlueskyPDSURL)
	assert.Equal(t, time.Minute, cfg.SyncInterval)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 10*time.Minute, cfg.OAuthStateTTL)
	assert.Equal(t, 10, cfg.FetchWindow)
	assert.Equal(t, 4, cfg.WorkerConcurrency)
	assert.False(t, cfg.SecureCookies)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SYNC_INTERVAL", "5m")
	t.Setenv("FETCH_WINDOW", "25")
	t.Setenv("WORKER_CONCURRENCY", "8")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("BLUESKY_PDS_URL", "https://pds.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.SyncInterval)
	assert.Equal(t, 25, cfg.FetchWindow)
	assert.Equal(t, 8, cfg.WorkerConcurrency)
	assert.True(t, cfg.SecureCookies)
	assert.Equal(t, "https://pds.example.com", cfg.BlueskyPDSURL)
}

func TestLoadBuildsDatabaseURLFromParts(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_DB", "xpost")
	t.Setenv("POSTGRES_USER", "app")
	t.Setenv("POSTGRES_PASSWORD", "pw")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:pw@db:5432/xpost?sslmode=disable", cfg.DatabaseURL)

	t.Setenv("POSTGRES_HOST", "localhost")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:pw@localhost:5432/xpost?sslmode=disable", cfg.DatabaseURL)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		missing bool
		wantErr string
	}{
		{name: "no database", env: map[string]string{"DATABASE_URL": ""}, missing: true, wantErr: "DATABASE_URL"},
		{name: "no key", env: map[string]string{"TOKEN_ENCRYPTION_KEY": ""}, missing: true, wantErr: "TOKEN_ENCRYPTION_KEY"},
		{name: "key not base64", env: map[string]string{"TOKEN_ENCRYPTION_KEY": "%%%"}, wantErr: "base64"},
		{name: "short key", env: map[string]string{"TOKEN_ENCRYPTION_KEY": base64.StdEncoding.EncodeToString([]byte("short"))}, wantErr: "32 bytes"},
		{name: "no session secret", env: map[string]string{"SESSION_SECRET": ""}, missing: true, wantErr: "SESSION_SECRET"},
		{name: "bad interval", env: map[string]string{"SYNC_INTERVAL": "soon"}, wantErr: "SYNC_INTERVAL"},
		{name: "negative window", env: map[string]string{"FETCH_WINDOW": "-1"}, wantErr: "FETCH_WINDOW"},
		{name: "bad bool", env: map[string]string{"COOKIE_SECURE": "maybe"}, wantErr: "COOKIE_SECURE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			if tt.missing {
				assert.ErrorIs(t, err, ErrMissingConfig)
			}
		})
	}
}
