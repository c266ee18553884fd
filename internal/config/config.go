// SPDX-License-Identifier: AGPL-3.0-only
package config

import (
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/fluffyriot/xpost/internal/database"
	"github.com/pressly/goose/v3"

	_ "github.com/lib/pq"
)

var ErrMissingConfig = errors.New("missing configuration")

type AppConfig struct {
	Port               string
	DatabaseURL        string
	MigrationsDir      string
	TokenEncryptionKey []byte
	SessionSecret      string
	SecureCookies      bool

	TwitterClientID     string
	TwitterClientSecret string
	TwitterCallbackURL  string
	TwitterAPIURL       string
	BlueskyPDSURL       string

	SyncInterval      time.Duration
	FetchWindow       int
	HTTPTimeout       time.Duration
	WorkerConcurrency int
	OAuthStateTTL     time.Duration
}

// Load reads the application configuration from the environment.
func Load() (*AppConfig, error) {

	cfg := &AppConfig{
		Port:                getEnv("PORT", "8080"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		MigrationsDir:       getEnv("MIGRATIONS_DIR", "./sql/schema"),
		SessionSecret:       os.Getenv("SESSION_SECRET"),
		TwitterClientID:     os.Getenv("TWITTER_CLIENT_ID"),
		TwitterClientSecret: os.Getenv("TWITTER_CLIENT_SECRET"),
		TwitterCallbackURL:  getEnv("TWITTER_CALLBACK_URL", "http://localhost:8080/accounts/twitter/callback"),
		TwitterAPIURL:       getEnv("TWITTER_API_URL", "https://api.twitter.com"),
		BlueskyPDSURL:       getEnv("BLUESKY_PDS_URL", "https://bsky.social"),
	}

	if cfg.DatabaseURL == "" {
		dbName := os.Getenv("POSTGRES_DB")
		dbUserName := os.Getenv("POSTGRES_USER")
		dbPassword := os.Getenv("POSTGRES_PASSWORD")

		if dbName == "" || dbUserName == "" || dbPassword == "" {
			return nil, fmt.Errorf("%w: DATABASE_URL or POSTGRES_DB, POSTGRES_USER and POSTGRES_PASSWORD", ErrMissingConfig)
		}

		cfg.DatabaseURL = fmt.Sprintf("postgres://%v:%v@%v:5432/%v?sslmode=disable",
			dbUserName, dbPassword, getEnv("POSTGRES_HOST", "db"), dbName)
	}

	key := os.Getenv("TOKEN_ENCRYPTION_KEY")
	if key == "" {
		return nil, fmt.Errorf("%w: TOKEN_ENCRYPTION_KEY", ErrMissingConfig)
	}
	decoded, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return nil, fmt.Errorf("TOKEN_ENCRYPTION_KEY is not valid base64: %w", err)
	}
	if len(decoded) != 32 {
		return nil, fmt.Errorf("TOKEN_ENCRYPTION_KEY must decode to 32 bytes, got %d", len(decoded))
	}
	cfg.TokenEncryptionKey = decoded

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("%w: SESSION_SECRET", ErrMissingConfig)
	}

	if cfg.SecureCookies, err = getEnvBool("COOKIE_SECURE", false); err != nil {
		return nil, err
	}
	if cfg.SyncInterval, err = getEnvDuration("SYNC_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getEnvDuration("HTTP_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.OAuthStateTTL, err = getEnvDuration("OAUTH_STATE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.FetchWindow, err = getEnvInt("FETCH_WINDOW", 10); err != nil {
		return nil, err
	}
	if cfg.WorkerConcurrency, err = getEnvInt("WORKER_CONCURRENCY", 4); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabase connects to Postgres and applies pending migrations.
func LoadDatabase(ctx context.Context, cfg *AppConfig) (*database.Queries, *sql.DB, error) {

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open the DB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to the DB: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, cfg.MigrationsDir); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	version, err := goose.EnsureDBVersionContext(ctx, db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to get DB version: %w", err)
	}
	log.Printf("Migrations applied successfully. Current DB version: %d", version)

	return database.New(db), db, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, value)
	}
	return d, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, value)
	}
	return b, nil
}
