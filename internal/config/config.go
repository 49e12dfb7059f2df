// Package config handles application configuration and environment loading.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings for the HTTP server, storage backends, and
// ingestion limits.
type Config struct {
	ListenAddr    string        // HTTP listen address (default ":8080")
	DBPath        string        // path to the SQLite database file
	JWTSecret     string        // HS256 shared secret for session tokens
	TokenDuration time.Duration // session token lifetime (default 24h)
	IngestTimeout time.Duration // per-ingestion time budget (default 2m)

	// Blob storage: "local" keeps raw files under BlobDir; "s3" uses an
	// S3-compatible bucket.
	BlobBackend string
	BlobDir     string

	S3KeyID    string
	S3Secret   string
	S3Region   string
	S3Bucket   string
	S3Endpoint string // optional custom endpoint (MinIO, Hetzner)
}

// Load reads configuration from a .env file (if present) and the
// environment. Missing optional values fall back to development defaults;
// a missing JWT secret is an error because tokens signed with a guessable
// secret are worse than no auth at all.
func Load() (*Config, error) {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		DBPath:        getEnv("DB_PATH", "./data/riderpay.db"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenDuration: getDuration("TOKEN_DURATION", 24*time.Hour),
		IngestTimeout: getDuration("INGEST_TIMEOUT", 2*time.Minute),
		BlobBackend:   getEnv("BLOB_BACKEND", "local"),
		BlobDir:       getEnv("BLOB_DIR", "./data/files"),
		S3KeyID:       os.Getenv("S3_KEY_ID"),
		S3Secret:      os.Getenv("S3_SECRET"),
		S3Region:      getEnv("S3_REGION", "auto"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Endpoint:    os.Getenv("S3_ENDPOINT"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	switch cfg.BlobBackend {
	case "local", "s3":
	default:
		return nil, fmt.Errorf("BLOB_BACKEND must be \"local\" or \"s3\", got %q", cfg.BlobBackend)
	}
	if cfg.BlobBackend == "s3" && (cfg.S3KeyID == "" || cfg.S3Secret == "" || cfg.S3Bucket == "") {
		return nil, fmt.Errorf("S3_KEY_ID, S3_SECRET, and S3_BUCKET are required when BLOB_BACKEND=s3")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	// Bare numbers are treated as seconds.
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
