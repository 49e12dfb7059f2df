package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/mkwon-dev/riderpay/internal/api"
	"github.com/mkwon-dev/riderpay/internal/auth"
	"github.com/mkwon-dev/riderpay/internal/config"
	"github.com/mkwon-dev/riderpay/internal/ingest"
	"github.com/mkwon-dev/riderpay/internal/storage"
	"github.com/mkwon-dev/riderpay/internal/storage/blob"
	"github.com/mkwon-dev/riderpay/internal/storage/sqlite"
	"github.com/mkwon-dev/riderpay/pkg/logging"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	var blobs storage.BlobStore
	switch cfg.BlobBackend {
	case "s3":
		blobs, err = blob.NewS3Store(blob.S3Config{
			KeyID:    cfg.S3KeyID,
			Secret:   cfg.S3Secret,
			Region:   cfg.S3Region,
			Bucket:   cfg.S3Bucket,
			Endpoint: cfg.S3Endpoint,
		})
		if err != nil {
			slog.Error("Failed to initialize S3 blob storage", "error", err)
			os.Exit(1)
		}
		slog.Info("Blob storage initialized", "backend", "s3", "bucket", cfg.S3Bucket)
	default:
		blobs, err = blob.NewLocalStore(cfg.BlobDir)
		if err != nil {
			slog.Error("Failed to initialize local blob storage", "error", err)
			os.Exit(1)
		}
		slog.Info("Blob storage initialized", "backend", "local", "dir", cfg.BlobDir)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authn := auth.NewPasswordAuthenticator(store)
	ingestor := ingest.New(store, blobs, cfg.IngestTimeout)

	handler := api.NewHandler(store, ingestor, authn, jwtManager)

	slog.Info("Server starting", "address", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, handler.Routes()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
