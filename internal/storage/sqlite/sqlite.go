// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mkwon-dev/riderpay/internal/models"
	"github.com/mkwon-dev/riderpay/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateTenant persists a new tenant.
func (s *SQLiteStore) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}
	if tenant.CreatedAt == 0 {
		tenant.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tenants (id, name, created_at) VALUES (?, ?, ?)",
		tenant.ID, tenant.Name, tenant.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert tenant: %w", err)
	}
	return nil
}

// GetTenant retrieves a tenant by ID.
func (s *SQLiteStore) GetTenant(ctx context.Context, id string) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM tenants WHERE id = ?",
		id,
	).Scan(&tenant.ID, &tenant.Name, &tenant.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tenant %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return tenant, nil
}

// CreateProfile persists a new profile.
func (s *SQLiteStore) CreateProfile(ctx context.Context, profile *models.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.CreatedAt == 0 {
		profile.CreatedAt = time.Now().Unix()
	}

	platformIDs, err := json.Marshal(profile.PlatformIDs)
	if err != nil {
		return fmt.Errorf("failed to encode platform IDs: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, email, password_hash, full_name, role, tenant_id, platform_ids, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.ID, profile.Email, profile.PasswordHash, profile.FullName,
		string(profile.Role), nullIfEmpty(profile.TenantID), string(platformIDs), profile.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by ID.
func (s *SQLiteStore) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	return s.getProfile(ctx, "id = ?", id)
}

// GetProfileByEmail retrieves a profile by its login email.
func (s *SQLiteStore) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return s.getProfile(ctx, "email = ?", email)
}

func (s *SQLiteStore) getProfile(ctx context.Context, where string, arg any) (*models.Profile, error) {
	profile := &models.Profile{}
	var tenantID sql.NullString
	var platformIDs string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, full_name, role, tenant_id, platform_ids, created_at
		 FROM profiles WHERE `+where,
		arg,
	).Scan(&profile.ID, &profile.Email, &profile.PasswordHash, &profile.FullName,
		&profile.Role, &tenantID, &platformIDs, &profile.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("profile: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.TenantID = tenantID.String
	if err := json.Unmarshal([]byte(platformIDs), &profile.PlatformIDs); err != nil {
		return nil, fmt.Errorf("failed to decode platform IDs: %w", err)
	}
	return profile, nil
}

// nullIfEmpty maps "" to NULL so optional foreign keys stay unset.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
