// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mkwon-dev/riderpay/internal/models"
)

// ErrNotFound is returned when a requested row does not exist.
// Implementations wrap it so callers can use errors.Is.
var ErrNotFound = errors.New("not found")

// Store defines the relational persistence operations for the settlement
// backend. This abstraction keeps the ingestion workflow and the HTTP
// handlers independent of the storage backend (SQLite today, PostgreSQL
// later) and lets tests swap in failing implementations.
type Store interface {
	// CreateTenant persists a new tenant. The ID is populated if empty.
	CreateTenant(ctx context.Context, tenant *models.Tenant) error

	// GetTenant retrieves a tenant by ID.
	GetTenant(ctx context.Context, id string) (*models.Tenant, error)

	// CreateProfile persists a new profile. The ID is populated if empty.
	CreateProfile(ctx context.Context, profile *models.Profile) error

	// GetProfile retrieves a profile by ID.
	GetProfile(ctx context.Context, id string) (*models.Profile, error)

	// GetProfileByEmail retrieves a profile by its login email.
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)

	// CreateTemplate persists a new parsing template. The ID is populated
	// if empty.
	CreateTemplate(ctx context.Context, tpl *models.ParsingTemplate) error

	// GetTemplate retrieves a template by ID, scoped to one tenant.
	GetTemplate(ctx context.Context, tenantID, id string) (*models.ParsingTemplate, error)

	// ListTemplates returns a tenant's templates, newest first.
	ListTemplates(ctx context.Context, tenantID string) ([]*models.ParsingTemplate, error)

	// UpdateTemplate replaces a template's name, mapping, and active flag.
	UpdateTemplate(ctx context.Context, tpl *models.ParsingTemplate) error

	// DeleteTemplate removes a template, scoped to one tenant.
	DeleteTemplate(ctx context.Context, tenantID, id string) error

	// CreateUpload persists a new upload row. The ID is populated if empty.
	CreateUpload(ctx context.Context, upload *models.Upload) error

	// CompleteUpload transitions an upload from processing to completed
	// and records the number of persisted settlement rows.
	CompleteUpload(ctx context.Context, id string, processedRecords int) error

	// FailUpload transitions an upload from processing to failed and
	// records the failure reason.
	FailUpload(ctx context.Context, id string, errorMessage string) error

	// GetUpload retrieves an upload by ID, scoped to one tenant.
	GetUpload(ctx context.Context, tenantID, id string) (*models.Upload, error)

	// ListUploads returns a tenant's uploads, newest first.
	ListUploads(ctx context.Context, tenantID string) ([]*models.Upload, error)

	// InsertSettlements persists one upload's settlement batch in a single
	// transaction: either every record is written or none are.
	InsertSettlements(ctx context.Context, records []*models.OfficialSettlement) error

	// ListSettlementsByUpload returns the settlement rows of one upload.
	ListSettlementsByUpload(ctx context.Context, tenantID, uploadID string) ([]*models.OfficialSettlement, error)

	// ListSettlementsByWeek returns a tenant's settlement rows across all
	// uploads labeled with the given week identifier.
	ListSettlementsByWeek(ctx context.Context, tenantID, weekIdentifier string) ([]*models.OfficialSettlement, error)

	// ListSettlementsByRider returns a tenant's settlement rows whose
	// rider_platform_id is in platformIDs, newest first.
	ListSettlementsByRider(ctx context.Context, tenantID string, platformIDs []string) ([]*models.OfficialSettlement, error)

	// UpdateFees applies lease/mission fee edits to existing settlement
	// rows of one tenant. Rows are matched strictly by ID: if any ID does
	// not exist for the tenant, the whole batch rolls back and an error
	// wrapping ErrNotFound is returned. Nothing is ever inserted.
	UpdateFees(ctx context.Context, tenantID string, updates []models.FeeUpdate) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
