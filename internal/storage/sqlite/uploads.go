package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mkwon-dev/riderpay/internal/models"
	"github.com/mkwon-dev/riderpay/internal/storage"
)

// CreateUpload persists a new upload row.
func (s *SQLiteStore) CreateUpload(ctx context.Context, upload *models.Upload) error {
	if upload.ID == "" {
		upload.ID = uuid.New().String()
	}
	if upload.CreatedAt == 0 {
		upload.CreatedAt = time.Now().Unix()
	}
	if upload.Status == "" {
		upload.Status = models.UploadPending
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO uploads (id, tenant_id, uploader_id, file_name, storage_path, week_identifier, status, processed_records, error_message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		upload.ID, upload.TenantID, upload.UploaderID, upload.FileName, upload.StoragePath,
		upload.WeekIdentifier, string(upload.Status), upload.ProcessedRecords, upload.ErrorMessage, upload.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert upload: %w", err)
	}
	return nil
}

// CompleteUpload transitions an upload from processing to completed.
// The status guard in the WHERE clause makes the transition one-way: a
// finished upload can never be completed again.
func (s *SQLiteStore) CompleteUpload(ctx context.Context, id string, processedRecords int) error {
	return s.finishUpload(ctx, id, models.UploadCompleted, processedRecords, "")
}

// FailUpload transitions an upload from processing to failed and records
// the failure reason.
func (s *SQLiteStore) FailUpload(ctx context.Context, id string, errorMessage string) error {
	return s.finishUpload(ctx, id, models.UploadFailed, 0, errorMessage)
}

func (s *SQLiteStore) finishUpload(ctx context.Context, id string, status models.UploadStatus, processedRecords int, errorMessage string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE uploads SET status = ?, processed_records = ?, error_message = ?
		 WHERE id = ? AND status = ?`,
		string(status), processedRecords, errorMessage, id, string(models.UploadProcessing),
	)
	if err != nil {
		return fmt.Errorf("failed to update upload status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check upload status update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("upload %s is not processing: %w", id, storage.ErrNotFound)
	}
	return nil
}

// GetUpload retrieves an upload by ID, scoped to one tenant.
func (s *SQLiteStore) GetUpload(ctx context.Context, tenantID, id string) (*models.Upload, error) {
	upload := &models.Upload{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, uploader_id, file_name, storage_path, week_identifier, status, processed_records, error_message, created_at
		 FROM uploads WHERE id = ? AND tenant_id = ?`,
		id, tenantID,
	).Scan(&upload.ID, &upload.TenantID, &upload.UploaderID, &upload.FileName, &upload.StoragePath,
		&upload.WeekIdentifier, &upload.Status, &upload.ProcessedRecords, &upload.ErrorMessage, &upload.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("upload %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get upload: %w", err)
	}
	return upload, nil
}

// ListUploads returns a tenant's uploads, newest first.
func (s *SQLiteStore) ListUploads(ctx context.Context, tenantID string) ([]*models.Upload, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, tenant_id, uploader_id, file_name, storage_path, week_identifier, status, processed_records, error_message, created_at
		 FROM uploads WHERE tenant_id = ? ORDER BY created_at DESC, id`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploads: %w", err)
	}
	defer rows.Close()

	var uploads []*models.Upload
	for rows.Next() {
		upload := &models.Upload{}
		if err := rows.Scan(&upload.ID, &upload.TenantID, &upload.UploaderID, &upload.FileName, &upload.StoragePath,
			&upload.WeekIdentifier, &upload.Status, &upload.ProcessedRecords, &upload.ErrorMessage, &upload.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan upload: %w", err)
		}
		uploads = append(uploads, upload)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate uploads: %w", err)
	}
	return uploads, nil
}
