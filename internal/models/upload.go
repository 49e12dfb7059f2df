package models

// UploadStatus tracks the lifecycle of one file ingestion.
//
// Valid transitions are processing → completed and processing → failed.
// A finished upload never reverts.
type UploadStatus string

const (
	UploadPending    UploadStatus = "pending"
	UploadProcessing UploadStatus = "processing"
	UploadCompleted  UploadStatus = "completed"
	UploadFailed     UploadStatus = "failed"
)

// Upload records one attempted ingestion of one settlement spreadsheet.
// Its status is the single source of truth for the ingestion outcome: all
// settlement rows for the upload exist only if the status is completed.
type Upload struct {
	// ID is the unique identifier for the upload (UUID format).
	ID string

	// TenantID is the tenant the file was uploaded for.
	TenantID string

	// UploaderID is the profile ID of the admin who uploaded the file.
	UploaderID string

	// FileName is the original, human-readable filename. May contain
	// non-ASCII characters; kept for display only.
	FileName string

	// StoragePath is the sanitized, tenant-prefixed blob storage key where
	// the raw file bytes live. Contains no characters from FileName.
	StoragePath string

	// WeekIdentifier is the free-form settlement period label supplied by
	// the uploader (e.g., "2025-W34").
	WeekIdentifier string

	// Status is the current lifecycle state.
	Status UploadStatus

	// ProcessedRecords is the number of settlement rows persisted for this
	// upload. Zero until the upload completes.
	ProcessedRecords int

	// ErrorMessage holds the failure reason when Status is failed.
	ErrorMessage string

	// CreatedAt is the Unix timestamp when the upload was started.
	CreatedAt int64
}
