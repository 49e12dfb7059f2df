package ingest

import "errors"

// The ingestion error taxonomy. Every failure an ingestion run can produce
// wraps one of these sentinels (or one of the excel package's), so the HTTP
// boundary can map outcomes to status codes with errors.Is and the upload
// row records a single human-readable message.
var (
	// ErrTemplateNotFound means the parsing template does not exist for
	// the tenant or its column mapping is empty.
	ErrTemplateNotFound = errors.New("parsing template not found or has no column mapping")

	// ErrStorageWrite means the raw file could not be written to blob
	// storage.
	ErrStorageWrite = errors.New("failed to store uploaded file")

	// ErrUploadRecord means the upload row could not be created.
	ErrUploadRecord = errors.New("failed to record upload")

	// ErrNoValidRows means parsing produced zero settlement records after
	// the required-field filter. Usually a wrong template startRow or a
	// file that does not match the template.
	ErrNoValidRows = errors.New("no valid settlement rows found; check the file format and the template's start row")

	// ErrSettlementWrite means the settlement batch insert failed.
	ErrSettlementWrite = errors.New("failed to store settlement records")

	// ErrIngestTimeout means the ingestion exceeded its time budget.
	ErrIngestTimeout = errors.New("ingestion timed out")
)
