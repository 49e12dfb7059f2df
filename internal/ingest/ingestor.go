// Package ingest runs the settlement file ingestion workflow: store the raw
// file, create the upload row, parse the spreadsheet against the tenant's
// template, persist the settlement batch, and finalize the upload status.
//
// The upload row is owned exclusively by this package for writes. Its
// status moves processing → completed or processing → failed, exactly once;
// an upload is never left in processing, and settlement rows exist only for
// completed uploads.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/mkwon-dev/riderpay/internal/excel"
	"github.com/mkwon-dev/riderpay/internal/models"
	"github.com/mkwon-dev/riderpay/internal/parser"
	"github.com/mkwon-dev/riderpay/internal/storage"
)

// DefaultTimeout bounds one ingestion run when no timeout is configured.
const DefaultTimeout = 2 * time.Minute

// Request carries one ingestion request. Authorization happens at the HTTP
// boundary; the tenant and uploader IDs arrive here already validated.
type Request struct {
	TenantID         string
	UploaderID       string
	FileBytes        []byte
	OriginalFileName string
	TemplateID       string
	WeekIdentifier   string
}

// Result reports a successful ingestion.
type Result struct {
	UploadID    string
	RecordCount int
}

// Ingestor orchestrates ingestion runs against the relational and blob
// stores. Each call to Ingest is one independent, sequential unit of work;
// concurrent runs share no state beyond the stores themselves.
type Ingestor struct {
	store   storage.Store
	blobs   storage.BlobStore
	timeout time.Duration
}

// New creates an Ingestor. A non-positive timeout falls back to
// DefaultTimeout.
func New(store storage.Store, blobs storage.BlobStore, timeout time.Duration) *Ingestor {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Ingestor{store: store, blobs: blobs, timeout: timeout}
}

// Ingest runs the full ingestion workflow for one uploaded file.
//
// Failures before the upload row exists propagate directly. Failures after
// it exists additionally mark the row failed with the error text, so the
// dashboards always see a terminal status. The one known gap: if the blob
// write succeeds but the upload row insert fails, the stored file is
// orphaned with no referencing row. That is rare and manually cleanable,
// and preferable to losing the raw file of a half-recorded upload.
func (ing *Ingestor) Ingest(ctx context.Context, req Request) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, ing.timeout)
	defer cancel()

	start := time.Now()

	// Template lookup happens first so a bad template ID costs nothing.
	tpl, err := ing.store.GetTemplate(ctx, req.TenantID, req.TemplateID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, req.TemplateID)
		}
		return nil, ing.mapCtxErr(ctx, fmt.Errorf("fetch template: %w", err))
	}
	mapping, err := parser.ParseColumnMapping(tpl.ColumnMapping)
	if err != nil {
		if errors.Is(err, parser.ErrEmptyMapping) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, req.TemplateID)
		}
		return nil, fmt.Errorf("template %s: %w", req.TemplateID, err)
	}

	storagePath := storageKey(req.TenantID, req.OriginalFileName, time.Now())
	if err := ing.blobs.Put(ctx, storagePath, req.FileBytes); err != nil {
		return nil, ing.mapCtxErr(ctx, fmt.Errorf("%w: %v", ErrStorageWrite, err))
	}

	upload := &models.Upload{
		TenantID:       req.TenantID,
		UploaderID:     req.UploaderID,
		FileName:       originalName(req.OriginalFileName),
		StoragePath:    storagePath,
		WeekIdentifier: req.WeekIdentifier,
		Status:         models.UploadProcessing,
	}
	if err := ing.store.CreateUpload(ctx, upload); err != nil {
		return nil, ing.mapCtxErr(ctx, fmt.Errorf("%w: %v", ErrUploadRecord, err))
	}

	slog.Info("Ingestion started",
		"upload_id", upload.ID,
		"tenant_id", req.TenantID,
		"template_id", req.TemplateID,
		"file_name", upload.FileName,
		"week", req.WeekIdentifier,
	)

	records, err := ing.parse(ctx, req, mapping, upload.ID)
	if err == nil {
		err = ing.store.InsertSettlements(ctx, records)
		if err != nil {
			err = fmt.Errorf("%w: %v", ErrSettlementWrite, err)
		}
	}
	if err != nil {
		return nil, ing.fail(ctx, upload.ID, err)
	}

	if err := ing.store.CompleteUpload(ctx, upload.ID, len(records)); err != nil {
		return nil, ing.fail(ctx, upload.ID, fmt.Errorf("finalize upload: %w", err))
	}

	slog.Info("Ingestion completed",
		"upload_id", upload.ID,
		"records", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &Result{UploadID: upload.ID, RecordCount: len(records)}, nil
}

// parse runs reader → header resolver → extractor against the mapping.
func (ing *Ingestor) parse(ctx context.Context, req Request, mapping *parser.ColumnMapping, uploadID string) ([]*models.OfficialSettlement, error) {
	if err := ctx.Err(); err != nil {
		return nil, ing.mapCtxErr(ctx, err)
	}

	wb, err := excel.OpenWorkbook(req.FileBytes)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet, err := wb.SelectSheet(mapping.SheetName)
	if err != nil {
		return nil, err
	}
	grid, err := wb.Grid(sheet)
	if err != nil {
		return nil, err
	}

	fieldIdx := parser.ResolveHeader(grid, mapping)
	records := parser.ExtractRecords(grid, fieldIdx, mapping.StartRow, uploadID, req.TenantID)
	if len(records) == 0 {
		return nil, ErrNoValidRows
	}
	return records, nil
}

// fail marks the upload failed with the error text and returns the original
// error. The status write uses a fresh context so it still lands when the
// run's own context has expired.
func (ing *Ingestor) fail(ctx context.Context, uploadID string, cause error) error {
	cause = ing.mapCtxErr(ctx, cause)

	failCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ing.store.FailUpload(failCtx, uploadID, cause.Error()); err != nil {
		slog.Error("Failed to mark upload as failed", "upload_id", uploadID, "error", err)
	}

	slog.Warn("Ingestion failed", "upload_id", uploadID, "error", cause)
	return cause
}

// mapCtxErr converts a deadline expiry into the timeout sentinel so the
// boundary reports it like any other ingestion failure.
func (ing *Ingestor) mapCtxErr(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return ErrIngestTimeout
	}
	return err
}

// asciiExt matches a plain ASCII file extension like ".xlsx".
var asciiExt = regexp.MustCompile(`^\.[A-Za-z0-9]+$`)

// storageKey builds the blob key for a raw upload:
// {tenant}/{timestamp}-upload-{token}{ext}. Only the ASCII timestamp and
// token appear in the key — original filenames are often Korean and blob
// keys must stay encoding-safe — while the extension is kept when it is
// plain ASCII so the stored object remains openable.
func storageKey(tenantID, originalFileName string, now time.Time) string {
	ts := now.UTC().Format(time.RFC3339)
	ts = strings.NewReplacer(":", "-", ".", "-").Replace(ts)

	ext := filepath.Ext(originalFileName)
	if !asciiExt.MatchString(ext) {
		ext = ".xlsx"
	}
	return fmt.Sprintf("%s/%s-upload-%d%s", tenantID, ts, now.UnixMilli(), ext)
}

// originalName preserves the human-readable filename for the upload row,
// substituting a placeholder when the client sent none.
func originalName(name string) string {
	if name == "" {
		return "unknown_file"
	}
	return name
}
