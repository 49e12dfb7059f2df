package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/mkwon-dev/riderpay/internal/ingest"
	"github.com/mkwon-dev/riderpay/internal/middleware"
)

// maxUploadBytes caps one settlement file. Weekly platform exports run a
// few MB at most.
const maxUploadBytes = 32 << 20

// handleUploadSettlement ingests a settlement spreadsheet: multipart fields
// excelFile, template_id, and optional week_identifier.
func (h *Handler) handleUploadSettlement(w http.ResponseWriter, r *http.Request) {
	claims := adminClaims(w, r)
	if claims == nil {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	// Large parts spill to temp files; release them on every exit path.
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("excelFile")
	if err != nil {
		writeError(w, http.StatusBadRequest, "both a file and a parsing template are required")
		return
	}
	defer file.Close()

	templateID := r.FormValue("template_id")
	if templateID == "" {
		writeError(w, http.StatusBadRequest, "both a file and a parsing template are required")
		return
	}

	weekIdentifier := r.FormValue("week_identifier")
	if weekIdentifier == "" {
		weekIdentifier = "unknown-week"
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	result, err := h.ingestor.Ingest(r.Context(), ingest.Request{
		TenantID:         claims.TenantID,
		UploaderID:       claims.ProfileID,
		FileBytes:        fileBytes,
		OriginalFileName: header.Filename,
		TemplateID:       templateID,
		WeekIdentifier:   weekIdentifier,
	})
	if err != nil {
		middleware.IngestionsTotal.WithLabelValues("failed").Inc()
		if errors.Is(err, ingest.ErrTemplateNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		// Parse and persistence failures alike surface the recorded
		// failure text verbatim.
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	middleware.IngestionsTotal.WithLabelValues("completed").Inc()
	slog.Info("Settlement file processed",
		"upload_id", result.UploadID,
		"records", result.RecordCount,
		"uploader_id", claims.ProfileID,
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"message":           "file uploaded and processed successfully",
		"processed_records": result.RecordCount,
		"upload_id":         result.UploadID,
	})
}

// handleListUploads returns the tenant's upload history, newest first.
func (h *Handler) handleListUploads(w http.ResponseWriter, r *http.Request) {
	claims := adminClaims(w, r)
	if claims == nil {
		return
	}

	uploads, err := h.store.ListUploads(r.Context(), claims.TenantID)
	if err != nil {
		slog.Error("List uploads failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list uploads")
		return
	}

	type uploadResponse struct {
		ID               string `json:"id"`
		FileName         string `json:"file_name"`
		WeekIdentifier   string `json:"week_identifier"`
		Status           string `json:"status"`
		ProcessedRecords int    `json:"processed_records"`
		ErrorMessage     string `json:"error_message,omitempty"`
		CreatedAt        int64  `json:"created_at"`
	}
	resp := make([]uploadResponse, 0, len(uploads))
	for _, u := range uploads {
		resp = append(resp, uploadResponse{
			ID:               u.ID,
			FileName:         u.FileName,
			WeekIdentifier:   u.WeekIdentifier,
			Status:           string(u.Status),
			ProcessedRecords: u.ProcessedRecords,
			ErrorMessage:     u.ErrorMessage,
			CreatedAt:        u.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"uploads": resp})
}
