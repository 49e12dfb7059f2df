package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkwon-dev/riderpay/internal/models"
	"github.com/mkwon-dev/riderpay/internal/parser"
	"github.com/mkwon-dev/riderpay/internal/storage"
)

type templateRequest struct {
	TemplateName  string          `json:"template_name"`
	ColumnMapping json.RawMessage `json:"column_mapping"`
	IsActive      *bool           `json:"is_active"`
}

type templateResponse struct {
	ID            string          `json:"id"`
	TemplateName  string          `json:"template_name"`
	ColumnMapping json.RawMessage `json:"column_mapping"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     int64           `json:"created_at"`
}

func toTemplateResponse(tpl *models.ParsingTemplate) templateResponse {
	return templateResponse{
		ID:            tpl.ID,
		TemplateName:  tpl.TemplateName,
		ColumnMapping: json.RawMessage(tpl.ColumnMapping),
		IsActive:      tpl.IsActive,
		CreatedAt:     tpl.CreatedAt,
	}
}

// decodeTemplateRequest validates the editor payload. The mapping is parsed
// here so a broken template is rejected at save time instead of at the
// first upload that uses it.
func decodeTemplateRequest(r *http.Request) (*templateRequest, error) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, errors.New("invalid request body")
	}
	if req.TemplateName == "" {
		return nil, errors.New("template_name is required")
	}
	if _, err := parser.ParseColumnMapping(req.ColumnMapping); err != nil {
		return nil, err
	}
	return &req, nil
}

func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	claims := adminClaims(w, r)
	if claims == nil {
		return
	}

	templates, err := h.store.ListTemplates(r.Context(), claims.TenantID)
	if err != nil {
		slog.Error("List templates failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list templates")
		return
	}

	resp := make([]templateResponse, 0, len(templates))
	for _, tpl := range templates {
		resp = append(resp, toTemplateResponse(tpl))
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": resp})
}

func (h *Handler) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	claims := adminClaims(w, r)
	if claims == nil {
		return
	}

	req, err := decodeTemplateRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tpl := &models.ParsingTemplate{
		TenantID:      claims.TenantID,
		TemplateName:  req.TemplateName,
		ColumnMapping: []byte(req.ColumnMapping),
		IsActive:      req.IsActive == nil || *req.IsActive,
	}
	if err := h.store.CreateTemplate(r.Context(), tpl); err != nil {
		slog.Error("Create template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create template")
		return
	}
	writeJSON(w, http.StatusCreated, toTemplateResponse(tpl))
}

func (h *Handler) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	claims := adminClaims(w, r)
	if claims == nil {
		return
	}

	req, err := decodeTemplateRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	tpl := &models.ParsingTemplate{
		ID:            chi.URLParam(r, "id"),
		TenantID:      claims.TenantID,
		TemplateName:  req.TemplateName,
		ColumnMapping: []byte(req.ColumnMapping),
		IsActive:      req.IsActive == nil || *req.IsActive,
	}
	if err := h.store.UpdateTemplate(r.Context(), tpl); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "template not found")
			return
		}
		slog.Error("Update template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update template")
		return
	}
	writeJSON(w, http.StatusOK, toTemplateResponse(tpl))
}

func (h *Handler) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	claims := adminClaims(w, r)
	if claims == nil {
		return
	}

	if err := h.store.DeleteTemplate(r.Context(), claims.TenantID, chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "template not found")
			return
		}
		slog.Error("Delete template failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete template")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "template deleted"})
}
