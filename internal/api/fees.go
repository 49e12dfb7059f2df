package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mkwon-dev/riderpay/internal/models"
	"github.com/mkwon-dev/riderpay/internal/storage"
)

// handleUpdateFees edits the lease and mission fees of existing settlement
// rows. Strict update-only: an unknown row ID is reported as an error and
// never creates a row — a fee edit with a wrong ID must fail loudly, not
// plant a phantom settlement.
func (h *Handler) handleUpdateFees(w http.ResponseWriter, r *http.Request) {
	claims := adminClaims(w, r)
	if claims == nil {
		return
	}
	// Fee editing stays with branch admins; super admins administer
	// tenants, they do not touch payroll numbers.
	if models.Role(claims.Role) != models.RoleAdmin {
		writeError(w, http.StatusForbidden, "not allowed")
		return
	}

	var req struct {
		Updates []models.FeeUpdate `json:"updates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Updates) == 0 {
		writeError(w, http.StatusBadRequest, "invalid update data provided")
		return
	}

	updated, err := h.store.UpdateFees(r.Context(), claims.TenantID, req.Updates)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("no update applied: %v", err))
			return
		}
		slog.Error("Fee update failed", "error", err, "tenant_id", claims.TenantID)
		writeError(w, http.StatusInternalServerError, "failed to update fees")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "fees updated successfully",
		"updated": updated,
	})
}
