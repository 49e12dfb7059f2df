package api

import (
	"log/slog"
	"net/http"

	"github.com/mkwon-dev/riderpay/internal/calculator"
	"github.com/mkwon-dev/riderpay/internal/middleware"
	"github.com/mkwon-dev/riderpay/internal/models"
)

// settlementResponse exposes a settlement row with NULL money fields
// rendered as JSON null.
type settlementResponse struct {
	ID                          int64    `json:"id"`
	UploadID                    string   `json:"upload_id"`
	RiderPlatformID             string   `json:"rider_platform_id"`
	RiderName                   *string  `json:"rider_name"`
	SettlementAmount            *float64 `json:"settlement_amount"`
	SupportFund                 *float64 `json:"support_fund"`
	DeductionTotal              *float64 `json:"deduction_total"`
	TotalSettlementAmount       *float64 `json:"total_settlement_amount"`
	EmploymentInsurance         *float64 `json:"employment_insurance"`
	IndustrialAccidentInsurance *float64 `json:"industrial_accident_insurance"`
	HourlyInsurance             *float64 `json:"hourly_insurance"`
	RetroactiveInsurance        *float64 `json:"retroactive_insurance"`
	LeaseFee                    *float64 `json:"lease_fee"`
	MissionFee                  *float64 `json:"mission_fee"`
	ActualPayout                *float64 `json:"actual_payout"`
	WithholdingTax              *float64 `json:"withholding_tax"`
	FinalPayout                 *float64 `json:"final_payout"`
}

func toSettlementResponses(records []*models.OfficialSettlement) []settlementResponse {
	resp := make([]settlementResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, settlementResponse{
			ID:                          rec.ID,
			UploadID:                    rec.UploadID,
			RiderPlatformID:             rec.RiderPlatformID,
			RiderName:                   rec.RiderName,
			SettlementAmount:            rec.SettlementAmount,
			SupportFund:                 rec.SupportFund,
			DeductionTotal:              rec.DeductionTotal,
			TotalSettlementAmount:       rec.TotalSettlementAmount,
			EmploymentInsurance:         rec.EmploymentInsurance,
			IndustrialAccidentInsurance: rec.IndustrialAccidentInsurance,
			HourlyInsurance:             rec.HourlyInsurance,
			RetroactiveInsurance:        rec.RetroactiveInsurance,
			LeaseFee:                    rec.LeaseFee,
			MissionFee:                  rec.MissionFee,
			ActualPayout:                rec.ActualPayout,
			WithholdingTax:              rec.WithholdingTax,
			FinalPayout:                 rec.FinalPayout,
		})
	}
	return resp
}

// querySettlements fetches rows by upload_id or week_identifier.
func (h *Handler) querySettlements(w http.ResponseWriter, r *http.Request, tenantID string) ([]*models.OfficialSettlement, bool) {
	uploadID := r.URL.Query().Get("upload_id")
	week := r.URL.Query().Get("week_identifier")

	var (
		records []*models.OfficialSettlement
		err     error
	)
	switch {
	case uploadID != "":
		records, err = h.store.ListSettlementsByUpload(r.Context(), tenantID, uploadID)
	case week != "":
		records, err = h.store.ListSettlementsByWeek(r.Context(), tenantID, week)
	default:
		writeError(w, http.StatusBadRequest, "upload_id or week_identifier is required")
		return nil, false
	}
	if err != nil {
		slog.Error("Settlement query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to query settlements")
		return nil, false
	}
	return records, true
}

// handleListSettlements is the admin payroll view.
func (h *Handler) handleListSettlements(w http.ResponseWriter, r *http.Request) {
	claims := adminClaims(w, r)
	if claims == nil {
		return
	}

	records, ok := h.querySettlements(w, r, claims.TenantID)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settlements": toSettlementResponses(records)})
}

// handleSettlementSummary aggregates the rows of one upload or week.
func (h *Handler) handleSettlementSummary(w http.ResponseWriter, r *http.Request) {
	claims := adminClaims(w, r)
	if claims == nil {
		return
	}

	records, ok := h.querySettlements(w, r, claims.TenantID)
	if !ok {
		return
	}

	summary := calculator.Summarize(records)
	writeJSON(w, http.StatusOK, map[string]any{
		"total_riders":            summary.TotalRiders,
		"total_settlement_amount": summary.TotalSettlementAmount,
		"total_final_payout":      summary.TotalFinalPayout,
		"total_deductions":        summary.TotalDeductions,
		"average_payout":          summary.AveragePayout,
	})
}

// handleBranchProfit is the per-week branch profit view.
func (h *Handler) handleBranchProfit(w http.ResponseWriter, r *http.Request) {
	claims := adminClaims(w, r)
	if claims == nil {
		return
	}

	week := r.URL.Query().Get("week_identifier")
	if week == "" {
		writeError(w, http.StatusBadRequest, "week_identifier is required")
		return
	}

	records, err := h.store.ListSettlementsByWeek(r.Context(), claims.TenantID, week)
	if err != nil {
		slog.Error("Branch profit query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to query settlements")
		return
	}

	profit := calculator.BranchProfit(week, records)
	writeJSON(w, http.StatusOK, map[string]any{
		"week_identifier":         profit.WeekIdentifier,
		"rider_count":             profit.RiderCount,
		"total_settlement_amount": profit.TotalSettlementAmount,
		"total_final_payout":      profit.TotalFinalPayout,
		"total_deductions":        profit.TotalDeductions,
		"fee_income":              profit.FeeIncome,
		"net_margin":              profit.NetMargin,
	})
}

// handleRiderSettlements returns the authenticated rider's own rows,
// matched through the platform IDs on their profile.
func (h *Handler) handleRiderSettlements(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if claims.TenantID == "" {
		writeError(w, http.StatusForbidden, "profile is not assigned to a tenant")
		return
	}

	profile, err := h.store.GetProfile(r.Context(), claims.ProfileID)
	if err != nil {
		slog.Error("Profile lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	platformIDs := calculator.RiderPlatformIDs(profile)
	if len(platformIDs) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"settlements": []settlementResponse{}})
		return
	}

	records, err := h.store.ListSettlementsByRider(r.Context(), claims.TenantID, platformIDs)
	if err != nil {
		slog.Error("Rider settlement query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to query settlements")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"settlements": toSettlementResponses(records)})
}
