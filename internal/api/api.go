// Package api implements the HTTP boundary: request decoding, session
// authorization, and mapping workflow outcomes to status codes. Core
// ingestion logic lives in internal/ingest; handlers here stay thin.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mkwon-dev/riderpay/internal/auth"
	"github.com/mkwon-dev/riderpay/internal/ingest"
	"github.com/mkwon-dev/riderpay/internal/middleware"
	"github.com/mkwon-dev/riderpay/internal/models"
	"github.com/mkwon-dev/riderpay/internal/storage"
)

// Handler bundles the services the HTTP endpoints depend on.
type Handler struct {
	store    storage.Store
	ingestor *ingest.Ingestor
	authn    *auth.PasswordAuthenticator
	jwt      *auth.JWTManager
}

// NewHandler creates the API handler.
func NewHandler(store storage.Store, ingestor *ingest.Ingestor, authn *auth.PasswordAuthenticator, jwt *auth.JWTManager) *Handler {
	return &Handler{store: store, ingestor: ingestor, authn: authn, jwt: jwt}
}

// Routes builds the router: public auth/health endpoints plus the
// authenticated API.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.RequestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/api/auth/register", h.handleRegister)
	r.Post("/api/auth/login", h.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.jwt))

		r.Post("/api/upload-settlement", h.handleUploadSettlement)
		r.Post("/api/update-fees", h.handleUpdateFees)

		r.Get("/api/uploads", h.handleListUploads)

		r.Get("/api/templates", h.handleListTemplates)
		r.Post("/api/templates", h.handleCreateTemplate)
		r.Put("/api/templates/{id}", h.handleUpdateTemplate)
		r.Delete("/api/templates/{id}", h.handleDeleteTemplate)

		r.Get("/api/settlements", h.handleListSettlements)
		r.Get("/api/settlements/summary", h.handleSettlementSummary)
		r.Get("/api/branch-profit", h.handleBranchProfit)
		r.Get("/api/rider/settlements", h.handleRiderSettlements)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError returns the message verbatim in an error field. Ingestion
// callers rely on seeing the recorded failure text.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// adminClaims authorizes a tenant-administration request: the caller must
// hold a role that may ingest files and belong to a tenant. Writes the
// refusal itself and returns nil when the caller is not allowed.
func adminClaims(w http.ResponseWriter, r *http.Request) *auth.Claims {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return nil
	}
	if !models.Role(claims.Role).CanUpload() || claims.TenantID == "" {
		writeError(w, http.StatusForbidden, "not allowed")
		return nil
	}
	return claims
}
