package handlers

import (
	"net/http"
	"strconv"

	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/services"
	"github.com/rs/zerolog/log"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	service services.AuditServiceProvider
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(service services.AuditServiceProvider) *AuditHandler {
	return &AuditHandler{service: service}
}

// GetRecent handles the request to get recent audit entries.
func (h *AuditHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultAuditLimit
	}
	limit = min(limit, maxAuditLimit)

	entries, err := h.service.GetRecentEntries(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve audit entries")
		WriteError(w, http.StatusInternalServerError, "Failed to retrieve audit log")
		return
	}

	WriteJSON(w, http.StatusOK, entries)
}
