package handlers

import (
	"net/http"

	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/auth"
	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/services"
	"github.com/rs/zerolog/log"
)

// ActionListBackups is the audit action written after a successful listing.
const ActionListBackups = "list_backups"

// BackupHandler handles HTTP requests related to backups.
type BackupHandler struct {
	service services.BackupServiceProvider
	auditor auth.Auditor
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(service services.BackupServiceProvider, auditor auth.Auditor) *BackupHandler {
	return &BackupHandler{service: service, auditor: auditor}
}

// List returns metadata for every backup, newest first. It expects to run
// behind auth.AdminMiddleware.
func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	backups, err := h.service.ListBackups(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list backups")
		WriteError(w, http.StatusInternalServerError, "Failed to list backups")
		return
	}

	reqCtx := auth.RequestContextFrom(r, auth.ClientIPFrom(r.Context()))
	if err := h.auditor.LogAction(r.Context(), reqCtx, ActionListBackups, map[string]any{"count": len(backups)}); err != nil {
		log.Error().Err(err).Msg("Failed to write backup listing audit entry")
	}

	WriteJSON(w, http.StatusOK, backups)
}
