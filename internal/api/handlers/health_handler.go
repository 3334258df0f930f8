package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/disk"
)

// HealthHandler reports liveness and free space on the backup volume.
type HealthHandler struct {
	backupPath string
	usage      func(path string) (*disk.UsageStat, error)
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(backupPath string) *HealthHandler {
	return &HealthHandler{backupPath: backupPath, usage: disk.Usage}
}

// DiskStatus summarizes the volume holding the backup directory.
type DiskStatus struct {
	Total       uint64  `json:"total"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"usedPercent"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string      `json:"status"`
	BackupDir *DiskStatus `json:"backupDir,omitempty"`
}

// Get handles GET /api/health.
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok"}

	stat, err := h.usage(h.backupPath)
	if err != nil {
		log.Warn().Err(err).Msg("Could not read disk usage for backup directory")
	} else {
		resp.BackupDir = &DiskStatus{Total: stat.Total, Free: stat.Free, UsedPercent: stat.UsedPercent}
	}

	WriteJSON(w, http.StatusOK, resp)
}
