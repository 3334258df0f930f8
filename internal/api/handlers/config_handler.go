package handlers

import (
	"net/http"

	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/config"
	"github.com/rs/zerolog/log"
)

// ConfigHandler republishes the client-safe environment values.
type ConfigHandler struct {
	load func() (config.PublicConfig, error)
}

// NewConfigHandler creates a ConfigHandler that reads the environment on every request.
func NewConfigHandler() *ConfigHandler {
	return &ConfigHandler{load: config.LoadPublic}
}

// Get handles GET /api/config.
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	pub, err := h.load()
	if err != nil {
		log.Error().Err(err).Msg("Failed to assemble public configuration")
		WriteError(w, http.StatusInternalServerError, "Failed to load configuration")
		return
	}
	WriteJSON(w, http.StatusOK, pub)
}
