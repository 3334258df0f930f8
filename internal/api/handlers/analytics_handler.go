package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/models"
	"github.com/rs/zerolog/log"
)

// EventObserver counts received analytics events. It is satisfied by *metrics.Metrics.
type EventObserver interface {
	ObserveEvent(eventType, category string)
}

// AnalyticsHandler accepts batches of client analytics events. Events are
// logged and counted, never stored.
type AnalyticsHandler struct {
	observer EventObserver
}

// NewAnalyticsHandler creates a new AnalyticsHandler. observer may be nil.
func NewAnalyticsHandler(observer EventObserver) *AnalyticsHandler {
	return &AnalyticsHandler{observer: observer}
}

// AnalyticsResponse is returned for an accepted batch.
type AnalyticsResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Processed int    `json:"processed"`
}

// Ingest handles POST /api/analytics.
func (h *AnalyticsHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	var batch models.AnalyticsBatch
	if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
		log.Error().Err(err).Msg("Failed to read analytics batch")
		WriteError(w, http.StatusInternalServerError, "Failed to process analytics data")
		return
	}

	for _, raw := range batch.Events {
		var ev models.ClientEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Info().
				Interface("session_id", batch.SessionID).
				RawJSON("event", raw).
				Msg("Analytics event")
		} else {
			log.Info().
				Interface("session_id", batch.SessionID).
				Interface("type", ev.Type).
				Interface("category", ev.Category).
				Interface("action", ev.Action).
				Msg("Analytics event")
		}
		if h.observer != nil {
			h.observer.ObserveEvent(label(ev.Type), label(ev.Category))
		}
	}

	WriteJSON(w, http.StatusOK, AnalyticsResponse{
		Success:   true,
		Message:   "Analytics data received",
		Processed: len(batch.Events),
	})
}

// label renders an arbitrary JSON value as a metric label. Missing values
// become "" so the observer can substitute its own default.
func label(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
