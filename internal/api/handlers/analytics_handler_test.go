package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedEvent struct{ eventType, category string }

type recordingObserver struct{ events []recordedEvent }

func (o *recordingObserver) ObserveEvent(eventType, category string) {
	o.events = append(o.events, recordedEvent{eventType, category})
}

func TestIngestLabelsNonStringFields(t *testing.T) {
	observer := &recordingObserver{}
	h := NewAnalyticsHandler(observer)

	body := `{"events":[{"type":1,"category":"nav"},{"type":"click","category":false},{},7]}`
	req := httptest.NewRequest(http.MethodPost, "/api/analytics", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Ingest(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"message":"Analytics data received","processed":4}`, rec.Body.String())
	assert.Equal(t, []recordedEvent{
		{"1", "nav"},
		{"click", "false"},
		{"", ""},
		{"", ""},
	}, observer.events)
}

func TestIngestWithoutObserver(t *testing.T) {
	h := NewAnalyticsHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/analytics", strings.NewReader(`{"events":[{"type":"view"}]}`))
	rec := httptest.NewRecorder()
	h.Ingest(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIngestEventsNotAnArray(t *testing.T) {
	h := NewAnalyticsHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/analytics", strings.NewReader(`{"events":"oops"}`))
	rec := httptest.NewRecorder()
	h.Ingest(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to process analytics data"}`, rec.Body.String())
}
