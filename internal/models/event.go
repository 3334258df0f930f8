package models

import "encoding/json"

// ClientEvent is a single analytics event reported by the browser. Fields
// keep whatever JSON type the client sent.
type ClientEvent struct {
	Type      any             `json:"type"`
	Category  any             `json:"category"`
	Action    any             `json:"action"`
	Timestamp json.RawMessage `json:"timestamp,omitempty"` // number or ISO string, passed through
}

// AnalyticsBatch is the body accepted by the analytics endpoint. Events are
// kept raw so that a malformed element is still counted and logged.
type AnalyticsBatch struct {
	Events    []json.RawMessage `json:"events"`
	SessionID any               `json:"session_id"`
	Timestamp json.RawMessage   `json:"timestamp,omitempty"`
}
