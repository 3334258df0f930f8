package models

import "time"

// RequestContext identifies the caller behind an audited action.
type RequestContext struct {
	IP        string `json:"ip"`
	UserAgent string `json:"userAgent,omitempty"`
	Method    string `json:"method,omitempty"`
	Path      string `json:"path,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// AuditEntry is one append-only record of an administrative action.
type AuditEntry struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Request   RequestContext `json:"requestContext"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
