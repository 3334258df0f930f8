package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/L4w1i3t/Triet-Freelancing-sub001/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AuditServiceProvider defines the interface for the append-only audit log.
type AuditServiceProvider interface {
	LogAction(ctx context.Context, req models.RequestContext, action string, metadata map[string]any) error
	GetRecentEntries(ctx context.Context, limit int) ([]models.AuditEntry, error)
}

// AuditService appends audit entries to the database and mirrors them to the log.
type AuditService struct {
	db  *sql.DB
	now func() time.Time
}

// NewAuditService creates a new AuditService.
func NewAuditService(db *sql.DB) *AuditService {
	return &AuditService{db: db, now: time.Now}
}

// LogAction appends a new entry for action.
func (s *AuditService) LogAction(ctx context.Context, req models.RequestContext, action string, metadata map[string]any) error {
	entry := models.AuditEntry{
		ID:        uuid.New().String(),
		Action:    action,
		Request:   req,
		Metadata:  metadata,
		Timestamp: s.now().UTC(),
	}

	metaJSON, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("encode audit metadata: %w", err)
	}

	log.Info().
		Str("event", "audit").
		Str("action", entry.Action).
		Str("ip", req.IP).
		Str("request_id", req.RequestID).
		RawJSON("metadata", metaJSON).
		Msg("Audit entry recorded")

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO audit_log (id, action, ip_address, user_agent, method, path, request_id, metadata_json, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		entry.ID, entry.Action, req.IP, req.UserAgent, req.Method, req.Path, req.RequestID, string(metaJSON), entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// GetRecentEntries retrieves the most recent audit entries, newest first.
func (s *AuditService) GetRecentEntries(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, action, ip_address, user_agent, method, path, request_id, metadata_json, created_at FROM audit_log ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var (
			entry    models.AuditEntry
			metaJSON sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.Request.IP, &entry.Request.UserAgent,
			&entry.Request.Method, &entry.Request.Path, &entry.Request.RequestID, &metaJSON, &entry.Timestamp); err != nil {
			return nil, err
		}
		if metaJSON.Valid && metaJSON.String != "" && metaJSON.String != "null" {
			if err := json.Unmarshal([]byte(metaJSON.String), &entry.Metadata); err != nil {
				log.Warn().Err(err).Str("audit_id", entry.ID).Msg("Discarding unreadable audit metadata")
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
