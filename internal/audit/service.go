// Package audit records catalog changes in the audit_events table.
//
// Writes happen in the background so a slow audit insert never delays the
// page that caused it. Call Wait before closing the database to flush
// pending events.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mrlokans/library/internal/catalog"
	"github.com/mrlokans/library/internal/database/audit"
	"github.com/mrlokans/library/internal/entities"
)

var _ catalog.ChangeRecorder = (*Service)(nil)

// Service provides high-level audit logging functionality.
type Service struct {
	repo    *audit.Repository
	pending sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	if event.RequestID == "" {
		event.RequestID = RequestIDFromContext(ctx)
	}
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background (non-blocking).
// The event outlives ctx's cancellation but keeps its values.
func (s *Service) LogAsync(ctx context.Context, event *entities.AuditEvent) {
	ctx = context.WithoutCancel(ctx)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.Log(ctx, event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// Wait blocks until every event queued with LogAsync is written.
func (s *Service) Wait() {
	s.pending.Wait()
}

// RecordChange turns a catalog change into an audit event.
func (s *Service) RecordChange(ctx context.Context, change catalog.Change) {
	id := change.ID
	event := &entities.AuditEvent{
		EventType:   change.Action,
		Action:      change.Kind + "_" + string(change.Action),
		Description: describe(change),
		EntityType:  change.Kind,
		EntityID:    &id,
		Status:      entities.AuditStatusSuccess,
	}

	if change.Action == entities.AuditEventDeleteBlocked {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = fmt.Sprintf("referenced by %d book(s)", change.Dependents)
		if md, err := json.Marshal(map[string]any{"dependents": change.Dependents}); err == nil {
			event.Metadata = string(md)
		}
	}

	s.LogAsync(ctx, event)
}

// LogMaintenance records a background maintenance run, e.g. audit cleanup.
func (s *Service) LogMaintenance(ctx context.Context, action, description string, err error) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventMaintenance,
		Action:      action,
		Description: description,
		Status:      entities.AuditStatusSuccess,
	}

	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(ctx, event)
}

// GetEvents retrieves paginated audit events, optionally filtered by type.
func (s *Service) GetEvents(ctx context.Context, eventType entities.AuditEventType, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, eventType, limit, offset)
}

// History returns the audit trail of one catalog record.
func (s *Service) History(ctx context.Context, entityType string, entityID uint) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForEntity(ctx, entityType, entityID)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

func describe(change catalog.Change) string {
	var verb string
	switch change.Action {
	case entities.AuditEventCreate:
		verb = "Created"
	case entities.AuditEventUpdate:
		verb = "Updated"
	case entities.AuditEventDelete:
		verb = "Deleted"
	case entities.AuditEventDeleteBlocked:
		verb = "Refused to delete"
	default:
		verb = string(change.Action)
	}
	return truncate(fmt.Sprintf("%s %s: %s", verb, change.Kind, change.Name), 500)
}

// truncate shortens a string to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
