package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-screener/internal/types"
)

// InsertAuditEvent appends an event to the audit log.
func (db *DB) InsertAuditEvent(ctx context.Context, event *types.AuditEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	details, err := marshalJSON(event.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal audit details: %w", err)
	}
	if details == nil {
		details = []byte("{}")
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO audit_logs (id, event_type, entity_type, entity_id, actor, action, details, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		event.ID, event.EventType, event.EntityType, event.EntityID, event.Actor, event.Action, details, event.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}
	return nil
}

// ListAuditEvents returns the events for one entity, newest first.
func (db *DB) ListAuditEvents(ctx context.Context, entityType string, entityID uuid.UUID) ([]types.AuditEvent, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, event_type, entity_type, entity_id, actor, action, details, timestamp
		 FROM audit_logs WHERE entity_type = $1 AND entity_id = $2
		 ORDER BY timestamp DESC, id`,
		entityType, entityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()
	return collectAuditEvents(rows)
}

// ListAuditEventsBetween returns every event with start <= timestamp <= end, oldest first.
func (db *DB) ListAuditEventsBetween(ctx context.Context, start, end time.Time) ([]types.AuditEvent, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, event_type, entity_type, entity_id, actor, action, details, timestamp
		 FROM audit_logs WHERE timestamp BETWEEN $1 AND $2
		 ORDER BY timestamp, id`,
		start, end,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()
	return collectAuditEvents(rows)
}

func collectAuditEvents(rows pgx.Rows) ([]types.AuditEvent, error) {
	var events []types.AuditEvent
	for rows.Next() {
		var e types.AuditEvent
		var details []byte
		if err := rows.Scan(&e.ID, &e.EventType, &e.EntityType, &e.EntityID, &e.Actor, &e.Action, &details, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		if err := unmarshalJSON(details, &e.Details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal audit details: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit events: %w", err)
	}
	return events, nil
}
