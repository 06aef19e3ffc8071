// Package audit appends domain events to the append-only event_log
// table, keyed by the affected inspection.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

const (
	EventInspectionSubmitted = "InspectionSubmitted"
	EventInspectionDeleted   = "InspectionDeleted"
	EventMechanicCreated     = "MechanicCreated"
	EventMechanicDeactivated = "MechanicDeactivated"
)

type Event struct {
	Offset    int64
	SiteID    string
	Type      string
	Key       string
	DataJSON  string
	CreatedAt int64
}

type EventRepo struct {
	db     *sql.DB
	siteID string
}

func NewEventRepo(db *sql.DB, siteID string) *EventRepo {
	if siteID == "" {
		siteID = "local"
	}
	return &EventRepo{db: db, siteID: siteID}
}

func (r *EventRepo) Append(ctx context.Context, typ, key string, data interface{}) error {
	buf, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO event_log (site_id, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		r.siteID, typ, key, string(buf), time.Now().Unix())
	return err
}

// Recent returns up to limit newest events whose type or key contains q.
func (r *EventRepo) Recent(ctx context.Context, q string, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT typ, key, data, created_at FROM event_log
		 WHERE typ LIKE '%'||$1||'%' OR key LIKE '%'||$1||'%'
		 ORDER BY created_at DESC LIMIT $2`, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Type, &e.Key, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
