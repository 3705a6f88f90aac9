package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"restack-cli/internal/model"

	"github.com/google/uuid"
)

func (w *Workspace) appendEvent(ctx context.Context, tx *sql.Tx, typ, entityID string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO events(event_id, type, entity_id, payload_json, issued_at_unixms) VALUES(?, ?, ?, ?, ?)`,
		"evt-"+uuid.NewString(), typ, entityID, string(raw), w.now().UTC().UnixMilli())
	return err
}

// Events returns the newest events first. limit <= 0 means no limit.
func (w *Workspace) Events(ctx context.Context, limit int) ([]model.Event, error) {
	q := `SELECT event_id, type, entity_id, payload_json, issued_at_unixms FROM events ORDER BY issued_at_unixms DESC, rowid DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = w.db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = w.db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var ev model.Event
		var payload string
		var ms int64
		if err := rows.Scan(&ev.ID, &ev.Type, &ev.EntityID, &payload, &ms); err != nil {
			return nil, err
		}
		ev.TS = time.UnixMilli(ms).UTC()
		var v any
		if err := json.Unmarshal([]byte(payload), &v); err == nil {
			ev.Payload = v
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
