package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"sslab_simulator/internal/models"
	"sslab_simulator/internal/repository/db"

	"github.com/google/uuid"
)

type EventSQL struct {
	db      *sql.DB
	dialect db.Dialect
}

func NewEventSQL(conn *sql.DB, dialect db.Dialect) *EventSQL {
	return &EventSQL{db: conn, dialect: dialect}
}

const (
	insertEventSQL = `
		INSERT INTO control_events (id, occurred_at, action, device, message, meta)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	selectEventsSQL = `SELECT id, occurred_at, action, device, message, meta FROM control_events`
)

// eventMeta is what lands in the meta column.
type eventMeta struct {
	Value any `json:"value"`
}

// Append inserts a new event. If EventID or OccurredAt are empty, they’re set.
func (r *EventSQL) Append(ctx context.Context, e models.ControlEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	var metaPtr *string
	if e.Value != nil {
		if b, err := json.Marshal(eventMeta{Value: e.Value}); err == nil {
			s := string(b)
			metaPtr = &s
		}
	}

	_, err := r.db.ExecContext(ctx, r.dialect.Rebind(insertEventSQL),
		e.EventID,
		e.OccurredAt,
		strings.TrimSpace(e.Action),
		e.Device,
		e.Message,
		metaPtr,
	)
	if err != nil {
		return fmt.Errorf("insert control event %s: %w", e.EventID, err)
	}
	return nil
}

// List returns events filtered by [from, to] (inclusive) and/or action, ordered ASC.
func (r *EventSQL) List(ctx context.Context, from, to time.Time, action string) ([]models.ControlEvent, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}
	if action = strings.TrimSpace(action); action != "" {
		conds = append(conds, "action = ?")
		args = append(args, action)
	}

	q := selectEventsSQL
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at ASC"

	rows, err := r.db.QueryContext(ctx, r.dialect.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("query control events: %w", err)
	}
	defer rows.Close()

	out := make([]models.ControlEvent, 0, 64)
	for rows.Next() {
		var ev models.ControlEvent
		var metaStr sql.NullString
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Action, &ev.Device, &ev.Message, &metaStr); err != nil {
			return nil, err
		}
		ev.OccurredAt = ev.OccurredAt.UTC()

		if metaStr.Valid && metaStr.String != "" {
			var meta eventMeta
			if err := json.Unmarshal([]byte(metaStr.String), &meta); err == nil {
				ev.Value = meta.Value
			} else {
				ev.Value = metaStr.String // keep raw if malformed
			}
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
